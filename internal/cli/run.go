package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gorslint/internal/configloader"
	"github.com/yaklabco/gorslint/internal/logging"
	"github.com/yaklabco/gorslint/pkg/analyze"
	_ "github.com/yaklabco/gorslint/pkg/analyze/analyzers" // Register built-in analyzers
	"github.com/yaklabco/gorslint/pkg/config"
	"github.com/yaklabco/gorslint/pkg/runner"
)

// resolveConfig merges CLI flags with discovered configuration files and
// environment variables, returning the final config and working directory.
func resolveConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, string, error) {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	finalCfg := loadResult.Config

	// The persistent --color flag overrides config when explicitly set.
	if cmd.Flags().Changed("color") {
		if colorMode, err := cmd.Flags().GetString("color"); err == nil {
			finalCfg.Color = colorMode
		}
	}

	logger.Debug("configuration loaded",
		logging.FieldFix, finalCfg.Fix,
		logging.FieldDryRun, finalCfg.DryRun,
		logging.FieldJobs, finalCfg.Jobs,
	)

	return finalCfg, workDir, nil
}

// executeRun builds the engine stack and processes the given paths.
func executeRun(ctx context.Context, cfg *config.Config, paths []string, workDir string) (*runner.Result, error) {
	logger := logging.Default()

	engine := analyze.NewEngine(analyze.DefaultRegistry)
	pipeline := analyze.NewPipeline(engine)
	analysisRunner := runner.New(pipeline)

	runOpts := runner.Options{
		Paths:          paths,
		WorkingDir:     workDir,
		Extensions:     runner.DefaultExtensions(),
		ExcludeGlobs:   cfg.Ignore,
		VerifyLanguage: true,
		Jobs:           cfg.Jobs,
		Config:         cfg,
	}

	logger.Debug("starting analysis run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := analysisRunner.Run(logging.WithLogger(ctx, logger), runOpts)
	if err != nil {
		return nil, errors.Join(errors.New("analysis run failed"), err)
	}

	return result, nil
}

// cmdContext returns the command's context, defaulting to Background.
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
