package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gorslint/internal/logging"
	"github.com/yaklabco/gorslint/pkg/analyze"
	_ "github.com/yaklabco/gorslint/pkg/analyze/analyzers" // Register built-in analyzers
)

const formatJSON = "json"

// analyzerInfo represents an analyzer in JSON output.
type analyzerInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Fixable     bool   `json:"fixable"`
}

func newAnalyzersCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "analyzers",
		Short: "List available analyzers",
		Long: `List all available analyzers with their IDs, descriptions,
and whether they support auto-fixing. Analyzers are listed in the fixed
order they run and report in.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			analyzers := analyze.DefaultRegistry.Analyzers()

			if format == formatJSON {
				return outputAnalyzersJSON(analyzers)
			}

			logger := logging.NewInteractive()

			logger.Info("available analyzers")

			for _, a := range analyzers {
				fixable := "-"
				if a.CanFix() {
					fixable = "yes"
				}

				logger.Info(a.ID(),
					logging.FieldName, a.Name(),
					logging.FieldFixable, fixable,
					logging.FieldDescription, a.Description(),
				)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}

// outputAnalyzersJSON outputs analyzers as a JSON array.
func outputAnalyzersJSON(analyzers []analyze.Analyzer) error {
	infos := make([]analyzerInfo, 0, len(analyzers))
	for _, a := range analyzers {
		infos = append(infos, analyzerInfo{
			ID:          a.ID(),
			Name:        a.Name(),
			Description: a.Description(),
			Fixable:     a.CanFix(),
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding analyzers: %w", err)
	}
	return nil
}
