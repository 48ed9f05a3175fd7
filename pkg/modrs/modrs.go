// Package modrs finds `mod.rs` files and converts them to the modern module
// naming convention, where the module file is named after its parent
// directory and placed one level up (`foo/mod.rs` becomes `foo.rs`).
package modrs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gorslint/pkg/fsutil"
)

// modFileName is the legacy module file name being replaced.
const modFileName = "mod.rs"

// Issue is one mod.rs file together with its suggested replacement path.
type Issue struct {
	// Path is the mod.rs file.
	Path string

	// Suggested is the replacement path, named after the parent directory.
	Suggested string

	// Message describes the conversion.
	Message string
}

// Find returns an issue for every mod.rs file under root, in walk order.
// root may also be a single file, which is checked directly. Hidden
// directories and `target/` are skipped, matching file discovery.
func Find(ctx context.Context, root string) ([]Issue, error) {
	stat, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}

	if !stat.IsDir() {
		if filepath.Base(root) != modFileName {
			return nil, nil
		}
		if issue, ok := newIssue(root); ok {
			return []Issue{issue}, nil
		}
		return nil, nil
	}

	var issues []Issue
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		name := d.Name()
		if d.IsDir() {
			if path != root && (strings.HasPrefix(name, ".") || name == "target") {
				return filepath.SkipDir
			}
			return nil
		}
		if name != modFileName {
			return nil
		}
		if issue, ok := newIssue(path); ok {
			issues = append(issues, issue)
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk %s: %w", root, walkErr)
	}

	return issues, nil
}

// newIssue builds the issue for one mod.rs path. A mod.rs without a named
// parent directory has no place to move to and is left alone.
func newIssue(path string) (Issue, bool) {
	parent := filepath.Dir(path)
	module := filepath.Base(parent)
	if module == "." || module == string(filepath.Separator) {
		return Issue{}, false
	}

	return Issue{
		Path:      path,
		Suggested: filepath.Join(filepath.Dir(parent), module+".rs"),
		Message: fmt.Sprintf("Use `%s.rs` instead of `%s/mod.rs` (modern module style)",
			module, module),
	}, true
}

// Fix moves the mod.rs content to the suggested path and removes the
// original, deleting the parent directory when it ends up empty. The new
// file is written atomically with the original's mode. A file already at
// the suggested path is an error: both module layouts cannot coexist.
func Fix(ctx context.Context, issue Issue) error {
	if _, err := os.Stat(issue.Suggested); err == nil {
		return fmt.Errorf("%s already exists", issue.Suggested)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", issue.Suggested, err)
	}

	content, info, err := fsutil.ReadFile(ctx, issue.Path)
	if err != nil {
		return err
	}

	if err := fsutil.WriteAtomic(ctx, issue.Suggested, content, info.Mode); err != nil {
		return err
	}
	if err := os.Remove(issue.Path); err != nil {
		return fmt.Errorf("remove %s: %w", issue.Path, err)
	}

	parent := filepath.Dir(issue.Path)
	empty, err := isEmptyDir(parent)
	if err != nil {
		return err
	}
	if empty {
		if err := os.Remove(parent); err != nil {
			return fmt.Errorf("remove %s: %w", parent, err)
		}
	}

	return nil
}

// FixAll fixes every mod.rs found under root and returns how many files
// were converted before the first failure.
func FixAll(ctx context.Context, root string) (int, error) {
	issues, err := Find(ctx, root)
	if err != nil {
		return 0, err
	}

	fixed := 0
	for _, issue := range issues {
		if err := Fix(ctx, issue); err != nil {
			return fixed, err
		}
		fixed++
	}

	return fixed, nil
}

func isEmptyDir(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, fmt.Errorf("read dir %s: %w", dir, err)
	}
	return len(entries) == 0, nil
}
