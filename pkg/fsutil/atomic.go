package fsutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is the permission mode used when the caller passes 0.
const DefaultFileMode os.FileMode = 0644

// WriteAtomic replaces the file at path with content in a single rename.
// Rewriting a source file in place would leave a truncated .rs file behind
// if the process dies mid-write; instead the content goes to a hidden temp
// file in the target's directory, which is synced and then renamed over
// the target. Discovery ignores hidden files, so a half-written temp is
// never picked up as a source file. If mode is 0, DefaultFileMode applies.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("atomic write %s: %w", path, ctx.Err())
	default:
	}

	if mode == 0 {
		mode = DefaultFileMode
	}

	dir := filepath.Dir(path)
	base := filepath.Base(path)

	// The temp file must live on the same filesystem as the target for the
	// rename to be atomic.
	tmp, err := os.CreateTemp(dir, "."+base+".*")
	if err != nil {
		return fmt.Errorf("atomic write %s: %w", path, err)
	}
	tmpPath := tmp.Name()

	renamed := false
	defer func() {
		if !renamed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("atomic write %s: %w", path, err)
	}

	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("atomic write %s: sync: %w", path, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("atomic write %s: close: %w", path, err)
	}

	// CreateTemp uses 0600; restore the target's mode before it becomes
	// visible under the real name.
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("atomic write %s: chmod: %w", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("atomic write %s: rename: %w", path, err)
	}

	renamed = true
	return nil
}

// WriteAtomicIfChanged writes content to path only when it differs from
// what is already there, reporting whether a write happened. Skipping
// identical content keeps modtimes stable for files that need no fixes.
func WriteAtomicIfChanged(ctx context.Context, path string, content []byte, mode os.FileMode) (bool, error) {
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("atomic write %s: %w", path, ctx.Err())
	default:
	}

	existing, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := WriteAtomic(ctx, path, content, mode); err != nil {
				return false, err
			}
			return true, nil
		}
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	if bytes.Equal(existing, content) {
		return false, nil
	}

	if err := WriteAtomic(ctx, path, content, mode); err != nil {
		return false, err
	}
	return true, nil
}
