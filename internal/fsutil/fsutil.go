// Package fsutil holds the filesystem helpers shared by the build and serve
// paths: confinement checks for configured relative paths, atomic output
// writes, and recursive asset copying.
package fsutil

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
)

// ConfineRelPath ensures that joining root and relTarget stays physically
// underneath root. It rejects backslashes, absolute targets, and traversal
// segments, and resolves symlinks when root exists. The returned path is the
// resolved absolute location of the target.
func ConfineRelPath(root, relTarget string) (string, error) {
	if strings.Contains(relTarget, "\\") {
		return "", fmt.Errorf("path contains backslash: %s", relTarget)
	}

	cleanRel := filepath.Clean(relTarget)
	if filepath.IsAbs(cleanRel) || strings.HasPrefix(cleanRel, "/") {
		return "", fmt.Errorf("path must be relative: %s", relTarget)
	}
	if cleanRel == ".." || strings.HasPrefix(cleanRel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes its root: %s", relTarget)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("invalid root path: %w", err)
	}
	realRoot := absRoot
	if resolved, err := filepath.EvalSymlinks(absRoot); err == nil {
		realRoot = resolved
	}

	fullPath := filepath.Join(realRoot, cleanRel)

	// If the target exists and is a symlink, resolve it and re-check that it
	// still lands inside the root.
	if resolved, err := filepath.EvalSymlinks(fullPath); err == nil {
		rel, err := filepath.Rel(realRoot, resolved)
		if err != nil {
			return "", fmt.Errorf("rel computation failed: %w", err)
		}
		if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return "", fmt.Errorf("path escapes its root via symlink: %s", relTarget)
		}
		return resolved, nil
	}

	return fullPath, nil
}

// IsRegularFile checks that path exists and is a regular file.
func IsRegularFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file: %s", path)
	}
	return nil
}

// WriteFileAtomic writes data to path via a pending temp file that is fsynced
// and renamed into place, so readers never observe a partial file. Parent
// directories are created as needed.
func WriteFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}

	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}
	defer pending.Cleanup()

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("write pending file: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace %s: %w", path, err)
	}
	return nil
}

// CopyDir recursively copies the files under src into dst, creating
// destination directories as files land in them. When filter is non-nil it
// decides which entries are copied; a rejected directory is not descended
// into. Returns the number of files copied.
func CopyDir(src, dst string, filter func(rel string, d fs.DirEntry) bool) (int, error) {
	copied := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", path, err)
		}
		if rel == "." {
			return nil
		}
		if filter != nil && !filter(rel, d) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if err := CopyFile(path, filepath.Join(dst, rel)); err != nil {
			return err
		}
		copied++
		return nil
	})
	return copied, err
}

// CopyFile copies a single file, creating the destination directory.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source file %s: %w", src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create destination directory: %w", err)
	}
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination file %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	return out.Close()
}
