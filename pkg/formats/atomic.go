package formats

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteFileAtomic renders into a temporary file next to path and renames it
// into place once render and the flush both succeed. On failure the target
// is left untouched.
func WriteFileAtomic(path string, render func(io.Writer) error) error {
	tmp, err := stage(path, render)
	if err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}

// File is one target of WriteFilesAtomic.
type File struct {
	Path   string
	Render func(io.Writer) error
}

// WriteFilesAtomic writes every file or none of them. All files are staged
// first; if any rename then fails, files already renamed are removed and the
// files they replaced are restored.
func WriteFilesAtomic(files []File) (err error) {
	temps := make([]string, 0, len(files))
	defer func() {
		if err != nil {
			for _, tmp := range temps {
				os.Remove(tmp)
			}
		}
	}()
	for _, f := range files {
		tmp, err := stage(f.Path, f.Render)
		if err != nil {
			return err
		}
		temps = append(temps, tmp)
	}

	type committed struct{ path, backup string }
	var done []committed
	defer func() {
		if err != nil {
			for i := len(done) - 1; i >= 0; i-- {
				os.Remove(done[i].path)
				if done[i].backup != "" {
					os.Rename(done[i].backup, done[i].path)
				}
			}
		}
	}()

	for i, f := range files {
		backup, err := backupExisting(f.Path)
		if err != nil {
			return err
		}
		if err := os.Rename(temps[i], f.Path); err != nil {
			if backup != "" {
				os.Rename(backup, f.Path)
			}
			return fmt.Errorf("renaming into %s: %w", f.Path, err)
		}
		done = append(done, committed{f.Path, backup})
	}

	for _, c := range done {
		if c.backup != "" {
			os.Remove(c.backup)
		}
	}
	return nil
}

// backupExisting moves a regular file at path aside and returns where it
// went, or "" when there is nothing to keep.
func backupExisting(path string) (string, error) {
	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("checking %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return "", nil
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.bak")
	if err != nil {
		return "", fmt.Errorf("creating backup for %s: %w", path, err)
	}
	f.Close()
	if err := os.Rename(path, f.Name()); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("backing up %s: %w", path, err)
	}
	return f.Name(), nil
}

// stage renders into a synced temporary file next to path and returns its
// name. The temporary file is removed on failure.
func stage(path string, render func(io.Writer) error) (name string, err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err = render(bw); err != nil {
		return "", err
	}
	if err = bw.Flush(); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return "", fmt.Errorf("syncing %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return "", fmt.Errorf("setting mode on %s: %w", path, err)
	}
	return tmp.Name(), nil
}
