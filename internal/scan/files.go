package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ExpandPaths resolves a mix of file and directory arguments into the list of
// files to probe. Directories are walked and filtered by extension; files are
// passed through as given so an unreadable path still produces a row with a
// per-file error instead of aborting the batch.
func ExpandPaths(paths []string, extensions []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		trimmed := strings.TrimSpace(path)
		if trimmed == "" {
			continue
		}
		fi, err := os.Stat(trimmed)
		if err != nil || !fi.IsDir() {
			files = append(files, trimmed)
			continue
		}
		found, err := walkDirectory(trimmed, extensions)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

func walkDirectory(dir string, extensions []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if matchesExtension(entry.Name(), extensions) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	return files, nil
}

func matchesExtension(name string, extensions []string) bool {
	ext := filepath.Ext(name)
	if ext == "" {
		return false
	}
	for _, candidate := range extensions {
		if strings.EqualFold(ext, candidate) {
			return true
		}
	}
	return false
}
