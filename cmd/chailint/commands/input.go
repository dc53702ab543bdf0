package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/chaifriendly/lint/jslint"
	"github.com/chaifriendly/lint/jsparse"
)

// StdinIndicator is the conventional Unix indicator to read from stdin.
const StdinIndicator = "-"

// IsStdin returns true if the given path indicates stdin should be used.
func IsStdin(path string) bool {
	return path == StdinIndicator
}

// skippedDirs are never descended into when expanding directories.
var skippedDirs = []string{"node_modules", "dist", "build", "coverage"}

// collectFiles expands the given paths into the source files to lint. Files
// named explicitly are kept as given; directories are walked for sources,
// skipping ESTree JSON, type facts sidecars, hidden and vendored directories.
func collectFiles(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, path := range paths {
		if IsStdin(path) {
			add(path)
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if !info.IsDir() {
			add(filepath.Clean(path))
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				name := d.Name()
				if p != path && (strings.HasPrefix(name, ".") || slices.Contains(skippedDirs, name)) {
					return filepath.SkipDir
				}
				return nil
			}
			if isLintable(p) {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", path, err)
		}
	}

	return files, nil
}

func isLintable(path string) bool {
	if jslint.IsTypeFactsFile(path) || strings.HasSuffix(path, ".d.ts") {
		return false
	}
	return jsparse.IsSupported(path) && filepath.Ext(path) != ".json"
}
