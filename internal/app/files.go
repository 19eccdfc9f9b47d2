package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/LegacyCodeHQ/styleimport/scanner"
)

var skippedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"dist":         true,
	"build":        true,
	".idea":        true,
	".vscode":      true,
	".cache":       true,
	"coverage":     true,
}

// SkipDir reports whether a directory with the given base name is never
// searched for modules.
func SkipDir(name string) bool {
	return skippedDirs[name]
}

// CollectModules expands paths into the JavaScript and TypeScript files they
// name. Files are taken as given; directories are walked. The result is
// sorted and free of duplicates.
func CollectModules(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var modules []string
	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			modules = append(modules, path)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if !info.IsDir() {
			add(p)
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && SkipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if scanner.IsModulePath(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", p, err)
		}
	}

	sort.Strings(modules)
	return modules, nil
}

// MirrorPath returns path relative to root, or its base name when it lies
// outside root.
func MirrorPath(path, root string) string {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return filepath.Base(path)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return filepath.Base(path)
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.Base(path)
	}
	return rel
}

// WriteResult writes the module output to target, and its source map to
// target.map when the module changed and a map was produced. Otherwise a
// target.map left by an earlier run is removed.
func WriteResult(res *FileResult, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(target, []byte(res.Output()), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}

	if !res.Changed() || res.Map == nil {
		if err := os.Remove(target + ".map"); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove stale %s.map: %w", target, err)
		}
		return nil
	}
	data, err := res.Map.JSON()
	if err != nil {
		return fmt.Errorf("failed to encode source map for %s: %w", res.Path, err)
	}
	if err := os.WriteFile(target+".map", data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s.map: %w", target, err)
	}
	return nil
}
