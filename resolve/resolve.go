// Package resolve maps style specifiers to files on disk.
package resolve

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrNotFound is returned when a specifier cannot be resolved.
var ErrNotFound = errors.New("module not found")

// ModuleResolver normalizes a specifier as seen from a module directory.
type ModuleResolver interface {
	Resolve(specifier, fromDir string) (string, error)
}

// FileChecker reports whether a path exists. It never fails.
type FileChecker interface {
	Exists(path string) bool
}

// Passthrough leaves specifiers unchanged.
type Passthrough struct{}

func (Passthrough) Resolve(specifier, _ string) (string, error) {
	if specifier == "" {
		return "", ErrNotFound
	}
	return specifier, nil
}

// OSFileChecker checks the local filesystem.
type OSFileChecker struct{}

func (OSFileChecker) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// extensions tried, in order, when a specifier names a file without one.
var extensions = []string{".js", ".mjs", ".cjs", ".json", ".css"}

// NodeResolver resolves specifiers the way Node does for files: relative and
// absolute paths from the importing directory, bare specifiers through the
// node_modules directories above it. Results use forward slashes.
type NodeResolver struct{}

// NewNodeResolver returns a node_modules aware resolver.
func NewNodeResolver() *NodeResolver {
	return &NodeResolver{}
}

func (r *NodeResolver) Resolve(specifier, fromDir string) (string, error) {
	if specifier == "" {
		return "", ErrNotFound
	}

	if filepath.IsAbs(specifier) || isRelative(specifier) {
		base := specifier
		if !filepath.IsAbs(base) {
			base = filepath.Join(fromDir, specifier)
		}
		if resolved, ok := r.resolvePath(base); ok {
			return filepath.ToSlash(resolved), nil
		}
		return "", fmt.Errorf("%w: %s", ErrNotFound, specifier)
	}

	dir, err := filepath.Abs(fromDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", fromDir, err)
	}
	for {
		if filepath.Base(dir) != "node_modules" {
			candidate := filepath.Join(dir, "node_modules", filepath.FromSlash(specifier))
			if resolved, ok := r.resolvePath(candidate); ok {
				return filepath.ToSlash(resolved), nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%w: %s", ErrNotFound, specifier)
}

func (r *NodeResolver) resolvePath(base string) (string, bool) {
	base = filepath.Clean(base)

	if isFile(base) {
		return base, true
	}
	for _, ext := range extensions {
		if candidate := base + ext; isFile(candidate) {
			return candidate, true
		}
	}

	if main := packageMain(base); main != "" {
		candidate := filepath.Join(base, main)
		if isFile(candidate) {
			return candidate, true
		}
	}
	for _, ext := range extensions {
		if candidate := filepath.Join(base, "index"+ext); isFile(candidate) {
			return candidate, true
		}
	}

	return "", false
}

// packageMain returns the style or main entry declared in dir/package.json.
func packageMain(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return ""
	}
	var pkg struct {
		Style string `json:"style"`
		Main  string `json:"main"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return ""
	}
	if pkg.Style != "" {
		return pkg.Style
	}
	return pkg.Main
}

func isRelative(specifier string) bool {
	return specifier == "." || specifier == ".." ||
		strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../")
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Cached memoizes another resolver. It is meant to live for one run; files
// created after a lookup are not seen.
type Cached struct {
	next  ModuleResolver
	cache *lru.Cache[string, cachedResult]
}

type cachedResult struct {
	path string
	err  error
}

// NewCached wraps next with an LRU of the given size.
func NewCached(next ModuleResolver, size int) (*Cached, error) {
	cache, err := lru.New[string, cachedResult](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create resolver cache: %w", err)
	}
	return &Cached{next: next, cache: cache}, nil
}

func (c *Cached) Resolve(specifier, fromDir string) (string, error) {
	key := fromDir + "\x00" + specifier
	if hit, ok := c.cache.Get(key); ok {
		return hit.path, hit.err
	}
	path, err := c.next.Resolve(specifier, fromDir)
	c.cache.Add(key, cachedResult{path: path, err: err})
	return path, err
}

// Purge drops every memoized lookup.
func (c *Cached) Purge() {
	c.cache.Purge()
}
