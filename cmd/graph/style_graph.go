package graph

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	graphlib "github.com/dominikbraun/graph"

	"github.com/LegacyCodeHQ/styleimport/internal/app"
	"github.com/LegacyCodeHQ/styleimport/scanner"
)

// StyleGraph links modules to the style files injected into them.
type StyleGraph struct {
	Graph   graphlib.Graph[string, string]
	modules map[string]bool
}

func newStyleGraph() *StyleGraph {
	return &StyleGraph{
		Graph:   graphlib.New(graphlib.StringHash, graphlib.Directed()),
		modules: make(map[string]bool),
	}
}

// IsModule reports whether vertex is a module rather than a style file.
func (s *StyleGraph) IsModule(vertex string) bool {
	return s.modules[vertex]
}

// Adjacency returns every vertex with its sorted targets. Vertices are
// sorted, modules first.
func (s *StyleGraph) Adjacency() ([]string, map[string][]string, error) {
	adjacency, err := s.Graph.AdjacencyMap()
	if err != nil {
		return nil, nil, err
	}

	vertices := make([]string, 0, len(adjacency))
	targets := make(map[string][]string, len(adjacency))
	for source, edges := range adjacency {
		vertices = append(vertices, source)
		for target := range edges {
			targets[source] = append(targets[source], target)
		}
		sort.Strings(targets[source])
	}
	sort.Slice(vertices, func(i, j int) bool {
		mi, mj := s.modules[vertices[i]], s.modules[vertices[j]]
		if mi != mj {
			return mi
		}
		return vertices[i] < vertices[j]
	})
	return vertices, targets, nil
}

func (s *StyleGraph) addModule(name string) error {
	s.modules[name] = true
	err := s.Graph.AddVertex(name, graphlib.VertexAttribute("shape", "box"))
	if err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
		return err
	}
	return nil
}

func (s *StyleGraph) addStyle(module, style string) error {
	err := s.Graph.AddVertex(style, graphlib.VertexAttribute("shape", "note"))
	if err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
		return err
	}
	if err := s.Graph.AddEdge(module, style); err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
		return err
	}
	return nil
}

// buildStyleGraph transforms every module and records the injected style
// specifiers. Vertex names are relative to root where possible.
func buildStyleGraph(ctx context.Context, env *app.Env, modules []string, root string) (*StyleGraph, error) {
	sg := newStyleGraph()
	scan := scanner.New()

	for _, path := range modules {
		res, err := env.TransformFile(ctx, path)
		if err != nil {
			return nil, err
		}

		module := moduleName(path, root)
		if err := sg.addModule(module); err != nil {
			return nil, fmt.Errorf("failed to add module %s: %w", module, err)
		}
		if !res.Changed() {
			continue
		}

		for _, edit := range res.Edits {
			injected, err := scan.Scan(ctx, []byte(edit.Text), scanner.JavaScript)
			if err != nil {
				return nil, fmt.Errorf("failed to read injected imports of %s: %w", path, err)
			}
			for _, span := range injected.Imports {
				if err := sg.addStyle(module, styleName(span.Specifier, root)); err != nil {
					return nil, fmt.Errorf("failed to link %s to %s: %w", module, span.Specifier, err)
				}
			}
		}
	}
	return sg, nil
}

func moduleName(path, root string) string {
	return filepath.ToSlash(app.MirrorPath(path, root))
}

// styleName shortens resolved style paths under root. Bare specifiers are
// kept as written.
func styleName(specifier, root string) string {
	path := filepath.FromSlash(specifier)
	if !filepath.IsAbs(path) {
		return specifier
	}
	return filepath.ToSlash(app.MirrorPath(path, root))
}
