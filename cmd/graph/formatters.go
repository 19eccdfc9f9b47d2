package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dominikbraun/graph/draw"
)

// OutputFormat represents an output format type
type OutputFormat string

const (
	OutputFormatDOT     OutputFormat = "dot"
	OutputFormatJSON    OutputFormat = "json"
	OutputFormatMermaid OutputFormat = "mermaid"
)

// String returns the string representation of the format
func (f OutputFormat) String() string {
	return string(f)
}

// Formatter writes a style graph in one output format.
type Formatter interface {
	Format(w io.Writer, sg *StyleGraph) error
}

// NewFormatter creates a Formatter for the specified format type.
func NewFormatter(format string) (Formatter, error) {
	switch OutputFormat(format) {
	case OutputFormatDOT:
		return dotFormatter{}, nil
	case OutputFormatJSON:
		return jsonFormatter{}, nil
	case OutputFormatMermaid:
		return mermaidFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s (valid options: dot, json, mermaid)", format)
	}
}

type dotFormatter struct{}

func (dotFormatter) Format(w io.Writer, sg *StyleGraph) error {
	return draw.DOT(sg.Graph, w, draw.GraphAttribute("rankdir", "LR"))
}

type jsonFormatter struct{}

type jsonModule struct {
	Module string   `json:"module"`
	Styles []string `json:"styles"`
}

func (jsonFormatter) Format(w io.Writer, sg *StyleGraph) error {
	vertices, targets, err := sg.Adjacency()
	if err != nil {
		return err
	}

	modules := make([]jsonModule, 0, len(vertices))
	for _, v := range vertices {
		if !sg.IsModule(v) {
			continue
		}
		styles := targets[v]
		if styles == nil {
			styles = []string{}
		}
		modules = append(modules, jsonModule{Module: v, Styles: styles})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(modules)
}

type mermaidFormatter struct{}

func (mermaidFormatter) Format(w io.Writer, sg *StyleGraph) error {
	vertices, targets, err := sg.Adjacency()
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("flowchart LR\n")

	ids := make(map[string]string, len(vertices))
	for i, v := range vertices {
		ids[v] = fmt.Sprintf("n%d", i)
		if sg.IsModule(v) {
			sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", ids[v], v))
		} else {
			sb.WriteString(fmt.Sprintf("    %s>\"%s\"]\n", ids[v], v))
		}
	}
	for _, v := range vertices {
		for _, target := range targets[v] {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", ids[v], ids[target]))
		}
	}

	_, err = io.WriteString(w, sb.String())
	return err
}
