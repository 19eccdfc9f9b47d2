package transform

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is the number of unchanged lines kept around each change.
const diffContext = 2

var (
	addedLine   = color.New(color.FgGreen)
	removedLine = color.New(color.FgRed)
	headerLine  = color.New(color.Bold)
)

// writeDiff prints a line-oriented diff of before and after. Long unchanged
// stretches are collapsed to a "..." marker.
func writeDiff(w io.Writer, path, before, after string) {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	headerLine.Fprintf(w, "--- %s\n", path)
	headerLine.Fprintf(w, "+++ %s\n", path)

	for i, d := range diffs {
		text := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			for _, line := range text {
				addedLine.Fprintf(w, "+%s\n", line)
			}
		case diffmatchpatch.DiffDelete:
			for _, line := range text {
				removedLine.Fprintf(w, "-%s\n", line)
			}
		case diffmatchpatch.DiffEqual:
			writeContext(w, text, i > 0, i < len(diffs)-1)
		}
	}
}

func writeContext(w io.Writer, text []string, afterChange, beforeChange bool) {
	var head, tail []string
	if afterChange {
		head = text[:min(diffContext, len(text))]
		text = text[len(head):]
	}
	if beforeChange {
		tail = text[max(0, len(text)-diffContext):]
		text = text[:len(text)-len(tail)]
	}

	for _, line := range head {
		fmt.Fprintf(w, " %s\n", line)
	}
	if len(text) > 0 {
		fmt.Fprintln(w, "...")
	}
	for _, line := range tail {
		fmt.Fprintf(w, " %s\n", line)
	}
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
