// Package sourcemap renders revision 3 source maps for rewrites that only
// insert text into an original module.
package sourcemap

import (
	"encoding/json"
	"sort"
	"strings"
	"unicode/utf16"
)

// Insertion places Text into the original source at byte Offset.
type Insertion struct {
	Offset int
	Text   string
}

// Map is a revision 3 source map.
type Map struct {
	Version        int      `json:"version"`
	File           string   `json:"file,omitempty"`
	Sources        []string `json:"sources"`
	SourcesContent []string `json:"sourcesContent,omitempty"`
	Names          []string `json:"names"`
	Mappings       string   `json:"mappings"`
}

// JSON encodes the map.
func (m *Map) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// Apply returns original with every insertion spliced in. Insertions at the
// same offset keep their relative order.
func Apply(original string, insertions []Insertion) string {
	sorted := sortInsertions(insertions)

	var sb strings.Builder
	sb.Grow(len(original) + insertedLen(sorted))

	pos := 0
	for _, in := range sorted {
		sb.WriteString(original[pos:in.Offset])
		sb.WriteString(in.Text)
		pos = in.Offset
	}
	sb.WriteString(original[pos:])
	return sb.String()
}

// Build maps every original character of the rewritten output back to its
// position in original. Inserted text carries no mapping.
func Build(file, source, original string, insertions []Insertion) *Map {
	sorted := sortInsertions(insertions)

	var w mappingsWriter
	origLine, origCol := 0, 0
	needSegment := true

	emitOriginal := func(text string) {
		for _, r := range text {
			if r == '\n' {
				w.newline()
				origLine++
				origCol = 0
				needSegment = true
				continue
			}
			if needSegment {
				w.segment(origLine, origCol)
				needSegment = false
			}
			n := utf16.RuneLen(r)
			if n < 0 {
				n = 1
			}
			w.genCol += n
			origCol += n
		}
	}

	pos := 0
	for _, in := range sorted {
		emitOriginal(original[pos:in.Offset])
		pos = in.Offset
		for _, r := range in.Text {
			if r == '\n' {
				w.newline()
				continue
			}
			n := utf16.RuneLen(r)
			if n < 0 {
				n = 1
			}
			w.genCol += n
		}
		needSegment = true
	}
	emitOriginal(original[pos:])

	return &Map{
		Version:        3,
		File:           file,
		Sources:        []string{source},
		SourcesContent: []string{original},
		Names:          []string{},
		Mappings:       w.buf.String(),
	}
}

func sortInsertions(insertions []Insertion) []Insertion {
	sorted := make([]Insertion, len(insertions))
	copy(sorted, insertions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})
	return sorted
}

func insertedLen(insertions []Insertion) int {
	n := 0
	for _, in := range insertions {
		n += len(in.Text)
	}
	return n
}

// mappingsWriter emits the "mappings" field. Generated columns are relative
// within a line; source line and column are relative across the whole map.
type mappingsWriter struct {
	buf          strings.Builder
	genCol       int
	prevGenCol   int
	prevOrigLine int
	prevOrigCol  int
	lineHasSeg   bool
}

func (w *mappingsWriter) segment(origLine, origCol int) {
	if w.lineHasSeg {
		w.buf.WriteByte(',')
	}
	writeVLQ(&w.buf, w.genCol-w.prevGenCol)
	writeVLQ(&w.buf, 0)
	writeVLQ(&w.buf, origLine-w.prevOrigLine)
	writeVLQ(&w.buf, origCol-w.prevOrigCol)

	w.prevGenCol = w.genCol
	w.prevOrigLine = origLine
	w.prevOrigCol = origCol
	w.lineHasSeg = true
}

func (w *mappingsWriter) newline() {
	w.buf.WriteByte(';')
	w.genCol = 0
	w.prevGenCol = 0
	w.lineHasSeg = false
}

const base64Digits = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

func writeVLQ(sb *strings.Builder, value int) {
	v := value << 1
	if value < 0 {
		v = (-value << 1) | 1
	}
	for {
		digit := v & 31
		v >>= 5
		if v > 0 {
			digit |= 32
		}
		sb.WriteByte(base64Digits[digit])
		if v == 0 {
			return
		}
	}
}
