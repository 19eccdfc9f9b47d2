package importer

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrUnknownCaseStyle is returned for a CaseStyle outside the known set.
var ErrUnknownCaseStyle = errors.New("unknown name case style")

// NameCaser converts an imported identifier into a style lookup key.
type NameCaser interface {
	ConvertName(name string) (string, error)
}

// CaseStyle names one of the built-in conventions.
type CaseStyle string

const (
	CamelCase    CaseStyle = "camelCase"
	CapitalCase  CaseStyle = "capitalCase"
	ConstantCase CaseStyle = "constantCase"
	DotCase      CaseStyle = "dotCase"
	HeaderCase   CaseStyle = "headerCase"
	NoCase       CaseStyle = "noCase"
	ParamCase    CaseStyle = "paramCase"
	PascalCase   CaseStyle = "pascalCase"
	PathCase     CaseStyle = "pathCase"
	SentenceCase CaseStyle = "sentenceCase"
	SnakeCase    CaseStyle = "snakeCase"

	// KebabCase is an alias of ParamCase.
	KebabCase CaseStyle = "kebabCase"
)

var caseStyles = map[CaseStyle]func(string) string{
	CamelCase:    func(s string) string { return joinWords(s, "", camelWord) },
	CapitalCase:  func(s string) string { return joinWords(s, " ", capitalWord) },
	ConstantCase: func(s string) string { return joinWords(s, "_", upperWord) },
	DotCase:      func(s string) string { return joinWords(s, ".", lowerWord) },
	HeaderCase:   func(s string) string { return joinWords(s, "-", capitalWord) },
	NoCase:       func(s string) string { return joinWords(s, " ", lowerWord) },
	ParamCase:    func(s string) string { return joinWords(s, "-", lowerWord) },
	KebabCase:    func(s string) string { return joinWords(s, "-", lowerWord) },
	PascalCase:   func(s string) string { return joinWords(s, "", pascalWord) },
	PathCase:     func(s string) string { return joinWords(s, "/", lowerWord) },
	SentenceCase: func(s string) string { return joinWords(s, " ", sentenceWord) },
	SnakeCase:    func(s string) string { return joinWords(s, "_", lowerWord) },
}

// ParseCaseStyle validates a style name.
func ParseCaseStyle(name string) (CaseStyle, error) {
	style := CaseStyle(name)
	if _, ok := caseStyles[style]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCaseStyle, name)
	}
	return style, nil
}

func (s CaseStyle) ConvertName(name string) (string, error) {
	convert, ok := caseStyles[s]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCaseStyle, string(s))
	}
	return convert(name), nil
}

// CaseFunc is a caller supplied conversion.
type CaseFunc func(name string) string

func (f CaseFunc) ConvertName(name string) (string, error) {
	return f(name), nil
}

// ResolveName converts identifier with caser. Any failure, including a
// panicking CaseFunc, yields the identifier unchanged.
func ResolveName(identifier string, caser NameCaser) (resolved string) {
	if caser == nil {
		caser = ParamCase
	}
	defer func() {
		if recover() != nil {
			resolved = identifier
		}
	}()

	converted, err := caser.ConvertName(identifier)
	if err != nil {
		return identifier
	}
	return converted
}

var (
	lowerUpper    = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	upperCapital  = regexp.MustCompile(`([A-Z])([A-Z][a-z])`)
	nonWordChars  = regexp.MustCompile(`[^A-Za-z0-9]+`)
	wordSeparator = "\x00"
)

// words splits s at a lower-case letter or digit followed by an upper-case
// letter, and before the last capital of an acronym that starts a new word.
// Digits stay attached to their word, so "IconV2" is "Icon" and "V2" and
// "QRCode" is "QR" and "Code". Anything other than ASCII letters and digits
// separates words and is dropped.
func words(s string) []string {
	s = lowerUpper.ReplaceAllString(s, "${1}"+wordSeparator+"${2}")
	s = upperCapital.ReplaceAllString(s, "${1}"+wordSeparator+"${2}")
	s = nonWordChars.ReplaceAllString(s, wordSeparator)
	s = strings.Trim(s, wordSeparator)
	if s == "" {
		return nil
	}
	return strings.Split(s, wordSeparator)
}

func joinWords(s, sep string, word func(w string, i int) string) string {
	parts := words(s)
	for i, p := range parts {
		parts[i] = word(p, i)
	}
	return strings.Join(parts, sep)
}

// A cases.Caser is stateful, so one is made per call.
func lower(s string) string { return cases.Lower(language.Und).String(s) }

func upper(s string) string { return cases.Upper(language.Und).String(s) }

func lowerWord(w string, _ int) string { return lower(w) }

func upperWord(w string, _ int) string { return upper(w) }

// capitalWord upper-cases the first letter and lowers the rest.
func capitalWord(w string, _ int) string {
	w = lower(w)
	return upper(w[:1]) + w[1:]
}

// pascalWord capitalizes w. A later word starting with a digit gets a "_" so
// it stays apart from the digits before it.
func pascalWord(w string, i int) string {
	first, rest := w[:1], lower(w[1:])
	if i > 0 && first[0] >= '0' && first[0] <= '9' {
		return "_" + first + rest
	}
	return upper(first) + rest
}

func camelWord(w string, i int) string {
	if i == 0 {
		return lower(w)
	}
	return pascalWord(w, i)
}

func sentenceWord(w string, i int) string {
	if i == 0 {
		return capitalWord(w, i)
	}
	return lower(w)
}
