package bdd

import (
	"reflect"
	"runtime"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// funcName derives a readable name from a function value.
// Package paths, receivers, generic arguments and closure suffixes are
// dropped, so a step built by TwoNumbers(2, 9) is named "TwoNumbers".
func funcName(fn any) string {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return "<nil>"
	}

	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return "<unknown>"
	}
	return trimFuncName(f.Name())
}

func trimFuncName(full string) string {
	name := stripBrackets(full)
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, "-fm")

	parts := strings.Split(name, ".")
	// parts[0] is the package name.
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for len(parts) > 1 && isClosureSegment(parts[len(parts)-1]) {
		parts = parts[:len(parts)-1]
	}
	return parts[len(parts)-1]
}

func stripBrackets(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '[':
			depth++
		case r == ']':
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isClosureSegment(seg string) bool {
	if rest, ok := strings.CutPrefix(seg, "func"); ok {
		seg = rest
	}
	if seg == "" {
		return false
	}
	for _, r := range seg {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Humanize turns an identifier such as "TheyAreAddedTogether" into
// "They are added together". Acronyms keep their case.
func Humanize(name string) string {
	words := splitWords(name)
	if len(words) == 0 {
		return name
	}

	lower := cases.Lower(language.English)
	title := cases.Title(language.English, cases.NoLower)
	for i, w := range words {
		if isAcronym(w) {
			continue
		}
		if i == 0 {
			words[i] = title.String(lower.String(w))
			continue
		}
		words[i] = lower.String(w)
	}
	return strings.Join(words, " ")
}

func splitWords(s string) []string {
	var words []string
	runes := []rune(s)
	start := 0
	flush := func(end int) {
		if end > start {
			words = append(words, string(runes[start:end]))
		}
		start = end
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			flush(i)
			start = i + 1
			continue
		}
		if i == start {
			continue
		}
		prev := runes[i-1]
		switch {
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			flush(i)
		case unicode.IsDigit(r) != unicode.IsDigit(prev):
			flush(i)
		case unicode.IsUpper(r) && unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
			flush(i)
		}
	}
	flush(len(runes))
	return words
}

func isAcronym(w string) bool {
	if len([]rune(w)) < 2 {
		return false
	}
	for _, r := range w {
		if unicode.IsLower(r) {
			return false
		}
	}
	return true
}
