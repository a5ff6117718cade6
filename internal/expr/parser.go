package expr

import (
	"slices"
	"strings"
)

// Parse splits text into an input name, a JSONPath suffix and a
// transform pipeline. The pipeline is recognized by repeatedly
// stripping a trailing "| name" or "| name(args)" segment from the
// text; a pipe whose suffix does not form such a segment stays part of
// the path. Parse returns ErrNotExpression when text does not begin
// with '$'.
func Parse(text string) (*Expression, error) {
	if len(text) == 0 || text[0] != '$' {
		return nil, ErrNotExpression
	}
	rest := text[1:]
	i := 0
	for i < len(rest) && isWordChar(rest[i]) {
		i++
	}
	input := rest[:i]
	window := rest[i:]

	var transforms []Transform
	for {
		remaining, transform, ok := stripTrailingTransform(window)
		if !ok {
			break
		}
		transforms = append(transforms, transform)
		window = remaining
	}
	slices.Reverse(transforms)

	return &Expression{
		Input:      input,
		Path:       window,
		Transforms: transforms,
	}, nil
}

// stripTrailingTransform finds the leftmost pipe whose suffix parses as
// exactly one transform segment and removes it, together with any
// blanks preceding the pipe.
func stripTrailingTransform(window string) (string, Transform, bool) {
	for i := 0; i < len(window); i++ {
		if window[i] != '|' {
			continue
		}
		transform, ok := parsePipeSuffix(window[i:])
		if !ok {
			continue
		}
		return strings.TrimRight(window[:i], " \t"), transform, true
	}
	return window, Transform{}, false
}

// parsePipeSuffix parses "| name" or "| name(args)" spanning the whole
// of s, with blanks allowed around every element.
func parsePipeSuffix(s string) (Transform, bool) {
	pos := skipBlank(s, 1)
	start := pos
	for pos < len(s) && isWordChar(s[pos]) {
		pos++
	}
	if pos == start {
		return Transform{}, false
	}
	name := s[start:pos]
	pos = skipBlank(s, pos)

	var args []string
	if pos < len(s) && s[pos] == '(' {
		closing := strings.IndexByte(s[pos+1:], ')')
		if closing < 0 {
			return Transform{}, false
		}
		args = splitArgs(strings.Trim(s[pos+1:pos+1+closing], " \t"))
		pos = skipBlank(s, pos+closing+2)
	}
	if pos != len(s) {
		return Transform{}, false
	}
	return Transform{Name: name, Args: args}, true
}

func splitArgs(list string) []string {
	parts := strings.Split(list, ",")
	for i, part := range parts {
		parts[i] = strings.Trim(part, " \t")
	}
	return parts
}

func skipBlank(s string, pos int) int {
	for pos < len(s) && (s[pos] == ' ' || s[pos] == '\t') {
		pos++
	}
	return pos
}

func isWordChar(c byte) bool {
	return c == '_' || '0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}
