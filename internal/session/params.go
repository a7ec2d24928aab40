// Package session resolves the loosely shaped Dialogflow CX session
// parameters into typed values. A parameter may arrive absent, as a bare
// scalar, as a comma-delimited string, or as an array; everything past this
// boundary only ever sees typed slices.
package session

import (
	"strconv"
	"strings"
)

// Params is the parameter mapping of one webhook call.
type Params map[string]any

// Text returns the named parameter as a trimmed string. Absent parameters
// and JSON null yield "".
func (p Params) Text(key string) string {
	return strings.TrimSpace(stringify(p[key]))
}

// Texts returns the named parameter as an ordered list of strings. A string
// value is split on commas; pieces that are empty after trimming are dropped.
func (p Params) Texts(key string) []string {
	out := []string{}
	for _, piece := range pieces(p[key]) {
		if piece != "" {
			out = append(out, piece)
		}
	}
	return out
}

// Ints returns the named parameter as an ordered list of integers. A piece
// that does not parse becomes 0 rather than being dropped, so the result
// stays positionally aligned with a paired Texts parameter. Callers still
// have to check length equality between the two.
func (p Params) Ints(key string) []int {
	out := []int{}
	for _, piece := range pieces(p[key]) {
		n, err := strconv.Atoi(piece)
		if err != nil {
			n = 0
		}
		out = append(out, n)
	}
	return out
}

// pieces flattens the tagged union into trimmed string pieces.
func pieces(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(v))
		for _, elem := range v {
			out = append(out, strings.TrimSpace(stringify(elem)))
		}
		return out
	case string:
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	default:
		return []string{strings.TrimSpace(stringify(v))}
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		// JSON numbers decode as float64; print 2 rather than 2.000000.
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
