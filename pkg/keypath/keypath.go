// Package keypath expands flat objects whose keys contain path separators
// into nested objects, e.g. {"a.b.c": 1} -> {"a": {"b": {"c": 1}}}.
package keypath

import "strings"

// DefaultSeparator splits key paths when no separator is given.
const DefaultSeparator = "."

// Expand converts a flat map with separator-delimited keys into a nested
// map. Later keys win when paths collide; a scalar already stored at an
// intermediate path is replaced by the nested object. The input is never
// mutated.
func Expand(flat map[string]any) map[string]any {
	return ExpandSep(flat, DefaultSeparator)
}

// ExpandSep is Expand with an explicit separator.
func ExpandSep(flat map[string]any, sep string) map[string]any {
	out := make(map[string]any, len(flat))
	if sep == "" {
		sep = DefaultSeparator
	}
	for key, value := range flat {
		parts := strings.Split(key, sep)
		node := out
		for i, part := range parts {
			if i == len(parts)-1 {
				node[part] = value
				break
			}
			child, ok := node[part].(map[string]any)
			if !ok {
				child = map[string]any{}
				node[part] = child
			}
			node = child
		}
	}
	return out
}
