package lang

import (
	"maps"
	"reflect"
	"slices"
)

// sortedKeys returns the keys of m in lexical order, or nil if m is empty.
func sortedKeys[T any](m map[string]T) []string {
	if len(m) == 0 {
		return nil
	}

	return slices.Sorted(maps.Keys(m))
}

// typeName names the dynamic type of a value for diagnostics.
func typeName(value any) string {
	if value == nil {
		return "null"
	}

	return reflect.TypeOf(value).String()
}
