package document

import "strings"

// Object returns v as an ordered object. Both pointer and value forms are accepted.
func Object(v any) (*Map, bool) {
	switch t := v.(type) {
	case *Map:
		return t, t != nil
	case Map:
		return &t, true
	default:
		return nil, false
	}
}

// Array returns v as a JSON array.
func Array(v any) ([]any, bool) {
	arr, ok := v.([]any)
	return arr, ok
}

// String returns obj[key] when it is a string.
func String(obj *Map, key string) (string, bool) {
	if obj == nil {
		return "", false
	}
	v, ok := obj.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Text renders a string or number field as text. Other values yield "".
func Text(obj *Map, key string) string {
	if obj == nil {
		return ""
	}
	v, ok := obj.Get(key)
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case interface{ String() string }:
		return t.String()
	default:
		return ""
	}
}

// NonBlank returns obj[key] when it is a string with non-whitespace content.
func NonBlank(obj *Map, key string) (string, bool) {
	s, ok := String(obj, key)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// Has reports whether obj contains key.
func Has(obj *Map, key string) bool {
	if obj == nil {
		return false
	}
	_, ok := obj.Get(key)
	return ok
}

// Reorder rewrites the key order of obj to keys. Keys of obj missing from
// keys keep their relative order after the listed ones; listed keys absent
// from obj are ignored.
func Reorder(obj *Map, keys []string) {
	if obj == nil {
		return
	}
	seen := make(map[string]bool, len(keys))
	order := make([]string, 0, len(obj.Keys()))
	for _, k := range keys {
		if Has(obj, k) && !seen[k] {
			seen[k] = true
			order = append(order, k)
		}
	}
	for _, k := range obj.Keys() {
		if !seen[k] {
			order = append(order, k)
		}
	}

	for _, k := range order {
		v, _ := obj.Get(k)
		obj.Delete(k)
		obj.Set(k, v)
	}
}

// MoveAfter places key immediately after anchor, preserving the relative order
// of every other key. It is a no-op unless both keys are present.
func MoveAfter(obj *Map, key, anchor string) {
	if key == anchor || !Has(obj, key) || !Has(obj, anchor) {
		return
	}
	order := make([]string, 0, len(obj.Keys()))
	for _, k := range obj.Keys() {
		if k == key {
			continue
		}
		order = append(order, k)
		if k == anchor {
			order = append(order, key)
		}
	}
	Reorder(obj, order)
}

// AppendUnique appends values to list, skipping exact duplicates of items
// already present. It reports whether anything was appended.
func AppendUnique(list []any, values ...string) ([]any, bool) {
	seen := make(map[string]bool, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			seen[s] = true
		}
	}
	added := false
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		list = append(list, v)
		added = true
	}
	return list, added
}

// EnsureList returns v as a list: nil becomes an empty list, arrays pass
// through and any other value becomes a one-item list.
func EnsureList(v any) []any {
	switch t := v.(type) {
	case nil:
		return []any{}
	case []any:
		return t
	default:
		return []any{t}
	}
}

// Clone returns a deep copy of a parsed document.
func Clone(v any) any {
	switch t := v.(type) {
	case *Map:
		if t == nil {
			return t
		}
		out := NewMap()
		for _, k := range t.Keys() {
			val, _ := t.Get(k)
			out.Set(k, Clone(val))
		}
		return out
	case Map:
		return Clone(&t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = Clone(item)
		}
		return out
	default:
		return t
	}
}

// DedupStrings removes repeated string items, keeping the first occurrence.
func DedupStrings(list []any) []any {
	seen := make(map[string]bool, len(list))
	out := make([]any, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			if seen[s] {
				continue
			}
			seen[s] = true
		}
		out = append(out, item)
	}
	return out
}
