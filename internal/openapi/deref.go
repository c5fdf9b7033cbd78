package openapi

import "strings"

// Dereference resolves every internal "$ref" ("#/...") in the document into
// inline content and returns the expanded document. External references are
// left untouched. A reference that is already being resolved higher up the
// chain expands to an empty map instead of recursing forever.
func Dereference(doc map[string]any) map[string]any {
	out := deref(doc, doc, map[string]bool{})
	if m, ok := out.(map[string]any); ok {
		return m
	}
	return doc
}

func deref(node any, root map[string]any, active map[string]bool) any {
	switch value := node.(type) {
	case map[string]any:
		if ref, ok := value["$ref"].(string); ok && strings.HasPrefix(ref, "#/") {
			if active[ref] {
				return map[string]any{}
			}
			target, ok := resolvePointer(root, ref)
			if !ok {
				return value
			}
			active[ref] = true
			resolved := deref(target, root, active)
			delete(active, ref)
			return resolved
		}

		out := make(map[string]any, len(value))
		for key, child := range value {
			out[key] = deref(child, root, active)
		}
		return out

	case []any:
		out := make([]any, len(value))
		for i, child := range value {
			out[i] = deref(child, root, active)
		}
		return out

	default:
		return node
	}
}

// resolvePointer walks a "#/a/b/c" JSON pointer through nested maps.
func resolvePointer(root map[string]any, ref string) (any, bool) {
	var current any = root
	for _, part := range strings.Split(strings.TrimPrefix(ref, "#/"), "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
