// Package payload prunes placeholder emptiness out of decoded LLM JSON.
// The provider contract asks the model to omit unknown fields rather than
// invent values, but models still emit nulls, empty strings and empty lists;
// those must be stripped before the data reaches the canonical schema.
package payload

// EmptyPayloadError signals that nothing usable survived pruning, i.e. the
// provider returned no signal at all.
type EmptyPayloadError struct{}

func (e *EmptyPayloadError) Error() string {
	return "payload is empty after pruning"
}

// Prune walks a decoded JSON value (map[string]any, []any, string, float64,
// bool, nil) and removes object keys whose pruned value is null, an empty
// string, or an empty collection. Sequence elements are pruned the same way;
// a sequence left empty collapses to nil, which drops its parent key.
// Returns an EmptyPayloadError when the top-level result is empty.
func Prune(value any) (any, error) {
	pruned := prune(value)
	if isEmpty(pruned) {
		return nil, &EmptyPayloadError{}
	}
	return pruned, nil
}

func prune(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			cleaned := prune(item)
			if isEmpty(cleaned) {
				continue
			}
			out[key] = cleaned
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			cleaned := prune(item)
			if isEmpty(cleaned) {
				continue
			}
			out = append(out, cleaned)
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		return value
	}
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}
	return false
}
