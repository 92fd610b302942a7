package services

import "encoding/json"

// CleanPayload strips absent values from an outbound JSON payload: nulls,
// empty strings, and objects or arrays that end up empty after cleaning.
// Legitimate zero values (false, 0) are kept. The input is round-tripped
// through JSON, so any marshalable value is accepted; the result is the
// generic form (maps, slices, primitives) ready for re-marshaling.
//
// The carrier API rejects some requests when optional fields are present
// but null, so outbound payloads are cleaned rather than sent verbatim.
func CleanPayload(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}

	return cleanValue(generic), nil
}

// cleanValue returns nil for values that should be dropped.
func cleanValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		if val == "" {
			return nil
		}
		return val
	case map[string]any:
		cleaned := make(map[string]any, len(val))
		for k, item := range val {
			if c := cleanValue(item); c != nil {
				cleaned[k] = c
			}
		}
		if len(cleaned) == 0 {
			return nil
		}
		return cleaned
	case []any:
		cleaned := make([]any, 0, len(val))
		for _, item := range val {
			if c := cleanValue(item); c != nil {
				cleaned = append(cleaned, c)
			}
		}
		if len(cleaned) == 0 {
			return nil
		}
		return cleaned
	default:
		// Numbers and booleans are kept as-is, including 0 and false.
		return val
	}
}
