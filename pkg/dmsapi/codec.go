package dmsapi

import (
	"encoding/json"
	"fmt"
)

// decodeInput fills the SDK input struct from a parameter map. Keys use AWS
// PascalCase names, which Go's JSON decoder matches against the struct's
// exported fields.
func decodeInput(params map[string]any, dst any) error {
	if len(params) == 0 {
		return nil
	}
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("encoding parameters: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decoding parameters: %w", err)
	}
	return nil
}

// encodeOutput flattens an SDK output struct into a map, dropping the SDK's
// response metadata so callers see only API-level fields. Unset fields are
// pruned entirely: a field the service did not return must not appear in the
// map at all, which is what the pagination-token contract relies on.
func encodeOutput(src any) (map[string]any, error) {
	data, err := json.Marshal(src)
	if err != nil {
		return nil, fmt.Errorf("encoding response: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	delete(out, "ResultMetadata")
	return pruneNulls(out).(map[string]any), nil
}

// pruneNulls removes null-valued keys from maps, recursing through nested
// maps and slices. SDK output structs carry no omitempty tags, so every
// unset pointer field arrives here as an explicit null.
func pruneNulls(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, elem := range val {
			if elem == nil {
				delete(val, k)
				continue
			}
			val[k] = pruneNulls(elem)
		}
		return val
	case []any:
		for i, elem := range val {
			val[i] = pruneNulls(elem)
		}
		return val
	default:
		return v
	}
}
