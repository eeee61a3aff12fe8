package dms

import (
	"strings"
	"unicode"
)

// formatResource re-keys a resource sub-object from AWS PascalCase into
// snake_case, recursing through nested objects and arrays. Values are left
// untouched.
func formatResource(resource map[string]any) map[string]any {
	out := make(map[string]any, len(resource))
	for k, v := range resource {
		out[snakeCase(k)] = formatValue(v)
	}
	return out
}

// formatResources applies formatResource across a slice of resources.
func formatResources(resources []map[string]any) []map[string]any {
	out := make([]map[string]any, len(resources))
	for i, r := range resources {
		out[i] = formatResource(r)
	}
	return out
}

func formatValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return formatResource(val)
	case []any:
		for i, elem := range val {
			val[i] = formatValue(elem)
		}
		return val
	default:
		return v
	}
}

// snakeCase converts PascalCase to snake_case, keeping acronym runs
// together: "EndpointArn" -> "endpoint_arn", "KMSKeyId" -> "kms_key_id".
func snakeCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			startsWord := i > 0 && (!unicode.IsUpper(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1])))
			if startsWord {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
