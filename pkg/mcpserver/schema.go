package mcpserver

import "github.com/dmsmcp/dmsmcp/pkg/dms"

// JSON Schema construction helpers. Every tool declares its input schema as
// a plain map, the way the SDK consumes it; these helpers keep the ~100
// declarations compact and uniform.

func objectSchema(props map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringProp(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func intProp(desc string) map[string]any {
	return map[string]any{"type": "integer", "description": desc}
}

func boolProp(desc string) map[string]any {
	return map[string]any{"type": "boolean", "description": desc}
}

func objectProp(desc string) map[string]any {
	return map[string]any{"type": "object", "description": desc}
}

func stringArrayProp(desc string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": desc,
	}
}

func objectArrayProp(desc string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "object"},
		"description": desc,
	}
}

// filtersProp is the schema of the AWS-style Filters parameter shared by
// most describe operations.
func filtersProp() map[string]any {
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"Name":   map[string]any{"type": "string"},
				"Values": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			},
			"required": []string{"Name", "Values"},
		},
		"description": "Filters to narrow the results, e.g. [{\"Name\": \"engine-name\", \"Values\": [\"mysql\"]}].",
	}
}

// listProps merges the shared pagination properties into extra. extra may
// be nil for operations that take only the pagination contract.
func listProps(extra map[string]any) map[string]any {
	props := map[string]any{
		"filters":     filtersProp(),
		"max_records": intProp("Page size (default 100). Forwarded as-is; the service enforces its own cap."),
		"marker":      stringProp("Continuation token from a previous page."),
	}
	for k, v := range extra {
		props[k] = v
	}
	return props
}

// pageProps is listProps without filters, for operations that paginate but
// do not accept the Filters parameter.
func pageProps(extra map[string]any) map[string]any {
	props := map[string]any{
		"max_records": intProp("Page size (default 100)."),
		"marker":      stringProp("Continuation token from a previous page."),
	}
	for k, v := range extra {
		props[k] = v
	}
	return props
}

// Parameter-map construction helpers. Optional tool arguments are added to
// the outgoing AWS parameter map only when the caller actually set them;
// zero values mean "omitted", and optional booleans are pointers so false
// can still be sent explicitly.

func setString(params map[string]any, key, v string) {
	if v != "" {
		params[key] = v
	}
}

func setInt(params map[string]any, key string, v int) {
	if v != 0 {
		params[key] = v
	}
}

func setBool(params map[string]any, key string, v *bool) {
	if v != nil {
		params[key] = *v
	}
}

func setStrings(params map[string]any, key string, v []string) {
	if len(v) > 0 {
		params[key] = v
	}
}

func setObject(params map[string]any, key string, v map[string]any) {
	if len(v) > 0 {
		params[key] = v
	}
}

func setObjects(params map[string]any, key string, v []map[string]any) {
	if len(v) > 0 {
		params[key] = v
	}
}

// listArgs are the decoded arguments of the shared pagination contract.
type listArgs struct {
	Filters    []dms.Filter `json:"filters"`
	MaxRecords int          `json:"max_records"`
	Marker     string       `json:"marker"`
}

func (a listArgs) options() dms.ListOptions {
	return dms.ListOptions{
		Filters:    a.Filters,
		MaxResults: a.MaxRecords,
		Marker:     a.Marker,
	}
}
