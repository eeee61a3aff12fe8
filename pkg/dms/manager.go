package dms

import (
	"context"
	"strings"

	"github.com/dmsmcp/dmsmcp/pkg/defaults"
	"github.com/dmsmcp/dmsmcp/pkg/dmsapi"
	"github.com/dmsmcp/dmsmcp/pkg/logging"
)

// manager is the plumbing every resource-family manager embeds: the gateway
// handle plus the two generic operation contracts.
type manager struct {
	client   dmsapi.Invoker
	pageSize int // MaxRecords used when a list call does not request one
}

// SetDefaultPageSize overrides the page size applied when a list call does
// not request one. Zero or negative keeps the built-in default.
func (m *manager) SetDefaultPageSize(n int) {
	if n > 0 {
		m.pageSize = n
	}
}

// listSpec declares one list operation over the generic paged-list contract.
type listSpec struct {
	operation   string // gateway operation name
	responseKey string // AWS key holding the item slice, e.g. "Endpoints"
	resultKey   string // envelope key for the items, e.g. "endpoints"
	nextToken   bool   // family paginates with NextToken instead of Marker
	format      func(map[string]any) map[string]any
}

// pagedList implements the generic list contract. extra carries
// family-specific parameters beyond filters/page-size/marker and may be nil.
func (m *manager) pagedList(ctx context.Context, spec listSpec, opts ListOptions, extra map[string]any) (*Result, error) {
	params := make(map[string]any, len(extra)+3)
	for k, v := range extra {
		params[k] = v
	}
	if len(opts.Filters) > 0 {
		params["Filters"] = opts.Filters
	}
	maxResults := opts.MaxResults
	if maxResults == 0 {
		maxResults = m.pageSize
	}
	if maxResults == 0 {
		maxResults = defaults.MaxResults
	}
	params["MaxRecords"] = maxResults

	tokenParam, tokenKey := "Marker", "next_marker"
	if spec.nextToken {
		tokenParam, tokenKey = "NextToken", "next_token"
	}
	if opts.Marker != "" {
		params[tokenParam] = opts.Marker
	}

	resp, err := m.client.CallAPI(ctx, spec.operation, params)
	if err != nil {
		return nil, err
	}

	items := mapSlice(resp[spec.responseKey])
	if spec.format != nil {
		for i, item := range items {
			items[i] = spec.format(item)
		}
	}

	data := map[string]any{
		"count":        len(items),
		spec.resultKey: items,
	}
	if tok, present := resp[tokenParam]; present {
		data[tokenKey] = tok
	}
	return okResult(data), nil
}

// mutationSpec declares one mutating operation over the generic contract.
type mutationSpec struct {
	operation   string
	required    []string // AWS parameter names that must be present
	responseKey string   // AWS key of the resource sub-object, "" when none
	resultKey   string   // envelope key for the formatted sub-object
	message     string   // fixed success message
	validate    func(map[string]any) error
}

// mutate implements the generic create/modify/delete contract. Secrets in
// params reach the wire unmodified; only the log line is masked.
func (m *manager) mutate(ctx context.Context, spec mutationSpec, params map[string]any) (*Result, error) {
	if missing := missingKeys(spec.required, params); len(missing) > 0 {
		return nil, invalidParamf("Missing required parameter(s): %s", strings.Join(missing, ", "))
	}
	if spec.validate != nil {
		if err := spec.validate(params); err != nil {
			return nil, err
		}
	}

	logging.Debug("Manager", "%s params=%v", spec.operation, logging.MaskSecrets(params))
	resp, err := m.client.CallAPI(ctx, spec.operation, params)
	if err != nil {
		return nil, err
	}

	data := map[string]any{"message": spec.message}
	if spec.responseKey != "" {
		data[spec.resultKey] = formatResource(asMap(resp[spec.responseKey]))
	}
	return okResult(data), nil
}

// missingKeys returns the required keys absent from params, in declaration
// order.
func missingKeys(required []string, params map[string]any) []string {
	var missing []string
	for _, key := range required {
		if _, present := params[key]; !present {
			missing = append(missing, key)
		}
	}
	return missing
}

// asMap converts a decoded JSON value to a map, returning an empty map for
// anything else.
func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// mapSlice converts a decoded JSON array into a slice of maps, skipping
// non-object elements. A missing or non-array value yields an empty slice.
func mapSlice(v any) []map[string]any {
	raw, ok := v.([]any)
	if !ok {
		return []map[string]any{}
	}
	items := make([]map[string]any, 0, len(raw))
	for _, elem := range raw {
		if m, ok := elem.(map[string]any); ok {
			items = append(items, m)
		}
	}
	return items
}
