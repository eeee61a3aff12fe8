package dms

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedCall is one CallAPI invocation seen by the fake gateway.
type recordedCall struct {
	Operation string
	Params    map[string]any
}

// fakeInvoker satisfies dmsapi.Invoker for tests. Responses are served in
// FIFO order; the last response repeats once the queue is drained.
type fakeInvoker struct {
	calls     []recordedCall
	responses []map[string]any
	err       error
}

func (f *fakeInvoker) CallAPI(_ context.Context, operation string, params map[string]any) (map[string]any, error) {
	f.calls = append(f.calls, recordedCall{Operation: operation, Params: params})
	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) == 0 {
		return map[string]any{}, nil
	}
	resp := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return resp, nil
}

func (f *fakeInvoker) lastCall(t *testing.T) recordedCall {
	t.Helper()
	require.NotEmpty(t, f.calls, "no gateway call recorded")
	return f.calls[len(f.calls)-1]
}

func TestPagedListDefaultPageSize(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{{"Endpoints": []any{}}}}
	m := manager{client: inv}

	res, err := m.pagedList(context.Background(), listSpec{
		operation:   "describe_endpoints",
		responseKey: "Endpoints",
		resultKey:   "endpoints",
		format:      formatResource,
	}, ListOptions{}, nil)
	require.NoError(t, err)
	require.True(t, res.Success)

	call := inv.lastCall(t)
	assert.Equal(t, "describe_endpoints", call.Operation)
	assert.Equal(t, 100, call.Params["MaxRecords"])
	assert.NotContains(t, call.Params, "Filters")
	assert.NotContains(t, call.Params, "Marker")
}

func TestPagedListConfiguredPageSize(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{{"Endpoints": []any{}}}}
	m := manager{client: inv}
	m.SetDefaultPageSize(7)

	_, err := m.pagedList(context.Background(), listSpec{
		operation:   "describe_endpoints",
		responseKey: "Endpoints",
		resultKey:   "endpoints",
	}, ListOptions{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, inv.lastCall(t).Params["MaxRecords"])

	// An explicit per-call page size still wins over the configured default.
	_, err = m.pagedList(context.Background(), listSpec{
		operation:   "describe_endpoints",
		responseKey: "Endpoints",
		resultKey:   "endpoints",
	}, ListOptions{MaxResults: 3}, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, inv.lastCall(t).Params["MaxRecords"])
}

func TestPagedListPageSizeForwardedUnclamped(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{{"Endpoints": []any{}}}}
	m := manager{client: inv}

	_, err := m.pagedList(context.Background(), listSpec{
		operation:   "describe_endpoints",
		responseKey: "Endpoints",
		resultKey:   "endpoints",
	}, ListOptions{MaxResults: 1000}, nil)
	require.NoError(t, err)

	// Out-of-range page sizes go upstream untouched; AWS rejects them.
	assert.Equal(t, 1000, inv.lastCall(t).Params["MaxRecords"])
}

func TestPagedListEmptyFiltersOmitted(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{{"Endpoints": []any{}}}}
	m := manager{client: inv}

	_, err := m.pagedList(context.Background(), listSpec{
		operation:   "describe_endpoints",
		responseKey: "Endpoints",
		resultKey:   "endpoints",
	}, ListOptions{Filters: []Filter{}}, nil)
	require.NoError(t, err)

	assert.NotContains(t, inv.lastCall(t).Params, "Filters")
}

func TestPagedListFiltersAndMarkerForwarded(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{{"Endpoints": []any{}}}}
	m := manager{client: inv}

	filters := []Filter{{Name: "engine-name", Values: []string{"mysql"}}}
	_, err := m.pagedList(context.Background(), listSpec{
		operation:   "describe_endpoints",
		responseKey: "Endpoints",
		resultKey:   "endpoints",
	}, ListOptions{Filters: filters, Marker: "page-2"}, nil)
	require.NoError(t, err)

	call := inv.lastCall(t)
	assert.Equal(t, filters, call.Params["Filters"])
	assert.Equal(t, "page-2", call.Params["Marker"])
}

func TestPagedListTokenPresentOnlyWhenReturned(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{
			"Endpoints": []any{map[string]any{"EndpointArn": "arn-1"}},
			"Marker":    "token-1",
		},
		{
			"Endpoints": []any{map[string]any{"EndpointArn": "arn-2"}},
		},
	}}
	m := manager{client: inv}
	spec := listSpec{
		operation:   "describe_endpoints",
		responseKey: "Endpoints",
		resultKey:   "endpoints",
		format:      formatResource,
	}

	first, err := m.pagedList(context.Background(), spec, ListOptions{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Data["count"])
	assert.Equal(t, "token-1", first.Data["next_marker"])

	second, err := m.pagedList(context.Background(), spec, ListOptions{Marker: "token-1"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Data["count"])
	assert.NotContains(t, second.Data, "next_marker")
}

func TestPagedListNextTokenFamily(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{
			"Recommendations": []any{map[string]any{"DatabaseId": "db-1"}},
			"NextToken":       "tok",
		},
	}}
	m := manager{client: inv}

	res, err := m.pagedList(context.Background(), listSpec{
		operation:   "describe_recommendations",
		responseKey: "Recommendations",
		resultKey:   "recommendations",
		nextToken:   true,
		format:      formatResource,
	}, ListOptions{Marker: "prev"}, nil)
	require.NoError(t, err)

	call := inv.lastCall(t)
	assert.Equal(t, "prev", call.Params["NextToken"])
	assert.NotContains(t, call.Params, "Marker")
	assert.Equal(t, "tok", res.Data["next_token"])
	assert.NotContains(t, res.Data, "next_marker")
}

func TestPagedListFormatsItems(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{"Endpoints": []any{map[string]any{"EndpointArn": "arn-1", "EngineName": "mysql"}}},
	}}
	m := manager{client: inv}

	res, err := m.pagedList(context.Background(), listSpec{
		operation:   "describe_endpoints",
		responseKey: "Endpoints",
		resultKey:   "endpoints",
		format:      formatResource,
	}, ListOptions{}, nil)
	require.NoError(t, err)

	items := res.Data["endpoints"].([]map[string]any)
	require.Len(t, items, 1)
	assert.Equal(t, "arn-1", items[0]["endpoint_arn"])
	assert.Equal(t, "mysql", items[0]["engine_name"])
}

func TestPagedListExtraParams(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{{"TableStatistics": []any{}}}}
	m := manager{client: inv}

	_, err := m.pagedList(context.Background(), listSpec{
		operation:   "describe_table_statistics",
		responseKey: "TableStatistics",
		resultKey:   "table_statistics",
	}, ListOptions{}, map[string]any{"ReplicationTaskArn": "task-arn"})
	require.NoError(t, err)

	assert.Equal(t, "task-arn", inv.lastCall(t).Params["ReplicationTaskArn"])
}

func TestPagedListGatewayErrorPropagates(t *testing.T) {
	boom := errors.New("throttled")
	inv := &fakeInvoker{err: boom}
	m := manager{client: inv}

	_, err := m.pagedList(context.Background(), listSpec{
		operation:   "describe_endpoints",
		responseKey: "Endpoints",
		resultKey:   "endpoints",
	}, ListOptions{}, nil)
	assert.ErrorIs(t, err, boom)
}

func TestMutateMissingRequiredParams(t *testing.T) {
	inv := &fakeInvoker{}
	m := manager{client: inv}

	_, err := m.mutate(context.Background(), mutationSpec{
		operation: "create_endpoint",
		required:  []string{"EndpointIdentifier", "EndpointType", "EngineName"},
	}, map[string]any{"EndpointIdentifier": "ep"})

	var invalid *InvalidParameterError
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Message, "EndpointType")
	assert.Contains(t, invalid.Message, "EngineName")
	assert.Empty(t, inv.calls, "no upstream call on validation failure")
}

func TestMutateValidatorRunsBeforeCall(t *testing.T) {
	inv := &fakeInvoker{}
	m := manager{client: inv}

	_, err := m.mutate(context.Background(), mutationSpec{
		operation: "create_endpoint",
		required:  []string{"EndpointIdentifier"},
		validate: func(map[string]any) error {
			return invalidParamf("bad config")
		},
	}, map[string]any{"EndpointIdentifier": "ep"})

	var invalid *InvalidParameterError
	require.ErrorAs(t, err, &invalid)
	assert.Empty(t, inv.calls)
}

func TestMutateFormatsResourceAndMessage(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{"Endpoint": map[string]any{"EndpointArn": "arn-1", "Status": "active"}},
	}}
	m := manager{client: inv}

	res, err := m.mutate(context.Background(), mutationSpec{
		operation:   "create_endpoint",
		required:    []string{"EndpointIdentifier"},
		responseKey: "Endpoint",
		resultKey:   "endpoint",
		message:     "Endpoint created successfully",
	}, map[string]any{"EndpointIdentifier": "ep"})
	require.NoError(t, err)

	require.True(t, res.Success)
	assert.Equal(t, "Endpoint created successfully", res.Data["message"])
	endpoint := res.Data["endpoint"].(map[string]any)
	assert.Equal(t, "arn-1", endpoint["endpoint_arn"])
	assert.Equal(t, "active", endpoint["status"])
}

func TestMutateGatewayErrorPropagates(t *testing.T) {
	boom := errors.New("access denied")
	inv := &fakeInvoker{err: boom}
	m := manager{client: inv}

	_, err := m.mutate(context.Background(), mutationSpec{
		operation: "delete_endpoint",
		required:  []string{"EndpointArn"},
	}, map[string]any{"EndpointArn": "arn"})
	assert.ErrorIs(t, err, boom)
}
