package dms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartRecommendations(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{{}}}
	m := NewRecommendationManager(inv)

	settings := map[string]any{"InstanceSizingType": "total-capacity", "WorkloadType": "oltp"}
	res, err := m.StartRecommendations(context.Background(), "database-123", settings)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "Recommendations generation started", res.Data["message"])
	assert.Equal(t, "database-123", res.Data["database_id"])

	call := inv.lastCall(t)
	assert.Equal(t, "start_recommendations", call.Operation)
	assert.Equal(t, "database-123", call.Params["DatabaseId"])
	assert.Equal(t, settings, call.Params["Settings"])
}

func TestBatchStartRecommendations(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{{"ErrorEntries": []any{}}}}
	m := NewRecommendationManager(inv)

	data := []map[string]any{
		{"DatabaseId": "db-1", "Settings": map[string]any{}},
		{"DatabaseId": "db-2", "Settings": map[string]any{}},
	}
	res, err := m.BatchStartRecommendations(context.Background(), data)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "Batch recommendations started", res.Data["message"])
	assert.Empty(t, res.Data["error_entries"])
	assert.Equal(t, data, inv.lastCall(t).Params["Data"])
}

func TestBatchStartRecommendationsPartialErrors(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{"ErrorEntries": []any{
			map[string]any{"DatabaseId": "db-1", "Message": "Database not found"},
			map[string]any{"DatabaseId": "db-3", "Message": "Invalid settings"},
		}},
	}}
	m := NewRecommendationManager(inv)

	res, err := m.BatchStartRecommendations(context.Background(), []map[string]any{
		{"DatabaseId": "db-1"}, {"DatabaseId": "db-2"}, {"DatabaseId": "db-3"},
	})
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Contains(t, res.Data["message"], "errors: 2")
	entries := res.Data["error_entries"].([]map[string]any)
	require.Len(t, entries, 2)
	assert.Equal(t, "db-1", entries[0]["database_id"])
}

func TestBatchStartRecommendationsNilDataOmitted(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{{"ErrorEntries": []any{}}}}
	m := NewRecommendationManager(inv)

	res, err := m.BatchStartRecommendations(context.Background(), nil)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.NotContains(t, inv.lastCall(t).Params, "Data")
}

func TestListRecommendationsPagination(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{
			"Recommendations": []any{map[string]any{"DatabaseId": "db-1"}},
			"NextToken":       "token-1",
		},
		{
			"Recommendations": []any{map[string]any{"DatabaseId": "db-2"}},
		},
	}}
	m := NewRecommendationManager(inv)

	first, err := m.ListRecommendations(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Data["count"])
	assert.Equal(t, "token-1", first.Data["next_token"])

	second, err := m.ListRecommendations(context.Background(), ListOptions{Marker: "token-1"})
	require.NoError(t, err)
	assert.Equal(t, "token-1", inv.lastCall(t).Params["NextToken"])
	assert.NotContains(t, second.Data, "next_token")
}

func TestListLimitations(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{"Limitations": []any{map[string]any{"Name": "memory"}}},
	}}
	m := NewRecommendationManager(inv)

	res, err := m.ListLimitations(context.Background(), ListOptions{MaxResults: 25})
	require.NoError(t, err)

	call := inv.lastCall(t)
	assert.Equal(t, "describe_recommendation_limitations", call.Operation)
	assert.Equal(t, 25, call.Params["MaxRecords"])
	assert.Equal(t, 1, res.Data["count"])
}
