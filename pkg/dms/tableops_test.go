package dms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableStatisticsSummary(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{"TableStatistics": []any{
			map[string]any{
				"SchemaName": "public", "TableName": "orders", "TableState": "Table completed",
				"Inserts": float64(10), "Deletes": float64(2), "Updates": float64(5),
				"Ddls": float64(1), "FullLoadRows": float64(1000), "FullLoadErrorRows": float64(0),
			},
			map[string]any{
				"SchemaName": "public", "TableName": "users", "TableState": "Table loading",
				"Inserts": float64(3), "Deletes": float64(0), "Updates": float64(1),
				"Ddls": float64(0), "FullLoadRows": float64(500), "FullLoadErrorRows": float64(4),
			},
		}},
	}}
	o := NewTableOperations(inv)

	res, err := o.GetTableStatistics(context.Background(), "task-arn", ListOptions{})
	require.NoError(t, err)

	assert.Equal(t, "task-arn", inv.lastCall(t).Params["ReplicationTaskArn"])

	stats := res.Data["table_statistics"].([]map[string]any)
	require.Len(t, stats, 2)
	assert.Equal(t, "Full load and ongoing replication complete", stats[0]["state_description"])
	assert.Equal(t, "Full load in progress", stats[1]["state_description"])

	summary := res.Data["summary"].(map[string]any)
	assert.Equal(t, 2, summary["total_tables"])
	assert.Equal(t, 13, summary["total_inserts"])
	assert.Equal(t, 2, summary["total_deletes"])
	assert.Equal(t, 6, summary["total_updates"])
	assert.Equal(t, 1, summary["total_ddls"])
	assert.Equal(t, 1500, summary["total_full_load_rows"])
	assert.Equal(t, 4, summary["total_error_rows"])
}

func TestGetTableStatisticsUnknownStateHasNoDescription(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{"TableStatistics": []any{
			map[string]any{"TableName": "t", "TableState": "Table quarantined"},
		}},
	}}
	o := NewTableOperations(inv)

	res, err := o.GetTableStatistics(context.Background(), "task-arn", ListOptions{})
	require.NoError(t, err)

	stats := res.Data["table_statistics"].([]map[string]any)
	assert.NotContains(t, stats[0], "state_description")
}

func TestGetReplicationTableStatisticsRequiresOneARN(t *testing.T) {
	o := NewTableOperations(&fakeInvoker{})

	_, err := o.GetReplicationTableStatistics(context.Background(), "", "", ListOptions{})
	var invalid *InvalidParameterError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "Must provide either task_arn or config_arn", invalid.Message)
}

func TestGetReplicationTableStatisticsByConfig(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{"ReplicationTableStatistics": []any{}},
	}}
	o := NewTableOperations(inv)

	_, err := o.GetReplicationTableStatistics(context.Background(), "", "config-arn", ListOptions{})
	require.NoError(t, err)

	call := inv.lastCall(t)
	assert.Equal(t, "config-arn", call.Params["ReplicationConfigArn"])
	assert.NotContains(t, call.Params, "ReplicationTaskArn")
}

func TestReloadTables(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{{}}}
	o := NewTableOperations(inv)

	tables := []map[string]any{
		{"SchemaName": "public", "TableName": "orders"},
		{"SchemaName": "public", "TableName": "users"},
	}
	res, err := o.ReloadTables(context.Background(), "task-arn", tables, "")
	require.NoError(t, err)

	call := inv.lastCall(t)
	assert.Equal(t, "reload_tables", call.Operation)
	assert.Equal(t, "data-reload", call.Params["ReloadOption"])

	assert.Equal(t, "Table reload initiated", res.Data["message"])
	assert.Equal(t, 2, res.Data["tables_reloaded"])
	assert.Equal(t, "data-reload", res.Data["reload_option"])
}

func TestReloadTablesValidation(t *testing.T) {
	tests := []struct {
		name    string
		tables  []map[string]any
		option  string
		wantMsg string
	}{
		{
			name:    "empty tables",
			tables:  nil,
			option:  "data-reload",
			wantMsg: "Tables list cannot be empty",
		},
		{
			name:    "missing schema name",
			tables:  []map[string]any{{"TableName": "orders"}},
			option:  "data-reload",
			wantMsg: "Table 0 missing 'SchemaName'",
		},
		{
			name:    "missing table name",
			tables:  []map[string]any{{"SchemaName": "public"}},
			option:  "data-reload",
			wantMsg: "Table 0 missing 'TableName'",
		},
		{
			name:    "bad reload option",
			tables:  []map[string]any{{"SchemaName": "public", "TableName": "orders"}},
			option:  "full-reload",
			wantMsg: "Invalid reload option: full-reload. Must be 'data-reload' or 'validate-only'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &fakeInvoker{}
			o := NewTableOperations(inv)

			_, err := o.ReloadTables(context.Background(), "task-arn", tt.tables, tt.option)
			var invalid *InvalidParameterError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.wantMsg, invalid.Message)
			assert.Empty(t, inv.calls)
		})
	}
}

func TestReloadReplicationTables(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{{}}}
	o := NewTableOperations(inv)

	tables := []map[string]any{{"SchemaName": "public", "TableName": "orders"}}
	res, err := o.ReloadReplicationTables(context.Background(), "config-arn", tables, "validate-only")
	require.NoError(t, err)

	call := inv.lastCall(t)
	assert.Equal(t, "reload_replication_tables", call.Operation)
	assert.Equal(t, "config-arn", call.Params["ReplicationConfigArn"])
	assert.Equal(t, "validate-only", call.Params["ReloadOption"])
	assert.Equal(t, "config-arn", res.Data["config_arn"])
}
