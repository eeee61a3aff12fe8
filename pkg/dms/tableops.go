package dms

import (
	"context"

	"github.com/dmsmcp/dmsmcp/pkg/dmsapi"
)

var validReloadOptions = map[string]bool{
	"data-reload":   true,
	"validate-only": true,
}

// tableStateDescriptions maps the service's raw table states to readable
// descriptions. States outside the map get no description.
var tableStateDescriptions = map[string]string{
	"Table completed":         "Full load and ongoing replication complete",
	"Table loading":           "Full load in progress",
	"Table error":             "Error occurred during replication",
	"Table cancelled":         "Replication cancelled for this table",
	"Table does not exist":    "Table was not found at the source",
	"Table is being reloaded": "Table reload in progress",
	"Before load":             "Waiting for full load to begin",
}

// TableOperations covers per-table statistics and reload calls, for both
// instance-based tasks and serverless replication configs.
type TableOperations struct {
	manager
}

// NewTableOperations creates a TableOperations over the given gateway.
func NewTableOperations(client dmsapi.Invoker) *TableOperations {
	return &TableOperations{manager{client: client}}
}

// GetTableStatistics reports per-table replication statistics for a task,
// plus an aggregate summary across the returned page.
func (o *TableOperations) GetTableStatistics(ctx context.Context, taskARN string, opts ListOptions) (*Result, error) {
	res, err := o.pagedList(ctx, listSpec{
		operation:   "describe_table_statistics",
		responseKey: "TableStatistics",
		resultKey:   "table_statistics",
		format:      formatTableStats,
	}, opts, map[string]any{"ReplicationTaskArn": taskARN})
	if err != nil {
		return nil, err
	}
	stats, _ := res.Data["table_statistics"].([]map[string]any)
	res.Data["summary"] = summarizeTableStats(stats)
	return res, nil
}

// GetReplicationTableStatistics is the serverless-aware variant: exactly
// one of taskARN or configARN selects the replication.
func (o *TableOperations) GetReplicationTableStatistics(ctx context.Context, taskARN, configARN string, opts ListOptions) (*Result, error) {
	extra := map[string]any{}
	switch {
	case taskARN != "":
		extra["ReplicationTaskArn"] = taskARN
	case configARN != "":
		extra["ReplicationConfigArn"] = configARN
	default:
		return nil, invalidParamf("Must provide either task_arn or config_arn")
	}
	return o.pagedList(ctx, listSpec{
		operation:   "describe_replication_table_statistics",
		responseKey: "ReplicationTableStatistics",
		resultKey:   "table_statistics",
		format:      formatTableStats,
	}, opts, extra)
}

// ReloadTables reloads (or validates) the given tables on a task. Each
// table entry must name both its schema and table.
func (o *TableOperations) ReloadTables(ctx context.Context, taskARN string, tables []map[string]any, reloadOption string) (*Result, error) {
	if reloadOption == "" {
		reloadOption = "data-reload"
	}
	if err := validateReloadRequest(tables, reloadOption); err != nil {
		return nil, err
	}
	_, err := o.client.CallAPI(ctx, "reload_tables", map[string]any{
		"ReplicationTaskArn": taskARN,
		"TablesToReload":     tables,
		"ReloadOption":       reloadOption,
	})
	if err != nil {
		return nil, err
	}
	return okResult(map[string]any{
		"message":         "Table reload initiated",
		"tables_reloaded": len(tables),
		"reload_option":   reloadOption,
	}), nil
}

// ReloadReplicationTables is the serverless variant of ReloadTables,
// keyed by replication config ARN.
func (o *TableOperations) ReloadReplicationTables(ctx context.Context, configARN string, tables []map[string]any, reloadOption string) (*Result, error) {
	if reloadOption == "" {
		reloadOption = "data-reload"
	}
	if err := validateReloadRequest(tables, reloadOption); err != nil {
		return nil, err
	}
	_, err := o.client.CallAPI(ctx, "reload_replication_tables", map[string]any{
		"ReplicationConfigArn": configARN,
		"TablesToReload":       tables,
		"ReloadOption":         reloadOption,
	})
	if err != nil {
		return nil, err
	}
	return okResult(map[string]any{
		"message":         "Table reload initiated",
		"config_arn":      configARN,
		"tables_reloaded": len(tables),
		"reload_option":   reloadOption,
	}), nil
}

// validateReloadRequest checks the table list and reload option before any
// network call.
func validateReloadRequest(tables []map[string]any, reloadOption string) error {
	if len(tables) == 0 {
		return invalidParamf("Tables list cannot be empty")
	}
	for i, table := range tables {
		if _, ok := table["SchemaName"]; !ok {
			return invalidParamf("Table %d missing 'SchemaName'", i)
		}
		if _, ok := table["TableName"]; !ok {
			return invalidParamf("Table %d missing 'TableName'", i)
		}
	}
	if !validReloadOptions[reloadOption] {
		return invalidParamf("Invalid reload option: %s. Must be 'data-reload' or 'validate-only'", reloadOption)
	}
	return nil
}

// formatTableStats snake-cases one statistics record and attaches a
// state_description when the table state is recognized.
func formatTableStats(stat map[string]any) map[string]any {
	out := formatResource(stat)
	if state, ok := stat["TableState"].(string); ok {
		if desc, known := tableStateDescriptions[state]; known {
			out["state_description"] = desc
		}
	}
	return out
}

// summarizeTableStats aggregates change counters across a page of
// formatted statistics records.
func summarizeTableStats(stats []map[string]any) map[string]any {
	summary := map[string]int{
		"total_tables":         len(stats),
		"total_inserts":        0,
		"total_deletes":        0,
		"total_updates":        0,
		"total_ddls":           0,
		"total_full_load_rows": 0,
		"total_error_rows":     0,
	}
	for _, stat := range stats {
		summary["total_inserts"] += intValue(stat["inserts"])
		summary["total_deletes"] += intValue(stat["deletes"])
		summary["total_updates"] += intValue(stat["updates"])
		summary["total_ddls"] += intValue(stat["ddls"])
		summary["total_full_load_rows"] += intValue(stat["full_load_rows"])
		summary["total_error_rows"] += intValue(stat["full_load_error_rows"])
	}
	out := make(map[string]any, len(summary))
	for k, v := range summary {
		out[k] = v
	}
	return out
}
