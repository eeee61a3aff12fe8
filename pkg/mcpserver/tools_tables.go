package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ═══════════════════════════════════════════════════════════════════════════
// Table Statistics & Reload
// ═══════════════════════════════════════════════════════════════════════════

func (s *Server) registerTableTools() {
	s.readOnly(&mcp.Tool{
		Name:        "describe_table_statistics",
		Title:       "Describe Table Statistics",
		Description: "Per-table migration statistics for a task (rows loaded, inserts/updates/deletes, validation state), plus a locally computed summary: table counts per state with human-readable descriptions and grand totals.",
		InputSchema: objectSchema(listProps(map[string]any{
			"replication_task_arn": stringProp("Task to report on."),
		}), "replication_task_arn"),
	}, s.handleDescribeTableStatistics)

	s.readOnly(&mcp.Tool{
		Name:        "describe_replication_table_statistics",
		Title:       "Describe Replication Table Statistics",
		Description: "Per-table statistics for either a classic task or a serverless replication config. Exactly one of replication_task_arn or replication_config_arn must be given.",
		InputSchema: objectSchema(listProps(map[string]any{
			"replication_task_arn":   stringProp("Task to report on (mutually exclusive with replication_config_arn)."),
			"replication_config_arn": stringProp("Serverless replication config to report on."),
		})),
	}, s.handleDescribeReplicationTableStatistics)

	s.mutating(&mcp.Tool{
		Name:        "reload_tables",
		Title:       "Reload Tables",
		Description: "Re-migrate specific tables in a running task. tables is a list of {schema_name, table_name} pairs; reload_option is data-reload (default) or validate-only.",
		InputSchema: objectSchema(map[string]any{
			"replication_task_arn": stringProp("Task whose tables to reload."),
			"tables":               objectArrayProp("Tables as [{\"schema_name\": ..., \"table_name\": ...}]."),
			"reload_option":        stringProp("data-reload (default) or validate-only."),
		}, "replication_task_arn", "tables"),
	}, s.handleReloadTables)

	s.mutating(&mcp.Tool{
		Name:        "reload_replication_tables",
		Title:       "Reload Replication Tables",
		Description: "Re-migrate specific tables in a serverless replication. Same table list and reload options as reload_tables.",
		InputSchema: objectSchema(map[string]any{
			"replication_config_arn": stringProp("Replication config whose tables to reload."),
			"tables":                 objectArrayProp("Tables as [{\"schema_name\": ..., \"table_name\": ...}]."),
			"reload_option":          stringProp("data-reload (default) or validate-only."),
		}, "replication_config_arn", "tables"),
	}, s.handleReloadReplicationTables)
}

func (s *Server) handleDescribeTableStatistics(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		listArgs
		TaskARN string `json:"replication_task_arn"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.tables.GetTableStatistics(ctx, args.TaskARN, args.options()))
}

func (s *Server) handleDescribeReplicationTableStatistics(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		listArgs
		TaskARN   string `json:"replication_task_arn"`
		ConfigARN string `json:"replication_config_arn"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.tables.GetReplicationTableStatistics(ctx, args.TaskARN, args.ConfigARN, args.options()))
}

func (s *Server) handleReloadTables(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		TaskARN      string           `json:"replication_task_arn"`
		Tables       []map[string]any `json:"tables"`
		ReloadOption string           `json:"reload_option"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.tables.ReloadTables(ctx, args.TaskARN, args.Tables, args.ReloadOption))
}

func (s *Server) handleReloadReplicationTables(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		ConfigARN    string           `json:"replication_config_arn"`
		Tables       []map[string]any `json:"tables"`
		ReloadOption string           `json:"reload_option"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.tables.ReloadReplicationTables(ctx, args.ConfigARN, args.Tables, args.ReloadOption))
}
