package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ═══════════════════════════════════════════════════════════════════════════
// Replication Tasks
// ═══════════════════════════════════════════════════════════════════════════

func (s *Server) registerTaskTools() {
	s.readOnly(&mcp.Tool{
		Name:        "describe_replication_tasks",
		Title:       "Describe Replication Tasks",
		Description: "List replication tasks with status, migration type, and progress statistics. Filter by replication-task-id, replication-task-arn, migration-type, endpoint-arn, or replication-instance-arn. Set without_settings to omit the bulky task settings document.",
		InputSchema: objectSchema(listProps(map[string]any{
			"without_settings": boolProp("Omit the ReplicationTaskSettings document from each task."),
		})),
	}, s.handleDescribeReplicationTasks)

	s.mutating(&mcp.Tool{
		Name:        "create_replication_task",
		Title:       "Create Replication Task",
		Description: "Create a replication task binding a source endpoint, target endpoint, and replication instance. migration_type must be full-load, cdc, or full-load-and-cdc. table_mappings is a JSON rules document and is validated locally before the call (selection rules need rule-id, rule-name, object-locator with schema-name and table-name, and rule-action include/exclude/explicit).",
		InputSchema: objectSchema(map[string]any{
			"replication_task_identifier": stringProp("Unique name for the task."),
			"source_endpoint_arn":         stringProp("Source endpoint ARN."),
			"target_endpoint_arn":         stringProp("Target endpoint ARN."),
			"replication_instance_arn":    stringProp("Instance the task runs on."),
			"migration_type":              stringProp("full-load, cdc, or full-load-and-cdc."),
			"table_mappings":              stringProp("Table mapping rules as a JSON document."),
			"replication_task_settings":   stringProp("Task settings as a JSON document."),
			"cdc_start_time":              stringProp("CDC start time (ISO 8601)."),
			"cdc_start_position":          stringProp("CDC start position (checkpoint or LSN)."),
			"cdc_stop_position":           stringProp("CDC stop position."),
			"resource_identifier":         stringProp("Friendly name for the generated ARN."),
			"tags":                        objectArrayProp("Tags as [{\"Key\": ..., \"Value\": ...}]."),
		}, "replication_task_identifier", "source_endpoint_arn", "target_endpoint_arn",
			"replication_instance_arn", "migration_type", "table_mappings"),
	}, s.handleCreateReplicationTask)

	s.mutating(&mcp.Tool{
		Name:        "modify_replication_task",
		Title:       "Modify Replication Task",
		Description: "Change a stopped task's attributes. table_mappings, when supplied, is validated locally like on create.",
		InputSchema: objectSchema(map[string]any{
			"replication_task_arn":        stringProp("ARN of the task to modify."),
			"replication_task_identifier": stringProp("New task name."),
			"migration_type":              stringProp("full-load, cdc, or full-load-and-cdc."),
			"table_mappings":              stringProp("Replacement table mapping rules (JSON)."),
			"replication_task_settings":   stringProp("Replacement task settings (JSON)."),
			"cdc_start_time":              stringProp("CDC start time (ISO 8601)."),
			"cdc_start_position":          stringProp("CDC start position."),
			"cdc_stop_position":           stringProp("CDC stop position."),
		}, "replication_task_arn"),
	}, s.handleModifyReplicationTask)

	s.destructive(&mcp.Tool{
		Name:        "delete_replication_task",
		Title:       "Delete Replication Task",
		Description: "Delete a replication task. Stop it first if it is running.",
		InputSchema: objectSchema(map[string]any{
			"replication_task_arn": stringProp("ARN of the task to delete."),
		}, "replication_task_arn"),
	}, s.handleDeleteReplicationTask)

	s.mutating(&mcp.Tool{
		Name:        "start_replication_task",
		Title:       "Start Replication Task",
		Description: "Start a replication task. start_replication_task_type must be start-replication (first run), resume-processing, or reload-target; it is validated before the call. CDC positions are forwarded only when set.",
		InputSchema: objectSchema(map[string]any{
			"replication_task_arn":        stringProp("ARN of the task to start."),
			"start_replication_task_type": stringProp("start-replication, resume-processing, or reload-target."),
			"cdc_start_time":              stringProp("CDC start time (ISO 8601)."),
			"cdc_start_position":          stringProp("CDC start position."),
			"cdc_stop_position":           stringProp("CDC stop position."),
		}, "replication_task_arn", "start_replication_task_type"),
	}, s.handleStartReplicationTask)

	s.mutating(&mcp.Tool{
		Name:        "stop_replication_task",
		Title:       "Stop Replication Task",
		Description: "Stop a running replication task.",
		InputSchema: objectSchema(map[string]any{
			"replication_task_arn": stringProp("ARN of the task to stop."),
		}, "replication_task_arn"),
	}, s.handleStopReplicationTask)

	s.mutating(&mcp.Tool{
		Name:        "move_replication_task",
		Title:       "Move Replication Task",
		Description: "Move a task to a different replication instance. The task must be stopped or failed.",
		InputSchema: objectSchema(map[string]any{
			"replication_task_arn":            stringProp("ARN of the task to move."),
			"target_replication_instance_arn": stringProp("Instance to move the task to."),
		}, "replication_task_arn", "target_replication_instance_arn"),
	}, s.handleMoveReplicationTask)
}

func (s *Server) handleDescribeReplicationTasks(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		listArgs
		WithoutSettings bool `json:"without_settings"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.tasks.ListTasks(ctx, args.options(), args.WithoutSettings))
}

type createTaskArgs struct {
	Identifier         string           `json:"replication_task_identifier"`
	SourceEndpointARN  string           `json:"source_endpoint_arn"`
	TargetEndpointARN  string           `json:"target_endpoint_arn"`
	InstanceARN        string           `json:"replication_instance_arn"`
	MigrationType      string           `json:"migration_type"`
	TableMappings      string           `json:"table_mappings"`
	TaskSettings       string           `json:"replication_task_settings"`
	CdcStartTime       string           `json:"cdc_start_time"`
	CdcStartPosition   string           `json:"cdc_start_position"`
	CdcStopPosition    string           `json:"cdc_stop_position"`
	ResourceIdentifier string           `json:"resource_identifier"`
	Tags               []map[string]any `json:"tags"`
}

func (s *Server) handleCreateReplicationTask(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args createTaskArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	params := map[string]any{
		"ReplicationTaskIdentifier": args.Identifier,
		"SourceEndpointArn":         args.SourceEndpointARN,
		"TargetEndpointArn":         args.TargetEndpointARN,
		"ReplicationInstanceArn":    args.InstanceARN,
		"MigrationType":             args.MigrationType,
		"TableMappings":             args.TableMappings,
	}
	setString(params, "ReplicationTaskSettings", args.TaskSettings)
	setString(params, "CdcStartTime", args.CdcStartTime)
	setString(params, "CdcStartPosition", args.CdcStartPosition)
	setString(params, "CdcStopPosition", args.CdcStopPosition)
	setString(params, "ResourceIdentifier", args.ResourceIdentifier)
	setObjects(params, "Tags", args.Tags)
	return envelope(s.tasks.CreateTask(ctx, params))
}

type modifyTaskArgs struct {
	ARN              string `json:"replication_task_arn"`
	Identifier       string `json:"replication_task_identifier"`
	MigrationType    string `json:"migration_type"`
	TableMappings    string `json:"table_mappings"`
	TaskSettings     string `json:"replication_task_settings"`
	CdcStartTime     string `json:"cdc_start_time"`
	CdcStartPosition string `json:"cdc_start_position"`
	CdcStopPosition  string `json:"cdc_stop_position"`
}

func (s *Server) handleModifyReplicationTask(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args modifyTaskArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	params := map[string]any{"ReplicationTaskArn": args.ARN}
	setString(params, "ReplicationTaskIdentifier", args.Identifier)
	setString(params, "MigrationType", args.MigrationType)
	setString(params, "TableMappings", args.TableMappings)
	setString(params, "ReplicationTaskSettings", args.TaskSettings)
	setString(params, "CdcStartTime", args.CdcStartTime)
	setString(params, "CdcStartPosition", args.CdcStartPosition)
	setString(params, "CdcStopPosition", args.CdcStopPosition)
	return envelope(s.tasks.ModifyTask(ctx, params))
}

type taskARNArgs struct {
	ARN string `json:"replication_task_arn"`
}

func (s *Server) handleDeleteReplicationTask(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args taskARNArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.tasks.DeleteTask(ctx, args.ARN))
}

func (s *Server) handleStartReplicationTask(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		ARN              string `json:"replication_task_arn"`
		StartType        string `json:"start_replication_task_type"`
		CdcStartTime     string `json:"cdc_start_time"`
		CdcStartPosition string `json:"cdc_start_position"`
		CdcStopPosition  string `json:"cdc_stop_position"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.tasks.StartTask(ctx, args.ARN, args.StartType,
		args.CdcStartPosition, args.CdcStartTime, args.CdcStopPosition))
}

func (s *Server) handleStopReplicationTask(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args taskARNArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.tasks.StopTask(ctx, args.ARN))
}

func (s *Server) handleMoveReplicationTask(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		ARN       string `json:"replication_task_arn"`
		TargetARN string `json:"target_replication_instance_arn"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.tasks.MoveTask(ctx, args.ARN, args.TargetARN))
}
