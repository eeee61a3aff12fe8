package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dmsmcp/dmsmcp/pkg/dms"
)

// ═══════════════════════════════════════════════════════════════════════════
// Serverless Replications
// ═══════════════════════════════════════════════════════════════════════════

func (s *Server) registerServerlessTools() {
	s.mutating(&mcp.Tool{
		Name:        "create_replication_config",
		Title:       "Create Replication Config",
		Description: "Create a serverless replication config. Instead of provisioning an instance, compute_config declares capacity bounds (MaxCapacityUnits, MinCapacityUnits, MultiAZ, ...) and DMS scales the replication within them.",
		InputSchema: objectSchema(map[string]any{
			"replication_config_identifier": stringProp("Unique name for the config."),
			"source_endpoint_arn":           stringProp("Source endpoint ARN."),
			"target_endpoint_arn":           stringProp("Target endpoint ARN."),
			"compute_config":                objectProp("Capacity settings, e.g. {\"MaxCapacityUnits\": 16}."),
			"replication_type":              stringProp("full-load, cdc, or full-load-and-cdc."),
			"table_mappings":                stringProp("Table mapping rules as a JSON document."),
			"replication_settings":          stringProp("Replication settings as a JSON document."),
			"supplemental_settings":         stringProp("Supplemental settings as a JSON document."),
			"resource_identifier":           stringProp("Friendly name for the generated ARN."),
			"tags":                          objectArrayProp("Tags as [{\"Key\": ..., \"Value\": ...}]."),
		}, "replication_config_identifier", "source_endpoint_arn", "target_endpoint_arn",
			"compute_config", "replication_type", "table_mappings"),
	}, s.handleCreateReplicationConfig)

	s.mutating(&mcp.Tool{
		Name:        "modify_replication_config",
		Title:       "Modify Replication Config",
		Description: "Change a serverless replication config. The replication must not be running.",
		InputSchema: objectSchema(map[string]any{
			"replication_config_arn":        stringProp("Config to modify."),
			"replication_config_identifier": stringProp("New name."),
			"compute_config":                objectProp("New capacity settings."),
			"replication_type":              stringProp("full-load, cdc, or full-load-and-cdc."),
			"table_mappings":                stringProp("Replacement table mappings (JSON)."),
			"replication_settings":          stringProp("Replacement replication settings (JSON)."),
		}, "replication_config_arn"),
	}, s.handleModifyReplicationConfig)

	s.destructive(&mcp.Tool{
		Name:        "delete_replication_config",
		Title:       "Delete Replication Config",
		Description: "Delete a serverless replication config.",
		InputSchema: objectSchema(map[string]any{
			"replication_config_arn": stringProp("Config to delete."),
		}, "replication_config_arn"),
	}, s.handleDeleteReplicationConfig)

	s.readOnly(&mcp.Tool{
		Name:        "describe_replication_configs",
		Title:       "Describe Replication Configs",
		Description: "List serverless replication configs.",
		InputSchema: objectSchema(listProps(nil)),
	}, s.handleDescribeReplicationConfigs)

	s.readOnly(&mcp.Tool{
		Name:        "describe_replications",
		Title:       "Describe Replications",
		Description: "List serverless replications and their runtime status.",
		InputSchema: objectSchema(listProps(nil)),
	}, s.handleDescribeReplications)

	s.mutating(&mcp.Tool{
		Name:        "start_replication",
		Title:       "Start Replication",
		Description: "Start a serverless replication. start_replication_type is start-replication, resume-processing, or reload-target.",
		InputSchema: objectSchema(map[string]any{
			"replication_config_arn": stringProp("Config to start."),
			"start_replication_type": stringProp("start-replication, resume-processing, or reload-target."),
			"cdc_start_time":         stringProp("CDC start time (ISO 8601)."),
			"cdc_start_position":     stringProp("CDC start position."),
			"cdc_stop_position":      stringProp("CDC stop position."),
		}, "replication_config_arn", "start_replication_type"),
	}, s.handleStartReplication)

	s.mutating(&mcp.Tool{
		Name:        "stop_replication",
		Title:       "Stop Replication",
		Description: "Stop a running serverless replication.",
		InputSchema: objectSchema(map[string]any{
			"replication_config_arn": stringProp("Config to stop."),
		}, "replication_config_arn"),
	}, s.handleStopReplication)
}

func (s *Server) handleCreateReplicationConfig(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Identifier           string           `json:"replication_config_identifier"`
		SourceEndpointARN    string           `json:"source_endpoint_arn"`
		TargetEndpointARN    string           `json:"target_endpoint_arn"`
		ComputeConfig        map[string]any   `json:"compute_config"`
		ReplicationType      string           `json:"replication_type"`
		TableMappings        string           `json:"table_mappings"`
		ReplicationSettings  string           `json:"replication_settings"`
		SupplementalSettings string           `json:"supplemental_settings"`
		ResourceIdentifier   string           `json:"resource_identifier"`
		Tags                 []map[string]any `json:"tags"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	opts := dms.ReplicationConfigOptions{
		ReplicationSettings:  args.ReplicationSettings,
		SupplementalSettings: args.SupplementalSettings,
		ResourceIdentifier:   args.ResourceIdentifier,
		Tags:                 args.Tags,
	}
	return envelope(s.serverless.CreateReplicationConfig(ctx, args.Identifier,
		args.SourceEndpointARN, args.TargetEndpointARN, args.ComputeConfig,
		args.ReplicationType, args.TableMappings, opts))
}

func (s *Server) handleModifyReplicationConfig(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		ARN                 string         `json:"replication_config_arn"`
		Identifier          string         `json:"replication_config_identifier"`
		ComputeConfig       map[string]any `json:"compute_config"`
		ReplicationType     string         `json:"replication_type"`
		TableMappings       string         `json:"table_mappings"`
		ReplicationSettings string         `json:"replication_settings"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	params := map[string]any{"ReplicationConfigArn": args.ARN}
	setString(params, "ReplicationConfigIdentifier", args.Identifier)
	setObject(params, "ComputeConfig", args.ComputeConfig)
	setString(params, "ReplicationType", args.ReplicationType)
	setString(params, "TableMappings", args.TableMappings)
	setString(params, "ReplicationSettings", args.ReplicationSettings)
	return envelope(s.serverless.ModifyReplicationConfig(ctx, params))
}

type replicationConfigARNArgs struct {
	ARN string `json:"replication_config_arn"`
}

func (s *Server) handleDeleteReplicationConfig(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args replicationConfigARNArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.serverless.DeleteReplicationConfig(ctx, args.ARN))
}

func (s *Server) handleDescribeReplicationConfigs(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args listArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.serverless.ListReplicationConfigs(ctx, args.options()))
}

func (s *Server) handleDescribeReplications(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args listArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.serverless.ListReplications(ctx, args.options()))
}

func (s *Server) handleStartReplication(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		ARN              string `json:"replication_config_arn"`
		StartType        string `json:"start_replication_type"`
		CdcStartTime     string `json:"cdc_start_time"`
		CdcStartPosition string `json:"cdc_start_position"`
		CdcStopPosition  string `json:"cdc_stop_position"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.serverless.StartReplication(ctx, args.ARN, args.StartType,
		args.CdcStartTime, args.CdcStartPosition, args.CdcStopPosition))
}

func (s *Server) handleStopReplication(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args replicationConfigARNArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.serverless.StopReplication(ctx, args.ARN))
}
