package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ═══════════════════════════════════════════════════════════════════════════
// Maintenance & Tags
// ═══════════════════════════════════════════════════════════════════════════

func (s *Server) registerMaintenanceTools() {
	s.mutating(&mcp.Tool{
		Name:        "apply_pending_maintenance_action",
		Title:       "Apply Pending Maintenance Action",
		Description: "Apply or schedule a pending maintenance action on a replication instance. opt_in_type is immediate, next-maintenance, or undo-opt-in.",
		InputSchema: objectSchema(map[string]any{
			"replication_instance_arn": stringProp("Instance with the pending action."),
			"apply_action":             stringProp("Action to apply, e.g. os-upgrade."),
			"opt_in_type":              stringProp("immediate, next-maintenance, or undo-opt-in."),
		}, "replication_instance_arn", "apply_action", "opt_in_type"),
	}, s.handleApplyPendingMaintenanceAction)

	s.readOnly(&mcp.Tool{
		Name:        "describe_pending_maintenance_actions",
		Title:       "Describe Pending Maintenance Actions",
		Description: "List pending maintenance actions, optionally scoped to one replication instance.",
		InputSchema: objectSchema(listProps(map[string]any{
			"replication_instance_arn": stringProp("Limit results to this instance."),
		})),
	}, s.handleDescribePendingMaintenanceActions)
}

func (s *Server) registerTagTools() {
	s.mutating(&mcp.Tool{
		Name:        "add_tags_to_resource",
		Title:       "Add Tags To Resource",
		Description: "Add tags to any DMS resource by ARN.",
		InputSchema: objectSchema(map[string]any{
			"resource_arn": stringProp("Resource to tag."),
			"tags":         objectArrayProp("Tags as [{\"Key\": ..., \"Value\": ...}]."),
		}, "resource_arn", "tags"),
	}, s.handleAddTags)

	s.mutating(&mcp.Tool{
		Name:        "remove_tags_from_resource",
		Title:       "Remove Tags From Resource",
		Description: "Remove tags from a DMS resource by key.",
		InputSchema: objectSchema(map[string]any{
			"resource_arn": stringProp("Resource to untag."),
			"tag_keys":     stringArrayProp("Keys of the tags to remove."),
		}, "resource_arn", "tag_keys"),
	}, s.handleRemoveTags)

	s.readOnly(&mcp.Tool{
		Name:        "list_tags_for_resource",
		Title:       "List Tags For Resource",
		Description: "List the tags on a DMS resource.",
		InputSchema: objectSchema(map[string]any{
			"resource_arn": stringProp("Resource to inspect."),
		}, "resource_arn"),
	}, s.handleListTags)
}

func (s *Server) handleApplyPendingMaintenanceAction(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		InstanceARN string `json:"replication_instance_arn"`
		ApplyAction string `json:"apply_action"`
		OptInType   string `json:"opt_in_type"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.maintenance.ApplyPendingMaintenanceAction(ctx, args.InstanceARN, args.ApplyAction, args.OptInType))
}

func (s *Server) handleDescribePendingMaintenanceActions(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		listArgs
		InstanceARN string `json:"replication_instance_arn"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.maintenance.ListPendingMaintenanceActions(ctx, args.InstanceARN, args.options()))
}

func (s *Server) handleAddTags(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		ResourceARN string           `json:"resource_arn"`
		Tags        []map[string]any `json:"tags"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.tags.AddTags(ctx, args.ResourceARN, args.Tags))
}

func (s *Server) handleRemoveTags(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		ResourceARN string   `json:"resource_arn"`
		TagKeys     []string `json:"tag_keys"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.tags.RemoveTags(ctx, args.ResourceARN, args.TagKeys))
}

func (s *Server) handleListTags(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		ResourceARN string `json:"resource_arn"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.tags.ListTags(ctx, args.ResourceARN))
}
