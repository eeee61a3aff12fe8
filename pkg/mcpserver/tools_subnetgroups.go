package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ═══════════════════════════════════════════════════════════════════════════
// Replication Subnet Groups
// ═══════════════════════════════════════════════════════════════════════════

func (s *Server) registerSubnetGroupTools() {
	s.mutating(&mcp.Tool{
		Name:        "create_replication_subnet_group",
		Title:       "Create Replication Subnet Group",
		Description: "Create a subnet group spanning at least two Availability Zones for replication instances to launch into.",
		InputSchema: objectSchema(map[string]any{
			"replication_subnet_group_identifier":  stringProp("Unique name for the subnet group."),
			"replication_subnet_group_description": stringProp("Description of the group."),
			"subnet_ids":                           stringArrayProp("Subnet IDs; must cover at least two AZs."),
			"tags":                                 objectArrayProp("Tags as [{\"Key\": ..., \"Value\": ...}]."),
		}, "replication_subnet_group_identifier", "replication_subnet_group_description", "subnet_ids"),
	}, s.handleCreateSubnetGroup)

	s.mutating(&mcp.Tool{
		Name:        "modify_replication_subnet_group",
		Title:       "Modify Replication Subnet Group",
		Description: "Change a subnet group's description or subnet membership.",
		InputSchema: objectSchema(map[string]any{
			"replication_subnet_group_identifier":  stringProp("Subnet group to modify."),
			"replication_subnet_group_description": stringProp("New description."),
			"subnet_ids":                           stringArrayProp("Replacement subnet IDs."),
		}, "replication_subnet_group_identifier"),
	}, s.handleModifySubnetGroup)

	s.readOnly(&mcp.Tool{
		Name:        "describe_replication_subnet_groups",
		Title:       "Describe Replication Subnet Groups",
		Description: "List replication subnet groups and their subnets.",
		InputSchema: objectSchema(listProps(nil)),
	}, s.handleDescribeSubnetGroups)

	s.destructive(&mcp.Tool{
		Name:        "delete_replication_subnet_group",
		Title:       "Delete Replication Subnet Group",
		Description: "Delete a subnet group. No replication instance may be using it.",
		InputSchema: objectSchema(map[string]any{
			"replication_subnet_group_identifier": stringProp("Subnet group to delete."),
		}, "replication_subnet_group_identifier"),
	}, s.handleDeleteSubnetGroup)
}

func (s *Server) handleCreateSubnetGroup(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Identifier  string           `json:"replication_subnet_group_identifier"`
		Description string           `json:"replication_subnet_group_description"`
		SubnetIDs   []string         `json:"subnet_ids"`
		Tags        []map[string]any `json:"tags"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.subnetGroups.CreateSubnetGroup(ctx, args.Identifier, args.Description, args.SubnetIDs, args.Tags))
}

func (s *Server) handleModifySubnetGroup(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Identifier  string   `json:"replication_subnet_group_identifier"`
		Description string   `json:"replication_subnet_group_description"`
		SubnetIDs   []string `json:"subnet_ids"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.subnetGroups.ModifySubnetGroup(ctx, args.Identifier, args.Description, args.SubnetIDs))
}

func (s *Server) handleDescribeSubnetGroups(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args listArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.subnetGroups.ListSubnetGroups(ctx, args.options()))
}

func (s *Server) handleDeleteSubnetGroup(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Identifier string `json:"replication_subnet_group_identifier"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.subnetGroups.DeleteSubnetGroup(ctx, args.Identifier))
}
