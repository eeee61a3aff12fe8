package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ═══════════════════════════════════════════════════════════════════════════
// Fleet Advisor
// ═══════════════════════════════════════════════════════════════════════════

func (s *Server) registerFleetAdvisorTools() {
	s.mutating(&mcp.Tool{
		Name:        "create_fleet_advisor_collector",
		Title:       "Create Fleet Advisor Collector",
		Description: "Create a Fleet Advisor collector that inventories on-premises databases into an S3 bucket.",
		InputSchema: objectSchema(map[string]any{
			"collector_name":          stringProp("Name of the collector."),
			"description":             stringProp("Summary of what the collector inventories."),
			"service_access_role_arn": stringProp("IAM role the collector assumes to write to S3."),
			"s3_bucket_name":          stringProp("Bucket that receives the inventory."),
		}, "collector_name"),
	}, s.handleCreateFleetAdvisorCollector)

	s.destructive(&mcp.Tool{
		Name:        "delete_fleet_advisor_collector",
		Title:       "Delete Fleet Advisor Collector",
		Description: "Delete a Fleet Advisor collector by its referenced ID.",
		InputSchema: objectSchema(map[string]any{
			"collector_referenced_id": stringProp("Referenced ID of the collector."),
		}, "collector_referenced_id"),
	}, s.handleDeleteFleetAdvisorCollector)

	s.destructive(&mcp.Tool{
		Name:        "delete_fleet_advisor_databases",
		Title:       "Delete Fleet Advisor Databases",
		Description: "Remove databases from the Fleet Advisor inventory.",
		InputSchema: objectSchema(map[string]any{
			"database_ids": stringArrayProp("IDs of the databases to remove."),
		}, "database_ids"),
	}, s.handleDeleteFleetAdvisorDatabases)

	s.readOnly(&mcp.Tool{
		Name:        "describe_fleet_advisor_collectors",
		Title:       "Describe Fleet Advisor Collectors",
		Description: "List Fleet Advisor collectors and their health.",
		InputSchema: objectSchema(listProps(nil)),
	}, s.handleDescribeFleetAdvisorCollectors)

	s.readOnly(&mcp.Tool{
		Name:        "describe_fleet_advisor_databases",
		Title:       "Describe Fleet Advisor Databases",
		Description: "List databases discovered by Fleet Advisor collectors.",
		InputSchema: objectSchema(listProps(nil)),
	}, s.handleDescribeFleetAdvisorDatabases)

	s.readOnly(&mcp.Tool{
		Name:        "describe_fleet_advisor_lsa_analysis",
		Title:       "Describe Fleet Advisor LSA Analysis",
		Description: "List large-scale assessment runs over the Fleet Advisor inventory.",
		InputSchema: objectSchema(listProps(nil)),
	}, s.handleDescribeFleetAdvisorLsaAnalysis)

	s.readOnly(&mcp.Tool{
		Name:        "describe_fleet_advisor_schema_object_summary",
		Title:       "Describe Fleet Advisor Schema Object Summary",
		Description: "Summarize the object counts of discovered schemas.",
		InputSchema: objectSchema(listProps(nil)),
	}, s.handleDescribeFleetAdvisorSchemaObjectSummary)

	s.readOnly(&mcp.Tool{
		Name:        "describe_fleet_advisor_schemas",
		Title:       "Describe Fleet Advisor Schemas",
		Description: "List schemas discovered in the Fleet Advisor inventory.",
		InputSchema: objectSchema(listProps(nil)),
	}, s.handleDescribeFleetAdvisorSchemas)

	s.mutating(&mcp.Tool{
		Name:        "run_fleet_advisor_lsa_analysis",
		Title:       "Run Fleet Advisor LSA Analysis",
		Description: "Start a large-scale assessment over all collected databases.",
		InputSchema: objectSchema(map[string]any{}),
	}, s.handleRunFleetAdvisorLsaAnalysis)
}

func (s *Server) handleCreateFleetAdvisorCollector(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Name         string `json:"collector_name"`
		Description  string `json:"description"`
		ServiceRole  string `json:"service_access_role_arn"`
		S3BucketName string `json:"s3_bucket_name"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.fleet.CreateCollector(ctx, args.Name, args.Description, args.ServiceRole, args.S3BucketName))
}

func (s *Server) handleDeleteFleetAdvisorCollector(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		CollectorID string `json:"collector_referenced_id"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.fleet.DeleteCollector(ctx, args.CollectorID))
}

func (s *Server) handleDeleteFleetAdvisorDatabases(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		DatabaseIDs []string `json:"database_ids"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.fleet.DeleteDatabases(ctx, args.DatabaseIDs))
}

func (s *Server) handleDescribeFleetAdvisorCollectors(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args listArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.fleet.ListCollectors(ctx, args.options()))
}

func (s *Server) handleDescribeFleetAdvisorDatabases(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args listArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.fleet.ListDatabases(ctx, args.options()))
}

func (s *Server) handleDescribeFleetAdvisorLsaAnalysis(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args listArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.fleet.ListLsaAnalysis(ctx, args.options()))
}

func (s *Server) handleDescribeFleetAdvisorSchemaObjectSummary(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args listArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.fleet.ListSchemaObjectSummary(ctx, args.options()))
}

func (s *Server) handleDescribeFleetAdvisorSchemas(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args listArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.fleet.ListSchemas(ctx, args.options()))
}

func (s *Server) handleRunFleetAdvisorLsaAnalysis(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return envelope(s.fleet.RunLsaAnalysis(ctx))
}
