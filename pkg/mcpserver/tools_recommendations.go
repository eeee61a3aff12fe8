package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ═══════════════════════════════════════════════════════════════════════════
// Target Recommendations
// ═══════════════════════════════════════════════════════════════════════════

func (s *Server) registerRecommendationTools() {
	s.readOnly(&mcp.Tool{
		Name:        "describe_recommendations",
		Title:       "Describe Recommendations",
		Description: "List target engine recommendations for analyzed source databases.",
		InputSchema: objectSchema(listProps(nil)),
	}, s.handleDescribeRecommendations)

	s.readOnly(&mcp.Tool{
		Name:        "describe_recommendation_limitations",
		Title:       "Describe Recommendation Limitations",
		Description: "List limitations that would affect migrating to the recommended targets.",
		InputSchema: objectSchema(listProps(nil)),
	}, s.handleDescribeRecommendationLimitations)

	s.mutating(&mcp.Tool{
		Name:        "start_recommendations",
		Title:       "Start Recommendations",
		Description: "Start target engine analysis for a single source database. settings carries the instance sizing preferences and workload type.",
		InputSchema: objectSchema(map[string]any{
			"database_id": stringProp("ID of the source database in the inventory."),
			"settings":    objectProp("Recommendation settings such as InstanceSizingType and WorkloadType."),
		}, "database_id"),
	}, s.handleStartRecommendations)

	s.mutating(&mcp.Tool{
		Name:        "batch_start_recommendations",
		Title:       "Batch Start Recommendations",
		Description: "Start target engine analysis for up to 200 source databases in one call. Each entry pairs a DatabaseId with its Settings.",
		InputSchema: objectSchema(map[string]any{
			"data": objectArrayProp("Entries of {DatabaseId, Settings}."),
		}),
	}, s.handleBatchStartRecommendations)
}

func (s *Server) handleDescribeRecommendations(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args listArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.recommendations.ListRecommendations(ctx, args.options()))
}

func (s *Server) handleDescribeRecommendationLimitations(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args listArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.recommendations.ListLimitations(ctx, args.options()))
}

func (s *Server) handleStartRecommendations(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		DatabaseID string         `json:"database_id"`
		Settings   map[string]any `json:"settings"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.recommendations.StartRecommendations(ctx, args.DatabaseID, args.Settings))
}

func (s *Server) handleBatchStartRecommendations(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Data []map[string]any `json:"data"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.recommendations.BatchStartRecommendations(ctx, args.Data))
}
