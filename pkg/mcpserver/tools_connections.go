package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ═══════════════════════════════════════════════════════════════════════════
// Connections
// ═══════════════════════════════════════════════════════════════════════════

func (s *Server) registerConnectionTools() {
	s.mutating(&mcp.Tool{
		Name:  "test_connection",
		Title: "Test Connection",
		Description: `Test the network path and credentials between a replication instance and an endpoint. Initiates the test, then polls until it settles (up to 12 polls, 5s apart). A result with success=false and a null error means the test was still "testing" when polling stopped; call again to keep waiting. Settled results are cached for 5 minutes per instance/endpoint pair.`,
		InputSchema: objectSchema(map[string]any{
			"replication_instance_arn": stringProp("Instance that runs the test."),
			"endpoint_arn":             stringProp("Endpoint to test against."),
		}, "replication_instance_arn", "endpoint_arn"),
	}, s.handleTestConnection)

	s.readOnly(&mcp.Tool{
		Name:        "describe_connections",
		Title:       "Describe Connections",
		Description: "List past connection test results. Filter by endpoint-arn or replication-instance-arn.",
		InputSchema: objectSchema(listProps(nil)),
	}, s.handleDescribeConnections)

	s.destructive(&mcp.Tool{
		Name:        "delete_connection",
		Title:       "Delete Connection",
		Description: "Delete the connection record between an endpoint and a replication instance. Also evicts the cached test result for the pair.",
		InputSchema: objectSchema(map[string]any{
			"endpoint_arn":             stringProp("Endpoint side of the connection."),
			"replication_instance_arn": stringProp("Instance side of the connection."),
		}, "endpoint_arn", "replication_instance_arn"),
	}, s.handleDeleteConnection)
}

func (s *Server) handleTestConnection(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		InstanceARN string `json:"replication_instance_arn"`
		EndpointARN string `json:"endpoint_arn"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.connections.TestConnection(ctx, args.InstanceARN, args.EndpointARN))
}

func (s *Server) handleDescribeConnections(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args listArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.connections.ListConnectionTests(ctx, args.options()))
}

func (s *Server) handleDeleteConnection(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		EndpointARN string `json:"endpoint_arn"`
		InstanceARN string `json:"replication_instance_arn"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.connections.DeleteConnection(ctx, args.EndpointARN, args.InstanceARN))
}
