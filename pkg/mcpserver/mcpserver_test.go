package mcpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmsmcp/dmsmcp/pkg/config"
	"github.com/dmsmcp/dmsmcp/pkg/mcpserver"
)

// recordedCall is one CallAPI invocation seen by the fake gateway.
type recordedCall struct {
	Operation   string
	Params      map[string]any
	HasDeadline bool
}

// fakeInvoker satisfies dmsapi.Invoker for tests.
type fakeInvoker struct {
	calls    []recordedCall
	response map[string]any
	err      error
}

func (f *fakeInvoker) CallAPI(ctx context.Context, operation string, params map[string]any) (map[string]any, error) {
	_, hasDeadline := ctx.Deadline()
	f.calls = append(f.calls, recordedCall{Operation: operation, Params: params, HasDeadline: hasDeadline})
	if f.err != nil {
		return nil, f.err
	}
	if f.response == nil {
		return map[string]any{}, nil
	}
	return f.response, nil
}

// newTestSession creates a connected client↔server session for testing.
func newTestSession(t *testing.T, cfg *config.Config, inv *fakeInvoker) *mcp.ClientSession {
	t.Helper()

	srv := mcpserver.New(cfg, inv)

	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "0.0.1",
	}, nil)

	ctx := context.Background()

	// Run server in background; client-side assertions surface any
	// real failures.
	go func() {
		_ = srv.MCPServer().Run(ctx, serverTransport)
	}()

	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err, "client.Connect")
	t.Cleanup(func() { cs.Close() })
	return cs
}

// callTool invokes a tool and decodes its envelope from the text content.
func callTool(t *testing.T, cs *mcp.ClientSession, name string, args map[string]any) (envelope, *mcp.CallToolResult) {
	t.Helper()

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err, "CallTool(%s)", name)
	require.NotEmpty(t, res.Content, "tool %s returned no content", name)

	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "tool %s returned non-text content", name)

	var env envelope
	if !res.IsError {
		require.NoError(t, json.Unmarshal([]byte(text.Text), &env), "parsing envelope of %s", name)
	}
	return env, res
}

type envelope struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data"`
	Error   *struct {
		Message *string `json:"message"`
	} `json:"error"`
}

// ═══════════════════════════════════════════════════════════════════════════
// Server creation tests
// ═══════════════════════════════════════════════════════════════════════════

func TestNew(t *testing.T) {
	srv := mcpserver.New(config.Default(), &fakeInvoker{})
	require.NotNil(t, srv)
	require.NotNil(t, srv.MCPServer())
}

func TestNewNilConfig(t *testing.T) {
	srv := mcpserver.New(nil, &fakeInvoker{})
	require.NotNil(t, srv)
}

func TestReadiness(t *testing.T) {
	srv := mcpserver.New(config.Default(), &fakeInvoker{})
	assert.False(t, srv.IsReady())
	srv.MarkReady()
	assert.True(t, srv.IsReady())
}

// ═══════════════════════════════════════════════════════════════════════════
// Tool registration tests
// ═══════════════════════════════════════════════════════════════════════════

func TestListTools(t *testing.T) {
	cs := newTestSession(t, config.Default(), &fakeInvoker{})

	result, err := cs.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)

	assert.Len(t, result.Tools, 112)

	toolNames := make(map[string]bool)
	for _, tool := range result.Tools {
		toolNames[tool.Name] = true
	}

	// One representative per family.
	for _, name := range []string{
		"describe_replication_instances",
		"create_endpoint",
		"test_connection",
		"start_replication_task",
		"describe_table_statistics",
		"start_replication_task_assessment_run",
		"import_certificate",
		"create_replication_subnet_group",
		"describe_events",
		"apply_pending_maintenance_action",
		"list_tags_for_resource",
		"describe_replication_configs",
		"describe_migration_projects",
		"start_metadata_model_conversion",
		"describe_fleet_advisor_collectors",
		"batch_start_recommendations",
	} {
		assert.True(t, toolNames[name], "missing tool: %s", name)
	}
}

func TestToolsHaveDescriptionsAndAnnotations(t *testing.T) {
	cs := newTestSession(t, config.Default(), &fakeInvoker{})

	result, err := cs.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)

	for _, tool := range result.Tools {
		assert.NotEmpty(t, tool.Description, "tool %q has empty description", tool.Name)
		assert.NotNil(t, tool.InputSchema, "tool %q has nil input schema", tool.Name)
		assert.NotNil(t, tool.Annotations, "tool %q has nil annotations", tool.Name)
	}
}

func TestDeleteToolsAreDestructive(t *testing.T) {
	cs := newTestSession(t, config.Default(), &fakeInvoker{})

	result, err := cs.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)

	for _, tool := range result.Tools {
		if !strings.HasPrefix(tool.Name, "delete_") {
			continue
		}
		require.NotNil(t, tool.Annotations, "tool %q has nil annotations", tool.Name)
		if assert.NotNil(t, tool.Annotations.DestructiveHint, "tool %q not marked destructive", tool.Name) {
			assert.True(t, *tool.Annotations.DestructiveHint, "tool %q not marked destructive", tool.Name)
		}
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Tool invocation tests
// ═══════════════════════════════════════════════════════════════════════════

func TestCallDescribeEndpoints(t *testing.T) {
	inv := &fakeInvoker{response: map[string]any{
		"Endpoints": []any{
			map[string]any{"EndpointIdentifier": "src-mysql", "Status": "active"},
		},
	}}
	cs := newTestSession(t, config.Default(), inv)

	env, res := callTool(t, cs, "describe_endpoints", map[string]any{
		"filters": []map[string]any{
			{"Name": "endpoint-type", "Values": []string{"source"}},
		},
	})
	assert.False(t, res.IsError)
	assert.True(t, env.Success)

	require.NotEmpty(t, inv.calls)
	assert.Equal(t, "describe_endpoints", inv.calls[0].Operation)
}

func TestConfiguredPageSizeFlowsToGateway(t *testing.T) {
	cfg := config.Default()
	cfg.MaxResults = 7
	inv := &fakeInvoker{response: map[string]any{"Endpoints": []any{}}}
	cs := newTestSession(t, cfg, inv)

	env, _ := callTool(t, cs, "describe_endpoints", nil)
	assert.True(t, env.Success)

	require.NotEmpty(t, inv.calls)
	assert.EqualValues(t, 7, inv.calls[0].Params["MaxRecords"])
}

func TestCallsCarryOperationDeadline(t *testing.T) {
	inv := &fakeInvoker{response: map[string]any{"Endpoints": []any{}}}
	cs := newTestSession(t, config.Default(), inv)

	_, _ = callTool(t, cs, "describe_endpoints", nil)

	require.NotEmpty(t, inv.calls)
	assert.True(t, inv.calls[0].HasDeadline, "gateway call should run under the configured timeout")
}

func TestCallGatewayErrorBecomesEnvelope(t *testing.T) {
	inv := &fakeInvoker{err: errors.New("AccessDeniedException: not authorized")}
	cs := newTestSession(t, config.Default(), inv)

	env, res := callTool(t, cs, "describe_replication_instances", nil)
	assert.False(t, res.IsError, "gateway failures stay inside the envelope")
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	require.NotNil(t, env.Error.Message)
	assert.Contains(t, *env.Error.Message, "AccessDeniedException")
}

func TestCallInvalidArguments(t *testing.T) {
	cs := newTestSession(t, config.Default(), &fakeInvoker{})

	_, res := callTool(t, cs, "describe_endpoints", map[string]any{
		"max_records": "not-a-number",
	})
	assert.True(t, res.IsError)
}

// ═══════════════════════════════════════════════════════════════════════════
// Read-only mode tests
// ═══════════════════════════════════════════════════════════════════════════

func TestReadOnlyModeBlocksMutations(t *testing.T) {
	cfg := config.Default()
	cfg.ReadOnlyMode = true
	inv := &fakeInvoker{}
	cs := newTestSession(t, cfg, inv)

	env, res := callTool(t, cs, "delete_endpoint", map[string]any{
		"endpoint_arn": "arn:aws:dms:us-east-1:123456789012:endpoint:ABC",
	})
	assert.False(t, res.IsError)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	require.NotNil(t, env.Error.Message)
	assert.Contains(t, strings.ToLower(*env.Error.Message), "read-only mode")

	assert.Empty(t, inv.calls, "read-only mode must short-circuit before the gateway")
}

func TestReadOnlyModeAllowsReads(t *testing.T) {
	cfg := config.Default()
	cfg.ReadOnlyMode = true
	inv := &fakeInvoker{response: map[string]any{"ReplicationTasks": []any{}}}
	cs := newTestSession(t, cfg, inv)

	env, res := callTool(t, cs, "describe_replication_tasks", nil)
	assert.False(t, res.IsError)
	assert.True(t, env.Success)
	assert.NotEmpty(t, inv.calls)
}

// ═══════════════════════════════════════════════════════════════════════════
// HTTP transport tests
// ═══════════════════════════════════════════════════════════════════════════

func TestHealthEndpoint(t *testing.T) {
	srv := mcpserver.New(config.Default(), &fakeInvoker{})
	handler := srv.HTTPHandler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, 503, rec.Code, "before MarkReady the probe reports starting")
	assert.Contains(t, rec.Body.String(), `"status":"starting"`)

	srv.MarkReady()

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Contains(t, rec.Body.String(), `"service":"aws-dms-mcp"`)
}

func TestHealthEndpointRejectsPost(t *testing.T) {
	srv := mcpserver.New(config.Default(), &fakeInvoker{})
	srv.MarkReady()

	rec := httptest.NewRecorder()
	srv.HTTPHandler().ServeHTTP(rec, httptest.NewRequest("POST", "/health", nil))
	assert.Equal(t, 405, rec.Code)
	assert.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))
}

func TestMetricsEndpoint(t *testing.T) {
	srv := mcpserver.New(config.Default(), &fakeInvoker{})
	srv.MarkReady()

	rec := httptest.NewRecorder()
	srv.HTTPHandler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 200, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	srv := mcpserver.New(config.Default(), &fakeInvoker{})

	req := httptest.NewRequest("OPTIONS", "/mcp", nil)
	req.Header.Set("Origin", "https://app.example.com")

	rec := httptest.NewRecorder()
	srv.HTTPHandler().ServeHTTP(rec, req)

	assert.Equal(t, 204, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Mcp-Session-Id")
}

func TestSecurityHeaders(t *testing.T) {
	srv := mcpserver.New(config.Default(), &fakeInvoker{})
	srv.MarkReady()

	rec := httptest.NewRecorder()
	srv.HTTPHandler().ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}
