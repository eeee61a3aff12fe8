// Package mcpserver exposes the DMS control-plane managers as MCP tools.
//
// The server registers one tool per DMS operation, each a thin handler that
// decodes snake_case tool arguments, calls the matching manager method, and
// returns the uniform {success, data, error} envelope as indented JSON. A
// global read-only mode short-circuits every mutating tool before argument
// parsing. Transports: stdio for IDE/agent integrations, streamable HTTP
// (with /health and /metrics) for remote deployments.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"sync/atomic"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmsmcp/dmsmcp/pkg/config"
	"github.com/dmsmcp/dmsmcp/pkg/defaults"
	"github.com/dmsmcp/dmsmcp/pkg/dms"
	"github.com/dmsmcp/dmsmcp/pkg/dmsapi"
	"github.com/dmsmcp/dmsmcp/pkg/logging"
)

// Server wraps the MCP server with the DMS domain managers.
type Server struct {
	mcp   *mcp.Server
	cfg   *config.Config
	ready atomic.Bool // tracks whether startup (AWS client construction) passed

	instances       *dms.InstanceManager
	endpoints       *dms.EndpointManager
	tasks           *dms.TaskManager
	connections     *dms.ConnectionTester
	assessments     *dms.AssessmentManager
	certificates    *dms.CertificateManager
	events          *dms.EventManager
	subnetGroups    *dms.SubnetGroupManager
	maintenance     *dms.MaintenanceManager
	tags            *dms.TagManager
	tables          *dms.TableOperations
	serverless      *dms.ServerlessManager
	projects        *dms.ProjectManager
	metadata        *dms.MetadataModelManager
	fleet           *dms.FleetAdvisorManager
	recommendations *dms.RecommendationManager
}

// MCPServer returns the underlying MCP server for direct access (e.g., testing).
func (s *Server) MCPServer() *mcp.Server { return s.mcp }

// MarkReady signals that startup validation passed. Until MarkReady is
// called, the /health endpoint returns 503 Service Unavailable.
func (s *Server) MarkReady() { s.ready.Store(true) }

// IsReady returns true if the server has completed startup validation.
func (s *Server) IsReady() bool { return s.ready.Load() }

// New creates an MCP server with every DMS tool registered. client is the
// gateway all managers share; tests substitute a recording mock.
func New(cfg *config.Config, client dmsapi.Invoker) *Server {
	if cfg == nil {
		cfg = config.Default()
	}

	tasks := dms.NewTaskManager(client)
	tasks.SetMappingValidation(cfg.ValidateTableMappings)

	s := &Server{
		cfg:             cfg,
		instances:       dms.NewInstanceManager(client),
		endpoints:       dms.NewEndpointManager(client),
		tasks:           tasks,
		connections:     dms.NewConnectionTester(client, cfg.EnableConnectionCaching),
		assessments:     dms.NewAssessmentManager(client),
		certificates:    dms.NewCertificateManager(client),
		events:          dms.NewEventManager(client),
		subnetGroups:    dms.NewSubnetGroupManager(client),
		maintenance:     dms.NewMaintenanceManager(client),
		tags:            dms.NewTagManager(client),
		tables:          dms.NewTableOperations(client),
		serverless:      dms.NewServerlessManager(client),
		projects:        dms.NewProjectManager(client),
		metadata:        dms.NewMetadataModelManager(client),
		fleet:           dms.NewFleetAdvisorManager(client),
		recommendations: dms.NewRecommendationManager(client),
	}

	for _, m := range []interface{ SetDefaultPageSize(int) }{
		s.instances, s.endpoints, s.tasks, s.connections, s.assessments,
		s.certificates, s.events, s.subnetGroups, s.maintenance, s.tags,
		s.tables, s.serverless, s.projects, s.metadata, s.fleet,
		s.recommendations,
	} {
		m.SetDefaultPageSize(cfg.MaxResults)
	}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    defaults.ServerName,
			Title:   "AWS DMS MCP Server",
			Version: defaults.Version,
		},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)

	s.registerTools()

	return s
}

// registerTools registers every tool family on the MCP server.
func (s *Server) registerTools() {
	s.registerInstanceTools()
	s.registerEndpointTools()
	s.registerConnectionTools()
	s.registerTaskTools()
	s.registerTableTools()
	s.registerAssessmentTools()
	s.registerCertificateTools()
	s.registerSubnetGroupTools()
	s.registerEventTools()
	s.registerMaintenanceTools()
	s.registerTagTools()
	s.registerServerlessTools()
	s.registerProjectTools()
	s.registerMetadataModelTools()
	s.registerFleetAdvisorTools()
	s.registerRecommendationTools()
}

// RunStdio runs the MCP server over stdio transport. This is the primary
// mode for IDE and agent integrations (Claude Desktop, Cursor, VS Code).
func (s *Server) RunStdio(ctx context.Context) error {
	logging.Info("mcp", "stdio transport started (region=%s, read_only=%v)",
		s.cfg.AWSRegion, s.cfg.ReadOnlyMode)
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// HTTPHandler returns an http.Handler for the streamable HTTP transport
// with CORS support, a health probe, and Prometheus metrics.
//
// The handler mounts:
//   - /health      → readiness/liveness probe (GET/HEAD only)
//   - /metrics     → Prometheus metrics
//   - /mcp         → streamable HTTP transport (2025-03-26 spec)
//   - /            → streamable HTTP transport (default mount)
func (s *Server) HTTPHandler() http.Handler {
	streamable := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return s.mcp },
		&mcp.StreamableHTTPOptions{Stateless: false},
	)

	mux := http.NewServeMux()
	mux.HandleFunc(defaults.HealthPath, s.handleHealth)
	mux.Handle(defaults.MetricsPath, promhttp.Handler())
	mux.Handle("/mcp", streamable)
	mux.Handle("/", streamable)

	return corsMiddleware(recoveryMiddleware(securityHeaders(mux)))
}

// handleHealth serves a readiness/liveness probe. Returns 200 once the AWS
// client has been constructed, 503 Service Unavailable before MarkReady().
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if !s.IsReady() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status":"starting","service":"aws-dms-mcp"}`))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok","service":"aws-dms-mcp"}`))
}

// corsMiddleware wraps an http.Handler with permissive CORS headers required
// by browser-based MCP clients and cross-origin integrations.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// Always set Vary: Origin so caches don't serve a CORS-enabled
		// response to a non-browser client or vice versa.
		w.Header().Add("Vary", "Origin")

		if origin == "" {
			// No Origin header = non-browser client; skip CORS headers.
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers",
			strings.Join([]string{
				"Content-Type",
				"Authorization",
				"Mcp-Session-Id",
				"MCP-Protocol-Version",
				"Last-Event-ID",
				"Accept",
			}, ", "))
		w.Header().Set("Access-Control-Expose-Headers", "Mcp-Session-Id, MCP-Protocol-Version")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// recoveryMiddleware catches panics in HTTP handlers and returns a 500
// instead of killing the connection.
func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logging.Error("http", fmt.Errorf("%v", err), "panic in handler: %s", debug.Stack())

				// Best-effort error response: if headers were already
				// sent this is a no-op.
				defer func() { _ = recover() }()
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// securityHeaders sets conservative security headers on every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// ---------------------------------------------------------------------------
// Result helpers
// ---------------------------------------------------------------------------

// textResult creates a CallToolResult with a single text content block.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// jsonResult marshals v to indented JSON and wraps it in a CallToolResult.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return textResult(string(data)), nil
}

// errorResult creates an IsError CallToolResult so the LLM can see the error
// and self-correct rather than raising a protocol-level exception.
func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		IsError: true,
	}
}

// envelope converts a manager call's outcome into a tool result. Hard
// failures (invalid parameters, missing resources, gateway errors) become
// the same {success, data, error} envelope a soft failure uses, so no error
// ever escapes the tool layer.
func envelope(res *dms.Result, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		msg := err.Error()
		res = &dms.Result{
			Success: false,
			Data:    map[string]any{},
			Error:   &dms.ErrorInfo{Message: &msg},
		}
	}
	return jsonResult(res)
}

// boolPtr returns a pointer to b. Used for optional bool fields in the SDK.
func boolPtr(b bool) *bool { return &b }

// parseArgs unmarshals the raw JSON arguments from a tool call into dst.
func parseArgs(req *mcp.CallToolRequest, dst any) error {
	if len(req.Params.Arguments) == 0 {
		return nil
	}
	if err := json.Unmarshal(req.Params.Arguments, dst); err != nil {
		return fmt.Errorf("parsing tool arguments: %w", err)
	}
	return nil
}
