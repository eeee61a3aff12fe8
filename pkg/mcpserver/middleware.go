package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dmsmcp/dmsmcp/pkg/dms"
	"github.com/dmsmcp/dmsmcp/pkg/logging"
)

// toolHandler is the handler shape the MCP SDK expects from AddTool.
type toolHandler = func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error)

// loggedTool wraps a handler with per-invocation logging and metrics. Each
// call gets a short correlation ID so the request and completion lines of
// concurrent invocations can be matched up. Arguments are logged with
// secret values masked; the wire payload is never modified.
func loggedTool(name string, h toolHandler) toolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := uuid.NewString()[:8]
		start := time.Now()
		logging.Debug("mcp", "[%s] %s args=%s", id, name, redactedArgs(req))

		res, err := h(ctx, req)

		outcome := "ok"
		if err != nil || (res != nil && res.IsError) {
			outcome = "error"
		}
		toolCalls.WithLabelValues(name, outcome).Inc()
		toolDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		logging.Info("mcp", "[%s] %s finished in %s (%s)",
			id, name, time.Since(start).Round(time.Millisecond), outcome)
		return res, err
	}
}

// redactedArgs renders a call's arguments for logging with secrets masked.
func redactedArgs(req *mcp.CallToolRequest) string {
	if len(req.Params.Arguments) == 0 {
		return "{}"
	}
	var args map[string]any
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return "<unparsable>"
	}
	data, err := json.Marshal(logging.MaskSecrets(args))
	if err != nil {
		return "<unparsable>"
	}
	return string(data)
}

// withTimeout bounds a single invocation by the configured operation
// timeout so a stalled upstream call cannot hold a session open forever.
func (s *Server) withTimeout(h toolHandler) toolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout())
		defer cancel()
		return h(ctx, req)
	}
}

// readTool registers wrapping for a read-only tool.
func (s *Server) readTool(name string, h toolHandler) toolHandler {
	return loggedTool(name, s.withTimeout(h))
}

// writeTool registers wrapping for a mutating tool. The read-only check
// runs before argument parsing so read-only mode is enforced even for
// malformed requests.
func (s *Server) writeTool(name string, h toolHandler) toolHandler {
	return loggedTool(name, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if s.cfg.ReadOnlyMode {
			msg := fmt.Sprintf("Operation %s is not allowed: server is running in read-only mode", name)
			return jsonResult(&dms.Result{
				Success: false,
				Data:    map[string]any{},
				Error:   &dms.ErrorInfo{Message: &msg},
			})
		}
		return s.withTimeout(h)(ctx, req)
	})
}

// readOnly registers a describe/list tool. Annotations default to
// read-only + idempotent unless the registration provides its own.
func (s *Server) readOnly(tool *mcp.Tool, h toolHandler) {
	if tool.Annotations == nil {
		tool.Annotations = &mcp.ToolAnnotations{
			ReadOnlyHint:   true,
			IdempotentHint: true,
			Title:          tool.Title,
		}
	}
	s.mcp.AddTool(tool, s.readTool(tool.Name, h))
}

// mutating registers a tool that changes remote state and is therefore
// subject to the read-only gate.
func (s *Server) mutating(tool *mcp.Tool, h toolHandler) {
	if tool.Annotations == nil {
		tool.Annotations = &mcp.ToolAnnotations{
			OpenWorldHint: boolPtr(true),
			Title:         tool.Title,
		}
	}
	s.mcp.AddTool(tool, s.writeTool(tool.Name, h))
}

// destructive registers a delete-class tool: mutating, with the
// destructive annotation set so cautious clients can require confirmation.
func (s *Server) destructive(tool *mcp.Tool, h toolHandler) {
	if tool.Annotations == nil {
		tool.Annotations = &mcp.ToolAnnotations{
			DestructiveHint: boolPtr(true),
			OpenWorldHint:   boolPtr(true),
			Title:           tool.Title,
		}
	}
	s.mcp.AddTool(tool, s.writeTool(tool.Name, h))
}
