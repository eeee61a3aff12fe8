// Command mcp-smoke runs end-to-end smoke scenarios against a locally
// started dms-mcp server over the streamable HTTP transport.
//
// Without -live the server is started in read-only mode and the scenarios
// only exercise surface area that needs no AWS credentials: tool discovery,
// schema validation, the read-only gate, and the health and metrics
// endpoints. With -live, describe scenarios issue real DMS calls against
// the configured account.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// scenarioResult tracks the outcome of a single scenario.
type scenarioResult struct {
	name   string
	passed bool
	err    error
}

// scenario is a named test function that runs against a live MCP session.
type scenario struct {
	name string
	live bool // requires AWS credentials (skipped without -live)
	fn   func(ctx context.Context, s *mcp.ClientSession) error
}

func main() {
	var (
		port    = flag.Int("port", 18080, "MCP HTTP port")
		timeout = flag.Duration("timeout", 90*time.Second, "Overall timeout")
		live    = flag.Bool("live", false, "Enable scenarios that issue real DMS calls")
		runOnly = flag.String("scenario", "", "Run only this named scenario")
	)
	flag.Parse()
	log.SetFlags(0)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	serverCmd, err := startServer(ctx, *port, !*live)
	if err != nil {
		log.Fatalf("FATAL start_server: %v", err)
	}
	defer stopServer(serverCmd)

	if err := waitForHealth(ctx, *port); err != nil {
		log.Fatalf("FATAL health_check: %v", err)
	}
	fmt.Println("server: healthy")

	client := mcp.NewClient(&mcp.Implementation{Name: "mcp-smoke", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: fmt.Sprintf("http://127.0.0.1:%d/mcp", *port),
	}, nil)
	if err != nil {
		log.Fatalf("FATAL connect: %v", err)
	}
	defer session.Close()

	scenarios := allScenarios(*port)

	var results []scenarioResult
	for _, sc := range scenarios {
		if *runOnly != "" && sc.name != *runOnly {
			continue
		}
		if sc.live && !*live {
			results = append(results, scenarioResult{name: sc.name, passed: true, err: fmt.Errorf("SKIP (needs -live)")})
			fmt.Printf("SKIP  %s\n", sc.name)
			continue
		}

		err := sc.fn(ctx, session)
		passed := err == nil
		results = append(results, scenarioResult{name: sc.name, passed: passed, err: err})

		if passed {
			fmt.Printf("PASS  %s\n", sc.name)
		} else {
			fmt.Printf("FAIL  %s: %v\n", sc.name, err)
		}
	}

	// Summary.
	passed, failed, skipped := 0, 0, 0
	for _, r := range results {
		if r.err != nil && strings.HasPrefix(r.err.Error(), "SKIP") {
			skipped++
		} else if r.passed {
			passed++
		} else {
			failed++
		}
	}

	fmt.Printf("\n--- %d passed, %d failed, %d skipped ---\n", passed, failed, skipped)
	if failed > 0 {
		os.Exit(1)
	}
}

// allScenarios returns every smoke scenario in execution order.
func allScenarios(port int) []scenario {
	return []scenario{
		{"tool_discovery", false, scenarioToolDiscovery},
		{"tool_annotations", false, scenarioToolAnnotations},
		{"schema_validation", false, scenarioSchemaValidation},
		{"read_only_gate", false, scenarioReadOnlyGate},
		{"metrics_endpoint", false, func(ctx context.Context, _ *mcp.ClientSession) error {
			return scenarioMetrics(ctx, port)
		}},

		// Real AWS calls.
		{"describe_endpoints", true, scenarioDescribeEndpoints},
		{"describe_instances", true, scenarioDescribeInstances},
		{"pagination", true, scenarioPagination},
	}
}

// scenarioToolDiscovery checks that the full DMS tool surface is registered.
func scenarioToolDiscovery(ctx context.Context, s *mcp.ClientSession) error {
	result, err := s.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		return fmt.Errorf("ListTools: %w", err)
	}

	if len(result.Tools) < 100 {
		return fmt.Errorf("got %d tools, want at least 100", len(result.Tools))
	}

	names := make(map[string]bool, len(result.Tools))
	for _, tool := range result.Tools {
		if tool.Description == "" {
			return fmt.Errorf("tool %q has no description", tool.Name)
		}
		names[tool.Name] = true
	}

	for _, want := range []string{
		"describe_replication_instances",
		"describe_endpoints",
		"test_connection",
		"create_replication_task",
		"describe_migration_projects",
		"describe_fleet_advisor_collectors",
		"start_recommendations",
	} {
		if !names[want] {
			return fmt.Errorf("missing tool %q", want)
		}
	}
	return nil
}

// scenarioToolAnnotations verifies delete tools carry the destructive hint.
func scenarioToolAnnotations(ctx context.Context, s *mcp.ClientSession) error {
	result, err := s.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		return fmt.Errorf("ListTools: %w", err)
	}
	for _, tool := range result.Tools {
		if tool.Annotations == nil {
			return fmt.Errorf("tool %q has no annotations", tool.Name)
		}
		if strings.HasPrefix(tool.Name, "delete_") {
			if tool.Annotations.DestructiveHint == nil || !*tool.Annotations.DestructiveHint {
				return fmt.Errorf("tool %q is not marked destructive", tool.Name)
			}
		}
	}
	return nil
}

// scenarioSchemaValidation: malformed arguments must produce a tool error,
// not a transport failure.
func scenarioSchemaValidation(ctx context.Context, s *mcp.ClientSession) error {
	result, err := s.CallTool(ctx, &mcp.CallToolParams{
		Name:      "describe_endpoints",
		Arguments: map[string]any{"max_records": "twelve"},
	})
	if err != nil {
		return fmt.Errorf("CallTool: %w", err)
	}
	if !result.IsError {
		return fmt.Errorf("expected IsError for non-integer max_records")
	}
	return nil
}

// scenarioReadOnlyGate: the server runs in read-only mode (without -live),
// so a mutation must be rejected with a failure envelope before it ever
// reaches AWS.
func scenarioReadOnlyGate(ctx context.Context, s *mcp.ClientSession) error {
	env, err := callToolJSON(ctx, s, "delete_endpoint", map[string]any{
		"endpoint_arn": "arn:aws:dms:us-east-1:000000000000:endpoint:SMOKE",
	})
	if err != nil {
		return err
	}
	if success, _ := env["success"].(bool); success {
		return fmt.Errorf("mutation succeeded in read-only mode")
	}
	if !strings.Contains(strings.ToLower(fmt.Sprint(env["error"])), "read-only mode") {
		return fmt.Errorf("error does not mention read-only mode: %v", env["error"])
	}
	return nil
}

// scenarioMetrics checks the Prometheus endpoint after the calls above.
func scenarioMetrics(ctx context.Context, port int) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("http://127.0.0.1:%d/metrics", port), nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET /metrics: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /metrics: status %d", resp.StatusCode)
	}
	return nil
}

func scenarioDescribeEndpoints(ctx context.Context, s *mcp.ClientSession) error {
	env, err := callToolJSON(ctx, s, "describe_endpoints", nil)
	if err != nil {
		return err
	}
	if success, _ := env["success"].(bool); !success {
		return fmt.Errorf("describe_endpoints failed: %v", env["error"])
	}
	return nil
}

func scenarioDescribeInstances(ctx context.Context, s *mcp.ClientSession) error {
	env, err := callToolJSON(ctx, s, "describe_replication_instances", nil)
	if err != nil {
		return err
	}
	if success, _ := env["success"].(bool); !success {
		return fmt.Errorf("describe_replication_instances failed: %v", env["error"])
	}
	return nil
}

// scenarioPagination asks for a one-item page and expects either a marker or
// a short list back.
func scenarioPagination(ctx context.Context, s *mcp.ClientSession) error {
	env, err := callToolJSON(ctx, s, "describe_endpoints", map[string]any{"max_records": 1})
	if err != nil {
		return err
	}
	if success, _ := env["success"].(bool); !success {
		return fmt.Errorf("paged describe_endpoints failed: %v", env["error"])
	}
	data, _ := env["data"].(map[string]any)
	if data == nil {
		return fmt.Errorf("envelope has no data object")
	}
	if list, ok := data["endpoints"].([]any); ok && len(list) > 1 {
		return fmt.Errorf("max_records=1 returned %d endpoints", len(list))
	}
	return nil
}

// callToolJSON calls a tool and parses the envelope from its text content.
func callToolJSON(ctx context.Context, s *mcp.ClientSession, name string, args map[string]any) (map[string]any, error) {
	result, err := s.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return nil, fmt.Errorf("CallTool(%s): %w", name, err)
	}
	text := extractText(result)
	if result.IsError {
		return nil, fmt.Errorf("tool %s returned error: %s", name, truncate(text, 200))
	}
	var env map[string]any
	if err := json.Unmarshal([]byte(text), &env); err != nil {
		return nil, fmt.Errorf("tool %s returned non-JSON text: %s", name, truncate(text, 200))
	}
	return env, nil
}

func extractText(result *mcp.CallToolResult) string {
	for _, c := range result.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// startServer launches "go run ./cmd/cli serve --http" from the repo root.
func startServer(ctx context.Context, port int, readOnly bool) (*exec.Cmd, error) {
	root, err := findRepoRoot()
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, "go", "run", "./cmd/cli",
		"serve", "--http", fmt.Sprintf(":%d", port), "--silent")
	cmd.Dir = root
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), fmt.Sprintf("DMS_READ_ONLY_MODE=%v", readOnly))

	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cmd, nil
}

func stopServer(cmd *exec.Cmd) {
	if cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
	_ = cmd.Wait()
}

// findRepoRoot walks up from the working directory looking for go.mod.
func findRepoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found above %s", dir)
		}
		dir = parent
	}
}

// waitForHealth polls /health until the server reports ready.
func waitForHealth(ctx context.Context, port int) error {
	url := fmt.Sprintf("http://127.0.0.1:%d/health", port)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(250 * time.Millisecond):
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			continue
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			return nil
		}
	}
}
