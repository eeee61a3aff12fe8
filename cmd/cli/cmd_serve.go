package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmsmcp/dmsmcp/pkg/config"
	"github.com/dmsmcp/dmsmcp/pkg/defaults"
	"github.com/dmsmcp/dmsmcp/pkg/dmsapi"
	"github.com/dmsmcp/dmsmcp/pkg/logging"
	"github.com/dmsmcp/dmsmcp/pkg/mcpserver"
	"github.com/dmsmcp/dmsmcp/pkg/ui"
)

// runServe starts the MCP server.
// Supports two transport modes:
//   - stdio (default): for IDE integrations (VS Code, Claude Desktop, Cursor)
//   - --http <addr>:   for remote/Docker deployments with session management
func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)

	httpAddr := fs.String("http", "", "HTTP address to listen on (e.g. :8080). Disables stdio.")
	configPath := fs.String("config", "", "Path to YAML config file")
	region := fs.String("region", "", "AWS region (overrides config and DMS_AWS_REGION)")
	profile := fs.String("profile", "", "AWS shared-credentials profile")
	readOnly := fs.Bool("read-only", false, "Block all mutating tools")
	logLevel := fs.String("log-level", "", "Log level: DEBUG, INFO, WARNING, ERROR")
	noColor := fs.Bool("no-color", false, "Disable colored output")
	silent := fs.Bool("silent", false, "Suppress banner and informational output")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: dms-mcp serve [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Start an MCP server exposing the AWS DMS control plane as tools.\n\n")
		fmt.Fprintf(os.Stderr, "Transports:\n")
		fmt.Fprintf(os.Stderr, "  (default)        Stdio transport for IDE integration\n")
		fmt.Fprintf(os.Stderr, "  --http <addr>    Streamable HTTP transport for remote/Docker\n\n")
		fmt.Fprintf(os.Stderr, "Environment variables (override the config file):\n")
		fmt.Fprintf(os.Stderr, "  DMS_AWS_REGION       AWS region (default: %s)\n", defaults.AWSRegion)
		fmt.Fprintf(os.Stderr, "  DMS_AWS_PROFILE      Shared-credentials profile\n")
		fmt.Fprintf(os.Stderr, "  DMS_READ_ONLY_MODE   Block mutating tools (true/false)\n")
		fmt.Fprintf(os.Stderr, "  DMS_CONFIG_FILE      Config file path (same as --config)\n")
		fmt.Fprintf(os.Stderr, "  DMS_HTTP_ADDR        HTTP listen address (same as --http)\n\n")
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  dms-mcp serve\n")
		fmt.Fprintf(os.Stderr, "  dms-mcp serve --http :%d --read-only\n", defaults.HTTPPort)
		fmt.Fprintf(os.Stderr, "  DMS_AWS_REGION=eu-west-1 dms-mcp serve --profile staging\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(defaults.ExitUserError)
	}

	ui.SetSilent(*silent)
	ui.SetNoColor(*noColor)

	cfg, err := config.Load(*configPath)
	if err != nil {
		ui.PrintError(fmt.Sprintf("configuration: %v", err))
		os.Exit(defaults.ExitUserError)
	}

	// Flags win over config file and environment.
	if *region != "" {
		cfg.AWSRegion = *region
	}
	if *profile != "" {
		cfg.AWSProfile = *profile
	}
	if *readOnly {
		cfg.ReadOnlyMode = true
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
		if err := cfg.Validate(); err != nil {
			ui.PrintError(fmt.Sprintf("configuration: %v", err))
			os.Exit(defaults.ExitUserError)
		}
	}

	// Env var override for the HTTP address (useful in Docker/K8s).
	if *httpAddr == "" {
		*httpAddr = os.Getenv("DMS_HTTP_ADDR")
	}

	// Logs go to stderr; stdout belongs to the stdio transport.
	level, _ := logging.ParseLevel(cfg.LogLevel)
	logging.Init(level, cfg.EnableStructuredLogging, os.Stderr)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Startup validation: construct the AWS client before accepting calls so
	// a broken credential chain fails fast instead of on the first tool call.
	client, err := dmsapi.New(ctx, cfg)
	if err != nil {
		ui.PrintError(fmt.Sprintf("AWS client: %v", err))
		os.Exit(defaults.ExitNetworkError)
	}

	srv := mcpserver.New(cfg, client)
	srv.MarkReady()

	if cfg.ReadOnlyMode {
		ui.PrintWarning("read-only mode: mutating tools are disabled")
	}

	if *httpAddr != "" {
		runHTTP(ctx, srv, *httpAddr)
		return
	}

	if err := srv.RunStdio(ctx); err != nil {
		ui.PrintError(fmt.Sprintf("stdio transport: %v", err))
		os.Exit(defaults.ExitInternalError)
	}
}

// runHTTP serves the streamable HTTP transport until ctx is cancelled.
func runHTTP(ctx context.Context, srv *mcpserver.Server, addr string) {
	ui.PrintBanner()

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.HTTPHandler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// WriteTimeout intentionally 0: SSE streams are long-lived and any
		// non-zero value sets an absolute deadline that kills them.
		// ReadHeaderTimeout + ReadTimeout protect against slowloris.
		IdleTimeout:    30 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()
		ui.PrintInfo("shutting down gracefully")
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			ui.PrintError(fmt.Sprintf("shutdown: %v", err))
		}
	}()

	ui.PrintInfo(fmt.Sprintf("%s MCP server listening on %s (HTTP transport)", ui.UserAgent(), addr))

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		ui.PrintError(err.Error())
		os.Exit(defaults.ExitNetworkError)
	}
}
