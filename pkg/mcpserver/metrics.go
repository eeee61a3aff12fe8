package mcpserver

import "github.com/prometheus/client_golang/prometheus"

// Tool invocation metrics, served at the metrics path of the HTTP
// transport. Registered on the default registry so promhttp.Handler picks
// them up alongside the Go runtime collectors.
var (
	toolCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dmsmcp_tool_calls_total",
			Help: "Total number of MCP tool invocations",
		},
		[]string{"tool", "outcome"},
	)

	toolDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dmsmcp_tool_duration_seconds",
			Help:    "MCP tool invocation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
		},
		[]string{"tool"},
	)
)

func init() {
	prometheus.MustRegister(toolCalls, toolDuration)
}
