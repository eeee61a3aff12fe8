package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dmsmcp/dmsmcp/pkg/dms"
)

// ═══════════════════════════════════════════════════════════════════════════
// Events & Subscriptions
// ═══════════════════════════════════════════════════════════════════════════

func (s *Server) registerEventTools() {
	s.mutating(&mcp.Tool{
		Name:        "create_event_subscription",
		Title:       "Create Event Subscription",
		Description: "Route DMS events to an SNS topic. source_type narrows events to replication-instance or replication-task; source_ids and event_categories narrow further. enabled defaults to true.",
		InputSchema: objectSchema(map[string]any{
			"subscription_name": stringProp("Unique name for the subscription."),
			"sns_topic_arn":     stringProp("SNS topic that receives the events."),
			"source_type":       stringProp("replication-instance or replication-task."),
			"event_categories":  stringArrayProp("Event categories to subscribe to; see describe_event_categories."),
			"source_ids":        stringArrayProp("Specific source identifiers to watch."),
			"enabled":           boolProp("Whether the subscription starts active (default true)."),
			"tags":              objectArrayProp("Tags as [{\"Key\": ..., \"Value\": ...}]."),
		}, "subscription_name", "sns_topic_arn"),
	}, s.handleCreateEventSubscription)

	s.mutating(&mcp.Tool{
		Name:        "modify_event_subscription",
		Title:       "Modify Event Subscription",
		Description: "Change an event subscription's topic, source type, categories, or enabled state.",
		InputSchema: objectSchema(map[string]any{
			"subscription_name": stringProp("Subscription to modify."),
			"sns_topic_arn":     stringProp("New SNS topic."),
			"source_type":       stringProp("replication-instance or replication-task."),
			"event_categories":  stringArrayProp("Replacement event categories."),
			"enabled":           boolProp("Activate or deactivate the subscription."),
		}, "subscription_name"),
	}, s.handleModifyEventSubscription)

	s.destructive(&mcp.Tool{
		Name:        "delete_event_subscription",
		Title:       "Delete Event Subscription",
		Description: "Delete an event subscription.",
		InputSchema: objectSchema(map[string]any{
			"subscription_name": stringProp("Subscription to delete."),
		}, "subscription_name"),
	}, s.handleDeleteEventSubscription)

	s.readOnly(&mcp.Tool{
		Name:        "describe_event_subscriptions",
		Title:       "Describe Event Subscriptions",
		Description: "List event subscriptions, optionally scoped to one subscription name.",
		InputSchema: objectSchema(listProps(map[string]any{
			"subscription_name": stringProp("Limit results to this subscription."),
		})),
	}, s.handleDescribeEventSubscriptions)

	s.readOnly(&mcp.Tool{
		Name:        "describe_events",
		Title:       "Describe Events",
		Description: "List events for replication instances and tasks over a time window, given either start/end times (ISO 8601) or a duration in minutes.",
		InputSchema: objectSchema(listProps(map[string]any{
			"source_identifier": stringProp("Instance or task identifier to scope to."),
			"source_type":       stringProp("replication-instance or replication-task."),
			"start_time":        stringProp("Window start (ISO 8601)."),
			"end_time":          stringProp("Window end (ISO 8601)."),
			"duration":          intProp("Window length in minutes, counted back from now."),
			"event_categories":  stringArrayProp("Categories to include."),
		})),
	}, s.handleDescribeEvents)

	s.readOnly(&mcp.Tool{
		Name:        "describe_event_categories",
		Title:       "Describe Event Categories",
		Description: "List the event categories that exist per source type.",
		InputSchema: objectSchema(map[string]any{
			"source_type": stringProp("replication-instance or replication-task."),
			"filters":     filtersProp(),
		}),
	}, s.handleDescribeEventCategories)

	s.mutating(&mcp.Tool{
		Name:        "update_subscriptions_to_event_bridge",
		Title:       "Update Subscriptions To EventBridge",
		Description: "Migrate the account's DMS event subscriptions from SNS to EventBridge. Set force_move to migrate even with active subscriptions.",
		InputSchema: objectSchema(map[string]any{
			"force_move": boolProp("Migrate even when active subscriptions exist."),
		}),
	}, s.handleUpdateSubscriptionsToEventBridge)
}

func (s *Server) handleCreateEventSubscription(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Name            string           `json:"subscription_name"`
		SnsTopicARN     string           `json:"sns_topic_arn"`
		SourceType      string           `json:"source_type"`
		EventCategories []string         `json:"event_categories"`
		SourceIDs       []string         `json:"source_ids"`
		Enabled         *bool            `json:"enabled"`
		Tags            []map[string]any `json:"tags"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	enabled := true
	if args.Enabled != nil {
		enabled = *args.Enabled
	}
	opts := dms.SubscriptionOptions{
		SourceType:      args.SourceType,
		EventCategories: args.EventCategories,
		SourceIDs:       args.SourceIDs,
		Tags:            args.Tags,
	}
	return envelope(s.events.CreateSubscription(ctx, args.Name, args.SnsTopicARN, enabled, opts))
}

func (s *Server) handleModifyEventSubscription(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Name            string   `json:"subscription_name"`
		SnsTopicARN     string   `json:"sns_topic_arn"`
		SourceType      string   `json:"source_type"`
		EventCategories []string `json:"event_categories"`
		Enabled         *bool    `json:"enabled"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	params := map[string]any{"SubscriptionName": args.Name}
	setString(params, "SnsTopicArn", args.SnsTopicARN)
	setString(params, "SourceType", args.SourceType)
	setStrings(params, "EventCategories", args.EventCategories)
	setBool(params, "Enabled", args.Enabled)
	return envelope(s.events.ModifySubscription(ctx, params))
}

func (s *Server) handleDeleteEventSubscription(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Name string `json:"subscription_name"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.events.DeleteSubscription(ctx, args.Name))
}

func (s *Server) handleDescribeEventSubscriptions(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		listArgs
		Name string `json:"subscription_name"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.events.ListSubscriptions(ctx, args.Name, args.options()))
}

func (s *Server) handleDescribeEvents(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		listArgs
		SourceIdentifier string   `json:"source_identifier"`
		SourceType       string   `json:"source_type"`
		StartTime        string   `json:"start_time"`
		EndTime          string   `json:"end_time"`
		Duration         int      `json:"duration"`
		EventCategories  []string `json:"event_categories"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	query := dms.EventQuery{
		SourceIdentifier: args.SourceIdentifier,
		SourceType:       args.SourceType,
		StartTime:        args.StartTime,
		EndTime:          args.EndTime,
		Duration:         args.Duration,
		EventCategories:  args.EventCategories,
	}
	return envelope(s.events.ListEvents(ctx, query, args.options()))
}

func (s *Server) handleDescribeEventCategories(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		SourceType string       `json:"source_type"`
		Filters    []dms.Filter `json:"filters"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.events.ListEventCategories(ctx, args.SourceType, args.Filters))
}

func (s *Server) handleUpdateSubscriptionsToEventBridge(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		ForceMove bool `json:"force_move"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.events.UpdateSubscriptionsToEventBridge(ctx, args.ForceMove))
}
