package dms

import (
	"context"

	"github.com/dmsmcp/dmsmcp/pkg/dmsapi"
)

// EventManager covers event subscriptions and event history.
type EventManager struct {
	manager
}

// NewEventManager creates an EventManager over the given gateway.
func NewEventManager(client dmsapi.Invoker) *EventManager {
	return &EventManager{manager{client: client}}
}

// SubscriptionOptions carries the optional attributes of a subscription
// create or modify call. Empty fields are not forwarded.
type SubscriptionOptions struct {
	SourceType      string
	EventCategories []string
	SourceIDs       []string
	Tags            []map[string]any
}

// CreateSubscription creates an event subscription routing DMS events to
// an SNS topic. enabled is always sent explicitly so a disabled
// subscription can be created.
func (m *EventManager) CreateSubscription(ctx context.Context, name, snsTopicARN string, enabled bool, opts SubscriptionOptions) (*Result, error) {
	params := map[string]any{
		"SubscriptionName": name,
		"SnsTopicArn":      snsTopicARN,
		"Enabled":          enabled,
	}
	if opts.SourceType != "" {
		params["SourceType"] = opts.SourceType
	}
	if len(opts.EventCategories) > 0 {
		params["EventCategories"] = opts.EventCategories
	}
	if len(opts.SourceIDs) > 0 {
		params["SourceIds"] = opts.SourceIDs
	}
	if len(opts.Tags) > 0 {
		params["Tags"] = opts.Tags
	}
	return m.mutate(ctx, mutationSpec{
		operation:   "create_event_subscription",
		responseKey: "EventSubscription",
		resultKey:   "subscription",
		message:     "Event subscription created successfully",
	}, params)
}

// ModifySubscription changes subscription attributes. params carries AWS
// parameter names and must include SubscriptionName.
func (m *EventManager) ModifySubscription(ctx context.Context, params map[string]any) (*Result, error) {
	return m.mutate(ctx, mutationSpec{
		operation:   "modify_event_subscription",
		required:    []string{"SubscriptionName"},
		responseKey: "EventSubscription",
		resultKey:   "subscription",
		message:     "Event subscription modified successfully",
	}, params)
}

// DeleteSubscription deletes the named subscription.
func (m *EventManager) DeleteSubscription(ctx context.Context, name string) (*Result, error) {
	return m.mutate(ctx, mutationSpec{
		operation:   "delete_event_subscription",
		responseKey: "EventSubscription",
		resultKey:   "subscription",
		message:     "Event subscription deleted successfully",
	}, map[string]any{"SubscriptionName": name})
}

// ListSubscriptions lists event subscriptions, optionally narrowed to one
// subscription name.
func (m *EventManager) ListSubscriptions(ctx context.Context, subscriptionName string, opts ListOptions) (*Result, error) {
	var extra map[string]any
	if subscriptionName != "" {
		extra = map[string]any{"SubscriptionName": subscriptionName}
	}
	return m.pagedList(ctx, listSpec{
		operation:   "describe_event_subscriptions",
		responseKey: "EventSubscriptionsList",
		resultKey:   "event_subscriptions",
		format:      formatResource,
	}, opts, extra)
}

// EventQuery scopes ListEvents. Zero-valued fields are not forwarded;
// times are RFC 3339 strings passed through to the service.
type EventQuery struct {
	SourceIdentifier string
	SourceType       string
	StartTime        string
	EndTime          string
	Duration         int
	EventCategories  []string
}

// ListEvents lists events for instances and tasks.
func (m *EventManager) ListEvents(ctx context.Context, query EventQuery, opts ListOptions) (*Result, error) {
	extra := map[string]any{}
	if query.SourceIdentifier != "" {
		extra["SourceIdentifier"] = query.SourceIdentifier
	}
	if query.SourceType != "" {
		extra["SourceType"] = query.SourceType
	}
	if query.StartTime != "" {
		extra["StartTime"] = query.StartTime
	}
	if query.EndTime != "" {
		extra["EndTime"] = query.EndTime
	}
	if query.Duration != 0 {
		extra["Duration"] = query.Duration
	}
	if len(query.EventCategories) > 0 {
		extra["EventCategories"] = query.EventCategories
	}
	return m.pagedList(ctx, listSpec{
		operation:   "describe_events",
		responseKey: "Events",
		resultKey:   "events",
		format:      formatResource,
	}, opts, extra)
}

// ListEventCategories lists the event category groups, optionally for one
// source type. The underlying API does not paginate.
func (m *EventManager) ListEventCategories(ctx context.Context, sourceType string, filters []Filter) (*Result, error) {
	params := map[string]any{}
	if sourceType != "" {
		params["SourceType"] = sourceType
	}
	if len(filters) > 0 {
		params["Filters"] = filters
	}
	resp, err := m.client.CallAPI(ctx, "describe_event_categories", params)
	if err != nil {
		return nil, err
	}
	groups := mapSlice(resp["EventCategoryGroupList"])
	return okResult(map[string]any{
		"count":                 len(groups),
		"event_category_groups": formatResources(groups),
	}), nil
}

// UpdateSubscriptionsToEventBridge migrates all active subscriptions from
// SNS to EventBridge. forceMove proceeds even when some subscriptions
// cannot be migrated cleanly.
func (m *EventManager) UpdateSubscriptionsToEventBridge(ctx context.Context, forceMove bool) (*Result, error) {
	params := map[string]any{}
	if forceMove {
		params["ForceMove"] = true
	}
	resp, err := m.client.CallAPI(ctx, "update_subscriptions_to_event_bridge", params)
	if err != nil {
		return nil, err
	}
	return okResult(map[string]any{
		"message": "Successfully updated subscriptions to EventBridge",
		"result":  resp["Result"],
	}), nil
}
