package dms

import (
	"context"
	"fmt"

	"github.com/dmsmcp/dmsmcp/pkg/dmsapi"
)

// RecommendationManager covers target engine recommendations computed
// from Fleet Advisor inventory. Like Fleet Advisor, the family paginates
// with NextToken.
type RecommendationManager struct {
	manager
}

// NewRecommendationManager creates a RecommendationManager over the given
// gateway.
func NewRecommendationManager(client dmsapi.Invoker) *RecommendationManager {
	return &RecommendationManager{manager{client: client}}
}

// ListRecommendations lists generated recommendations.
func (m *RecommendationManager) ListRecommendations(ctx context.Context, opts ListOptions) (*Result, error) {
	return m.pagedList(ctx, listSpec{
		operation:   "describe_recommendations",
		responseKey: "Recommendations",
		resultKey:   "recommendations",
		nextToken:   true,
		format:      formatResource,
	}, opts, nil)
}

// ListLimitations lists the limitations that would constrain each
// recommended target engine.
func (m *RecommendationManager) ListLimitations(ctx context.Context, opts ListOptions) (*Result, error) {
	return m.pagedList(ctx, listSpec{
		operation:   "describe_recommendation_limitations",
		responseKey: "Limitations",
		resultKey:   "limitations",
		nextToken:   true,
		format:      formatResource,
	}, opts, nil)
}

// StartRecommendations starts recommendation generation for one database.
// settings carries the AWS RecommendationSettings sub-object.
func (m *RecommendationManager) StartRecommendations(ctx context.Context, databaseID string, settings map[string]any) (*Result, error) {
	_, err := m.client.CallAPI(ctx, "start_recommendations", map[string]any{
		"DatabaseId": databaseID,
		"Settings":   settings,
	})
	if err != nil {
		return nil, err
	}
	return okResult(map[string]any{
		"message":     "Recommendations generation started",
		"database_id": databaseID,
	}), nil
}

// BatchStartRecommendations starts recommendation generation for several
// databases at once. Per-database failures come back as error entries;
// any entry marks the whole envelope unsuccessful.
func (m *RecommendationManager) BatchStartRecommendations(ctx context.Context, data []map[string]any) (*Result, error) {
	params := map[string]any{}
	if data != nil {
		params["Data"] = data
	}
	resp, err := m.client.CallAPI(ctx, "batch_start_recommendations", params)
	if err != nil {
		return nil, err
	}
	entries := mapSlice(resp["ErrorEntries"])
	if len(entries) > 0 {
		msg := fmt.Sprintf("Batch recommendations started with errors: %d", len(entries))
		return failResult(map[string]any{
			"message":       msg,
			"error_entries": formatResources(entries),
		}, &msg), nil
	}
	return okResult(map[string]any{
		"message":       "Batch recommendations started",
		"error_entries": formatResources(entries),
	}), nil
}
