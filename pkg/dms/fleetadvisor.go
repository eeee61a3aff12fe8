package dms

import (
	"context"

	"github.com/dmsmcp/dmsmcp/pkg/dmsapi"
)

// FleetAdvisorManager covers Fleet Advisor collectors, discovered
// databases and schemas, and large-scale-assessment (LSA) analysis. The
// family paginates with NextToken rather than Marker.
type FleetAdvisorManager struct {
	manager
}

// NewFleetAdvisorManager creates a FleetAdvisorManager over the given
// gateway.
func NewFleetAdvisorManager(client dmsapi.Invoker) *FleetAdvisorManager {
	return &FleetAdvisorManager{manager{client: client}}
}

// CreateCollector registers a Fleet Advisor collector writing inventory
// data to an S3 bucket.
func (m *FleetAdvisorManager) CreateCollector(ctx context.Context, name, description, serviceRoleARN, s3BucketName string) (*Result, error) {
	resp, err := m.client.CallAPI(ctx, "create_fleet_advisor_collector", map[string]any{
		"CollectorName":        name,
		"Description":          description,
		"ServiceAccessRoleArn": serviceRoleARN,
		"S3BucketName":         s3BucketName,
	})
	if err != nil {
		return nil, err
	}
	return okResult(map[string]any{
		"message":   "Fleet Advisor collector created",
		"collector": formatResource(resp),
	}), nil
}

// DeleteCollector deletes the collector with the given referenced ID.
func (m *FleetAdvisorManager) DeleteCollector(ctx context.Context, collectorID string) (*Result, error) {
	_, err := m.client.CallAPI(ctx, "delete_fleet_advisor_collector", map[string]any{
		"CollectorReferencedId": collectorID,
	})
	if err != nil {
		return nil, err
	}
	return okResult(map[string]any{
		"message": "Fleet Advisor collector deleted",
	}), nil
}

// ListCollectors lists registered collectors.
func (m *FleetAdvisorManager) ListCollectors(ctx context.Context, opts ListOptions) (*Result, error) {
	return m.pagedList(ctx, listSpec{
		operation:   "describe_fleet_advisor_collectors",
		responseKey: "Collectors",
		resultKey:   "collectors",
		nextToken:   true,
		format:      formatResource,
	}, opts, nil)
}

// DeleteDatabases removes discovered databases from the inventory.
func (m *FleetAdvisorManager) DeleteDatabases(ctx context.Context, databaseIDs []string) (*Result, error) {
	resp, err := m.client.CallAPI(ctx, "delete_fleet_advisor_databases", map[string]any{
		"DatabaseIds": databaseIDs,
	})
	if err != nil {
		return nil, err
	}
	var deleted []any
	if raw, ok := resp["DatabaseIds"].([]any); ok {
		deleted = raw
	}
	return okResult(map[string]any{
		"message":      "Fleet Advisor databases deleted",
		"database_ids": deleted,
	}), nil
}

// ListDatabases lists discovered databases.
func (m *FleetAdvisorManager) ListDatabases(ctx context.Context, opts ListOptions) (*Result, error) {
	return m.pagedList(ctx, listSpec{
		operation:   "describe_fleet_advisor_databases",
		responseKey: "Databases",
		resultKey:   "databases",
		nextToken:   true,
		format:      formatResource,
	}, opts, nil)
}

// ListLsaAnalysis lists LSA analysis runs.
func (m *FleetAdvisorManager) ListLsaAnalysis(ctx context.Context, opts ListOptions) (*Result, error) {
	return m.pagedList(ctx, listSpec{
		operation:   "describe_fleet_advisor_lsa_analysis",
		responseKey: "Analysis",
		resultKey:   "lsa_analysis",
		nextToken:   true,
		format:      formatResource,
	}, opts, nil)
}

// RunLsaAnalysis starts an LSA analysis over the whole inventory. The
// call takes no parameters.
func (m *FleetAdvisorManager) RunLsaAnalysis(ctx context.Context) (*Result, error) {
	resp, err := m.client.CallAPI(ctx, "run_fleet_advisor_lsa_analysis", nil)
	if err != nil {
		return nil, err
	}
	return okResult(map[string]any{
		"message":          "Fleet Advisor LSA analysis started",
		"lsa_analysis_run": formatResource(resp),
	}), nil
}

// ListSchemaObjectSummary lists per-type object counts for discovered
// schemas.
func (m *FleetAdvisorManager) ListSchemaObjectSummary(ctx context.Context, opts ListOptions) (*Result, error) {
	return m.pagedList(ctx, listSpec{
		operation:   "describe_fleet_advisor_schema_object_summary",
		responseKey: "FleetAdvisorSchemaObjects",
		resultKey:   "schema_objects",
		nextToken:   true,
		format:      formatResource,
	}, opts, nil)
}

// ListSchemas lists discovered schemas.
func (m *FleetAdvisorManager) ListSchemas(ctx context.Context, opts ListOptions) (*Result, error) {
	return m.pagedList(ctx, listSpec{
		operation:   "describe_fleet_advisor_schemas",
		responseKey: "FleetAdvisorSchemas",
		resultKey:   "schemas",
		nextToken:   true,
		format:      formatResource,
	}, opts, nil)
}
