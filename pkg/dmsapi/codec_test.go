package dmsapi

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	dms "github.com/aws/aws-sdk-go-v2/service/databasemigrationservice"
	"github.com/aws/aws-sdk-go-v2/service/databasemigrationservice/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInput(t *testing.T) {
	params := map[string]any{
		"Filters": []map[string]any{
			{"Name": "endpoint-type", "Values": []string{"source"}},
		},
		"MaxRecords": 50,
		"Marker":     "token",
	}

	var in dms.DescribeEndpointsInput
	require.NoError(t, decodeInput(params, &in))

	require.Len(t, in.Filters, 1)
	assert.Equal(t, "endpoint-type", aws.ToString(in.Filters[0].Name))
	assert.Equal(t, []string{"source"}, in.Filters[0].Values)
	assert.Equal(t, int32(50), aws.ToInt32(in.MaxRecords))
	assert.Equal(t, "token", aws.ToString(in.Marker))
}

func TestDecodeInputEmptyParams(t *testing.T) {
	var in dms.DescribeEndpointsInput
	require.NoError(t, decodeInput(nil, &in))
	assert.Nil(t, in.Filters)
	assert.Nil(t, in.Marker)
}

func TestEncodeOutputPrunesUnsetFields(t *testing.T) {
	out := &dms.DescribeEndpointsOutput{
		Endpoints: []types.Endpoint{
			{EndpointIdentifier: aws.String("ep-1")},
		},
		// Marker deliberately unset: the encoded map must not contain it.
	}

	resp, err := encodeOutput(out)
	require.NoError(t, err)

	assert.Contains(t, resp, "Endpoints")
	assert.NotContains(t, resp, "Marker")
	assert.NotContains(t, resp, "ResultMetadata")

	items, ok := resp["Endpoints"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	first, ok := items[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ep-1", first["EndpointIdentifier"])
	// Unset nested fields are pruned too.
	assert.NotContains(t, first, "EngineName")
}

func TestEncodeOutputKeepsSetMarker(t *testing.T) {
	out := &dms.DescribeEndpointsOutput{Marker: aws.String("next-token")}

	resp, err := encodeOutput(out)
	require.NoError(t, err)
	assert.Equal(t, "next-token", resp["Marker"])
}

func TestOperationTableCoversAllFamilies(t *testing.T) {
	c := NewFromAPI(nil)

	// Spot-check one operation per resource family.
	for _, name := range []string{
		"create_replication_instance",
		"describe_endpoints",
		"test_connection",
		"start_replication_task",
		"start_replication_task_assessment_run",
		"import_certificate",
		"describe_events",
		"create_replication_subnet_group",
		"apply_pending_maintenance_action",
		"list_tags_for_resource",
		"reload_tables",
		"describe_replication_configs",
		"describe_migration_projects",
		"describe_data_providers",
		"describe_instance_profiles",
		"describe_data_migrations",
		"start_metadata_model_assessment",
		"run_fleet_advisor_lsa_analysis",
		"batch_start_recommendations",
	} {
		assert.Contains(t, c.ops, name)
	}

	assert.GreaterOrEqual(t, len(c.Operations()), 100)
}

func TestCallAPIUnknownOperation(t *testing.T) {
	c := NewFromAPI(nil)
	_, err := c.CallAPI(t.Context(), "describe_unicorns", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown operation")
}
