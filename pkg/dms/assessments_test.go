package dms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartAssessmentRunForwardsOnlySetOptions(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{"ReplicationTaskAssessmentRun": map[string]any{"ReplicationTaskAssessmentRunArn": "run-arn"}},
	}}
	m := NewAssessmentManager(inv)

	res, err := m.StartAssessmentRun(context.Background(), "task-arn", "role-arn", "my-bucket", AssessmentRunOptions{
		ResultLocationFolder: "reports/",
		IncludeOnly:          []string{"unsupported-data-types"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Assessment run started successfully", res.Data["message"])
	run := res.Data["assessment_run"].(map[string]any)
	assert.Equal(t, "run-arn", run["replication_task_assessment_run_arn"])

	call := inv.lastCall(t)
	assert.Equal(t, "start_replication_task_assessment_run", call.Operation)
	assert.Equal(t, map[string]any{
		"ReplicationTaskArn":   "task-arn",
		"ServiceAccessRoleArn": "role-arn",
		"ResultLocationBucket": "my-bucket",
		"ResultLocationFolder": "reports/",
		"IncludeOnly":          []string{"unsupported-data-types"},
	}, call.Params)
}

func TestListAssessmentResultsOptionalTaskScope(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{"ReplicationTaskAssessmentResults": []any{
			map[string]any{"AssessmentStatus": "passed"},
		}},
	}}
	m := NewAssessmentManager(inv)

	res, err := m.ListAssessmentResults(context.Background(), "", 0, "")
	require.NoError(t, err)

	call := inv.lastCall(t)
	assert.NotContains(t, call.Params, "ReplicationTaskArn")
	assert.Equal(t, 100, call.Params["MaxRecords"])

	assert.Equal(t, 1, res.Data["count"])
	results := res.Data["assessment_results"].([]map[string]any)
	assert.Equal(t, "passed", results[0]["assessment_status"])

	_, err = m.ListAssessmentResults(context.Background(), "task-arn", 0, "")
	require.NoError(t, err)
	assert.Equal(t, "task-arn", inv.lastCall(t).Params["ReplicationTaskArn"])
}

func TestListApplicableAssessments(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{"IndividualAssessmentNames": []any{"unsupported-data-types", "full-lob-not-nullable-at-target"}},
	}}
	m := NewAssessmentManager(inv)

	res, err := m.ListApplicableAssessments(context.Background(), ApplicableAssessmentQuery{
		MigrationType:    "full-load",
		SourceEngineName: "oracle",
		TargetEngineName: "postgres",
	}, 0, "")
	require.NoError(t, err)

	call := inv.lastCall(t)
	assert.Equal(t, "full-load", call.Params["MigrationType"])
	assert.NotContains(t, call.Params, "ReplicationTaskArn")

	assert.Equal(t, 2, res.Data["count"])
	assert.Equal(t, []any{"unsupported-data-types", "full-lob-not-nullable-at-target"}, res.Data["applicable_assessments"])
}
