package dms

import (
	"context"

	"github.com/dmsmcp/dmsmcp/pkg/defaults"
	"github.com/dmsmcp/dmsmcp/pkg/dmsapi"
)

// AssessmentManager covers premigration assessment operations, both the
// legacy single-assessment API and the newer assessment-run API.
type AssessmentManager struct {
	manager
}

// NewAssessmentManager creates an AssessmentManager over the given gateway.
func NewAssessmentManager(client dmsapi.Invoker) *AssessmentManager {
	return &AssessmentManager{manager{client: client}}
}

// StartAssessment starts a legacy task assessment.
func (m *AssessmentManager) StartAssessment(ctx context.Context, taskARN string) (*Result, error) {
	return m.mutate(ctx, mutationSpec{
		operation:   "start_replication_task_assessment",
		responseKey: "ReplicationTask",
		resultKey:   "task",
		message:     "Task assessment started",
	}, map[string]any{"ReplicationTaskArn": taskARN})
}

// AssessmentRunOptions carries the optional arguments of StartAssessmentRun.
// Zero-valued fields are not forwarded.
type AssessmentRunOptions struct {
	ResultLocationFolder string
	ResultEncryptionMode string
	ResultKmsKeyARN      string
	AssessmentRunName    string
	IncludeOnly          []string
	Exclude              []string
}

// StartAssessmentRun starts an assessment run, writing results to the
// given S3 bucket under the given service role.
func (m *AssessmentManager) StartAssessmentRun(ctx context.Context, taskARN, serviceRoleARN, resultBucket string, opts AssessmentRunOptions) (*Result, error) {
	params := map[string]any{
		"ReplicationTaskArn":   taskARN,
		"ServiceAccessRoleArn": serviceRoleARN,
		"ResultLocationBucket": resultBucket,
	}
	if opts.ResultLocationFolder != "" {
		params["ResultLocationFolder"] = opts.ResultLocationFolder
	}
	if opts.ResultEncryptionMode != "" {
		params["ResultEncryptionMode"] = opts.ResultEncryptionMode
	}
	if opts.ResultKmsKeyARN != "" {
		params["ResultKmsKeyArn"] = opts.ResultKmsKeyARN
	}
	if opts.AssessmentRunName != "" {
		params["AssessmentRunName"] = opts.AssessmentRunName
	}
	if len(opts.IncludeOnly) > 0 {
		params["IncludeOnly"] = opts.IncludeOnly
	}
	if len(opts.Exclude) > 0 {
		params["Exclude"] = opts.Exclude
	}
	return m.mutate(ctx, mutationSpec{
		operation:   "start_replication_task_assessment_run",
		responseKey: "ReplicationTaskAssessmentRun",
		resultKey:   "assessment_run",
		message:     "Assessment run started successfully",
	}, params)
}

// CancelAssessmentRun cancels an in-progress assessment run.
func (m *AssessmentManager) CancelAssessmentRun(ctx context.Context, runARN string) (*Result, error) {
	return m.mutate(ctx, mutationSpec{
		operation:   "cancel_replication_task_assessment_run",
		responseKey: "ReplicationTaskAssessmentRun",
		resultKey:   "assessment_run",
		message:     "Assessment run cancelled",
	}, map[string]any{"ReplicationTaskAssessmentRunArn": runARN})
}

// DeleteAssessmentRun deletes a finished assessment run record.
func (m *AssessmentManager) DeleteAssessmentRun(ctx context.Context, runARN string) (*Result, error) {
	return m.mutate(ctx, mutationSpec{
		operation:   "delete_replication_task_assessment_run",
		responseKey: "ReplicationTaskAssessmentRun",
		resultKey:   "assessment_run",
		message:     "Assessment run deleted successfully",
	}, map[string]any{"ReplicationTaskAssessmentRunArn": runARN})
}

// ListAssessmentResults lists legacy assessment results, optionally
// scoped to a single task. The underlying API takes no filters.
func (m *AssessmentManager) ListAssessmentResults(ctx context.Context, taskARN string, maxResults int, marker string) (*Result, error) {
	params := map[string]any{}
	if taskARN != "" {
		params["ReplicationTaskArn"] = taskARN
	}
	if maxResults == 0 {
		maxResults = defaults.MaxResults
	}
	params["MaxRecords"] = maxResults
	if marker != "" {
		params["Marker"] = marker
	}
	resp, err := m.client.CallAPI(ctx, "describe_replication_task_assessment_results", params)
	if err != nil {
		return nil, err
	}
	results := mapSlice(resp["ReplicationTaskAssessmentResults"])
	data := map[string]any{
		"count":              len(results),
		"assessment_results": formatResources(results),
	}
	if tok, present := resp["Marker"]; present {
		data["next_marker"] = tok
	}
	return okResult(data), nil
}

// ListAssessmentRuns lists assessment runs.
func (m *AssessmentManager) ListAssessmentRuns(ctx context.Context, opts ListOptions) (*Result, error) {
	return m.pagedList(ctx, listSpec{
		operation:   "describe_replication_task_assessment_runs",
		responseKey: "ReplicationTaskAssessmentRuns",
		resultKey:   "assessment_runs",
		format:      formatResource,
	}, opts, nil)
}

// ListIndividualAssessments lists the individual assessments belonging
// to assessment runs.
func (m *AssessmentManager) ListIndividualAssessments(ctx context.Context, opts ListOptions) (*Result, error) {
	return m.pagedList(ctx, listSpec{
		operation:   "describe_replication_task_individual_assessments",
		responseKey: "ReplicationTaskIndividualAssessments",
		resultKey:   "individual_assessments",
		format:      formatResource,
	}, opts, nil)
}

// ApplicableAssessmentQuery scopes ListApplicableAssessments. Either a
// task ARN or a migration triple (type plus engines) identifies the
// migration; empty fields are not forwarded.
type ApplicableAssessmentQuery struct {
	TaskARN                string
	MigrationType          string
	SourceEngineName       string
	TargetEngineName       string
	ReplicationInstanceARN string
}

// ListApplicableAssessments lists the individual assessment names that
// apply to a migration.
func (m *AssessmentManager) ListApplicableAssessments(ctx context.Context, query ApplicableAssessmentQuery, maxResults int, marker string) (*Result, error) {
	params := map[string]any{}
	if query.TaskARN != "" {
		params["ReplicationTaskArn"] = query.TaskARN
	}
	if query.MigrationType != "" {
		params["MigrationType"] = query.MigrationType
	}
	if query.SourceEngineName != "" {
		params["SourceEngineName"] = query.SourceEngineName
	}
	if query.TargetEngineName != "" {
		params["TargetEngineName"] = query.TargetEngineName
	}
	if query.ReplicationInstanceARN != "" {
		params["ReplicationInstanceArn"] = query.ReplicationInstanceARN
	}
	if maxResults == 0 {
		maxResults = defaults.MaxResults
	}
	params["MaxRecords"] = maxResults
	if marker != "" {
		params["Marker"] = marker
	}
	resp, err := m.client.CallAPI(ctx, "describe_applicable_individual_assessments", params)
	if err != nil {
		return nil, err
	}
	var names []any
	if raw, ok := resp["IndividualAssessmentNames"].([]any); ok {
		names = raw
	}
	data := map[string]any{
		"count":                  len(names),
		"applicable_assessments": names,
	}
	if tok, present := resp["Marker"]; present {
		data["next_marker"] = tok
	}
	return okResult(data), nil
}
