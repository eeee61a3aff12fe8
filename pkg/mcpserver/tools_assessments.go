package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dmsmcp/dmsmcp/pkg/dms"
)

// ═══════════════════════════════════════════════════════════════════════════
// Premigration Assessments
// ═══════════════════════════════════════════════════════════════════════════

func (s *Server) registerAssessmentTools() {
	s.mutating(&mcp.Tool{
		Name:        "start_replication_task_assessment",
		Title:       "Start Replication Task Assessment",
		Description: "Run the legacy data-type assessment for a task. For the richer premigration assessment use start_replication_task_assessment_run.",
		InputSchema: objectSchema(map[string]any{
			"replication_task_arn": stringProp("Task to assess."),
		}, "replication_task_arn"),
	}, s.handleStartTaskAssessment)

	s.mutating(&mcp.Tool{
		Name:        "start_replication_task_assessment_run",
		Title:       "Start Replication Task Assessment Run",
		Description: "Start a premigration assessment run writing results to S3. include_only and exclude select individual assessments; list the available names with describe_applicable_individual_assessments.",
		InputSchema: objectSchema(map[string]any{
			"replication_task_arn":   stringProp("Task to assess."),
			"service_access_role_arn": stringProp("Role DMS assumes to write results."),
			"result_location_bucket": stringProp("S3 bucket for results."),
			"result_location_folder": stringProp("Folder within the bucket."),
			"result_encryption_mode": stringProp("sse-s3 or sse-kms."),
			"result_kms_key_arn":     stringProp("KMS key when result_encryption_mode is sse-kms."),
			"assessment_run_name":    stringProp("Name for this run."),
			"include_only":           stringArrayProp("Run only these individual assessments."),
			"exclude":                stringArrayProp("Skip these individual assessments."),
		}, "replication_task_arn", "service_access_role_arn", "result_location_bucket"),
	}, s.handleStartTaskAssessmentRun)

	s.mutating(&mcp.Tool{
		Name:        "cancel_replication_task_assessment_run",
		Title:       "Cancel Replication Task Assessment Run",
		Description: "Cancel a premigration assessment run in progress.",
		InputSchema: objectSchema(map[string]any{
			"replication_task_assessment_run_arn": stringProp("Assessment run to cancel."),
		}, "replication_task_assessment_run_arn"),
	}, s.handleCancelTaskAssessmentRun)

	s.destructive(&mcp.Tool{
		Name:        "delete_replication_task_assessment_run",
		Title:       "Delete Replication Task Assessment Run",
		Description: "Delete the record of a premigration assessment run.",
		InputSchema: objectSchema(map[string]any{
			"replication_task_assessment_run_arn": stringProp("Assessment run to delete."),
		}, "replication_task_assessment_run_arn"),
	}, s.handleDeleteTaskAssessmentRun)

	s.readOnly(&mcp.Tool{
		Name:        "describe_replication_task_assessment_results",
		Title:       "Describe Replication Task Assessment Results",
		Description: "List legacy assessment results, optionally scoped to one task.",
		InputSchema: objectSchema(pageProps(map[string]any{
			"replication_task_arn": stringProp("Limit results to this task."),
		})),
	}, s.handleDescribeTaskAssessmentResults)

	s.readOnly(&mcp.Tool{
		Name:        "describe_replication_task_assessment_runs",
		Title:       "Describe Replication Task Assessment Runs",
		Description: "List premigration assessment runs. Filter by replication-task-arn or replication-task-assessment-run-arn.",
		InputSchema: objectSchema(listProps(nil)),
	}, s.handleDescribeTaskAssessmentRuns)

	s.readOnly(&mcp.Tool{
		Name:        "describe_replication_task_individual_assessments",
		Title:       "Describe Replication Task Individual Assessments",
		Description: "List the individual assessments within assessment runs and their statuses.",
		InputSchema: objectSchema(listProps(nil)),
	}, s.handleDescribeIndividualAssessments)

	s.readOnly(&mcp.Tool{
		Name:        "describe_applicable_individual_assessments",
		Title:       "Describe Applicable Individual Assessments",
		Description: "List the individual assessment names that apply to a migration, identified either by task ARN or by the migration_type/source/target/instance combination.",
		InputSchema: objectSchema(pageProps(map[string]any{
			"replication_task_arn":     stringProp("Task to evaluate."),
			"migration_type":           stringProp("full-load, cdc, or full-load-and-cdc."),
			"source_engine_name":       stringProp("Source engine."),
			"target_engine_name":       stringProp("Target engine."),
			"replication_instance_arn": stringProp("Instance to evaluate on."),
		})),
	}, s.handleDescribeApplicableAssessments)
}

func (s *Server) handleStartTaskAssessment(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args taskARNArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.assessments.StartAssessment(ctx, args.ARN))
}

func (s *Server) handleStartTaskAssessmentRun(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		TaskARN        string   `json:"replication_task_arn"`
		ServiceRoleARN string   `json:"service_access_role_arn"`
		ResultBucket   string   `json:"result_location_bucket"`
		ResultFolder   string   `json:"result_location_folder"`
		EncryptionMode string   `json:"result_encryption_mode"`
		KmsKeyARN      string   `json:"result_kms_key_arn"`
		RunName        string   `json:"assessment_run_name"`
		IncludeOnly    []string `json:"include_only"`
		Exclude        []string `json:"exclude"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	opts := dms.AssessmentRunOptions{
		ResultLocationFolder: args.ResultFolder,
		ResultEncryptionMode: args.EncryptionMode,
		ResultKmsKeyARN:      args.KmsKeyARN,
		AssessmentRunName:    args.RunName,
		IncludeOnly:          args.IncludeOnly,
		Exclude:              args.Exclude,
	}
	return envelope(s.assessments.StartAssessmentRun(ctx, args.TaskARN, args.ServiceRoleARN, args.ResultBucket, opts))
}

type assessmentRunARNArgs struct {
	ARN string `json:"replication_task_assessment_run_arn"`
}

func (s *Server) handleCancelTaskAssessmentRun(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args assessmentRunARNArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.assessments.CancelAssessmentRun(ctx, args.ARN))
}

func (s *Server) handleDeleteTaskAssessmentRun(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args assessmentRunARNArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.assessments.DeleteAssessmentRun(ctx, args.ARN))
}

func (s *Server) handleDescribeTaskAssessmentResults(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		TaskARN    string `json:"replication_task_arn"`
		MaxRecords int    `json:"max_records"`
		Marker     string `json:"marker"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.assessments.ListAssessmentResults(ctx, args.TaskARN, args.MaxRecords, args.Marker))
}

func (s *Server) handleDescribeTaskAssessmentRuns(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args listArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.assessments.ListAssessmentRuns(ctx, args.options()))
}

func (s *Server) handleDescribeIndividualAssessments(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args listArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.assessments.ListIndividualAssessments(ctx, args.options()))
}

func (s *Server) handleDescribeApplicableAssessments(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		TaskARN          string `json:"replication_task_arn"`
		MigrationType    string `json:"migration_type"`
		SourceEngineName string `json:"source_engine_name"`
		TargetEngineName string `json:"target_engine_name"`
		InstanceARN      string `json:"replication_instance_arn"`
		MaxRecords       int    `json:"max_records"`
		Marker           string `json:"marker"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	query := dms.ApplicableAssessmentQuery{
		TaskARN:                args.TaskARN,
		MigrationType:          args.MigrationType,
		SourceEngineName:       args.SourceEngineName,
		TargetEngineName:       args.TargetEngineName,
		ReplicationInstanceARN: args.InstanceARN,
	}
	return envelope(s.assessments.ListApplicableAssessments(ctx, query, args.MaxRecords, args.Marker))
}
