package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dmsmcp/dmsmcp/pkg/dms"
)

// ═══════════════════════════════════════════════════════════════════════════
// Metadata Model (Schema Conversion)
// ═══════════════════════════════════════════════════════════════════════════

func (s *Server) registerMetadataModelTools() {
	s.readOnly(&mcp.Tool{
		Name:        "describe_conversion_configuration",
		Title:       "Describe Conversion Configuration",
		Description: "Fetch the schema conversion configuration of a migration project.",
		InputSchema: objectSchema(map[string]any{
			"migration_project_identifier": stringProp("Project name or ARN."),
		}, "migration_project_identifier"),
	}, s.handleDescribeConversionConfiguration)

	s.mutating(&mcp.Tool{
		Name:        "modify_conversion_configuration",
		Title:       "Modify Conversion Configuration",
		Description: "Replace the schema conversion configuration of a migration project. conversion_configuration is the full configuration as a JSON document.",
		InputSchema: objectSchema(map[string]any{
			"migration_project_identifier": stringProp("Project name or ARN."),
			"conversion_configuration":     stringProp("Conversion configuration as a JSON document."),
		}, "migration_project_identifier", "conversion_configuration"),
	}, s.handleModifyConversionConfiguration)

	s.mutating(&mcp.Tool{
		Name:        "start_extension_pack_association",
		Title:       "Start Extension Pack Association",
		Description: "Apply the extension pack to the target database so converted code that relies on emulation functions can run.",
		InputSchema: objectSchema(map[string]any{
			"migration_project_identifier": stringProp("Project name or ARN."),
		}, "migration_project_identifier"),
	}, s.handleStartExtensionPackAssociation)

	s.readOnly(&mcp.Tool{
		Name:        "describe_extension_pack_associations",
		Title:       "Describe Extension Pack Associations",
		Description: "List extension pack association requests for a project and their statuses.",
		InputSchema: objectSchema(listProps(map[string]any{
			"migration_project_identifier": stringProp("Project name or ARN."),
		}), "migration_project_identifier"),
	}, s.handleDescribeExtensionPackAssociations)

	s.mutating(&mcp.Tool{
		Name:        "start_metadata_model_assessment",
		Title:       "Start Metadata Model Assessment",
		Description: "Assess how convertible the selected source objects are. selection_rules is a JSON rules document picking schemas and objects.",
		InputSchema: objectSchema(metadataStartProps(nil), "migration_project_identifier", "selection_rules"),
	}, s.handleStartMetadataModelAssessment)

	s.readOnly(&mcp.Tool{
		Name:        "describe_metadata_model_assessments",
		Title:       "Describe Metadata Model Assessments",
		Description: "List metadata model assessment requests for a project.",
		InputSchema: objectSchema(listProps(map[string]any{
			"migration_project_identifier": stringProp("Project name or ARN."),
		}), "migration_project_identifier"),
	}, s.handleDescribeMetadataModelAssessments)

	s.mutating(&mcp.Tool{
		Name:        "export_metadata_model_assessment",
		Title:       "Export Metadata Model Assessment",
		Description: "Export an assessment report to the project's S3 bucket as PDF and/or CSV.",
		InputSchema: objectSchema(metadataStartProps(map[string]any{
			"file_name":               stringProp("Name for the exported report file."),
			"assessment_report_types": stringArrayProp("Report formats: pdf and/or csv."),
		}), "migration_project_identifier", "selection_rules"),
	}, s.handleExportMetadataModelAssessment)

	s.mutating(&mcp.Tool{
		Name:        "start_metadata_model_conversion",
		Title:       "Start Metadata Model Conversion",
		Description: "Convert the selected source schema objects to the target dialect.",
		InputSchema: objectSchema(metadataStartProps(nil), "migration_project_identifier", "selection_rules"),
	}, s.handleStartMetadataModelConversion)

	s.readOnly(&mcp.Tool{
		Name:        "describe_metadata_model_conversions",
		Title:       "Describe Metadata Model Conversions",
		Description: "List conversion requests for a project.",
		InputSchema: objectSchema(listProps(map[string]any{
			"migration_project_identifier": stringProp("Project name or ARN."),
		}), "migration_project_identifier"),
	}, s.handleDescribeMetadataModelConversions)

	s.mutating(&mcp.Tool{
		Name:        "start_metadata_model_import",
		Title:       "Start Metadata Model Import",
		Description: "Load the metadata model from the source or target database. origin is SOURCE or TARGET; set refresh to re-read objects already imported.",
		InputSchema: objectSchema(metadataStartProps(map[string]any{
			"origin":  stringProp("SOURCE or TARGET."),
			"refresh": boolProp("Re-read objects already imported."),
		}), "migration_project_identifier", "selection_rules", "origin"),
	}, s.handleStartMetadataModelImport)

	s.readOnly(&mcp.Tool{
		Name:        "describe_metadata_model_imports",
		Title:       "Describe Metadata Model Imports",
		Description: "List import requests for a project.",
		InputSchema: objectSchema(listProps(map[string]any{
			"migration_project_identifier": stringProp("Project name or ARN."),
		}), "migration_project_identifier"),
	}, s.handleDescribeMetadataModelImports)

	s.mutating(&mcp.Tool{
		Name:        "start_metadata_model_export_as_script",
		Title:       "Start Metadata Model Export As Script",
		Description: "Export converted objects as a SQL script to the project's S3 bucket. origin selects whose dialect to export (SOURCE or TARGET).",
		InputSchema: objectSchema(metadataStartProps(map[string]any{
			"origin":    stringProp("SOURCE or TARGET."),
			"file_name": stringProp("Name for the script file."),
		}), "migration_project_identifier", "selection_rules", "origin"),
	}, s.handleStartMetadataModelExportAsScript)

	s.readOnly(&mcp.Tool{
		Name:        "describe_metadata_model_exports_as_script",
		Title:       "Describe Metadata Model Exports As Script",
		Description: "List script export requests for a project.",
		InputSchema: objectSchema(listProps(map[string]any{
			"migration_project_identifier": stringProp("Project name or ARN."),
		}), "migration_project_identifier"),
	}, s.handleDescribeMetadataModelExportsAsScript)

	s.mutating(&mcp.Tool{
		Name:        "start_metadata_model_export_to_target",
		Title:       "Start Metadata Model Export To Target",
		Description: "Apply converted objects directly to the target database. Set overwrite_extension_pack to refresh the extension pack during the export.",
		InputSchema: objectSchema(metadataStartProps(map[string]any{
			"overwrite_extension_pack": boolProp("Refresh the extension pack during export."),
		}), "migration_project_identifier", "selection_rules"),
	}, s.handleStartMetadataModelExportToTarget)

	s.readOnly(&mcp.Tool{
		Name:        "describe_metadata_model_exports_to_target",
		Title:       "Describe Metadata Model Exports To Target",
		Description: "List target export requests for a project.",
		InputSchema: objectSchema(listProps(map[string]any{
			"migration_project_identifier": stringProp("Project name or ARN."),
		}), "migration_project_identifier"),
	}, s.handleDescribeMetadataModelExportsToTarget)
}

// metadataStartProps is the shared schema of the start_metadata_model_*
// operations: project plus a selection rules document, with per-operation
// extras merged in.
func metadataStartProps(extra map[string]any) map[string]any {
	props := map[string]any{
		"migration_project_identifier": stringProp("Project name or ARN."),
		"selection_rules":              stringProp("Selection rules as a JSON document."),
	}
	for k, v := range extra {
		props[k] = v
	}
	return props
}

// metadataListArgs are the decoded arguments of the metadata model list
// operations.
type metadataListArgs struct {
	listArgs
	ProjectIdentifier string `json:"migration_project_identifier"`
}

func (s *Server) handleDescribeConversionConfiguration(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args migrationProjectArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.metadata.GetConversionConfiguration(ctx, args.Identifier))
}

func (s *Server) handleModifyConversionConfiguration(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Identifier    string `json:"migration_project_identifier"`
		Configuration string `json:"conversion_configuration"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.metadata.ModifyConversionConfiguration(ctx, args.Identifier, args.Configuration))
}

func (s *Server) handleStartExtensionPackAssociation(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args migrationProjectArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.metadata.StartExtensionPackAssociation(ctx, args.Identifier))
}

func (s *Server) handleDescribeExtensionPackAssociations(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args metadataListArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.metadata.ListExtensionPackAssociations(ctx, args.ProjectIdentifier, args.options()))
}

type metadataSelectionArgs struct {
	Identifier     string `json:"migration_project_identifier"`
	SelectionRules string `json:"selection_rules"`
}

func (s *Server) handleStartMetadataModelAssessment(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args metadataSelectionArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.metadata.StartAssessment(ctx, args.Identifier, args.SelectionRules))
}

func (s *Server) handleDescribeMetadataModelAssessments(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args metadataListArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.metadata.ListAssessments(ctx, args.ProjectIdentifier, args.options()))
}

func (s *Server) handleExportMetadataModelAssessment(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		metadataSelectionArgs
		FileName    string   `json:"file_name"`
		ReportTypes []string `json:"assessment_report_types"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	opts := dms.ExportAssessmentOptions{
		FileName:              args.FileName,
		AssessmentReportTypes: args.ReportTypes,
	}
	return envelope(s.metadata.ExportAssessment(ctx, args.Identifier, args.SelectionRules, opts))
}

func (s *Server) handleStartMetadataModelConversion(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args metadataSelectionArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.metadata.StartConversion(ctx, args.Identifier, args.SelectionRules))
}

func (s *Server) handleDescribeMetadataModelConversions(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args metadataListArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.metadata.ListConversions(ctx, args.ProjectIdentifier, args.options()))
}

func (s *Server) handleStartMetadataModelImport(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		metadataSelectionArgs
		Origin  string `json:"origin"`
		Refresh bool   `json:"refresh"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.metadata.StartImport(ctx, args.Identifier, args.SelectionRules, args.Origin, args.Refresh))
}

func (s *Server) handleDescribeMetadataModelImports(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args metadataListArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.metadata.ListImports(ctx, args.ProjectIdentifier, args.options()))
}

func (s *Server) handleStartMetadataModelExportAsScript(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		metadataSelectionArgs
		Origin   string `json:"origin"`
		FileName string `json:"file_name"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.metadata.StartExportAsScript(ctx, args.Identifier, args.SelectionRules, args.Origin, args.FileName))
}

func (s *Server) handleDescribeMetadataModelExportsAsScript(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args metadataListArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.metadata.ListExportsAsScript(ctx, args.ProjectIdentifier, args.options()))
}

func (s *Server) handleStartMetadataModelExportToTarget(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		metadataSelectionArgs
		OverwriteExtensionPack bool `json:"overwrite_extension_pack"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.metadata.StartExportToTarget(ctx, args.Identifier, args.SelectionRules, args.OverwriteExtensionPack))
}

func (s *Server) handleDescribeMetadataModelExportsToTarget(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args metadataListArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.metadata.ListExportsToTarget(ctx, args.ProjectIdentifier, args.options()))
}
