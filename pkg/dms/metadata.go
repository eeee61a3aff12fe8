package dms

import (
	"context"

	"github.com/dmsmcp/dmsmcp/pkg/dmsapi"
)

// MetadataModelManager covers schema-conversion metadata model
// operations: conversion configuration, extension packs, assessments,
// conversions, imports, and exports. The service reports every async
// request family under a shared Requests response key and hands back a
// request identifier for each start call.
type MetadataModelManager struct {
	manager
}

// NewMetadataModelManager creates a MetadataModelManager over the given
// gateway.
func NewMetadataModelManager(client dmsapi.Invoker) *MetadataModelManager {
	return &MetadataModelManager{manager{client: client}}
}

// GetConversionConfiguration fetches a project's conversion configuration
// JSON document.
func (m *MetadataModelManager) GetConversionConfiguration(ctx context.Context, projectIdentifier string) (*Result, error) {
	resp, err := m.client.CallAPI(ctx, "describe_conversion_configuration", map[string]any{
		"MigrationProjectIdentifier": projectIdentifier,
	})
	if err != nil {
		return nil, err
	}
	config, present := resp["ConversionConfiguration"]
	if !present {
		config = map[string]any{}
	}
	return okResult(map[string]any{
		"conversion_configuration": config,
	}), nil
}

// ModifyConversionConfiguration replaces a project's conversion
// configuration document.
func (m *MetadataModelManager) ModifyConversionConfiguration(ctx context.Context, projectIdentifier, configuration string) (*Result, error) {
	resp, err := m.client.CallAPI(ctx, "modify_conversion_configuration", map[string]any{
		"MigrationProjectIdentifier": projectIdentifier,
		"ConversionConfiguration":    configuration,
	})
	if err != nil {
		return nil, err
	}
	return okResult(map[string]any{
		"message":                      "Conversion configuration modified",
		"migration_project_identifier": resp["MigrationProjectIdentifier"],
	}), nil
}

// metadataRequestList is the shared list shape of the metadata model
// request families.
func (m *MetadataModelManager) metadataRequestList(ctx context.Context, operation, resultKey, projectIdentifier string, opts ListOptions) (*Result, error) {
	return m.pagedList(ctx, listSpec{
		operation:   operation,
		responseKey: "Requests",
		resultKey:   resultKey,
		format:      formatResource,
	}, opts, map[string]any{"MigrationProjectIdentifier": projectIdentifier})
}

// startMetadataRequest is the shared start shape: fire the operation and
// report the request identifier the service handed back.
func (m *MetadataModelManager) startMetadataRequest(ctx context.Context, operation, message string, params map[string]any) (*Result, error) {
	resp, err := m.client.CallAPI(ctx, operation, params)
	if err != nil {
		return nil, err
	}
	return okResult(map[string]any{
		"message":            message,
		"request_identifier": resp["RequestIdentifier"],
	}), nil
}

// ListExtensionPackAssociations lists extension pack association requests.
func (m *MetadataModelManager) ListExtensionPackAssociations(ctx context.Context, projectIdentifier string, opts ListOptions) (*Result, error) {
	return m.metadataRequestList(ctx, "describe_extension_pack_associations", "extension_pack_associations", projectIdentifier, opts)
}

// StartExtensionPackAssociation applies the engine extension pack to a
// project's target.
func (m *MetadataModelManager) StartExtensionPackAssociation(ctx context.Context, projectIdentifier string) (*Result, error) {
	return m.startMetadataRequest(ctx, "start_extension_pack_association", "Extension pack association started", map[string]any{
		"MigrationProjectIdentifier": projectIdentifier,
	})
}

// ListAssessments lists metadata model assessment requests.
func (m *MetadataModelManager) ListAssessments(ctx context.Context, projectIdentifier string, opts ListOptions) (*Result, error) {
	return m.metadataRequestList(ctx, "describe_metadata_model_assessments", "metadata_model_assessments", projectIdentifier, opts)
}

// StartAssessment starts a metadata model assessment over the objects
// selected by selectionRules (a JSON document).
func (m *MetadataModelManager) StartAssessment(ctx context.Context, projectIdentifier, selectionRules string) (*Result, error) {
	return m.startMetadataRequest(ctx, "start_metadata_model_assessment", "Metadata model assessment started", map[string]any{
		"MigrationProjectIdentifier": projectIdentifier,
		"SelectionRules":             selectionRules,
	})
}

// ExportAssessmentOptions carries the optional arguments of
// ExportAssessment.
type ExportAssessmentOptions struct {
	FileName              string
	AssessmentReportTypes []string
}

// ExportAssessment exports an assessment report to the project's S3
// bucket.
func (m *MetadataModelManager) ExportAssessment(ctx context.Context, projectIdentifier, selectionRules string, opts ExportAssessmentOptions) (*Result, error) {
	params := map[string]any{
		"MigrationProjectIdentifier": projectIdentifier,
		"SelectionRules":             selectionRules,
	}
	if opts.FileName != "" {
		params["FileName"] = opts.FileName
	}
	if len(opts.AssessmentReportTypes) > 0 {
		params["AssessmentReportTypes"] = opts.AssessmentReportTypes
	}
	resp, err := m.client.CallAPI(ctx, "export_metadata_model_assessment", params)
	if err != nil {
		return nil, err
	}
	data := map[string]any{"message": "Metadata model assessment exported"}
	if report, present := resp["PdfReport"]; present {
		data["pdf_report"] = formatResource(asMap(report))
	}
	if report, present := resp["CsvReport"]; present {
		data["csv_report"] = formatResource(asMap(report))
	}
	return okResult(data), nil
}

// ListConversions lists metadata model conversion requests.
func (m *MetadataModelManager) ListConversions(ctx context.Context, projectIdentifier string, opts ListOptions) (*Result, error) {
	return m.metadataRequestList(ctx, "describe_metadata_model_conversions", "metadata_model_conversions", projectIdentifier, opts)
}

// StartConversion starts converting the selected source metadata objects.
func (m *MetadataModelManager) StartConversion(ctx context.Context, projectIdentifier, selectionRules string) (*Result, error) {
	return m.startMetadataRequest(ctx, "start_metadata_model_conversion", "Metadata model conversion started", map[string]any{
		"MigrationProjectIdentifier": projectIdentifier,
		"SelectionRules":             selectionRules,
	})
}

// ListImports lists metadata model import requests.
func (m *MetadataModelManager) ListImports(ctx context.Context, projectIdentifier string, opts ListOptions) (*Result, error) {
	return m.metadataRequestList(ctx, "describe_metadata_model_imports", "metadata_model_imports", projectIdentifier, opts)
}

// StartImport loads metadata from the origin (source or target) into the
// project. refresh re-reads objects already imported.
func (m *MetadataModelManager) StartImport(ctx context.Context, projectIdentifier, selectionRules, origin string, refresh bool) (*Result, error) {
	params := map[string]any{
		"MigrationProjectIdentifier": projectIdentifier,
		"SelectionRules":             selectionRules,
		"Origin":                     origin,
	}
	if refresh {
		params["Refresh"] = true
	}
	return m.startMetadataRequest(ctx, "start_metadata_model_import", "Metadata model import started", params)
}

// ListExportsAsScript lists script export requests.
func (m *MetadataModelManager) ListExportsAsScript(ctx context.Context, projectIdentifier string, opts ListOptions) (*Result, error) {
	return m.metadataRequestList(ctx, "describe_metadata_model_exports_as_script", "metadata_model_exports", projectIdentifier, opts)
}

// StartExportAsScript exports converted metadata as a SQL script file.
func (m *MetadataModelManager) StartExportAsScript(ctx context.Context, projectIdentifier, selectionRules, origin, fileName string) (*Result, error) {
	params := map[string]any{
		"MigrationProjectIdentifier": projectIdentifier,
		"SelectionRules":             selectionRules,
		"Origin":                     origin,
	}
	if fileName != "" {
		params["FileName"] = fileName
	}
	return m.startMetadataRequest(ctx, "start_metadata_model_export_as_script", "Metadata model export as script started", params)
}

// ListExportsToTarget lists target export requests.
func (m *MetadataModelManager) ListExportsToTarget(ctx context.Context, projectIdentifier string, opts ListOptions) (*Result, error) {
	return m.metadataRequestList(ctx, "describe_metadata_model_exports_to_target", "metadata_model_exports", projectIdentifier, opts)
}

// StartExportToTarget applies converted metadata directly to the target.
func (m *MetadataModelManager) StartExportToTarget(ctx context.Context, projectIdentifier, selectionRules string, overwriteExtensionPack bool) (*Result, error) {
	params := map[string]any{
		"MigrationProjectIdentifier": projectIdentifier,
		"SelectionRules":             selectionRules,
	}
	if overwriteExtensionPack {
		params["OverwriteExtensionPack"] = true
	}
	return m.startMetadataRequest(ctx, "start_metadata_model_export_to_target", "Metadata model export to target started", params)
}
