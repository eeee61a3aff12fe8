package dmsapi

import (
	"context"

	dms "github.com/aws/aws-sdk-go-v2/service/databasemigrationservice"
)

// apiFunc adapts one typed SDK call to the map-in/map-out gateway shape.
type apiFunc func(ctx context.Context, params map[string]any) (map[string]any, error)

// op builds the apiFunc for a single SDK method. The input struct is filled
// from the parameter map and the output struct is flattened back to a map.
func op[I, O any](call func(context.Context, *I, ...func(*dms.Options)) (*O, error)) apiFunc {
	return func(ctx context.Context, params map[string]any) (map[string]any, error) {
		in := new(I)
		if err := decodeInput(params, in); err != nil {
			return nil, err
		}
		out, err := call(ctx, in)
		if err != nil {
			return nil, err
		}
		return encodeOutput(out)
	}
}

// operationTable maps every dispatchable operation name to its SDK call.
// Names follow the AWS CLI/boto3 snake_case convention for the same API
// actions.
func (c *Client) operationTable() map[string]apiFunc {
	api := c.api
	return map[string]apiFunc{
		// Replication instances
		"create_replication_instance":              op(api.CreateReplicationInstance),
		"modify_replication_instance":              op(api.ModifyReplicationInstance),
		"delete_replication_instance":              op(api.DeleteReplicationInstance),
		"reboot_replication_instance":              op(api.RebootReplicationInstance),
		"describe_replication_instances":           op(api.DescribeReplicationInstances),
		"describe_orderable_replication_instances": op(api.DescribeOrderableReplicationInstances),
		"describe_replication_instance_task_logs":  op(api.DescribeReplicationInstanceTaskLogs),
		"describe_account_attributes":              op(api.DescribeAccountAttributes),

		// Endpoints
		"create_endpoint":                 op(api.CreateEndpoint),
		"modify_endpoint":                 op(api.ModifyEndpoint),
		"delete_endpoint":                 op(api.DeleteEndpoint),
		"describe_endpoints":              op(api.DescribeEndpoints),
		"describe_endpoint_types":         op(api.DescribeEndpointTypes),
		"describe_endpoint_settings":      op(api.DescribeEndpointSettings),
		"refresh_schemas":                 op(api.RefreshSchemas),
		"describe_refresh_schemas_status": op(api.DescribeRefreshSchemasStatus),
		"describe_schemas":                op(api.DescribeSchemas),
		"describe_engine_versions":        op(api.DescribeEngineVersions),

		// Connections
		"test_connection":      op(api.TestConnection),
		"delete_connection":    op(api.DeleteConnection),
		"describe_connections": op(api.DescribeConnections),

		// Replication tasks
		"create_replication_task":    op(api.CreateReplicationTask),
		"modify_replication_task":    op(api.ModifyReplicationTask),
		"delete_replication_task":    op(api.DeleteReplicationTask),
		"start_replication_task":     op(api.StartReplicationTask),
		"stop_replication_task":      op(api.StopReplicationTask),
		"move_replication_task":      op(api.MoveReplicationTask),
		"describe_replication_tasks": op(api.DescribeReplicationTasks),

		// Task assessments
		"start_replication_task_assessment":                op(api.StartReplicationTaskAssessment),
		"start_replication_task_assessment_run":            op(api.StartReplicationTaskAssessmentRun),
		"cancel_replication_task_assessment_run":           op(api.CancelReplicationTaskAssessmentRun),
		"delete_replication_task_assessment_run":           op(api.DeleteReplicationTaskAssessmentRun),
		"describe_replication_task_assessment_results":     op(api.DescribeReplicationTaskAssessmentResults),
		"describe_replication_task_assessment_runs":        op(api.DescribeReplicationTaskAssessmentRuns),
		"describe_replication_task_individual_assessments": op(api.DescribeReplicationTaskIndividualAssessments),
		"describe_applicable_individual_assessments":       op(api.DescribeApplicableIndividualAssessments),

		// Certificates
		"import_certificate":    op(api.ImportCertificate),
		"delete_certificate":    op(api.DeleteCertificate),
		"describe_certificates": op(api.DescribeCertificates),

		// Events
		"create_event_subscription":    op(api.CreateEventSubscription),
		"modify_event_subscription":    op(api.ModifyEventSubscription),
		"delete_event_subscription":    op(api.DeleteEventSubscription),
		"describe_event_subscriptions": op(api.DescribeEventSubscriptions),
		"describe_events":              op(api.DescribeEvents),
		"describe_event_categories":    op(api.DescribeEventCategories),

		"update_subscriptions_to_event_bridge": op(api.UpdateSubscriptionsToEventBridge),

		// Subnet groups
		"create_replication_subnet_group":    op(api.CreateReplicationSubnetGroup),
		"modify_replication_subnet_group":    op(api.ModifyReplicationSubnetGroup),
		"delete_replication_subnet_group":    op(api.DeleteReplicationSubnetGroup),
		"describe_replication_subnet_groups": op(api.DescribeReplicationSubnetGroups),

		// Maintenance
		"apply_pending_maintenance_action":     op(api.ApplyPendingMaintenanceAction),
		"describe_pending_maintenance_actions": op(api.DescribePendingMaintenanceActions),

		// Tags
		"add_tags_to_resource":      op(api.AddTagsToResource),
		"remove_tags_from_resource": op(api.RemoveTagsFromResource),
		"list_tags_for_resource":    op(api.ListTagsForResource),

		// Table operations
		"describe_table_statistics":             op(api.DescribeTableStatistics),
		"reload_tables":                         op(api.ReloadTables),
		"describe_replication_table_statistics": op(api.DescribeReplicationTableStatistics),
		"reload_replication_tables":             op(api.ReloadReplicationTables),

		// Serverless replications
		"create_replication_config":    op(api.CreateReplicationConfig),
		"modify_replication_config":    op(api.ModifyReplicationConfig),
		"delete_replication_config":    op(api.DeleteReplicationConfig),
		"describe_replication_configs": op(api.DescribeReplicationConfigs),
		"start_replication":            op(api.StartReplication),
		"stop_replication":             op(api.StopReplication),
		"describe_replications":        op(api.DescribeReplications),

		// Migration projects
		"create_migration_project":    op(api.CreateMigrationProject),
		"modify_migration_project":    op(api.ModifyMigrationProject),
		"delete_migration_project":    op(api.DeleteMigrationProject),
		"describe_migration_projects": op(api.DescribeMigrationProjects),

		// Data providers
		"create_data_provider":    op(api.CreateDataProvider),
		"modify_data_provider":    op(api.ModifyDataProvider),
		"delete_data_provider":    op(api.DeleteDataProvider),
		"describe_data_providers": op(api.DescribeDataProviders),

		// Instance profiles
		"create_instance_profile":    op(api.CreateInstanceProfile),
		"modify_instance_profile":    op(api.ModifyInstanceProfile),
		"delete_instance_profile":    op(api.DeleteInstanceProfile),
		"describe_instance_profiles": op(api.DescribeInstanceProfiles),

		// Data migrations
		"create_data_migration":    op(api.CreateDataMigration),
		"modify_data_migration":    op(api.ModifyDataMigration),
		"delete_data_migration":    op(api.DeleteDataMigration),
		"start_data_migration":     op(api.StartDataMigration),
		"stop_data_migration":      op(api.StopDataMigration),
		"describe_data_migrations": op(api.DescribeDataMigrations),

		// Metadata model operations
		"describe_conversion_configuration":         op(api.DescribeConversionConfiguration),
		"modify_conversion_configuration":           op(api.ModifyConversionConfiguration),
		"start_metadata_model_assessment":           op(api.StartMetadataModelAssessment),
		"start_metadata_model_conversion":           op(api.StartMetadataModelConversion),
		"start_metadata_model_import":               op(api.StartMetadataModelImport),
		"start_metadata_model_export_to_target":     op(api.StartMetadataModelExportToTarget),
		"start_metadata_model_export_as_script":     op(api.StartMetadataModelExportAsScript),
		"export_metadata_model_assessment":          op(api.ExportMetadataModelAssessment),
		"describe_metadata_model_assessments":       op(api.DescribeMetadataModelAssessments),
		"describe_metadata_model_conversions":       op(api.DescribeMetadataModelConversions),
		"describe_metadata_model_imports":           op(api.DescribeMetadataModelImports),
		"describe_metadata_model_exports_to_target": op(api.DescribeMetadataModelExportsToTarget),
		"describe_metadata_model_exports_as_script": op(api.DescribeMetadataModelExportsAsScript),
		"start_extension_pack_association":          op(api.StartExtensionPackAssociation),
		"describe_extension_pack_associations":      op(api.DescribeExtensionPackAssociations),

		// Fleet advisor
		"create_fleet_advisor_collector":               op(api.CreateFleetAdvisorCollector),
		"delete_fleet_advisor_collector":               op(api.DeleteFleetAdvisorCollector),
		"delete_fleet_advisor_databases":               op(api.DeleteFleetAdvisorDatabases),
		"describe_fleet_advisor_collectors":            op(api.DescribeFleetAdvisorCollectors),
		"describe_fleet_advisor_databases":             op(api.DescribeFleetAdvisorDatabases),
		"describe_fleet_advisor_lsa_analysis":          op(api.DescribeFleetAdvisorLsaAnalysis),
		"describe_fleet_advisor_schema_object_summary": op(api.DescribeFleetAdvisorSchemaObjectSummary),
		"describe_fleet_advisor_schemas":               op(api.DescribeFleetAdvisorSchemas),
		"run_fleet_advisor_lsa_analysis":               op(api.RunFleetAdvisorLsaAnalysis),

		// Recommendations
		"start_recommendations":               op(api.StartRecommendations),
		"batch_start_recommendations":         op(api.BatchStartRecommendations),
		"describe_recommendations":            op(api.DescribeRecommendations),
		"describe_recommendation_limitations": op(api.DescribeRecommendationLimitations),
	}
}
