package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dmsmcp/dmsmcp/pkg/dms"
)

// ═══════════════════════════════════════════════════════════════════════════
// Migration Projects, Data Providers, Instance Profiles, Data Migrations
// ═══════════════════════════════════════════════════════════════════════════

func (s *Server) registerProjectTools() {
	s.mutating(&mcp.Tool{
		Name:        "create_migration_project",
		Title:       "Create Migration Project",
		Description: "Create a migration project binding an instance profile to source and target data providers. Migration projects are the entry point to schema conversion and homogeneous data migrations.",
		InputSchema: objectSchema(map[string]any{
			"migration_project_identifier": stringProp("Unique name for the project."),
			"instance_profile_identifier":  stringProp("Instance profile name or ARN."),
			"source_data_provider_descriptors": objectArrayProp("Source providers as [{\"DataProviderIdentifier\": ..., \"SecretsManagerSecretId\": ..., ...}]."),
			"target_data_provider_descriptors": objectArrayProp("Target providers, same shape as the source descriptors."),
			"transformation_rules":             stringProp("Transformation rules as a JSON document."),
			"description":                      stringProp("Project description."),
			"schema_conversion_application_attributes": objectProp("S3 bucket and role for schema conversion artifacts."),
			"tags": objectArrayProp("Tags as [{\"Key\": ..., \"Value\": ...}]."),
		}, "migration_project_identifier", "instance_profile_identifier",
			"source_data_provider_descriptors", "target_data_provider_descriptors"),
	}, s.handleCreateMigrationProject)

	s.mutating(&mcp.Tool{
		Name:        "modify_migration_project",
		Title:       "Modify Migration Project",
		Description: "Change a migration project's providers, rules, or description.",
		InputSchema: objectSchema(map[string]any{
			"migration_project_identifier":     stringProp("Project name or ARN."),
			"migration_project_name":           stringProp("New project name."),
			"instance_profile_identifier":      stringProp("New instance profile."),
			"source_data_provider_descriptors": objectArrayProp("Replacement source providers."),
			"target_data_provider_descriptors": objectArrayProp("Replacement target providers."),
			"transformation_rules":             stringProp("Replacement transformation rules (JSON)."),
			"description":                      stringProp("New description."),
		}, "migration_project_identifier"),
	}, s.handleModifyMigrationProject)

	s.destructive(&mcp.Tool{
		Name:        "delete_migration_project",
		Title:       "Delete Migration Project",
		Description: "Delete a migration project.",
		InputSchema: objectSchema(map[string]any{
			"migration_project_identifier": stringProp("Project name or ARN."),
		}, "migration_project_identifier"),
	}, s.handleDeleteMigrationProject)

	s.readOnly(&mcp.Tool{
		Name:        "describe_migration_projects",
		Title:       "Describe Migration Projects",
		Description: "List migration projects.",
		InputSchema: objectSchema(listProps(nil)),
	}, s.handleDescribeMigrationProjects)

	s.mutating(&mcp.Tool{
		Name:        "create_data_provider",
		Title:       "Create Data Provider",
		Description: "Register a database as a data provider for migration projects. settings carries the engine-specific connection block, e.g. {\"MysqlSettings\": {\"ServerName\": ..., \"Port\": 3306}}.",
		InputSchema: objectSchema(map[string]any{
			"data_provider_identifier": stringProp("Unique name for the provider."),
			"engine":                   stringProp("Engine, e.g. mysql, postgres, oracle."),
			"settings":                 objectProp("Engine-specific connection settings."),
			"description":              stringProp("Provider description."),
			"tags":                     objectArrayProp("Tags as [{\"Key\": ..., \"Value\": ...}]."),
		}, "data_provider_identifier", "engine", "settings"),
	}, s.handleCreateDataProvider)

	s.mutating(&mcp.Tool{
		Name:        "modify_data_provider",
		Title:       "Modify Data Provider",
		Description: "Change a data provider's engine, settings, or description.",
		InputSchema: objectSchema(map[string]any{
			"data_provider_identifier": stringProp("Provider name or ARN."),
			"data_provider_name":       stringProp("New provider name."),
			"engine":                   stringProp("New engine."),
			"settings":                 objectProp("Replacement connection settings."),
			"description":              stringProp("New description."),
		}, "data_provider_identifier"),
	}, s.handleModifyDataProvider)

	s.destructive(&mcp.Tool{
		Name:        "delete_data_provider",
		Title:       "Delete Data Provider",
		Description: "Delete a data provider. It must not be referenced by any migration project.",
		InputSchema: objectSchema(map[string]any{
			"data_provider_identifier": stringProp("Provider name or ARN."),
		}, "data_provider_identifier"),
	}, s.handleDeleteDataProvider)

	s.readOnly(&mcp.Tool{
		Name:        "describe_data_providers",
		Title:       "Describe Data Providers",
		Description: "List data providers.",
		InputSchema: objectSchema(listProps(nil)),
	}, s.handleDescribeDataProviders)

	s.mutating(&mcp.Tool{
		Name:        "create_instance_profile",
		Title:       "Create Instance Profile",
		Description: "Create the network and KMS envelope that migration projects run in.",
		InputSchema: objectSchema(map[string]any{
			"instance_profile_identifier": stringProp("Unique name for the profile."),
			"description":                 stringProp("Profile description."),
			"kms_key_arn":                 stringProp("KMS key for the profile."),
			"publicly_accessible":         boolProp("Whether the profile gets public connectivity."),
			"network_type":                stringProp("IPV4 or DUAL."),
			"subnet_group_identifier":     stringProp("Subnet group to run in."),
			"vpc_security_groups":         stringArrayProp("VPC security groups."),
			"tags":                        objectArrayProp("Tags as [{\"Key\": ..., \"Value\": ...}]."),
		}, "instance_profile_identifier"),
	}, s.handleCreateInstanceProfile)

	s.mutating(&mcp.Tool{
		Name:        "modify_instance_profile",
		Title:       "Modify Instance Profile",
		Description: "Change an instance profile's network or KMS settings.",
		InputSchema: objectSchema(map[string]any{
			"instance_profile_identifier": stringProp("Profile name or ARN."),
			"instance_profile_name":       stringProp("New profile name."),
			"description":                 stringProp("New description."),
			"kms_key_arn":                 stringProp("New KMS key."),
			"publicly_accessible":         boolProp("Public connectivity."),
			"network_type":                stringProp("IPV4 or DUAL."),
			"subnet_group_identifier":     stringProp("New subnet group."),
			"vpc_security_groups":         stringArrayProp("Replacement security groups."),
		}, "instance_profile_identifier"),
	}, s.handleModifyInstanceProfile)

	s.destructive(&mcp.Tool{
		Name:        "delete_instance_profile",
		Title:       "Delete Instance Profile",
		Description: "Delete an instance profile. It must not be referenced by any migration project.",
		InputSchema: objectSchema(map[string]any{
			"instance_profile_identifier": stringProp("Profile name or ARN."),
		}, "instance_profile_identifier"),
	}, s.handleDeleteInstanceProfile)

	s.readOnly(&mcp.Tool{
		Name:        "describe_instance_profiles",
		Title:       "Describe Instance Profiles",
		Description: "List instance profiles.",
		InputSchema: objectSchema(listProps(nil)),
	}, s.handleDescribeInstanceProfiles)

	s.mutating(&mcp.Tool{
		Name:        "create_data_migration",
		Title:       "Create Data Migration",
		Description: "Create a homogeneous data migration inside a migration project. data_migration_type is full-load, cdc, or full-load-and-cdc.",
		InputSchema: objectSchema(map[string]any{
			"migration_project_identifier": stringProp("Project the migration belongs to."),
			"data_migration_type":          stringProp("full-load, cdc, or full-load-and-cdc."),
			"service_access_role_arn":      stringProp("Role DMS assumes for the migration."),
			"source_data_settings":         objectArrayProp("Per-source settings, e.g. CDC start positions."),
			"data_migration_name":          stringProp("Name for the migration."),
			"data_migration_settings":      objectProp("Number of jobs, logging, and selection rules."),
			"tags":                         objectArrayProp("Tags as [{\"Key\": ..., \"Value\": ...}]."),
		}, "migration_project_identifier", "data_migration_type", "service_access_role_arn"),
	}, s.handleCreateDataMigration)

	s.mutating(&mcp.Tool{
		Name:        "modify_data_migration",
		Title:       "Modify Data Migration",
		Description: "Change a data migration's type, settings, or name.",
		InputSchema: objectSchema(map[string]any{
			"data_migration_identifier": stringProp("Migration name or ARN."),
			"data_migration_name":       stringProp("New name."),
			"data_migration_type":       stringProp("full-load, cdc, or full-load-and-cdc."),
			"service_access_role_arn":   stringProp("New service role."),
			"source_data_settings":      objectArrayProp("Replacement source settings."),
			"data_migration_settings":   objectProp("Replacement migration settings."),
		}, "data_migration_identifier"),
	}, s.handleModifyDataMigration)

	s.destructive(&mcp.Tool{
		Name:        "delete_data_migration",
		Title:       "Delete Data Migration",
		Description: "Delete a data migration.",
		InputSchema: objectSchema(map[string]any{
			"data_migration_identifier": stringProp("Migration name or ARN."),
		}, "data_migration_identifier"),
	}, s.handleDeleteDataMigration)

	s.readOnly(&mcp.Tool{
		Name:        "describe_data_migrations",
		Title:       "Describe Data Migrations",
		Description: "List data migrations and their progress.",
		InputSchema: objectSchema(listProps(nil)),
	}, s.handleDescribeDataMigrations)

	s.mutating(&mcp.Tool{
		Name:        "start_data_migration",
		Title:       "Start Data Migration",
		Description: "Start a data migration. start_type is start-replication, resume-processing, or reload-target.",
		InputSchema: objectSchema(map[string]any{
			"data_migration_identifier": stringProp("Migration name or ARN."),
			"start_type":                stringProp("start-replication, resume-processing, or reload-target."),
		}, "data_migration_identifier", "start_type"),
	}, s.handleStartDataMigration)

	s.mutating(&mcp.Tool{
		Name:        "stop_data_migration",
		Title:       "Stop Data Migration",
		Description: "Stop a running data migration.",
		InputSchema: objectSchema(map[string]any{
			"data_migration_identifier": stringProp("Migration name or ARN."),
		}, "data_migration_identifier"),
	}, s.handleStopDataMigration)
}

func (s *Server) handleCreateMigrationProject(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Identifier        string           `json:"migration_project_identifier"`
		InstanceProfile   string           `json:"instance_profile_identifier"`
		SourceDescriptors []map[string]any `json:"source_data_provider_descriptors"`
		TargetDescriptors []map[string]any `json:"target_data_provider_descriptors"`
		Transformation    string           `json:"transformation_rules"`
		Description       string           `json:"description"`
		SchemaConversion  map[string]any   `json:"schema_conversion_application_attributes"`
		Tags              []map[string]any `json:"tags"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	opts := dms.MigrationProjectOptions{
		TransformationRules:                   args.Transformation,
		Description:                           args.Description,
		SchemaConversionApplicationAttributes: args.SchemaConversion,
		Tags:                                  args.Tags,
	}
	return envelope(s.projects.CreateMigrationProject(ctx, args.Identifier,
		args.InstanceProfile, args.SourceDescriptors, args.TargetDescriptors, opts))
}

func (s *Server) handleModifyMigrationProject(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Identifier        string           `json:"migration_project_identifier"`
		Name              string           `json:"migration_project_name"`
		InstanceProfile   string           `json:"instance_profile_identifier"`
		SourceDescriptors []map[string]any `json:"source_data_provider_descriptors"`
		TargetDescriptors []map[string]any `json:"target_data_provider_descriptors"`
		Transformation    string           `json:"transformation_rules"`
		Description       string           `json:"description"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	params := map[string]any{"MigrationProjectIdentifier": args.Identifier}
	setString(params, "MigrationProjectName", args.Name)
	setString(params, "InstanceProfileIdentifier", args.InstanceProfile)
	setObjects(params, "SourceDataProviderDescriptors", args.SourceDescriptors)
	setObjects(params, "TargetDataProviderDescriptors", args.TargetDescriptors)
	setString(params, "TransformationRules", args.Transformation)
	setString(params, "Description", args.Description)
	return envelope(s.projects.ModifyMigrationProject(ctx, params))
}

type migrationProjectArgs struct {
	Identifier string `json:"migration_project_identifier"`
}

func (s *Server) handleDeleteMigrationProject(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args migrationProjectArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.projects.DeleteMigrationProject(ctx, args.Identifier))
}

func (s *Server) handleDescribeMigrationProjects(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args listArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.projects.ListMigrationProjects(ctx, args.options()))
}

func (s *Server) handleCreateDataProvider(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Identifier  string           `json:"data_provider_identifier"`
		Engine      string           `json:"engine"`
		Settings    map[string]any   `json:"settings"`
		Description string           `json:"description"`
		Tags        []map[string]any `json:"tags"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.projects.CreateDataProvider(ctx, args.Identifier, args.Engine,
		args.Settings, args.Description, args.Tags))
}

func (s *Server) handleModifyDataProvider(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Identifier  string         `json:"data_provider_identifier"`
		Name        string         `json:"data_provider_name"`
		Engine      string         `json:"engine"`
		Settings    map[string]any `json:"settings"`
		Description string         `json:"description"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	params := map[string]any{"DataProviderIdentifier": args.Identifier}
	setString(params, "DataProviderName", args.Name)
	setString(params, "Engine", args.Engine)
	setObject(params, "Settings", args.Settings)
	setString(params, "Description", args.Description)
	return envelope(s.projects.ModifyDataProvider(ctx, params))
}

func (s *Server) handleDeleteDataProvider(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Identifier string `json:"data_provider_identifier"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.projects.DeleteDataProvider(ctx, args.Identifier))
}

func (s *Server) handleDescribeDataProviders(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args listArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.projects.ListDataProviders(ctx, args.options()))
}

func (s *Server) handleCreateInstanceProfile(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Identifier         string           `json:"instance_profile_identifier"`
		Description        string           `json:"description"`
		KmsKeyARN          string           `json:"kms_key_arn"`
		PubliclyAccessible *bool            `json:"publicly_accessible"`
		NetworkType        string           `json:"network_type"`
		SubnetGroup        string           `json:"subnet_group_identifier"`
		SecurityGroups     []string         `json:"vpc_security_groups"`
		Tags               []map[string]any `json:"tags"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	opts := dms.InstanceProfileOptions{
		Description:           args.Description,
		KmsKeyARN:             args.KmsKeyARN,
		PubliclyAccessible:    args.PubliclyAccessible,
		NetworkType:           args.NetworkType,
		SubnetGroupIdentifier: args.SubnetGroup,
		VpcSecurityGroups:     args.SecurityGroups,
		Tags:                  args.Tags,
	}
	return envelope(s.projects.CreateInstanceProfile(ctx, args.Identifier, opts))
}

func (s *Server) handleModifyInstanceProfile(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Identifier         string   `json:"instance_profile_identifier"`
		Name               string   `json:"instance_profile_name"`
		Description        string   `json:"description"`
		KmsKeyARN          string   `json:"kms_key_arn"`
		PubliclyAccessible *bool    `json:"publicly_accessible"`
		NetworkType        string   `json:"network_type"`
		SubnetGroup        string   `json:"subnet_group_identifier"`
		SecurityGroups     []string `json:"vpc_security_groups"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	params := map[string]any{"InstanceProfileIdentifier": args.Identifier}
	setString(params, "InstanceProfileName", args.Name)
	setString(params, "Description", args.Description)
	setString(params, "KmsKeyArn", args.KmsKeyARN)
	setBool(params, "PubliclyAccessible", args.PubliclyAccessible)
	setString(params, "NetworkType", args.NetworkType)
	setString(params, "SubnetGroupIdentifier", args.SubnetGroup)
	setStrings(params, "VpcSecurityGroups", args.SecurityGroups)
	return envelope(s.projects.ModifyInstanceProfile(ctx, params))
}

func (s *Server) handleDeleteInstanceProfile(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Identifier string `json:"instance_profile_identifier"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.projects.DeleteInstanceProfile(ctx, args.Identifier))
}

func (s *Server) handleDescribeInstanceProfiles(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args listArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.projects.ListInstanceProfiles(ctx, args.options()))
}

func (s *Server) handleCreateDataMigration(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		ProjectIdentifier string           `json:"migration_project_identifier"`
		MigrationType     string           `json:"data_migration_type"`
		ServiceRoleARN    string           `json:"service_access_role_arn"`
		SourceSettings    []map[string]any `json:"source_data_settings"`
		Name              string           `json:"data_migration_name"`
		Settings          map[string]any   `json:"data_migration_settings"`
		Tags              []map[string]any `json:"tags"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	opts := dms.DataMigrationOptions{
		DataMigrationSettings: args.Settings,
		DataMigrationName:     args.Name,
		Tags:                  args.Tags,
	}
	return envelope(s.projects.CreateDataMigration(ctx, args.ProjectIdentifier,
		args.MigrationType, args.ServiceRoleARN, args.SourceSettings, opts))
}

func (s *Server) handleModifyDataMigration(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Identifier     string           `json:"data_migration_identifier"`
		Name           string           `json:"data_migration_name"`
		MigrationType  string           `json:"data_migration_type"`
		ServiceRoleARN string           `json:"service_access_role_arn"`
		SourceSettings []map[string]any `json:"source_data_settings"`
		Settings       map[string]any   `json:"data_migration_settings"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	params := map[string]any{"DataMigrationIdentifier": args.Identifier}
	setString(params, "DataMigrationName", args.Name)
	setString(params, "DataMigrationType", args.MigrationType)
	setString(params, "ServiceAccessRoleArn", args.ServiceRoleARN)
	setObjects(params, "SourceDataSettings", args.SourceSettings)
	setObject(params, "DataMigrationSettings", args.Settings)
	return envelope(s.projects.ModifyDataMigration(ctx, params))
}

type dataMigrationArgs struct {
	Identifier string `json:"data_migration_identifier"`
}

func (s *Server) handleDeleteDataMigration(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args dataMigrationArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.projects.DeleteDataMigration(ctx, args.Identifier))
}

func (s *Server) handleDescribeDataMigrations(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args listArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.projects.ListDataMigrations(ctx, args.options()))
}

func (s *Server) handleStartDataMigration(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Identifier string `json:"data_migration_identifier"`
		StartType  string `json:"start_type"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.projects.StartDataMigration(ctx, args.Identifier, args.StartType))
}

func (s *Server) handleStopDataMigration(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args dataMigrationArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.projects.StopDataMigration(ctx, args.Identifier))
}
