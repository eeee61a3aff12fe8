package dms

import (
	"context"

	"github.com/dmsmcp/dmsmcp/pkg/dmsapi"
)

// ProjectManager covers the schema-conversion families: migration
// projects, data providers, instance profiles, and the data migrations
// that run inside a project.
type ProjectManager struct {
	manager
}

// NewProjectManager creates a ProjectManager over the given gateway.
func NewProjectManager(client dmsapi.Invoker) *ProjectManager {
	return &ProjectManager{manager{client: client}}
}

// MigrationProjectOptions carries the optional arguments of
// CreateMigrationProject. Empty fields are not forwarded.
type MigrationProjectOptions struct {
	TransformationRules                   string
	Description                           string
	SchemaConversionApplicationAttributes map[string]any
	Tags                                  []map[string]any
}

// CreateMigrationProject creates a migration project binding an instance
// profile to source and target data providers.
func (m *ProjectManager) CreateMigrationProject(ctx context.Context, identifier, instanceProfileARN string, sourceProviders, targetProviders []map[string]any, opts MigrationProjectOptions) (*Result, error) {
	params := map[string]any{
		"MigrationProjectIdentifier":    identifier,
		"InstanceProfileIdentifier":     instanceProfileARN,
		"SourceDataProviderDescriptors": sourceProviders,
		"TargetDataProviderDescriptors": targetProviders,
	}
	if opts.TransformationRules != "" {
		params["TransformationRules"] = opts.TransformationRules
	}
	if opts.Description != "" {
		params["Description"] = opts.Description
	}
	if len(opts.SchemaConversionApplicationAttributes) > 0 {
		params["SchemaConversionApplicationAttributes"] = opts.SchemaConversionApplicationAttributes
	}
	if len(opts.Tags) > 0 {
		params["Tags"] = opts.Tags
	}
	return m.mutate(ctx, mutationSpec{
		operation:   "create_migration_project",
		responseKey: "MigrationProject",
		resultKey:   "migration_project",
		message:     "Migration project created successfully",
	}, params)
}

// ModifyMigrationProject changes project attributes. params carries AWS
// parameter names and must include MigrationProjectIdentifier (name or ARN).
func (m *ProjectManager) ModifyMigrationProject(ctx context.Context, params map[string]any) (*Result, error) {
	return m.mutate(ctx, mutationSpec{
		operation:   "modify_migration_project",
		required:    []string{"MigrationProjectIdentifier"},
		responseKey: "MigrationProject",
		resultKey:   "migration_project",
		message:     "Migration project modified successfully",
	}, params)
}

// DeleteMigrationProject deletes the project with the given identifier.
func (m *ProjectManager) DeleteMigrationProject(ctx context.Context, identifier string) (*Result, error) {
	return m.mutate(ctx, mutationSpec{
		operation:   "delete_migration_project",
		responseKey: "MigrationProject",
		resultKey:   "migration_project",
		message:     "Migration project deleted successfully",
	}, map[string]any{"MigrationProjectIdentifier": identifier})
}

// ListMigrationProjects lists migration projects.
func (m *ProjectManager) ListMigrationProjects(ctx context.Context, opts ListOptions) (*Result, error) {
	return m.pagedList(ctx, listSpec{
		operation:   "describe_migration_projects",
		responseKey: "MigrationProjects",
		resultKey:   "migration_projects",
		format:      formatResource,
	}, opts, nil)
}

// CreateDataProvider registers a data store for schema conversion.
// settings carries the engine-specific connection settings sub-object.
func (m *ProjectManager) CreateDataProvider(ctx context.Context, identifier, engine string, settings map[string]any, description string, tags []map[string]any) (*Result, error) {
	params := map[string]any{
		"DataProviderName": identifier,
		"Engine":           engine,
		"Settings":         settings,
	}
	if description != "" {
		params["Description"] = description
	}
	if len(tags) > 0 {
		params["Tags"] = tags
	}
	return m.mutate(ctx, mutationSpec{
		operation:   "create_data_provider",
		responseKey: "DataProvider",
		resultKey:   "data_provider",
		message:     "Data provider created successfully",
	}, params)
}

// ModifyDataProvider changes provider attributes. params carries AWS
// parameter names and must include DataProviderIdentifier.
func (m *ProjectManager) ModifyDataProvider(ctx context.Context, params map[string]any) (*Result, error) {
	return m.mutate(ctx, mutationSpec{
		operation:   "modify_data_provider",
		required:    []string{"DataProviderIdentifier"},
		responseKey: "DataProvider",
		resultKey:   "data_provider",
		message:     "Data provider modified successfully",
	}, params)
}

// DeleteDataProvider deletes the provider with the given identifier.
func (m *ProjectManager) DeleteDataProvider(ctx context.Context, identifier string) (*Result, error) {
	return m.mutate(ctx, mutationSpec{
		operation:   "delete_data_provider",
		responseKey: "DataProvider",
		resultKey:   "data_provider",
		message:     "Data provider deleted successfully",
	}, map[string]any{"DataProviderIdentifier": identifier})
}

// ListDataProviders lists registered data providers.
func (m *ProjectManager) ListDataProviders(ctx context.Context, opts ListOptions) (*Result, error) {
	return m.pagedList(ctx, listSpec{
		operation:   "describe_data_providers",
		responseKey: "DataProviders",
		resultKey:   "data_providers",
		format:      formatResource,
	}, opts, nil)
}

// InstanceProfileOptions carries the optional arguments of
// CreateInstanceProfile. PubliclyAccessible is a pointer so an explicit
// false is still forwarded.
type InstanceProfileOptions struct {
	Description           string
	KmsKeyARN             string
	PubliclyAccessible    *bool
	NetworkType           string
	SubnetGroupIdentifier string
	VpcSecurityGroups     []string
	Tags                  []map[string]any
}

// CreateInstanceProfile creates the network/KMS envelope migration
// projects run in.
func (m *ProjectManager) CreateInstanceProfile(ctx context.Context, identifier string, opts InstanceProfileOptions) (*Result, error) {
	params := map[string]any{"InstanceProfileName": identifier}
	if opts.Description != "" {
		params["Description"] = opts.Description
	}
	if opts.KmsKeyARN != "" {
		params["KmsKeyArn"] = opts.KmsKeyARN
	}
	if opts.PubliclyAccessible != nil {
		params["PubliclyAccessible"] = *opts.PubliclyAccessible
	}
	if opts.NetworkType != "" {
		params["NetworkType"] = opts.NetworkType
	}
	if opts.SubnetGroupIdentifier != "" {
		params["SubnetGroupIdentifier"] = opts.SubnetGroupIdentifier
	}
	if len(opts.VpcSecurityGroups) > 0 {
		params["VpcSecurityGroups"] = opts.VpcSecurityGroups
	}
	if len(opts.Tags) > 0 {
		params["Tags"] = opts.Tags
	}
	return m.mutate(ctx, mutationSpec{
		operation:   "create_instance_profile",
		responseKey: "InstanceProfile",
		resultKey:   "instance_profile",
		message:     "Instance profile created successfully",
	}, params)
}

// ModifyInstanceProfile changes profile attributes. params carries AWS
// parameter names and must include InstanceProfileIdentifier.
func (m *ProjectManager) ModifyInstanceProfile(ctx context.Context, params map[string]any) (*Result, error) {
	return m.mutate(ctx, mutationSpec{
		operation:   "modify_instance_profile",
		required:    []string{"InstanceProfileIdentifier"},
		responseKey: "InstanceProfile",
		resultKey:   "instance_profile",
		message:     "Instance profile modified successfully",
	}, params)
}

// DeleteInstanceProfile deletes the profile with the given identifier.
func (m *ProjectManager) DeleteInstanceProfile(ctx context.Context, identifier string) (*Result, error) {
	return m.mutate(ctx, mutationSpec{
		operation:   "delete_instance_profile",
		responseKey: "InstanceProfile",
		resultKey:   "instance_profile",
		message:     "Instance profile deleted successfully",
	}, map[string]any{"InstanceProfileIdentifier": identifier})
}

// ListInstanceProfiles lists instance profiles.
func (m *ProjectManager) ListInstanceProfiles(ctx context.Context, opts ListOptions) (*Result, error) {
	return m.pagedList(ctx, listSpec{
		operation:   "describe_instance_profiles",
		responseKey: "InstanceProfiles",
		resultKey:   "instance_profiles",
		format:      formatResource,
	}, opts, nil)
}

// DataMigrationOptions carries the optional arguments of
// CreateDataMigration. Empty fields are not forwarded.
type DataMigrationOptions struct {
	DataMigrationSettings map[string]any
	DataMigrationName     string
	Tags                  []map[string]any
}

// CreateDataMigration creates a data migration inside a migration project.
func (m *ProjectManager) CreateDataMigration(ctx context.Context, identifier, migrationType, serviceRoleARN string, sourceDataSettings []map[string]any, opts DataMigrationOptions) (*Result, error) {
	params := map[string]any{
		"MigrationProjectIdentifier": identifier,
		"DataMigrationType":          migrationType,
		"ServiceAccessRoleArn":       serviceRoleARN,
	}
	if len(sourceDataSettings) > 0 {
		params["SourceDataSettings"] = sourceDataSettings
	}
	if len(opts.DataMigrationSettings) > 0 {
		params["DataMigrationSettings"] = opts.DataMigrationSettings
	}
	if opts.DataMigrationName != "" {
		params["DataMigrationName"] = opts.DataMigrationName
	}
	if len(opts.Tags) > 0 {
		params["Tags"] = opts.Tags
	}
	return m.mutate(ctx, mutationSpec{
		operation:   "create_data_migration",
		responseKey: "DataMigration",
		resultKey:   "data_migration",
		message:     "Data migration created successfully",
	}, params)
}

// ModifyDataMigration changes data migration attributes. params carries
// AWS parameter names and must include DataMigrationIdentifier.
func (m *ProjectManager) ModifyDataMigration(ctx context.Context, params map[string]any) (*Result, error) {
	return m.mutate(ctx, mutationSpec{
		operation:   "modify_data_migration",
		required:    []string{"DataMigrationIdentifier"},
		responseKey: "DataMigration",
		resultKey:   "data_migration",
		message:     "Data migration modified successfully",
	}, params)
}

// DeleteDataMigration deletes the data migration with the given ARN.
func (m *ProjectManager) DeleteDataMigration(ctx context.Context, migrationARN string) (*Result, error) {
	return m.mutate(ctx, mutationSpec{
		operation:   "delete_data_migration",
		responseKey: "DataMigration",
		resultKey:   "data_migration",
		message:     "Data migration deleted successfully",
	}, map[string]any{"DataMigrationIdentifier": migrationARN})
}

// ListDataMigrations lists data migrations.
func (m *ProjectManager) ListDataMigrations(ctx context.Context, opts ListOptions) (*Result, error) {
	return m.pagedList(ctx, listSpec{
		operation:   "describe_data_migrations",
		responseKey: "DataMigrations",
		resultKey:   "data_migrations",
		format:      formatResource,
	}, opts, nil)
}

// StartDataMigration starts a data migration with the given start type.
func (m *ProjectManager) StartDataMigration(ctx context.Context, migrationARN, startType string) (*Result, error) {
	return m.mutate(ctx, mutationSpec{
		operation:   "start_data_migration",
		responseKey: "DataMigration",
		resultKey:   "data_migration",
		message:     "Data migration started with type: " + startType,
	}, map[string]any{
		"DataMigrationIdentifier": migrationARN,
		"StartType":               startType,
	})
}

// StopDataMigration stops a running data migration.
func (m *ProjectManager) StopDataMigration(ctx context.Context, migrationARN string) (*Result, error) {
	return m.mutate(ctx, mutationSpec{
		operation:   "stop_data_migration",
		responseKey: "DataMigration",
		resultKey:   "data_migration",
		message:     "Data migration stop initiated",
	}, map[string]any{"DataMigrationIdentifier": migrationARN})
}
