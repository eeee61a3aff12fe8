package dms

import (
	"context"

	"github.com/dmsmcp/dmsmcp/pkg/dmsapi"
)

// ServerlessManager covers serverless replication configs and the
// replications that run from them.
type ServerlessManager struct {
	manager
}

// NewServerlessManager creates a ServerlessManager over the given gateway.
func NewServerlessManager(client dmsapi.Invoker) *ServerlessManager {
	return &ServerlessManager{manager{client: client}}
}

// ReplicationConfigOptions carries the optional arguments of
// CreateReplicationConfig. Empty fields are not forwarded.
type ReplicationConfigOptions struct {
	ReplicationSettings  string
	SupplementalSettings string
	ResourceIdentifier   string
	Tags                 []map[string]any
}

// CreateReplicationConfig creates a serverless replication config.
// computeConfig carries AWS ComputeConfig keys (MaxCapacityUnits, ...).
func (m *ServerlessManager) CreateReplicationConfig(ctx context.Context, identifier, sourceARN, targetARN string, computeConfig map[string]any, replicationType, tableMappings string, opts ReplicationConfigOptions) (*Result, error) {
	params := map[string]any{
		"ReplicationConfigIdentifier": identifier,
		"SourceEndpointArn":           sourceARN,
		"TargetEndpointArn":           targetARN,
		"ComputeConfig":               computeConfig,
		"ReplicationType":             replicationType,
		"TableMappings":               tableMappings,
	}
	if opts.ReplicationSettings != "" {
		params["ReplicationSettings"] = opts.ReplicationSettings
	}
	if opts.SupplementalSettings != "" {
		params["SupplementalSettings"] = opts.SupplementalSettings
	}
	if opts.ResourceIdentifier != "" {
		params["ResourceIdentifier"] = opts.ResourceIdentifier
	}
	if len(opts.Tags) > 0 {
		params["Tags"] = opts.Tags
	}
	return m.mutate(ctx, mutationSpec{
		operation:   "create_replication_config",
		responseKey: "ReplicationConfig",
		resultKey:   "replication_config",
		message:     "Replication config created successfully",
	}, params)
}

// ModifyReplicationConfig changes config attributes. params carries AWS
// parameter names and must include ReplicationConfigArn.
func (m *ServerlessManager) ModifyReplicationConfig(ctx context.Context, params map[string]any) (*Result, error) {
	return m.mutate(ctx, mutationSpec{
		operation:   "modify_replication_config",
		required:    []string{"ReplicationConfigArn"},
		responseKey: "ReplicationConfig",
		resultKey:   "replication_config",
		message:     "Replication config modified successfully",
	}, params)
}

// DeleteReplicationConfig deletes the config with the given ARN.
func (m *ServerlessManager) DeleteReplicationConfig(ctx context.Context, configARN string) (*Result, error) {
	return m.mutate(ctx, mutationSpec{
		operation:   "delete_replication_config",
		responseKey: "ReplicationConfig",
		resultKey:   "replication_config",
		message:     "Replication config deleted successfully",
	}, map[string]any{"ReplicationConfigArn": configARN})
}

// ListReplicationConfigs lists serverless replication configs.
func (m *ServerlessManager) ListReplicationConfigs(ctx context.Context, opts ListOptions) (*Result, error) {
	return m.pagedList(ctx, listSpec{
		operation:   "describe_replication_configs",
		responseKey: "ReplicationConfigs",
		resultKey:   "replication_configs",
		format:      formatResource,
	}, opts, nil)
}

// ListReplications lists the replications running from serverless configs.
func (m *ServerlessManager) ListReplications(ctx context.Context, opts ListOptions) (*Result, error) {
	return m.pagedList(ctx, listSpec{
		operation:   "describe_replications",
		responseKey: "Replications",
		resultKey:   "replications",
		format:      formatResource,
	}, opts, nil)
}

// StartReplication starts a serverless replication. startType follows the
// same vocabulary as task starts. CDC arguments are forwarded only when
// set.
func (m *ServerlessManager) StartReplication(ctx context.Context, configARN, startType, cdcStartTime, cdcStartPosition, cdcStopPosition string) (*Result, error) {
	if !validStartTypes[startType] {
		return nil, invalidParamf("Invalid start type: %s. Must be one of: start-replication, resume-processing, reload-target", startType)
	}
	params := map[string]any{
		"ReplicationConfigArn": configARN,
		"StartReplicationType": startType,
	}
	if cdcStartTime != "" {
		params["CdcStartTime"] = cdcStartTime
	}
	if cdcStartPosition != "" {
		params["CdcStartPosition"] = cdcStartPosition
	}
	if cdcStopPosition != "" {
		params["CdcStopPosition"] = cdcStopPosition
	}
	return m.mutate(ctx, mutationSpec{
		operation:   "start_replication",
		responseKey: "Replication",
		resultKey:   "replication",
		message:     "Replication started with type: " + startType,
	}, params)
}

// StopReplication stops a running serverless replication.
func (m *ServerlessManager) StopReplication(ctx context.Context, configARN string) (*Result, error) {
	return m.mutate(ctx, mutationSpec{
		operation:   "stop_replication",
		responseKey: "Replication",
		resultKey:   "replication",
		message:     "Replication stop initiated",
	}, map[string]any{"ReplicationConfigArn": configARN})
}
