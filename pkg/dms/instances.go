package dms

import (
	"context"

	"github.com/dmsmcp/dmsmcp/pkg/defaults"
	"github.com/dmsmcp/dmsmcp/pkg/dmsapi"
)

// InstanceManager covers replication instance operations.
type InstanceManager struct {
	manager
}

// NewInstanceManager creates an InstanceManager over the given gateway.
func NewInstanceManager(client dmsapi.Invoker) *InstanceManager {
	return &InstanceManager{manager{client: client}}
}

// ListInstances lists replication instances.
func (m *InstanceManager) ListInstances(ctx context.Context, opts ListOptions) (*Result, error) {
	return m.pagedList(ctx, listSpec{
		operation:   "describe_replication_instances",
		responseKey: "ReplicationInstances",
		resultKey:   "instances",
		format:      formatResource,
	}, opts, nil)
}

// GetInstanceDetails looks up a single replication instance by ARN.
func (m *InstanceManager) GetInstanceDetails(ctx context.Context, instanceARN string) (*Result, error) {
	resp, err := m.client.CallAPI(ctx, "describe_replication_instances", map[string]any{
		"Filters": []Filter{{Name: "replication-instance-arn", Values: []string{instanceARN}}},
	})
	if err != nil {
		return nil, err
	}
	instances := mapSlice(resp["ReplicationInstances"])
	if len(instances) == 0 {
		return nil, notFoundf("Replication instance not found: %s", instanceARN)
	}
	return okResult(formatResource(instances[0])), nil
}

// CreateInstance provisions a replication instance. params carries AWS
// parameter names (ReplicationInstanceIdentifier, ReplicationInstanceClass,
// AllocatedStorage, ...).
func (m *InstanceManager) CreateInstance(ctx context.Context, params map[string]any) (*Result, error) {
	return m.mutate(ctx, mutationSpec{
		operation:   "create_replication_instance",
		required:    []string{"ReplicationInstanceIdentifier", "ReplicationInstanceClass"},
		responseKey: "ReplicationInstance",
		resultKey:   "instance",
		message:     "Replication instance creation initiated",
		validate: func(p map[string]any) error {
			class, _ := p["ReplicationInstanceClass"].(string)
			if !ValidateInstanceClass(class) {
				return invalidParamf("Invalid instance class: %s", class)
			}
			return nil
		},
	}, params)
}

// ModifyInstance changes instance attributes. params must include
// ReplicationInstanceArn.
func (m *InstanceManager) ModifyInstance(ctx context.Context, params map[string]any) (*Result, error) {
	return m.mutate(ctx, mutationSpec{
		operation:   "modify_replication_instance",
		required:    []string{"ReplicationInstanceArn"},
		responseKey: "ReplicationInstance",
		resultKey:   "instance",
		message:     "Instance modified successfully",
	}, params)
}

// DeleteInstance deletes the instance with the given ARN.
func (m *InstanceManager) DeleteInstance(ctx context.Context, instanceARN string) (*Result, error) {
	return m.mutate(ctx, mutationSpec{
		operation:   "delete_replication_instance",
		responseKey: "ReplicationInstance",
		resultKey:   "instance",
		message:     "Instance deleted successfully",
	}, map[string]any{"ReplicationInstanceArn": instanceARN})
}

// RebootInstance reboots the instance, optionally with a forced failover.
func (m *InstanceManager) RebootInstance(ctx context.Context, instanceARN string, forceFailover bool) (*Result, error) {
	params := map[string]any{"ReplicationInstanceArn": instanceARN}
	if forceFailover {
		params["ForceFailover"] = true
	}
	return m.mutate(ctx, mutationSpec{
		operation:   "reboot_replication_instance",
		responseKey: "ReplicationInstance",
		resultKey:   "instance",
		message:     "Instance reboot initiated",
	}, params)
}

// ListOrderableInstances lists the orderable replication instance types.
func (m *InstanceManager) ListOrderableInstances(ctx context.Context, opts ListOptions) (*Result, error) {
	return m.pagedList(ctx, listSpec{
		operation:   "describe_orderable_replication_instances",
		responseKey: "OrderableReplicationInstances",
		resultKey:   "orderable_instances",
		format:      formatResource,
	}, opts, nil)
}

// GetTaskLogs lists task log metadata for an instance.
func (m *InstanceManager) GetTaskLogs(ctx context.Context, instanceARN string, maxResults int, marker string) (*Result, error) {
	params := map[string]any{"ReplicationInstanceArn": instanceARN}
	if maxResults == 0 {
		maxResults = defaults.MaxResults
	}
	params["MaxRecords"] = maxResults
	if marker != "" {
		params["Marker"] = marker
	}
	resp, err := m.client.CallAPI(ctx, "describe_replication_instance_task_logs", params)
	if err != nil {
		return nil, err
	}
	logs := mapSlice(resp["ReplicationInstanceTaskLogs"])
	data := map[string]any{
		"count":     len(logs),
		"task_logs": logs,
	}
	if tok, present := resp["Marker"]; present {
		data["next_marker"] = tok
	}
	return okResult(data), nil
}

// GetAccountAttributes describes account-level DMS quotas.
func (m *InstanceManager) GetAccountAttributes(ctx context.Context) (*Result, error) {
	resp, err := m.client.CallAPI(ctx, "describe_account_attributes", nil)
	if err != nil {
		return nil, err
	}
	quotas := mapSlice(resp["AccountQuotas"])
	return okResult(map[string]any{
		"count":                     len(quotas),
		"account_quotas":            formatResources(quotas),
		"unique_account_identifier": resp["UniqueAccountIdentifier"],
	}), nil
}
