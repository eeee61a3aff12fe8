package dms

import (
	"context"

	"github.com/dmsmcp/dmsmcp/pkg/dmsapi"
)

// SubnetGroupManager covers replication subnet group operations.
type SubnetGroupManager struct {
	manager
}

// NewSubnetGroupManager creates a SubnetGroupManager over the given gateway.
func NewSubnetGroupManager(client dmsapi.Invoker) *SubnetGroupManager {
	return &SubnetGroupManager{manager{client: client}}
}

// CreateSubnetGroup creates a subnet group spanning the given subnets.
func (m *SubnetGroupManager) CreateSubnetGroup(ctx context.Context, identifier, description string, subnetIDs []string, tags []map[string]any) (*Result, error) {
	if len(subnetIDs) == 0 {
		return nil, invalidParamf("At least one subnet ID is required")
	}
	params := map[string]any{
		"ReplicationSubnetGroupIdentifier":  identifier,
		"ReplicationSubnetGroupDescription": description,
		"SubnetIds":                         subnetIDs,
	}
	if len(tags) > 0 {
		params["Tags"] = tags
	}
	return m.mutate(ctx, mutationSpec{
		operation:   "create_replication_subnet_group",
		responseKey: "ReplicationSubnetGroup",
		resultKey:   "subnet_group",
		message:     "Replication subnet group created successfully",
	}, params)
}

// ModifySubnetGroup changes a subnet group's description or membership.
// An empty subnetIDs slice leaves the membership untouched rather than
// clearing it.
func (m *SubnetGroupManager) ModifySubnetGroup(ctx context.Context, identifier, description string, subnetIDs []string) (*Result, error) {
	params := map[string]any{"ReplicationSubnetGroupIdentifier": identifier}
	if description != "" {
		params["ReplicationSubnetGroupDescription"] = description
	}
	if len(subnetIDs) > 0 {
		params["SubnetIds"] = subnetIDs
	}
	return m.mutate(ctx, mutationSpec{
		operation:   "modify_replication_subnet_group",
		responseKey: "ReplicationSubnetGroup",
		resultKey:   "subnet_group",
		message:     "Replication subnet group modified successfully",
	}, params)
}

// DeleteSubnetGroup deletes the named subnet group. The service returns no
// resource body, so the identifier is echoed back instead.
func (m *SubnetGroupManager) DeleteSubnetGroup(ctx context.Context, identifier string) (*Result, error) {
	_, err := m.client.CallAPI(ctx, "delete_replication_subnet_group", map[string]any{
		"ReplicationSubnetGroupIdentifier": identifier,
	})
	if err != nil {
		return nil, err
	}
	return okResult(map[string]any{
		"message":    "Replication subnet group deleted successfully",
		"identifier": identifier,
	}), nil
}

// ListSubnetGroups lists subnet groups.
func (m *SubnetGroupManager) ListSubnetGroups(ctx context.Context, opts ListOptions) (*Result, error) {
	return m.pagedList(ctx, listSpec{
		operation:   "describe_replication_subnet_groups",
		responseKey: "ReplicationSubnetGroups",
		resultKey:   "subnet_groups",
		format:      formatResource,
	}, opts, nil)
}
