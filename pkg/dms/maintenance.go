package dms

import (
	"context"
	"fmt"

	"github.com/dmsmcp/dmsmcp/pkg/dmsapi"
)

// MaintenanceManager covers pending maintenance actions.
type MaintenanceManager struct {
	manager
}

// NewMaintenanceManager creates a MaintenanceManager over the given gateway.
func NewMaintenanceManager(client dmsapi.Invoker) *MaintenanceManager {
	return &MaintenanceManager{manager{client: client}}
}

// ApplyPendingMaintenanceAction opts a resource into (or out of) a pending
// maintenance action. optInType is immediate, next-maintenance, or
// undo-opt-in.
func (m *MaintenanceManager) ApplyPendingMaintenanceAction(ctx context.Context, instanceARN, applyAction, optInType string) (*Result, error) {
	return m.mutate(ctx, mutationSpec{
		operation:   "apply_pending_maintenance_action",
		responseKey: "ResourcePendingMaintenanceActions",
		resultKey:   "resource",
		message:     fmt.Sprintf("Maintenance action '%s' applied with opt-in type '%s'", applyAction, optInType),
	}, map[string]any{
		"ReplicationInstanceArn": instanceARN,
		"ApplyAction":            applyAction,
		"OptInType":              optInType,
	})
}

// ListPendingMaintenanceActions lists pending maintenance actions,
// optionally for a single replication instance.
func (m *MaintenanceManager) ListPendingMaintenanceActions(ctx context.Context, instanceARN string, opts ListOptions) (*Result, error) {
	var extra map[string]any
	if instanceARN != "" {
		extra = map[string]any{"ReplicationInstanceArn": instanceARN}
	}
	return m.pagedList(ctx, listSpec{
		operation:   "describe_pending_maintenance_actions",
		responseKey: "PendingMaintenanceActions",
		resultKey:   "pending_maintenance_actions",
		format:      formatResource,
	}, opts, extra)
}
