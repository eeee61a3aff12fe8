package dms

import (
	"context"

	"github.com/dmsmcp/dmsmcp/pkg/dmsapi"
)

var validStartTypes = map[string]bool{
	"start-replication": true,
	"resume-processing": true,
	"reload-target":     true,
}

var validMigrationTypes = map[string]bool{
	"full-load":         true,
	"cdc":               true,
	"full-load-and-cdc": true,
}

// TaskManager covers replication task lifecycle operations.
type TaskManager struct {
	manager
	validateMappings bool
}

// NewTaskManager creates a TaskManager over the given gateway. The local
// table-mapping checker is on; SetMappingValidation turns it off.
func NewTaskManager(client dmsapi.Invoker) *TaskManager {
	return &TaskManager{manager: manager{client: client}, validateMappings: true}
}

// SetMappingValidation toggles the local table-mapping checker. When off,
// mapping documents go upstream unchecked and AWS reports any problems.
func (m *TaskManager) SetMappingValidation(enabled bool) {
	m.validateMappings = enabled
}

// ListTasks lists replication tasks. withoutSettings trims the bulky
// task settings document from each entry.
func (m *TaskManager) ListTasks(ctx context.Context, opts ListOptions, withoutSettings bool) (*Result, error) {
	var extra map[string]any
	if withoutSettings {
		extra = map[string]any{"WithoutSettings": true}
	}
	return m.pagedList(ctx, listSpec{
		operation:   "describe_replication_tasks",
		responseKey: "ReplicationTasks",
		resultKey:   "tasks",
		format:      formatResource,
	}, opts, extra)
}

// CreateTask creates a replication task. params carries AWS parameter
// names; TableMappings must be a JSON document and is validated locally
// before the call.
func (m *TaskManager) CreateTask(ctx context.Context, params map[string]any) (*Result, error) {
	return m.mutate(ctx, mutationSpec{
		operation: "create_replication_task",
		required: []string{
			"ReplicationTaskIdentifier",
			"SourceEndpointArn",
			"TargetEndpointArn",
			"ReplicationInstanceArn",
			"MigrationType",
			"TableMappings",
		},
		responseKey: "ReplicationTask",
		resultKey:   "task",
		message:     "Replication task created successfully",
		validate: func(p map[string]any) error {
			migType, _ := p["MigrationType"].(string)
			if !validMigrationTypes[migType] {
				return invalidParamf("Invalid migration type: %s. Must be one of: full-load, cdc, full-load-and-cdc", migType)
			}
			if !m.validateMappings {
				return nil
			}
			mappings, _ := p["TableMappings"].(string)
			if ok, msg := ValidateTableMappings(mappings); !ok {
				return invalidParamf("Invalid table mappings: %s", msg)
			}
			return nil
		},
	}, params)
}

// ModifyTask changes task attributes. params must include
// ReplicationTaskArn; TableMappings, when present, is validated.
func (m *TaskManager) ModifyTask(ctx context.Context, params map[string]any) (*Result, error) {
	return m.mutate(ctx, mutationSpec{
		operation:   "modify_replication_task",
		required:    []string{"ReplicationTaskArn"},
		responseKey: "ReplicationTask",
		resultKey:   "task",
		message:     "Replication task modified successfully",
		validate: func(p map[string]any) error {
			mappings, present := p["TableMappings"].(string)
			if !present || !m.validateMappings {
				return nil
			}
			if ok, msg := ValidateTableMappings(mappings); !ok {
				return invalidParamf("Invalid table mappings: %s", msg)
			}
			return nil
		},
	}, params)
}

// DeleteTask deletes the task with the given ARN.
func (m *TaskManager) DeleteTask(ctx context.Context, taskARN string) (*Result, error) {
	return m.mutate(ctx, mutationSpec{
		operation:   "delete_replication_task",
		responseKey: "ReplicationTask",
		resultKey:   "task",
		message:     "Replication task deleted successfully",
	}, map[string]any{"ReplicationTaskArn": taskARN})
}

// StartTask starts or resumes a task. startType must be one of
// start-replication, resume-processing, or reload-target. The CDC
// arguments are forwarded only when set.
func (m *TaskManager) StartTask(ctx context.Context, taskARN, startType, cdcStartPosition, cdcStartTime, cdcStopPosition string) (*Result, error) {
	if !validStartTypes[startType] {
		return nil, invalidParamf("Invalid start type: %s. Must be one of: start-replication, resume-processing, reload-target", startType)
	}
	params := map[string]any{
		"ReplicationTaskArn":       taskARN,
		"StartReplicationTaskType": startType,
	}
	if cdcStartPosition != "" {
		params["CdcStartPosition"] = cdcStartPosition
	}
	if cdcStartTime != "" {
		params["CdcStartTime"] = cdcStartTime
	}
	if cdcStopPosition != "" {
		params["CdcStopPosition"] = cdcStopPosition
	}
	return m.mutate(ctx, mutationSpec{
		operation:   "start_replication_task",
		responseKey: "ReplicationTask",
		resultKey:   "task",
		message:     "Replication task started with type: " + startType,
	}, params)
}

// StopTask stops a running task.
func (m *TaskManager) StopTask(ctx context.Context, taskARN string) (*Result, error) {
	return m.mutate(ctx, mutationSpec{
		operation:   "stop_replication_task",
		responseKey: "ReplicationTask",
		resultKey:   "task",
		message:     "Replication task stop initiated",
	}, map[string]any{"ReplicationTaskArn": taskARN})
}

// MoveTask moves a task to a different replication instance.
func (m *TaskManager) MoveTask(ctx context.Context, taskARN, targetInstanceARN string) (*Result, error) {
	return m.mutate(ctx, mutationSpec{
		operation:   "move_replication_task",
		responseKey: "ReplicationTask",
		resultKey:   "task",
		message:     "Replication task moved successfully",
	}, map[string]any{
		"ReplicationTaskArn":           taskARN,
		"TargetReplicationInstanceArn": targetInstanceARN,
	})
}
