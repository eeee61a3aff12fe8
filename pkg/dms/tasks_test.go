package dms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validMappings = `{"rules": [{"rule-type": "selection", "rule-id": "1", "rule-action": "include", "object-locator": {"schema-name": "%"}}]}`

func taskParams() map[string]any {
	return map[string]any{
		"ReplicationTaskIdentifier": "my-task",
		"SourceEndpointArn":         "src-arn",
		"TargetEndpointArn":         "tgt-arn",
		"ReplicationInstanceArn":    "inst-arn",
		"MigrationType":             "full-load",
		"TableMappings":             validMappings,
	}
}

func TestCreateTask(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{"ReplicationTask": map[string]any{"ReplicationTaskArn": "task-arn", "Status": "creating"}},
	}}
	m := NewTaskManager(inv)

	res, err := m.CreateTask(context.Background(), taskParams())
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "Replication task created successfully", res.Data["message"])
	task := res.Data["task"].(map[string]any)
	assert.Equal(t, "task-arn", task["replication_task_arn"])
}

func TestCreateTaskInvalidMigrationType(t *testing.T) {
	inv := &fakeInvoker{}
	m := NewTaskManager(inv)

	params := taskParams()
	params["MigrationType"] = "incremental"
	_, err := m.CreateTask(context.Background(), params)

	var invalid *InvalidParameterError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "Invalid migration type: incremental. Must be one of: full-load, cdc, full-load-and-cdc", invalid.Message)
	assert.Empty(t, inv.calls)
}

func TestCreateTaskInvalidMappings(t *testing.T) {
	inv := &fakeInvoker{}
	m := NewTaskManager(inv)

	params := taskParams()
	params["TableMappings"] = `{"rules": []}`
	_, err := m.CreateTask(context.Background(), params)

	var invalid *InvalidParameterError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "Invalid table mappings: At least one rule is required", invalid.Message)
	assert.Empty(t, inv.calls)
}

func TestCreateTaskMappingValidationDisabled(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{"ReplicationTask": map[string]any{}},
	}}
	m := NewTaskManager(inv)
	m.SetMappingValidation(false)

	params := taskParams()
	params["TableMappings"] = `{"rules": []}`
	res, err := m.CreateTask(context.Background(), params)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Len(t, inv.calls, 1)
}

func TestModifyTaskValidatesMappingsOnlyWhenPresent(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{"ReplicationTask": map[string]any{}},
	}}
	m := NewTaskManager(inv)

	res, err := m.ModifyTask(context.Background(), map[string]any{
		"ReplicationTaskArn": "task-arn",
	})
	require.NoError(t, err)
	assert.True(t, res.Success)

	_, err = m.ModifyTask(context.Background(), map[string]any{
		"ReplicationTaskArn": "task-arn",
		"TableMappings":      "not json",
	})
	var invalid *InvalidParameterError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "Invalid table mappings: Invalid JSON in table mappings", invalid.Message)
}

func TestStartTask(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{"ReplicationTask": map[string]any{"Status": "starting"}},
	}}
	m := NewTaskManager(inv)

	res, err := m.StartTask(context.Background(), "task-arn", "start-replication", "", "", "")
	require.NoError(t, err)

	assert.Equal(t, "Replication task started with type: start-replication", res.Data["message"])
	call := inv.lastCall(t)
	assert.Equal(t, "start_replication_task", call.Operation)
	assert.Equal(t, "start-replication", call.Params["StartReplicationTaskType"])
	assert.NotContains(t, call.Params, "CdcStartPosition")
	assert.NotContains(t, call.Params, "CdcStartTime")
	assert.NotContains(t, call.Params, "CdcStopPosition")
}

func TestStartTaskInvalidType(t *testing.T) {
	inv := &fakeInvoker{}
	m := NewTaskManager(inv)

	_, err := m.StartTask(context.Background(), "task-arn", "warm-start", "", "", "")

	var invalid *InvalidParameterError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "Invalid start type: warm-start. Must be one of: start-replication, resume-processing, reload-target", invalid.Message)
	assert.Empty(t, inv.calls)
}

func TestStartTaskForwardsCdcArguments(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{"ReplicationTask": map[string]any{}},
	}}
	m := NewTaskManager(inv)

	_, err := m.StartTask(context.Background(), "task-arn", "resume-processing",
		"checkpoint:V1#27", "2024-01-01T00:00:00Z", "server_time:2024-01-02T00:00:00")
	require.NoError(t, err)

	call := inv.lastCall(t)
	assert.Equal(t, "checkpoint:V1#27", call.Params["CdcStartPosition"])
	assert.Equal(t, "2024-01-01T00:00:00Z", call.Params["CdcStartTime"])
	assert.Equal(t, "server_time:2024-01-02T00:00:00", call.Params["CdcStopPosition"])
}

func TestListTasksWithoutSettings(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{{"ReplicationTasks": []any{}}}}
	m := NewTaskManager(inv)

	_, err := m.ListTasks(context.Background(), ListOptions{}, true)
	require.NoError(t, err)
	assert.Equal(t, true, inv.lastCall(t).Params["WithoutSettings"])

	_, err = m.ListTasks(context.Background(), ListOptions{}, false)
	require.NoError(t, err)
	assert.NotContains(t, inv.lastCall(t).Params, "WithoutSettings")
}

func TestMoveTask(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{"ReplicationTask": map[string]any{}},
	}}
	m := NewTaskManager(inv)

	res, err := m.MoveTask(context.Background(), "task-arn", "new-inst-arn")
	require.NoError(t, err)

	assert.Equal(t, "Replication task moved successfully", res.Data["message"])
	call := inv.lastCall(t)
	assert.Equal(t, "move_replication_task", call.Operation)
	assert.Equal(t, "new-inst-arn", call.Params["TargetReplicationInstanceArn"])
}
