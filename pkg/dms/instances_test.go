package dms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetInstanceDetails(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{"ReplicationInstances": []any{
			map[string]any{"ReplicationInstanceIdentifier": "test-instance"},
		}},
	}}
	m := NewInstanceManager(inv)

	res, err := m.GetInstanceDetails(context.Background(), "arn:aws:dms:us-east-1:123:rep:test")
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "test-instance", res.Data["replication_instance_identifier"])

	call := inv.lastCall(t)
	assert.Equal(t, "describe_replication_instances", call.Operation)
	assert.Equal(t, []Filter{{
		Name:   "replication-instance-arn",
		Values: []string{"arn:aws:dms:us-east-1:123:rep:test"},
	}}, call.Params["Filters"])
}

func TestGetInstanceDetailsNotFound(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{"ReplicationInstances": []any{}},
	}}
	m := NewInstanceManager(inv)

	_, err := m.GetInstanceDetails(context.Background(), "arn:aws:dms:us-east-1:123:rep:test")

	var notFound *ResourceNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, notFound.Message, "Replication instance not found")
}
