package dms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEndpointAddsSecurityNote(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{"Endpoint": map[string]any{"EndpointArn": "ep-arn", "Status": "active"}},
	}}
	m := NewEndpointManager(inv)

	res, err := m.CreateEndpoint(context.Background(), map[string]any{
		"EndpointIdentifier": "my-endpoint",
		"EndpointType":       "source",
		"EngineName":         "mysql",
		"ServerName":         "db.example.com",
		"Port":               3306,
	})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "Endpoint created successfully", res.Data["message"])
	assert.Equal(t, endpointSecurityNote, res.Data["security_note"])
}

func TestCreateEndpointRejectsBadConfig(t *testing.T) {
	inv := &fakeInvoker{}
	m := NewEndpointManager(inv)

	_, err := m.CreateEndpoint(context.Background(), map[string]any{
		"EndpointIdentifier": "my-endpoint",
		"EndpointType":       "source",
		"EngineName":         "foxpro",
	})

	var invalid *InvalidParameterError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "Invalid endpoint configuration: Unsupported engine: foxpro", invalid.Message)
	assert.Empty(t, inv.calls)
}

func TestGetRefreshStatusDefaultsUnknown(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{{}}}
	m := NewEndpointManager(inv)

	res, err := m.GetRefreshStatus(context.Background(), "ep-arn")
	require.NoError(t, err)
	assert.Equal(t, "unknown", res.Data["status"])
}

func TestListSchemas(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{"Schemas": []any{"public", "sales"}, "Marker": "tok"},
	}}
	m := NewEndpointManager(inv)

	res, err := m.ListSchemas(context.Background(), "ep-arn", 0, "")
	require.NoError(t, err)

	call := inv.lastCall(t)
	assert.Equal(t, "describe_schemas", call.Operation)
	assert.Equal(t, 100, call.Params["MaxRecords"])

	assert.Equal(t, "ep-arn", res.Data["endpoint_arn"])
	assert.Equal(t, 2, res.Data["count"])
	assert.Equal(t, []any{"public", "sales"}, res.Data["schemas"])
	assert.Equal(t, "tok", res.Data["next_marker"])
}

func TestListEngineVersionsFilterByEngine(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{{"EngineVersions": []any{}}}}
	m := NewEndpointManager(inv)

	_, err := m.ListEngineVersions(context.Background(), "mysql", ListOptions{})
	require.NoError(t, err)

	filters := inv.lastCall(t).Params["Filters"].([]Filter)
	require.Len(t, filters, 1)
	assert.Equal(t, "engine-name", filters[0].Name)
	assert.Equal(t, []string{"mysql"}, filters[0].Values)

	_, err = m.ListEngineVersions(context.Background(), "", ListOptions{})
	require.NoError(t, err)
	assert.NotContains(t, inv.lastCall(t).Params, "Filters")
}

func TestGetEngineSettingsKnownEngine(t *testing.T) {
	m := NewEndpointManager(&fakeInvoker{})

	res, err := m.GetEngineSettings(context.Background(), "PostgreS")
	require.NoError(t, err)

	assert.Equal(t, true, res.Data["known"])
	assert.Equal(t, 5432, res.Data["default_port"])
	assert.Equal(t, true, res.Data["ssl_supported"])
	assert.Equal(t, true, res.Data["requires_server_name"])
}

func TestGetEngineSettingsObjectStoreHasNoPort(t *testing.T) {
	m := NewEndpointManager(&fakeInvoker{})

	res, err := m.GetEngineSettings(context.Background(), "s3")
	require.NoError(t, err)

	assert.Equal(t, true, res.Data["known"])
	assert.Nil(t, res.Data["default_port"])
	assert.Equal(t, false, res.Data["ssl_supported"])
	assert.Equal(t, false, res.Data["requires_server_name"])
}

func TestGetEngineSettingsUnknownEngine(t *testing.T) {
	m := NewEndpointManager(&fakeInvoker{})

	res, err := m.GetEngineSettings(context.Background(), "foxpro")
	require.NoError(t, err)

	assert.True(t, res.Success, "unknown engines are reported, not rejected")
	assert.Equal(t, false, res.Data["known"])
	assert.Nil(t, res.Data["default_port"])
	assert.Equal(t, true, res.Data["requires_server_name"])
}
