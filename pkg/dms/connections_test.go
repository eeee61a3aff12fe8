package dms

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSleeper counts sleeps without waiting.
type countingSleeper struct {
	count int
}

func (s *countingSleeper) Sleep(context.Context, time.Duration) error {
	s.count++
	return nil
}

func testingConn(status string) map[string]any {
	return map[string]any{
		"Status":                        status,
		"EndpointIdentifier":            "my-endpoint",
		"ReplicationInstanceIdentifier": "my-instance",
	}
}

func TestTestConnectionImmediateSuccess(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{"Connection": testingConn("successful")},
	}}
	tester := NewConnectionTester(inv, false)

	res, err := tester.TestConnection(context.Background(), "inst-arn", "ep-arn")
	require.NoError(t, err)

	require.Len(t, inv.calls, 1, "terminal status must not trigger polling")
	assert.Equal(t, "test_connection", inv.calls[0].Operation)
	assert.Equal(t, "inst-arn", inv.calls[0].Params["ReplicationInstanceArn"])
	assert.Equal(t, "ep-arn", inv.calls[0].Params["EndpointArn"])

	assert.True(t, res.Success)
	assert.Nil(t, res.Error)
	assert.Equal(t, "successful", res.Data["status"])
	assert.Equal(t, "my-endpoint", res.Data["endpoint_identifier"])
	assert.Equal(t, "my-instance", res.Data["replication_instance_identifier"])
}

func TestTestConnectionPollsUntilSuccess(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{"Connection": testingConn("testing")},
		{"Connections": []any{testingConn("testing")}},
		{"Connections": []any{testingConn("successful")}},
	}}
	sleeper := &countingSleeper{}
	tester := NewConnectionTester(inv, false, WithSleeper(sleeper))

	res, err := tester.TestConnection(context.Background(), "inst-arn", "ep-arn")
	require.NoError(t, err)

	require.Len(t, inv.calls, 3)
	assert.Equal(t, "describe_connections", inv.calls[1].Operation)
	filters := inv.calls[1].Params["Filters"].([]Filter)
	require.Len(t, filters, 2)
	assert.Equal(t, "endpoint-arn", filters[0].Name)
	assert.Equal(t, []string{"ep-arn"}, filters[0].Values)
	assert.Equal(t, "replication-instance-arn", filters[1].Name)
	assert.Equal(t, []string{"inst-arn"}, filters[1].Values)

	assert.True(t, res.Success)
	assert.Equal(t, "successful", res.Data["status"])
	assert.Equal(t, 1, sleeper.count)
}

func TestTestConnectionFailureCarriesMessage(t *testing.T) {
	conn := testingConn("failed")
	conn["LastFailureMessage"] = "Connection timed out"
	inv := &fakeInvoker{responses: []map[string]any{{"Connection": conn}}}
	tester := NewConnectionTester(inv, false)

	res, err := tester.TestConnection(context.Background(), "inst-arn", "ep-arn")
	require.NoError(t, err)

	assert.False(t, res.Success)
	require.NotNil(t, res.Error)
	require.NotNil(t, res.Error.Message)
	assert.Equal(t, "Connection timed out", *res.Error.Message)
	assert.Equal(t, "failed", res.Data["status"])
}

func TestTestConnectionFailureWithoutMessage(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{"Connection": testingConn("failed")},
	}}
	tester := NewConnectionTester(inv, false)

	res, err := tester.TestConnection(context.Background(), "inst-arn", "ep-arn")
	require.NoError(t, err)

	assert.False(t, res.Success)
	require.NotNil(t, res.Error)
	assert.Nil(t, res.Error.Message, "absent upstream message must stay null")
}

func TestTestConnectionSoftTimeout(t *testing.T) {
	// The last queued response repeats, so every poll sees "testing".
	inv := &fakeInvoker{responses: []map[string]any{
		{"Connection": testingConn("testing")},
		{"Connections": []any{testingConn("testing")}},
	}}
	sleeper := &countingSleeper{}
	tester := NewConnectionTester(inv, false, WithSleeper(sleeper))

	res, err := tester.TestConnection(context.Background(), "inst-arn", "ep-arn")
	require.NoError(t, err, "exhausting the poll budget is not an error")

	// One initiating call plus the full poll budget.
	assert.Len(t, inv.calls, 1+12)
	assert.Equal(t, 11, sleeper.count)

	assert.False(t, res.Success)
	assert.Nil(t, res.Error, "soft timeout attaches no error")
	assert.Equal(t, "testing", res.Data["status"])
}

func TestTestConnectionCustomPollBudget(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{"Connection": testingConn("testing")},
		{"Connections": []any{testingConn("testing")}},
	}}
	sleeper := &countingSleeper{}
	tester := NewConnectionTester(inv, false, WithPolling(3, time.Millisecond), WithSleeper(sleeper))

	res, err := tester.TestConnection(context.Background(), "inst-arn", "ep-arn")
	require.NoError(t, err)

	assert.Len(t, inv.calls, 1+3)
	assert.False(t, res.Success)
}

func TestTestConnectionEmptyDescribePageKeepsPolling(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{"Connection": testingConn("testing")},
		{"Connections": []any{}},
		{"Connections": []any{testingConn("successful")}},
	}}
	tester := NewConnectionTester(inv, false, WithSleeper(&countingSleeper{}))

	res, err := tester.TestConnection(context.Background(), "inst-arn", "ep-arn")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Len(t, inv.calls, 3)
}

func TestTestConnectionPollTransportErrorPropagates(t *testing.T) {
	boom := errors.New("throttled")
	inv := &fakeInvoker{responses: []map[string]any{
		{"Connection": testingConn("testing")},
	}}
	// The initiating call succeeds, every poll fails.
	tester := NewConnectionTester(&failAfter{inner: inv, after: 1, err: boom}, false, WithSleeper(&countingSleeper{}))

	_, err := tester.TestConnection(context.Background(), "inst-arn", "ep-arn")
	assert.ErrorIs(t, err, boom)
}

// failAfter delegates the first n calls to inner, then fails every call.
type failAfter struct {
	inner *fakeInvoker
	after int
	err   error
	seen  int
}

func (f *failAfter) CallAPI(ctx context.Context, operation string, params map[string]any) (map[string]any, error) {
	f.seen++
	if f.seen > f.after {
		return nil, f.err
	}
	return f.inner.CallAPI(ctx, operation, params)
}

func TestTestConnectionCachesResult(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{"Connection": testingConn("successful")},
	}}
	tester := NewConnectionTester(inv, true)

	first, err := tester.TestConnection(context.Background(), "inst-arn", "ep-arn")
	require.NoError(t, err)
	second, err := tester.TestConnection(context.Background(), "inst-arn", "ep-arn")
	require.NoError(t, err)

	assert.Len(t, inv.calls, 1, "second test must be served from cache")
	assert.Same(t, first, second)
	assert.Equal(t, 1, tester.CacheLen())
}

func TestTestConnectionCacheKeyedPerPair(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{"Connection": testingConn("successful")},
	}}
	tester := NewConnectionTester(inv, true)

	_, err := tester.TestConnection(context.Background(), "inst-arn", "ep-1")
	require.NoError(t, err)
	_, err = tester.TestConnection(context.Background(), "inst-arn", "ep-2")
	require.NoError(t, err)

	assert.Len(t, inv.calls, 2)
	assert.Equal(t, 2, tester.CacheLen())
}

func TestTestConnectionCacheExpires(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	inv := &fakeInvoker{responses: []map[string]any{
		{"Connection": testingConn("successful")},
	}}
	tester := NewConnectionTester(inv, true, WithClock(clock))

	_, err := tester.TestConnection(context.Background(), "inst-arn", "ep-arn")
	require.NoError(t, err)

	now = now.Add(5*time.Minute + time.Second)
	_, err = tester.TestConnection(context.Background(), "inst-arn", "ep-arn")
	require.NoError(t, err)

	assert.Len(t, inv.calls, 2, "expired entry must trigger a fresh test")
}

func TestTestConnectionCachingDisabled(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{"Connection": testingConn("successful")},
	}}
	tester := NewConnectionTester(inv, false)

	_, err := tester.TestConnection(context.Background(), "inst-arn", "ep-arn")
	require.NoError(t, err)
	_, err = tester.TestConnection(context.Background(), "inst-arn", "ep-arn")
	require.NoError(t, err)

	assert.Len(t, inv.calls, 2)
	assert.Equal(t, 0, tester.CacheLen())
}

func TestDeleteConnectionEvictsCache(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{"Connection": testingConn("successful")},
	}}
	tester := NewConnectionTester(inv, true)

	_, err := tester.TestConnection(context.Background(), "inst-arn", "ep-arn")
	require.NoError(t, err)
	require.Equal(t, 1, tester.CacheLen())

	res, err := tester.DeleteConnection(context.Background(), "ep-arn", "inst-arn")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Connection deleted successfully", res.Data["message"])
	assert.Equal(t, 0, tester.CacheLen())

	call := inv.lastCall(t)
	assert.Equal(t, "delete_connection", call.Operation)
	assert.Equal(t, "ep-arn", call.Params["EndpointArn"])
	assert.Equal(t, "inst-arn", call.Params["ReplicationInstanceArn"])
}

func TestClearCache(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{"Connection": testingConn("successful")},
	}}
	tester := NewConnectionTester(inv, true)

	_, err := tester.TestConnection(context.Background(), "inst-arn", "ep-arn")
	require.NoError(t, err)
	tester.ClearCache()
	assert.Equal(t, 0, tester.CacheLen())
}

func TestListConnectionTests(t *testing.T) {
	inv := &fakeInvoker{responses: []map[string]any{
		{"Connections": []any{testingConn("successful")}},
	}}
	tester := NewConnectionTester(inv, false)

	res, err := tester.ListConnectionTests(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Data["count"])
	conns := res.Data["connections"].([]map[string]any)
	require.Len(t, conns, 1)
	assert.Equal(t, "successful", conns[0]["status"])
}
