package dms

import (
	"context"
	"errors"
	"time"

	"github.com/dmsmcp/dmsmcp/pkg/cache"
	"github.com/dmsmcp/dmsmcp/pkg/defaults"
	"github.com/dmsmcp/dmsmcp/pkg/dmsapi"
	"github.com/dmsmcp/dmsmcp/pkg/logging"
	"github.com/dmsmcp/dmsmcp/pkg/retry"
)

// connectionStatus values reported by the service. Anything outside the two
// terminal values keeps the poll loop going.
const (
	statusSuccessful = "successful"
	statusFailed     = "failed"
	statusTesting    = "testing"
)

// ConnectionTester runs endpoint connection tests: it issues the initiating
// call, polls the describe call until a terminal status or the attempt
// budget runs out, and optionally caches results per (instance, endpoint)
// pair for five minutes.
type ConnectionTester struct {
	manager
	cache *cache.Store[*Result] // nil when caching is disabled

	pollCfg retry.Config
	sleeper retry.Sleeper
}

// TesterOption customizes a ConnectionTester.
type TesterOption func(*ConnectionTester)

// WithPolling overrides the poll attempt budget and interval.
func WithPolling(attempts int, interval time.Duration) TesterOption {
	return func(t *ConnectionTester) {
		t.pollCfg = retry.PollConfig(attempts, interval)
	}
}

// WithSleeper injects the sleeper used between poll attempts. Tests use
// this to run the loop without real delays.
func WithSleeper(s retry.Sleeper) TesterOption {
	return func(t *ConnectionTester) { t.sleeper = s }
}

// WithClock injects the cache clock. No effect when caching is disabled.
func WithClock(now func() time.Time) TesterOption {
	return func(t *ConnectionTester) {
		if t.cache != nil {
			t.cache = cache.NewWithClock[*Result](defaults.ConnectionCacheTTL, now)
		}
	}
}

type noopSleeper struct{}

func (noopSleeper) Sleep(context.Context, time.Duration) error { return nil }

// NewConnectionTester creates a ConnectionTester over the given gateway.
func NewConnectionTester(client dmsapi.Invoker, enableCaching bool, opts ...TesterOption) *ConnectionTester {
	t := &ConnectionTester{
		manager: manager{client: client},
		pollCfg: retry.PollConfig(defaults.ConnectionPollAttempts, defaults.ConnectionPollInterval),
		sleeper: nil,
	}
	if enableCaching {
		t.cache = cache.New[*Result](defaults.ConnectionCacheTTL)
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func cacheKey(instanceARN, endpointARN string) string {
	return instanceARN + ":" + endpointARN
}

// TestConnection tests connectivity between a replication instance and an
// endpoint. A cached non-expired result for the pair is returned without
// any network call. Otherwise the test is initiated and its status polled
// until it turns successful or failed; when the attempt budget runs out
// first, the last observed status is returned as-is so the caller decides
// what a lingering "testing" means.
func (t *ConnectionTester) TestConnection(ctx context.Context, instanceARN, endpointARN string) (*Result, error) {
	key := cacheKey(instanceARN, endpointARN)
	if t.cache != nil {
		if res, ok := t.cache.Get(key); ok {
			logging.Debug("ConnectionTester", "cache hit for %s", key)
			return res, nil
		}
	}

	resp, err := t.client.CallAPI(ctx, "test_connection", map[string]any{
		"ReplicationInstanceArn": instanceARN,
		"EndpointArn":            endpointARN,
	})
	if err != nil {
		return nil, err
	}
	conn := asMap(resp["Connection"])

	if status, _ := conn["Status"].(string); status != statusSuccessful && status != statusFailed {
		conn, err = t.pollConnection(ctx, instanceARN, endpointARN, conn)
		if err != nil {
			return nil, err
		}
	}

	res := connectionResult(conn)
	if t.cache != nil {
		t.cache.Put(key, res)
	}
	return res, nil
}

// pollConnection polls describe_connections until the connection reaches a
// terminal status or the budget is exhausted. It returns the last observed
// connection record; a describe page with zero records counts against the
// budget without updating it.
func (t *ConnectionTester) pollConnection(ctx context.Context, instanceARN, endpointARN string, last map[string]any) (map[string]any, error) {
	filters := []Filter{
		{Name: "endpoint-arn", Values: []string{endpointARN}},
		{Name: "replication-instance-arn", Values: []string{instanceARN}},
	}

	poll := func() error {
		resp, err := t.client.CallAPI(ctx, "describe_connections", map[string]any{"Filters": filters})
		if err != nil {
			return retry.Stop(err)
		}
		conns := mapSlice(resp["Connections"])
		if len(conns) == 0 {
			return retry.ErrNotReady
		}
		last = conns[0]
		if status, _ := last["Status"].(string); status == statusSuccessful || status == statusFailed {
			return nil
		}
		return retry.ErrNotReady
	}

	var err error
	if t.sleeper != nil {
		err = retry.DoWithSleeper(ctx, t.pollCfg, poll, t.sleeper)
	} else {
		err = retry.Do(ctx, t.pollCfg, poll)
	}
	if err != nil && !errors.Is(err, retry.ErrNotReady) {
		return nil, err
	}
	return last, nil
}

// connectionResult builds the envelope for a final connection record.
// success tracks the successful status only; a soft-timeout still in
// testing yields success=false with no error attached.
func connectionResult(conn map[string]any) *Result {
	status, _ := conn["Status"].(string)
	if status == "" {
		status = statusTesting
	}
	data := map[string]any{
		"status":                          status,
		"endpoint_identifier":             conn["EndpointIdentifier"],
		"replication_instance_identifier": conn["ReplicationInstanceIdentifier"],
	}
	if status == statusSuccessful {
		return okResult(data)
	}
	if status == statusFailed {
		var message *string
		if msg, ok := conn["LastFailureMessage"].(string); ok {
			message = &msg
		}
		return failResult(data, message)
	}
	return &Result{Success: false, Data: data, Error: nil}
}

// ListConnectionTests lists connection test records.
func (t *ConnectionTester) ListConnectionTests(ctx context.Context, opts ListOptions) (*Result, error) {
	return t.pagedList(ctx, listSpec{
		operation:   "describe_connections",
		responseKey: "Connections",
		resultKey:   "connections",
		format:      formatResource,
	}, opts, nil)
}

// DeleteConnection deletes the connection record between an endpoint and a
// replication instance and evicts any cached test result for the pair.
func (t *ConnectionTester) DeleteConnection(ctx context.Context, endpointARN, instanceARN string) (*Result, error) {
	res, err := t.mutate(ctx, mutationSpec{
		operation:   "delete_connection",
		responseKey: "Connection",
		resultKey:   "connection",
		message:     "Connection deleted successfully",
	}, map[string]any{
		"EndpointArn":            endpointARN,
		"ReplicationInstanceArn": instanceARN,
	})
	if err != nil {
		return nil, err
	}
	if t.cache != nil {
		t.cache.Evict(cacheKey(instanceARN, endpointARN))
	}
	return res, nil
}

// ClearCache drops every cached connection test result.
func (t *ConnectionTester) ClearCache() {
	if t.cache != nil {
		t.cache.Clear()
	}
}

// CacheLen reports how many results are cached.
func (t *ConnectionTester) CacheLen() int {
	if t.cache == nil {
		return 0
	}
	return t.cache.Len()
}
