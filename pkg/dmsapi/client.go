package dmsapi

import (
	"context"
	"fmt"
	"sort"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	dms "github.com/aws/aws-sdk-go-v2/service/databasemigrationservice"
	"github.com/dmsmcp/dmsmcp/pkg/config"
	"github.com/dmsmcp/dmsmcp/pkg/defaults"
	"github.com/dmsmcp/dmsmcp/pkg/logging"
	"golang.org/x/time/rate"
)

// Client is the production Invoker backed by the aws-sdk-go-v2 DMS client.
// Outgoing calls are paced by a token-bucket limiter so agent-driven bursts
// stay under AWS API throttling limits.
type Client struct {
	api     *dms.Client
	limiter *rate.Limiter
	ops     map[string]apiFunc
}

var _ Invoker = (*Client)(nil)

// New loads the AWS configuration for the configured region/profile and
// returns a ready Client.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSProfile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(cfg.AWSProfile))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	c := &Client{
		api:     dms.NewFromConfig(awsCfg),
		limiter: rate.NewLimiter(rate.Limit(defaults.APIRequestsPerSecond), defaults.APIBurst),
	}
	c.ops = c.operationTable()
	return c, nil
}

// NewFromAPI wraps an already-constructed SDK client. Used by tests and by
// callers that manage AWS credentials themselves.
func NewFromAPI(api *dms.Client) *Client {
	c := &Client{
		api:     api,
		limiter: rate.NewLimiter(rate.Limit(defaults.APIRequestsPerSecond), defaults.APIBurst),
	}
	c.ops = c.operationTable()
	return c
}

// CallAPI implements Invoker.
func (c *Client) CallAPI(ctx context.Context, operation string, params map[string]any) (map[string]any, error) {
	fn, ok := c.ops[operation]
	if !ok {
		return nil, fmt.Errorf("dmsapi: unknown operation %q", operation)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	logging.Debug("Gateway", "calling %s params=%v", operation, logging.MaskSecrets(params))
	resp, err := fn(ctx, params)
	if err != nil {
		logging.Debug("Gateway", "%s failed: %v", operation, err)
		return nil, err
	}
	return resp, nil
}

// Operations returns the sorted list of dispatchable operation names.
func (c *Client) Operations() []string {
	names := make([]string, 0, len(c.ops))
	for name := range c.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
