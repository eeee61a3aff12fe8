package dms

import (
	"context"
	"strings"

	"github.com/dmsmcp/dmsmcp/pkg/defaults"
	"github.com/dmsmcp/dmsmcp/pkg/dmsapi"
)

// endpointSecurityNote is attached to successful endpoint creations to
// steer callers toward Secrets Manager instead of inline passwords.
const endpointSecurityNote = "Consider using AWS Secrets Manager for credentials instead of inline passwords"

// EndpointManager covers source/target endpoint operations.
type EndpointManager struct {
	manager
}

// NewEndpointManager creates an EndpointManager over the given gateway.
func NewEndpointManager(client dmsapi.Invoker) *EndpointManager {
	return &EndpointManager{manager{client: client}}
}

// ListEndpoints lists endpoints.
func (m *EndpointManager) ListEndpoints(ctx context.Context, opts ListOptions) (*Result, error) {
	return m.pagedList(ctx, listSpec{
		operation:   "describe_endpoints",
		responseKey: "Endpoints",
		resultKey:   "endpoints",
		format:      formatResource,
	}, opts, nil)
}

// CreateEndpoint creates an endpoint. params carries AWS parameter names
// (EndpointIdentifier, EndpointType, EngineName, ServerName, Port, ...).
// Connection settings are validated before the call is made.
func (m *EndpointManager) CreateEndpoint(ctx context.Context, params map[string]any) (*Result, error) {
	res, err := m.mutate(ctx, mutationSpec{
		operation:   "create_endpoint",
		required:    []string{"EndpointIdentifier", "EndpointType", "EngineName"},
		responseKey: "Endpoint",
		resultKey:   "endpoint",
		message:     "Endpoint created successfully",
		validate: func(p map[string]any) error {
			if ok, msg := ValidateEndpointConfig(p); !ok {
				return invalidParamf("Invalid endpoint configuration: %s", msg)
			}
			return nil
		},
	}, params)
	if err != nil {
		return nil, err
	}
	if res.Success {
		res.Data["security_note"] = endpointSecurityNote
	}
	return res, nil
}

// ModifyEndpoint changes endpoint attributes. params must include
// EndpointArn.
func (m *EndpointManager) ModifyEndpoint(ctx context.Context, params map[string]any) (*Result, error) {
	return m.mutate(ctx, mutationSpec{
		operation:   "modify_endpoint",
		required:    []string{"EndpointArn"},
		responseKey: "Endpoint",
		resultKey:   "endpoint",
		message:     "Endpoint modified successfully",
	}, params)
}

// DeleteEndpoint deletes the endpoint with the given ARN.
func (m *EndpointManager) DeleteEndpoint(ctx context.Context, endpointARN string) (*Result, error) {
	return m.mutate(ctx, mutationSpec{
		operation:   "delete_endpoint",
		responseKey: "Endpoint",
		resultKey:   "endpoint",
		message:     "Endpoint deleted successfully",
	}, map[string]any{"EndpointArn": endpointARN})
}

// ListEndpointTypes lists the endpoint types the service supports.
func (m *EndpointManager) ListEndpointTypes(ctx context.Context, opts ListOptions) (*Result, error) {
	return m.pagedList(ctx, listSpec{
		operation:   "describe_endpoint_types",
		responseKey: "SupportedEndpointTypes",
		resultKey:   "endpoint_types",
		format:      formatResource,
	}, opts, nil)
}

// GetEndpointSettings describes the settings available for an engine.
func (m *EndpointManager) GetEndpointSettings(ctx context.Context, engineName string, maxResults int, marker string) (*Result, error) {
	params := map[string]any{"EngineName": engineName}
	if maxResults == 0 {
		maxResults = defaults.MaxResults
	}
	params["MaxRecords"] = maxResults
	if marker != "" {
		params["Marker"] = marker
	}
	resp, err := m.client.CallAPI(ctx, "describe_endpoint_settings", params)
	if err != nil {
		return nil, err
	}
	settings := mapSlice(resp["EndpointSettings"])
	data := map[string]any{
		"engine":            engineName,
		"count":             len(settings),
		"endpoint_settings": settings,
	}
	if tok, present := resp["Marker"]; present {
		data["next_marker"] = tok
	}
	return okResult(data), nil
}

// ListEngineVersions lists replication engine versions, optionally
// filtered by engine name.
func (m *EndpointManager) ListEngineVersions(ctx context.Context, engineName string, opts ListOptions) (*Result, error) {
	var extra map[string]any
	if engineName != "" {
		extra = map[string]any{
			"Filters": []Filter{{Name: "engine-name", Values: []string{engineName}}},
		}
	}
	return m.pagedList(ctx, listSpec{
		operation:   "describe_engine_versions",
		responseKey: "EngineVersions",
		resultKey:   "engine_versions",
		format:      formatResource,
	}, opts, extra)
}

// RefreshSchemas kicks off a schema refresh for an endpoint on the given
// replication instance.
func (m *EndpointManager) RefreshSchemas(ctx context.Context, endpointARN, instanceARN string) (*Result, error) {
	return m.mutate(ctx, mutationSpec{
		operation:   "refresh_schemas",
		responseKey: "RefreshSchemasStatus",
		resultKey:   "refresh_status",
		message:     "Schema refresh initiated",
	}, map[string]any{
		"EndpointArn":            endpointARN,
		"ReplicationInstanceArn": instanceARN,
	})
}

// GetRefreshStatus reports the status of the latest schema refresh for
// an endpoint.
func (m *EndpointManager) GetRefreshStatus(ctx context.Context, endpointARN string) (*Result, error) {
	resp, err := m.client.CallAPI(ctx, "describe_refresh_schemas_status", map[string]any{
		"EndpointArn": endpointARN,
	})
	if err != nil {
		return nil, err
	}
	status := asMap(resp["RefreshSchemasStatus"])
	state := "unknown"
	if s, ok := status["Status"].(string); ok && s != "" {
		state = s
	}
	return okResult(map[string]any{
		"status":         state,
		"refresh_status": formatResource(status),
	}), nil
}

// ListSchemas lists the schemas available on an endpoint. The endpoint
// must have had its schemas refreshed first.
func (m *EndpointManager) ListSchemas(ctx context.Context, endpointARN string, maxResults int, marker string) (*Result, error) {
	params := map[string]any{"EndpointArn": endpointARN}
	if maxResults == 0 {
		maxResults = defaults.MaxResults
	}
	params["MaxRecords"] = maxResults
	if marker != "" {
		params["Marker"] = marker
	}
	resp, err := m.client.CallAPI(ctx, "describe_schemas", params)
	if err != nil {
		return nil, err
	}
	var schemas []any
	if raw, ok := resp["Schemas"].([]any); ok {
		schemas = raw
	}
	data := map[string]any{
		"endpoint_arn": endpointARN,
		"count":        len(schemas),
		"schemas":      schemas,
	}
	if tok, present := resp["Marker"]; present {
		data["next_marker"] = tok
	}
	return okResult(data), nil
}

// engineDefaults captures per-engine connection defaults used by
// GetEngineSettings. Engines absent from the table are reported with no
// default port and requires_server_name true.
type engineDefaults struct {
	port        any
	ssl         bool
	serverName  bool
	description string
}

var engineSettings = map[string]engineDefaults{
	"mysql":      {port: 3306, ssl: true, serverName: true, description: "MySQL-compatible database"},
	"mariadb":    {port: 3306, ssl: true, serverName: true, description: "MariaDB database"},
	"aurora":     {port: 3306, ssl: true, serverName: true, description: "Amazon Aurora MySQL-compatible"},
	"postgres":   {port: 5432, ssl: true, serverName: true, description: "PostgreSQL database"},
	"oracle":     {port: 1521, ssl: true, serverName: true, description: "Oracle database"},
	"sqlserver":  {port: 1433, ssl: true, serverName: true, description: "Microsoft SQL Server"},
	"mongodb":    {port: 27017, ssl: true, serverName: true, description: "MongoDB database"},
	"redshift":   {port: 5439, ssl: true, serverName: true, description: "Amazon Redshift data warehouse"},
	"s3":         {port: nil, ssl: false, serverName: false, description: "Amazon S3 object storage"},
	"dynamodb":   {port: nil, ssl: false, serverName: false, description: "Amazon DynamoDB"},
	"kinesis":    {port: nil, ssl: false, serverName: false, description: "Amazon Kinesis Data Streams"},
	"kafka":      {port: 9092, ssl: true, serverName: true, description: "Apache Kafka"},
	"opensearch": {port: nil, ssl: true, serverName: false, description: "Amazon OpenSearch Service"},
}

// GetEngineSettings returns local connection guidance for an engine:
// default port, SSL support, and whether a server name is required. It
// performs no API call. Unknown engines get a permissive answer rather
// than an error.
func (m *EndpointManager) GetEngineSettings(_ context.Context, engineName string) (*Result, error) {
	key := strings.ToLower(engineName)
	def, known := engineSettings[key]
	if !known {
		return okResult(map[string]any{
			"engine":               engineName,
			"known":                false,
			"default_port":         nil,
			"ssl_supported":        false,
			"requires_server_name": true,
		}), nil
	}
	return okResult(map[string]any{
		"engine":               engineName,
		"known":                true,
		"default_port":         def.port,
		"ssl_supported":        def.ssl,
		"requires_server_name": def.serverName,
		"description":          def.description,
	}), nil
}
