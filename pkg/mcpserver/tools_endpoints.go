package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ═══════════════════════════════════════════════════════════════════════════
// Endpoints
// ═══════════════════════════════════════════════════════════════════════════

func (s *Server) registerEndpointTools() {
	s.readOnly(&mcp.Tool{
		Name:        "describe_endpoints",
		Title:       "Describe Endpoints",
		Description: "List source and target endpoints. Filter by endpoint-id, endpoint-arn, endpoint-type, or engine-name.",
		InputSchema: objectSchema(listProps(nil)),
	}, s.handleDescribeEndpoints)

	s.mutating(&mcp.Tool{
		Name:        "create_endpoint",
		Title:       "Create Endpoint",
		Description: "Create a source or target endpoint. endpoint_type must be 'source' or 'target', engine_name one of the supported engines (mysql, postgres, oracle, sqlserver, aurora, aurora-postgresql, mariadb, mongodb, s3, dynamodb, redshift, ...); both are validated before the call. Connection credentials are forwarded to AWS and never echoed back.",
		InputSchema: objectSchema(map[string]any{
			"endpoint_identifier":         stringProp("Unique name for the endpoint."),
			"endpoint_type":               stringProp("'source' or 'target'."),
			"engine_name":                 stringProp("Database engine, e.g. mysql, postgres, oracle."),
			"server_name":                 stringProp("Database host name (not used by object-store engines like s3)."),
			"port":                        intProp("Database port (1-65535)."),
			"database_name":               stringProp("Database to connect to."),
			"username":                    stringProp("Connection user."),
			"password":                    stringProp("Connection password. Prefer secrets-manager-based settings where possible."),
			"ssl_mode":                    stringProp("none, require, verify-ca, or verify-full."),
			"certificate_arn":             stringProp("Certificate for SSL modes that verify the server."),
			"kms_key_id":                  stringProp("KMS key for connection parameter encryption."),
			"extra_connection_attributes": stringProp("Engine-specific attributes as a semicolon-separated string."),
			"tags":                        objectArrayProp("Tags as [{\"Key\": ..., \"Value\": ...}]."),
		}, "endpoint_identifier", "endpoint_type", "engine_name"),
	}, s.handleCreateEndpoint)

	s.mutating(&mcp.Tool{
		Name:        "modify_endpoint",
		Title:       "Modify Endpoint",
		Description: "Change attributes of an existing endpoint.",
		InputSchema: objectSchema(map[string]any{
			"endpoint_arn":                stringProp("ARN of the endpoint to modify."),
			"endpoint_identifier":         stringProp("New endpoint name."),
			"server_name":                 stringProp("New host name."),
			"port":                        intProp("New port."),
			"database_name":               stringProp("New database name."),
			"username":                    stringProp("New connection user."),
			"password":                    stringProp("New connection password."),
			"ssl_mode":                    stringProp("none, require, verify-ca, or verify-full."),
			"certificate_arn":             stringProp("New certificate ARN."),
			"extra_connection_attributes": stringProp("Engine-specific attributes."),
		}, "endpoint_arn"),
	}, s.handleModifyEndpoint)

	s.destructive(&mcp.Tool{
		Name:        "delete_endpoint",
		Title:       "Delete Endpoint",
		Description: "Delete an endpoint. The endpoint must not be in use by any task.",
		InputSchema: objectSchema(map[string]any{
			"endpoint_arn": stringProp("ARN of the endpoint to delete."),
		}, "endpoint_arn"),
	}, s.handleDeleteEndpoint)

	s.readOnly(&mcp.Tool{
		Name:        "describe_endpoint_settings",
		Title:       "Describe Endpoint Settings",
		Description: "List the settings an engine supports for its endpoints, with types, defaults, and allowed values.",
		InputSchema: objectSchema(pageProps(map[string]any{
			"engine_name": stringProp("Engine to describe settings for, e.g. mysql."),
		}), "engine_name"),
	}, s.handleDescribeEndpointSettings)

	s.readOnly(&mcp.Tool{
		Name:        "describe_endpoint_types",
		Title:       "Describe Endpoint Types",
		Description: "List the engine/endpoint-type combinations available in this region.",
		InputSchema: objectSchema(listProps(nil)),
	}, s.handleDescribeEndpointTypes)

	s.readOnly(&mcp.Tool{
		Name:        "describe_engine_versions",
		Title:       "Describe Engine Versions",
		Description: "List available replication engine versions and their lifecycle dates. Optionally scope to a single engine.",
		InputSchema: objectSchema(pageProps(map[string]any{
			"engine_name": stringProp("Limit results to this engine."),
		})),
	}, s.handleDescribeEngineVersions)

	s.mutating(&mcp.Tool{
		Name:        "refresh_schemas",
		Title:       "Refresh Schemas",
		Description: "Re-read the schema list from an endpoint's database using a replication instance. Runs asynchronously; check progress with describe_refresh_schemas_status.",
		InputSchema: objectSchema(map[string]any{
			"endpoint_arn":             stringProp("Endpoint whose schemas to refresh."),
			"replication_instance_arn": stringProp("Instance that performs the refresh."),
		}, "endpoint_arn", "replication_instance_arn"),
	}, s.handleRefreshSchemas)

	s.readOnly(&mcp.Tool{
		Name:        "describe_schemas",
		Title:       "Describe Schemas",
		Description: "List the schema names discovered at an endpoint. Run refresh_schemas first if the list looks stale.",
		InputSchema: objectSchema(pageProps(map[string]any{
			"endpoint_arn": stringProp("Endpoint to list schemas for."),
		}), "endpoint_arn"),
	}, s.handleDescribeSchemas)

	s.readOnly(&mcp.Tool{
		Name:        "describe_refresh_schemas_status",
		Title:       "Describe Refresh Schemas Status",
		Description: "Report the status of the most recent schema refresh for an endpoint.",
		InputSchema: objectSchema(map[string]any{
			"endpoint_arn": stringProp("Endpoint to check."),
		}, "endpoint_arn"),
	}, s.handleDescribeRefreshSchemasStatus)
}

func (s *Server) handleDescribeEndpoints(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args listArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.endpoints.ListEndpoints(ctx, args.options()))
}

type endpointArgs struct {
	Identifier     string           `json:"endpoint_identifier"`
	EndpointType   string           `json:"endpoint_type"`
	EngineName     string           `json:"engine_name"`
	ServerName     string           `json:"server_name"`
	Port           int              `json:"port"`
	DatabaseName   string           `json:"database_name"`
	Username       string           `json:"username"`
	Password       string           `json:"password"`
	SslMode        string           `json:"ssl_mode"`
	CertificateARN string           `json:"certificate_arn"`
	KmsKeyID       string           `json:"kms_key_id"`
	ExtraAttrs     string           `json:"extra_connection_attributes"`
	Tags           []map[string]any `json:"tags"`
}

func (s *Server) handleCreateEndpoint(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args endpointArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	params := map[string]any{
		"EndpointIdentifier": args.Identifier,
		"EndpointType":       args.EndpointType,
		"EngineName":         args.EngineName,
	}
	setString(params, "ServerName", args.ServerName)
	setInt(params, "Port", args.Port)
	setString(params, "DatabaseName", args.DatabaseName)
	setString(params, "Username", args.Username)
	setString(params, "Password", args.Password)
	setString(params, "SslMode", args.SslMode)
	setString(params, "CertificateArn", args.CertificateARN)
	setString(params, "KmsKeyId", args.KmsKeyID)
	setString(params, "ExtraConnectionAttributes", args.ExtraAttrs)
	setObjects(params, "Tags", args.Tags)
	return envelope(s.endpoints.CreateEndpoint(ctx, params))
}

type modifyEndpointArgs struct {
	ARN            string `json:"endpoint_arn"`
	Identifier     string `json:"endpoint_identifier"`
	ServerName     string `json:"server_name"`
	Port           int    `json:"port"`
	DatabaseName   string `json:"database_name"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	SslMode        string `json:"ssl_mode"`
	CertificateARN string `json:"certificate_arn"`
	ExtraAttrs     string `json:"extra_connection_attributes"`
}

func (s *Server) handleModifyEndpoint(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args modifyEndpointArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	params := map[string]any{"EndpointArn": args.ARN}
	setString(params, "EndpointIdentifier", args.Identifier)
	setString(params, "ServerName", args.ServerName)
	setInt(params, "Port", args.Port)
	setString(params, "DatabaseName", args.DatabaseName)
	setString(params, "Username", args.Username)
	setString(params, "Password", args.Password)
	setString(params, "SslMode", args.SslMode)
	setString(params, "CertificateArn", args.CertificateARN)
	setString(params, "ExtraConnectionAttributes", args.ExtraAttrs)
	return envelope(s.endpoints.ModifyEndpoint(ctx, params))
}

type endpointARNArgs struct {
	ARN string `json:"endpoint_arn"`
}

func (s *Server) handleDeleteEndpoint(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args endpointARNArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.endpoints.DeleteEndpoint(ctx, args.ARN))
}

func (s *Server) handleDescribeEndpointSettings(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		EngineName string `json:"engine_name"`
		MaxRecords int    `json:"max_records"`
		Marker     string `json:"marker"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.endpoints.GetEndpointSettings(ctx, args.EngineName, args.MaxRecords, args.Marker))
}

func (s *Server) handleDescribeEndpointTypes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args listArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.endpoints.ListEndpointTypes(ctx, args.options()))
}

func (s *Server) handleDescribeEngineVersions(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		EngineName string `json:"engine_name"`
		MaxRecords int    `json:"max_records"`
		Marker     string `json:"marker"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	opts := listArgs{MaxRecords: args.MaxRecords, Marker: args.Marker}.options()
	return envelope(s.endpoints.ListEngineVersions(ctx, args.EngineName, opts))
}

func (s *Server) handleRefreshSchemas(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		EndpointARN string `json:"endpoint_arn"`
		InstanceARN string `json:"replication_instance_arn"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.endpoints.RefreshSchemas(ctx, args.EndpointARN, args.InstanceARN))
}

func (s *Server) handleDescribeSchemas(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		EndpointARN string `json:"endpoint_arn"`
		MaxRecords  int    `json:"max_records"`
		Marker      string `json:"marker"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.endpoints.ListSchemas(ctx, args.EndpointARN, args.MaxRecords, args.Marker))
}

func (s *Server) handleDescribeRefreshSchemasStatus(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args endpointARNArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.endpoints.GetRefreshStatus(ctx, args.ARN))
}
