package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ═══════════════════════════════════════════════════════════════════════════
// Replication Instances
// ═══════════════════════════════════════════════════════════════════════════

func (s *Server) registerInstanceTools() {
	s.readOnly(&mcp.Tool{
		Name:        "describe_replication_instances",
		Title:       "Describe Replication Instances",
		Description: "List replication instances in the account, with their class, status, storage, and network configuration. Filter by replication-instance-id, replication-instance-arn, replication-instance-class, or engine-version.",
		InputSchema: objectSchema(listProps(nil)),
	}, s.handleDescribeReplicationInstances)

	s.mutating(&mcp.Tool{
		Name:        "create_replication_instance",
		Title:       "Create Replication Instance",
		Description: "Provision a replication instance that runs migration tasks. The instance class must be a valid dms.* class (e.g. dms.t3.medium, dms.r5.large). Provisioning takes several minutes; poll describe_replication_instances until the status is 'available'.",
		InputSchema: objectSchema(map[string]any{
			"replication_instance_identifier": stringProp("Unique name for the instance (1-63 alphanumeric characters or hyphens)."),
			"replication_instance_class":      stringProp("Compute and memory capacity, e.g. dms.t3.medium."),
			"allocated_storage":               intProp("Storage in GiB (default 50)."),
			"engine_version":                  stringProp("DMS engine version. Omit for the default."),
			"availability_zone":               stringProp("AZ to place the instance in."),
			"replication_subnet_group_identifier": stringProp("Subnet group to launch into."),
			"vpc_security_group_ids":          stringArrayProp("VPC security groups to attach."),
			"publicly_accessible":             boolProp("Whether the instance gets a public IP."),
			"multi_az":                        boolProp("Multi-AZ deployment for high availability."),
			"kms_key_id":                      stringProp("KMS key for storage encryption."),
			"preferred_maintenance_window":    stringProp("Weekly maintenance window, e.g. sun:06:00-sun:14:00."),
			"auto_minor_version_upgrade":      boolProp("Apply minor engine upgrades automatically."),
			"network_type":                    stringProp("IPV4 or DUAL."),
			"tags":                            objectArrayProp("Tags as [{\"Key\": ..., \"Value\": ...}]."),
		}, "replication_instance_identifier", "replication_instance_class"),
	}, s.handleCreateReplicationInstance)

	s.mutating(&mcp.Tool{
		Name:        "modify_replication_instance",
		Title:       "Modify Replication Instance",
		Description: "Change attributes of a replication instance. Most changes are applied during the next maintenance window unless apply_immediately is set.",
		InputSchema: objectSchema(map[string]any{
			"replication_instance_arn":     stringProp("ARN of the instance to modify."),
			"replication_instance_class":   stringProp("New instance class."),
			"allocated_storage":            intProp("New storage size in GiB."),
			"apply_immediately":            boolProp("Apply changes now instead of during the maintenance window."),
			"engine_version":               stringProp("Target engine version."),
			"allow_major_version_upgrade":  boolProp("Permit a major engine version change."),
			"auto_minor_version_upgrade":   boolProp("Apply minor engine upgrades automatically."),
			"multi_az":                     boolProp("Enable or disable Multi-AZ."),
			"preferred_maintenance_window": stringProp("New maintenance window."),
			"vpc_security_group_ids":       stringArrayProp("Replacement VPC security groups."),
			"network_type":                 stringProp("IPV4 or DUAL."),
		}, "replication_instance_arn"),
	}, s.handleModifyReplicationInstance)

	s.destructive(&mcp.Tool{
		Name:        "delete_replication_instance",
		Title:       "Delete Replication Instance",
		Description: "Delete a replication instance. The instance must have no running tasks.",
		InputSchema: objectSchema(map[string]any{
			"replication_instance_arn": stringProp("ARN of the instance to delete."),
		}, "replication_instance_arn"),
	}, s.handleDeleteReplicationInstance)

	s.mutating(&mcp.Tool{
		Name:        "reboot_replication_instance",
		Title:       "Reboot Replication Instance",
		Description: "Reboot a replication instance. Set force_failover on a Multi-AZ instance to fail over to the standby instead of a plain reboot.",
		InputSchema: objectSchema(map[string]any{
			"replication_instance_arn": stringProp("ARN of the instance to reboot."),
			"force_failover":           boolProp("Fail over to the standby (Multi-AZ only)."),
		}, "replication_instance_arn"),
	}, s.handleRebootReplicationInstance)

	s.readOnly(&mcp.Tool{
		Name:        "describe_orderable_replication_instances",
		Title:       "Describe Orderable Replication Instances",
		Description: "List the instance classes, engine versions, and storage ranges that can be ordered in this region.",
		InputSchema: objectSchema(pageProps(nil)),
	}, s.handleDescribeOrderableReplicationInstances)

	s.readOnly(&mcp.Tool{
		Name:        "describe_replication_instance_task_logs",
		Title:       "Describe Replication Instance Task Logs",
		Description: "Report the task log storage used on a replication instance, per task.",
		InputSchema: objectSchema(pageProps(map[string]any{
			"replication_instance_arn": stringProp("ARN of the instance."),
		}), "replication_instance_arn"),
	}, s.handleDescribeReplicationInstanceTaskLogs)

	s.readOnly(&mcp.Tool{
		Name:        "describe_account_attributes",
		Title:       "Describe Account Attributes",
		Description: "Report the account's DMS quotas and their current usage (instance count, storage, endpoints, ...).",
		InputSchema: objectSchema(map[string]any{}),
	}, s.handleDescribeAccountAttributes)
}

func (s *Server) handleDescribeReplicationInstances(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args listArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.instances.ListInstances(ctx, args.options()))
}

type createInstanceArgs struct {
	Identifier            string           `json:"replication_instance_identifier"`
	Class                 string           `json:"replication_instance_class"`
	AllocatedStorage      int              `json:"allocated_storage"`
	EngineVersion         string           `json:"engine_version"`
	AvailabilityZone      string           `json:"availability_zone"`
	SubnetGroupIdentifier string           `json:"replication_subnet_group_identifier"`
	VpcSecurityGroupIDs   []string         `json:"vpc_security_group_ids"`
	PubliclyAccessible    *bool            `json:"publicly_accessible"`
	MultiAZ               *bool            `json:"multi_az"`
	KmsKeyID              string           `json:"kms_key_id"`
	MaintenanceWindow     string           `json:"preferred_maintenance_window"`
	AutoMinorUpgrade      *bool            `json:"auto_minor_version_upgrade"`
	NetworkType           string           `json:"network_type"`
	Tags                  []map[string]any `json:"tags"`
}

func (s *Server) handleCreateReplicationInstance(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args createInstanceArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	params := map[string]any{
		"ReplicationInstanceIdentifier": args.Identifier,
		"ReplicationInstanceClass":      args.Class,
	}
	setInt(params, "AllocatedStorage", args.AllocatedStorage)
	setString(params, "EngineVersion", args.EngineVersion)
	setString(params, "AvailabilityZone", args.AvailabilityZone)
	setString(params, "ReplicationSubnetGroupIdentifier", args.SubnetGroupIdentifier)
	setStrings(params, "VpcSecurityGroupIds", args.VpcSecurityGroupIDs)
	setBool(params, "PubliclyAccessible", args.PubliclyAccessible)
	setBool(params, "MultiAZ", args.MultiAZ)
	setString(params, "KmsKeyId", args.KmsKeyID)
	setString(params, "PreferredMaintenanceWindow", args.MaintenanceWindow)
	setBool(params, "AutoMinorVersionUpgrade", args.AutoMinorUpgrade)
	setString(params, "NetworkType", args.NetworkType)
	setObjects(params, "Tags", args.Tags)
	return envelope(s.instances.CreateInstance(ctx, params))
}

type modifyInstanceArgs struct {
	ARN                 string   `json:"replication_instance_arn"`
	Class               string   `json:"replication_instance_class"`
	AllocatedStorage    int      `json:"allocated_storage"`
	ApplyImmediately    *bool    `json:"apply_immediately"`
	EngineVersion       string   `json:"engine_version"`
	AllowMajorUpgrade   *bool    `json:"allow_major_version_upgrade"`
	AutoMinorUpgrade    *bool    `json:"auto_minor_version_upgrade"`
	MultiAZ             *bool    `json:"multi_az"`
	MaintenanceWindow   string   `json:"preferred_maintenance_window"`
	VpcSecurityGroupIDs []string `json:"vpc_security_group_ids"`
	NetworkType         string   `json:"network_type"`
}

func (s *Server) handleModifyReplicationInstance(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args modifyInstanceArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	params := map[string]any{"ReplicationInstanceArn": args.ARN}
	setString(params, "ReplicationInstanceClass", args.Class)
	setInt(params, "AllocatedStorage", args.AllocatedStorage)
	setBool(params, "ApplyImmediately", args.ApplyImmediately)
	setString(params, "EngineVersion", args.EngineVersion)
	setBool(params, "AllowMajorVersionUpgrade", args.AllowMajorUpgrade)
	setBool(params, "AutoMinorVersionUpgrade", args.AutoMinorUpgrade)
	setBool(params, "MultiAZ", args.MultiAZ)
	setString(params, "PreferredMaintenanceWindow", args.MaintenanceWindow)
	setStrings(params, "VpcSecurityGroupIds", args.VpcSecurityGroupIDs)
	setString(params, "NetworkType", args.NetworkType)
	return envelope(s.instances.ModifyInstance(ctx, params))
}

type instanceARNArgs struct {
	ARN string `json:"replication_instance_arn"`
}

func (s *Server) handleDeleteReplicationInstance(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args instanceARNArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.instances.DeleteInstance(ctx, args.ARN))
}

func (s *Server) handleRebootReplicationInstance(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		ARN           string `json:"replication_instance_arn"`
		ForceFailover bool   `json:"force_failover"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.instances.RebootInstance(ctx, args.ARN, args.ForceFailover))
}

func (s *Server) handleDescribeOrderableReplicationInstances(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args listArgs
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.instances.ListOrderableInstances(ctx, args.options()))
}

func (s *Server) handleDescribeReplicationInstanceTaskLogs(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		ARN        string `json:"replication_instance_arn"`
		MaxRecords int    `json:"max_records"`
		Marker     string `json:"marker"`
	}
	if err := parseArgs(req, &args); err != nil {
		return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	return envelope(s.instances.GetTaskLogs(ctx, args.ARN, args.MaxRecords, args.Marker))
}

func (s *Server) handleDescribeAccountAttributes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return envelope(s.instances.GetAccountAttributes(ctx))
}
