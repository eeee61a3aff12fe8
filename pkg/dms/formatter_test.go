package dms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnakeCase(t *testing.T) {
	cases := map[string]string{
		"EndpointArn":                   "endpoint_arn",
		"ReplicationInstanceIdentifier": "replication_instance_identifier",
		"KMSKeyId":                      "kms_key_id",
		"VpcSecurityGroupId":            "vpc_security_group_id",
		"S3Settings":                    "s3_settings",
		"Status":                        "status",
		"status":                        "status",
		"":                              "",
	}
	for in, want := range cases {
		assert.Equal(t, want, snakeCase(in), "snakeCase(%q)", in)
	}
}

func TestFormatResourceRecurses(t *testing.T) {
	in := map[string]any{
		"EndpointArn": "arn-1",
		"S3Settings": map[string]any{
			"BucketName": "my-bucket",
		},
		"Subnets": []any{
			map[string]any{"SubnetIdentifier": "subnet-1"},
		},
	}
	out := formatResource(in)

	assert.Equal(t, "arn-1", out["endpoint_arn"])
	settings := out["s3_settings"].(map[string]any)
	assert.Equal(t, "my-bucket", settings["bucket_name"])
	subnets := out["subnets"].([]any)
	assert.Equal(t, "subnet-1", subnets[0].(map[string]any)["subnet_identifier"])
}

func TestFormatResourcesEmptyStaysEmpty(t *testing.T) {
	out := formatResources(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
