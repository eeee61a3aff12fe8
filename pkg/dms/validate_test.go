package dms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEndpointConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     map[string]any
		ok      bool
		wantMsg string
	}{
		{
			name: "valid source",
			cfg:  map[string]any{"EndpointType": "source", "EngineName": "mysql", "Port": 3306},
			ok:   true,
		},
		{
			name: "valid target no port",
			cfg:  map[string]any{"EndpointType": "target", "EngineName": "s3"},
			ok:   true,
		},
		{
			name:    "bad endpoint type",
			cfg:     map[string]any{"EndpointType": "bidirectional", "EngineName": "mysql"},
			wantMsg: "Invalid endpoint type: bidirectional. Must be 'source' or 'target'",
		},
		{
			name:    "unsupported engine",
			cfg:     map[string]any{"EndpointType": "source", "EngineName": "foxpro"},
			wantMsg: "Unsupported engine: foxpro",
		},
		{
			name: "engine case insensitive",
			cfg:  map[string]any{"EndpointType": "source", "EngineName": "MySQL"},
			ok:   true,
		},
		{
			name:    "port out of range",
			cfg:     map[string]any{"EndpointType": "source", "EngineName": "mysql", "Port": 70000},
			wantMsg: "Invalid port: 70000. Must be between 1 and 65535",
		},
		{
			// Zero means not provided; the service gets to reject it.
			name: "port zero skips range check",
			cfg:  map[string]any{"EndpointType": "source", "EngineName": "mysql", "Port": 0},
			ok:   true,
		},
		{
			name: "port as decoded JSON number",
			cfg:  map[string]any{"EndpointType": "source", "EngineName": "mysql", "Port": float64(5432)},
			ok:   true,
		},
		{
			name:    "bad ssl mode",
			cfg:     map[string]any{"EndpointType": "source", "EngineName": "mysql", "SslMode": "maybe"},
			wantMsg: "Invalid SSL mode: maybe. Must be one of: none, require, verify-ca, verify-full",
		},
		{
			name: "valid ssl mode",
			cfg:  map[string]any{"EndpointType": "source", "EngineName": "mysql", "SslMode": "verify-full"},
			ok:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := ValidateEndpointConfig(tt.cfg)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				assert.Equal(t, tt.wantMsg, msg)
			} else {
				assert.Empty(t, msg)
			}
		})
	}
}

func TestValidateInstanceClass(t *testing.T) {
	assert.True(t, ValidateInstanceClass("dms.t3.medium"))
	assert.True(t, ValidateInstanceClass("dms.r5.4xlarge"))
	assert.True(t, ValidateInstanceClass("DMS.T3.MEDIUM"))
	assert.False(t, ValidateInstanceClass("dms.t3.17xlarge"))
	assert.False(t, ValidateInstanceClass("dms.m5.large"))
	assert.False(t, ValidateInstanceClass("t3.medium"))
	assert.False(t, ValidateInstanceClass(""))
}

func TestValidateTableMappings(t *testing.T) {
	valid := `{
		"rules": [
			{
				"rule-type": "selection",
				"rule-id": "1",
				"rule-name": "1",
				"rule-action": "include",
				"object-locator": {"schema-name": "%", "table-name": "%"}
			}
		]
	}`
	ok, msg := ValidateTableMappings(valid)
	assert.True(t, ok)
	assert.Empty(t, msg)

	tests := []struct {
		name     string
		mappings string
		wantMsg  string
	}{
		{"invalid json", `{"rules": [`, "Invalid JSON in table mappings"},
		{"missing rules", `{}`, "Missing required key: 'rules'"},
		{"rules not array", `{"rules": {}}`, "'rules' must be an array"},
		{"empty rules", `{"rules": []}`, "At least one rule is required"},
		{
			"missing rule type",
			`{"rules": [{"rule-id": "1"}]}`,
			"Rule 0 missing 'rule-type'",
		},
		{
			"invalid rule type",
			`{"rules": [{"rule-type": "projection"}]}`,
			"Rule 0 has invalid rule-type: projection",
		},
		{
			"selection missing rule id",
			`{"rules": [{"rule-type": "selection", "rule-action": "include"}]}`,
			"Selection rule 0 missing 'rule-id'",
		},
		{
			"selection missing action",
			`{"rules": [{"rule-type": "selection", "rule-id": "1"}]}`,
			"Selection rule 0 missing 'rule-action'",
		},
		{
			"selection invalid action",
			`{"rules": [{"rule-type": "selection", "rule-id": "1", "rule-action": "drop"}]}`,
			"Selection rule 0 has invalid rule-action: drop",
		},
		{
			"selection missing locator",
			`{"rules": [{"rule-type": "selection", "rule-id": "1", "rule-action": "include"}]}`,
			"Selection rule 0 missing 'object-locator'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := ValidateTableMappings(tt.mappings)
			assert.False(t, ok)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestValidateTableMappingsNonSelectionRulesSkipChecks(t *testing.T) {
	// Transformation rules are not held to the selection-rule key set.
	mappings := `{"rules": [{"rule-type": "transformation"}]}`
	ok, msg := ValidateTableMappings(mappings)
	assert.True(t, ok)
	assert.Empty(t, msg)
}
