package dms

import (
	"encoding/json"
	"fmt"
	"strings"
)

// supportedEngines is the allow-list of endpoint engine names, matched
// case-insensitively.
var supportedEngines = map[string]bool{
	"mysql":             true,
	"postgres":          true,
	"postgresql":        true,
	"oracle":            true,
	"sqlserver":         true,
	"mariadb":           true,
	"aurora":            true,
	"aurora-postgresql": true,
	"redshift":          true,
	"s3":                true,
	"dynamodb":          true,
	"mongodb":           true,
	"sybase":            true,
	"db2":               true,
	"azuredb":           true,
}

var validSSLModes = map[string]bool{
	"none":        true,
	"require":     true,
	"verify-ca":   true,
	"verify-full": true,
}

// ValidateEndpointConfig checks endpoint type, engine, port, and SSL mode.
// Returns (true, "") when the configuration is acceptable. Rules run in
// order and short-circuit on the first failure.
//
// A port of 0 is treated as "not provided" and skips the range check. This
// mirrors long-standing behavior that callers depend on; 0 is left for the
// service to reject.
func ValidateEndpointConfig(cfg map[string]any) (bool, string) {
	endpointType, _ := cfg["EndpointType"].(string)
	if endpointType != "source" && endpointType != "target" {
		return false, fmt.Sprintf("Invalid endpoint type: %s. Must be 'source' or 'target'", endpointType)
	}

	engine, _ := cfg["EngineName"].(string)
	if !supportedEngines[strings.ToLower(engine)] {
		return false, fmt.Sprintf("Unsupported engine: %s", engine)
	}

	if port := intValue(cfg["Port"]); port != 0 {
		if port < 1 || port > 65535 {
			return false, fmt.Sprintf("Invalid port: %d. Must be between 1 and 65535", port)
		}
	}

	if sslMode, present := cfg["SslMode"]; present {
		mode, _ := sslMode.(string)
		if !validSSLModes[mode] {
			return false, fmt.Sprintf("Invalid SSL mode: %s. Must be one of: none, require, verify-ca, verify-full", mode)
		}
	}

	return true, ""
}

// validInstanceClasses enumerates the accepted replication instance classes.
var validInstanceClasses = map[string]bool{}

func init() {
	families := map[string][]string{
		"t2": {"micro", "small", "medium", "large"},
		"t3": {"micro", "small", "medium", "large"},
		"c4": {"large", "xlarge", "2xlarge", "4xlarge"},
		"c5": {"large", "xlarge", "2xlarge", "4xlarge"},
		"r4": {"large", "xlarge", "2xlarge", "4xlarge"},
		"r5": {"large", "xlarge", "2xlarge", "4xlarge"},
	}
	for family, sizes := range families {
		for _, size := range sizes {
			validInstanceClasses[fmt.Sprintf("dms.%s.%s", family, size)] = true
		}
	}
}

// ValidateInstanceClass reports whether class is an accepted replication
// instance class such as "dms.t3.medium". Matching is case-insensitive.
func ValidateInstanceClass(class string) bool {
	return validInstanceClasses[strings.ToLower(class)]
}

var validRuleTypes = map[string]bool{
	"selection":      true,
	"transformation": true,
	"table-settings": true,
}

var validRuleActions = map[string]bool{
	"include":  true,
	"exclude":  true,
	"explicit": true,
}

// ValidateTableMappings checks a JSON-encoded table-mapping document.
// Validation stops at the first failing rule. Returns (true, "") when every
// rule passes.
func ValidateTableMappings(mappings string) (bool, string) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(mappings), &doc); err != nil {
		return false, "Invalid JSON in table mappings"
	}

	rawRules, present := doc["rules"]
	if !present {
		return false, "Missing required key: 'rules'"
	}
	rules, ok := rawRules.([]any)
	if !ok {
		return false, "'rules' must be an array"
	}
	if len(rules) == 0 {
		return false, "At least one rule is required"
	}

	for i, raw := range rules {
		rule, ok := raw.(map[string]any)
		if !ok {
			return false, fmt.Sprintf("Rule %d must be an object", i)
		}
		rawType, present := rule["rule-type"]
		if !present {
			return false, fmt.Sprintf("Rule %d missing 'rule-type'", i)
		}
		ruleType, _ := rawType.(string)
		if !validRuleTypes[ruleType] {
			return false, fmt.Sprintf("Rule %d has invalid rule-type: %s", i, ruleType)
		}
		if ruleType != "selection" {
			continue
		}
		if _, present := rule["rule-id"]; !present {
			return false, fmt.Sprintf("Selection rule %d missing 'rule-id'", i)
		}
		rawAction, present := rule["rule-action"]
		if !present {
			return false, fmt.Sprintf("Selection rule %d missing 'rule-action'", i)
		}
		action, _ := rawAction.(string)
		if !validRuleActions[action] {
			return false, fmt.Sprintf("Selection rule %d has invalid rule-action: %s", i, action)
		}
		if _, present := rule["object-locator"]; !present {
			return false, fmt.Sprintf("Selection rule %d missing 'object-locator'", i)
		}
	}

	return true, ""
}

// intValue coerces a decoded JSON number (or Go int) to int, returning 0
// for anything else.
func intValue(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
