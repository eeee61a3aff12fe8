package logging

import "strings"

// secretKeys are parameter names whose values must never appear in log
// output. The wire payload is never altered; masking applies to logging only.
var secretKeys = []string{
	"password",
	"certificatepem",
	"certificatewallet",
	"secretsmanagersecretid",
	"secretsmanageraccessrolearn",
}

const maskedValue = "***"

func isSecretKey(key string) bool {
	lower := strings.ToLower(key)
	for _, s := range secretKeys {
		if lower == s {
			return true
		}
	}
	return false
}

// MaskSecrets returns a copy of params with secret values replaced by "***".
// Nested maps are masked recursively. The input map is not modified.
func MaskSecrets(params map[string]any) map[string]any {
	if params == nil {
		return nil
	}
	masked := make(map[string]any, len(params))
	for k, v := range params {
		switch {
		case isSecretKey(k):
			masked[k] = maskedValue
		default:
			if nested, ok := v.(map[string]any); ok {
				masked[k] = MaskSecrets(nested)
			} else {
				masked[k] = v
			}
		}
	}
	return masked
}
