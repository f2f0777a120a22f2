package telemetry

import "strings"

// Redacted replaces any sensitive value before it reaches a log sink.
const Redacted = "***REDACTED***"

// Sensitive field names, after lowercasing and stripping underscores, so
// apiKey, api_key, and APIKEY all match the same entry.
var sensitiveKeys = map[string]bool{
	"apikey":    true,
	"secret":    true,
	"apisecret": true,
	"signature": true,
	"password":  true,
	"token":     true,
}

// SanitizeParams returns a copy of params with sensitive values redacted
// field by field. Non-sensitive fields pass through untouched; the input
// map is never modified.
func SanitizeParams(params map[string]string) map[string]string {
	cleaned := make(map[string]string, len(params))
	for k, v := range params {
		if SensitiveKey(k) {
			cleaned[k] = Redacted
		} else {
			cleaned[k] = v
		}
	}
	return cleaned
}

// SensitiveKey reports whether a parameter name must never be logged
// verbatim.
func SensitiveKey(key string) bool {
	return sensitiveKeys[strings.ReplaceAll(strings.ToLower(key), "_", "")]
}
