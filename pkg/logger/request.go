package logger

import (
	"strings"

	"webcore/pkg/uri"
)

var sensitiveHeaders = map[string]struct{}{
	"authorization":    {},
	"x-api-key":        {},
	"x-user-signature": {},
	"cookie":           {},
}

// RedactHeaderValue redacts known sensitive header values.
func RedactHeaderValue(name, value string) string {
	if value == "" {
		return ""
	}
	if _, ok := sensitiveHeaders[strings.ToLower(name)]; ok {
		return "<redacted>"
	}
	return value
}

// SafeHeaders redacts sensitive header values out of an ordered header list,
// keeping only the first value per name for brevity.
func SafeHeaders(headers []uri.KV) map[string]string {
	out := make(map[string]string)
	for _, h := range headers {
		if _, seen := out[h.Name]; seen {
			continue
		}
		out[h.Name] = RedactHeaderValue(h.Name, h.Value)
	}
	return out
}

// LogRequest logs a concise, safe summary of an incoming request.
func LogRequest(method, path, remoteAddr string, headers []uri.KV) {
	Info("incoming_request", "method", method, "path", path, "remote", remoteAddr, "headers", SafeHeaders(headers))
}
