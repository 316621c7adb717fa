package logging

import (
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"
	"sync/atomic"
	"unicode/utf8"
)

var debugEnabled atomic.Bool

// EnableDebug turns on verbose debug logging for the helper lifecycle.
func EnableDebug() {
	debugEnabled.Store(true)
	log.Printf("[DEBUG] debug logging enabled")
}

// DebugEnabled reports whether debug logging is active.
func DebugEnabled() bool {
	return debugEnabled.Load()
}

// Debugf emits a formatted debug log message when debugging is enabled.
func Debugf(format string, args ...interface{}) {
	if !DebugEnabled() {
		return
	}
	log.Printf("[DEBUG] "+format, args...)
}

// LogHTTPRequest emits details of an outbound HTTP request when debugging is
// enabled. Credential-bearing headers are masked before logging.
func LogHTTPRequest(req *http.Request) {
	if !DebugEnabled() || req == nil {
		return
	}

	log.Printf("[DEBUG] HTTP request %s %s", req.Method, req.URL)
	if len(req.Header) > 0 {
		log.Printf("[DEBUG] --> request headers: %s", formatHeaders(req.Header))
	}
}

// LogHTTPResponse emits details of an inbound HTTP response when debugging is
// enabled.
func LogHTTPResponse(resp *http.Response, body []byte) {
	if !DebugEnabled() || resp == nil {
		return
	}

	target := "<unknown>"
	if resp.Request != nil && resp.Request.URL != nil {
		target = resp.Request.URL.String()
	}

	log.Printf("[DEBUG] HTTP response %s for %s", resp.Status, target)
	if len(resp.Header) > 0 {
		log.Printf("[DEBUG] <-- response headers: %s", formatHeaders(resp.Header))
	}
	if len(body) > 0 {
		log.Printf("[DEBUG] <-- response payload %s", describePayload(body))
	}
}

func formatHeaders(headers http.Header) string {
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})

	var b strings.Builder
	for idx, name := range names {
		if idx > 0 {
			b.WriteString(", ")
		}
		values := make([]string, len(headers[name]))
		for i, value := range headers[name] {
			if isSensitiveKey(name) {
				value = MaskIdentifier(value)
			}
			values[i] = value
		}
		fmt.Fprintf(&b, "%s: [%s]", name, strings.Join(values, ", "))
	}
	return b.String()
}

func describePayload(body []byte) string {
	if utf8.Valid(body) {
		return fmt.Sprintf("(utf-8, %d bytes): %s", len(body), string(body))
	}
	return fmt.Sprintf("(binary, %d bytes)", len(body))
}

func isSensitiveKey(name string) bool {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "authorization"),
		strings.Contains(lower, "api-key"),
		strings.Contains(lower, "apikey"),
		strings.Contains(lower, "secret"),
		strings.Contains(lower, "token"):
		return true
	default:
		return false
	}
}

// MaskIdentifier obscures sensitive identifiers leaving only the last four
// characters visible.
func MaskIdentifier(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(trimmed)-4) + trimmed[len(trimmed)-4:]
}
