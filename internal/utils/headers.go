package utils

import (
	"net/http"
	"strings"
)

var sensitiveHeaders = map[string]bool{
	HeaderAuthorization:   true,
	HeaderCookie:          true,
	HeaderAPIKey:          true,
	"Set-Cookie":          true,
	"Proxy-Authorization": true,
}

// SanitizeHeaders flattens headers for logging with credentials masked
func SanitizeHeaders(headers http.Header) map[string]string {
	out := make(map[string]string, len(headers))
	for key, values := range headers {
		canonical := http.CanonicalHeaderKey(key)
		if sensitiveHeaders[canonical] {
			out[canonical] = "***"
			continue
		}
		out[canonical] = strings.Join(values, ", ")
	}
	return out
}

// ClientIP returns the caller address, preferring proxy headers
func ClientIP(r *http.Request) string {
	if forwardedFor := r.Header.Get(HeaderXForwardedFor); forwardedFor != "" {
		return strings.TrimSpace(strings.Split(forwardedFor, ",")[0])
	}
	if realIP := r.Header.Get(HeaderXRealIP); realIP != "" {
		return realIP
	}
	if cfIP := r.Header.Get(HeaderCFConnectingIP); cfIP != "" {
		return cfIP
	}
	return r.RemoteAddr
}
