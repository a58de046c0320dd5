package utils

// HTTP Header Constants
const (
	HeaderContentType   = "Content-Type"
	HeaderUserAgent     = "User-Agent"
	HeaderAuthorization = "Authorization"
	HeaderCookie        = "Cookie"
	HeaderAPIKey        = "X-API-Key"

	// Request/Response Tracking Headers
	HeaderRequestID    = "X-Request-ID"
	HeaderResponseTime = "X-Response-Time"

	// Client IP Headers (priority order)
	HeaderXForwardedFor  = "X-Forwarded-For"
	HeaderXRealIP        = "X-Real-IP"
	HeaderCFConnectingIP = "CF-Connecting-IP"
)

// Content Type Constants
const (
	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"
)

// maxRequestIDLength bounds client supplied request ids
const maxRequestIDLength = 128
