package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/majidyz63/ai-extractor/internal/logger"
	"github.com/majidyz63/ai-extractor/internal/utils"
)

// RequestCorrelationMiddleware tags every request with an id, echoes it in
// X-Request-ID and logs the request lifecycle.
//
// A valid client supplied X-Request-ID is kept; otherwise a UUID is generated.
// Successful health checks are not logged.
func RequestCorrelationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID, source := extractRequestID(r)
		w.Header().Set(utils.HeaderRequestID, requestID)

		ctx := logger.WithRequestID(r.Context(), requestID)
		ctx = logger.WithComponent(ctx, logger.ComponentNames.Middleware)

		logger.Debug(logger.WithStage(ctx, logger.LogStages.TrackingSetup), "Assigned request id",
			"request_id_source", source,
		)

		quiet := r.URL.Path == "/health"
		if !quiet {
			logger.Info(logger.WithStage(ctx, logger.LogStages.RequestReceived), "Incoming request",
				"request_method", r.Method,
				"request_endpoint", r.URL.Path,
				"request_query", r.URL.RawQuery,
				"request_user_agent", r.Header.Get(utils.HeaderUserAgent),
				"request_client_ip", utils.ClientIP(r),
				"request_headers", utils.SanitizeHeaders(r.Header),
			)
		}

		wrapper := &responseWriterWrapper{ResponseWriter: w, statusCode: http.StatusOK, start: start}
		next.ServeHTTP(wrapper, r.WithContext(ctx))

		duration := time.Since(start)
		if quiet && wrapper.statusCode < http.StatusBadRequest {
			return
		}

		if wrapper.statusCode >= http.StatusInternalServerError {
			logger.Error(logger.WithStage(ctx, logger.LogStages.RequestFailed), "Request failed",
				fmt.Errorf("status code: %d", wrapper.statusCode),
				"response_status_code", wrapper.statusCode,
				"response_bytes", wrapper.bytes,
				"response_duration_ms", duration.Milliseconds(),
			)
			return
		}

		stage := logger.LogStages.RequestCompleted
		if wrapper.statusCode >= http.StatusBadRequest {
			stage = logger.LogStages.RequestFailed
		}
		logger.Info(logger.WithStage(ctx, stage), "Request completed",
			"response_status_code", wrapper.statusCode,
			"response_bytes", wrapper.bytes,
			"response_duration_ms", duration.Milliseconds(),
		)
	})
}

// extractRequestID returns the request id and where it came from
func extractRequestID(r *http.Request) (string, string) {
	if clientID := r.Header.Get(utils.HeaderRequestID); utils.ValidRequestID(clientID) {
		return clientID, "client-x-request-id"
	}
	return utils.GenerateRequestID(), "generated-uuid"
}

// responseWriterWrapper records status and size, and stamps X-Response-Time
// before headers go out
type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode    int
	bytes         int
	start         time.Time
	headerWritten bool
}

func (w *responseWriterWrapper) WriteHeader(statusCode int) {
	if w.headerWritten {
		return
	}
	w.headerWritten = true
	w.statusCode = statusCode
	w.Header().Set(utils.HeaderResponseTime, fmt.Sprintf("%dms", time.Since(w.start).Milliseconds()))
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriterWrapper) Write(data []byte) (int, error) {
	if !w.headerWritten {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(data)
	w.bytes += n
	return n, err
}

// Unwrap exposes the underlying writer to http.ResponseController
func (w *responseWriterWrapper) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
