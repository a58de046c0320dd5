package database

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/majidyz63/ai-extractor/internal/logger"
)

// ErrAuditDisabled is returned by reads when no MongoDB URI is configured
var ErrAuditDisabled = errors.New("extraction audit log is disabled")

// writeTimeout bounds each asynchronous insert
const writeTimeout = 5 * time.Second

// extractionStore is the persistence the audit logger needs
type extractionStore interface {
	InsertExtractionLog(ctx context.Context, log *ExtractionLog) error
	GetRecentExtractionLogs(ctx context.Context, limit int64) ([]*ExtractionLog, error)
	GetExtractionLogByRequestID(ctx context.Context, requestID string) (*ExtractionLog, error)
}

// AuditLogger records extractions to MongoDB without blocking the request
type AuditLogger struct {
	store       extractionStore
	conn        *Connection
	environment string
	wg          sync.WaitGroup
}

// NewAuditLogger connects when config carries a URI. A connection failure is
// logged and leaves the logger disabled; the relay keeps serving.
func NewAuditLogger(ctx context.Context, config *DatabaseConfig) *AuditLogger {
	ctx = logger.WithComponent(ctx, logger.ComponentNames.Database)
	audit := &AuditLogger{environment: config.Environment}

	if config.URI == "" {
		logger.Info(ctx, "Extraction audit log disabled: no MongoDB URI provided")
		return audit
	}

	conn, err := Connect(ctx, config)
	if err != nil {
		logger.Error(ctx, "MongoDB URI provided but connection failed, audit log disabled", err)
		return audit
	}

	audit.conn = conn
	audit.store = NewExtractionRepository(conn)
	logger.Info(ctx, "Extraction audit log enabled", "database", config.DatabaseName)
	return audit
}

// NewDisabledAuditLogger returns a logger that records nothing
func NewDisabledAuditLogger() *AuditLogger {
	return &AuditLogger{}
}

// Enabled reports whether records are persisted
func (a *AuditLogger) Enabled() bool {
	return a != nil && a.store != nil
}

// Record stores entry in the background. Failures are logged, never returned.
func (a *AuditLogger) Record(ctx context.Context, entry *ExtractionLog) {
	if !a.Enabled() || entry == nil {
		return
	}
	if entry.Environment == "" {
		entry.Environment = a.environment
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	// Detach from the request so the insert outlives the response
	logCtx := logger.WithStage(logger.WithComponent(context.WithoutCancel(ctx), logger.ComponentNames.Database), logger.LogStages.AuditWrite)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		writeCtx, cancel := context.WithTimeout(logCtx, writeTimeout)
		defer cancel()

		if err := a.store.InsertExtractionLog(writeCtx, entry); err != nil {
			logger.Error(logCtx, "Failed to record extraction", err, "request_id", entry.RequestID)
		}
	}()
}

// Recent returns up to limit records, newest first
func (a *AuditLogger) Recent(ctx context.Context, limit int64) ([]*ExtractionLog, error) {
	if !a.Enabled() {
		return nil, ErrAuditDisabled
	}
	return a.store.GetRecentExtractionLogs(ctx, limit)
}

// Get returns the record for requestID, or nil when there is none
func (a *AuditLogger) Get(ctx context.Context, requestID string) (*ExtractionLog, error) {
	if !a.Enabled() {
		return nil, ErrAuditDisabled
	}
	return a.store.GetExtractionLogByRequestID(ctx, requestID)
}

// HealthCheck reports "disabled", "healthy" or "unhealthy"
func (a *AuditLogger) HealthCheck(ctx context.Context) string {
	if !a.Enabled() {
		return "disabled"
	}
	if a.conn == nil {
		return "healthy"
	}
	if err := a.conn.HealthCheck(ctx); err != nil {
		return "unhealthy"
	}
	return "healthy"
}

// Close waits for pending writes and disconnects
func (a *AuditLogger) Close(ctx context.Context) error {
	if a == nil {
		return nil
	}
	a.wg.Wait()
	return a.conn.Disconnect(ctx)
}
