// Package worker consumes row events from AMQP and archives them in the
// local SQLite audit database.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"opsboard/internal/amqp"
	"opsboard/internal/storage"
)

type AuditWorker struct {
	archive *storage.AuditRepository
}

func NewAuditWorker(archive *storage.AuditRepository) *AuditWorker {
	return &AuditWorker{archive: archive}
}

// HandleRowEvent archives a single event. Returning an error makes the
// consumer nack-and-requeue, so archiving is at-least-once; duplicate rows
// in the audit table are harmless.
func (w *AuditWorker) HandleRowEvent(ctx context.Context, e *amqp.RowEvent) error {
	if e.Sheet == "" || e.Op == "" {
		slog.WarnContext(ctx, "Dropping malformed row event", "sheet", e.Sheet, "op", e.Op)
		return nil
	}
	if _, err := w.archive.RecordEvent(ctx, e); err != nil {
		return fmt.Errorf("archive row event: %w", err)
	}
	return nil
}

// LogStartupState reports the archive size so operators can spot a wiped or
// misconfigured database right after deploy.
func (w *AuditWorker) LogStartupState(ctx context.Context) {
	n, err := w.archive.CountEvents(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Could not count archived events", "error", err)
		return
	}
	slog.InfoContext(ctx, "Audit archive ready", "archived_events", n)
}
