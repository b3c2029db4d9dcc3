package worker

import (
	"context"
	"path/filepath"
	"testing"

	"opsboard/internal/amqp"
	"opsboard/internal/storage"
)

func TestHandleRowEvent(t *testing.T) {
	ctx := context.Background()
	archive, err := storage.NewAuditRepository(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("NewAuditRepository: %v", err)
	}
	defer archive.Close()

	w := NewAuditWorker(archive)

	if err := w.HandleRowEvent(ctx, amqp.NewRowEvent("Sales", amqp.OpAppend, "sale-1", "ae@corp.kr", nil)); err != nil {
		t.Fatalf("HandleRowEvent: %v", err)
	}

	// Malformed events are dropped, not requeued.
	if err := w.HandleRowEvent(ctx, &amqp.RowEvent{}); err != nil {
		t.Fatalf("malformed event should be dropped silently: %v", err)
	}

	n, err := archive.CountEvents(ctx)
	if err != nil {
		t.Fatalf("CountEvents: %v", err)
	}
	if n != 1 {
		t.Fatalf("archived = %d, want only the valid event", n)
	}
}
