package storage

import (
	"context"
	"path/filepath"
	"testing"

	"opsboard/internal/amqp"
)

func newTestRepo(t *testing.T) *AuditRepository {
	t.Helper()
	repo, err := NewAuditRepository(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("NewAuditRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestRecordAndListEvents(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	events := []*amqp.RowEvent{
		amqp.NewRowEvent("Sales", amqp.OpAppend, "sale-1", "ae@corp.kr", []string{"2024-03-01", "영업부"}),
		amqp.NewRowEvent("Proposals", amqp.OpAppend, "prop-1", "ae@corp.kr", nil),
		amqp.NewRowEvent("Proposals", amqp.OpUpdate, "prop-1", "admin@corp.kr", nil),
	}
	for _, e := range events {
		if _, err := repo.RecordEvent(ctx, e); err != nil {
			t.Fatalf("RecordEvent: %v", err)
		}
	}

	n, err := repo.CountEvents(ctx)
	if err != nil {
		t.Fatalf("CountEvents: %v", err)
	}
	if n != 3 {
		t.Fatalf("count = %d", n)
	}

	got, err := repo.ListEvents(ctx, "Proposals", 10)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d", len(got))
	}
	// Newest first.
	if got[0].Op != amqp.OpUpdate || got[1].Op != amqp.OpAppend {
		t.Fatalf("order = %+v", got)
	}
	if got[0].OccurredAt.IsZero() {
		t.Fatal("occurred_at not parsed")
	}

	all, err := repo.ListEvents(ctx, "", 10)
	if err != nil {
		t.Fatalf("ListEvents all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("all len = %d", len(all))
	}
}

func TestListEventsLimit(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	for i := 0; i < 5; i++ {
		if _, err := repo.RecordEvent(ctx, amqp.NewRowEvent("Sales", amqp.OpAppend, "sale-1", "x", nil)); err != nil {
			t.Fatalf("RecordEvent: %v", err)
		}
	}
	got, err := repo.ListEvents(ctx, "Sales", 2)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d", len(got))
	}
}
