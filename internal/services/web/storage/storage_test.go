package storage

import (
	"context"
	"testing"
	"time"
)

func TestClampAuditLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int
		want int
	}{
		{in: 0, want: DefaultAuditLimit},
		{in: -4, want: DefaultAuditLimit},
		{in: 25, want: 25},
		{in: MaxAuditLimit + 1, want: MaxAuditLimit},
	}
	for _, tc := range tests {
		if got := ClampAuditLimit(tc.in); got != tc.want {
			t.Fatalf("ClampAuditLimit(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestDiscardNormalizesAndKeepsNothing(t *testing.T) {
	t.Parallel()

	var store AuditStore = Discard{}
	saved, err := store.RecordAudit(context.Background(), AuditEntry{Action: " Update ", Entity: " cargos "})
	if err != nil {
		t.Fatalf("RecordAudit() error = %v", err)
	}
	if saved.Action != ActionUpdate || saved.Entity != "cargos" {
		t.Fatalf("saved = %+v, want normalized entry", saved)
	}
	if saved.At.IsZero() || saved.At.Location() != time.UTC {
		t.Fatalf("At = %v, want stamped UTC time", saved.At)
	}
	entries, err := store.ListAudit(context.Background(), 5)
	if err != nil || len(entries) != 0 {
		t.Fatalf("ListAudit() = %v, %v, want empty", entries, err)
	}
}
