package storage

import (
	"context"
	"strings"
	"time"
)

// Action names one audited mutation.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionUpload Action = "upload"
)

// DefaultAuditLimit bounds audit listings when callers pass no limit.
const DefaultAuditLimit = 10

// MaxAuditLimit caps one audit listing.
const MaxAuditLimit = 500

// AuditEntry stores one recorded mutation.
type AuditEntry struct {
	ID       int64     `json:"id" yaml:"id"`
	At       time.Time `json:"at" yaml:"at"`
	Actor    string    `json:"actor" yaml:"actor"`
	Action   Action    `json:"action" yaml:"action"`
	Entity   string    `json:"entity" yaml:"entity"`
	EntityID string    `json:"entity_id" yaml:"entity_id"`
	Summary  string    `json:"summary" yaml:"summary"`
}

// AuditStore is the persistence contract for the audit log.
type AuditStore interface {
	Close() error
	RecordAudit(ctx context.Context, entry AuditEntry) (AuditEntry, error)
	ListAudit(ctx context.Context, limit int) ([]AuditEntry, error)
}

// ClampAuditLimit maps a requested listing size into [1, MaxAuditLimit].
func ClampAuditLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultAuditLimit
	case limit > MaxAuditLimit:
		return MaxAuditLimit
	default:
		return limit
	}
}

// NormalizeAuditEntry trims text fields and stamps a missing time.
func NormalizeAuditEntry(entry AuditEntry, now time.Time) AuditEntry {
	entry.Actor = strings.TrimSpace(entry.Actor)
	entry.Action = Action(strings.ToLower(strings.TrimSpace(string(entry.Action))))
	entry.Entity = strings.TrimSpace(entry.Entity)
	entry.EntityID = strings.TrimSpace(entry.EntityID)
	entry.Summary = strings.TrimSpace(entry.Summary)
	if entry.At.IsZero() {
		entry.At = now
	}
	entry.At = entry.At.UTC()
	return entry
}

// Discard is an AuditStore that keeps nothing. Commands use it when no audit
// database path is configured.
type Discard struct{}

// Close is a no-op.
func (Discard) Close() error { return nil }

// RecordAudit returns the normalized entry without storing it.
func (Discard) RecordAudit(_ context.Context, entry AuditEntry) (AuditEntry, error) {
	return NormalizeAuditEntry(entry, time.Now()), nil
}

// ListAudit always returns an empty list.
func (Discard) ListAudit(context.Context, int) ([]AuditEntry, error) {
	return []AuditEntry{}, nil
}
