// Package auditlog records successful mutations made through the web
// modules and exposes the most recent entries to the dashboard.
package auditlog

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nominaweb/nominaweb/internal/domain"
	webstorage "github.com/nominaweb/nominaweb/internal/services/web/storage"
)

// FallbackActor names the configured backend token when the profile lookup
// fails.
const FallbackActor = "backend-token"

// ActorSource resolves who performed a mutation.
type ActorSource interface {
	Actor(ctx context.Context) string
}

// ProfileReader is the backend profile lookup used to name the actor.
type ProfileReader interface {
	Get(ctx context.Context) (domain.Perfil, error)
}

// profileRetryInterval spaces out profile lookups while the backend fails.
const profileRetryInterval = time.Minute

// ProfileActor names the actor after the profile that owns the backend
// token. The username is cached after the first successful lookup; failed
// lookups fall back to FallbackActor until profileRetryInterval passes.
type ProfileActor struct {
	profile ProfileReader
	now     func() time.Time

	mu       sync.Mutex
	username string
	retryAt  time.Time
}

// NewProfileActor builds an actor source over the profile endpoint.
func NewProfileActor(profile ProfileReader) *ProfileActor {
	return &ProfileActor{profile: profile, now: time.Now}
}

// Actor returns the cached username, resolving it on first use. The lookup
// runs without holding the lock.
func (a *ProfileActor) Actor(ctx context.Context) string {
	if a == nil || a.profile == nil {
		return FallbackActor
	}
	now := a.clock()
	a.mu.Lock()
	username, retryAt := a.username, a.retryAt
	a.mu.Unlock()
	if username != "" {
		return username
	}
	if now.Before(retryAt) {
		return FallbackActor
	}

	perfil, err := a.profile.Get(ctx)
	username = strings.TrimSpace(perfil.Username)

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.username != "" {
		return a.username
	}
	if err != nil || username == "" {
		a.retryAt = now.Add(profileRetryInterval)
		return FallbackActor
	}
	a.username = username
	a.retryAt = time.Time{}
	return username
}

func (a *ProfileActor) clock() time.Time {
	if a.now == nil {
		return time.Now()
	}
	return a.now()
}

// StaticActor always returns the same name.
type StaticActor string

// Actor returns the fixed name.
func (s StaticActor) Actor(context.Context) string {
	if strings.TrimSpace(string(s)) == "" {
		return FallbackActor
	}
	return string(s)
}

// Recorder writes audit entries. Store failures are logged and never fail
// the mutation that triggered them.
type Recorder struct {
	store  webstorage.AuditStore
	actor  ActorSource
	logger *zap.Logger
}

// New builds a recorder. A nil store keeps nothing.
func New(store webstorage.AuditStore, actor ActorSource, logger *zap.Logger) *Recorder {
	if store == nil {
		store = webstorage.Discard{}
	}
	if actor == nil {
		actor = StaticActor(FallbackActor)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{store: store, actor: actor, logger: logger}
}

// Record appends one entry for entity id.
func (r *Recorder) Record(ctx context.Context, action webstorage.Action, entity string, id int64, summary string) {
	if r == nil {
		return
	}
	entry := webstorage.AuditEntry{
		Actor:    r.actor.Actor(ctx),
		Action:   action,
		Entity:   entity,
		EntityID: strconv.FormatInt(id, 10),
		Summary:  summary,
	}
	if _, err := r.store.RecordAudit(ctx, entry); err != nil {
		r.logger.Warn("record audit entry",
			zap.String("entity", entity),
			zap.Int64("id", id),
			zap.String("action", string(action)),
			zap.Error(err),
		)
	}
}

// Recent lists the newest entries first.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]webstorage.AuditEntry, error) {
	if r == nil {
		return []webstorage.AuditEntry{}, nil
	}
	return r.store.ListAudit(ctx, webstorage.ClampAuditLimit(limit))
}
