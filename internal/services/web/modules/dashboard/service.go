package dashboard

import (
	"context"
	"net/url"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nominaweb/nominaweb/internal/domain"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/auditlog"
	"github.com/nominaweb/nominaweb/internal/services/web/platform/crud"
	"github.com/nominaweb/nominaweb/internal/services/web/routepath"
	webstorage "github.com/nominaweb/nominaweb/internal/services/web/storage"
)

// recentAuditLimit is the number of audit entries on the dashboard.
const recentAuditLimit = 10

type sources struct {
	empleados    crud.Lister[domain.Empleado]
	contratos    crud.Lister[domain.Contrato]
	prestamos    crud.Lister[domain.Prestamo]
	comprobantes crud.Lister[domain.Comprobante]
}

// counter is one headline number. A nil count means the source is not
// configured.
type counter struct {
	id    string
	key   string
	url   string
	count func(context.Context) (int, error)
}

// Stat is a loaded counter. Degraded stats carry no value.
type Stat struct {
	ID       string
	Key      string
	URL      string
	Value    int
	Degraded bool
}

// Snapshot is the data behind one dashboard render.
type Snapshot struct {
	Stats         []Stat
	Audit         []webstorage.AuditEntry
	AuditDegraded bool
}

// Degraded reports whether any part of the snapshot failed to load.
func (s Snapshot) Degraded() bool {
	if s.AuditDegraded {
		return true
	}
	for _, stat := range s.Stats {
		if stat.Degraded {
			return true
		}
	}
	return false
}

type service struct {
	counters []counter
	audit    *auditlog.Recorder
}

func newService(src sources, audit *auditlog.Recorder) service {
	return service{
		counters: []counter{
			{
				id:    "stat-empleados",
				key:   "dashboard.stat.empleados_activos",
				url:   filtered(routepath.Empleados, "estado", domain.EstadoActivo),
				count: countWhere(src.empleados, func(e domain.Empleado) bool { return e.Estado == domain.EstadoActivo }),
			},
			{
				id:    "stat-contratos",
				key:   "dashboard.stat.contratos_vigentes",
				url:   filtered(routepath.Contratos, "estado", domain.ContratoVigente),
				count: countWhere(src.contratos, func(c domain.Contrato) bool { return c.Estado == domain.ContratoVigente }),
			},
			{
				id:    "stat-prestamos",
				key:   "dashboard.stat.prestamos_pendientes",
				url:   filtered(routepath.Prestamos, "estado", domain.PrestamoPendiente),
				count: countWhere(src.prestamos, func(p domain.Prestamo) bool { return p.Estado == domain.PrestamoPendiente }),
			},
			{
				id:    "stat-comprobantes",
				key:   "dashboard.stat.comprobantes_borrador",
				url:   filtered(routepath.Comprobantes, "estado", domain.ComprobanteBorrador),
				count: countWhere(src.comprobantes, func(c domain.Comprobante) bool { return c.Estado == domain.ComprobanteBorrador }),
			},
		},
		audit: audit,
	}
}

// load fetches every counter and the recent audit entries concurrently. One
// failing source degrades its own card and leaves the rest intact.
func (s service) load(ctx context.Context, logger *zap.Logger) Snapshot {
	snapshot := Snapshot{Stats: make([]Stat, len(s.counters))}
	var (
		g  errgroup.Group
		mu sync.Mutex
	)
	for idx, c := range s.counters {
		g.Go(func() error {
			stat := Stat{ID: c.id, Key: c.key, URL: c.url}
			if c.count == nil {
				stat.Degraded = true
			} else if value, err := c.count(ctx); err != nil {
				logger.Warn("dashboard counter failed", zap.String("counter", c.id), zap.Error(err))
				stat.Degraded = true
			} else {
				stat.Value = value
			}
			mu.Lock()
			snapshot.Stats[idx] = stat
			mu.Unlock()
			return nil
		})
	}
	g.Go(func() error {
		entries, err := s.audit.Recent(ctx, recentAuditLimit)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			logger.Warn("dashboard audit failed", zap.Error(err))
			snapshot.AuditDegraded = true
			return nil
		}
		snapshot.Audit = entries
		return nil
	})
	_ = g.Wait()
	return snapshot
}

func countWhere[T any](lister crud.Lister[T], keep func(T) bool) func(context.Context) (int, error) {
	if lister == nil {
		return nil
	}
	return func(ctx context.Context) (int, error) {
		items, err := lister.List(ctx)
		if err != nil {
			return 0, err
		}
		total := 0
		for _, item := range items {
			if keep(item) {
				total++
			}
		}
		return total, nil
	}
}

func filtered(prefix, name, value string) string {
	return routepath.WithQuery(prefix, url.Values{name: {value}})
}
