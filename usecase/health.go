package usecase

import (
	"context"
	"time"

	domainCache "github.com/shiurnotes/shiurnotes/domains/cache"
	"github.com/shiurnotes/shiurnotes/domains/health"
	"github.com/shiurnotes/shiurnotes/pkg/guard"
)

const pingTimeout = 2 * time.Second

type serviceHealth struct {
	guard    *guard.Guard
	cache    domainCache.IGateway
	pinger   health.Pinger
	serverID string
	version  string
	started  time.Time
}

// NewHealthService builds the health usecase. pinger is nil when no networked
// cache is configured.
func NewHealthService(g *guard.Guard, cache domainCache.IGateway, pinger health.Pinger, serverID, version string) health.IHealthUsecase {
	return &serviceHealth{
		guard:    g,
		cache:    cache,
		pinger:   pinger,
		serverID: serverID,
		version:  version,
		started:  time.Now(),
	}
}

func (service serviceHealth) GetStatus(ctx context.Context) (health.HealthRecord, error) {
	stats := service.guard.Stats()

	status := health.StatusOk
	var cacheErr string
	if service.pinger != nil {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := service.pinger.Ping(pingCtx); err != nil {
			status = health.StatusDegraded
			cacheErr = err.Error()
		}
	}
	if stats.Busy {
		status = health.StatusBusy
	}

	return health.HealthRecord{
		Status:       status,
		ServerID:     service.serverID,
		Version:      service.version,
		CacheBackend: service.cache.Backend(),
		CacheError:   cacheErr,
		GuardBusy:    stats.Busy,
		Processed:    stats.Acquired,
		Rejected:     stats.Rejected,
		Uptime:       time.Since(service.started).Round(time.Second).String(),
		CheckedAt:    time.Now().UTC(),
	}, nil
}
