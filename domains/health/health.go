package health

import (
	"context"
	"time"
)

type Status string

const (
	StatusOk   Status = "OK"
	StatusBusy Status = "BUSY"

	// StatusDegraded means the networked cache stopped answering; requests are served from the file cache.
	StatusDegraded Status = "DEGRADED"
)

// Pinger checks that the networked cache is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthRecord struct {
	Status       Status    `json:"status"`
	ServerID     string    `json:"server_id"`
	Version      string    `json:"version"`
	CacheBackend string    `json:"cache_backend"`
	CacheError   string    `json:"cache_error,omitempty"`
	GuardBusy    bool      `json:"guard_busy"`
	Processed    int64     `json:"processed"`
	Rejected     int64     `json:"rejected"`
	Uptime       string    `json:"uptime"`
	CheckedAt    time.Time `json:"checked_at"`
}

type IHealthUsecase interface {
	GetStatus(ctx context.Context) (HealthRecord, error)
}
