// Package runmonitor keeps a bounded in-memory history of pipeline runs.
package runmonitor

import (
	"sync"
	"sync/atomic"
	"time"
)

type Outcome string

const (
	OutcomeCacheHit  Outcome = "cache_hit"
	OutcomeGenerated Outcome = "generated"
	OutcomeRejected  Outcome = "rejected"
	OutcomeInvalid   Outcome = "invalid"
	OutcomeFailed    Outcome = "failed"
)

type Event struct {
	Timestamp  time.Time `json:"timestamp"`
	TraceID    string    `json:"trace_id,omitempty"`
	Key        string    `json:"key,omitempty"`
	Kind       string    `json:"kind"`
	Outcome    Outcome   `json:"outcome"`
	Status     int       `json:"status"`
	Error      string    `json:"error,omitempty"`
	DurationMs int64     `json:"duration_ms"`
}

type Stats struct {
	TotalRequests int64   `json:"total_requests"`
	CacheHits     int64   `json:"cache_hits"`
	Generated     int64   `json:"generated"`
	Rejected      int64   `json:"rejected"`
	Invalid       int64   `json:"invalid"`
	Failed        int64   `json:"failed"`
	RecentEvents  []Event `json:"recent_events"`
}

// Monitor is a fixed-size ring of events plus running totals.
// Totals cover every event ever recorded; the ring only the latest ones.
type Monitor struct {
	eventsMu sync.Mutex
	events   []Event
	idx      int
	count    int
	ttl      time.Duration

	totalRequests atomic.Int64
	cacheHits     atomic.Int64
	generated     atomic.Int64
	rejected      atomic.Int64
	invalid       atomic.Int64
	failed        atomic.Int64
}

// New keeps the last size events. A positive ttl hides older events from GetStats.
func New(size int, ttl time.Duration) *Monitor {
	if size <= 0 {
		size = 200
	}
	return &Monitor{events: make([]Event, size), ttl: ttl}
}

func (m *Monitor) Record(e Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}

	m.totalRequests.Add(1)
	switch e.Outcome {
	case OutcomeCacheHit:
		m.cacheHits.Add(1)
	case OutcomeGenerated:
		m.generated.Add(1)
	case OutcomeRejected:
		m.rejected.Add(1)
	case OutcomeInvalid:
		m.invalid.Add(1)
	case OutcomeFailed:
		m.failed.Add(1)
	}

	m.eventsMu.Lock()
	m.events[m.idx] = e
	m.idx = (m.idx + 1) % len(m.events)
	if m.count < len(m.events) {
		m.count++
	}
	m.eventsMu.Unlock()
}

// GetStats returns the totals and the retained events, oldest first.
func (m *Monitor) GetStats() Stats {
	m.eventsMu.Lock()
	defer m.eventsMu.Unlock()

	var cutoff time.Time
	if m.ttl > 0 {
		cutoff = time.Now().UTC().Add(-m.ttl)
	}

	res := make([]Event, 0, m.count)
	start := (m.idx - m.count + len(m.events)) % len(m.events)
	for i := 0; i < m.count; i++ {
		e := m.events[(start+i)%len(m.events)]
		if !cutoff.IsZero() && e.Timestamp.Before(cutoff) {
			continue
		}
		res = append(res, e)
	}

	return Stats{
		TotalRequests: m.totalRequests.Load(),
		CacheHits:     m.cacheHits.Load(),
		Generated:     m.generated.Load(),
		Rejected:      m.rejected.Load(),
		Invalid:       m.invalid.Load(),
		Failed:        m.failed.Load(),
		RecentEvents:  res,
	}
}
