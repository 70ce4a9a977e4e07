package outbox

import (
	"sync/atomic"
	"time"
)

// Metrics tracks outbox statistics using atomic operations for thread-safety
type Metrics struct {
	Enqueued  atomic.Int64
	Succeeded atomic.Int64
	Failed    atomic.Int64
	Retries   atomic.Int64
	Dropped   atomic.Int64
	StartTime time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	Enqueued  int64     `json:"enqueued"`
	Succeeded int64     `json:"succeeded"`
	Failed    int64     `json:"failed"`
	Retries   int64     `json:"retries"`
	Dropped   int64     `json:"dropped"`
	Pending   int64     `json:"pending"`
	StartTime time.Time `json:"start_time"`
	Uptime    string    `json:"uptime"`
}

// Snapshot returns a snapshot of current metrics
func (m *Metrics) Snapshot() MetricsSnapshot {
	enqueued := m.Enqueued.Load()
	succeeded := m.Succeeded.Load()
	failed := m.Failed.Load()
	return MetricsSnapshot{
		Enqueued:  enqueued,
		Succeeded: succeeded,
		Failed:    failed,
		Retries:   m.Retries.Load(),
		Dropped:   m.Dropped.Load(),
		Pending:   enqueued - succeeded - failed,
		StartTime: m.StartTime,
		Uptime:    time.Since(m.StartTime).String(),
	}
}
