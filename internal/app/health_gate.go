package app

import (
	"sync"
	"time"

	"sentiment-dashboard/models"
)

// DefaultHealthTTL is how long a health check result stays fresh.
const DefaultHealthTTL = 60 * time.Second

// HealthGate remembers the outcome of the most recent upstream health
// check. While the last check failed, data operations are blocked until a
// manual recheck succeeds.
type HealthGate struct {
	mu        sync.RWMutex
	status    *models.HealthStatus
	reachable bool
	checkedAt time.Time
	ttl       time.Duration
}

// NewHealthGate creates a gate with the given freshness TTL.
// A TTL of 0 makes every data operation re-probe health first.
func NewHealthGate(ttl time.Duration) *HealthGate {
	return &HealthGate{ttl: ttl}
}

// Record stores the outcome of a health check.
func (g *HealthGate) Record(status *models.HealthStatus, reachable bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.status = status
	g.reachable = reachable
	g.checkedAt = time.Now()
}

// Current returns the last observed status and whether the upstream was
// reachable at that point. Status is nil before the first check.
func (g *HealthGate) Current() (*models.HealthStatus, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.status, g.reachable
}

// Blocked reports whether the last completed check failed. A gate that has
// never checked is not blocked.
func (g *HealthGate) Blocked() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return !g.checkedAt.IsZero() && !g.reachable
}

// Stale reports whether a fresh check is due.
func (g *HealthGate) Stale() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.checkedAt.IsZero() || time.Since(g.checkedAt) >= g.ttl
}

// TTL returns the gate's freshness window.
func (g *HealthGate) TTL() time.Duration {
	return g.ttl
}
