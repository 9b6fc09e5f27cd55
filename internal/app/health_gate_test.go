package app

import (
	"testing"
	"time"

	"sentiment-dashboard/models"
)

func TestHealthGate_InitialState(t *testing.T) {
	g := NewHealthGate(DefaultHealthTTL)

	if g.Blocked() {
		t.Error("a gate that never checked must not block")
	}
	if !g.Stale() {
		t.Error("a gate that never checked is stale")
	}
	status, reachable := g.Current()
	if status != nil || reachable {
		t.Errorf("Current = %v, %v; want nil, false", status, reachable)
	}
}

func TestHealthGate_BlocksAfterFailure(t *testing.T) {
	g := NewHealthGate(DefaultHealthTTL)

	g.Record(nil, false)
	if !g.Blocked() {
		t.Error("gate must block after a failed check")
	}

	// A successful recheck clears the block.
	g.Record(&models.HealthStatus{Healthy: true}, true)
	if g.Blocked() {
		t.Error("gate must unblock after a successful check")
	}
}

func TestHealthGate_Stale(t *testing.T) {
	g := NewHealthGate(100 * time.Millisecond)

	g.Record(&models.HealthStatus{Healthy: true}, true)
	if g.Stale() {
		t.Error("freshly recorded gate should not be stale")
	}

	time.Sleep(120 * time.Millisecond)
	if !g.Stale() {
		t.Error("gate should be stale after its TTL")
	}
}

func TestHealthGate_ZeroTTLAlwaysStale(t *testing.T) {
	g := NewHealthGate(0)
	g.Record(&models.HealthStatus{Healthy: true}, true)
	if !g.Stale() {
		t.Error("zero TTL gate should always be stale")
	}
}
