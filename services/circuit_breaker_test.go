package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestNewCircuitBreakerRegistry(t *testing.T) {
	config := CircuitBreakerConfig{
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     10 * time.Second,
	}

	registry := NewCircuitBreakerRegistry(config)
	if registry == nil {
		t.Fatal("expected registry to be created")
	}
	if registry.breakers == nil {
		t.Error("expected breakers map to be initialized")
	}
	if registry.config != config {
		t.Error("expected config to be set")
	}
}

func TestCircuitBreakerRegistry_GetBreaker(t *testing.T) {
	registry := NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig)

	breaker1 := registry.GetBreaker(BreakerPredict)
	if breaker1 == nil {
		t.Fatal("expected breaker to be created")
	}

	breaker2 := registry.GetBreaker(BreakerPredict)
	if breaker1 != breaker2 {
		t.Error("expected same breaker instance for the same endpoint group")
	}

	breaker3 := registry.GetBreaker(BreakerReddit)
	if breaker1 == breaker3 {
		t.Error("expected different breaker for a different endpoint group")
	}
}

func TestCircuitBreakerRegistry_Execute_Success(t *testing.T) {
	registry := NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig)

	result, err := registry.Execute(context.Background(), BreakerHealth, func() (any, error) {
		return "ok", nil
	})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if result != "ok" {
		t.Errorf("expected 'ok', got %v", result)
	}
}

func TestCircuitBreakerRegistry_Execute_Error(t *testing.T) {
	registry := NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig)

	result, err := registry.Execute(context.Background(), BreakerHealth, func() (any, error) {
		return nil, errors.New("upstream down")
	})
	if err == nil {
		t.Error("expected error")
	}
	if result != nil {
		t.Errorf("expected nil result, got %v", result)
	}
}

func TestCircuitBreakerRegistry_Execute_ContextCanceled(t *testing.T) {
	registry := NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := registry.Execute(ctx, BreakerHealth, func() (any, error) {
		return "should not reach", nil
	})
	if err == nil {
		t.Error("expected error due to canceled context")
	}
}

func TestCircuitBreakerRegistry_TripsAfterRepeatedFailures(t *testing.T) {
	registry := NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig)
	ctx := context.Background()

	// Five straight failures cross both trip conditions (>=5 requests,
	// >=50% failure ratio).
	for i := 0; i < 5; i++ {
		_, _ = registry.Execute(ctx, BreakerReddit, func() (any, error) {
			return nil, fmt.Errorf("failure %d", i)
		})
	}

	_, err := registry.Execute(ctx, BreakerReddit, func() (any, error) {
		t.Error("call should be rejected while the breaker is open")
		return "unreachable", nil
	})
	if err == nil {
		t.Error("expected open-breaker rejection")
	}

	status := registry.Status()
	if status[BreakerReddit].State != "open" {
		t.Errorf("breaker state = %q, want open", status[BreakerReddit].State)
	}
}

func TestCircuitBreakerRegistry_FailureIsolatedPerGroup(t *testing.T) {
	registry := NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _ = registry.Execute(ctx, BreakerReddit, func() (any, error) {
			return nil, errors.New("reddit down")
		})
	}

	// A tripped reddit breaker must not block prediction calls.
	result, err := registry.Execute(ctx, BreakerPredict, func() (any, error) {
		return "prediction", nil
	})
	if err != nil {
		t.Errorf("unexpected error on healthy group: %v", err)
	}
	if result != "prediction" {
		t.Errorf("expected 'prediction', got %v", result)
	}
}

func TestCircuitBreakerRegistry_Status(t *testing.T) {
	registry := NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig)
	ctx := context.Background()

	_, _ = registry.Execute(ctx, BreakerStock, func() (any, error) {
		return "ok", nil
	})
	_, _ = registry.Execute(ctx, BreakerModel, func() (any, error) {
		return nil, errors.New("fail")
	})

	status := registry.Status()
	if len(status) != 2 {
		t.Fatalf("expected 2 breakers in status, got %d", len(status))
	}
	if status[BreakerStock].TotalSuccesses != 1 {
		t.Errorf("stock successes = %d, want 1", status[BreakerStock].TotalSuccesses)
	}
	if status[BreakerModel].TotalFailures != 1 {
		t.Errorf("model failures = %d, want 1", status[BreakerModel].TotalFailures)
	}
}

func TestWithCircuitBreaker_TypedResult(t *testing.T) {
	SetGlobalRegistry(NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig))

	got, err := WithCircuitBreaker(context.Background(), BreakerStock, func() (int, error) {
		return 42, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Errorf("got %d, want 42", got)
	}
}
