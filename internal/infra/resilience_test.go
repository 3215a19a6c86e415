package infra

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestDeduplicator_SingleCall(t *testing.T) {
	d := NewDeduplicator()

	result, shared, err := d.Do(context.Background(), "page:p", func() (interface{}, error) {
		return "result", nil
	})
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if shared {
		t.Error("single call must not be marked shared")
	}
	if result != "result" {
		t.Errorf("result = %v", result)
	}
	if d.InFlight() != 0 {
		t.Errorf("expected no in-flight calls after completion, got %d", d.InFlight())
	}
}

func TestDeduplicator_CoalescesConcurrentCalls(t *testing.T) {
	d := NewDeduplicator()

	var executions atomic.Int32
	release := make(chan struct{})
	started := make(chan struct{})

	var wg sync.WaitGroup
	var sharedCount atomic.Int32
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, shared, _ := d.Do(context.Background(), "views:p", func() (interface{}, error) {
			executions.Add(1)
			close(started)
			<-release
			return "shared-result", nil
		})
		if shared {
			sharedCount.Add(1)
		}
	}()

	<-started
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, shared, err := d.Do(context.Background(), "views:p", func() (interface{}, error) {
				executions.Add(1)
				return "late-result", nil
			})
			if err != nil {
				t.Errorf("waiter failed: %v", err)
			}
			if result != "shared-result" {
				t.Errorf("waiter got %v, want shared-result", result)
			}
			if shared {
				sharedCount.Add(1)
			}
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := executions.Load(); n != 1 {
		t.Errorf("function executed %d times, want 1", n)
	}
	if n := sharedCount.Load(); n != 4 {
		t.Errorf("shared count = %d, want 4", n)
	}
}

func TestDeduplicator_DistinctKeysRunIndependently(t *testing.T) {
	d := NewDeduplicator()

	var executions atomic.Int32
	var wg sync.WaitGroup
	for _, key := range []string{"page:a", "page:b"} {
		wg.Add(1)
		go func(k string) {
			defer wg.Done()
			_, _, _ = d.Do(context.Background(), k, func() (interface{}, error) {
				executions.Add(1)
				return k, nil
			})
		}(key)
	}
	wg.Wait()

	if n := executions.Load(); n != 2 {
		t.Errorf("function executed %d times, want 2", n)
	}
}

func TestDeduplicator_WaiterHonorsContext(t *testing.T) {
	d := NewDeduplicator()

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_, _, _ = d.Do(context.Background(), "slow", func() (interface{}, error) {
			close(started)
			<-release
			return nil, nil
		})
	}()
	<-started
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := d.Do(ctx, "slow", func() (interface{}, error) {
		t.Error("waiter must not execute the function")
		return nil, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestDeduplicator_PropagatesError(t *testing.T) {
	d := NewDeduplicator()

	wantErr := errors.New("upstream down")
	_, _, err := d.Do(context.Background(), "key", func() (interface{}, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want %v", err, wantErr)
	}
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb := NewCircuitBreakerWithConfig(3, time.Minute, 1)

	for i := 0; i < 2; i++ {
		cb.RecordFailure()
		if !cb.Allow() {
			t.Fatalf("circuit opened after %d failures, threshold is 3", i+1)
		}
	}
	cb.RecordFailure()

	if cb.State() != CircuitOpen {
		t.Errorf("state = %v, want open", cb.State())
	}
	if cb.Allow() {
		t.Error("open circuit must reject requests")
	}
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreakerWithConfig(3, time.Minute, 1)

	cb.RecordFailure()
	cb.RecordFailure()
	cb.RecordSuccess()
	cb.RecordFailure()
	cb.RecordFailure()

	if cb.State() != CircuitClosed {
		t.Errorf("state = %v, want closed after interleaved success", cb.State())
	}
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb := NewCircuitBreakerWithConfig(1, 10*time.Millisecond, 2)

	cb.RecordFailure()
	if cb.Allow() {
		t.Fatal("circuit should be open")
	}

	time.Sleep(20 * time.Millisecond)

	if !cb.Allow() {
		t.Fatal("circuit should admit a probe after the reset timeout")
	}
	if cb.State() != CircuitHalfOpen {
		t.Errorf("state = %v, want half-open", cb.State())
	}

	cb.RecordSuccess()
	if cb.State() != CircuitClosed {
		t.Errorf("state = %v, want closed after successful probe", cb.State())
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb := NewCircuitBreakerWithConfig(1, 10*time.Millisecond, 2)

	cb.RecordFailure()
	time.Sleep(20 * time.Millisecond)

	if !cb.Allow() {
		t.Fatal("circuit should admit a probe")
	}
	cb.RecordFailure()

	if cb.State() != CircuitOpen {
		t.Errorf("state = %v, want open after failed probe", cb.State())
	}
}

func TestCircuitBreaker_HalfOpenLimitsProbes(t *testing.T) {
	cb := NewCircuitBreakerWithConfig(1, 10*time.Millisecond, 2)

	cb.RecordFailure()
	time.Sleep(20 * time.Millisecond)

	if !cb.Allow() || !cb.Allow() {
		t.Fatal("half-open circuit should admit up to 2 probes")
	}
	if cb.Allow() {
		t.Error("half-open circuit admitted a third probe")
	}
}

func TestCircuitBreaker_Stats(t *testing.T) {
	cb := NewCircuitBreakerWithConfig(5, time.Minute, 1)
	cb.RecordFailure()
	cb.RecordFailure()

	stats := cb.Stats()
	if stats.State != "closed" {
		t.Errorf("stats.State = %q, want closed", stats.State)
	}
	if stats.ConsecutiveFails != 2 {
		t.Errorf("stats.ConsecutiveFails = %d, want 2", stats.ConsecutiveFails)
	}
	if stats.LastFailure.IsZero() {
		t.Error("stats.LastFailure should be set")
	}
}

func TestErrCircuitOpen_Message(t *testing.T) {
	err := ErrCircuitOpen{RetryAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	want := "telegraph API circuit is open, retry after 2026-01-02T03:04:05Z"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
