package infra

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Deduplicator coalesces identical in-flight calls. When several tool
// invocations ask for the same page at once, only one upstream request is
// made and every waiter receives its result.
type Deduplicator struct {
	mu       sync.Mutex
	inflight map[string]*inflightCall
}

type inflightCall struct {
	done   chan struct{}
	result interface{}
	err    error
}

// NewDeduplicator creates an empty deduplicator.
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{inflight: make(map[string]*inflightCall)}
}

// Do runs fn unless a call with the same key is already in flight, in which
// case it waits for that call instead. The second return value reports
// whether the result was shared from another caller.
func (d *Deduplicator) Do(ctx context.Context, key string, fn func() (interface{}, error)) (interface{}, bool, error) {
	d.mu.Lock()
	if call, ok := d.inflight[key]; ok {
		d.mu.Unlock()
		select {
		case <-call.done:
			return call.result, true, call.err
		case <-ctx.Done():
			return nil, false, ctx.Err()
		}
	}

	call := &inflightCall{done: make(chan struct{})}
	d.inflight[key] = call
	d.mu.Unlock()

	call.result, call.err = fn()
	close(call.done)

	d.mu.Lock()
	delete(d.inflight, key)
	d.mu.Unlock()

	return call.result, false, call.err
}

// InFlight returns the number of calls currently executing.
func (d *Deduplicator) InFlight() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.inflight)
}

// CircuitState is the breaker's current mode.
type CircuitState int

const (
	CircuitClosed   CircuitState = iota // normal operation
	CircuitOpen                         // failing fast
	CircuitHalfOpen                     // probing for recovery
)

func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreaker fails fast when the upstream API stops responding. After
// failureThreshold consecutive failures the circuit opens; after resetTimeout
// it lets a limited number of probe requests through, and one success closes
// it again.
type CircuitBreaker struct {
	mu sync.RWMutex

	failureThreshold int
	resetTimeout     time.Duration
	halfOpenMax      int

	state            CircuitState
	consecutiveFails int
	lastFailure      time.Time
	halfOpenProbes   int
}

// NewCircuitBreaker creates a breaker with default thresholds.
func NewCircuitBreaker() *CircuitBreaker {
	return NewCircuitBreakerWithConfig(5, 30*time.Second, 2)
}

// NewCircuitBreakerWithConfig creates a breaker with explicit thresholds.
func NewCircuitBreakerWithConfig(failureThreshold int, resetTimeout time.Duration, halfOpenMax int) *CircuitBreaker {
	return &CircuitBreaker{
		failureThreshold: failureThreshold,
		resetTimeout:     resetTimeout,
		halfOpenMax:      halfOpenMax,
		state:            CircuitClosed,
	}
}

// Allow reports whether a request may proceed.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitClosed:
		return true
	case CircuitOpen:
		if time.Since(cb.lastFailure) > cb.resetTimeout {
			cb.state = CircuitHalfOpen
			cb.halfOpenProbes = 1
			return true
		}
		return false
	case CircuitHalfOpen:
		if cb.halfOpenProbes < cb.halfOpenMax {
			cb.halfOpenProbes++
			return true
		}
		return false
	default:
		return false
	}
}

// RecordSuccess resets the failure count and closes a half-open circuit.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.consecutiveFails = 0
	if cb.state == CircuitHalfOpen {
		cb.state = CircuitClosed
		cb.halfOpenProbes = 0
	}
}

// RecordFailure counts a failure, opening the circuit at the threshold.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.consecutiveFails++
	cb.lastFailure = time.Now()

	switch cb.state {
	case CircuitClosed:
		if cb.consecutiveFails >= cb.failureThreshold {
			cb.state = CircuitOpen
		}
	case CircuitHalfOpen:
		cb.state = CircuitOpen
		cb.halfOpenProbes = 0
	}
}

// State returns the current circuit state.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// CircuitStats is a snapshot of the breaker for the status tool.
type CircuitStats struct {
	State            string    `json:"state"`
	ConsecutiveFails int       `json:"consecutive_failures"`
	LastFailure      time.Time `json:"last_failure,omitempty"`
}

// Stats returns breaker statistics.
func (cb *CircuitBreaker) Stats() CircuitStats {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return CircuitStats{
		State:            cb.state.String(),
		ConsecutiveFails: cb.consecutiveFails,
		LastFailure:      cb.lastFailure,
	}
}

// RetryAt returns when an open circuit will next admit a probe.
func (cb *CircuitBreaker) RetryAt() time.Time {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.lastFailure.Add(cb.resetTimeout)
}

// ErrCircuitOpen is returned when a request is rejected by an open circuit.
type ErrCircuitOpen struct {
	RetryAt time.Time
}

func (e ErrCircuitOpen) Error() string {
	return fmt.Sprintf("telegraph API circuit is open, retry after %s", e.RetryAt.Format(time.RFC3339))
}
