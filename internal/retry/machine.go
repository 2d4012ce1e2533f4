// Package retry implements bounded retries as an explicit state machine.
package retry

import (
	"context"
	"time"
)

// State is the position of a Machine
type State int

const (
	// Waiting means another attempt is allowed
	Waiting State = iota
	// Succeeded means an attempt reported success
	Succeeded
	// ExhaustedRetries means the attempt budget is spent without success
	ExhaustedRetries
)

func (s State) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case Succeeded:
		return "succeeded"
	case ExhaustedRetries:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Policy bounds the number of attempts and the pause after each failure.
// Delay receives the 1-based number of the attempt that just failed.
type Policy struct {
	MaxAttempts int
	Delay       func(failed int) time.Duration
}

// Fixed waits the same interval after every failed attempt
func Fixed(attempts int, interval time.Duration) Policy {
	return Policy{
		MaxAttempts: attempts,
		Delay:       func(int) time.Duration { return interval },
	}
}

// Linear waits base*n after the n-th failed attempt
func Linear(attempts int, base time.Duration) Policy {
	return Policy{
		MaxAttempts: attempts,
		Delay:       func(n int) time.Duration { return base * time.Duration(n) },
	}
}

// Machine tracks attempts against a Policy
type Machine struct {
	policy   Policy
	attempts int
	state    State
}

// NewMachine creates a machine in the Waiting state
func NewMachine(p Policy) *Machine {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	return &Machine{policy: p}
}

// State returns the current state
func (m *Machine) State() State {
	return m.state
}

// Attempts returns how many outcomes have been recorded
func (m *Machine) Attempts() int {
	return m.attempts
}

// Record feeds the outcome of one attempt. When the returned state is
// Waiting, the duration is the pause before the next attempt.
func (m *Machine) Record(ok bool) (State, time.Duration) {
	if m.state != Waiting {
		return m.state, 0
	}
	m.attempts++
	switch {
	case ok:
		m.state = Succeeded
	case m.attempts >= m.policy.MaxAttempts:
		m.state = ExhaustedRetries
	default:
		var d time.Duration
		if m.policy.Delay != nil {
			d = m.policy.Delay(m.attempts)
		}
		return Waiting, d
	}
	return m.state, 0
}

// Sleeper pauses for d or until ctx is done
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep is the real-time Sleeper
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Do runs attempt until it succeeds or the policy is exhausted. attempt
// receives the 1-based attempt number. The error is non-nil only when ctx
// ended the loop early.
func Do(ctx context.Context, p Policy, sleep Sleeper, attempt func(ctx context.Context, n int) bool) (State, error) {
	if sleep == nil {
		sleep = Sleep
	}
	m := NewMachine(p)
	for {
		state, wait := m.Record(attempt(ctx, m.Attempts()+1))
		if state != Waiting {
			return state, nil
		}
		if err := sleep(ctx, wait); err != nil {
			return Waiting, err
		}
	}
}
