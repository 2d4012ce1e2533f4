package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestMachineTransitions(t *testing.T) {
	m := NewMachine(Linear(3, time.Second))
	if m.State() != Waiting {
		t.Fatalf("initial state = %v, want waiting", m.State())
	}

	state, d := m.Record(false)
	if state != Waiting || d != time.Second {
		t.Errorf("after 1st failure = (%v, %v), want (waiting, 1s)", state, d)
	}
	state, d = m.Record(false)
	if state != Waiting || d != 2*time.Second {
		t.Errorf("after 2nd failure = (%v, %v), want (waiting, 2s)", state, d)
	}
	state, d = m.Record(false)
	if state != ExhaustedRetries || d != 0 {
		t.Errorf("after 3rd failure = (%v, %v), want (exhausted, 0)", state, d)
	}

	// Terminal states ignore further outcomes.
	if state, _ := m.Record(true); state != ExhaustedRetries {
		t.Errorf("terminal state changed to %v", state)
	}
	if m.Attempts() != 3 {
		t.Errorf("Attempts = %d, want 3", m.Attempts())
	}
}

func TestMachineSucceeds(t *testing.T) {
	m := NewMachine(Fixed(5, 500*time.Millisecond))
	m.Record(false)
	if state, _ := m.Record(true); state != Succeeded {
		t.Errorf("state = %v, want succeeded", state)
	}
	if m.Attempts() != 2 {
		t.Errorf("Attempts = %d, want 2", m.Attempts())
	}
}

func TestMachineMinimumOneAttempt(t *testing.T) {
	m := NewMachine(Fixed(0, time.Second))
	if state, _ := m.Record(false); state != ExhaustedRetries {
		t.Errorf("state = %v, want exhausted", state)
	}
}

func TestDoRecordsDelays(t *testing.T) {
	var slept []time.Duration
	sleep := func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	var seen []int
	state, err := Do(context.Background(), Linear(5, time.Second), sleep, func(_ context.Context, n int) bool {
		seen = append(seen, n)
		return n == 4
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if state != Succeeded {
		t.Errorf("state = %v, want succeeded", state)
	}
	if diff := cmp.Diff([]int{1, 2, 3, 4}, seen); diff != "" {
		t.Errorf("attempt numbers (-want +got):\n%s", diff)
	}
	want := []time.Duration{time.Second, 2 * time.Second, 3 * time.Second}
	if diff := cmp.Diff(want, slept); diff != "" {
		t.Errorf("delays (-want +got):\n%s", diff)
	}
}

func TestDoExhausts(t *testing.T) {
	calls := 0
	state, err := Do(context.Background(), Fixed(2, time.Millisecond), func(context.Context, time.Duration) error { return nil },
		func(context.Context, int) bool {
			calls++
			return false
		})
	if err != nil || state != ExhaustedRetries {
		t.Errorf("Do = (%v, %v), want (exhausted, nil)", state, err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestDoStopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	state, err := Do(ctx, Fixed(3, time.Hour), Sleep, func(context.Context, int) bool { return false })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if state != Waiting {
		t.Errorf("state = %v, want waiting", state)
	}
}
