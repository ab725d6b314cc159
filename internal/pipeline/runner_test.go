package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/domaincheck/domaincheck/internal/model"
	"github.com/domaincheck/domaincheck/internal/probe"
)

// mockProbe is a test helper that implements the probe.Probe interface.
type mockProbe struct {
	name    string
	title   string
	delay   time.Duration
	runFunc func(ctx context.Context, domain model.Domain) model.Outcome
}

// Name implements Probe.Name.
func (m *mockProbe) Name() string { return m.name }

// Title implements Probe.Title.
func (m *mockProbe) Title() string {
	if m.title != "" {
		return m.title
	}
	return m.name
}

// Run implements Probe.Run.
func (m *mockProbe) Run(ctx context.Context, domain model.Domain) model.Outcome {
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return model.Failure(ctx.Err().Error())
		}
	}
	if m.runFunc != nil {
		return m.runFunc(ctx, domain)
	}
	return model.Success(model.Line{Label: "probe", Value: m.name})
}

// TestNewRunner tests the Runner constructor.
func TestNewRunner(t *testing.T) {
	t.Parallel()

	t.Run("creates runner with default settings", func(t *testing.T) {
		t.Parallel()

		r := NewRunner(nil)

		if r == nil {
			t.Fatal("expected non-nil runner")
		}
		if r.ProbeCount() != 0 {
			t.Errorf("expected 0 probes, got %d", r.ProbeCount())
		}
	})

	t.Run("applies WithProbeTimeout option", func(t *testing.T) {
		t.Parallel()

		r := NewRunner(nil, WithProbeTimeout(3*time.Second))

		if r.timeout != 3*time.Second {
			t.Errorf("expected 3s timeout, got %v", r.timeout)
		}
	})

	t.Run("ignores non-positive timeout", func(t *testing.T) {
		t.Parallel()

		r := NewRunner(nil, WithProbeTimeout(0))

		if r.timeout <= 0 {
			t.Errorf("expected default timeout to survive, got %v", r.timeout)
		}
	})
}

// TestRunnerRun tests concurrent execution, slot ordering, and the
// per-probe timeout budget.
func TestRunnerRun(t *testing.T) {
	t.Parallel()

	domain := model.MustNewDomain("example.com")

	t.Run("slots follow registry order regardless of completion order", func(t *testing.T) {
		t.Parallel()

		// The first probe is the slowest, so completion order is the
		// reverse of registry order.
		probes := []probe.Probe{
			&mockProbe{name: "first", delay: 150 * time.Millisecond},
			&mockProbe{name: "second", delay: 50 * time.Millisecond},
			&mockProbe{name: "third"},
		}

		r := NewRunner(probes, WithProbeTimeout(2*time.Second))
		slots := r.Run(context.Background(), domain)

		if len(slots) != 3 {
			t.Fatalf("expected 3 slots, got %d", len(slots))
		}
		for i, want := range []string{"first", "second", "third"} {
			if slots[i].Probe != want {
				t.Errorf("slot %d: expected %s, got %s", i, want, slots[i].Probe)
			}
		}
	})

	t.Run("probes run concurrently", func(t *testing.T) {
		t.Parallel()

		probes := []probe.Probe{
			&mockProbe{name: "a", delay: 100 * time.Millisecond},
			&mockProbe{name: "b", delay: 100 * time.Millisecond},
			&mockProbe{name: "c", delay: 100 * time.Millisecond},
		}

		r := NewRunner(probes, WithProbeTimeout(2*time.Second))

		start := time.Now()
		r.Run(context.Background(), domain)
		elapsed := time.Since(start)

		// Sequential execution would need 300ms.
		if elapsed > 250*time.Millisecond {
			t.Errorf("expected concurrent execution, took %v", elapsed)
		}
	})

	t.Run("exhausted budget yields timeout failure without blocking others", func(t *testing.T) {
		t.Parallel()

		probes := []probe.Probe{
			&mockProbe{name: "stuck", runFunc: func(ctx context.Context, domain model.Domain) model.Outcome {
				// Ignores cancellation entirely.
				time.Sleep(1 * time.Second)
				return model.Success()
			}},
			&mockProbe{name: "quick"},
		}

		r := NewRunner(probes, WithProbeTimeout(100*time.Millisecond))

		start := time.Now()
		slots := r.Run(context.Background(), domain)
		elapsed := time.Since(start)

		if elapsed > 500*time.Millisecond {
			t.Errorf("expected join to release at the budget, took %v", elapsed)
		}

		if !slots[0].Outcome.IsFailure() {
			t.Errorf("expected stuck probe to fail, got %v", slots[0].Outcome.Status)
		}
		if slots[0].Outcome.Cause != model.CauseTimeout {
			t.Errorf("expected timeout cause, got %q", slots[0].Outcome.Cause)
		}
		if !slots[1].Outcome.IsSuccess() {
			t.Errorf("expected quick probe to succeed, got %v", slots[1].Outcome.Status)
		}
	})

	t.Run("cancelled context releases all probes", func(t *testing.T) {
		t.Parallel()

		probes := []probe.Probe{
			&mockProbe{name: "a", delay: 5 * time.Second},
			&mockProbe{name: "b", delay: 5 * time.Second},
		}

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(50 * time.Millisecond)
			cancel()
		}()

		r := NewRunner(probes, WithProbeTimeout(10*time.Second))

		start := time.Now()
		slots := r.Run(ctx, domain)
		elapsed := time.Since(start)

		if elapsed > 1*time.Second {
			t.Errorf("expected cancellation to release the join, took %v", elapsed)
		}
		for i, slot := range slots {
			if !slot.Outcome.IsFailure() {
				t.Errorf("slot %d: expected failure after cancellation, got %v", i, slot.Outcome.Status)
			}
		}
	})

	t.Run("panicking probe becomes a failure slot", func(t *testing.T) {
		t.Parallel()

		probes := []probe.Probe{
			&mockProbe{name: "bad", runFunc: func(ctx context.Context, domain model.Domain) model.Outcome {
				panic("boom")
			}},
			&mockProbe{name: "good"},
		}

		r := NewRunner(probes, WithProbeTimeout(2*time.Second))
		slots := r.Run(context.Background(), domain)

		if !slots[0].Outcome.IsFailure() {
			t.Fatalf("expected failure, got %v", slots[0].Outcome.Status)
		}
		if !slots[1].Outcome.IsSuccess() {
			t.Errorf("expected neighbouring probe to succeed, got %v", slots[1].Outcome.Status)
		}
	})

	t.Run("empty registry yields no slots", func(t *testing.T) {
		t.Parallel()

		r := NewRunner(nil)
		slots := r.Run(context.Background(), domain)

		if len(slots) != 0 {
			t.Errorf("expected no slots, got %d", len(slots))
		}
	})

	t.Run("elapsed time is recorded per slot", func(t *testing.T) {
		t.Parallel()

		probes := []probe.Probe{
			&mockProbe{name: "timed", delay: 50 * time.Millisecond},
		}

		r := NewRunner(probes, WithProbeTimeout(2*time.Second))
		slots := r.Run(context.Background(), domain)

		if slots[0].Elapsed < 50*time.Millisecond {
			t.Errorf("expected elapsed >= 50ms, got %v", slots[0].Elapsed)
		}
	})
}
