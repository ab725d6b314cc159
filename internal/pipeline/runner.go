package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/domaincheck/domaincheck/internal/config"
	"github.com/domaincheck/domaincheck/internal/model"
	"github.com/domaincheck/domaincheck/internal/probe"
)

// Runner fans the enabled probes out over goroutines and joins on all
// of them before returning. Each probe gets its own timeout budget and
// writes its outcome into a dedicated slot exactly once, so a slow or
// stuck probe can delay the report by at most its own budget without
// corrupting anyone else's result.
type Runner struct {
	// probes is the ordered registry; slot order follows it regardless
	// of completion order.
	probes []probe.Probe

	// timeout bounds each probe's execution individually.
	timeout time.Duration

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures a Runner.
// This follows the functional options pattern for clean API design.
type Option func(*Runner)

// WithLogger sets a custom logger for the runner.
// If not set, the process default logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithProbeTimeout sets the per-probe execution budget.
func WithProbeTimeout(timeout time.Duration) Option {
	return func(r *Runner) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// NewRunner creates a Runner over the given ordered probe registry.
func NewRunner(probes []probe.Probe, opts ...Option) *Runner {
	r := &Runner{
		probes:  probes,
		timeout: config.DefaultProbeTimeout,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = slog.Default()
	}

	return r
}

// ProbeCount returns the number of registered probes.
func (r *Runner) ProbeCount() int {
	return len(r.probes)
}

// Run executes every probe concurrently and blocks until each has
// either finished or exhausted its budget. The returned slots are in
// registry order. Run itself never fails; probe problems surface as
// failure outcomes inside the slots.
func (r *Runner) Run(ctx context.Context, domain model.Domain) []model.Slot {
	slots := make([]model.Slot, len(r.probes))

	eg := &errgroup.Group{}
	for i, p := range r.probes {
		i, p := i, p
		eg.Go(func() error {
			slots[i] = r.execute(ctx, p, domain)
			return nil
		})
	}

	// Join barrier: every slot is written before the report renders.
	_ = eg.Wait()

	return slots
}

// execute runs a single probe under its timeout budget. The probe runs
// in its own goroutine delivering into a buffered channel, so a probe
// that ignores context cancellation cannot hold up the join; its late
// result is simply discarded.
func (r *Runner) execute(ctx context.Context, p probe.Probe, domain model.Domain) model.Slot {
	slot := model.Slot{
		Probe: p.Name(),
		Title: p.Title(),
	}

	probeCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	r.logger.Debug("probe started",
		"probe", p.Name(),
		"domain", domain.String(),
		"timeout", r.timeout,
	)

	start := time.Now()
	done := make(chan model.Outcome, 1)
	go func() {
		done <- runSafely(probeCtx, p, domain)
	}()

	select {
	case outcome := <-done:
		slot.Outcome = outcome
		slot.Elapsed = time.Since(start)
	case <-probeCtx.Done():
		slot.Outcome = model.TimeoutFailure()
		slot.Elapsed = time.Since(start)
	}

	r.logger.Debug("probe finished",
		"probe", p.Name(),
		"status", slot.Outcome.Status.String(),
		"elapsed", slot.Elapsed,
	)

	return slot
}

// runSafely invokes the probe and converts a panic into a failure
// outcome, so one misbehaving probe cannot take down the whole scan.
func runSafely(ctx context.Context, p probe.Probe, domain model.Domain) (outcome model.Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			outcome = model.Failure(fmt.Sprintf("probe panicked: %v", rec))
		}
	}()

	return p.Run(ctx, domain)
}
