package sim

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/faraday/internal/model"
)

// FrameInterval is the default frame period of the headless driver.
const FrameInterval = time.Second / 60

// Runner drives a Simulation without a display: one goroutine owns the
// simulation and services both the frame ticker and the 1 Hz game ticker.
type Runner struct {
	sim      *Simulation
	interval time.Duration
	publish  func(model.Telemetry)
	until    func(model.Telemetry) bool
	logger   *zap.Logger

	mu     sync.Mutex
	used   bool
	cancel context.CancelFunc
	done   chan struct{}
}

// ErrRunnerUsed is returned when a Runner is started a second time.
var ErrRunnerUsed = errors.New("runner already used")

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithFrameInterval sets the frame period.
func WithFrameInterval(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithPublish receives telemetry after every frame.
func WithPublish(fn func(model.Telemetry)) RunnerOption {
	return func(r *Runner) { r.publish = fn }
}

// WithUntil ends the run after the first frame for which fn returns true.
func WithUntil(fn func(model.Telemetry) bool) RunnerOption {
	return func(r *Runner) { r.until = fn }
}

// WithRunnerLogger sets the logger.
func WithRunnerLogger(l *zap.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// NewRunner creates a driver for sim.
func NewRunner(sim *Simulation, opts ...RunnerOption) *Runner {
	r := &Runner{
		sim:      sim,
		interval: FrameInterval,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	return r
}

// Run drives frames until ctx is cancelled, Stop is called, or the until
// predicate holds. The simulation is closed on return. A Runner runs once;
// later calls to Run or Start return ErrRunnerUsed.
func (r *Runner) Run(ctx context.Context) error {
	ctx, err := r.begin(ctx)
	if err != nil {
		return err
	}
	r.run(ctx)
	return nil
}

// Start runs the driver on its own goroutine.
func (r *Runner) Start(ctx context.Context) error {
	ctx, err := r.begin(ctx)
	if err != nil {
		return err
	}
	go r.run(ctx)
	return nil
}

// Stop cancels the driver and waits for it to exit. Stopping a Runner that
// never started closes the simulation and retires the Runner.
func (r *Runner) Stop() {
	r.mu.Lock()
	if !r.used {
		r.used = true
		r.mu.Unlock()
		r.sim.Close()
		close(r.done)
		return
	}
	cancel := r.cancel
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	<-r.done
}

// Done is closed when the driver has exited.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

func (r *Runner) begin(ctx context.Context) (context.Context, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.used {
		return ctx, ErrRunnerUsed
	}
	r.used = true
	ctx, r.cancel = context.WithCancel(ctx)
	return ctx, nil
}

func (r *Runner) run(ctx context.Context) {
	defer close(r.done)
	defer r.sim.Close()
	defer r.cancel()

	frames := time.NewTicker(r.interval)
	defer frames.Stop()
	seconds := time.NewTicker(time.Second)
	defer seconds.Stop()

	r.logger.Debug("runner started", zap.Duration("interval", r.interval))
	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("runner stopped")
			return
		case <-frames.C:
			r.sim.Frame()
			tel := r.sim.Telemetry()
			if r.publish != nil {
				r.publish(tel)
			}
			if r.until != nil && r.until(tel) {
				r.logger.Debug("runner finished")
				return
			}
		case <-seconds.C:
			if res, done := r.sim.GameTick(ctx); done {
				r.logger.Info("game over", zap.Int("score", res.Score), zap.Bool("new_high", res.NewHigh))
			}
		}
	}
}
