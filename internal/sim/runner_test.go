package sim

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/verte-zerg/faraday/internal/model"
)

// steppingClock advances by step every time it is read.
type steppingClock struct {
	*ManualClock
	step time.Duration
}

func (c *steppingClock) Now() time.Time {
	c.Advance(c.step)
	return c.ManualClock.Now()
}

func TestRunnerStopsOnPredicate(t *testing.T) {
	defer goleak.VerifyNone(t)

	s, _ := newTestSim(t)
	var frames atomic.Int32
	r := NewRunner(s,
		WithFrameInterval(time.Millisecond),
		WithPublish(func(model.Telemetry) { frames.Add(1) }),
		WithUntil(func(model.Telemetry) bool { return frames.Load() >= 5 }),
	)
	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, int32(5), frames.Load())
	assert.True(t, s.Closed())
}

func TestRunnerRunsPresetToCompletion(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := &steppingClock{ManualClock: NewManualClock(time.Unix(0, 0)), step: 100 * time.Millisecond}
	s, _ := newTestSim(t, WithClock(clock))
	require.NoError(t, s.StartPreset("fast"))
	started := false
	r := NewRunner(s,
		WithFrameInterval(time.Millisecond),
		WithUntil(func(tel model.Telemetry) bool {
			if tel.Preset != "" {
				started = true
			}
			return started && tel.Preset == ""
		}),
	)
	require.NoError(t, r.Run(context.Background()))
	assert.Empty(t, s.Telemetry().Preset)
}

func TestRunnerStartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	s, _ := newTestSim(t)
	r := NewRunner(s, WithFrameInterval(time.Millisecond))
	require.NoError(t, r.Start(context.Background()))
	time.Sleep(10 * time.Millisecond)
	r.Stop()
	r.Stop()

	select {
	case <-r.Done():
	default:
		t.Fatal("expected runner to be done after Stop")
	}
	assert.True(t, s.Closed())
}

func TestRunnerHonoursContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	s, _ := newTestSim(t)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	r := NewRunner(s, WithFrameInterval(time.Millisecond))
	require.NoError(t, r.Run(ctx))
	<-r.Done()
}

func TestRunnerStopWithoutStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	s, _ := newTestSim(t)
	r := NewRunner(s)
	stopped := make(chan struct{})
	go func() {
		r.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on a runner that never started")
	}
	<-r.Done()
	assert.True(t, s.Closed())
	assert.ErrorIs(t, r.Run(context.Background()), ErrRunnerUsed)
	assert.ErrorIs(t, r.Start(context.Background()), ErrRunnerUsed)
}

func TestRunnerRunsOnce(t *testing.T) {
	defer goleak.VerifyNone(t)

	s, _ := newTestSim(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	r := NewRunner(s, WithFrameInterval(time.Millisecond))
	require.NoError(t, r.Run(ctx))
	assert.ErrorIs(t, r.Run(context.Background()), ErrRunnerUsed)
	assert.ErrorIs(t, r.Start(context.Background()), ErrRunnerUsed)
	r.Stop()
}
