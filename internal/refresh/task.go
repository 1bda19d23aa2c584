// Package refresh runs a function on a fixed interval for as long as a view
// is on screen.
package refresh

import (
	"context"
	"fmt"
	"sync"
	"time"

	"moneymaven/internal/log"
)

// DefaultInterval is how often the dashboard re-polls.
const DefaultInterval = 5 * time.Second

// Func is one refresh cycle. An error is logged and the loop carries on.
type Func func(ctx context.Context) error

// Config holds configuration for a refresh task
type Config struct {
	// Name identifies the task in logs
	Name string

	// Interval between runs (default: 5s)
	Interval time.Duration

	Logger *log.Logger
}

// Task calls a Func on every tick until stopped.
type Task struct {
	fn     Func
	config Config
	logger *log.Logger

	// Lifecycle management
	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates a task. It does nothing until Start.
func New(fn Func, config Config) *Task {
	if config.Interval <= 0 {
		config.Interval = DefaultInterval
	}
	logger := config.Logger
	if logger == nil {
		logger = log.Discard()
	}
	return &Task{
		fn:     fn,
		config: config,
		logger: logger.WithComponent(log.ComponentRefresh).With("task", config.Name),
	}
}

// Start begins the loop. The first run happens one interval after Start.
// Returns an error if already running.
func (t *Task) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return fmt.Errorf("refresh task %q is already running", t.config.Name)
	}

	loopCtx, cancel := context.WithCancel(ctx)
	t.running = true
	t.cancel = cancel
	t.stopCh = make(chan struct{})
	t.doneCh = make(chan struct{})

	go t.runLoop(loopCtx, t.stopCh, t.doneCh)

	t.logger.DebugContext(ctx, "Refresh task started", "interval", t.config.Interval)
	return nil
}

// Stop ends the loop, cancels a run in flight and waits for the loop to exit.
// Stopping a task that is not running is a no-op.
func (t *Task) Stop(ctx context.Context) error {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return nil
	}
	stopCh, doneCh, cancel := t.stopCh, t.doneCh, t.cancel
	t.running = false
	t.mu.Unlock()

	close(stopCh)
	cancel()

	select {
	case <-doneCh:
		t.logger.DebugContext(ctx, "Refresh task stopped")
		return nil
	case <-ctx.Done():
		t.logger.WarnContext(ctx, "Refresh task stop timed out")
		return ctx.Err()
	}
}

// Interval is the time between runs.
func (t *Task) Interval() time.Duration {
	return t.config.Interval
}

// IsRunning returns whether the task is currently running
func (t *Task) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

func (t *Task) runLoop(ctx context.Context, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(t.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := t.fn(ctx); err != nil && ctx.Err() == nil {
				t.logger.WarnContext(ctx, "Refresh failed",
					log.NewFields().WithOperation(log.OpRefresh).WithError(err).ToSlice()...)
			}
		}
	}
}
