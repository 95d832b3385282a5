package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"trademood/internal/logger"
)

// Trigger fires a job every N minutes while the session predicate holds. It
// hides the cron machinery from the pipeline: the pipeline only states a
// cadence and an activity predicate.
type Trigger struct {
	cadence time.Duration
	active  func(time.Time) bool

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
}

// NewTrigger creates a trigger with the given cadence and session predicate.
// A nil predicate means always active.
func NewTrigger(cadence time.Duration, active func(time.Time) bool) *Trigger {
	if active == nil {
		active = func(time.Time) bool { return true }
	}
	return &Trigger{cadence: cadence, active: active}
}

// Start schedules job to fire at the configured cadence. Firings outside the
// active session are skipped, not queued.
func (t *Trigger) Start(job func()) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return fmt.Errorf("trigger already running")
	}

	t.cron = cron.New()
	_, err := t.cron.AddFunc(fmt.Sprintf("@every %s", t.cadence), func() {
		now := time.Now()
		if !t.active(now) {
			logger.Debug(context.Background(), "Skipping trigger outside active session", "time", now)
			return
		}
		job()
	})
	if err != nil {
		return fmt.Errorf("failed to register cron job: %w", err)
	}

	t.cron.Start()
	t.running = true
	return nil
}

// Stop cancels all future firings and waits for an in-flight job to finish.
// It never aborts a job mid-run.
func (t *Trigger) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return
	}
	<-t.cron.Stop().Done()
	t.running = false
}

// Running reports whether the trigger is active.
func (t *Trigger) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}
