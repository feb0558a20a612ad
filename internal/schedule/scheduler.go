// Package schedule owns the periodic tick that drives reminder evaluation.
package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/myslennya/taskpanel/internal/notify"
	"github.com/myslennya/taskpanel/internal/reminder"
	"github.com/myslennya/taskpanel/internal/store"
)

// Scheduler runs one evaluation pass immediately on Start and then at a
// fixed period until Stop. Tasks are processed sequentially within a pass,
// all three modes for one task before the next task; fired pairs are handed
// to the dispatcher fire-and-forget. A separate goroutine consumes the
// dispatcher's response channel and applies the resulting state transitions,
// re-reading the store rather than reusing the pass snapshot.
type Scheduler struct {
	store      store.Store
	dispatcher notify.Dispatcher
	evaluator  reminder.Evaluator
	mutator    *reminder.Mutator
	interval   time.Duration
	log        *logrus.Entry

	// now is the injectable clock used for evaluation.
	now func() time.Time

	triggerCh chan struct{}
	stopCh    chan struct{}
	mu        sync.Mutex
	running   bool
}

// New creates a scheduler ticking at the given interval. A non-positive
// interval falls back to the default tick period.
func New(s store.Store, d notify.Dispatcher, interval time.Duration, log *logrus.Logger) *Scheduler {
	if interval <= 0 {
		interval = reminder.DefaultTickPeriod
	}
	if log == nil {
		log = logrus.New()
	}
	return &Scheduler{
		store:      s,
		dispatcher: d,
		evaluator:  reminder.Evaluator{TickPeriod: interval},
		mutator:    reminder.NewMutator(s),
		interval:   interval,
		log:        log.WithField("component", "scheduler"),
		now:        time.Now,
		triggerCh:  make(chan struct{}, 1),
		stopCh:     make(chan struct{}),
	}
}

// WithNow replaces the scheduler's clock (and the mutator's) for
// deterministic tests. Must be called before Start.
func (s *Scheduler) WithNow(now func() time.Time) *Scheduler {
	s.now = now
	s.mutator.WithNow(now)
	return s
}

// Evaluator exposes the evaluator configured for this scheduler's tick
// period, for callers that render deadlines.
func (s *Scheduler) Evaluator() reminder.Evaluator {
	return s.evaluator
}

// Start launches the tick loop and the response consumer.
// Calling Start on a running scheduler is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	go s.loop()
	go s.consumeResponses()
}

// Stop halts the tick loop. In-flight passes run to completion.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	close(s.stopCh)
	s.running = false
}

// TriggerNow requests an immediate evaluation pass, coalescing with any
// pending trigger.
func (s *Scheduler) TriggerNow() {
	select {
	case s.triggerCh <- struct{}{}:
	default:
	}
}

// loop drives the periodic evaluation. Store failures are logged and the
// loop continues; the next pass recomputes consistent state.
func (s *Scheduler) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	if err := s.RunPass(context.Background()); err != nil {
		s.log.WithError(err).Warn("initial evaluation pass failed")
	}

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			if err := s.RunPass(context.Background()); err != nil {
				s.log.WithError(err).Warn("evaluation pass failed")
			}
		case <-s.triggerCh:
			if err := s.RunPass(context.Background()); err != nil {
				s.log.WithError(err).Warn("triggered evaluation pass failed")
			}
		}
	}
}

// consumeResponses feeds notification responses into the mutator.
func (s *Scheduler) consumeResponses() {
	for {
		select {
		case <-s.stopCh:
			return
		case resp, ok := <-s.dispatcher.Responses():
			if !ok {
				return
			}
			if err := s.mutator.Apply(context.Background(), resp); err != nil {
				s.log.WithError(err).
					WithField("task_id", resp.TaskID).
					Warn("applying notification response failed")
			}
		}
	}
}

// RunPass evaluates every task against the current clock value and
// dispatches the fired (task, mode) pairs.
func (s *Scheduler) RunPass(ctx context.Context) error {
	now := s.now()

	tasks, err := s.store.ReadAllTasks(ctx)
	if err != nil {
		return fmt.Errorf("reading tasks: %w", err)
	}
	states, err := s.store.ReadReminderStates(ctx)
	if err != nil {
		return fmt.Errorf("reading reminder state: %w", err)
	}

	for _, t := range tasks {
		for _, mode := range s.evaluator.Evaluate(t, states[t.ID], now) {
			s.log.WithFields(logrus.Fields{
				"task_id": t.ID,
				"mode":    string(mode),
			}).Debug("reminder fired")
			s.dispatcher.Show(t, mode)
		}
	}

	return nil
}
