// Package timer schedules one-shot delayed events on a hierarchical timing
// wheel.
package timer

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/RussellLuo/timingwheel"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultTick      = 10 * time.Millisecond
	DefaultWheelSize = 64
)

// Option configures a WheelScheduler
type Option func(*WheelScheduler)

// WithTick sets the wheel precision; non-positive values keep the default
func WithTick(d time.Duration) Option {
	return func(s *WheelScheduler) {
		if d > 0 {
			s.tick = d
		}
	}
}

// WithWheelSize sets the number of slots per wheel level
func WithWheelSize(size int64) Option {
	return func(s *WheelScheduler) {
		if size > 0 {
			s.wheelSize = size
		}
	}
}

// WithLogger sets the scheduler's logger
func WithLogger(logger zerolog.Logger) Option {
	return func(s *WheelScheduler) {
		s.logger = logger
	}
}

// WheelScheduler runs one-shot callbacks after a delay. Callbacks run on a
// goroutine owned by the wheel; callers that need them elsewhere re-post
// them (see internal/session).
type WheelScheduler struct {
	tick      time.Duration
	wheelSize int64
	tw        *timingwheel.TimingWheel
	logger    zerolog.Logger

	mu      sync.Mutex
	timers  map[int64]*timingwheel.Timer
	nextID  int64
	stopped atomic.Bool
	once    sync.Once
}

// NewWheelScheduler creates and starts a scheduler
func NewWheelScheduler(opts ...Option) *WheelScheduler {
	s := &WheelScheduler{
		tick:      DefaultTick,
		wheelSize: DefaultWheelSize,
		logger:    log.Logger,
		timers:    make(map[int64]*timingwheel.Timer),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With().Str("component", "WheelScheduler").Logger()

	s.tw = timingwheel.NewTimingWheel(s.tick, s.wheelSize)
	s.tw.Start()
	return s
}

// AfterFunc runs f once after d. Calls after Stop are dropped.
func (s *WheelScheduler) AfterFunc(d time.Duration, f func()) {
	if s.stopped.Load() {
		s.logger.Warn().Dur("delay", d).Msg("Scheduler stopped, task rejected")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.timers[id] = s.tw.AfterFunc(d, func() {
		s.mu.Lock()
		_, live := s.timers[id]
		delete(s.timers, id)
		s.mu.Unlock()

		if !live || s.stopped.Load() {
			return
		}
		s.run(f)
	})
}

func (s *WheelScheduler) run(f func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Msg("Scheduled task panicked")
		}
	}()
	f()
}

// Pending returns the number of tasks that have not fired yet
func (s *WheelScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop cancels pending tasks and stops the wheel. Safe to call twice.
func (s *WheelScheduler) Stop() {
	s.once.Do(func() {
		s.stopped.Store(true)

		s.mu.Lock()
		for id, t := range s.timers {
			t.Stop()
			delete(s.timers, id)
		}
		s.mu.Unlock()

		s.tw.Stop()
		s.logger.Debug().Msg("Scheduler stopped")
	})
}
