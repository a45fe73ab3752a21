// Package session runs one match on a single goroutine. Every inbound event,
// timer firing and snapshot read is posted to that goroutine, which is the
// only one that ever touches the turn controller.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/LudoEngine/internal/game"
	"github.com/mitchelldurbincs/LudoEngine/internal/game/core"
	"github.com/mitchelldurbincs/LudoEngine/internal/game/events"
)

// ErrSessionClosed is returned by requests made after the session stopped
var ErrSessionClosed = errors.New("session closed")

// Session owns a turn controller and serializes all access to it
type Session struct {
	ctrl   *game.Controller
	bus    events.Bus
	logger zerolog.Logger

	mu     sync.Mutex
	queue  []func()
	notify chan struct{}

	subMu       sync.Mutex
	subscribers []string
	handlers    []string

	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	over     chan struct{}
	started  atomic.Bool
	overOnce sync.Once
	stopOnce sync.Once
}

// New creates the controller for cfg and the goroutine that owns it.
// cfg.EventBus is replaced by bus and cfg.Scheduler fires its callbacks back
// into the session. The session ends when ctx is cancelled or Close is
// called. Subscribe before Start to observe the opening events.
func New(ctx context.Context, bus events.Bus, cfg game.MatchConfig) (*Session, error) {
	if bus == nil {
		return nil, errors.New("session: event bus is required")
	}
	if cfg.Scheduler == nil {
		return nil, errors.New("session: scheduler is required")
	}

	sctx, cancel := context.WithCancel(ctx)
	s := &Session{
		bus:    bus,
		notify: make(chan struct{}, 1),
		ctx:    sctx,
		cancel: cancel,
		done:   make(chan struct{}),
		over:   make(chan struct{}),
	}

	cfg.EventBus = bus
	cfg.Scheduler = &loopScheduler{base: cfg.Scheduler, post: s.Post}

	ctrl, err := game.NewController(sctx, cfg)
	if err != nil {
		cancel()
		return nil, err
	}
	s.ctrl = ctrl
	s.logger = cfg.Logger.With().
		Str("component", "Session").
		Str("match_id", ctrl.MatchID()).
		Logger()

	s.SubscribeFunc(events.TypeMatchWon, s.markOver)
	s.SubscribeFunc(events.TypeMatchAbandoned, s.markOver)

	go s.run()
	return s, nil
}

// Start opens the first turn and waits until the opening events were
// published
func (s *Session) Start() error {
	if err := s.do(s.ctrl.Start); err != nil {
		return fmt.Errorf("starting match: %w", err)
	}
	s.started.Store(true)
	s.logger.Info().Msg("Session started")
	return nil
}

// MatchID returns the controller's match id
func (s *Session) MatchID() string { return s.ctrl.MatchID() }

// Post queues job to run on the session goroutine. Never blocks, so event
// handlers running on that goroutine may post follow-up input.
func (s *Session) Post(job func()) {
	if s.ctx.Err() != nil {
		return
	}
	s.mu.Lock()
	s.queue = append(s.queue, job)
	s.mu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
}

func (s *Session) RollRequested()                { s.Post(s.ctrl.RollRequested) }
func (s *Session) RollResolved(value int)        { s.Post(func() { s.ctrl.RollResolved(value) }) }
func (s *Session) SelectionMade(id core.TokenID) { s.Post(func() { s.ctrl.SelectionMade(id) }) }
func (s *Session) StepCompleted(id core.TokenID) { s.Post(func() { s.ctrl.StepCompleted(id) }) }
func (s *Session) Abandon(reason string)         { s.Post(func() { s.ctrl.Abandon(reason) }) }

// Snapshot reads the match state between two writes. It must not be called
// from an event handler, which already runs on the session goroutine.
func (s *Session) Snapshot(ctx context.Context) (game.MatchSnapshot, error) {
	var snap game.MatchSnapshot
	err := s.wait(ctx, func() error {
		snap = s.ctrl.Snapshot()
		return nil
	})
	return snap, err
}

// Subscribe registers a subscriber for the lifetime of the session
func (s *Session) Subscribe(sub events.Subscriber) {
	s.bus.Subscribe(sub)
	s.subMu.Lock()
	s.subscribers = append(s.subscribers, sub.ID())
	s.subMu.Unlock()
}

// SubscribeFunc registers a handler for the lifetime of the session.
// Only events of this session's match are delivered.
func (s *Session) SubscribeFunc(eventType string, handler events.EventHandler) string {
	matchID := s.ctrl.MatchID()
	id := s.bus.SubscribeFunc(eventType, func(e events.Event) {
		if e.MatchID() == matchID {
			handler(e)
		}
	})
	s.subMu.Lock()
	s.handlers = append(s.handlers, id)
	s.subMu.Unlock()
	return id
}

// Over is closed once the match was won or abandoned
func (s *Session) Over() <-chan struct{} { return s.over }

// Done is closed once the session goroutine exited
func (s *Session) Done() <-chan struct{} { return s.done }

// Close abandons an unfinished match, stops the session goroutine and drops
// every session-scoped subscription. Safe to call more than once, but not
// from an event handler.
func (s *Session) Close() {
	s.stopOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.wait(ctx, func() error {
			if s.started.Load() && !s.ctrl.IsOver() {
				s.ctrl.Abandon("session closed")
			}
			return nil
		})

		s.cancel()
		<-s.done

		s.subMu.Lock()
		for _, id := range s.subscribers {
			s.bus.Unsubscribe(id)
		}
		for _, id := range s.handlers {
			s.bus.UnsubscribeFunc(id)
		}
		s.subscribers, s.handlers = nil, nil
		s.subMu.Unlock()

		s.logger.Info().Msg("Session closed")
	})
}

func (s *Session) markOver(events.Event) {
	s.overOnce.Do(func() { close(s.over) })
}

func (s *Session) run() {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-s.notify:
		}
		for job := s.next(); job != nil; job = s.next() {
			if s.ctx.Err() != nil {
				return
			}
			s.safeRun(job)
		}
	}
}

func (s *Session) next() func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return nil
	}
	job := s.queue[0]
	s.queue[0] = nil
	s.queue = s.queue[1:]
	return job
}

func (s *Session) safeRun(job func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Msg("Session job panicked")
		}
	}()
	job()
}

// do runs job on the session goroutine and waits for its result
func (s *Session) do(job func() error) error {
	return s.wait(s.ctx, job)
}

func (s *Session) wait(ctx context.Context, job func() error) error {
	if s.ctx.Err() != nil {
		return ErrSessionClosed
	}
	result := make(chan error, 1)
	s.Post(func() { result <- job() })

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return ErrSessionClosed
	}
}

// loopScheduler delivers timer callbacks on the session goroutine
type loopScheduler struct {
	base game.Scheduler
	post func(func())
}

func (l *loopScheduler) AfterFunc(d time.Duration, f func()) {
	l.base.AfterFunc(d, func() { l.post(f) })
}
