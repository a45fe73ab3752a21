package states

import (
	"fmt"
	"sync"
	"time"

	"github.com/mitchelldurbincs/LudoEngine/internal/game/core"
	"github.com/mitchelldurbincs/LudoEngine/internal/game/events"
)

// State is the behaviour bound to one TurnPhase. Validate guards entry,
// Enter and Exit run as the machine moves in and out of the phase.
type State interface {
	Phase() TurnPhase
	Enter(ctx *MatchContext) error
	Exit(ctx *MatchContext) error
	Validate(ctx *MatchContext) error
}

// Transition is one recorded phase change.
type Transition struct {
	From      TurnPhase
	To        TurnPhase
	Timestamp time.Time
	Reason    string
}

// StateMachine drives a match through its turn phases.
type StateMachine struct {
	mu             sync.RWMutex
	currentPhase   TurnPhase
	states         map[TurnPhase]State
	context        *MatchContext
	history        []Transition
	maxHistorySize int
	publisher      events.Publisher
}

// NewStateMachine creates a state machine sitting in PhaseAwaitingRoll.
// The initial phase is not entered; callers run Start once wired.
func NewStateMachine(ctx *MatchContext, publisher events.Publisher) *StateMachine {
	sm := &StateMachine{
		currentPhase:   PhaseAwaitingRoll,
		states:         make(map[TurnPhase]State),
		context:        ctx,
		history:        make([]Transition, 0, 64),
		maxHistorySize: 1000,
		publisher:      publisher,
	}

	sm.registerDefaultStates()

	return sm
}

func (sm *StateMachine) registerDefaultStates() {
	sm.RegisterState(NewAwaitingRollState())
	sm.RegisterState(NewRollingState())
	sm.RegisterState(NewResolvingState())
	sm.RegisterState(NewAwaitingChoiceState())
	sm.RegisterState(NewAwaitingMoveCompletionState())
	sm.RegisterState(NewAwaitingForfeitState())
	sm.RegisterState(NewTurnCompleteState())
	sm.RegisterState(NewMatchOverState())
}

// RegisterState binds state to its phase, replacing any earlier binding.
func (sm *StateMachine) RegisterState(state State) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.states[state.Phase()] = state
}

// Start validates and enters the phase the machine was built in.
func (sm *StateMachine) Start() error {
	sm.mu.Lock()
	state, ok := sm.states[sm.currentPhase]
	sm.mu.Unlock()

	if !ok {
		return fmt.Errorf("no state implementation for phase %s", sm.currentPhase)
	}
	if err := state.Validate(sm.context); err != nil {
		return fmt.Errorf("initial state validation failed: %w", err)
	}
	return state.Enter(sm.context)
}

func (sm *StateMachine) CurrentPhase() TurnPhase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.currentPhase
}

// TransitionTo attempts to transition to the specified phase. Disallowed
// transitions return an error wrapping core.ErrInvalidTransition and leave
// the phase unchanged.
func (sm *StateMachine) TransitionTo(targetPhase TurnPhase, reason string) error {
	previousPhase, err := sm.transition(targetPhase, reason)
	if err != nil {
		return err
	}

	// Published outside the lock so subscribers may query the machine
	if sm.publisher != nil {
		sm.publisher.Publish(events.NewStateTransitionEvent(
			sm.context.MatchID,
			previousPhase.String(),
			targetPhase.String(),
			reason,
		))
	}

	sm.context.Logger.Debug().
		Str("from_phase", previousPhase.String()).
		Str("to_phase", targetPhase.String()).
		Str("reason", reason).
		Msg("Phase changed")

	return nil
}

func (sm *StateMachine) transition(targetPhase TurnPhase, reason string) (TurnPhase, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.currentPhase.CanTransitionTo(targetPhase) {
		return sm.currentPhase, fmt.Errorf("%w: phase %s to %s", core.ErrInvalidTransition, sm.currentPhase, targetPhase)
	}

	currentState, hasCurrentState := sm.states[sm.currentPhase]
	targetState, hasTargetState := sm.states[targetPhase]

	if !hasTargetState {
		return sm.currentPhase, fmt.Errorf("no state implementation for phase %s", targetPhase)
	}

	if err := targetState.Validate(sm.context); err != nil {
		return sm.currentPhase, fmt.Errorf("cannot enter %s: %w", targetPhase, err)
	}

	if hasCurrentState {
		if err := currentState.Exit(sm.context); err != nil {
			sm.context.Logger.Warn().
				Err(err).
				Str("from_phase", sm.currentPhase.String()).
				Str("to_phase", targetPhase.String()).
				Msg("Phase exit failed")
			// exit failures are logged only
		}
	}

	sm.addToHistory(Transition{
		From:      sm.currentPhase,
		To:        targetPhase,
		Timestamp: time.Now(),
		Reason:    reason,
	})

	previousPhase := sm.currentPhase
	sm.currentPhase = targetPhase

	if err := targetState.Enter(sm.context); err != nil {
		sm.currentPhase = previousPhase
		return previousPhase, fmt.Errorf("failed to enter state %s: %w", targetPhase, err)
	}

	return previousPhase, nil
}

// addToHistory keeps at most maxHistorySize entries, oldest dropped first.
func (sm *StateMachine) addToHistory(transition Transition) {
	sm.history = append(sm.history, transition)

	if len(sm.history) > sm.maxHistorySize {
		sm.history = sm.history[len(sm.history)-sm.maxHistorySize:]
	}
}

// GetHistory returns a copy of the recorded transitions, oldest first.
func (sm *StateMachine) GetHistory() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	history := make([]Transition, len(sm.history))
	copy(history, sm.history)
	return history
}

// CanTransitionTo reports whether the current phase may move to targetPhase.
func (sm *StateMachine) CanTransitionTo(targetPhase TurnPhase) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.currentPhase.CanTransitionTo(targetPhase)
}
