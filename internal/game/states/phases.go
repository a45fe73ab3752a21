package states

import "fmt"

// TurnPhase represents where the turn controller is within a turn
type TurnPhase int

const (
	// PhaseAwaitingRoll - active side announced, rolling enabled
	PhaseAwaitingRoll TurnPhase = iota

	// PhaseRolling - roll requested, result not yet known
	PhaseRolling

	// PhaseResolving - roll known, computing legal moves
	PhaseResolving

	// PhaseAwaitingChoice - several legal moves, waiting for a selection
	PhaseAwaitingChoice

	// PhaseAwaitingMoveCompletion - a token is walking its steps
	PhaseAwaitingMoveCompletion

	// PhaseAwaitingForfeit - no legal move, forfeit delay running
	PhaseAwaitingForfeit

	// PhaseTurnComplete - deciding who rolls next
	PhaseTurnComplete

	// PhaseMatchOver - terminal
	PhaseMatchOver
)

var phaseNames = map[TurnPhase]string{
	PhaseAwaitingRoll:           "AwaitingRoll",
	PhaseRolling:                "Rolling",
	PhaseResolving:              "Resolving",
	PhaseAwaitingChoice:         "AwaitingChoice",
	PhaseAwaitingMoveCompletion: "AwaitingMoveCompletion",
	PhaseAwaitingForfeit:        "AwaitingForfeit",
	PhaseTurnComplete:           "TurnComplete",
	PhaseMatchOver:              "MatchOver",
}

// String returns the string representation of a TurnPhase
func (p TurnPhase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", int(p))
}

// IsTerminal returns true if no further transition can leave the phase
func (p TurnPhase) IsTerminal() bool {
	return p == PhaseMatchOver
}

// AcceptsRoll returns true if a roll result may be delivered in this phase
func (p TurnPhase) AcceptsRoll() bool {
	return p == PhaseAwaitingRoll || p == PhaseRolling
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p TurnPhase) AllowedTransitions() []TurnPhase {
	switch p {
	case PhaseAwaitingRoll:
		return []TurnPhase{PhaseRolling, PhaseResolving, PhaseMatchOver}
	case PhaseRolling:
		return []TurnPhase{PhaseResolving, PhaseMatchOver}
	case PhaseResolving:
		return []TurnPhase{PhaseAwaitingChoice, PhaseAwaitingMoveCompletion, PhaseAwaitingForfeit, PhaseTurnComplete, PhaseMatchOver}
	case PhaseAwaitingChoice:
		return []TurnPhase{PhaseAwaitingMoveCompletion, PhaseTurnComplete, PhaseMatchOver}
	case PhaseAwaitingMoveCompletion:
		return []TurnPhase{PhaseTurnComplete, PhaseMatchOver}
	case PhaseAwaitingForfeit:
		return []TurnPhase{PhaseTurnComplete, PhaseMatchOver}
	case PhaseTurnComplete:
		return []TurnPhase{PhaseAwaitingRoll, PhaseMatchOver}
	default:
		return []TurnPhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p TurnPhase) CanTransitionTo(target TurnPhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a TurnPhase
func ParsePhase(s string) (TurnPhase, error) {
	for phase, name := range phaseNames {
		if name == s {
			return phase, nil
		}
	}
	return PhaseAwaitingRoll, fmt.Errorf("unknown turn phase %q", s)
}

// MarshalText encodes the phase by name so snapshots stay readable
func (p TurnPhase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name
func (p *TurnPhase) UnmarshalText(text []byte) error {
	phase, err := ParsePhase(string(text))
	if err != nil {
		return err
	}
	*p = phase
	return nil
}
