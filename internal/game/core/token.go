package core

import "fmt"

// TokenState is the lifecycle state of a single token
type TokenState int

const (
	// StateInBase - token has not entered the track yet
	StateInBase TokenState = iota

	// StateOnTrack - token is somewhere on its track
	StateOnTrack

	// StateFinished - token reached the last cell, terminal
	StateFinished
)

// String returns the string representation of a TokenState
func (s TokenState) String() string {
	switch s {
	case StateInBase:
		return "InBase"
	case StateOnTrack:
		return "OnTrack"
	case StateFinished:
		return "Finished"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// TokenID identifies a token within its side (0..TokensPerSide-1)
type TokenID int

// Token owns one token's lifecycle and discrete position.
//
// A multi-step move is modelled as a counter: Advance takes the first unit
// step and each CompleteStep acknowledges the current waypoint and takes the
// next one. The move is done once the counter is exhausted.
type Token struct {
	ID          TokenID
	Side        Side
	state       TokenState
	trackIndex  int
	trackLength int
	selectable  bool
	remaining   int
	moving      bool
}

// NewToken creates a token in base for a track of the given length
func NewToken(id TokenID, side Side, trackLength int) *Token {
	return &Token{
		ID:          id,
		Side:        side,
		state:       StateInBase,
		trackIndex:  BaseIndex,
		trackLength: trackLength,
	}
}

func (t *Token) State() TokenState { return t.state }
func (t *Token) TrackIndex() int   { return t.trackIndex }
func (t *Token) TrackLength() int  { return t.trackLength }
func (t *Token) Selectable() bool  { return t.selectable }
func (t *Token) IsMoving() bool    { return t.moving }

// LastIndex is the finish cell of this token's track
func (t *Token) LastIndex() int { return t.trackLength - 1 }

// StepsToFinish is the number of unit steps left before the finish cell.
// Only meaningful while the token is on the track.
func (t *Token) StepsToFinish() int { return t.LastIndex() - t.trackIndex }

// RemainingSteps returns how many unit steps of the current move are still
// to be taken after the current waypoint
func (t *Token) RemainingSteps() int { return t.remaining }

// EnterTrack moves the token from base onto cell 0 of its track
func (t *Token) EnterTrack() error {
	if t.state != StateInBase {
		return fmt.Errorf("%w: enter track from %s", ErrInvalidTransition, t.state)
	}
	t.trackIndex = 0
	t.state = StateOnTrack
	return nil
}

// Advance starts a move of the given number of unit steps and takes the
// first one. The caller guarantees steps never overshoots the finish cell.
func (t *Token) Advance(steps int) error {
	if t.state != StateOnTrack {
		return fmt.Errorf("%w: advance from %s", ErrInvalidTransition, t.state)
	}
	if t.moving {
		return fmt.Errorf("%w: advance while already moving", ErrInvalidTransition)
	}
	if steps < 1 {
		return fmt.Errorf("%w: advance by %d steps", ErrInvalidTransition, steps)
	}
	t.moving = true
	t.remaining = steps
	t.step()
	return nil
}

func (t *Token) step() {
	t.trackIndex++
	t.remaining--
}

// CompleteStep acknowledges that the current waypoint was reached. While
// steps remain it takes the next unit step and returns false; after the
// final step it ends the move, finishing the token if it stands on the last
// cell, and returns true.
func (t *Token) CompleteStep() (bool, error) {
	if !t.moving {
		return false, ErrNotMoving
	}
	if t.remaining > 0 {
		t.step()
		return false, nil
	}

	t.moving = false
	if t.trackIndex == t.LastIndex() {
		t.state = StateFinished
		t.selectable = false
	}
	return true, nil
}

// ReturnToBase sends a captured token back to base
func (t *Token) ReturnToBase() error {
	if t.state != StateOnTrack {
		return fmt.Errorf("%w: return to base from %s", ErrInvalidTransition, t.state)
	}
	t.trackIndex = BaseIndex
	t.state = StateInBase
	t.remaining = 0
	t.moving = false
	return nil
}

// SetSelectable toggles whether the token is offered for selection.
// A finished token can never be selected again.
func (t *Token) SetSelectable(selectable bool) {
	if t.state == StateFinished {
		t.selectable = false
		return
	}
	t.selectable = selectable
}

// String implements fmt.Stringer for logging
func (t *Token) String() string {
	return fmt.Sprintf("%s%d@%d(%s)", t.Side, t.ID, t.trackIndex, t.state)
}

// TokenSnapshot is a read-only copy of a token's observable state
type TokenSnapshot struct {
	ID          TokenID    `json:"id"`
	Side        Side       `json:"side"`
	State       TokenState `json:"state"`
	TrackIndex  int        `json:"track_index"`
	TrackLength int        `json:"track_length"`
	Selectable  bool       `json:"selectable"`
	Moving      bool       `json:"moving"`
}

// Snapshot copies the token's observable state
func (t *Token) Snapshot() TokenSnapshot {
	return TokenSnapshot{
		ID:          t.ID,
		Side:        t.Side,
		State:       t.state,
		TrackIndex:  t.trackIndex,
		TrackLength: t.trackLength,
		Selectable:  t.selectable,
		Moving:      t.moving,
	}
}

// RestoreToken builds a token in an arbitrary consistent position. It is
// meant for setting up positions in tests and tools; trackIndex is
// normalised against the state invariants.
func RestoreToken(id TokenID, side Side, trackLength int, state TokenState, trackIndex int) *Token {
	t := NewToken(id, side, trackLength)
	switch state {
	case StateOnTrack:
		t.state = StateOnTrack
		t.trackIndex = trackIndex
	case StateFinished:
		t.state = StateFinished
		t.trackIndex = trackLength - 1
	}
	return t
}
