package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenState_String(t *testing.T) {
	tests := []struct {
		state    TokenState
		expected string
	}{
		{StateInBase, "InBase"},
		{StateOnTrack, "OnTrack"},
		{StateFinished, "Finished"},
		{TokenState(42), "Unknown(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}

func TestNewToken(t *testing.T) {
	tok := NewToken(2, SideB, 9)

	assert.Equal(t, TokenID(2), tok.ID)
	assert.Equal(t, SideB, tok.Side)
	assert.Equal(t, StateInBase, tok.State())
	assert.Equal(t, BaseIndex, tok.TrackIndex())
	assert.Equal(t, 8, tok.LastIndex())
	assert.False(t, tok.Selectable())
	assert.False(t, tok.IsMoving())
}

func TestToken_EnterTrack(t *testing.T) {
	t.Run("from base", func(t *testing.T) {
		tok := NewToken(0, SideA, 9)
		require.NoError(t, tok.EnterTrack())
		assert.Equal(t, StateOnTrack, tok.State())
		assert.Equal(t, 0, tok.TrackIndex())
	})

	t.Run("from track is a no-op", func(t *testing.T) {
		tok := RestoreToken(0, SideA, 9, StateOnTrack, 4)
		err := tok.EnterTrack()
		assert.True(t, errors.Is(err, ErrInvalidTransition))
		assert.Equal(t, StateOnTrack, tok.State())
		assert.Equal(t, 4, tok.TrackIndex())
	})

	t.Run("from finished is a no-op", func(t *testing.T) {
		tok := RestoreToken(0, SideA, 9, StateFinished, 0)
		err := tok.EnterTrack()
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, StateFinished, tok.State())
		assert.Equal(t, 8, tok.TrackIndex())
	})
}

func TestToken_AdvanceStepByStep(t *testing.T) {
	tok := RestoreToken(1, SideA, 9, StateOnTrack, 2)

	require.NoError(t, tok.Advance(3))
	assert.True(t, tok.IsMoving())
	assert.Equal(t, 3, tok.TrackIndex(), "first unit step is taken immediately")
	assert.Equal(t, 2, tok.RemainingSteps())

	done, err := tok.CompleteStep()
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, 4, tok.TrackIndex())

	done, err = tok.CompleteStep()
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, 5, tok.TrackIndex())

	done, err = tok.CompleteStep()
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, 5, tok.TrackIndex())
	assert.Equal(t, StateOnTrack, tok.State())
	assert.False(t, tok.IsMoving())

	_, err = tok.CompleteStep()
	assert.ErrorIs(t, err, ErrNotMoving)
}

func TestToken_AdvanceOntoLastCellFinishes(t *testing.T) {
	tok := RestoreToken(0, SideB, 9, StateOnTrack, 6)
	tok.SetSelectable(true)

	require.NoError(t, tok.Advance(2))
	done, err := tok.CompleteStep()
	require.NoError(t, err)
	assert.False(t, done)
	done, err = tok.CompleteStep()
	require.NoError(t, err)
	require.True(t, done)

	assert.Equal(t, StateFinished, tok.State())
	assert.Equal(t, 8, tok.TrackIndex())
	assert.False(t, tok.Selectable())

	tok.SetSelectable(true)
	assert.False(t, tok.Selectable(), "finished tokens stay unselectable")
	assert.ErrorIs(t, tok.Advance(1), ErrInvalidTransition)
}

func TestToken_AdvanceInvalid(t *testing.T) {
	tests := []struct {
		name  string
		token *Token
		steps int
	}{
		{"in base", NewToken(0, SideA, 9), 3},
		{"finished", RestoreToken(0, SideA, 9, StateFinished, 0), 1},
		{"zero steps", RestoreToken(0, SideA, 9, StateOnTrack, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.token.Snapshot()
			err := tt.token.Advance(tt.steps)
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, before, tt.token.Snapshot())
		})
	}

	t.Run("already moving", func(t *testing.T) {
		tok := RestoreToken(0, SideA, 9, StateOnTrack, 0)
		require.NoError(t, tok.Advance(3))
		before := tok.Snapshot()
		assert.ErrorIs(t, tok.Advance(2), ErrInvalidTransition)
		assert.Equal(t, before, tok.Snapshot())
	})
}

func TestToken_ReturnToBase(t *testing.T) {
	tok := RestoreToken(3, SideA, 9, StateOnTrack, 5)
	require.NoError(t, tok.ReturnToBase())
	assert.Equal(t, StateInBase, tok.State())
	assert.Equal(t, BaseIndex, tok.TrackIndex())

	assert.ErrorIs(t, tok.ReturnToBase(), ErrInvalidTransition)

	finished := RestoreToken(0, SideA, 9, StateFinished, 0)
	assert.ErrorIs(t, finished.ReturnToBase(), ErrInvalidTransition)
	assert.Equal(t, StateFinished, finished.State())
	assert.Equal(t, 8, finished.TrackIndex())
}

func TestToken_SetSelectableLeavesPosition(t *testing.T) {
	tok := RestoreToken(0, SideA, 9, StateOnTrack, 3)
	tok.SetSelectable(true)
	assert.True(t, tok.Selectable())
	assert.Equal(t, 3, tok.TrackIndex())
	assert.Equal(t, StateOnTrack, tok.State())

	tok.SetSelectable(false)
	assert.False(t, tok.Selectable())
}

func TestToken_StateInvariants(t *testing.T) {
	tok := NewToken(0, SideA, 5)
	check := func() {
		switch tok.State() {
		case StateInBase:
			assert.Equal(t, -1, tok.TrackIndex())
		case StateFinished:
			assert.Equal(t, tok.LastIndex(), tok.TrackIndex())
		case StateOnTrack:
			assert.GreaterOrEqual(t, tok.TrackIndex(), 0)
			assert.Less(t, tok.TrackIndex(), tok.LastIndex())
		}
	}

	check()
	require.NoError(t, tok.EnterTrack())
	check()
	require.NoError(t, tok.Advance(4))
	for {
		done, err := tok.CompleteStep()
		require.NoError(t, err)
		if done {
			break
		}
	}
	check()
	assert.Equal(t, StateFinished, tok.State())
}
