package testutil

import (
	"github.com/mitchelldurbincs/LudoEngine/internal/game/core"
)

// Base marks a token position in base for PlayerAt
const Base = core.BaseIndex

// SmallRingConfig is an 8-cell ring with a 2-cell home column per side,
// giving tracks of length 9. Side A starts on ring cell 0 and side B on ring
// cell 4, so B index j sits on A index (j+4)%8 while both are on the ring.
// Ring cells 0 and 4 are safe.
func SmallRingConfig() core.RingConfig {
	return core.RingConfig{
		RingCells: 8,
		HomeCells: 2,
		StartOffsets: map[core.Side]int{
			core.SideA: 0,
			core.SideB: 4,
		},
		SafeCells: []int{0, 4},
	}
}

// SmallLayout builds the SmallRingConfig layout
func SmallLayout() *core.Layout {
	l, err := core.NewRingLayout(SmallRingConfig())
	if err != nil {
		panic(err)
	}
	return l
}

// StandardLayout builds the default 52-cell board
func StandardLayout() *core.Layout {
	l, err := core.NewRingLayout(core.DefaultRingConfig())
	if err != nil {
		panic(err)
	}
	return l
}

// PlayerAt builds a roster from track positions: Base for a token in base,
// the side's last index for a finished token, anything else is on track
func PlayerAt(layout *core.Layout, side core.Side, positions ...int) *core.Player {
	if len(positions) != core.TokensPerSide {
		panic("PlayerAt needs one position per token")
	}
	length := layout.TrackLength(side)
	tokens := make([]*core.Token, core.TokensPerSide)
	for i, pos := range positions {
		state := core.StateOnTrack
		switch {
		case pos == Base:
			state = core.StateInBase
		case pos == length-1:
			state = core.StateFinished
		}
		tokens[i] = core.RestoreToken(core.TokenID(i), side, length, state, pos)
	}
	p, err := core.NewPlayerWithTokens(side, tokens)
	if err != nil {
		panic(err)
	}
	return p
}
