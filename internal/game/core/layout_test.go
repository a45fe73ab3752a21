package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRingLayout_Default(t *testing.T) {
	l, err := NewRingLayout(DefaultRingConfig())
	require.NoError(t, err)

	assert.Equal(t, 57, l.TrackLength(SideA))
	assert.Equal(t, 57, l.TrackLength(SideB))

	// Side B's start cell is side A's index 26
	cellB0, ok := l.Cell(SideB, 0)
	require.True(t, ok)
	cellA26, ok := l.Cell(SideA, 26)
	require.True(t, ok)
	assert.Equal(t, cellA26, cellB0)

	// Side B index 30 is ring cell 4, which side A reaches at index 4
	cellB30, _ := l.Cell(SideB, 30)
	cellA4, _ := l.Cell(SideA, 4)
	assert.Equal(t, cellA4, cellB30)

	// Home columns never coincide
	homeA, _ := l.Cell(SideA, 56)
	homeB, _ := l.Cell(SideB, 56)
	assert.NotEqual(t, homeA, homeB)

	assert.True(t, l.IsSafe(0))
	assert.True(t, l.IsSafe(26))
	assert.False(t, l.IsSafe(4))
}

func TestNewRingLayout_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *RingConfig)
	}{
		{"tiny ring", func(c *RingConfig) { c.RingCells = 1 }},
		{"no home cells", func(c *RingConfig) { c.HomeCells = 0 }},
		{"missing offset", func(c *RingConfig) { delete(c.StartOffsets, SideB) }},
		{"offset outside ring", func(c *RingConfig) { c.StartOffsets[SideA] = 52 }},
		{"safe cell outside ring", func(c *RingConfig) { c.SafeCells = []int{60} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRingConfig()
			tt.mutate(&cfg)
			_, err := NewRingLayout(cfg)
			assert.ErrorIs(t, err, ErrInvalidLayout)
		})
	}
}

func TestNewLayout_Explicit(t *testing.T) {
	l, err := NewLayout(map[Side][]CellID{
		SideA: {1, 2, 3, 4},
		SideB: {3, 5, 6},
	}, []CellID{2})
	require.NoError(t, err)

	assert.Equal(t, 4, l.TrackLength(SideA))
	assert.Equal(t, 3, l.TrackLength(SideB))
	assert.True(t, l.IsSafe(2))

	_, ok := l.Cell(SideA, 4)
	assert.False(t, ok)
	_, ok = l.Cell(SideA, -1)
	assert.False(t, ok)
	_, ok = l.Cell(Side(7), 0)
	assert.False(t, ok)

	_, err = NewLayout(map[Side][]CellID{SideA: {1, 2}}, nil)
	assert.ErrorIs(t, err, ErrInvalidLayout)

	_, err = NewLayout(map[Side][]CellID{SideA: {1, 1}, SideB: {2, 3}}, nil)
	assert.ErrorIs(t, err, ErrInvalidLayout)
}

func TestLayout_NewPlayers(t *testing.T) {
	l, err := NewLayout(map[Side][]CellID{
		SideA: {0, 1, 2, 3, 4},
		SideB: {10, 11, 12},
	}, nil)
	require.NoError(t, err)

	players := l.NewPlayers()
	assert.Equal(t, SideA, players[SideA].Side)
	assert.Equal(t, 5, players[SideA].First().TrackLength())
	assert.Equal(t, 3, players[SideB].First().TrackLength())
}
