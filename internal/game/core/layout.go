package core

import "fmt"

// CellID is the identity of a physical board cell. Two tokens of different
// sides occupy the same cell iff their track indices map to the same CellID.
type CellID int

// Layout is the board-layout lookup table: for every side, the ordered cells
// of its track, plus the set of safe cells. The engine never infers cell
// identity from geometry, it only consults this table.
type Layout struct {
	tracks [NumSides][]CellID
	safe   map[CellID]struct{}
}

// NewLayout builds a layout from explicit per-side tracks
func NewLayout(tracks map[Side][]CellID, safe []CellID) (*Layout, error) {
	l := &Layout{safe: make(map[CellID]struct{}, len(safe))}

	for _, side := range Sides {
		track, ok := tracks[side]
		if !ok {
			return nil, fmt.Errorf("%w: missing track for side %s", ErrInvalidLayout, side)
		}
		if len(track) < 2 {
			return nil, fmt.Errorf("%w: track for side %s needs at least 2 cells, got %d", ErrInvalidLayout, side, len(track))
		}
		seen := make(map[CellID]struct{}, len(track))
		for i, cell := range track {
			if _, dup := seen[cell]; dup {
				return nil, fmt.Errorf("%w: side %s visits cell %d twice (index %d)", ErrInvalidLayout, side, cell, i)
			}
			seen[cell] = struct{}{}
		}
		l.tracks[side] = append([]CellID(nil), track...)
	}

	for _, cell := range safe {
		l.safe[cell] = struct{}{}
	}
	return l, nil
}

// RingConfig describes the classic cross-shaped board: a shared ring of
// RingCells cells, each side entering it at its start offset, walking
// RingCells-1 ring cells and then HomeCells private cells, the last of which
// is the finish.
type RingConfig struct {
	RingCells    int
	HomeCells    int
	StartOffsets map[Side]int
	SafeCells    []int
}

// DefaultRingConfig is the standard board with the two sides facing each other
func DefaultRingConfig() RingConfig {
	return RingConfig{
		RingCells: 52,
		HomeCells: 6,
		StartOffsets: map[Side]int{
			SideA: 0,
			SideB: 26,
		},
		SafeCells: []int{0, 8, 13, 21, 26, 34, 39, 47},
	}
}

// NewRingLayout builds the per-side tracks of a ring board
func NewRingLayout(cfg RingConfig) (*Layout, error) {
	if cfg.RingCells < 2 {
		return nil, fmt.Errorf("%w: ring needs at least 2 cells, got %d", ErrInvalidLayout, cfg.RingCells)
	}
	if cfg.HomeCells < 1 {
		return nil, fmt.Errorf("%w: home column needs at least 1 cell, got %d", ErrInvalidLayout, cfg.HomeCells)
	}

	tracks := make(map[Side][]CellID, NumSides)
	for _, side := range Sides {
		start, ok := cfg.StartOffsets[side]
		if !ok {
			return nil, fmt.Errorf("%w: missing start offset for side %s", ErrInvalidLayout, side)
		}
		if start < 0 || start >= cfg.RingCells {
			return nil, fmt.Errorf("%w: start offset %d for side %s outside ring of %d", ErrInvalidLayout, start, side, cfg.RingCells)
		}

		track := make([]CellID, 0, cfg.RingCells-1+cfg.HomeCells)
		for i := 0; i < cfg.RingCells-1; i++ {
			track = append(track, CellID((start+i)%cfg.RingCells))
		}
		// Home columns get ids past the ring so they never collide
		homeBase := cfg.RingCells + int(side)*cfg.HomeCells
		for j := 0; j < cfg.HomeCells; j++ {
			track = append(track, CellID(homeBase+j))
		}
		tracks[side] = track
	}

	safe := make([]CellID, 0, len(cfg.SafeCells))
	for _, c := range cfg.SafeCells {
		if c < 0 || c >= cfg.RingCells {
			return nil, fmt.Errorf("%w: safe cell %d outside ring of %d", ErrInvalidLayout, c, cfg.RingCells)
		}
		safe = append(safe, CellID(c))
	}

	return NewLayout(tracks, safe)
}

// TrackLength returns the number of cells on a side's track
func (l *Layout) TrackLength(side Side) int {
	if !side.IsValid() {
		return 0
	}
	return len(l.tracks[side])
}

// Cell maps a side's track index to its physical cell
func (l *Layout) Cell(side Side, index int) (CellID, bool) {
	if !side.IsValid() || index < 0 || index >= len(l.tracks[side]) {
		return 0, false
	}
	return l.tracks[side][index], true
}

// IsSafe reports whether tokens on the cell cannot be captured
func (l *Layout) IsSafe(cell CellID) bool {
	_, ok := l.safe[cell]
	return ok
}

// NewPlayers creates both rosters with track lengths taken from the layout
func (l *Layout) NewPlayers() [NumSides]*Player {
	var players [NumSides]*Player
	for _, side := range Sides {
		players[side] = NewPlayer(side, l.TrackLength(side))
	}
	return players
}
