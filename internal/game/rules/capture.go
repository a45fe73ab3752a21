package rules

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/LudoEngine/internal/game/core"
)

// Capture describes a token sent back to base by a landing token
type Capture struct {
	Capturer *core.Token
	Captured *core.Token
	Cell     core.CellID
}

// CaptureResolver evicts an opposing token sharing the landing cell
type CaptureResolver struct {
	layout *core.Layout
	logger zerolog.Logger
}

// NewCaptureResolver creates a capture resolver for the given board layout
func NewCaptureResolver(layout *core.Layout, logger zerolog.Logger) *CaptureResolver {
	return &CaptureResolver{
		layout: layout,
		logger: logger.With().Str("component", "CaptureResolver").Logger(),
	}
}

// Resolve runs once after the moved token's whole move completed. At most
// one opposing token is captured; the scan stops at the first match.
func (cr *CaptureResolver) Resolve(moved *core.Token, opponents *core.Player) (*Capture, bool) {
	if moved.State() != core.StateOnTrack {
		return nil, false
	}

	cell, ok := cr.layout.Cell(moved.Side, moved.TrackIndex())
	if !ok {
		cr.logger.Warn().
			Str("token", moved.String()).
			Msg("Moved token has no cell in layout")
		return nil, false
	}
	if cr.layout.IsSafe(cell) {
		cr.logger.Debug().Int("cell", int(cell)).Msg("Landed on safe cell, no capture")
		return nil, false
	}

	for _, other := range opponents.Tokens {
		if !cr.Occupies(other, cell) {
			continue
		}
		if err := other.ReturnToBase(); err != nil {
			cr.logger.Debug().Err(err).Str("token", other.String()).Msg("Capture target rejected")
			continue
		}
		cr.logger.Info().
			Str("capturer", moved.String()).
			Str("captured_side", other.Side.String()).
			Int("captured_id", int(other.ID)).
			Int("cell", int(cell)).
			Msg("Token captured")
		return &Capture{Capturer: moved, Captured: other, Cell: cell}, true
	}
	return nil, false
}

// Occupies reports whether the token stands on the track at the given
// physical cell. Finished tokens never occupy a capturable cell.
func (cr *CaptureResolver) Occupies(t *core.Token, cell core.CellID) bool {
	if t.State() != core.StateOnTrack {
		return false
	}
	at, ok := cr.layout.Cell(t.Side, t.TrackIndex())
	return ok && at == cell
}
