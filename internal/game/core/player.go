package core

import (
	"fmt"

	"github.com/samber/lo"
)

// Player is one side's roster: exactly TokensPerSide tokens created at match
// start. Tokens are never added or removed afterwards, only their state
// changes.
type Player struct {
	Side   Side
	Tokens []*Token
}

// NewPlayer creates a roster with every token in base
func NewPlayer(side Side, trackLength int) *Player {
	tokens := make([]*Token, TokensPerSide)
	for i := range tokens {
		tokens[i] = NewToken(TokenID(i), side, trackLength)
	}
	return &Player{Side: side, Tokens: tokens}
}

// NewPlayerWithTokens wraps pre-built tokens, e.g. a restored position
func NewPlayerWithTokens(side Side, tokens []*Token) (*Player, error) {
	if len(tokens) != TokensPerSide {
		return nil, fmt.Errorf("side %s needs %d tokens, got %d", side, TokensPerSide, len(tokens))
	}
	for i, t := range tokens {
		if t.Side != side {
			return nil, fmt.Errorf("token %d belongs to side %s, not %s", i, t.Side, side)
		}
		if t.ID != TokenID(i) {
			return nil, fmt.Errorf("token at position %d has id %d", i, t.ID)
		}
	}
	return &Player{Side: side, Tokens: tokens}, nil
}

// Token returns the token with the given id or nil
func (p *Player) Token(id TokenID) *Token {
	if id < 0 || int(id) >= len(p.Tokens) {
		return nil
	}
	return p.Tokens[id]
}

// First returns the token used by the forced auto-move
func (p *Player) First() *Token { return p.Tokens[0] }

// AllInBase reports whether no token has left base
func (p *Player) AllInBase() bool {
	return lo.EveryBy(p.Tokens, func(t *Token) bool { return t.State() == StateInBase })
}

// AllFinished reports whether every token reached the finish
func (p *Player) AllFinished() bool {
	return lo.EveryBy(p.Tokens, func(t *Token) bool { return t.State() == StateFinished })
}

// CountIn returns how many tokens are in the given state
func (p *Player) CountIn(state TokenState) int {
	return lo.CountBy(p.Tokens, func(t *Token) bool { return t.State() == state })
}

// ClearSelectable drops the selectable flag from every token
func (p *Player) ClearSelectable() {
	for _, t := range p.Tokens {
		t.SetSelectable(false)
	}
}

// Snapshot copies every token's observable state in roster order
func (p *Player) Snapshot() []TokenSnapshot {
	return lo.Map(p.Tokens, func(t *Token, _ int) TokenSnapshot { return t.Snapshot() })
}
