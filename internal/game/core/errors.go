package core

import "errors"

var (
	ErrInvalidTransition = errors.New("invalid token transition")
	ErrInvalidSelection  = errors.New("invalid token selection")
	ErrInvalidDiceValue  = errors.New("invalid dice value")
	ErrNotMoving         = errors.New("token is not moving")
	ErrMatchOver         = errors.New("match is over")
	ErrInvalidLayout     = errors.New("invalid board layout")
)
