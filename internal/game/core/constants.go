package core

const (
	// TokensPerSide is fixed for the whole match
	TokensPerSide = 4

	// BaseIndex is the track index of a token that has not entered the track
	BaseIndex = -1

	// UnlockRoll is the only die value that lets a token leave base
	UnlockRoll = 6

	// BonusRoll grants another turn unless it is spent leaving base
	BonusRoll = 6
)
