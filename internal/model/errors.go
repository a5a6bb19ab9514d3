package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound    = errors.New("player not found")
	ErrInvalidTransition = errors.New("invalid status transition")

	// Game errors
	ErrGameNotFound     = errors.New("game not found")
	ErrProblemNotFound  = errors.New("problem not found")
	ErrAlreadyInGame    = errors.New("player is already in a game")
	ErrGameInconsistent = errors.New("game references a missing player")
)
