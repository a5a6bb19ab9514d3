package model

import "time"

// GameID uniquely identifies a game
type GameID string

// Game represents a two-player duel in progress.
//
// A game holds only player identifiers, never player records; the registry
// remains the single owner of player state. Problems are append-only: a
// player's score is always a valid index into Problems for the problem they
// are currently facing.
type Game struct {
	ID        GameID      `json:"id"`
	Players   [2]PlayerID `json:"players"` // order-significant
	StartedAt time.Time   `json:"started_at"`
	Problems  []*Problem  `json:"problems"`
	// Difficulty, when > 0, fixes the difficulty for every problem in the
	// game. When 0, difficulty escalates as the problem track advances.
	Difficulty int `json:"difficulty"`
}

// HasPlayer reports whether the given player is a participant
func (g *Game) HasPlayer(id PlayerID) bool {
	return g.Players[0] == id || g.Players[1] == id
}

// Opponent returns the other participant, or empty if id is not in the game
func (g *Game) Opponent(id PlayerID) PlayerID {
	switch id {
	case g.Players[0]:
		return g.Players[1]
	case g.Players[1]:
		return g.Players[0]
	}
	return ""
}

// GameEndReason says why a game ended
type GameEndReason string

const (
	EndReasonTimeUp     GameEndReason = "time_up"    // scoring window elapsed
	EndReasonDisconnect GameEndReason = "disconnect" // a participant dropped
)

// GameResult is the outcome of a finished game
type GameResult struct {
	GameID       GameID
	Players      [2]PlayerID
	FinalScores  [2]int
	FinalRatings [2]int
	Reason       GameEndReason
}
