package model

// PlayerID uniquely identifies a player across the system
type PlayerID string

// PlayerStatus represents where a player sits in the matchmaking lifecycle
type PlayerStatus string

const (
	StatusConnected PlayerStatus = "connected" // Online, idle
	StatusSearching PlayerStatus = "searching" // Looking for an opponent
	StatusWaiting   PlayerStatus = "waiting"   // Matched, game not started yet
	StatusPlaying   PlayerStatus = "playing"   // In an active game
)

// BaseRating is the rating assigned to every newly registered player
const BaseRating = 1000

// Player represents a connected participant
type Player struct {
	ID           PlayerID     `json:"id"`
	DisplayName  string       `json:"display_name"` // immutable for the connection lifetime
	Rating       int          `json:"rating"`
	Status       PlayerStatus `json:"status"`
	CurrentScore int          `json:"current_score"` // score within the active game, reset on game creation
}

// allowedTransitions is the status state machine. Player visibility to
// matchmaking and game creation depends entirely on status, so all status
// writes go through Transition rather than free-form assignment.
var allowedTransitions = map[PlayerStatus][]PlayerStatus{
	StatusConnected: {StatusSearching},
	StatusSearching: {StatusWaiting},
	StatusWaiting:   {StatusPlaying},
	StatusPlaying:   {StatusConnected},
}

// CanTransition reports whether moving from one status to another is legal.
// Any status may return to Connected (forced reset on game end or disconnect).
func CanTransition(from, to PlayerStatus) bool {
	if to == StatusConnected {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition validates and returns the next status. The current status is
// returned unchanged when the transition is illegal.
func Transition(current, next PlayerStatus) (PlayerStatus, error) {
	if !CanTransition(current, next) {
		return current, ErrInvalidTransition
	}
	return next, nil
}

// LeaderboardEntry is one row of the rating leaderboard
type LeaderboardEntry struct {
	DisplayName string `json:"display_name"`
	Rating      int    `json:"rating"`
	InGame      bool   `json:"in_game"`
}
