package model

import "time"

// EventType identifies the type of event on the duel channel
type EventType string

const (
	// Client -> server events
	EventSearchGame         EventType = "SearchGame"
	EventAnswer             EventType = "Answer"
	EventLeaderboardRequest EventType = "LeaderboardRequest"

	// Server -> client events
	EventPlayerConnected EventType = "PlayerConnected"
	EventPlayerUpdated   EventType = "PlayerUpdated"
	EventGameCreated     EventType = "GameCreated"
	EventGameStart       EventType = "GameStart"
	EventAnswerResult    EventType = "AnswerResult"
	EventGameUpdated     EventType = "GameUpdated"
	EventGameEnded       EventType = "GameEnded"
	EventLeaderboard     EventType = "Leaderboard"
)

// PlayerConnectedPayload is sent to a player once registration completes
type PlayerConnectedPayload struct {
	Player Player `json:"player"`
}

// PlayerUpdatedPayload carries the player's record after a state change
// (e.g. entering the searching state with no opponent available yet)
type PlayerUpdatedPayload struct {
	Player Player `json:"player"`
}

// AnswerPayload is the inbound body of an Answer event
type AnswerPayload struct {
	Answer int `json:"answer"`
}

// GameCreatedPayload announces a match to both participants
type GameCreatedPayload struct {
	GameID      GameID    `json:"game_id"`
	PlayerNames [2]string `json:"player_names"`
	Ratings     [2]int    `json:"ratings"`
}

// GameStartPayload carries the first problem when the play phase opens
type GameStartPayload struct {
	Problem   *ProblemStatement `json:"problem"`
	StartedAt time.Time         `json:"started_at"`
}

// AnswerResultPayload acknowledges an answer to the answerer only.
// NextProblem is set only when the answer was correct.
type AnswerResultPayload struct {
	Success     bool              `json:"success"`
	NextProblem *ProblemStatement `json:"next_problem,omitempty"`
}

// GameUpdatedPayload broadcasts the running score to both participants
type GameUpdatedPayload struct {
	GameID GameID           `json:"game_id"`
	Scores map[PlayerID]int `json:"scores"`
}

// GameEndedPayload carries the final outcome to both participants
type GameEndedPayload struct {
	GameID       GameID           `json:"game_id"`
	FinalScores  map[PlayerID]int `json:"final_scores"`
	FinalRatings map[PlayerID]int `json:"final_ratings"`
	Reason       GameEndReason    `json:"reason"`
}

// LeaderboardPayload is the reply to a LeaderboardRequest
type LeaderboardPayload struct {
	Entries   []LeaderboardEntry `json:"entries"`
	SizeLimit int                `json:"size_limit"`
}
