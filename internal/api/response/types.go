package response

import (
	"time"

	"github.com/mathduel/mathduel/internal/model"
)

// Player represents a player in API responses
type Player struct {
	ID           string `json:"id"`
	DisplayName  string `json:"display_name"`
	Rating       int    `json:"rating"`
	Status       string `json:"status"`
	CurrentScore int    `json:"current_score"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:           string(p.ID),
		DisplayName:  p.DisplayName,
		Rating:       p.Rating,
		Status:       string(p.Status),
		CurrentScore: p.CurrentScore,
	}
}

// PlayerList is the response for the player listing endpoint
type PlayerList struct {
	Players []Player `json:"players"`
}

// GameSummary represents a live game in API responses. Problems stay
// server-side; only the track length is exposed.
type GameSummary struct {
	ID           string    `json:"id"`
	Players      [2]string `json:"players"`
	StartedAt    time.Time `json:"started_at"`
	ProblemCount int       `json:"problem_count"`
}

// GameSummaryFromModel converts a model.Game to a response GameSummary
func GameSummaryFromModel(g *model.Game) GameSummary {
	return GameSummary{
		ID:           string(g.ID),
		Players:      [2]string{string(g.Players[0]), string(g.Players[1])},
		StartedAt:    g.StartedAt,
		ProblemCount: len(g.Problems),
	}
}

// GameList is the response for the game listing endpoint
type GameList struct {
	Games []GameSummary `json:"games"`
}

// Leaderboard is the response for the leaderboard endpoint
type Leaderboard struct {
	Entries []model.LeaderboardEntry `json:"entries"`
}

// Health is the response for the health endpoint
type Health struct {
	Status string `json:"status"`
}
