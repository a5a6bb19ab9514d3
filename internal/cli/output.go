package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting and printing results
type Output struct {
	format string
}

// NewOutput creates an Output for the configured format
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Player mirrors the API's player representation
type Player struct {
	ID           string `json:"id"`
	DisplayName  string `json:"display_name"`
	Rating       int    `json:"rating"`
	Status       string `json:"status"`
	CurrentScore int    `json:"current_score"`
}

// PlayerList is the player listing response
type PlayerList struct {
	Players []Player `json:"players"`
}

// GameSummary mirrors the API's game representation
type GameSummary struct {
	ID           string    `json:"id"`
	Players      [2]string `json:"players"`
	StartedAt    time.Time `json:"started_at"`
	ProblemCount int       `json:"problem_count"`
}

// GameList is the game listing response
type GameList struct {
	Games []GameSummary `json:"games"`
}

// LeaderboardEntry is one row of the leaderboard response
type LeaderboardEntry struct {
	DisplayName string `json:"display_name"`
	Rating      int    `json:"rating"`
	InGame      bool   `json:"in_game"`
}

// Leaderboard is the leaderboard response
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// HealthResult is the health check response
type HealthResult struct {
	Status string `json:"status"`
}

// Print outputs a result in the configured format
func (o *Output) Print(result any) {
	if o.format == "json" {
		o.printJSON(result)
		return
	}
	o.printText(result)
}

// PrintError outputs an error message to stderr
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Fprintln(os.Stderr, string(data))
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
		return
	}
	fmt.Println(msg)
}

func (o *Output) printJSON(result any) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %s\n", err.Error())
		return
	}
	fmt.Println(string(data))
}

func (o *Output) printText(result any) {
	switch v := result.(type) {
	case *Player:
		o.printPlayer(v)
	case *PlayerList:
		o.printPlayerList(v)
	case *GameSummary:
		o.printGame(v)
	case *GameList:
		o.printGameList(v)
	case *Leaderboard:
		o.printLeaderboard(v)
	case *HealthResult:
		fmt.Printf("Server status: %s\n", v.Status)
	default:
		o.printJSON(result)
	}
}

func (o *Output) printPlayer(p *Player) {
	fmt.Printf("Player: %s\n", p.DisplayName)
	fmt.Printf("  ID:     %s\n", p.ID)
	fmt.Printf("  Rating: %d\n", p.Rating)
	fmt.Printf("  Status: %s\n", p.Status)
	if p.Status == "playing" {
		fmt.Printf("  Score:  %d\n", p.CurrentScore)
	}
}

func (o *Output) printPlayerList(list *PlayerList) {
	if len(list.Players) == 0 {
		fmt.Println("No players online")
		return
	}
	fmt.Printf("%-24s %-8s %-10s\n", "NAME", "RATING", "STATUS")
	for _, p := range list.Players {
		fmt.Printf("%-24s %-8d %-10s\n", p.DisplayName, p.Rating, p.Status)
	}
}

func (o *Output) printGame(g *GameSummary) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("  Players:  %s vs %s\n", g.Players[0], g.Players[1])
	if g.StartedAt.IsZero() {
		fmt.Printf("  Started:  not yet\n")
	} else {
		fmt.Printf("  Started:  %s\n", g.StartedAt.Format(time.RFC3339))
	}
	fmt.Printf("  Problems: %d\n", g.ProblemCount)
}

func (o *Output) printGameList(list *GameList) {
	if len(list.Games) == 0 {
		fmt.Println("No games in progress")
		return
	}
	for i, g := range list.Games {
		if i > 0 {
			fmt.Println()
		}
		o.printGame(&g)
	}
}

func (o *Output) printLeaderboard(lb *Leaderboard) {
	if len(lb.Entries) == 0 {
		fmt.Println("Leaderboard is empty")
		return
	}
	fmt.Printf("%-4s %-24s %-8s %s\n", "#", "NAME", "RATING", "")
	for i, e := range lb.Entries {
		marker := ""
		if e.InGame {
			marker = "(in game)"
		}
		fmt.Printf("%-4d %-24s %-8d %s\n", i+1, e.DisplayName, e.Rating, marker)
	}
}
