package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

// envelope mirrors the duel channel frame format
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play <name>",
		Short: "Play a duel interactively",
		Long: `Connects to the server's duel channel under the given display name,
searches for an opponent, and plays a round. Type answers at the
prompt; an empty line re-enters the matchmaking queue after a game.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(args[0])
		},
	}
}

func runPlay(name string) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.Dial(client.WebSocketURL(name), nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer func() { _ = conn.Close() }()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var env envelope
			if err := conn.ReadJSON(&env); err != nil {
				return
			}
			printEvent(&env)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			_ = conn.Close()
		case <-done:
		}
	}()

	// First input of any kind starts the search; after that, numbers are
	// answers and anything else searches again.
	fmt.Println("Press Enter to search for an opponent. Ctrl-C to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	searched := false
	for scanner.Scan() {
		select {
		case <-done:
			return nil
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if n, err := strconv.Atoi(line); err == nil && searched {
			payload, _ := json.Marshal(map[string]int{"answer": n})
			if err := conn.WriteJSON(envelope{Event: "Answer", Data: payload}); err != nil {
				return nil
			}
			continue
		}

		if err := conn.WriteJSON(envelope{Event: "SearchGame"}); err != nil {
			return nil
		}
		searched = true
	}

	<-done
	return nil
}

// printEvent renders a server frame for the terminal. Unknown events are
// dumped raw so a newer server still produces something readable.
func printEvent(env *envelope) {
	switch env.Event {
	case "PlayerConnected":
		var p struct {
			Player Player `json:"player"`
		}
		if json.Unmarshal(env.Data, &p) == nil {
			fmt.Printf("Connected as %s (rating %d)\n", p.Player.DisplayName, p.Player.Rating)
		}
	case "PlayerUpdated":
		var p struct {
			Player Player `json:"player"`
		}
		if json.Unmarshal(env.Data, &p) == nil && p.Player.Status == "searching" {
			fmt.Println("Searching for an opponent...")
		}
	case "GameCreated":
		var g struct {
			PlayerNames [2]string `json:"player_names"`
			Ratings     [2]int    `json:"ratings"`
		}
		if json.Unmarshal(env.Data, &g) == nil {
			fmt.Printf("Matched! %s (%d) vs %s (%d). Starting shortly...\n",
				g.PlayerNames[0], g.Ratings[0], g.PlayerNames[1], g.Ratings[1])
		}
	case "GameStart":
		var g struct {
			Problem struct {
				Title       string `json:"title"`
				Description string `json:"description"`
			} `json:"problem"`
		}
		if json.Unmarshal(env.Data, &g) == nil {
			fmt.Printf("Go! %s\n> ", g.Problem.Description)
		}
	case "AnswerResult":
		var r struct {
			Success     bool `json:"success"`
			NextProblem *struct {
				Description string `json:"description"`
			} `json:"next_problem"`
		}
		if json.Unmarshal(env.Data, &r) == nil {
			if !r.Success {
				fmt.Print("Wrong, try again.\n> ")
			} else if r.NextProblem != nil {
				fmt.Printf("Correct! Next: %s\n> ", r.NextProblem.Description)
			}
		}
	case "GameUpdated":
		var u struct {
			Scores map[string]int `json:"scores"`
		}
		if json.Unmarshal(env.Data, &u) == nil {
			parts := make([]string, 0, len(u.Scores))
			for id, score := range u.Scores {
				parts = append(parts, fmt.Sprintf("%s=%d", id, score))
			}
			fmt.Printf("Score update: %s\n", strings.Join(parts, " "))
		}
	case "GameEnded":
		var e struct {
			FinalScores  map[string]int `json:"final_scores"`
			FinalRatings map[string]int `json:"final_ratings"`
			Reason       string         `json:"reason"`
		}
		if json.Unmarshal(env.Data, &e) == nil {
			fmt.Printf("Game over (%s)\n", e.Reason)
			for id, score := range e.FinalScores {
				fmt.Printf("  %s: %d points, rating %d\n", id, score, e.FinalRatings[id])
			}
			fmt.Println("Press Enter to search again.")
		}
	default:
		fmt.Printf("[%s] %s\n", env.Event, string(env.Data))
	}
}
