package orchestrator

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/mathduel/mathduel/internal/model"
	"github.com/mathduel/mathduel/internal/services/matchmaking"
	"github.com/mathduel/mathduel/internal/services/registry"
	"github.com/mathduel/mathduel/internal/services/session"
)

// Notifier delivers an outbound event to a single player. Delivery is
// fire-and-forget: the orchestrator never blocks on a slow client.
type Notifier interface {
	Notify(playerID model.PlayerID, event model.EventType, payload any)
}

// Config holds the fixed phase timings
type Config struct {
	// StartDelay separates the match announcement from the first problem
	StartDelay time.Duration
	// PlayDuration is the scoring window; when it elapses the game is
	// force-ended regardless of in-progress answers
	PlayDuration time.Duration
	// LeaderboardSize caps leaderboard replies
	LeaderboardSize int
}

// DefaultConfig returns the production phase timings
func DefaultConfig() Config {
	return Config{
		StartDelay:      3 * time.Second,
		PlayDuration:    60 * time.Second,
		LeaderboardSize: session.DefaultLeaderboardSize,
	}
}

// Orchestrator drives games through their timed phases and routes inbound
// events (connect, search, answer, disconnect) to the services.
//
// All event handling is serialized behind a single mutex: one logical
// event-processing flow, many live games. Phase timers re-enter through
// the same mutex, and a timer firing for a game that already ended finds
// nothing to do because game removal is atomic.
type Orchestrator struct {
	registry   *registry.Service
	matchmaker *matchmaking.Service
	sessions   *session.Manager
	notifier   Notifier
	cfg        Config
	logger     *slog.Logger

	mu sync.Mutex
}

// New creates a new orchestrator
func New(
	registry *registry.Service,
	matchmaker *matchmaking.Service,
	sessions *session.Manager,
	notifier Notifier,
	cfg Config,
	logger *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		registry:   registry,
		matchmaker: matchmaker,
		sessions:   sessions,
		notifier:   notifier,
		cfg:        cfg,
		logger:     logger.With(slog.String("component", "orchestrator")),
	}
}

// HandleConnect registers a new player. The transport acknowledges the
// connection itself once it has bound the player to a delivery channel;
// notifying from here would race that binding.
func (o *Orchestrator) HandleConnect(ctx context.Context, displayName string) (*model.Player, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.registry.Register(ctx, displayName)
}

// HandleSearch moves the player into matchmaking. When an opponent is
// available a game is created immediately, both players are told, and the
// phase timers are armed; otherwise the player stays in the Searching
// state and receives a PlayerUpdated acknowledgment.
func (o *Orchestrator) HandleSearch(ctx context.Context, playerID model.PlayerID) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	player, err := o.registry.SetStatus(ctx, playerID, model.StatusSearching)
	if err != nil {
		return err
	}

	candidates, err := o.registry.List(ctx)
	if err != nil {
		return err
	}

	opponent := o.matchmaker.FindOpponent(player, candidates)
	if opponent == nil {
		o.notifier.Notify(playerID, model.EventPlayerUpdated, model.PlayerUpdatedPayload{Player: *player})
		return nil
	}

	game, err := o.sessions.Create(ctx, player.ID, opponent.ID)
	if err != nil {
		return err
	}

	payload := model.GameCreatedPayload{
		GameID:      game.ID,
		PlayerNames: [2]string{player.DisplayName, opponent.DisplayName},
		Ratings:     [2]int{player.Rating, opponent.Rating},
	}
	o.broadcast(game, model.EventGameCreated, payload)

	time.AfterFunc(o.cfg.StartDelay, func() {
		o.startPlay(context.Background(), game.ID)
	})
	return nil
}

// HandleAnswer validates an answer against the player's live game. A
// correct answer bumps the score, hands the answerer their next problem,
// and broadcasts the updated scores; an incorrect answer is acknowledged
// to the answerer only and changes nothing.
func (o *Orchestrator) HandleAnswer(ctx context.Context, playerID model.PlayerID, answer int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	game, err := o.sessions.GetForPlayer(ctx, playerID)
	if err != nil {
		return err
	}

	if !o.sessions.ValidateAnswer(ctx, playerID, game.ID, answer) {
		o.notifier.Notify(playerID, model.EventAnswerResult, model.AnswerResultPayload{Success: false})
		return nil
	}

	if _, err := o.registry.IncrementScore(ctx, playerID); err != nil {
		return err
	}

	next, err := o.sessions.CurrentProblem(ctx, game.ID)
	if err != nil {
		return err
	}

	o.notifier.Notify(playerID, model.EventAnswerResult, model.AnswerResultPayload{
		Success:     true,
		NextProblem: next.Statement(),
	})

	scores, err := o.currentScores(ctx, game)
	if err != nil {
		return err
	}
	o.broadcast(game, model.EventGameUpdated, model.GameUpdatedPayload{
		GameID: game.ID,
		Scores: scores,
	})
	return nil
}

// HandleLeaderboard replies with the rating leaderboard
func (o *Orchestrator) HandleLeaderboard(ctx context.Context, playerID model.PlayerID) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	entries, err := o.sessions.Leaderboard(ctx, o.cfg.LeaderboardSize)
	if err != nil {
		return err
	}

	o.notifier.Notify(playerID, model.EventLeaderboard, model.LeaderboardPayload{
		Entries:   entries,
		SizeLimit: o.cfg.LeaderboardSize,
	})
	return nil
}

// HandleDisconnect tears down any live game for the player before the
// player record goes away. The opponent is told the game is over; the
// scheduled scoring-end timer later finds the game gone and does nothing.
func (o *Orchestrator) HandleDisconnect(ctx context.Context, playerID model.PlayerID) {
	o.mu.Lock()
	defer o.mu.Unlock()

	game, err := o.sessions.GetForPlayer(ctx, playerID)
	if err == nil {
		o.finishGame(ctx, game.ID, model.EndReasonDisconnect)
		return
	}
	if !errors.Is(err, model.ErrGameNotFound) {
		o.logger.Error("disconnect lookup failed",
			slog.String("player_id", string(playerID)),
			slog.String("error", err.Error()),
		)
	}

	if err := o.registry.Remove(ctx, playerID); err != nil {
		o.logger.Error("failed to remove player",
			slog.String("player_id", string(playerID)),
			slog.String("error", err.Error()),
		)
	}
}

// startPlay opens the scoring window: both players move to Playing, the
// first problem is issued to both, and the end-of-game timer is armed.
// A game ended before the start delay elapsed is a quiet no-op.
func (o *Orchestrator) startPlay(ctx context.Context, gameID model.GameID) {
	o.mu.Lock()
	defer o.mu.Unlock()

	game, err := o.sessions.Get(ctx, gameID)
	if err != nil {
		return
	}

	if err := o.sessions.MarkPlaying(ctx, gameID); err != nil {
		o.logger.Error("failed to start game",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()),
		)
		return
	}

	first, err := o.sessions.CurrentProblem(ctx, gameID)
	if err != nil {
		o.logger.Error("failed to issue first problem",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()),
		)
		return
	}

	o.broadcast(game, model.EventGameStart, model.GameStartPayload{
		Problem:   first.Statement(),
		StartedAt: game.StartedAt,
	})

	time.AfterFunc(o.cfg.PlayDuration, func() {
		o.endPlay(context.Background(), gameID)
	})
}

// endPlay closes the scoring window when the game length elapses
func (o *Orchestrator) endPlay(ctx context.Context, gameID model.GameID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.finishGame(ctx, gameID, model.EndReasonTimeUp)
}

// finishGame settles a game and notifies both participants. Caller holds
// the orchestrator mutex. Ending a game that is already gone is a no-op:
// that is how stale timers and racing disconnects cancel each other.
func (o *Orchestrator) finishGame(ctx context.Context, gameID model.GameID, reason model.GameEndReason) {
	result, err := o.sessions.End(ctx, gameID, reason)
	if err != nil {
		if errors.Is(err, model.ErrGameNotFound) {
			return
		}
		o.logger.Error("failed to end game",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()),
		)
		return
	}

	payload := model.GameEndedPayload{
		GameID: result.GameID,
		FinalScores: map[model.PlayerID]int{
			result.Players[0]: result.FinalScores[0],
			result.Players[1]: result.FinalScores[1],
		},
		FinalRatings: map[model.PlayerID]int{
			result.Players[0]: result.FinalRatings[0],
			result.Players[1]: result.FinalRatings[1],
		},
		Reason: reason,
	}
	for _, pid := range result.Players {
		o.notifier.Notify(pid, model.EventGameEnded, payload)
	}
}

// broadcast sends an event to both participants of a game
func (o *Orchestrator) broadcast(game *model.Game, event model.EventType, payload any) {
	for _, pid := range game.Players {
		o.notifier.Notify(pid, event, payload)
	}
}

// currentScores reads both players' scores for a broadcast
func (o *Orchestrator) currentScores(ctx context.Context, game *model.Game) (map[model.PlayerID]int, error) {
	scores := make(map[model.PlayerID]int, 2)
	for _, pid := range game.Players {
		player, err := o.registry.Get(ctx, pid)
		if err != nil {
			return nil, err
		}
		scores[pid] = player.CurrentScore
	}
	return scores, nil
}
