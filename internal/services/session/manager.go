package session

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/mathduel/mathduel/internal/dependencies/clock"
	"github.com/mathduel/mathduel/internal/dependencies/ident"
	"github.com/mathduel/mathduel/internal/model"
	"github.com/mathduel/mathduel/internal/services/problem"
	"github.com/mathduel/mathduel/internal/services/rating"
	"github.com/mathduel/mathduel/internal/services/registry"
	"github.com/mathduel/mathduel/internal/storage"
)

// DefaultLeaderboardSize caps the leaderboard reply
const DefaultLeaderboardSize = 10

// problemsPerTier controls difficulty escalation for games without a fixed
// difficulty: the tier rises by one every problemsPerTier problems
const problemsPerTier = 5

// Manager owns the set of live games: creation, teardown, the shared
// problem track, and answer validation. It never holds player records
// inside a game, only identifiers; the registry stays the single owner of
// player state.
type Manager struct {
	storage  storage.Storage
	registry *registry.Service
	rating   *rating.Service
	problems *problem.Generator
	clock    clock.Clock
	ident    ident.Ident
	logger   *slog.Logger
}

// NewManager creates a new session manager
func NewManager(
	storage storage.Storage,
	registry *registry.Service,
	rating *rating.Service,
	problems *problem.Generator,
	clock clock.Clock,
	ident ident.Ident,
	logger *slog.Logger,
) *Manager {
	return &Manager{
		storage:  storage,
		registry: registry,
		rating:   rating,
		problems: problems,
		clock:    clock,
		ident:    ident,
		logger:   logger.With(slog.String("component", "session")),
	}
}

// Create matches two players into a new game: both scores reset to zero,
// both players move to Waiting, and the game starts with an empty problem
// track.
func (m *Manager) Create(ctx context.Context, idA, idB model.PlayerID) (*model.Game, error) {
	zero := 0
	waiting := model.StatusWaiting

	if _, err := m.registry.Apply(ctx, idA, registry.Update{Status: &waiting, CurrentScore: &zero}); err != nil {
		return nil, err
	}
	if _, err := m.registry.Apply(ctx, idB, registry.Update{Status: &waiting, CurrentScore: &zero}); err != nil {
		return nil, err
	}

	game := &model.Game{
		ID:        model.GameID(m.ident.NewID()),
		Players:   [2]model.PlayerID{idA, idB},
		StartedAt: m.clock.Now(),
	}

	if err := m.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	m.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.String("player_a", string(idA)),
		slog.String("player_b", string(idB)),
	)
	return game, nil
}

// Get retrieves a live game by ID
func (m *Manager) Get(ctx context.Context, id model.GameID) (*model.Game, error) {
	return m.storage.GetGame(ctx, id)
}

// GetForPlayer returns the live game a player participates in
func (m *Manager) GetForPlayer(ctx context.Context, id model.PlayerID) (*model.Game, error) {
	return m.storage.GetGameForPlayer(ctx, id)
}

// List returns all live games
func (m *Manager) List(ctx context.Context) ([]*model.Game, error) {
	return m.storage.ListGames(ctx)
}

// MarkPlaying moves both participants to the Playing state
func (m *Manager) MarkPlaying(ctx context.Context, id model.GameID) error {
	game, err := m.storage.GetGame(ctx, id)
	if err != nil {
		return err
	}
	for _, pid := range game.Players {
		if _, err := m.registry.SetStatus(ctx, pid, model.StatusPlaying); err != nil {
			return err
		}
	}
	return nil
}

// End removes the game from the live set and settles it: winner by score,
// ratings updated through the rating service, both players reset to
// Connected. The removal is atomic, so a second End for the same game (or
// a stale phase timer) finds nothing and returns model.ErrGameNotFound.
//
// A game whose participant is missing from the registry is a consistency
// violation: the game is abandoned with model.ErrGameInconsistent and no
// rating is written, since the inputs cannot be trusted.
func (m *Manager) End(ctx context.Context, id model.GameID, reason model.GameEndReason) (*model.GameResult, error) {
	game, err := m.storage.RemoveGame(ctx, id)
	if err != nil {
		return nil, err
	}

	playerA, errA := m.registry.Get(ctx, game.Players[0])
	playerB, errB := m.registry.Get(ctx, game.Players[1])
	if errA != nil || errB != nil {
		m.logger.Error("game references missing player",
			slog.String("game_id", string(id)),
			slog.String("player_a", string(game.Players[0])),
			slog.String("player_b", string(game.Players[1])),
		)
		return nil, model.ErrGameInconsistent
	}

	aWon := playerA.CurrentScore > playerB.CurrentScore
	margin := playerA.CurrentScore - playerB.CurrentScore
	if margin < 0 {
		margin = -margin
	}

	newA, newB := m.rating.Update(playerA.Rating, playerB.Rating, aWon, margin)

	connected := model.StatusConnected
	if _, err := m.registry.Apply(ctx, playerA.ID, registry.Update{Rating: &newA, Status: &connected}); err != nil {
		return nil, err
	}
	if _, err := m.registry.Apply(ctx, playerB.ID, registry.Update{Rating: &newB, Status: &connected}); err != nil {
		return nil, err
	}

	m.logger.Info("game ended",
		slog.String("game_id", string(id)),
		slog.String("reason", string(reason)),
		slog.Int("score_a", playerA.CurrentScore),
		slog.Int("score_b", playerB.CurrentScore),
		slog.Int("rating_a", newA),
		slog.Int("rating_b", newB),
	)

	return &model.GameResult{
		GameID:       id,
		Players:      game.Players,
		FinalScores:  [2]int{playerA.CurrentScore, playerB.CurrentScore},
		FinalRatings: [2]int{newA, newB},
		Reason:       reason,
	}, nil
}

// CurrentProblem returns the problem at the head of the shared track,
// keyed by the higher of the two players' scores. When the leader has
// answered every existing problem a fresh one is generated and appended,
// so the track advances with whichever player is further ahead.
func (m *Manager) CurrentProblem(ctx context.Context, id model.GameID) (*model.Problem, error) {
	game, err := m.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	playerA, errA := m.registry.Get(ctx, game.Players[0])
	playerB, errB := m.registry.Get(ctx, game.Players[1])
	if errA != nil || errB != nil {
		return nil, model.ErrGameInconsistent
	}

	index := playerA.CurrentScore
	if playerB.CurrentScore > index {
		index = playerB.CurrentScore
	}

	if index < len(game.Problems) {
		return game.Problems[index], nil
	}

	difficulty := game.Difficulty
	if difficulty == 0 {
		difficulty = 1 + index/problemsPerTier
	}

	generated := m.problems.Generate(difficulty)
	game.Problems = append(game.Problems, generated)
	if err := m.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}
	return generated, nil
}

// ValidateAnswer compares an answer against the problem at the answering
// player's own score index. It fails closed: an unknown game, player, or
// problem index is simply an incorrect answer.
func (m *Manager) ValidateAnswer(ctx context.Context, playerID model.PlayerID, gameID model.GameID, answer int) bool {
	game, err := m.storage.GetGame(ctx, gameID)
	if err != nil {
		m.logger.Warn("answer for unknown game", slog.String("game_id", string(gameID)))
		return false
	}

	player, err := m.registry.Get(ctx, playerID)
	if err != nil {
		m.logger.Warn("answer from unknown player", slog.String("player_id", string(playerID)))
		return false
	}

	if player.CurrentScore >= len(game.Problems) {
		m.logger.Warn("answer with no problem issued",
			slog.String("game_id", string(gameID)),
			slog.String("player_id", string(playerID)),
			slog.Int("score", player.CurrentScore),
		)
		return false
	}

	return game.Problems[player.CurrentScore].Solution == answer
}

// Leaderboard returns up to size players sorted by rating descending, each
// flagged with whether they are currently in a live game. A size of zero
// or below falls back to DefaultLeaderboardSize.
func (m *Manager) Leaderboard(ctx context.Context, size int) ([]model.LeaderboardEntry, error) {
	if size <= 0 {
		size = DefaultLeaderboardSize
	}

	players, err := m.registry.List(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]model.LeaderboardEntry, 0, len(players))
	for _, p := range players {
		inGame := false
		if _, err := m.storage.GetGameForPlayer(ctx, p.ID); err == nil {
			inGame = true
		} else if !errors.Is(err, model.ErrGameNotFound) {
			return nil, err
		}
		entries = append(entries, model.LeaderboardEntry{
			DisplayName: p.DisplayName,
			Rating:      p.Rating,
			InGame:      inGame,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Rating > entries[j].Rating
	})

	if len(entries) > size {
		entries = entries[:size]
	}
	return entries, nil
}
