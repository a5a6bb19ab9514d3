package registry

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mathduel/mathduel/internal/dependencies/ident"
	"github.com/mathduel/mathduel/internal/model"
	"github.com/mathduel/mathduel/internal/storage"
)

// Service owns the set of connected players and enforces the status state
// machine. Every mutation is a single atomic step: concurrent handlers
// touching the same player cannot interleave a read-modify-write.
type Service struct {
	storage storage.Storage
	ident   ident.Ident
	logger  *slog.Logger

	// mu serializes read-modify-write mutations across all players; the
	// registry is small and contention is per-event, not per-frame
	mu sync.Mutex
}

// New creates a new player registry
func New(storage storage.Storage, ident ident.Ident, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		ident:   ident,
		logger:  logger.With(slog.String("component", "registry")),
	}
}

// Update describes a partial player mutation. Only non-nil fields are
// applied, field by field, under the registry's atomicity guarantee.
type Update struct {
	Rating       *int
	Status       *model.PlayerStatus
	CurrentScore *int
}

// Register creates a new player record in the Connected state
func (s *Service) Register(ctx context.Context, displayName string) (*model.Player, error) {
	player := &model.Player{
		ID:          model.PlayerID(s.ident.NewID()),
		DisplayName: displayName,
		Rating:      model.BaseRating,
		Status:      model.StatusConnected,
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Info("player registered",
		slog.String("player_id", string(player.ID)),
		slog.String("display_name", displayName),
	)
	return player, nil
}

// Get retrieves a player by ID
func (s *Service) Get(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, id)
}

// List returns all connected players in registration order
func (s *Service) List(ctx context.Context) ([]*model.Player, error) {
	return s.storage.ListPlayers(ctx)
}

// Remove deletes a player record
func (s *Service) Remove(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.DeletePlayer(ctx, id); err != nil {
		return err
	}
	s.logger.Info("player removed", slog.String("player_id", string(id)))
	return nil
}

// Apply performs a partial update. Status changes go through the state
// machine; an illegal transition rejects the whole update with no mutation.
func (s *Service) Apply(ctx context.Context, id model.PlayerID, upd Update) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(ctx, id, upd)
}

// apply is Apply without the lock, for internal composition
func (s *Service) apply(ctx context.Context, id model.PlayerID, upd Update) (*model.Player, error) {
	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *player
	if upd.Status != nil {
		next, err := model.Transition(updated.Status, *upd.Status)
		if err != nil {
			return nil, err
		}
		updated.Status = next
	}
	if upd.Rating != nil {
		updated.Rating = *upd.Rating
	}
	if upd.CurrentScore != nil {
		updated.CurrentScore = *upd.CurrentScore
	}

	if err := s.storage.SavePlayer(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// SetStatus transitions a player to the given status
func (s *Service) SetStatus(ctx context.Context, id model.PlayerID, status model.PlayerStatus) (*model.Player, error) {
	return s.Apply(ctx, id, Update{Status: &status})
}

// IncrementScore adds one to the player's current game score
func (s *Service) IncrementScore(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	score := player.CurrentScore + 1
	return s.apply(ctx, id, Update{CurrentScore: &score})
}

// DecrementScore subtracts one from the player's current game score,
// floored at zero
func (s *Service) DecrementScore(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	score := player.CurrentScore - 1
	if score < 0 {
		score = 0
	}
	return s.apply(ctx, id, Update{CurrentScore: &score})
}
