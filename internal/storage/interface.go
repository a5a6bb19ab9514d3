package storage

import (
	"context"

	"github.com/mathduel/mathduel/internal/model"
)

// Storage defines the interface for player and game persistence.
//
// ListPlayers returns players in registration order; matchmaking depends on
// this being deterministic.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error
	ListPlayers(ctx context.Context) ([]*model.Player, error)

	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	// RemoveGame deletes the game and returns it in a single step, or
	// model.ErrGameNotFound when it is not live. Two racing removals
	// cannot both succeed, which is what makes ending a game idempotent.
	RemoveGame(ctx context.Context, id model.GameID) (*model.Game, error)
	// GetGameForPlayer returns the live game the player participates in,
	// or model.ErrGameNotFound
	GetGameForPlayer(ctx context.Context, id model.PlayerID) (*model.Game, error)
	ListGames(ctx context.Context) ([]*model.Game, error)
}
