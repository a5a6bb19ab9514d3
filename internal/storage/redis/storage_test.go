package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mathduel/mathduel/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.PlayerTTL = time.Hour
	cfg.GameTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) player(id string, name string) *model.Player {
	return &model.Player{
		ID:          model.PlayerID(id),
		DisplayName: name,
		Rating:      model.BaseRating,
		Status:      model.StatusConnected,
	}
}

func (s *StorageSuite) game(id string, a, b string) *model.Game {
	return &model.Game{
		ID:        model.GameID(id),
		Players:   [2]model.PlayerID{model.PlayerID(a), model.PlayerID(b)},
		StartedAt: time.Now().UTC(),
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := s.player("player-1", "Alice")
	player.Status = model.StatusSearching
	player.CurrentScore = 3

	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	got, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal("Alice", got.DisplayName)
	s.Equal(model.StatusSearching, got.Status)
	s.Equal(3, got.CurrentScore)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nope")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayerRemovesFromListing() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("p1", "Alice")))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("p2", "Bob")))

	s.Require().NoError(s.storage.DeletePlayer(s.ctx, "p1"))

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 1)
	s.Equal(model.PlayerID("p2"), players[0].ID)
}

func (s *StorageSuite) TestListPlayersPreservesRegistrationOrder() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("p1", "Alice")))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("p2", "Bob")))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("p3", "Carol")))

	// Re-saving must not duplicate the order entry
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("p2", "Bob")))

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 3)
	s.Equal(model.PlayerID("p1"), players[0].ID)
	s.Equal(model.PlayerID("p2"), players[1].ID)
	s.Equal(model.PlayerID("p3"), players[2].ID)
}

// Game tests

func (s *StorageSuite) TestSaveAndGetGame() {
	game := s.game("game-1", "p1", "p2")
	game.Problems = []*model.Problem{
		{ID: "prob-1", Title: "2 x 3", Description: "2 x 3", Difficulty: 1, Solution: 6},
	}

	s.Require().NoError(s.storage.SaveGame(s.ctx, game))

	got, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p1"), got.Players[0])
	s.Require().Len(got.Problems, 1)
	s.Equal(6, got.Problems[0].Solution)
}

func (s *StorageSuite) TestRemoveGame() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.game("game-1", "p1", "p2")))

	removed, err := s.storage.RemoveGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(model.GameID("game-1"), removed.ID)

	_, err = s.storage.RemoveGame(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestGetGameForPlayer() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.game("game-1", "p1", "p2")))

	game, err := s.storage.GetGameForPlayer(s.ctx, "p2")
	s.Require().NoError(err)
	s.Equal(model.GameID("game-1"), game.ID)
}

func (s *StorageSuite) TestGetGameForPlayerClearedOnRemoval() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.game("game-1", "p1", "p2")))

	_, err := s.storage.RemoveGame(s.ctx, "game-1")
	s.Require().NoError(err)

	_, err = s.storage.GetGameForPlayer(s.ctx, "p1")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestListGames() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.game("game-1", "p1", "p2")))
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.game("game-2", "p3", "p4")))

	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 2)
	s.Equal(model.GameID("game-1"), games[0].ID)
	s.Equal(model.GameID("game-2"), games[1].ID)
}
