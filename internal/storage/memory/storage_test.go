package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mathduel/mathduel/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
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
		StartedAt: time.Now(),
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := s.player("player-1", "Alice")
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	got, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal("Alice", got.DisplayName)
	s.Equal(model.BaseRating, got.Rating)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nope")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayer() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("player-1", "Alice")))
	s.Require().NoError(s.storage.DeletePlayer(s.ctx, "player-1"))

	_, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayerIsIdempotent() {
	s.NoError(s.storage.DeletePlayer(s.ctx, "player-1"))
}

func (s *StorageSuite) TestListPlayersPreservesRegistrationOrder() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("p1", "Alice")))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("p2", "Bob")))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("p3", "Carol")))

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 3)
	s.Equal(model.PlayerID("p1"), players[0].ID)
	s.Equal(model.PlayerID("p2"), players[1].ID)
	s.Equal(model.PlayerID("p3"), players[2].ID)
}

func (s *StorageSuite) TestResavingPlayerKeepsOrder() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("p1", "Alice")))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("p2", "Bob")))

	updated := s.player("p1", "Alice")
	updated.Rating = 1100
	s.Require().NoError(s.storage.SavePlayer(s.ctx, updated))

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 2)
	s.Equal(model.PlayerID("p1"), players[0].ID)
	s.Equal(1100, players[0].Rating)
}

// Game tests

func (s *StorageSuite) TestSaveAndGetGame() {
	game := s.game("game-1", "p1", "p2")
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))

	got, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p1"), got.Players[0])
	s.Equal(model.PlayerID("p2"), got.Players[1])
}

func (s *StorageSuite) TestRemoveGameReturnsGame() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.game("game-1", "p1", "p2")))

	removed, err := s.storage.RemoveGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(model.GameID("game-1"), removed.ID)

	_, err = s.storage.GetGame(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestRemoveGameTwiceFails() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.game("game-1", "p1", "p2")))

	_, err := s.storage.RemoveGame(s.ctx, "game-1")
	s.Require().NoError(err)

	_, err = s.storage.RemoveGame(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestGetGameForPlayer() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.game("game-1", "p1", "p2")))
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.game("game-2", "p3", "p4")))

	game, err := s.storage.GetGameForPlayer(s.ctx, "p4")
	s.Require().NoError(err)
	s.Equal(model.GameID("game-2"), game.ID)

	_, err = s.storage.GetGameForPlayer(s.ctx, "p5")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestListGames() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.game("game-1", "p1", "p2")))
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.game("game-2", "p3", "p4")))

	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Len(games, 2)
}
