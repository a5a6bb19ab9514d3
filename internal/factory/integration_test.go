package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mathduel/mathduel/internal/model"
	"github.com/mathduel/mathduel/internal/services/orchestrator"
	"github.com/mathduel/mathduel/internal/services/registry"
)

type IntegrationSuite struct {
	suite.Suite
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.ctx = context.Background()
}

// idleApp returns an app whose phase timers never fire during a test
func (s *IntegrationSuite) idleApp() *TestApp {
	return NewTestApp(orchestrator.Config{
		StartDelay:      time.Hour,
		PlayDuration:    time.Hour,
		LeaderboardSize: 10,
	})
}

func (s *IntegrationSuite) connect(app *TestApp, id, name string) model.PlayerID {
	app.MockIdent.QueueID(id)
	player, err := app.Orchestrator.HandleConnect(s.ctx, name)
	s.Require().NoError(err)
	return player.ID
}

// Test: a full duel driven end to end by the real phase timers
func (s *IntegrationSuite) TestCompleteDuelFlow() {
	app := NewTestApp(orchestrator.Config{
		StartDelay:      20 * time.Millisecond,
		PlayDuration:    200 * time.Millisecond,
		LeaderboardSize: 10,
	})

	// Problems: 2 x 3 first, 4 x 5 after the correct answer
	app.MockRandom.QueueIntn(2, 2)
	app.MockRandom.QueueBetween(2, 3, 4, 5)

	alice := s.connect(app, "alice", "Alice")
	bob := s.connect(app, "bob", "Bob")

	app.MockIdent.QueueID("game-1")
	s.Require().NoError(app.Orchestrator.HandleSearch(s.ctx, alice))
	s.Require().NoError(app.Orchestrator.HandleSearch(s.ctx, bob))

	game, err := app.Sessions.GetForPlayer(s.ctx, alice)
	s.Require().NoError(err)
	s.True(game.HasPlayer(bob))

	// The start delay elapses and both players enter the play phase
	s.Require().Eventually(func() bool {
		p, err := app.Registry.Get(s.ctx, alice)
		return err == nil && p.Status == model.StatusPlaying
	}, 2*time.Second, 5*time.Millisecond)

	s.Require().NoError(app.Orchestrator.HandleAnswer(s.ctx, alice, 6))

	p, err := app.Registry.Get(s.ctx, alice)
	s.Require().NoError(err)
	s.Equal(1, p.CurrentScore)

	// The play window elapses and the game settles
	s.Require().Eventually(func() bool {
		p, err := app.Registry.Get(s.ctx, alice)
		return err == nil && p.Status == model.StatusConnected
	}, 2*time.Second, 5*time.Millisecond)

	_, err = app.Sessions.Get(s.ctx, game.ID)
	s.ErrorIs(err, model.ErrGameNotFound)

	winner, err := app.Registry.Get(s.ctx, alice)
	s.Require().NoError(err)
	loser, err := app.Registry.Get(s.ctx, bob)
	s.Require().NoError(err)
	s.Greater(winner.Rating, model.BaseRating)
	s.Less(loser.Rating, model.BaseRating)
}

// Test: players outside the rating gap never match
func (s *IntegrationSuite) TestNoMatchOutsideRatingGap() {
	app := s.idleApp()

	alice := s.connect(app, "alice", "Alice")
	bob := s.connect(app, "bob", "Bob")

	high := 1300
	_, err := app.Registry.Apply(s.ctx, bob, registry.Update{Rating: &high})
	s.Require().NoError(err)

	s.Require().NoError(app.Orchestrator.HandleSearch(s.ctx, alice))
	s.Require().NoError(app.Orchestrator.HandleSearch(s.ctx, bob))

	games, err := app.Sessions.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(games)

	for _, id := range []model.PlayerID{alice, bob} {
		p, err := app.Registry.Get(s.ctx, id)
		s.Require().NoError(err)
		s.Equal(model.StatusSearching, p.Status)
	}
}

// Test: a disconnect mid-game settles the game and keeps both records
func (s *IntegrationSuite) TestDisconnectDuringGameSettles() {
	app := s.idleApp()

	alice := s.connect(app, "alice", "Alice")
	bob := s.connect(app, "bob", "Bob")

	app.MockIdent.QueueID("game-1")
	s.Require().NoError(app.Orchestrator.HandleSearch(s.ctx, alice))
	s.Require().NoError(app.Orchestrator.HandleSearch(s.ctx, bob))

	app.Orchestrator.HandleDisconnect(s.ctx, alice)

	games, err := app.Sessions.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(games)

	// Both rating records survive the disconnect
	for _, id := range []model.PlayerID{alice, bob} {
		p, err := app.Registry.Get(s.ctx, id)
		s.Require().NoError(err)
		s.Equal(model.StatusConnected, p.Status)
	}
}

// Test: repeated duels keep moving ratings through the same records
func (s *IntegrationSuite) TestBackToBackDuels() {
	app := s.idleApp()

	alice := s.connect(app, "alice", "Alice")
	bob := s.connect(app, "bob", "Bob")

	var lastAliceRating int
	for round := 0; round < 2; round++ {
		s.Require().NoError(app.Orchestrator.HandleSearch(s.ctx, alice))
		s.Require().NoError(app.Orchestrator.HandleSearch(s.ctx, bob))

		game, err := app.Sessions.GetForPlayer(s.ctx, alice)
		s.Require().NoError(err)
		s.Require().NoError(app.Sessions.MarkPlaying(s.ctx, game.ID))

		score := 3
		_, err = app.Registry.Apply(s.ctx, alice, registry.Update{CurrentScore: &score})
		s.Require().NoError(err)

		_, err = app.Sessions.End(s.ctx, game.ID, model.EndReasonTimeUp)
		s.Require().NoError(err)

		p, err := app.Registry.Get(s.ctx, alice)
		s.Require().NoError(err)
		s.Greater(p.Rating, lastAliceRating)
		lastAliceRating = p.Rating
	}

	entries, err := app.Sessions.Leaderboard(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("Alice", entries[0].DisplayName)
}

func TestFactoryRejectsBadStorageConfig(t *testing.T) {
	cases := []Config{
		{StorageType: "redis"},    // missing RedisConfig
		{StorageType: "postgres"}, // unsupported backend
	}
	for _, cfg := range cases {
		if _, err := New(cfg); err == nil {
			t.Errorf("expected error for config %+v", cfg)
		}
	}
}

func TestFactoryDefaultsToMemoryStorage(t *testing.T) {
	app, err := New(Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.Storage == nil || app.Orchestrator == nil || app.Gateway == nil {
		t.Fatal("expected fully wired app")
	}
}
