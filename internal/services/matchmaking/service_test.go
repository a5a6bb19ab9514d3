package matchmaking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mathduel/mathduel/internal/model"
	"github.com/mathduel/mathduel/internal/testutil"
)

func player(id string, rating int, status model.PlayerStatus) *model.Player {
	return &model.Player{
		ID:          model.PlayerID(id),
		DisplayName: id,
		Rating:      rating,
		Status:      status,
	}
}

func TestFindOpponentWithinRatingGap(t *testing.T) {
	s := New(testutil.NopLogger())

	me := player("me", 1000, model.StatusSearching)
	pool := []*model.Player{
		me,
		player("far", 1300, model.StatusSearching),
		player("close", 1050, model.StatusSearching),
	}

	opponent := s.FindOpponent(me, pool)

	assert.NotNil(t, opponent)
	assert.Equal(t, model.PlayerID("close"), opponent.ID)
}

func TestFindOpponentReturnsFirstEligibleNotClosest(t *testing.T) {
	s := New(testutil.NopLogger())

	me := player("me", 1000, model.StatusSearching)
	pool := []*model.Player{
		player("first", 1099, model.StatusSearching),
		player("closer", 1001, model.StatusSearching),
		me,
	}

	opponent := s.FindOpponent(me, pool)

	assert.NotNil(t, opponent)
	assert.Equal(t, model.PlayerID("first"), opponent.ID)
}

func TestFindOpponentExcludesSelf(t *testing.T) {
	s := New(testutil.NopLogger())

	me := player("me", 1000, model.StatusSearching)

	assert.Nil(t, s.FindOpponent(me, []*model.Player{me}))
}

func TestFindOpponentIgnoresNonSearchingPlayers(t *testing.T) {
	s := New(testutil.NopLogger())

	me := player("me", 1000, model.StatusSearching)
	pool := []*model.Player{
		me,
		player("idle", 1000, model.StatusConnected),
		player("busy", 1000, model.StatusPlaying),
		player("queued", 1000, model.StatusWaiting),
	}

	assert.Nil(t, s.FindOpponent(me, pool))
}

func TestFindOpponentRatingGapIsExclusive(t *testing.T) {
	s := New(testutil.NopLogger())

	me := player("me", 1000, model.StatusSearching)
	exactGap := player("edge", 1100, model.StatusSearching)

	assert.Nil(t, s.FindOpponent(me, []*model.Player{me, exactGap}))

	justInside := player("inside", 1099, model.StatusSearching)
	opponent := s.FindOpponent(me, []*model.Player{me, justInside})
	assert.NotNil(t, opponent)
	assert.Equal(t, model.PlayerID("inside"), opponent.ID)
}

func TestFindOpponentRequiresSearchingStatus(t *testing.T) {
	s := New(testutil.NopLogger())

	me := player("me", 1000, model.StatusConnected)
	pool := []*model.Player{me, player("other", 1000, model.StatusSearching)}

	assert.Nil(t, s.FindOpponent(me, pool))
}
