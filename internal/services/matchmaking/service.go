package matchmaking

import (
	"log/slog"

	"github.com/mathduel/mathduel/internal/model"
)

// MaxRatingGap is the maximum rating difference allowed between opponents
const MaxRatingGap = 100

// Service pairs searching players. It is an admission filter, not an
// optimizing matcher: the first eligible candidate in pool order wins,
// which keeps matching deterministic.
type Service struct {
	logger *slog.Logger
}

// New creates a new matchmaking service
func New(logger *slog.Logger) *Service {
	return &Service{
		logger: logger.With(slog.String("component", "matchmaking")),
	}
}

// FindOpponent scans the candidate pool for the first player who is also
// searching and within MaxRatingGap of the given player. Returns nil when
// no eligible candidate exists; the caller must leave the player in the
// Searching state in that case.
func (s *Service) FindOpponent(player *model.Player, candidates []*model.Player) *model.Player {
	if player.Status != model.StatusSearching {
		return nil
	}

	for _, candidate := range candidates {
		if candidate.ID == player.ID {
			continue
		}
		if candidate.Status != model.StatusSearching {
			continue
		}
		gap := candidate.Rating - player.Rating
		if gap < 0 {
			gap = -gap
		}
		if gap >= MaxRatingGap {
			continue
		}

		s.logger.Info("opponent found",
			slog.String("player_id", string(player.ID)),
			slog.String("opponent_id", string(candidate.ID)),
			slog.Int("rating_gap", gap),
		)
		return candidate
	}

	return nil
}
