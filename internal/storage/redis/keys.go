package redis

import (
	"fmt"

	"github.com/mathduel/mathduel/internal/model"
)

// Key prefix for all duel-related data
const keyPrefix = "mathduel"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// playerOrderKey returns the Redis key for the registration-order list.
// Matchmaking scans players in this order, so it must stay deterministic.
func playerOrderKey() string {
	return fmt.Sprintf("%s:players", keyPrefix)
}

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// gameOrderKey returns the Redis key for the live-game order list
func gameOrderKey() string {
	return fmt.Sprintf("%s:games", keyPrefix)
}

// playerGameKey returns the Redis key for the player -> live game index
func playerGameKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player_game:%s", keyPrefix, id)
}
