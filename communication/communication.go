package communication

import (
	"context"

	"cartographers/gamemaster"
)

// Communicator abstracts where games live: a local store or a remote game server.
type Communicator interface {
	GetGame(ctx context.Context, id string) (gamemaster.GameState, error)
	CreateGame(ctx context.Context, id string, state gamemaster.GameState) error
	PutGame(ctx context.Context, id string, state gamemaster.GameState) error
	// UpdatePlayerState merges one player's state into the game and returns the result.
	UpdatePlayerState(ctx context.Context, id string, ps gamemaster.PlayerGameState) (gamemaster.GameState, error)
	ListGames(ctx context.Context) ([]string, error)
}
