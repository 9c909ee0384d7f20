package engine

import (
	"context"

	"cartographers/game"
	"cartographers/gamemaster"
)

// Table is where a simulated game is played: a local game master or a remote game server.
type Table interface {
	GetGame(ctx context.Context, gameID string) (gamemaster.GameState, error)
	SubmitMove(ctx context.Context, gameID, playerID string, move game.Move) error
	EndSeason(ctx context.Context, gameID, playerID string) error
}
