package communication

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"cartographers/gamemaster"
	"cartographers/storage"
)

// StoreCommunicator keeps games as JSON documents in a storage.Store.
type StoreCommunicator struct {
	store storage.Store
	mutex sync.Mutex // serializes read-modify-write merges
}

func NewStoreCommunicator(store storage.Store) *StoreCommunicator {
	return &StoreCommunicator{store: store}
}

func (sc *StoreCommunicator) GetGame(ctx context.Context, id string) (gamemaster.GameState, error) {
	data, err := sc.store.Get(ctx, id)
	if err != nil {
		return gamemaster.GameState{}, err
	}
	var state gamemaster.GameState
	if err := json.Unmarshal(data, &state); err != nil {
		return gamemaster.GameState{}, fmt.Errorf("failed to decode game %s: %w", id, err)
	}
	return state, nil
}

func (sc *StoreCommunicator) CreateGame(ctx context.Context, id string, state gamemaster.GameState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode game %s: %w", id, err)
	}
	return sc.store.Create(ctx, id, data)
}

func (sc *StoreCommunicator) PutGame(ctx context.Context, id string, state gamemaster.GameState) error {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()

	return sc.put(ctx, id, state)
}

func (sc *StoreCommunicator) put(ctx context.Context, id string, state gamemaster.GameState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode game %s: %w", id, err)
	}
	return sc.store.Put(ctx, id, data)
}

// UpdatePlayerState is a read-modify-write without version checks. Writers in other
// processes sharing the store can still overwrite each other.
func (sc *StoreCommunicator) UpdatePlayerState(ctx context.Context, id string, ps gamemaster.PlayerGameState) (gamemaster.GameState, error) {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()

	state, err := sc.GetGame(ctx, id)
	if err != nil {
		return gamemaster.GameState{}, err
	}
	state = gamemaster.UpdatePlayerState(state, ps)
	if err := sc.put(ctx, id, state); err != nil {
		return gamemaster.GameState{}, err
	}
	return state, nil
}

func (sc *StoreCommunicator) ListGames(ctx context.Context) ([]string, error) {
	return sc.store.List(ctx)
}
