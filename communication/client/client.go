package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cartographers/game"
	"cartographers/gamemaster"
	"cartographers/storage"
)

// Client talks to a game server. It implements communication.Communicator and the
// player actions of the game master.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Errors the server reports by message. They are matched back so callers can use errors.Is.
var knownErrors = []error{
	storage.ErrGameNotFound,
	storage.ErrGameExists,
	gamemaster.ErrPlayerNotFound,
	gamemaster.ErrPlayerExists,
	gamemaster.ErrInvalidMove,
	gamemaster.ErrPlacementConflict,
	gamemaster.ErrNoCardToPlace,
	gamemaster.ErrSeasonNotOver,
	gamemaster.ErrGameOver,
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *Client) gameURL(id string, parts ...string) string {
	return c.baseURL + "/api/game/" + url.PathEscape(id) + strings.Join(parts, "")
}

func playerQuery(playerID string) string {
	return "?player=" + url.QueryEscape(playerID)
}

func (c *Client) do(ctx context.Context, method, target string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return responseError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func responseError(resp *http.Response) error {
	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}
	for _, known := range knownErrors {
		if strings.Contains(body.Error, known.Error()) {
			return fmt.Errorf("%w: %s", known, body.Error)
		}
	}
	return fmt.Errorf("server returned status %d: %s", resp.StatusCode, body.Error)
}

func (c *Client) GetGame(ctx context.Context, id string) (gamemaster.GameState, error) {
	var state gamemaster.GameState
	err := c.do(ctx, http.MethodGet, c.gameURL(id), nil, &state)
	return state, err
}

func (c *Client) CreateGame(ctx context.Context, id string, state gamemaster.GameState) error {
	return c.do(ctx, http.MethodPut, c.gameURL(id), state, nil)
}

func (c *Client) PutGame(ctx context.Context, id string, state gamemaster.GameState) error {
	return c.do(ctx, http.MethodPost, c.gameURL(id), state, nil)
}

func (c *Client) UpdatePlayerState(ctx context.Context, id string, ps gamemaster.PlayerGameState) (gamemaster.GameState, error) {
	var state gamemaster.GameState
	err := c.do(ctx, http.MethodPatch, c.gameURL(id), ps, &state)
	return state, err
}

func (c *Client) ListGames(ctx context.Context) ([]string, error) {
	var ids []string
	err := c.do(ctx, http.MethodGet, c.baseURL+"/api/games", nil, &ids)
	return ids, err
}

// NewGame asks the server to deal a game for player. A zero seed lets the server pick one.
func (c *Client) NewGame(ctx context.Context, seed uint64, player gamemaster.Player) (string, gamemaster.GameState, error) {
	var created struct {
		ID    string               `json:"id"`
		State gamemaster.GameState `json:"state"`
	}
	req := struct {
		Seed   uint64            `json:"seed"`
		Player gamemaster.Player `json:"player"`
	}{seed, player}
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/api/games", req, &created); err != nil {
		return "", gamemaster.GameState{}, err
	}
	return created.ID, created.State, nil
}

func (c *Client) Join(ctx context.Context, gameID string, player gamemaster.Player) error {
	return c.do(ctx, http.MethodPost, c.gameURL(gameID, "/players"), player, nil)
}

// CurrentState fetches the game as seen by viewerID.
func (c *Client) CurrentState(ctx context.Context, gameID, viewerID string) (gamemaster.CurrentGameState, error) {
	var current gamemaster.CurrentGameState
	err := c.do(ctx, http.MethodGet, c.gameURL(gameID, "/state", playerQuery(viewerID)), nil, &current)
	return current, err
}

func (c *Client) Preview(ctx context.Context, gameID, playerID string, move game.Move) (gamemaster.TempPlayerGameState, error) {
	var temp gamemaster.TempPlayerGameState
	err := c.do(ctx, http.MethodPost, c.gameURL(gameID, "/preview", playerQuery(playerID)), move, &temp)
	return temp, err
}

func (c *Client) SubmitMove(ctx context.Context, gameID, playerID string, move game.Move) error {
	return c.do(ctx, http.MethodPost, c.gameURL(gameID, "/moves", playerQuery(playerID)), move, nil)
}

func (c *Client) EndSeason(ctx context.Context, gameID, playerID string) error {
	return c.do(ctx, http.MethodPost, c.gameURL(gameID, "/season", playerQuery(playerID)), nil, nil)
}
