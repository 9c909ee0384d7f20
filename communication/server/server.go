package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"cartographers/communication"
	"cartographers/game"
	"cartographers/gamemaster"
	"cartographers/metrics"
	"cartographers/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// NewGameRequest creates a game. A zero seed is replaced by a random one.
type NewGameRequest struct {
	Seed   uint64            `json:"seed"`
	Player gamemaster.Player `json:"player"`
}

type NewGameResponse struct {
	ID    string               `json:"id"`
	State gamemaster.GameState `json:"state"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Server struct {
	comm      communication.Communicator
	master    *gamemaster.GameMaster
	collector metrics.Collector
	mux       *http.ServeMux
}

// NewServer serves the games of comm. Moves go through a game master so they are validated.
func NewServer(comm communication.Communicator, collector metrics.Collector) *Server {
	if collector == nil {
		collector = metrics.NewDummyCollector()
	}
	s := &Server{
		comm:      comm,
		master:    gamemaster.NewGameMaster(comm, collector),
		collector: collector,
		mux:       http.NewServeMux(),
	}

	s.handle("GET /api/games", s.handleListGames)
	s.handle("POST /api/games", s.handleNewGame)
	s.handle("GET /api/game/{id}", s.handleGetGame)
	s.handle("PUT /api/game/{id}", s.handleCreateGame)
	s.handle("POST /api/game/{id}", s.handlePutGame)
	s.handle("PATCH /api/game/{id}", s.handlePatchGame)
	s.handle("GET /api/game/{id}/state", s.handleCurrentState)
	s.handle("POST /api/game/{id}/players", s.handleJoin)
	s.handle("POST /api/game/{id}/moves", s.handleSubmitMove)
	s.handle("POST /api/game/{id}/preview", s.handlePreview)
	s.handle("POST /api/game/{id}/season", s.handleEndSeason)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Start listens on addr until the listener fails.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Info().Str("addr", addr).Msg("game server listening")
	return srv.ListenAndServe()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) handle(pattern string, handler http.HandlerFunc) {
	s.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		handler(rec, r)
		s.collector.AddRequest(r.Context(), pattern, rec.status)
		log.Debug().Str("route", pattern).Str("path", r.URL.Path).Int("status", rec.status).Msg("request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, storage.ErrGameNotFound), errors.Is(err, gamemaster.ErrPlayerNotFound):
		status = http.StatusNotFound
	case errors.Is(err, storage.ErrGameExists), errors.Is(err, gamemaster.ErrPlayerExists),
		errors.Is(err, gamemaster.ErrPlacementConflict), errors.Is(err, gamemaster.ErrNoCardToPlace),
		errors.Is(err, gamemaster.ErrSeasonNotOver), errors.Is(err, gamemaster.ErrGameOver):
		status = http.StatusConflict
	case errors.Is(err, errBadRequest), errors.Is(err, gamemaster.ErrInvalidMove):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

var errBadRequest = errors.New("bad request")

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Join(errBadRequest, err)
	}
	return nil
}

func playerParam(r *http.Request) (string, error) {
	id := r.URL.Query().Get("player")
	if id == "" {
		return "", errors.Join(errBadRequest, errors.New("missing player query parameter"))
	}
	return id, nil
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	ids, err := s.comm.ListGames(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Player.ID == "" {
		writeError(w, errors.Join(errBadRequest, errors.New("missing player id")))
		return
	}
	if req.Seed == 0 {
		req.Seed = rand.Uint64()
	}

	id := uuid.New().String()
	state := gamemaster.NewGame(req.Seed, req.Player)
	if err := s.comm.CreateGame(r.Context(), id, state); err != nil {
		writeError(w, err)
		return
	}
	log.Info().Str("game", id).Uint64("seed", req.Seed).Msg("game created")
	writeJSON(w, http.StatusCreated, NewGameResponse{ID: id, State: state})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	state, err := s.comm.GetGame(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// handleCreateGame stores a game under a caller-chosen id, failing if the id is taken.
func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var state gamemaster.GameState
	if err := decode(r, &state); err != nil {
		writeError(w, err)
		return
	}
	if err := s.comm.CreateGame(r.Context(), r.PathValue("id"), state); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

func (s *Server) handlePutGame(w http.ResponseWriter, r *http.Request) {
	var state gamemaster.GameState
	if err := decode(r, &state); err != nil {
		writeError(w, err)
		return
	}
	if err := s.comm.PutGame(r.Context(), r.PathValue("id"), state); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handlePatchGame(w http.ResponseWriter, r *http.Request) {
	var ps gamemaster.PlayerGameState
	if err := decode(r, &ps); err != nil {
		writeError(w, err)
		return
	}
	if ps.Player.ID == "" {
		writeError(w, errors.Join(errBadRequest, errors.New("missing player id")))
		return
	}
	state, err := s.comm.UpdatePlayerState(r.Context(), r.PathValue("id"), ps)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleCurrentState(w http.ResponseWriter, r *http.Request) {
	current, err := s.master.CurrentState(r.Context(), r.PathValue("id"), r.URL.Query().Get("player"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, current)
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	var player gamemaster.Player
	if err := decode(r, &player); err != nil {
		writeError(w, err)
		return
	}
	if player.ID == "" {
		player.ID = uuid.New().String()
	}
	if err := s.master.Join(r.Context(), r.PathValue("id"), player); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, player)
}

func (s *Server) handleSubmitMove(w http.ResponseWriter, r *http.Request) {
	s.playerAction(w, r, func(gameID, playerID string) error {
		var move game.Move
		if err := decode(r, &move); err != nil {
			return err
		}
		return s.master.SubmitMove(r.Context(), gameID, playerID, move)
	})
}

func (s *Server) handleEndSeason(w http.ResponseWriter, r *http.Request) {
	s.playerAction(w, r, func(gameID, playerID string) error {
		return s.master.EndSeason(r.Context(), gameID, playerID)
	})
}

// playerAction runs action for the player query parameter and responds with the player's new state.
func (s *Server) playerAction(w http.ResponseWriter, r *http.Request, action func(gameID, playerID string) error) {
	gameID := r.PathValue("id")
	playerID, err := playerParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := action(gameID, playerID); err != nil {
		writeError(w, err)
		return
	}
	current, err := s.master.CurrentPlayerState(r.Context(), gameID, playerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, current)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	playerID, err := playerParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var move game.Move
	if err := decode(r, &move); err != nil {
		writeError(w, err)
		return
	}
	temp, err := s.master.Preview(r.Context(), r.PathValue("id"), playerID, move)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, temp)
}
