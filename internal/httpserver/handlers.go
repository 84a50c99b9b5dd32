package httpserver

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/lgbarn/checkers-go/internal/checkers"
	"github.com/lgbarn/checkers-go/internal/config"
	"github.com/lgbarn/checkers-go/internal/engine"
	"github.com/lgbarn/checkers-go/internal/errors"
	"github.com/lgbarn/checkers-go/internal/hashing"
	"github.com/lgbarn/checkers-go/internal/output"
	"github.com/lgbarn/checkers-go/internal/wire"
)

// newGameReq is the payload for POST /games. Every field is optional.
type newGameReq struct {
	BoardSize int    `json:"boardSize"`
	TurnLimit int    `json:"turnLimit"`
	Position  string `json:"position"`
	Seed      *int64 `json:"seed"`
}

// gameRes is returned by POST /games.
type gameRes struct {
	ID   string           `json:"id"`
	Game *output.JSONGame `json:"game"`
}

// actionsRes is returned by GET /games/{id}/actions.
type actionsRes struct {
	Turn    string         `json:"turn"`
	Actions []wire.Message `json:"actions"`
}

// turnRes is returned by the turn and CPU endpoints.
type turnRes struct {
	Applied wire.Message     `json:"applied"`
	Game    *output.JSONGame `json:"game"`
}

type errorRes struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("write response")
	}
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorRes{Error: code, Message: msg})
}

// writeEngineError maps engine and store errors onto HTTP statuses.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errors.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, errors.ErrGameOver):
		writeError(w, http.StatusConflict, "game_over", err.Error())
	case errors.Is(err, errors.ErrInvalidAction):
		writeError(w, http.StatusBadRequest, "invalid_action", err.Error())
	case errors.Is(err, errors.ErrProtocol):
		writeError(w, http.StatusBadRequest, "bad_message", err.Error())
	case errors.Is(err, errors.ErrInvalidConfig):
		writeError(w, http.StatusBadRequest, "invalid_config", err.Error())
	case errors.Is(err, errors.ErrInvalidPosition):
		writeError(w, http.StatusBadRequest, "invalid_position", err.Error())
	default:
		log.Error().Err(err).Msg("unexpected engine error")
		writeError(w, http.StatusInternalServerError, "internal", "")
	}
}

// handleNewGame creates a game from the starting layout or a position
// string.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}

	cfg := config.NewGameConfig()
	if req.BoardSize != 0 {
		cfg.BoardSize = req.BoardSize
	}
	cfg.TurnLimit = req.TurnLimit

	var (
		g   *engine.Game
		err error
	)
	if req.Position != "" {
		g, err = engine.ParsePosition(*cfg, req.Position)
	} else {
		g, err = engine.NewGame(*cfg)
	}
	if err != nil {
		writeEngineError(w, err)
		return
	}

	seed := s.seed()
	if req.Seed != nil {
		seed = *req.Seed
	}
	sess, err := s.store.Create(r.Context(), g, engine.NewRandomStrategy(seed))
	if err != nil {
		writeEngineError(w, err)
		return
	}

	log.Info().Str("game", sess.ID).Int("board_size", cfg.BoardSize).Msg("game created")
	writeJSON(w, http.StatusCreated, gameRes{ID: sess.ID, Game: output.GameToJSON(g)})
}

// session looks up the {id} URL parameter, writing a 404 when it is unknown.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeEngineError(w, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var res *output.JSONGame
	_ = sess.With(func(g *engine.Game, _ *engine.RandomStrategy) error {
		res = output.GameToJSON(g)
		return nil
	})
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleActions(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var res actionsRes
	_ = sess.With(func(g *engine.Game, _ *engine.RandomStrategy) error {
		res.Turn = colourName(g.Turn())
		res.Actions = make([]wire.Message, 0)
		for _, a := range g.LegalActions() {
			res.Actions = append(res.Actions, wire.FromTurnResult(a))
		}
		return nil
	})
	writeJSON(w, http.StatusOK, res)
}

// handleTurn resolves a client-supplied action for the side to move.
func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	msg, err := wire.NewDecoder(r.Body).Decode()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_message", err.Error())
		return
	}
	action, err := msg.TurnResult()
	if err != nil {
		writeEngineError(w, err)
		return
	}

	var res turnRes
	err = sess.With(func(g *engine.Game, _ *engine.RandomStrategy) error {
		mover := g.Turn()
		applied, err := g.ResolveTurn(action)
		if err != nil {
			return err
		}
		res = s.turnResponse(sess.ID, mover, g, applied)
		return nil
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleCPU lets the session's random agent play the side to move.
func (s *Server) handleCPU(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var res turnRes
	err := sess.With(func(g *engine.Game, cpu *engine.RandomStrategy) error {
		if g.IsOver() {
			return errors.Wrapf(errors.ErrGameOver, "game %s", sess.ID)
		}
		action, err := cpu.ChooseTurn(r.Context(), g)
		if err != nil {
			return err
		}
		mover := g.Turn()
		applied, err := g.ResolveTurn(action)
		if err != nil {
			return err
		}
		res = s.turnResponse(sess.ID, mover, g, applied)
		return nil
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// turnResponse builds the reply for a resolved turn. It must be called with
// the session lock held.
func (s *Server) turnResponse(id string, mover checkers.Colour, g *engine.Game, applied engine.TurnResult) turnRes {
	log.Info().
		Str("game", id).
		Str("colour", mover.String()).
		Int("turn", g.TurnCount()).
		Str("action", applied.String()).
		Msg("turn resolved")
	if g.IsOver() {
		log.Info().Str("game", id).Str("result", g.Outcome().String()).Msg("game over")
	}
	return turnRes{
		Applied: wire.FromTurnResult(applied).WithHash(hashing.GenerateZobristHash(g)),
		Game:    output.GameToJSON(g),
	}
}

func colourName(c checkers.Colour) string {
	if c == checkers.Red {
		return "red"
	}
	return "black"
}
