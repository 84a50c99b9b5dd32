package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbarn/checkers-go/internal/config"
	"github.com/lgbarn/checkers-go/internal/output"
	"github.com/lgbarn/checkers-go/internal/wire"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s := New(NewMemoryStore(), *config.NewServerConfig())
	s.seed = func() int64 { return 42 }
	return s
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// createGame posts body to /games and returns the new game's id.
func createGame(t *testing.T, s *Server, body string) string {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/games", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[gameRes](t, rec).ID
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestCreateGame(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/games", "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	res := decode[gameRes](t, rec)
	_, err := uuid.Parse(res.ID)
	assert.NoError(t, err, "id should be a uuid")
	assert.Equal(t, output.StatusBlackToMove, res.Game.Status)
	assert.Equal(t, 8, res.Game.BoardSize)
	assert.Len(t, res.Game.Pieces, 24)
	assert.Equal(t, 1, s.store.Len())
}

func TestCreateGame_Options(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/games", `{"boardSize":6,"turnLimit":10,"seed":3}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, decode[gameRes](t, rec).Game.Pieces, 12)

	rec = do(t, s, http.MethodPost, "/games", `{"position":"R:B9:R22"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	game := decode[gameRes](t, rec).Game
	assert.Equal(t, "R:B9:R22", game.Position)
	assert.Equal(t, output.StatusRedToMove, game.Status)
}

func TestCreateGame_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"bad json", `{"boardSize":`, "bad_json"},
		{"odd board", `{"boardSize":7}`, "invalid_config"},
		{"oversized board", `{"boardSize":66}`, "invalid_config"},
		{"huge board", `{"boardSize":4294967296}`, "invalid_config"},
		{"negative turn limit", `{"turnLimit":-1}`, "invalid_config"},
		{"bad position", `{"position":"B:B9"}`, "invalid_position"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newTestServer(t), http.MethodPost, "/games", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantCode, decode[errorRes](t, rec).Error)
		})
	}
}

func TestGetGame(t *testing.T) {
	s := newTestServer(t)
	id := createGame(t, s, "")

	rec := do(t, s, http.MethodGet, "/games/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	game := decode[output.JSONGame](t, rec)
	assert.Equal(t, "black", game.Turn)
	assert.Len(t, game.Hash, 16)

	rec = do(t, s, http.MethodGet, "/games/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decode[errorRes](t, rec).Error)
}

func TestActions(t *testing.T) {
	s := newTestServer(t)
	id := createGame(t, s, "")

	rec := do(t, s, http.MethodGet, "/games/"+id+"/actions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[actionsRes](t, rec)
	assert.Equal(t, "black", res.Turn)
	require.Len(t, res.Actions, 7)

	var moves []string
	for _, m := range res.Actions {
		a, err := m.TurnResult()
		require.NoError(t, err)
		moves = append(moves, a.String())
	}
	assert.ElementsMatch(t, []string{"8-12", "9-12", "9-13", "10-13", "10-14", "11-14", "11-15"}, moves)
}

func TestActions_ForcedCapture(t *testing.T) {
	s := newTestServer(t)
	id := createGame(t, s, `{"position":"B:B9:R13"}`)

	res := decode[actionsRes](t, do(t, s, http.MethodGet, "/games/"+id+"/actions", ""))
	require.Len(t, res.Actions, 1)
	assert.Equal(t, wire.TypeChain, res.Actions[0].Type)
	assert.Equal(t, []wire.Jump{{Captured: 13, Landing: 18}}, res.Actions[0].Jumps)
}

func TestTurn(t *testing.T) {
	s := newTestServer(t)
	id := createGame(t, s, "")

	rec := do(t, s, http.MethodPost, "/games/"+id+"/turns", `{"type":"move","from":9,"to":13}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decode[turnRes](t, rec)
	assert.Equal(t, wire.TypeMove, res.Applied.Type)
	assert.Equal(t, res.Game.Hash, res.Applied.Hash)
	assert.Equal(t, "red", res.Game.Turn)
	assert.Equal(t, 1, res.Game.Turns)
}

func TestTurn_Errors(t *testing.T) {
	s := newTestServer(t)
	id := createGame(t, s, `{"position":"B:B9:R13"}`)
	path := "/games/" + id + "/turns"

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"empty body", "", http.StatusBadRequest, "bad_message"},
		{"garbage", "not json", http.StatusBadRequest, "bad_message"},
		{"unknown type", `{"type":"resign"}`, http.StatusBadRequest, "bad_message"},
		{"capture available", `{"type":"move","from":9,"to":12}`, http.StatusBadRequest, "invalid_action"},
		{"not our piece", `{"type":"move","from":13,"to":9}`, http.StatusBadRequest, "invalid_action"},
		{"loss while playable", `{"type":"loss"}`, http.StatusBadRequest, "invalid_action"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantCode, decode[errorRes](t, rec).Error)
		})
	}

	// The rejected attempts left the game untouched.
	game := decode[output.JSONGame](t, do(t, s, http.MethodGet, "/games/"+id, ""))
	assert.Equal(t, "B:B9:R13", game.Position)

	rec := do(t, s, http.MethodPost, "/games/"+uuid.NewString()+"/turns", `{"type":"loss"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTurn_GameOver(t *testing.T) {
	s := newTestServer(t)
	id := createGame(t, s, `{"position":"B:B9:R13"}`)
	path := "/games/" + id

	rec := do(t, s, http.MethodPost, path+"/turns", `{"type":"chain","from":9,"jumps":[{"captured":13,"landing":18}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	game := decode[turnRes](t, rec).Game
	assert.Equal(t, output.StatusOver, game.Status)
	assert.Equal(t, "black", game.Winner)

	rec = do(t, s, http.MethodPost, path+"/turns", `{"type":"move","from":18,"to":22}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodPost, path+"/cpu", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "game_over", decode[errorRes](t, rec).Error)

	// Red, with nothing left, may still concede.
	rec = do(t, s, http.MethodPost, path+"/turns", `{"type":"loss"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	res := decode[actionsRes](t, do(t, s, http.MethodGet, path+"/actions", ""))
	assert.Empty(t, res.Actions)
}

func TestCPU(t *testing.T) {
	s := newTestServer(t)
	id := createGame(t, s, `{"seed":5}`)

	for turn := 1; turn <= 4; turn++ {
		rec := do(t, s, http.MethodPost, "/games/"+id+"/cpu", "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		res := decode[turnRes](t, rec)
		assert.Equal(t, turn, res.Game.Turns)
		assert.NotEqual(t, wire.TypeLoss, res.Applied.Type)
	}
}

func TestCPU_ConcurrentRequests(t *testing.T) {
	s := newTestServer(t)
	id := createGame(t, s, `{"turnLimit":1000}`)

	const requests = 20
	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/games/"+id+"/cpu", nil)
			rec := httptest.NewRecorder()
			s.Router().ServeHTTP(rec, req)
			if rec.Code == http.StatusOK {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	game := decode[output.JSONGame](t, do(t, s, http.MethodGet, "/games/"+id, ""))
	assert.Equal(t, ok, game.Turns, "every accepted request is exactly one turn")
	if game.Status != output.StatusOver {
		assert.Equal(t, requests, ok)
	}
}

func TestNotFoundRoute(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decode[errorRes](t, rec).Error)
}
