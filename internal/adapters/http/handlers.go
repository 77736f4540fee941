// Package httpadapter exposes game sessions over a JSON API. The
// engine itself stays single-threaded per game: the only lock here
// guards the session table, never a game's internals.
package httpadapter

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"svw.info/sudoku-game/internal/domain"
	"svw.info/sudoku-game/internal/usecase"
)

type Handler struct {
	UC *usecase.Service

	mu    sync.Mutex
	games map[string]*usecase.Game
}

func New(uc *usecase.Service) *Handler {
	return &Handler{UC: uc, games: map[string]*usecase.Game{}}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/new", h.handleNew)
	mux.HandleFunc("/api/daily", h.handleDaily)
	mux.HandleFunc("/api/move", h.handleMove)
	mux.HandleFunc("/api/note", h.handleNote)
	mux.HandleFunc("/api/erase", h.handleErase)
	mux.HandleFunc("/api/undo", h.handleUndo)
	mux.HandleFunc("/api/redo", h.handleRedo)
	mux.HandleFunc("/api/hint", h.handleHint)
	mux.HandleFunc("/api/check", h.handleCheck)
	mux.HandleFunc("/api/save", h.handleSave)
	mux.HandleFunc("/api/load", h.handleLoad)
	mux.HandleFunc("/api/saves", h.handleSaves)
	mux.HandleFunc("/api/puzzles", h.handlePuzzles)
	mux.HandleFunc("/api/stats", h.handleStats)
}

func (h *Handler) game(id string) (*usecase.Game, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	g, ok := h.games[id]
	return g, ok
}

func (h *Handler) track(g *usecase.Game) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.games[g.ID] = g
}

// snapshot is the full UI-facing view of one game.
type snapshot struct {
	GameID     string               `json:"gameId"`
	PuzzleID   string               `json:"puzzleId,omitempty"`
	Difficulty string               `json:"difficulty"`
	Board      [9][9]uint8          `json:"board"`
	Fixed      [9][9]bool           `json:"fixed"`
	Notes      [9][9]domain.NoteSet `json:"notes"`
	Complete   bool                 `json:"complete"`
	Won        bool                 `json:"won"`
	CanUndo    bool                 `json:"canUndo"`
	CanRedo    bool                 `json:"canRedo"`
	HintsUsed  int                  `json:"hintsUsed"`
	ElapsedSec int64                `json:"elapsedSec"`
}

func snap(g *usecase.Game) snapshot {
	s := snapshot{
		GameID:     g.ID,
		PuzzleID:   g.PuzzleID,
		Difficulty: g.Difficulty.String(),
		Board:      g.Grid().Current(),
		Complete:   g.IsComplete(),
		Won:        g.IsWon(),
		CanUndo:    g.CanUndo(),
		CanRedo:    g.CanRedo(),
		HintsUsed:  g.HintsUsed(),
		ElapsedSec: int64(g.Elapsed() / time.Second),
	}
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			s.Fixed[r][c] = g.Grid().IsFixed(r, c)
			if n, err := g.Grid().Notes(r, c); err == nil {
				s.Notes[r][c] = n
			}
		}
	}
	return s
}

type errResp struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errResp{Error: err.Error()})
}

func decodePost(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errResp{Error: "method not allowed"})
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && err.Error() != "EOF" {
		writeJSON(w, http.StatusBadRequest, errResp{Error: "invalid JSON: " + err.Error()})
		return false
	}
	return true
}

// ---- New / Daily ----

type newReq struct {
	Difficulty string `json:"difficulty,omitempty"`
	Seed       int64  `json:"seed,omitempty"`
}

func (h *Handler) handleNew(w http.ResponseWriter, r *http.Request) {
	var req newReq
	if !decodePost(w, r, &req) {
		return
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g, err := h.UC.StartGame(r.Context(), domain.ParseDifficulty(req.Difficulty), seed)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	h.track(g)
	writeJSON(w, http.StatusOK, snap(g))
}

func (h *Handler) handleDaily(w http.ResponseWriter, r *http.Request) {
	var req struct{}
	if !decodePost(w, r, &req) {
		return
	}
	g, err := h.UC.StartDaily(r.Context(), time.Now())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	h.track(g)
	writeJSON(w, http.StatusOK, snap(g))
}

// ---- Edits ----

type cellReq struct {
	GameID string `json:"gameId"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Value  uint8  `json:"value,omitempty"`
	Note   uint8  `json:"note,omitempty"`
}

func (h *Handler) withGame(w http.ResponseWriter, r *http.Request, req *cellReq, fn func(g *usecase.Game) error) {
	if !decodePost(w, r, req) {
		return
	}
	g, ok := h.game(req.GameID)
	if !ok {
		writeJSON(w, http.StatusNotFound, errResp{Error: "unknown game id"})
		return
	}
	if err := fn(g); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, snap(g))
}

func (h *Handler) handleMove(w http.ResponseWriter, r *http.Request) {
	var req cellReq
	h.withGame(w, r, &req, func(g *usecase.Game) error {
		if err := g.SetValue(req.Row, req.Col, req.Value); err != nil {
			return err
		}
		if g.IsWon() {
			h.UC.RecordWin(r.Context(), g)
		}
		return nil
	})
}

func (h *Handler) handleNote(w http.ResponseWriter, r *http.Request) {
	var req cellReq
	h.withGame(w, r, &req, func(g *usecase.Game) error {
		return g.ToggleNote(req.Row, req.Col, req.Note)
	})
}

func (h *Handler) handleErase(w http.ResponseWriter, r *http.Request) {
	var req cellReq
	h.withGame(w, r, &req, func(g *usecase.Game) error {
		return g.ClearCell(req.Row, req.Col)
	})
}

func (h *Handler) handleUndo(w http.ResponseWriter, r *http.Request) {
	var req cellReq
	h.withGame(w, r, &req, func(g *usecase.Game) error {
		_, _, err := g.Undo()
		return err
	})
}

func (h *Handler) handleRedo(w http.ResponseWriter, r *http.Request) {
	var req cellReq
	h.withGame(w, r, &req, func(g *usecase.Game) error {
		_, _, err := g.Redo()
		return err
	})
}

// ---- Hint ----

type hintResp struct {
	Hint  domain.Hint `json:"hint"`
	State snapshot    `json:"state"`
}

func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	var req cellReq
	if !decodePost(w, r, &req) {
		return
	}
	g, ok := h.game(req.GameID)
	if !ok {
		writeJSON(w, http.StatusNotFound, errResp{Error: "unknown game id"})
		return
	}
	hh, err := g.Hint()
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	if g.IsWon() {
		h.UC.RecordWin(r.Context(), g)
	}
	writeJSON(w, http.StatusOK, hintResp{Hint: hh, State: snap(g)})
}

// ---- Check ----

type checkResp struct {
	OK        bool               `json:"ok"`
	Conflicts []domain.CellCoord `json:"conflicts,omitempty"`
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req cellReq
	if !decodePost(w, r, &req) {
		return
	}
	g, ok := h.game(req.GameID)
	if !ok {
		writeJSON(w, http.StatusNotFound, errResp{Error: "unknown game id"})
		return
	}
	okAll, conflicts, err := h.UC.Check(r.Context(), g)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, checkResp{OK: okAll, Conflicts: conflicts})
}

// ---- Save / Load / Lists / Stats ----

type saveResp struct {
	ID string `json:"id"`
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	var req cellReq
	if !decodePost(w, r, &req) {
		return
	}
	g, ok := h.game(req.GameID)
	if !ok {
		writeJSON(w, http.StatusNotFound, errResp{Error: "unknown game id"})
		return
	}
	sg, err := h.UC.SaveGame(r.Context(), g)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, saveResp{ID: sg.ID})
}

type loadReq struct {
	ID string `json:"id"`
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req loadReq
	if !decodePost(w, r, &req) {
		return
	}
	if req.ID == "" {
		writeJSON(w, http.StatusBadRequest, errResp{Error: "missing id"})
		return
	}
	g, err := h.UC.LoadGame(r.Context(), req.ID)
	if err != nil {
		writeErr(w, http.StatusNotFound, err)
		return
	}
	h.track(g)
	writeJSON(w, http.StatusOK, snap(g))
}

func (h *Handler) handleSaves(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errResp{Error: "method not allowed"})
		return
	}
	saves, err := h.UC.ListGames(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"saves": saves})
}

func (h *Handler) handlePuzzles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errResp{Error: "method not allowed"})
		return
	}
	puzzles, err := h.UC.ListPuzzles(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"puzzles": puzzles})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errResp{Error: "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, h.UC.Stats())
}
