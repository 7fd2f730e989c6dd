package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"xiangqi/internal/agent"
	"xiangqi/internal/render"
	"xiangqi/internal/server/game"
	"xiangqi/internal/xiangqi"
)

// 单次 ai_move 的搜索上限
const (
	maxSimulations    = 200000
	maxRolloutDepth   = 200
	maxAlphaBetaDepth = 6
)

// Handler 实现 http.Handler，用于 /api/* 路由
type Handler struct {
	games *game.Manager
	mcts  agent.MCTSConfig
}

func NewHandler(games *game.Manager, mcts agent.MCTSConfig) *Handler {
	if games == nil {
		games = game.NewManager()
	}
	return &Handler{games: games, mcts: mcts}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/board.svg" {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.handleBoardSVG(w, r)
		return
	}

	var handle func(http.ResponseWriter, *http.Request)
	switch r.URL.Path {
	case "/api/new_game":
		handle = h.handleNewGame
	case "/api/state":
		handle = h.handleState
	case "/api/play":
		handle = h.handlePlay
	case "/api/undo":
		handle = h.handleUndo
	case "/api/ai_move":
		handle = h.handleAiMove
	case "/api/export":
		handle = h.handleExport
	case "/api/restore":
		handle = h.handleRestore
	default:
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	handle(w, r)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("writeJSON error:", err)
	}
}

// writeError 把领域错误映射到状态码
func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		code = http.StatusNotFound
	case errors.Is(err, game.ErrIllegalMove),
		errors.Is(err, game.ErrNothingToUndo),
		errors.Is(err, xiangqi.ErrInvalidFEN),
		errors.Is(err, agent.ErrUnknownAgent):
		code = http.StatusBadRequest
	case errors.Is(err, game.ErrGameOver):
		code = http.StatusConflict
	}
	if code == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
	}
	http.Error(w, err.Error(), code)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	// 空 body 等同于标准开局
	if r.ContentLength != 0 && !decode(w, r, &req) {
		return
	}
	var start *xiangqi.Board
	blackFirst := req.BlackFirst
	if req.FEN != "" {
		b, turn, err := xiangqi.DecodeFEN(req.FEN)
		if err != nil {
			writeError(w, err)
			return
		}
		start = &b
		blackFirst = blackFirst || turn == xiangqi.Black
	}
	st := h.games.NewGame(start, blackFirst)
	writeJSON(w, gameResponse(st.ID, st.Snapshot()))
}

func (h *Handler) lookup(w http.ResponseWriter, id string) (*game.GameState, bool) {
	st, err := h.games.Get(id)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return st, true
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !decode(w, r, &req) {
		return
	}
	st, ok := h.lookup(w, req.GameID)
	if !ok {
		return
	}
	writeJSON(w, gameResponse(st.ID, st.Snapshot()))
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if !decode(w, r, &req) {
		return
	}
	st, ok := h.lookup(w, req.GameID)
	if !ok {
		return
	}
	from, to, ok := dtoToPositions(req.Move)
	if !ok {
		writeError(w, game.ErrIllegalMove)
		return
	}
	snap, err := st.Play(from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, gameResponse(st.ID, snap))
}

func (h *Handler) handleUndo(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !decode(w, r, &req) {
		return
	}
	st, ok := h.lookup(w, req.GameID)
	if !ok {
		return
	}
	snap, err := st.Undo()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, gameResponse(st.ID, snap))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !decode(w, r, &req) {
		return
	}
	st, ok := h.lookup(w, req.GameID)
	if !ok {
		return
	}
	var resp ExportResponse
	st.View(func(g *xiangqi.Game) {
		start := g.StartingBoard()
		first := g.Turn()
		if g.MovesCount()%2 == 1 {
			first = first.Opponent()
		}
		resp = ExportResponse{
			GameID:   st.ID,
			StartFEN: xiangqi.EncodeFEN(&start, first),
			Moves:    g.ExportMoves(),
		}
	})
	writeJSON(w, resp)
}

func (h *Handler) handleRestore(w http.ResponseWriter, r *http.Request) {
	var req RestoreRequest
	if !decode(w, r, &req) {
		return
	}
	st, ok := h.lookup(w, req.GameID)
	if !ok {
		return
	}
	snap, err := st.Restore(req.Moves)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, gameResponse(st.ID, snap))
}

// searchConfig 请求里的参数覆盖默认配置，超过上限的截断
func (h *Handler) searchConfig(req AiMoveRequest) agent.MCTSConfig {
	cfg := h.mcts
	if req.Simulations > 0 {
		cfg.Simulations = min(req.Simulations, maxSimulations)
	}
	if req.Depth > 0 {
		cfg.Depth = min(req.Depth, maxRolloutDepth)
	}
	if req.Exploration > 0 {
		cfg.Exploration = req.Exploration
	}
	if req.TimeMs > 0 {
		cfg.TimeLimit = time.Duration(req.TimeMs) * time.Millisecond
	}
	return cfg
}

func (h *Handler) handleAiMove(w http.ResponseWriter, r *http.Request) {
	var req AiMoveRequest
	if !decode(w, r, &req) {
		return
	}
	st, ok := h.lookup(w, req.GameID)
	if !ok {
		return
	}
	// 复制一份局面再思考，不占着会话锁
	snap := st.Snapshot()

	a, err := agent.New(req.Agent, h.searchConfig(req), time.Now().UnixNano())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := AiMoveResponse{
		Position: xiangqi.EncodeFEN(&snap.Board, snap.Turn),
		ToMove:   sideToInt(snap.Turn),
		Status:   "ok",
	}
	start := time.Now()
	var best xiangqi.Movement
	switch m := a.(type) {
	case *agent.MCTS:
		res, err := m.Search(r.Context(), snap.Board, snap.Turn)
		if err != nil && !errors.Is(err, context.Canceled) {
			writeError(w, err)
			return
		}
		best = res.BestMove
		resp.WinProb = res.WinProb
		resp.Sims = res.Sims
		for i, ms := range res.Moves {
			if i == 5 {
				break
			}
			resp.Top = append(resp.Top, MoveStatDTO{Move: moveToDTO(ms.Move), Visits: ms.Visits, WinProb: ms.WinProb})
		}
	case *agent.AlphaBeta:
		cfg := m.Config()
		if req.Depth > 0 {
			cfg.MaxDepth = min(req.Depth, maxAlphaBetaDepth)
		}
		res, err := agent.NewAlphaBeta(cfg).Search(r.Context(), snap.Board, snap.Turn)
		if err != nil && !errors.Is(err, context.Canceled) {
			writeError(w, err)
			return
		}
		best = res.BestMove
		resp.Score = res.Score
		resp.Depth = res.Depth
		resp.Nodes = res.Nodes
	default:
		best = a.MakeMove(snap.Board, snap.Turn)
	}
	resp.TimeMs = time.Since(start).Milliseconds()

	if best == xiangqi.NoMovement {
		resp.BestMove = MoveDTO{From: -1, To: -1}
		resp.Status = "no_moves"
	} else {
		resp.BestMove = moveToDTO(best)
	}
	log.Printf("ai_move game=%s agent=%q best=%v sims=%d time=%dms", st.ID, req.Agent, best, resp.Sims, resp.TimeMs)
	writeJSON(w, resp)
}

// handleBoardSVG GET /api/board.svg?game_id=...&select=<0..89>
func (h *Handler) handleBoardSVG(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	st, ok := h.lookup(w, q.Get("game_id"))
	if !ok {
		return
	}
	snap := st.Snapshot()
	opt := render.Options{LastMove: xiangqi.NoMovement, Title: "xiangqi " + st.ID}
	if n := len(snap.History); n > 0 {
		opt.LastMove = snap.History[n-1].Movement()
	}
	if s := q.Get("select"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 || v >= xiangqi.BoardSize {
			http.Error(w, "bad select", http.StatusBadRequest)
			return
		}
		opt.Targets = xiangqi.PossibleMoves(&snap.Board, xiangqi.Position(v), true)
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	render.Board(w, &snap.Board, opt)
}
