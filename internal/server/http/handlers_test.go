package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"xiangqi/internal/agent"
	"xiangqi/internal/xiangqi"
)

func newTestServer() *Server {
	cfg := agent.MCTSConfig{Simulations: 100, Depth: 4, Workers: 2, Seed: 1}
	return NewServer(NewHandler(nil, cfg), "")
}

func post(t *testing.T, s http.Handler, path string, body any, out any) int {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code == http.StatusOK && out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("%s: decode response: %v\n%s", path, err, rec.Body.String())
		}
	}
	return rec.Code
}

func newGame(t *testing.T, s http.Handler, req NewGameRequest) GameResponse {
	t.Helper()
	var resp GameResponse
	if code := post(t, s, "/api/new_game", req, &resp); code != http.StatusOK {
		t.Fatalf("new_game: status %d", code)
	}
	return resp
}

func TestNewGameDefaults(t *testing.T) {
	s := newTestServer()
	resp := newGame(t, s, NewGameRequest{})
	if resp.GameID == "" || resp.Position != xiangqi.StartingFEN || resp.ToMove != 0 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if len(resp.LegalMoves) != 44 || resp.Status != "ongoing" || resp.LastMove != nil {
		t.Fatalf("legal=%d status=%q", len(resp.LegalMoves), resp.Status)
	}
	b := xiangqi.StartingBoard()
	if resp.State != xiangqi.EncodeBoardState(&b) {
		t.Fatalf("state = %v", resp.State)
	}
}

func TestNewGameFromFEN(t *testing.T) {
	s := newTestServer()
	resp := newGame(t, s, NewGameRequest{FEN: "3g5/R8/9/9/9/9/9/9/9/5G3 b"})
	if resp.ToMove != 1 || resp.Status != "ongoing" {
		t.Fatalf("fen game: %+v", resp)
	}
	if code := post(t, s, "/api/new_game", NewGameRequest{FEN: "bogus"}, nil); code != http.StatusBadRequest {
		t.Fatalf("bad fen: status %d", code)
	}
}

func TestPlayUndoRoundTrip(t *testing.T) {
	s := newTestServer()
	start := newGame(t, s, NewGameRequest{})

	var played GameResponse
	move := MoveDTO{From: int(xiangqi.Pos(7, 1)), To: int(xiangqi.Pos(7, 4))}
	if code := post(t, s, "/api/play", PlayRequest{GameID: start.GameID, Move: move}, &played); code != http.StatusOK {
		t.Fatalf("play: status %d", code)
	}
	if played.ToMove != 1 || played.MovesCount != 1 || played.LastMove == nil || played.LastMove.To != move.To {
		t.Fatalf("after play: %+v", played)
	}

	var undone GameResponse
	if code := post(t, s, "/api/undo", GameRequest{GameID: start.GameID}, &undone); code != http.StatusOK {
		t.Fatalf("undo: status %d", code)
	}
	if diff := cmp.Diff(start, undone); diff != "" {
		t.Fatalf("undo should restore the new game response (-want +got):\n%s", diff)
	}
	if code := post(t, s, "/api/undo", GameRequest{GameID: start.GameID}, nil); code != http.StatusBadRequest {
		t.Fatalf("undo without history: status %d", code)
	}
}

func TestPlayErrors(t *testing.T) {
	s := newTestServer()
	g := newGame(t, s, NewGameRequest{})
	cases := []struct {
		name string
		req  PlayRequest
		want int
	}{
		{"unknown game", PlayRequest{GameID: "nope", Move: MoveDTO{From: 64, To: 55}}, http.StatusNotFound},
		{"illegal", PlayRequest{GameID: g.GameID, Move: MoveDTO{From: 81, To: 46}}, http.StatusBadRequest},
		{"off board", PlayRequest{GameID: g.GameID, Move: MoveDTO{From: -1, To: 200}}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		if code := post(t, s, "/api/play", tc.req, nil); code != tc.want {
			t.Fatalf("%s: status %d want %d", tc.name, code, tc.want)
		}
	}

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/play", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET play: status %d", rec.Code)
	}
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/play", strings.NewReader("{")))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad json: status %d", rec.Code)
	}
}

func TestExportRestore(t *testing.T) {
	s := newTestServer()
	g := newGame(t, s, NewGameRequest{})
	var last GameResponse
	for _, m := range [][2]xiangqi.Position{
		{xiangqi.Pos(7, 1), xiangqi.Pos(7, 4)},
		{xiangqi.Pos(0, 1), xiangqi.Pos(2, 2)},
		{xiangqi.Pos(9, 1), xiangqi.Pos(7, 2)},
	} {
		req := PlayRequest{GameID: g.GameID, Move: MoveDTO{From: int(m[0]), To: int(m[1])}}
		if code := post(t, s, "/api/play", req, &last); code != http.StatusOK {
			t.Fatalf("play %v: status %d", m, code)
		}
	}

	var exp ExportResponse
	if code := post(t, s, "/api/export", GameRequest{GameID: g.GameID}, &exp); code != http.StatusOK {
		t.Fatalf("export: status %d", code)
	}
	if diff := cmp.Diff([]uint16{0x7174, 0x0122, 0x9172}, exp.Moves); diff != "" {
		t.Fatalf("exported moves (-want +got):\n%s", diff)
	}
	if exp.StartFEN != xiangqi.StartingFEN {
		t.Fatalf("start fen %q", exp.StartFEN)
	}

	other := newGame(t, s, NewGameRequest{})
	var restored GameResponse
	if code := post(t, s, "/api/restore", RestoreRequest{GameID: other.GameID, Moves: exp.Moves}, &restored); code != http.StatusOK {
		t.Fatalf("restore: status %d", code)
	}
	if restored.Position != last.Position || restored.State != last.State || restored.MovesCount != 3 {
		t.Fatalf("restored %+v\nwant %+v", restored, last)
	}
	bad := RestoreRequest{GameID: other.GameID, Moves: []uint16{0x3040, 0x9070}}
	if code := post(t, s, "/api/restore", bad, nil); code != http.StatusBadRequest {
		t.Fatalf("illegal restore: status %d", code)
	}
	var state GameResponse
	if code := post(t, s, "/api/state", GameRequest{GameID: other.GameID}, &state); code != http.StatusOK {
		t.Fatalf("state: status %d", code)
	}
	if state.MovesCount != 3 || state.Position != last.Position {
		t.Fatalf("rejected restore changed the game: %+v", state)
	}
}

func TestAiMoveThinksOnly(t *testing.T) {
	s := newTestServer()
	g := newGame(t, s, NewGameRequest{})
	for _, name := range []string{"mcts", "alphabeta", "random"} {
		var resp AiMoveResponse
		req := AiMoveRequest{GameID: g.GameID, Agent: name, Simulations: 60, Depth: 2}
		if code := post(t, s, "/api/ai_move", req, &resp); code != http.StatusOK {
			t.Fatalf("%s: status %d", name, code)
		}
		b := xiangqi.StartingBoard()
		mv := xiangqi.NewMovement(xiangqi.Position(resp.BestMove.From), xiangqi.Position(resp.BestMove.To))
		if resp.Status != "ok" || !xiangqi.IsLegalMove(&b, xiangqi.Red, mv) {
			t.Fatalf("%s: bad suggestion %+v", name, resp)
		}
		if name == "alphabeta" && resp.Depth != 2 {
			t.Fatalf("alphabeta searched depth %d, want 2", resp.Depth)
		}
	}

	var state GameResponse
	if code := post(t, s, "/api/state", GameRequest{GameID: g.GameID}, &state); code != http.StatusOK {
		t.Fatalf("state: status %d", code)
	}
	if state.MovesCount != 0 {
		t.Fatalf("ai_move must not play, moves=%d", state.MovesCount)
	}
	if code := post(t, s, "/api/ai_move", AiMoveRequest{GameID: g.GameID, Agent: "oracle"}, nil); code != http.StatusBadRequest {
		t.Fatalf("unknown agent: status %d", code)
	}
}

func TestAiMoveNoMoves(t *testing.T) {
	s := newTestServer()
	g := newGame(t, s, NewGameRequest{FEN: "3g4R/8R/9/9/9/9/9/9/9/5G3 b"})
	if g.Status != "red_wins" {
		t.Fatalf("status %q, want red_wins", g.Status)
	}
	var resp AiMoveResponse
	if code := post(t, s, "/api/ai_move", AiMoveRequest{GameID: g.GameID}, &resp); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if resp.Status != "no_moves" || resp.BestMove != (MoveDTO{From: -1, To: -1}) {
		t.Fatalf("got %+v", resp)
	}
	req := PlayRequest{GameID: g.GameID, Move: MoveDTO{From: 3, To: 4}}
	if code := post(t, s, "/api/play", req, nil); code != http.StatusConflict {
		t.Fatalf("play after mate: status %d", code)
	}
}

func TestBoardSVG(t *testing.T) {
	s := newTestServer()
	g := newGame(t, s, NewGameRequest{})

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/board.svg?game_id="+g.GameID+"&select=64", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Fatalf("content type %q", ct)
	}
	if body := rec.Body.String(); !strings.Contains(body, "<svg") || !strings.Contains(body, "帅") {
		t.Fatalf("not an svg board:\n%s", body)
	}

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/board.svg?game_id=missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing game: status %d", rec.Code)
	}
}

func TestIndexPage(t *testing.T) {
	s := newTestServer()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "/api/new_game") {
		t.Fatalf("index: %d %s", rec.Code, rec.Body.String())
	}
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nothing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown path: status %d", rec.Code)
	}
}

func TestSearchConfigCaps(t *testing.T) {
	h := NewHandler(nil, agent.MCTSConfig{Simulations: 100, Depth: 4, Workers: 2})
	cfg := h.searchConfig(AiMoveRequest{Simulations: 1 << 30, Depth: 1 << 20, TimeMs: 50})
	if cfg.Simulations != maxSimulations || cfg.Depth != maxRolloutDepth {
		t.Fatalf("caps not applied: %+v", cfg)
	}
	if cfg.TimeLimit != 50*time.Millisecond {
		t.Fatalf("time limit %v", cfg.TimeLimit)
	}
	// 不传参数时保留默认
	if cfg := h.searchConfig(AiMoveRequest{}); cfg.Simulations != 100 || cfg.Depth != 4 {
		t.Fatalf("defaults changed: %+v", cfg)
	}
}
