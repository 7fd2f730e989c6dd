package httpserver

import (
	"xiangqi/internal/server/game"
	"xiangqi/internal/xiangqi"
)

// 前端用的招法结构，from/to 是 0..89 的格子下标
type MoveDTO struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func moveToDTO(m xiangqi.Movement) MoveDTO {
	return MoveDTO{From: int(m.From()), To: int(m.To())}
}

func movesToDTO(ms []xiangqi.Movement) []MoveDTO {
	out := make([]MoveDTO, len(ms))
	for i, m := range ms {
		out[i] = moveToDTO(m)
	}
	return out
}

// 越界返回 false，不 panic
func dtoToPositions(m MoveDTO) (xiangqi.Position, xiangqi.Position, bool) {
	if m.From < 0 || m.From >= xiangqi.BoardSize || m.To < 0 || m.To >= xiangqi.BoardSize {
		return xiangqi.NoPosition, xiangqi.NoPosition, false
	}
	return xiangqi.Position(m.From), xiangqi.Position(m.To), true
}

func sideToInt(p xiangqi.Player) int {
	if p == xiangqi.Black {
		return 1
	}
	return 0
}

type HistoryDTO struct {
	Piece    int `json:"piece"`
	From     int `json:"from"`
	To       int `json:"to"`
	Captured int `json:"captured"`
}

// NewGame 请求；fen 为空时用标准开局
type NewGameRequest struct {
	FEN        string `json:"fen"`
	BlackFirst bool   `json:"black_first"`
}

// 只带 game_id 的请求：state / undo / export
type GameRequest struct {
	GameID string `json:"game_id"`
}

type PlayRequest struct {
	GameID string  `json:"game_id"`
	Move   MoveDTO `json:"move"`
}

type RestoreRequest struct {
	GameID string   `json:"game_id"`
	Moves  []uint16 `json:"moves"`
}

// AiMoveRequest 只思考不落子
type AiMoveRequest struct {
	GameID      string  `json:"game_id"`
	Agent       string  `json:"agent"` // "mcts"（默认）、"alphabeta" 或 "random"
	Simulations int     `json:"simulations"`
	Depth       int     `json:"depth"`
	Exploration float64 `json:"exploration"`
	TimeMs      int64   `json:"time_ms"`
}

// GameResponse new_game / state / play / undo / restore 共用
type GameResponse struct {
	GameID     string             `json:"game_id"`
	Position   string             `json:"position"` // FEN
	ToMove     int                `json:"to_move"`  // 0=红, 1=黑
	LegalMoves []MoveDTO          `json:"legal_moves"`
	Status     string             `json:"status"` // ongoing / check / red_wins / black_wins
	State      xiangqi.BoardState `json:"state"`
	MovesCount int                `json:"moves_count"`
	LastMove   *HistoryDTO        `json:"last_move,omitempty"`
}

type ExportResponse struct {
	GameID   string   `json:"game_id"`
	StartFEN string   `json:"start_fen"`
	Moves    []uint16 `json:"moves"`
}

type MoveStatDTO struct {
	Move    MoveDTO `json:"move"`
	Visits  int     `json:"visits"`
	WinProb float64 `json:"win_prob"`
}

type AiMoveResponse struct {
	BestMove MoveDTO       `json:"best_move"`
	WinProb  float64       `json:"win_prob"`        // 走子方胜率
	Sims     int           `json:"sims"`            // mcts
	Score    int           `json:"score,omitempty"` // alphabeta，红方视角
	Depth    int           `json:"depth,omitempty"` // alphabeta
	Nodes    int64         `json:"nodes,omitempty"` // alphabeta
	TimeMs   int64         `json:"time_ms"`
	Status   string        `json:"status"` // ok / no_moves
	Position string        `json:"position"`
	ToMove   int           `json:"to_move"`
	Top      []MoveStatDTO `json:"top,omitempty"`
}

func statusOf(s game.Snapshot) string {
	switch s.Winner {
	case xiangqi.WinnerRed:
		return "red_wins"
	case xiangqi.WinnerBlack:
		return "black_wins"
	}
	if s.Check {
		return "check"
	}
	return "ongoing"
}

func gameResponse(id string, s game.Snapshot) GameResponse {
	resp := GameResponse{
		GameID:     id,
		Position:   xiangqi.EncodeFEN(&s.Board, s.Turn),
		ToMove:     sideToInt(s.Turn),
		LegalMoves: movesToDTO(s.Moves),
		Status:     statusOf(s),
		State:      xiangqi.EncodeBoardState(&s.Board),
		MovesCount: s.MovesCount,
	}
	if n := len(s.History); n > 0 {
		a := s.History[n-1]
		resp.LastMove = &HistoryDTO{
			Piece:    int(a.Piece),
			From:     int(a.From),
			To:       int(a.To),
			Captured: int(a.Captured),
		}
	}
	return resp
}
