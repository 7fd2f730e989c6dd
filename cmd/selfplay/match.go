package main

import (
	"log"

	"xiangqi/internal/agent"
	"xiangqi/internal/xiangqi"
)

type MatchResult struct {
	Winner xiangqi.Winner
	Plies  int
	Reason string
	Moves  []uint16
}

// 同一局面、同一走子方出现三次判和
type repetitionKey struct {
	state xiangqi.BoardState
	turn  xiangqi.Player
}

func playGame(red, black agent.Agent, maxPlies int) MatchResult {
	g := xiangqi.NewGame()
	seen := make(map[repetitionKey]int)

	for g.MovesCount() < maxPlies {
		b := g.CurrentBoard()
		if w := g.GetWinner(); w != xiangqi.WinnerNone {
			return MatchResult{Winner: w, Plies: g.MovesCount(), Reason: "no moves", Moves: g.ExportMoves()}
		}

		key := repetitionKey{state: xiangqi.EncodeBoardState(&b), turn: g.Turn()}
		seen[key]++
		if seen[key] >= 3 {
			return MatchResult{Plies: g.MovesCount(), Reason: "repetition", Moves: g.ExportMoves()}
		}

		a := red
		if g.Turn() == xiangqi.Black {
			a = black
		}
		mv := a.MakeMove(b, g.Turn())
		if !xiangqi.IsLegalMove(&b, g.Turn(), mv) {
			// agent 出错按负处理
			log.Printf("illegal move %v from %v", mv, g.Turn())
			return MatchResult{Winner: xiangqi.WinnerOf(g.Turn().Opponent()), Plies: g.MovesCount(), Reason: "illegal move", Moves: g.ExportMoves()}
		}
		g.Move(mv.From(), mv.To())

		if g.IsGameOver() {
			reason := "checkmate"
			if b2 := g.CurrentBoard(); xiangqi.GetWinner(&b2) != xiangqi.WinnerNone {
				reason = "general captured"
			}
			return MatchResult{Winner: g.GetWinner(), Plies: g.MovesCount(), Reason: reason, Moves: g.ExportMoves()}
		}
	}
	return MatchResult{Plies: g.MovesCount(), Reason: "move limit", Moves: g.ExportMoves()}
}
