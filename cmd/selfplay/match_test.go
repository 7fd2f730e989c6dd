package main

import (
	"testing"

	"xiangqi/internal/agent"
	"xiangqi/internal/xiangqi"
)

func TestPerftOpening(t *testing.T) {
	b := xiangqi.StartingBoard()
	// 标准开局 perft：44, 1920
	for depth, want := range []int64{1, 44, 1920} {
		if got := perft(&b, xiangqi.Red, depth); got != want {
			t.Fatalf("perft(%d) = %d, want %d", depth, got, want)
		}
	}
}

func TestPlayGameReplays(t *testing.T) {
	res := playGame(agent.NewRandom(1), agent.NewRandom(2), 60)
	if res.Plies != len(res.Moves) || res.Plies == 0 {
		t.Fatalf("plies %d, moves %d", res.Plies, len(res.Moves))
	}
	g := xiangqi.NewGame()
	g.RestoreMoves(res.Moves)
	if g.MovesCount() != res.Plies {
		t.Fatalf("replayed %d plies, want %d", g.MovesCount(), res.Plies)
	}
	if res.Winner != xiangqi.WinnerNone && g.GetWinner() != res.Winner {
		t.Fatalf("replayed winner %v, want %v", g.GetWinner(), res.Winner)
	}
}
