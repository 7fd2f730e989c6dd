package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"xiangqi/internal/agent"
	"xiangqi/internal/xiangqi"
)

// perft 统计 depth 层的叶子数
func perft(b *xiangqi.Board, player xiangqi.Player, depth int) int64 {
	if depth == 0 {
		return 1
	}
	moves := xiangqi.AllPossibleNextMoves(b, player, true)
	if depth == 1 {
		return int64(len(moves))
	}
	var n int64
	for _, mv := range moves {
		next := *b
		if captured := xiangqi.ApplyMove(&next, mv); captured.Kind() == xiangqi.KindGeneral {
			n++
			continue
		}
		n += perft(&next, player.Opponent(), depth-1)
	}
	return n
}

func runBenchmark(depth int, cfg agent.MCTSConfig) {
	b := xiangqi.StartingBoard()
	for d := 1; d <= depth; d++ {
		start := time.Now()
		n := perft(&b, xiangqi.Red, d)
		dur := time.Since(start)
		fmt.Printf("perft(%d) = %d, Time: %v, NPS: %d\n", d, n, dur, int64(float64(n)/dur.Seconds()))
	}

	m := agent.NewMCTS(cfg)
	g := xiangqi.NewGame()
	for i := 0; i < 10 && !g.IsGameOver(); i++ {
		log.Printf("--- Move %d, Side: %v ---", i+1, g.Turn())
		res, err := m.Search(context.Background(), g.CurrentBoard(), g.Turn())
		if err != nil {
			log.Fatalf("search: %v", err)
		}
		fmt.Printf("BestMove: %v, WinProb: %.3f, Sims: %d, Time: %v, SPS: %d\n",
			res.BestMove, res.WinProb, res.Sims, res.TimeUsed, int64(float64(res.Sims)/res.TimeUsed.Seconds()))
		g.Move(res.BestMove.From(), res.BestMove.To())
	}
	log.Println("Benchmark finished.")
}
