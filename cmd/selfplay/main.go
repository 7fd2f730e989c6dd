package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"

	"xiangqi/internal/agent"
	"xiangqi/internal/xiangqi"
)

type PlayerConfig struct {
	Name  string
	Agent agent.Agent
}

func newPlayer(kind string, cfg agent.MCTSConfig, abDepth int, seed int64) PlayerConfig {
	a, err := agent.New(kind, cfg, seed)
	if err != nil {
		log.Fatalf("player %q: %v", kind, err)
	}
	name := "Random"
	switch m := a.(type) {
	case *agent.MCTS:
		c := m.Config()
		name = fmt.Sprintf("MCTS (%d Sims, depth %d)", c.Simulations, c.Depth)
	case *agent.AlphaBeta:
		c := m.Config()
		c.MaxDepth = abDepth
		a = agent.NewAlphaBeta(c)
		name = fmt.Sprintf("Alpha-Beta (Depth %d)", c.MaxDepth)
	}
	return PlayerConfig{Name: name, Agent: a}
}

func main() {
	totalGames := flag.Int("games", 10, "number of games to play")
	first := flag.String("a", "mcts", "first player: mcts, alphabeta or random")
	second := flag.String("b", "random", "second player: mcts, alphabeta or random")
	sims := flag.Int("mcts-sims", 2000, "MCTS simulation count")
	depth := flag.Int("mcts-depth", 20, "MCTS rollout depth")
	explore := flag.Float64("exploration", 5.0, "MCTS exploration constant")
	workers := flag.Int("workers", runtime.GOMAXPROCS(0), "MCTS worker goroutines")
	abDepth := flag.Int("ab-depth", 3, "Alpha-Beta search depth")
	maxPlies := flag.Int("max-plies", 400, "declare a draw after this many plies")
	seed := flag.Int64("seed", 1, "random seed")
	bench := flag.Bool("bench", false, "run the move generator / search benchmark instead")
	perftDepth := flag.Int("perft", 3, "perft depth for -bench")
	flag.Parse()

	if *bench {
		runBenchmark(*perftDepth, agent.MCTSConfig{Simulations: *sims, Depth: *depth, Exploration: *explore, Workers: *workers})
		return
	}

	cfg := agent.MCTSConfig{
		Simulations: *sims,
		Depth:       *depth,
		Exploration: *explore,
		Workers:     *workers,
		Seed:        *seed,
	}
	playerA := newPlayer(*first, cfg, *abDepth, *seed)
	playerB := newPlayer(*second, cfg, *abDepth, *seed+1)

	aWins, bWins, draws := 0, 0, 0
	for g := 0; g < *totalGames; g++ {
		red, black := playerA, playerB
		if g%2 == 1 {
			red, black = playerB, playerA
		}

		fmt.Printf("\n=== Game %d: Red [%s] vs Black [%s] ===\n", g+1, red.Name, black.Name)
		res := playGame(red.Agent, black.Agent, *maxPlies)

		aIsRed := g%2 == 0
		switch {
		case res.Winner == xiangqi.WinnerNone:
			draws++
			fmt.Printf("Result: Draw (%s) after %d plies\n", res.Reason, res.Plies)
		case (res.Winner == xiangqi.WinnerRed) == aIsRed:
			aWins++
			fmt.Printf("Result: %s Wins! (%d plies)\n", playerA.Name, res.Plies)
		default:
			bWins++
			fmt.Printf("Result: %s Wins! (%d plies)\n", playerB.Name, res.Plies)
		}
	}

	fmt.Printf("\n=== Final Score ===\n")
	fmt.Printf("A %s: %d\n", playerA.Name, aWins)
	fmt.Printf("B %s: %d\n", playerB.Name, bWins)
	fmt.Printf("Draws: %d\n", draws)
}
