package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"slices"

	"xiangqi/internal/xiangqi"
)

// TestCase 一个局面及其走法，给其他实现对拍用
type TestCase struct {
	FEN     string             `json:"fen"`
	State   xiangqi.BoardState `json:"state"`
	Turn    int                `json:"turn"` // 0=红, 1=黑
	InCheck bool               `json:"in_check"`
	// 合法走法，nibble 格式，升序
	Legal []uint16 `json:"legal"`
	// 某个有子可走的格子，以及它的 [90] 落点掩码
	From int    `json:"from"`
	Mask []int8 `json:"mask"`
}

func main() {
	numGames := flag.Int("games", 10, "random games to sample")
	maxPlies := flag.Int("max-plies", 300, "stop a game after this many plies")
	seed := flag.Int64("seed", 1, "random seed")
	out := flag.String("out", "move_gen_test_data.json", "output file")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	var testCases []TestCase

	for g := 0; g < *numGames; g++ {
		game := xiangqi.NewGame()
		for ply := 0; ply < *maxPlies && !game.IsGameOver(); ply++ {
			b := game.CurrentBoard()
			turn := game.Turn()
			legal := xiangqi.AllPossibleNextMoves(&b, turn, true)

			tc := TestCase{
				FEN:     xiangqi.EncodeFEN(&b, turn),
				State:   xiangqi.EncodeBoardState(&b),
				Turn:    int(turn),
				InCheck: xiangqi.IsInCheck(&b, turn),
				Legal:   make([]uint16, len(legal)),
				Mask:    make([]int8, xiangqi.BoardSize),
			}
			for i, mv := range legal {
				tc.Legal[i] = mv.Nibbles()
			}
			slices.Sort(tc.Legal)

			// 随机选一步，顺便记下这个棋子的落点掩码
			chosen := legal[rng.Intn(len(legal))]
			tc.From = int(chosen.From())
			for to, ok := range game.PossibleMoves(chosen.From()) {
				if ok {
					tc.Mask[to] = 1
				}
			}
			testCases = append(testCases, tc)

			game.Move(chosen.From(), chosen.To())
		}
	}

	file, err := json.MarshalIndent(testCases, "", "  ")
	if err != nil {
		log.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(*out, file, 0o644); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}
	fmt.Printf("Generated %d test cases from %d random games to %s\n", len(testCases), *numGames, *out)
}
