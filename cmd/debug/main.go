package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"xiangqi/internal/render"
	"xiangqi/internal/xiangqi"
)

func main() {
	fen := flag.String("fen", xiangqi.StartingFEN, "position to inspect")
	svgPath := flag.String("svg", "", "write the board as SVG to this file")
	flag.Parse()

	b, turn, err := xiangqi.DecodeFEN(*fen)
	if err != nil {
		log.Fatalf("bad fen: %v", err)
	}

	fmt.Print(b.String())
	fmt.Println("FEN:", xiangqi.EncodeFEN(&b, turn))
	fmt.Println("State:", xiangqi.EncodeBoardState(&b))
	fmt.Printf("%v to move, in check: %v\n", turn, xiangqi.IsInCheck(&b, turn))
	moves := xiangqi.AllPossibleNextMoves(&b, turn, true)
	fmt.Println("Legal moves:", len(moves))
	fmt.Println("Pseudo legal moves:", len(xiangqi.AllPossibleNextMoves(&b, turn, false)))
	if w := xiangqi.GetWinner(&b); w != xiangqi.WinnerNone {
		fmt.Println("Winner:", w)
	} else if xiangqi.DidPlayerLose(&b, turn) {
		fmt.Println("Winner:", turn.Opponent())
	}

	if *svgPath != "" {
		f, err := os.Create(*svgPath)
		if err != nil {
			log.Fatalf("create %s: %v", *svgPath, err)
		}
		render.Board(f, &b, render.Options{LastMove: xiangqi.NoMovement, Title: *fen})
		if err := f.Close(); err != nil {
			log.Fatalf("close %s: %v", *svgPath, err)
		}
		log.Printf("wrote %s", *svgPath)
	}
}
