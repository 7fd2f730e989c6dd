package xiangqi

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStartingBoardMoveCount(t *testing.T) {
	b := StartingBoard()
	for _, player := range []Player{Red, Black} {
		if got := len(AllPossibleNextMoves(&b, player, true)); got != 44 {
			t.Fatalf("%v opening moves: got %d want 44", player, got)
		}
	}
	if got := len(AllPossibleNextBoards(&b, Red, true)); got != 44 {
		t.Fatalf("opening boards: got %d want 44", got)
	}
}

func TestPossibleMovesSortedAndFixed(t *testing.T) {
	b := StartingBoard()
	from := Pos(7, 1)
	got := PossibleMoves(&b, from, true)
	if !slices.IsSorted(got) {
		t.Fatalf("moves not sorted: %v", got)
	}
	fixed := PossibleMovesFixed(&b, from, true)
	for i, p := range fixed {
		if i < len(got) {
			if p != got[i] {
				t.Fatalf("fixed[%d]=%v want %v", i, p, got[i])
			}
		} else if p != NoPosition {
			t.Fatalf("fixed[%d]=%v want sentinel", i, p)
		}
	}
	if got := PossibleMoves(&b, Pos(5, 5), true); got != nil {
		t.Fatalf("empty origin should yield nil, got %v", got)
	}
}

func TestAvoidCheckFiltersPinnedPiece(t *testing.T) {
	// 红车挡在将前，被黑车牵制，只能沿着这条线走
	b := boardWith(map[Position]Piece{
		Pos(9, 4): RGeneral,
		Pos(7, 4): RChariot,
		Pos(2, 4): BChariot,
		Pos(0, 3): BGeneral,
	})
	got := PossibleMoves(b, Pos(7, 4), true)
	want := positions([2]int{8, 4}, [2]int{6, 4}, [2]int{5, 4}, [2]int{4, 4}, [2]int{3, 4}, [2]int{2, 4})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("pinned chariot (-want +got):\n%s", diff)
	}
}

func TestCapturingGeneralBypassesSelfCheck(t *testing.T) {
	b := boardWith(map[Position]Piece{
		Pos(9, 4): RGeneral,
		Pos(9, 0): BChariot, // 正在将红帅
		Pos(0, 0): RChariot,
		Pos(0, 3): BGeneral,
	})
	got := PossibleMoves(b, Pos(0, 0), true)
	want := []Position{Pos(0, 3), Pos(9, 0)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("chariot moves under check (-want +got):\n%s", diff)
	}
	if !IsLegalMove(b, Red, NewMovement(Pos(0, 0), Pos(0, 3))) {
		t.Fatalf("capturing the general must be legal")
	}
	if IsLegalMove(b, Black, NewMovement(Pos(0, 0), Pos(0, 3))) {
		t.Fatalf("moving an enemy piece must not be legal")
	}
}

func TestAvoidCheckProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		b := randomBoard(rng)
		for _, player := range []Player{Red, Black} {
			for _, m := range AllPossibleNextMoves(&b, player, true) {
				next := b
				captured := ApplyMove(&next, m)
				if captured.Kind() == KindGeneral {
					continue
				}
				if IsInCheck(&next, player) {
					t.Fatalf("move %v leaves %v in check\n%s", m, player, b)
				}
			}
		}
	}
}

func TestApplyMoveNoop(t *testing.T) {
	b := StartingBoard()
	before := b
	if got := ApplyMove(&b, NewMovement(Pos(5, 5), Pos(4, 5))); got != Empty {
		t.Fatalf("empty origin captured %v", got)
	}
	if got := ApplyMove(&b, NewMovement(Pos(9, 0), Pos(9, 0))); got != Empty {
		t.Fatalf("same square captured %v", got)
	}
	if b != before {
		t.Fatalf("no-op move changed the board")
	}
	if got := ApplyMove(&b, NewMovement(Pos(7, 1), Pos(0, 1))); got != BHorse {
		t.Fatalf("cannon capture: got %v want %v", got, BHorse)
	}
}

func TestCheckmateAndWinner(t *testing.T) {
	b := boardWith(map[Position]Piece{
		Pos(0, 3): BGeneral,
		Pos(0, 8): RChariot,
		Pos(1, 8): RChariot,
		Pos(9, 4): RGeneral,
	})
	if !DidPlayerLose(b, Black) {
		t.Fatalf("black should be mated\n%s", b)
	}
	if DidPlayerLose(b, Red) {
		t.Fatalf("red has moves")
	}
	if w := GetWinner(b); w != WinnerNone {
		t.Fatalf("both generals present, got winner %v", w)
	}

	b[Pos(0, 3)] = Empty
	if w := GetWinner(b); w != WinnerRed {
		t.Fatalf("black general gone: got %v want red", w)
	}
	if !DidPlayerLose(b, Black) {
		t.Fatalf("missing general should lose")
	}
}
