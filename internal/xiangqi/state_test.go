package xiangqi

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeStartingBoardLayout(t *testing.T) {
	b := StartingBoard()
	got := EncodeBoardState(&b)
	want := BoardState{
		0x5554565357525851,
		0x59404636383A3C3E,
		0x0403050206010700,
		0x0813191B1D1F2123,
	}
	if got != want {
		t.Fatalf("state mismatch:\n got %016x\nwant %016x", got, want)
	}
}

func TestEncodeEmptyBoard(t *testing.T) {
	var b Board
	st := EncodeBoardState(&b)
	for i, w := range st {
		if w != ^uint64(0) {
			t.Fatalf("word %d = %016x, want all 0xFF", i, w)
		}
	}
	if DecodeBoardState(st) != b {
		t.Fatalf("empty board did not round trip")
	}
}

func TestStateRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 500; i++ {
		b := randomBoard(rng)
		got := DecodeBoardState(EncodeBoardState(&b))
		if diff := cmp.Diff(b, got); diff != "" {
			t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestInsertSortedIsOrderIndependent(t *testing.T) {
	group := []byte{absentSlot, absentSlot, absentSlot, absentSlot, absentSlot}
	for _, p := range []byte{50, 20, 40, 30, 10} {
		insertSorted(group, p)
	}
	if diff := cmp.Diff([]byte{10, 20, 30, 40, 50}, group); diff != "" {
		t.Fatalf("soldier group (-want +got):\n%s", diff)
	}

	b := boardWith(map[Position]Piece{
		Pos(9, 1): RHorse,
		Pos(1, 1): RHorse,
	})
	st := EncodeBoardState(b)
	if got := (st[0] >> 8) & 0xFFFF; got != 0x0A52 {
		t.Fatalf("horse slots = %04x, want 0a52", got)
	}
}

func TestEncodeOverBudgetKeepsSmallest(t *testing.T) {
	b := boardWith(map[Position]Piece{
		Pos(3, 0): RChariot,
		Pos(1, 0): RChariot,
		Pos(2, 0): RChariot,
	})
	got := DecodeBoardState(EncodeBoardState(b))
	want := *boardWith(map[Position]Piece{
		Pos(1, 0): RChariot,
		Pos(2, 0): RChariot,
	})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("over budget (-want +got):\n%s", diff)
	}
}

func TestDecodeIgnoresJunk(t *testing.T) {
	st := BoardState{
		0x55FFFFFFFFFFFFFF, // 只有红帅
		0xFF5AFFFFFFFFFFFF, // 90 越界
		0xFFFFFFFFFFFFFFFF,
		0xFFFFFFFFFFFFFFC8, // 200 越界
	}
	got := DecodeBoardState(st)
	want := *boardWith(map[Position]Piece{Pos(9, 4): RGeneral})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("decode junk (-want +got):\n%s", diff)
	}
}

func TestStateText(t *testing.T) {
	b := StartingBoard()
	st := EncodeBoardState(&b)
	raw, err := json.Marshal(st)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back BoardState
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != st {
		t.Fatalf("text round trip: got %v want %v", back, st)
	}
	if err := back.UnmarshalText([]byte("abc")); err == nil {
		t.Fatalf("expected error for malformed text")
	}
}
