package xiangqi

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
)

// BoardState 32 个棋子槽位，每槽一个字节（位置或 0xFF 表示不在）。
// 每方 16 字节：将1、仕2、相2、马2、车2、炮2、兵5；红方在前两个字，黑方在后两个字，
// 字内高字节在前。同类棋子按位置升序排，所以同类棋子互换位置结果不变。
type BoardState [4]uint64

const absentSlot = 0xFF

// 每类棋子在 16 字节里的起始槽位和槽数
var stateSlots = [KindSoldier + 1]struct{ Start, Count int }{
	KindGeneral:  {0, 1},
	KindAdvisor:  {1, 2},
	KindElephant: {3, 2},
	KindHorse:    {5, 2},
	KindChariot:  {7, 2},
	KindCannon:   {9, 2},
	KindSoldier:  {11, 5},
}

const slotsPerPlayer = 16

// insertSorted 把 pos 插入已升序的 group，超出部分丢掉最大的
func insertSorted(group []byte, pos byte) {
	for i := range group {
		if pos < group[i] {
			copy(group[i+1:], group[i:len(group)-1])
			group[i] = pos
			return
		}
	}
}

// EncodeBoardState 超出槽数的同类棋子只保留位置最小的几个
func EncodeBoardState(b *Board) BoardState {
	var slots [2][slotsPerPlayer]byte
	for i := range slots {
		for j := range slots[i] {
			slots[i][j] = absentSlot
		}
	}
	for p := Position(0); p < BoardSize; p++ {
		pc := b[p]
		if pc == Empty {
			continue
		}
		k := pc.Kind()
		if k < KindGeneral || k > KindSoldier {
			continue
		}
		s := stateSlots[k]
		insertSorted(slots[pc.Player()][s.Start:s.Start+s.Count], byte(p))
	}

	var st BoardState
	for player := range slots {
		st[2*player] = binary.BigEndian.Uint64(slots[player][:8])
		st[2*player+1] = binary.BigEndian.Uint64(slots[player][8:])
	}
	return st
}

// DecodeBoardState 不会失败：0xFF 和越界字节都当作空
func DecodeBoardState(st BoardState) Board {
	var b Board
	for _, player := range [2]Player{Red, Black} {
		var slots [slotsPerPlayer]byte
		binary.BigEndian.PutUint64(slots[:8], st[2*int(player)])
		binary.BigEndian.PutUint64(slots[8:], st[2*int(player)+1])
		for k := KindGeneral; k <= KindSoldier; k++ {
			s := stateSlots[k]
			for _, pos := range slots[s.Start : s.Start+s.Count] {
				if pos == absentSlot || pos >= BoardSize {
					continue
				}
				b[pos] = MakePiece(player, k)
			}
		}
	}
	return b
}

func (s BoardState) Bytes() []byte {
	out := make([]byte, 32)
	for i, w := range s {
		binary.BigEndian.PutUint64(out[8*i:], w)
	}
	return out
}

func (s BoardState) String() string {
	return hex.EncodeToString(s.Bytes())
}

var ErrInvalidBoardState = errors.New("invalid board state")

func (s BoardState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *BoardState) UnmarshalText(text []byte) error {
	raw, err := hex.DecodeString(string(text))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBoardState, err)
	}
	if len(raw) != 32 {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidBoardState, len(raw))
	}
	for i := range s {
		s[i] = binary.BigEndian.Uint64(raw[8*i:])
	}
	return nil
}
