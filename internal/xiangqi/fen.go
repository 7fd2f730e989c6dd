package xiangqi

import (
	"errors"
	"fmt"
	"strings"
)

// 简单 FEN-like：10 行用“/”隔开（第 0 行在前），空位用数字压缩；空格后 w/b 表示轮到红/黑
func EncodeFEN(b *Board, turn Player) string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for c := 0; c < Cols; c++ {
			pc := b[Pos(r, c)]
			if pc == Empty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteRune(pieceToChar(pc))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	sb.WriteByte(' ')
	if turn == Red {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	return sb.String()
}

var ErrInvalidFEN = errors.New("invalid FEN")

// StartingFEN 标准开局
var StartingFEN = EncodeFEN(&startingBoard, Red)

func DecodeFEN(fen string) (Board, Player, error) {
	var b Board
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return b, Red, ErrInvalidFEN
	}
	rows := strings.Split(parts[0], "/")
	if len(rows) != Rows {
		return b, Red, fmt.Errorf("%w: got %d rows", ErrInvalidFEN, len(rows))
	}
	for r, row := range rows {
		c := 0
		for _, ch := range row {
			if c >= Cols {
				return b, Red, fmt.Errorf("%w: row %d too long", ErrInvalidFEN, r)
			}
			if ch >= '1' && ch <= '9' {
				c += int(ch - '0')
				continue
			}
			pc, ok := charToPiece(ch)
			if !ok {
				return b, Red, fmt.Errorf("%w: unknown piece %q", ErrInvalidFEN, ch)
			}
			b[Pos(r, c)] = pc
			c++
		}
		if c != Cols {
			return b, Red, fmt.Errorf("%w: row %d has %d columns", ErrInvalidFEN, r, c)
		}
	}
	turn := Red
	if len(parts) > 1 {
		switch parts[1] {
		case "w", "r":
		case "b":
			turn = Black
		default:
			return b, Red, fmt.Errorf("%w: side %q", ErrInvalidFEN, parts[1])
		}
	}
	return b, turn, nil
}
