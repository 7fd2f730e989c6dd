package xiangqi

import (
	"errors"
	"fmt"
	"strings"
)

const (
	Rows      = 10
	Cols      = 9
	BoardSize = Rows * Cols
)

// Position 棋盘格子下标 row*Cols+col
type Position uint8

const NoPosition Position = 0xFF

func Pos(row, col int) Position { return Position(row*Cols + col) }
func Row(p Position) int        { return int(p) / Cols }
func Col(p Position) int        { return int(p) % Cols }

func (p Position) Valid() bool { return p < BoardSize }

func (p Position) String() string {
	if !p.Valid() {
		return "--"
	}
	return fmt.Sprintf("%c%d", 'A'+Col(p), Row(p))
}

func onBoard(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

// 九宫按颜色区分，不看将帅当前站在哪
func inPalace(player Player, row, col int) bool {
	if col < 3 || col > 5 {
		return false
	}
	if player == Red {
		return row >= 7 && row <= 9
	}
	return row >= 0 && row <= 2
}

// 兵前进方向：红向上(-1)，黑向下(+1)
func soldierDir(player Player) int {
	if player == Red {
		return -1
	}
	return +1
}

// CrossedRiver 红方在下（7..9 行），黑方在上（0..2 行）；河界在 4、5 行之间
func CrossedRiver(player Player, row int) bool {
	if player == Red {
		return row < 5
	}
	return row >= 5
}

// Board 值类型，复制即克隆
type Board [BoardSize]Piece

func (b *Board) Clear() { *b = Board{} }

func (b *Board) At(row, col int) Piece { return b[Pos(row, col)] }

// FindGeneral 找不到返回 NoPosition。先搜本方九宫，再搜对方九宫，最后全盘（自定义摆法）。
func (b *Board) FindGeneral(player Player) Position {
	general := MakePiece(player, KindGeneral)
	palaces := [2][2]int{{7, 9}, {0, 2}}
	if player == Black {
		palaces[0], palaces[1] = palaces[1], palaces[0]
	}
	for _, rows := range palaces {
		for r := rows[0]; r <= rows[1]; r++ {
			for c := 3; c <= 5; c++ {
				if b[Pos(r, c)] == general {
					return Pos(r, c)
				}
			}
		}
	}
	for p := Position(0); p < BoardSize; p++ {
		if b[p] == general {
			return p
		}
	}
	return NoPosition
}

// 开局摆法，只读
var startingBoard = func() Board {
	var b Board
	back := [Cols]Kind{
		KindChariot, KindHorse, KindElephant, KindAdvisor, KindGeneral,
		KindAdvisor, KindElephant, KindHorse, KindChariot,
	}
	for c, k := range back {
		b[Pos(0, c)] = MakePiece(Black, k)
		b[Pos(9, c)] = MakePiece(Red, k)
	}
	for _, c := range []int{1, 7} {
		b[Pos(2, c)] = BCannon
		b[Pos(7, c)] = RCannon
	}
	for c := 0; c < Cols; c += 2 {
		b[Pos(3, c)] = BSoldier
		b[Pos(6, c)] = RSoldier
	}
	return b
}()

func StartingBoard() Board { return startingBoard }

var pieceLetters = map[Kind]rune{
	KindGeneral:  'G',
	KindAdvisor:  'A',
	KindElephant: 'E',
	KindHorse:    'H',
	KindChariot:  'R',
	KindCannon:   'C',
	KindSoldier:  'S',
}

func pieceToChar(p Piece) rune {
	ch, ok := pieceLetters[p.Kind()]
	if p == Empty || !ok {
		return '.'
	}
	if p.IsBlack() {
		return ch + ('a' - 'A')
	}
	return ch
}

func charToPiece(ch rune) (Piece, bool) {
	player := Red
	if ch >= 'a' && ch <= 'z' {
		player = Black
		ch -= 'a' - 'A'
	}
	for k, v := range pieceLetters {
		if v == ch {
			return MakePiece(player, k), true
		}
	}
	return Empty, false
}

// 空格的显示：河界 '-'，九宫 '*'，其余 '.'
func emptyChar(row, col int) byte {
	switch {
	case row == 4 || row == 5:
		return '-'
	case col >= 3 && col <= 5 && (row <= 2 || row >= 7):
		return '*'
	default:
		return '.'
	}
}

// String 调试用的文本棋盘
func (b Board) String() string {
	var sb strings.Builder
	sb.Grow((Rows + 1) * (2*Cols + 3))
	sb.WriteString("  A B C D E F G H I \n")
	for r := 0; r < Rows; r++ {
		sb.WriteByte(byte('0' + r))
		sb.WriteByte(' ')
		for c := 0; c < Cols; c++ {
			pc := b[Pos(r, c)]
			if pc == Empty {
				sb.WriteByte(emptyChar(r, c))
			} else {
				sb.WriteRune(pieceToChar(pc))
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

var ErrInvalidBoardString = errors.New("invalid board string")

// BoardFromString 解析 Board.String() 的输出；表头可有可无
func BoardFromString(s string) (Board, error) {
	var b Board
	var rows []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "A ") {
			continue
		}
		rows = append(rows, line)
	}
	if len(rows) != Rows {
		return b, fmt.Errorf("%w: got %d rows", ErrInvalidBoardString, len(rows))
	}
	for r, line := range rows {
		fields := strings.Fields(line)
		if len(fields) == Cols+1 {
			fields = fields[1:] // 行号
		}
		if len(fields) != Cols {
			return b, fmt.Errorf("%w: row %d has %d cells", ErrInvalidBoardString, r, len(fields))
		}
		for c, f := range fields {
			ch := rune(f[0])
			if len(f) != 1 {
				return b, fmt.Errorf("%w: cell %q", ErrInvalidBoardString, f)
			}
			if ch == '.' || ch == '*' || ch == '-' {
				continue
			}
			pc, ok := charToPiece(ch)
			if !ok {
				return b, fmt.Errorf("%w: unknown piece %q", ErrInvalidBoardString, ch)
			}
			b[Pos(r, c)] = pc
		}
	}
	return b, nil
}
