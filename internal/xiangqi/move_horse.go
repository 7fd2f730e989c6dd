package xiangqi

// 马 8 种“日”字：终点 + 马腿
var horseLegMoves = [8]struct {
	Dr, Dc int // 终点
	Lr, Lc int // 马腿
}{
	{-2, -1, -1, 0},
	{-2, +1, -1, 0},
	{-1, -2, 0, -1},
	{-1, +2, 0, +1},
	{+1, -2, 0, -1},
	{+1, +2, 0, +1},
	{+2, -1, +1, 0},
	{+2, +1, +1, 0},
}

func HorseMoves(b *Board, from Position, moves *[]Position) {
	pc := b[from]
	if pc == Empty {
		return
	}
	player := pc.Player()
	row, col := Row(from), Col(from)
	for _, m := range horseLegMoves {
		r, c := row+m.Dr, col+m.Dc
		if !onBoard(r, c) {
			continue
		}
		if b[Pos(row+m.Lr, col+m.Lc)] != Empty {
			continue // 憋马腿
		}
		to := Pos(r, c)
		if canLand(b, to, player) {
			*moves = append(*moves, to)
		}
	}
}

// threatensByHorse 马在 from 能否踩到 target（不看 target 上是什么子）
func threatensByHorse(b *Board, from, target Position) bool {
	row, col := Row(from), Col(from)
	dr, dc := Row(target)-row, Col(target)-col
	for _, m := range horseLegMoves {
		if m.Dr != dr || m.Dc != dc {
			continue
		}
		return b[Pos(row+m.Lr, col+m.Lc)] == Empty
	}
	return false
}
