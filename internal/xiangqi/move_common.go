package xiangqi

var (
	rookDirs   = [4][2]int{{-1, 0}, {+1, 0}, {0, -1}, {0, +1}}
	bishopDirs = [4][2]int{{-1, -1}, {-1, +1}, {+1, -1}, {+1, +1}}
)

// 目标格可落子：空格或敌子
func canLand(b *Board, to Position, player Player) bool {
	dst := b[to]
	return dst == Empty || dst.Player() != player
}

// 帅：九宫内上下左右一格；外加“飞将”：与对方将同线且中间无子时，对方将的位置也算落点
func GeneralMoves(b *Board, from Position, moves *[]Position) {
	pc := b[from]
	if pc == Empty {
		return
	}
	player := pc.Player()
	row, col := Row(from), Col(from)
	n := len(*moves)
	for _, d := range rookDirs {
		r, c := row+d[0], col+d[1]
		if !onBoard(r, c) || !inPalace(player, r, c) {
			continue
		}
		to := Pos(r, c)
		if canLand(b, to, player) {
			*moves = append(*moves, to)
		}
	}

	enemy := b.FindGeneral(player.Opponent())
	if enemy == NoPosition || !isPathClear(b, from, enemy) {
		return
	}
	for _, to := range (*moves)[n:] {
		if to == enemy {
			return // 相邻且在九宫内，已由一步走法覆盖
		}
	}
	*moves = append(*moves, enemy)
}

// 仕：九宫内斜走一格
func AdvisorMoves(b *Board, from Position, moves *[]Position) {
	pc := b[from]
	if pc == Empty {
		return
	}
	player := pc.Player()
	row, col := Row(from), Col(from)
	for _, d := range bishopDirs {
		r, c := row+d[0], col+d[1]
		if !onBoard(r, c) || !inPalace(player, r, c) {
			continue
		}
		to := Pos(r, c)
		if canLand(b, to, player) {
			*moves = append(*moves, to)
		}
	}
}

// 相：田字，塞象眼不能走，不过河
func ElephantMoves(b *Board, from Position, moves *[]Position) {
	pc := b[from]
	if pc == Empty {
		return
	}
	player := pc.Player()
	row, col := Row(from), Col(from)
	for _, d := range bishopDirs {
		r, c := row+2*d[0], col+2*d[1]
		if !onBoard(r, c) {
			continue
		}
		if CrossedRiver(player, r) {
			continue
		}
		if b[Pos(row+d[0], col+d[1])] != Empty {
			continue // 象眼
		}
		to := Pos(r, c)
		if canLand(b, to, player) {
			*moves = append(*moves, to)
		}
	}
}

// 车：横竖直走到第一个子为止，敌子可吃
func ChariotMoves(b *Board, from Position, moves *[]Position) {
	pc := b[from]
	if pc == Empty {
		return
	}
	player := pc.Player()
	row, col := Row(from), Col(from)
	for _, d := range rookDirs {
		r, c := row+d[0], col+d[1]
		for onBoard(r, c) {
			to := Pos(r, c)
			dst := b[to]
			if dst == Empty {
				*moves = append(*moves, to)
			} else {
				if dst.Player() != player {
					*moves = append(*moves, to)
				}
				break
			}
			r += d[0]
			c += d[1]
		}
	}
}

// 炮：不吃子同车；吃子必须隔且只隔一个子（炮架）
func CannonMoves(b *Board, from Position, moves *[]Position) {
	pc := b[from]
	if pc == Empty {
		return
	}
	player := pc.Player()
	row, col := Row(from), Col(from)
	for _, d := range rookDirs {
		r, c := row+d[0], col+d[1]

		// 走子阶段：直到第一个棋子
		for onBoard(r, c) {
			to := Pos(r, c)
			r += d[0]
			c += d[1]
			if b[to] != Empty {
				break
			}
			*moves = append(*moves, to)
		}

		// 吃子阶段：越过炮架，遇到第一子可吃
		for onBoard(r, c) {
			to := Pos(r, c)
			dst := b[to]
			if dst != Empty {
				if dst.Player() != player {
					*moves = append(*moves, to)
				}
				break
			}
			r += d[0]
			c += d[1]
		}
	}
}

// isPathClear from、to 同行或同列且中间无子
func isPathClear(b *Board, from, to Position) bool {
	return countBetween(b, from, to) == 0
}

// countBetween 同行或同列时返回中间子数，否则 -1
func countBetween(b *Board, from, to Position) int {
	fr, fc := Row(from), Col(from)
	tr, tc := Row(to), Col(to)
	var step int
	switch {
	case from == to:
		return -1
	case fr == tr:
		step = 1
	case fc == tc:
		step = Cols
	default:
		return -1
	}
	lo, hi := int(from), int(to)
	if lo > hi {
		lo, hi = hi, lo
	}
	n := 0
	for p := lo + step; p < hi; p += step {
		if b[p] != Empty {
			n++
		}
	}
	return n
}
