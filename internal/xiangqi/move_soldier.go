package xiangqi

// 兵：未过河只能前进一格；过河后可左右一格；永不后退
func SoldierMoves(b *Board, from Position, moves *[]Position) {
	pc := b[from]
	if pc == Empty {
		return
	}
	player := pc.Player()
	row, col := Row(from), Col(from)

	if r := row + soldierDir(player); onBoard(r, col) {
		to := Pos(r, col)
		if canLand(b, to, player) {
			*moves = append(*moves, to)
		}
	}

	if !CrossedRiver(player, row) {
		return
	}
	for _, dc := range [2]int{-1, +1} {
		c := col + dc
		if !onBoard(row, c) {
			continue
		}
		to := Pos(row, c)
		if canLand(b, to, player) {
			*moves = append(*moves, to)
		}
	}
}

// threatensBySoldier 兵在 from 能否吃到 target
func threatensBySoldier(player Player, from, target Position) bool {
	row, col := Row(from), Col(from)
	tr, tc := Row(target), Col(target)
	if tc == col && tr == row+soldierDir(player) {
		return true
	}
	return tr == row && CrossedRiver(player, row) && (tc == col-1 || tc == col+1)
}
