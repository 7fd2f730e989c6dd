package xiangqi

// IsAttacked 判断 sq 是否被 by 这一方攻击。
// 仕、相走不出自己的半场，不可能威胁对方的将，直接跳过。
func IsAttacked(b *Board, sq Position, by Player) bool {
	for s := Position(0); s < BoardSize; s++ {
		pc := b[s]
		if pc == Empty || pc.Player() != by {
			continue
		}
		switch pc.Kind() {
		case KindGeneral, KindChariot:
			if isPathClear(b, s, sq) {
				return true
			}
		case KindSoldier:
			if threatensBySoldier(by, s, sq) {
				return true
			}
		case KindHorse:
			if threatensByHorse(b, s, sq) {
				return true
			}
		case KindCannon:
			if countBetween(b, s, sq) == 1 {
				return true
			}
		}
	}
	return false
}

// IsInCheck 判断 player 的将是否被将军；将已经不在棋盘上视为已输，返回 true。
// 两将照面也算被将。
func IsInCheck(b *Board, player Player) bool {
	general := b.FindGeneral(player)
	if general == NoPosition {
		return true
	}
	return IsAttacked(b, general, player.Opponent())
}
