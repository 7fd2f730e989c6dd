package xiangqi

import "slices"

// MaxMovesPerPiece 车、炮在空棋盘上最多 17 个落点
const MaxMovesPerPiece = 17

// MovesPerPiece 定长形式，未用的位置填 NoPosition
type MovesPerPiece [MaxMovesPerPiece]Position

// ApplyMove 直接在 b 上走子，返回被吃的子。起点为空或起终点相同则什么都不做。
func ApplyMove(b *Board, m Movement) Piece {
	from, to := m.From(), m.To()
	if from == to || !from.Valid() || !to.Valid() {
		return Empty
	}
	pc := b[from]
	if pc == Empty {
		return Empty
	}
	captured := b[to]
	b[to] = pc
	b[from] = Empty
	return captured
}

// 伪合法（不考虑自己的将被将军）
func pseudoMoves(b *Board, from Position, moves *[]Position) {
	switch b[from].Kind() {
	case KindGeneral:
		GeneralMoves(b, from, moves)
	case KindAdvisor:
		AdvisorMoves(b, from, moves)
	case KindElephant:
		ElephantMoves(b, from, moves)
	case KindHorse:
		HorseMoves(b, from, moves)
	case KindChariot:
		ChariotMoves(b, from, moves)
	case KindCannon:
		CannonMoves(b, from, moves)
	case KindSoldier:
		SoldierMoves(b, from, moves)
	}
}

// leavesSafe 走完这步后走子方的将是否安全；直接吃掉对方将的走法永远合法
func leavesSafe(b *Board, m Movement) bool {
	player := b[m.From()].Player()
	next := *b
	captured := ApplyMove(&next, m)
	if captured.Kind() == KindGeneral {
		return true
	}
	return !IsInCheck(&next, player)
}

// PossibleMoves 返回 from 上棋子的落点，按位置升序。
// avoidCheck 为 true 时去掉会让自己被将的落点。
func PossibleMoves(b *Board, from Position, avoidCheck bool) []Position {
	if !from.Valid() || b[from] == Empty {
		return nil
	}
	moves := make([]Position, 0, MaxMovesPerPiece)
	pseudoMoves(b, from, &moves)
	if avoidCheck {
		moves = slices.DeleteFunc(moves, func(to Position) bool {
			return !leavesSafe(b, NewMovement(from, to))
		})
	}
	slices.Sort(moves)
	return moves
}

// PossibleMovesFixed 定长数组版本，给需要固定宽度的调用方用
func PossibleMovesFixed(b *Board, from Position, avoidCheck bool) MovesPerPiece {
	var out MovesPerPiece
	for i := range out {
		out[i] = NoPosition
	}
	copy(out[:], PossibleMoves(b, from, avoidCheck))
	return out
}

// IsLegalMove 走法是否在 player 的合法走法里
func IsLegalMove(b *Board, player Player, m Movement) bool {
	from := m.From()
	if !from.Valid() || b[from] == Empty || b[from].Player() != player {
		return false
	}
	return slices.Contains(PossibleMoves(b, from, true), m.To())
}

// AllPossibleNextMoves 生成 player 的全部走法
func AllPossibleNextMoves(b *Board, player Player, avoidCheck bool) []Movement {
	var out []Movement
	dests := make([]Position, 0, MaxMovesPerPiece)
	for from := Position(0); from < BoardSize; from++ {
		pc := b[from]
		if pc == Empty || pc.Player() != player {
			continue
		}
		dests = dests[:0]
		pseudoMoves(b, from, &dests)
		for _, to := range dests {
			m := NewMovement(from, to)
			if avoidCheck && !leavesSafe(b, m) {
				continue
			}
			out = append(out, m)
		}
	}
	return out
}

// AllPossibleNextBoards 与 AllPossibleNextMoves 一一对应
func AllPossibleNextBoards(b *Board, player Player, avoidCheck bool) []Board {
	moves := AllPossibleNextMoves(b, player, avoidCheck)
	out := make([]Board, len(moves))
	for i, m := range moves {
		out[i] = *b
		ApplyMove(&out[i], m)
	}
	return out
}

// hasLegalMove 找到一步就返回
func hasLegalMove(b *Board, player Player) bool {
	dests := make([]Position, 0, MaxMovesPerPiece)
	for from := Position(0); from < BoardSize; from++ {
		pc := b[from]
		if pc == Empty || pc.Player() != player {
			continue
		}
		dests = dests[:0]
		pseudoMoves(b, from, &dests)
		for _, to := range dests {
			if leavesSafe(b, NewMovement(from, to)) {
				return true
			}
		}
	}
	return false
}

// DidPlayerLose 将没了，或者无路可走（困毙与将死不区分）
func DidPlayerLose(b *Board, player Player) bool {
	if b.FindGeneral(player) == NoPosition {
		return true
	}
	return !hasLegalMove(b, player)
}

// GetWinner 只看双方将是否还在
func GetWinner(b *Board) Winner {
	if b.FindGeneral(Black) == NoPosition {
		return WinnerRed
	}
	if b.FindGeneral(Red) == NoPosition {
		return WinnerBlack
	}
	return WinnerNone
}
