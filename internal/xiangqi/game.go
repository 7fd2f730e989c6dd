package xiangqi

// Game 一局棋：当前轮次、局面历史和走子记录。
// 始终满足 len(history) == len(moves)+1。不做内部加锁，同一时间只能有一个调用方修改。
type Game struct {
	player     Player
	blackFirst bool
	history    []Board
	moves      []MoveAction
}

// NewGame 标准开局，红先
func NewGame() *Game {
	g := &Game{}
	g.Reset()
	return g
}

func (g *Game) startingPlayer() Player {
	if g.blackFirst {
		return Black
	}
	return Red
}

// Reset 恢复标准开局
func (g *Game) Reset() {
	g.ResetFromBoard(startingBoard)
}

// ResetFromBoard 用给定局面开局，清空历史
func (g *Game) ResetFromBoard(b Board) {
	g.player = g.startingPlayer()
	g.history = append(g.history[:0:0], b)
	g.moves = nil
}

// ResetFromPos 用 位置->棋子 摆局；越界位置忽略
func (g *Game) ResetFromPos(pieces map[Position]Piece) {
	var b Board
	for pos, pc := range pieces {
		if pos.Valid() {
			b[pos] = pc
		}
	}
	g.ResetFromBoard(b)
}

func (g *Game) Turn() Player { return g.player }

func (g *Game) MovesCount() int { return len(g.moves) }

// MakeBlackMoveFirst 只在还没走棋时生效，之后的 Reset 也保持黑先
func (g *Game) MakeBlackMoveFirst() {
	if len(g.moves) > 0 {
		return
	}
	g.blackFirst = true
	g.player = Black
}

func (g *Game) StartingBoard() Board { return g.history[0] }

func (g *Game) CurrentBoard() Board { return g.history[len(g.history)-1] }

func (g *Game) current() *Board { return &g.history[len(g.history)-1] }

func (g *Game) PieceAt(pos Position) Piece {
	if !pos.Valid() {
		return Empty
	}
	return g.current()[pos]
}

// PossibleMoves 返回 10x9 的布尔棋盘，可走的落点为 true；空格返回全 false
func (g *Game) PossibleMoves(pos Position) [BoardSize]bool {
	var out [BoardSize]bool
	for _, to := range PossibleMoves(g.current(), pos, true) {
		out[to] = true
	}
	return out
}

// Move 走子并返回被吃的子。起点为空或起终点相同时什么都不做，不记入历史。
// 不检查走法是否合法，由调用方负责。
func (g *Game) Move(from, to Position) Piece {
	if from == to || !from.Valid() || !to.Valid() {
		return Empty
	}
	cur := g.current()
	pc := cur[from]
	if pc == Empty {
		return Empty
	}
	next := *cur
	captured := ApplyMove(&next, NewMovement(from, to))
	g.history = append(g.history, next)
	g.moves = append(g.moves, MoveAction{Piece: pc, From: from, To: to, Captured: captured})
	g.player = g.player.Opponent()
	return captured
}

func (g *Game) CanUndo() bool { return len(g.history) > 1 }

// Undo 撤销上一步，返回被撤销的 MoveAction。调用前必须确认 CanUndo()。
func (g *Game) Undo() MoveAction {
	if !g.CanUndo() {
		panic("xiangqi: Undo called without history")
	}
	last := g.moves[len(g.moves)-1]
	g.history = g.history[:len(g.history)-1]
	g.moves = g.moves[:len(g.moves)-1]
	g.player = g.player.Opponent()
	return last
}

// History 走子记录的拷贝
func (g *Game) History() []MoveAction {
	return append([]MoveAction(nil), g.moves...)
}

// IsCheckMade 轮到走的一方是否正被将军
func (g *Game) IsCheckMade() bool {
	return IsInCheck(g.current(), g.player)
}

func (g *Game) IsGameOver() bool {
	return g.GetWinner() != WinnerNone
}

// GetWinner 有一方的将被吃，或轮到走的一方无合法走法时分出胜负
func (g *Game) GetWinner() Winner {
	b := g.current()
	if w := GetWinner(b); w != WinnerNone {
		return w
	}
	if DidPlayerLose(b, g.player) {
		return WinnerOf(g.player.Opponent())
	}
	return WinnerNone
}

// ExportMoves 每步一个 uint16：起点行、起点列、终点行、终点列各 4 bit
func (g *Game) ExportMoves() []uint16 {
	out := make([]uint16, len(g.moves))
	for i, a := range g.moves {
		out[i] = a.Movement().Nibbles()
	}
	return out
}

// RestoreMoves 从当前的开局局面重放走子记录。
// 不校验记录是否来自同一开局；行列越界的记录跳过。
func (g *Game) RestoreMoves(moves []uint16) {
	g.ResetFromBoard(g.StartingBoard())
	for _, v := range moves {
		m, ok := MovementFromNibbles(v)
		if !ok {
			continue
		}
		g.Move(m.From(), m.To())
	}
}
