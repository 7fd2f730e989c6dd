package game

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"xiangqi/internal/xiangqi"
)

var (
	ErrIllegalMove   = errors.New("illegal move")
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrGameOver      = errors.New("game is over")
)

// GameState 一个会话。xiangqi.Game 本身不加锁，所有访问都经过 mu
type GameState struct {
	mu   sync.Mutex
	game *xiangqi.Game
	now  func() time.Time

	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Snapshot 某一时刻的只读视图
type Snapshot struct {
	Board      xiangqi.Board
	Turn       xiangqi.Player
	Moves      []xiangqi.Movement
	History    []xiangqi.MoveAction
	Check      bool
	Winner     xiangqi.Winner
	MovesCount int
}

func (s *GameState) LastUpdated() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.UpdatedAt
}

func (s *GameState) touch() { s.UpdatedAt = s.now() }

// View 在锁内读对局
func (s *GameState) View(fn func(g *xiangqi.Game)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.game)
}

func (s *GameState) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.game)
}

func snapshot(g *xiangqi.Game) Snapshot {
	b := g.CurrentBoard()
	return Snapshot{
		Board:      b,
		Turn:       g.Turn(),
		Moves:      xiangqi.AllPossibleNextMoves(&b, g.Turn(), true),
		History:    g.History(),
		Check:      g.IsCheckMade(),
		Winner:     g.GetWinner(),
		MovesCount: g.MovesCount(),
	}
}

// Play 只接受当前走子方的合法走法
func (s *GameState) Play(from, to xiangqi.Position) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.game.IsGameOver() {
		return snapshot(s.game), ErrGameOver
	}
	b := s.game.CurrentBoard()
	mv := xiangqi.NewMovement(from, to)
	if !xiangqi.IsLegalMove(&b, s.game.Turn(), mv) {
		return snapshot(s.game), fmt.Errorf("%w: %v", ErrIllegalMove, mv)
	}
	s.game.Move(from, to)
	s.touch()
	return snapshot(s.game), nil
}

func (s *GameState) Undo() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.game.CanUndo() {
		return snapshot(s.game), ErrNothingToUndo
	}
	s.game.Undo()
	s.touch()
	return snapshot(s.game), nil
}

func (s *GameState) Export() []uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.ExportMoves()
}

// Restore 从本局的开局局面重放，每一步都要合法；有一步不合法就整体拒绝，对局不变
func (s *GameState) Restore(moves []uint16) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := checkReplay(s.game, moves); err != nil {
		return snapshot(s.game), err
	}
	s.game.RestoreMoves(moves)
	s.touch()
	return snapshot(s.game), nil
}

// checkReplay 在开局局面的拷贝上逐步验证
func checkReplay(g *xiangqi.Game, moves []uint16) error {
	b := g.StartingBoard()
	turn := g.Turn()
	if g.MovesCount()%2 == 1 {
		turn = turn.Opponent()
	}
	for i, v := range moves {
		mv, ok := xiangqi.MovementFromNibbles(v)
		if !ok {
			return fmt.Errorf("%w: move %d: bad record %#04x", ErrIllegalMove, i, v)
		}
		if xiangqi.GetWinner(&b) != xiangqi.WinnerNone {
			return fmt.Errorf("%w: move %d: game already over", ErrIllegalMove, i)
		}
		if !xiangqi.IsLegalMove(&b, turn, mv) {
			return fmt.Errorf("%w: move %d: %v", ErrIllegalMove, i, mv)
		}
		xiangqi.ApplyMove(&b, mv)
		turn = turn.Opponent()
	}
	return nil
}
