package agent

import (
	"context"
	"math"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"xiangqi/internal/xiangqi"
)

const (
	// 一个足够大的值，当成正负无穷
	scoreInf  = 1_000_000_000
	scoreMate = 1_000_000
)

// AlphaBetaConfig 零值字段由 NewAlphaBeta 填默认值
type AlphaBetaConfig struct {
	MaxDepth  int           // 迭代加深的最大深度（ply）
	TimeLimit time.Duration // 0 表示不限时
	Workers   int           // 根节点并行度
}

func DefaultAlphaBetaConfig() AlphaBetaConfig {
	return AlphaBetaConfig{MaxDepth: 3, Workers: runtime.GOMAXPROCS(0)}
}

type AlphaBetaResult struct {
	BestMove xiangqi.Movement
	Score    int // 红方视角，正数红方好
	Depth    int // 完整搜完的深度
	Nodes    int64
	TimeUsed time.Duration
}

// AlphaBeta 迭代加深的极大极小搜索，根节点各着法并行，子力估值
type AlphaBeta struct {
	cfg AlphaBetaConfig
}

func NewAlphaBeta(cfg AlphaBetaConfig) *AlphaBeta {
	def := DefaultAlphaBetaConfig()
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = def.MaxDepth
	}
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	return &AlphaBeta{cfg: cfg}
}

func (a *AlphaBeta) Config() AlphaBetaConfig { return a.cfg }

func (a *AlphaBeta) MakeMove(b xiangqi.Board, p xiangqi.Player) xiangqi.Movement {
	res, _ := a.Search(context.Background(), b, p)
	return res.BestMove
}

// Search 超时只保留已完整搜完的那一层；ctx 取消时返回目前的结果和 ctx.Err()
func (a *AlphaBeta) Search(ctx context.Context, b xiangqi.Board, p xiangqi.Player) (AlphaBetaResult, error) {
	start := time.Now()
	res := AlphaBetaResult{BestMove: xiangqi.NoMovement}

	moves := xiangqi.AllPossibleNextMoves(&b, p, true)
	if len(moves) == 0 {
		return res, nil
	}
	if mv, ok := decisiveMove(&b, p, moves); ok {
		res.BestMove, res.Score, res.Depth = mv, mateScore(xiangqi.WinnerOf(p), 1), 1
		res.TimeUsed = time.Since(start)
		return res, nil
	}

	var deadline time.Time
	if a.cfg.TimeLimit > 0 {
		deadline = start.Add(a.cfg.TimeLimit)
	}
	orderCapturesFirst(&b, moves)
	res.BestMove = moves[0]

	for depth := 1; depth <= a.cfg.MaxDepth; depth++ {
		score, best, nodes, err := a.root(ctx, &b, p, moves, depth, deadline)
		res.Nodes += nodes
		if err != nil {
			res.TimeUsed = time.Since(start)
			return res, err
		}
		if depth > 1 && !deadline.IsZero() && time.Now().After(deadline) {
			break
		}
		res.BestMove, res.Score, res.Depth = best, score, depth
		// 上一层的最佳着法下一层先搜
		moveToFront(moves, best)
		if !deadline.IsZero() && time.Now().After(deadline) {
			break
		}
	}
	res.TimeUsed = time.Since(start)
	return res, nil
}

// root 每个根着法一个任务，各自独享置换表
func (a *AlphaBeta) root(ctx context.Context, b *xiangqi.Board, p xiangqi.Player, moves []xiangqi.Movement, depth int, deadline time.Time) (int, xiangqi.Movement, int64, error) {
	scores := make([]int, len(moves))
	var nodes atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Workers)
	for i, mv := range moves {
		i, mv := i, mv
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			child := *b
			xiangqi.ApplyMove(&child, mv)
			s := &searcher{ctx: gctx, tt: newTT(), deadline: deadline}
			scores[i] = s.alphaBeta(&child, p.Opponent(), depth-1, -scoreInf, scoreInf, 1)
			nodes.Add(s.nodes)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, xiangqi.NoMovement, nodes.Load(), err
	}
	if err := ctx.Err(); err != nil {
		return 0, xiangqi.NoMovement, nodes.Load(), err
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		if better(p, scores[i], scores[best]) {
			best = i
		}
	}
	return scores[best], moves[best], nodes.Load(), nil
}

type searcher struct {
	ctx      context.Context
	tt       tt
	deadline time.Time
	nodes    int64
	stopped  bool
}

func (s *searcher) expired() bool {
	if s.stopped {
		return true
	}
	if s.nodes&1023 == 0 {
		if s.ctx.Err() != nil || (!s.deadline.IsZero() && time.Now().After(s.deadline)) {
			s.stopped = true
		}
	}
	return s.stopped
}

// alphaBeta 红方取极大、黑方取极小
func (s *searcher) alphaBeta(b *xiangqi.Board, side xiangqi.Player, depth, alpha, beta, ply int) int {
	s.nodes++

	if w := xiangqi.GetWinner(b); w != xiangqi.WinnerNone {
		return mateScore(w, ply)
	}
	if depth <= 0 || s.expired() {
		return evaluate(b)
	}

	key := keyOf(b, side)
	if score, ok := s.tt.probe(key, depth, alpha, beta); ok {
		return score
	}

	moves := xiangqi.AllPossibleNextMoves(b, side, true)
	if len(moves) == 0 {
		return mateScore(xiangqi.WinnerOf(side.Opponent()), ply)
	}
	orderCapturesFirst(b, moves)

	alpha0, beta0 := alpha, beta
	best := scoreInf
	if side == xiangqi.Red {
		best = -scoreInf
	}
	for _, mv := range moves {
		child := *b
		xiangqi.ApplyMove(&child, mv)
		score := s.alphaBeta(&child, side.Opponent(), depth-1, alpha, beta, ply+1)
		if side == xiangqi.Red {
			best = max(best, score)
			alpha = max(alpha, score)
		} else {
			best = min(best, score)
			beta = min(beta, score)
		}
		if alpha >= beta {
			break
		}
	}

	if !s.stopped {
		s.tt.store(key, depth, best, alpha0, beta0)
	}
	return best
}

// evaluate 红方视角的子力分
func evaluate(b *xiangqi.Board) int {
	return int(math.Round(materialDiff(b) * 100))
}

// 越早分出胜负分数绝对值越大
func mateScore(w xiangqi.Winner, ply int) int {
	switch w {
	case xiangqi.WinnerRed:
		return scoreMate - ply
	case xiangqi.WinnerBlack:
		return -(scoreMate - ply)
	}
	return 0
}

func better(p xiangqi.Player, a, b int) bool {
	if p == xiangqi.Red {
		return a > b
	}
	return a < b
}

// orderCapturesFirst 吃子招按被吃子价值从大到小排在前面，其余保持原序
func orderCapturesFirst(b *xiangqi.Board, moves []xiangqi.Movement) {
	value := func(mv xiangqi.Movement) float64 {
		k := b[mv.To()].Kind()
		if k <= xiangqi.KindNone || int(k) >= len(pieceValues) {
			return 0
		}
		return pieceValues[k]
	}
	// 插入排序，稳定；走法数很少
	for i := 1; i < len(moves); i++ {
		mv := moves[i]
		v := value(mv)
		j := i
		for j > 0 && value(moves[j-1]) < v {
			moves[j] = moves[j-1]
			j--
		}
		moves[j] = mv
	}
}

func moveToFront(moves []xiangqi.Movement, mv xiangqi.Movement) {
	for i := range moves {
		if moves[i] == mv {
			copy(moves[1:i+1], moves[:i])
			moves[0] = mv
			return
		}
	}
}
