package agent

import (
	"context"
	"math"
	"math/rand"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"xiangqi/internal/xiangqi"
)

// MCTSConfig MCTS 搜索配置，零值字段由 NewMCTS 填默认值
type MCTSConfig struct {
	Simulations int           // 总仿真次数，平均分给各工作协程
	Depth       int           // 随机走子的最大步数，超过后按子力估值
	Exploration float64       // UCB1 探索常数
	Workers     int           // 根并行的协程数
	TimeLimit   time.Duration // 0 表示不限时
	Seed        int64         // 0 表示每次搜索用当前时间做种子
}

func DefaultMCTSConfig() MCTSConfig {
	return MCTSConfig{
		Simulations: 10000,
		Depth:       20,
		Exploration: 5.0,
		Workers:     runtime.GOMAXPROCS(0),
	}
}

// MoveStat 根节点上某一步的汇总统计
type MoveStat struct {
	Move    xiangqi.Movement
	Visits  int
	WinProb float64
}

// SearchResult WinProb 站在根节点走子方的角度
type SearchResult struct {
	BestMove xiangqi.Movement
	WinProb  float64
	Sims     int
	TimeUsed time.Duration
	Moves    []MoveStat // 按访问次数从多到少
}

// MCTS 根并行的 UCT 搜索：每个协程独立建树、独立随机数，最后合并根节点的访问次数
type MCTS struct {
	cfg MCTSConfig
}

func NewMCTS(cfg MCTSConfig) *MCTS {
	def := DefaultMCTSConfig()
	if cfg.Simulations <= 0 {
		cfg.Simulations = def.Simulations
	}
	if cfg.Depth <= 0 {
		cfg.Depth = def.Depth
	}
	if cfg.Exploration <= 0 {
		cfg.Exploration = def.Exploration
	}
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.Workers > cfg.Simulations {
		cfg.Workers = cfg.Simulations
	}
	return &MCTS{cfg: cfg}
}

func (m *MCTS) Config() MCTSConfig { return m.cfg }

func (m *MCTS) MakeMove(b xiangqi.Board, p xiangqi.Player) xiangqi.Movement {
	res, _ := m.Search(context.Background(), b, p)
	return res.BestMove
}

// Search ctx 取消时返回目前为止的结果和 ctx.Err()
func (m *MCTS) Search(ctx context.Context, b xiangqi.Board, p xiangqi.Player) (SearchResult, error) {
	start := time.Now()
	res := SearchResult{BestMove: xiangqi.NoMovement}

	moves := xiangqi.AllPossibleNextMoves(&b, p, true)
	if len(moves) == 0 {
		return res, nil
	}
	if mv, ok := decisiveMove(&b, p, moves); ok {
		res.BestMove, res.WinProb = mv, 1
		res.Moves = []MoveStat{{Move: mv, WinProb: 1}}
		res.TimeUsed = time.Since(start)
		return res, nil
	}
	if len(moves) == 1 {
		res.BestMove, res.WinProb = moves[0], 0.5
		res.Moves = []MoveStat{{Move: moves[0], WinProb: 0.5}}
		res.TimeUsed = time.Since(start)
		return res, nil
	}

	seed := m.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	workers := m.cfg.Workers
	perWorker := make([][]MoveStat, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		sims := m.cfg.Simulations / workers
		if w < m.cfg.Simulations%workers {
			sims++
		}
		rng := rand.New(rand.NewSource(seed + int64(w)))
		w := w
		g.Go(func() error {
			st, err := m.worker(gctx, b, p, sims, rng, start)
			perWorker[w] = st
			return err
		})
	}
	err := g.Wait()

	merged := make(map[xiangqi.Movement]*MoveStat, len(moves))
	var wins float64
	for _, st := range perWorker {
		for _, s := range st {
			ms, ok := merged[s.Move]
			if !ok {
				ms = &MoveStat{Move: s.Move}
				merged[s.Move] = ms
			}
			// 这里 WinProb 暂存累计得分
			ms.Visits += s.Visits
			ms.WinProb += s.WinProb
			res.Sims += s.Visits
			wins += s.WinProb
		}
	}
	res.Moves = make([]MoveStat, 0, len(merged))
	for _, ms := range merged {
		if ms.Visits > 0 {
			ms.WinProb /= float64(ms.Visits)
		}
		res.Moves = append(res.Moves, *ms)
	}
	sort.Slice(res.Moves, func(i, j int) bool {
		if res.Moves[i].Visits != res.Moves[j].Visits {
			return res.Moves[i].Visits > res.Moves[j].Visits
		}
		return res.Moves[i].Move < res.Moves[j].Move
	})
	if len(res.Moves) > 0 {
		res.BestMove = res.Moves[0].Move
	} else {
		res.BestMove = moves[0]
	}
	if res.Sims > 0 {
		res.WinProb = wins / float64(res.Sims)
	}
	res.TimeUsed = time.Since(start)
	return res, err
}

// decisiveMove 能吃将或一步将死就不用搜
func decisiveMove(b *xiangqi.Board, p xiangqi.Player, moves []xiangqi.Movement) (xiangqi.Movement, bool) {
	for _, mv := range moves {
		if b[mv.To()].Kind() == xiangqi.KindGeneral {
			return mv, true
		}
	}
	for _, mv := range moves {
		next := *b
		xiangqi.ApplyMove(&next, mv)
		if xiangqi.DidPlayerLose(&next, p.Opponent()) {
			return mv, true
		}
	}
	return xiangqi.NoMovement, false
}

// worker 在自己的树上跑 sims 次仿真，返回根节点各子节点的访问数和累计得分
func (m *MCTS) worker(ctx context.Context, b xiangqi.Board, p xiangqi.Player, sims int, rng *rand.Rand, start time.Time) ([]MoveStat, error) {
	root := newNode(&b, xiangqi.NoMovement, nil, p, rng)
	var err error
	for i := 0; i < sims; i++ {
		if i&63 == 0 {
			if err = ctx.Err(); err != nil {
				break
			}
			if m.cfg.TimeLimit > 0 && time.Since(start) > m.cfg.TimeLimit {
				break
			}
		}
		m.simulate(root, b, rng)
	}
	out := make([]MoveStat, 0, len(root.kids))
	for _, k := range root.kids {
		out = append(out, MoveStat{Move: k.move, Visits: k.visits, WinProb: k.wins})
	}
	return out, err
}

// simulate Selection -> Expansion -> Rollout -> Backup
func (m *MCTS) simulate(root *node, b xiangqi.Board, rng *rand.Rand) {
	n := root
	for !n.terminal && n.expanded() {
		n = n.selectChild(m.cfg.Exploration)
		xiangqi.ApplyMove(&b, n.move)
	}
	if !n.terminal {
		n = n.expand(&b, rng)
	}
	red := m.rollout(&b, n, rng)
	for ; n != nil; n = n.parent {
		n.visits++
		if n.parent == nil {
			continue
		}
		if n.parent.toMove == xiangqi.Red {
			n.wins += red
		} else {
			n.wins += 1 - red
		}
	}
}

// rollout 返回红方得分 [0,1]。随机走子不过滤送将，吃掉将即分胜负。
func (m *MCTS) rollout(b *xiangqi.Board, n *node, rng *rand.Rand) float64 {
	if n.terminal {
		return redScore(n.winner)
	}
	player := n.toMove
	for d := 0; d < m.cfg.Depth; d++ {
		moves := xiangqi.AllPossibleNextMoves(b, player, false)
		if len(moves) == 0 {
			return redScore(xiangqi.WinnerOf(player.Opponent()))
		}
		captured := xiangqi.ApplyMove(b, moves[rng.Intn(len(moves))])
		if captured.Kind() == xiangqi.KindGeneral {
			return redScore(xiangqi.WinnerOf(player))
		}
		player = player.Opponent()
	}
	return materialScore(b)
}

func redScore(w xiangqi.Winner) float64 {
	switch w {
	case xiangqi.WinnerRed:
		return 1
	case xiangqi.WinnerBlack:
		return 0
	}
	return 0.5
}

var pieceValues = [...]float64{
	xiangqi.KindAdvisor:  2,
	xiangqi.KindElephant: 2,
	xiangqi.KindHorse:    4,
	xiangqi.KindChariot:  9,
	xiangqi.KindCannon:   4.5,
	xiangqi.KindSoldier:  1,
}

// materialScore 子力差压到 (0,1)
func materialScore(b *xiangqi.Board) float64 {
	return 0.5 + 0.5*math.Tanh(materialDiff(b)/10)
}

// materialDiff 红方减黑方的子力，过河兵按 2 分算
func materialDiff(b *xiangqi.Board) float64 {
	var diff float64
	for p := xiangqi.Position(0); p < xiangqi.BoardSize; p++ {
		pc := b[p]
		k := pc.Kind()
		if k <= xiangqi.KindNone || int(k) >= len(pieceValues) {
			continue
		}
		v := pieceValues[k]
		if k == xiangqi.KindSoldier && xiangqi.CrossedRiver(pc.Player(), xiangqi.Row(p)) {
			v = 2
		}
		if pc.IsRed() {
			diff += v
		} else {
			diff -= v
		}
	}
	return diff
}
