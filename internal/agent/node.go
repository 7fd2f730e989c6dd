package agent

import (
	"math"
	"math/rand"

	"xiangqi/internal/xiangqi"
)

// node 单个工作协程私有的搜索树节点，不加锁
type node struct {
	move    xiangqi.Movement
	parent  *node
	toMove  xiangqi.Player // 该节点局面轮到谁走
	untried []xiangqi.Movement
	kids    []*node

	visits int
	// wins 站在走进该节点的一方（parent.toMove）统计的累计得分
	wins float64

	terminal bool
	winner   xiangqi.Winner
}

func newNode(b *xiangqi.Board, mv xiangqi.Movement, parent *node, toMove xiangqi.Player, rng *rand.Rand) *node {
	n := &node{move: mv, parent: parent, toMove: toMove}
	if w := xiangqi.GetWinner(b); w != xiangqi.WinnerNone {
		n.terminal, n.winner = true, w
		return n
	}
	n.untried = xiangqi.AllPossibleNextMoves(b, toMove, true)
	if len(n.untried) == 0 {
		n.terminal = true
		n.winner = xiangqi.WinnerOf(toMove.Opponent())
		return n
	}
	rng.Shuffle(len(n.untried), func(i, j int) {
		n.untried[i], n.untried[j] = n.untried[j], n.untried[i]
	})
	return n
}

func (n *node) expanded() bool { return len(n.untried) == 0 }

// selectChild UCB1：wins/visits + c*sqrt(ln N / n)
func (n *node) selectChild(c float64) *node {
	var best *node
	bestScore := math.Inf(-1)
	logN := math.Log(float64(n.visits))
	for _, k := range n.kids {
		score := k.wins/float64(k.visits) + c*math.Sqrt(logN/float64(k.visits))
		if score > bestScore {
			bestScore = score
			best = k
		}
	}
	return best
}

func (n *node) expand(b *xiangqi.Board, rng *rand.Rand) *node {
	last := len(n.untried) - 1
	mv := n.untried[last]
	n.untried = n.untried[:last]
	xiangqi.ApplyMove(b, mv)
	k := newNode(b, mv, n, n.toMove.Opponent(), rng)
	n.kids = append(n.kids, k)
	return k
}
