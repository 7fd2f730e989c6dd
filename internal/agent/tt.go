package agent

import "xiangqi/internal/xiangqi"

type ttKey struct {
	state xiangqi.BoardState
	turn  xiangqi.Player
}

type bound int8

const (
	boundExact bound = iota
	boundLower       // 真实值 >= score
	boundUpper       // 真实值 <= score
)

type ttEntry struct {
	depth int
	score int
	bound bound
}

// tt 置换表，每个搜索协程一张，不加锁
type tt map[ttKey]ttEntry

const ttMaxEntries = 1 << 20

func newTT() tt { return make(tt, 1<<14) }

func keyOf(b *xiangqi.Board, turn xiangqi.Player) ttKey {
	return ttKey{state: xiangqi.EncodeBoardState(b), turn: turn}
}

// probe 只有条目足够深、且界限能直接给出结论时才命中
func (t tt) probe(k ttKey, depth, alpha, beta int) (int, bool) {
	e, ok := t[k]
	if !ok || e.depth < depth {
		return 0, false
	}
	switch e.bound {
	case boundExact:
		return e.score, true
	case boundLower:
		if e.score >= beta {
			return e.score, true
		}
	case boundUpper:
		if e.score <= alpha {
			return e.score, true
		}
	}
	return 0, false
}

// store alpha0/beta0 是进入节点时的窗口
func (t *tt) store(k ttKey, depth, score, alpha0, beta0 int) {
	if len(*t) > ttMaxEntries {
		*t = newTT()
	}
	if old, ok := (*t)[k]; ok && old.depth > depth {
		return
	}
	b := boundExact
	switch {
	case score <= alpha0:
		b = boundUpper
	case score >= beta0:
		b = boundLower
	}
	(*t)[k] = ttEntry{depth: depth, score: score, bound: b}
}
