package agent

import (
	"math/rand"
	"sync"

	"xiangqi/internal/xiangqi"
)

// Random 在所有合法走法里均匀随机选一步。可并发使用。
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) MakeMove(b xiangqi.Board, p xiangqi.Player) xiangqi.Movement {
	moves := xiangqi.AllPossibleNextMoves(&b, p, true)
	if len(moves) == 0 {
		return xiangqi.NoMovement
	}
	r.mu.Lock()
	i := r.rng.Intn(len(moves))
	r.mu.Unlock()
	return moves[i]
}
