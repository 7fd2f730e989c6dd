// Package agent 提供走棋的 AI：随机走子、MCTS 和 Alpha-Beta。
package agent

import (
	"errors"
	"fmt"
	"strings"

	"xiangqi/internal/xiangqi"
)

// Agent 给定局面和走子方，返回一步合法走法；无子可走时返回 xiangqi.NoMovement
type Agent interface {
	MakeMove(b xiangqi.Board, p xiangqi.Player) xiangqi.Movement
}

var ErrUnknownAgent = errors.New("unknown agent")

// New 按名字创建 agent："random"、"mcts" 或 "alphabeta"。
// seed 只对 random 生效，mcts 用 cfg.Seed；alphabeta 只取 cfg 里的 Workers 和 TimeLimit
func New(name string, cfg MCTSConfig, seed int64) (Agent, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "random":
		return NewRandom(seed), nil
	case "", "mcts":
		return NewMCTS(cfg), nil
	case "alphabeta", "ab":
		return NewAlphaBeta(AlphaBetaConfig{Workers: cfg.Workers, TimeLimit: cfg.TimeLimit}), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAgent, name)
	}
}
