package engine

import (
	"context"
	"reversi/experiments/metrics"
)

const (
	MaxTurns   = 500 // Safety cap, a real game ends well before
	MaxRetries = 3   // Attempts a player gets to produce a legal move
)

type Engine interface {
	// Run plays the game till it is over or MaxTurns is reached
	Run(ctx context.Context) (winner string, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
