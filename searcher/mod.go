package searcher

import (
	"errors"
	"reversi/experiments/metrics"
	"reversi/game"
	"time"

	"golang.org/x/exp/rand"
)

var (
	ErrNilState     = errors.New("cannot explore a nil game state")
	ErrInvalidDepth = errors.New("search depth must be a positive integer")
	ErrNoLegalMoves = errors.New("side to move has no legal moves")
)

type Option func(m *Minimax)

// WithAlphaBeta enables alpha-beta pruning. The root score is unchanged,
// only fewer positions are visited.
func WithAlphaBeta() Option {
	return func(m *Minimax) {
		m.pruning = true
	}
}

// WithSeed makes root tie-breaking reproducible.
func WithSeed(seed uint64) Option {
	return func(m *Minimax) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

// WithoutTieBreak keeps the first of equally scored root moves.
func WithoutTieBreak() Option {
	return func(m *Minimax) {
		m.tieBreak = false
	}
}

// WithDuration bounds the wall-clock time of a search. The budget is only
// checked between root moves, and at least one root move is always scored.
func WithDuration(duration time.Duration) Option {
	return func(m *Minimax) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(m *Minimax) {
		if collector != nil {
			m.metrics = collector
		}
	}
}

// Result is the move chosen at the root and its minimax value from the
// point of view of the player who was to move.
type Result struct {
	Move  game.Position
	Score float64
}
