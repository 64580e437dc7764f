package player

import (
	"errors"
	"fmt"
	"reversi/experiments/metrics"
	"reversi/game"
	"reversi/searcher"

	"golang.org/x/exp/rand"
)

var ErrNoLegalMoves = errors.New("no legal moves to choose from")

// Player decides which of the legal moves to play. Implementations must not
// modify state.
type Player interface {
	DecideMove(state *game.GameState, legalMoves []game.Position) (game.Position, error)
}

// AIPlayer picks moves with a depth-bounded minimax search.
type AIPlayer struct {
	minimax *searcher.Minimax
	depth   int
}

// NewAIPlayer returns a player searching depth plies with heuristic. Search
// options such as searcher.WithAlphaBeta are applied to every search.
func NewAIPlayer(heuristic game.Heuristic, depth int, options ...searcher.Option) (*AIPlayer, error) {
	if heuristic == nil {
		return nil, game.ErrNilHeuristic
	}
	if v, ok := heuristic.(game.Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	if depth <= 0 {
		return nil, fmt.Errorf("%w: got %d", searcher.ErrInvalidDepth, depth)
	}
	options = append(options, searcher.WithMetrics(metrics.NewCollector()))
	return &AIPlayer{
		minimax: searcher.NewMinimax(heuristic, options...),
		depth:   depth,
	}, nil
}

func (p *AIPlayer) DecideMove(state *game.GameState, legalMoves []game.Position) (game.Position, error) {
	if len(legalMoves) == 0 {
		return game.Position{}, ErrNoLegalMoves
	}
	result, err := p.minimax.Explore(state.Copy(), p.depth)
	if err != nil {
		return game.Position{}, fmt.Errorf("search failed: %w", err)
	}
	return result.Move, nil
}

// LastMetric returns the metric of the latest search.
func (p *AIPlayer) LastMetric() metrics.SearchMetric {
	return p.minimax.LastMetric()
}

// RandomPlayer plays a uniformly random legal move.
type RandomPlayer struct {
	rng *rand.Rand
}

func NewRandomPlayer(seed uint64) *RandomPlayer {
	return &RandomPlayer{rng: rand.New(rand.NewSource(seed))}
}

func (p *RandomPlayer) DecideMove(state *game.GameState, legalMoves []game.Position) (game.Position, error) {
	if len(legalMoves) == 0 {
		return game.Position{}, ErrNoLegalMoves
	}
	return legalMoves[p.rng.Intn(len(legalMoves))], nil
}
