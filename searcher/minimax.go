package searcher

import (
	"context"
	"fmt"
	"math"
	"reversi/experiments/metrics"
	"reversi/game"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Minimax struct {
	heuristic game.Heuristic
	pruning   bool
	tieBreak  bool
	duration  time.Duration
	rng       *rand.Rand
	metrics   metrics.Collector
	last      metrics.SearchMetric
}

func NewMinimax(heuristic game.Heuristic, options ...Option) *Minimax {
	if heuristic == nil {
		panic("minimax requires a heuristic")
	}
	m := &Minimax{ // Default values
		heuristic: heuristic,
		tieBreak:  true,
		rng:       rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		metrics:   metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// LastMetric returns the metric of the latest completed search. It is empty
// unless a collector was given through WithMetrics.
func (m *Minimax) LastMetric() metrics.SearchMetric {
	return m.last
}

// Explore searches depth plies ahead of state and returns the move that
// maximizes the heuristic value for the side to move. state is not modified.
func (m *Minimax) Explore(state *game.GameState, depth int) (Result, error) {
	return m.ExploreContext(context.Background(), state, depth)
}

// ExploreContext is Explore with cancellation between root moves. A context
// that is already done fails the search; one that ends midway yields the
// best move among the root moves scored so far.
func (m *Minimax) ExploreContext(ctx context.Context, state *game.GameState, depth int) (Result, error) {
	if state == nil {
		return Result{}, ErrNilState
	}
	if depth <= 0 {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidDepth, depth)
	}
	if v, ok := m.heuristic.(game.Validator); ok {
		if err := v.Validate(); err != nil {
			return Result{}, err
		}
	}
	me := state.CurrentPlayer().Color
	moves := state.LegalMoves(me)
	if len(moves) == 0 {
		return Result{}, ErrNoLegalMoves
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if m.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.duration)
		defer cancel()
	}

	m.metrics.Start(depth, m.pruning, game.Name(m.heuristic))
	s := &search{Minimax: m, maximizer: me}

	best := Result{Score: math.Inf(-1)}
	ties := 0
	evaluated := 0
	for _, move := range moves {
		if err := ctx.Err(); err != nil && evaluated > 0 {
			log.Debug().Msgf("search stopped after %d of %d root moves: %v", evaluated, len(moves), err)
			break
		}

		child := state.Copy()
		child.Play(move)
		// Every root child gets a full window so each candidate's score is exact
		score := s.minimize(child, depth-1, math.Inf(-1), math.Inf(1))
		evaluated++

		switch {
		case evaluated == 1 || score > best.Score:
			best = Result{Move: move, Score: score}
			ties = 1
		case score == best.Score:
			ties++
			// Reservoir sampling keeps each tied move with probability 1/ties
			if m.tieBreak && m.rng.Intn(ties) == 0 {
				best.Move = move
			}
		}
	}

	m.last = m.metrics.Complete(best.Score)
	log.Debug().Msgf("%s picks %+v with score %.3f among %d moves", me, best.Move, best.Score, len(moves))
	return best, nil
}

// search carries the per-call state of one Explore.
type search struct {
	*Minimax
	maximizer game.Color
}

// evaluate scores a leaf for the maximizing player. Heuristics score from
// the side to move, and all of them are zero-sum, so the opponent's value
// is negated.
func (s *search) evaluate(gs *game.GameState) float64 {
	s.metrics.AddLeaf()
	score := s.heuristic.Evaluate(gs)
	if gs.CurrentPlayer().Color != s.maximizer {
		return -score
	}
	return score
}

func (s *search) minimize(gs *game.GameState, depth int, alpha, beta float64) float64 {
	s.metrics.AddNode()
	if depth == 0 || gs.IsGameOver() {
		return s.evaluate(gs)
	}

	moves := gs.LegalMoves(gs.CurrentPlayer().Color)
	if len(moves) == 0 {
		child := gs.Copy()
		child.Pass()
		return s.maximize(child, depth-1, alpha, beta)
	}

	minScore := math.Inf(1)
	for _, move := range moves {
		child := gs.Copy()
		child.Play(move)
		score := s.maximize(child, depth-1, alpha, beta)
		if score < minScore {
			minScore = score
		}
		if s.pruning {
			if minScore <= alpha {
				s.metrics.AddCutoff()
				return minScore
			}
			beta = math.Min(beta, minScore)
		}
	}
	return minScore
}

func (s *search) maximize(gs *game.GameState, depth int, alpha, beta float64) float64 {
	s.metrics.AddNode()
	if depth == 0 || gs.IsGameOver() {
		return s.evaluate(gs)
	}

	moves := gs.LegalMoves(gs.CurrentPlayer().Color)
	if len(moves) == 0 {
		child := gs.Copy()
		child.Pass()
		return s.minimize(child, depth-1, alpha, beta)
	}

	maxScore := math.Inf(-1)
	for _, move := range moves {
		child := gs.Copy()
		child.Play(move)
		score := s.minimize(child, depth-1, alpha, beta)
		if score > maxScore {
			maxScore = score
		}
		if s.pruning {
			if maxScore >= beta {
				s.metrics.AddCutoff()
				return maxScore
			}
			alpha = math.Max(alpha, maxScore)
		}
	}
	return maxScore
}
