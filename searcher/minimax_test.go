package searcher

import (
	"context"
	"reversi/experiments/metrics"
	"reversi/game"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func stateFrom(t *testing.T, first game.Color, rows ...string) *game.GameState {
	t.Helper()
	b, err := game.NewBoard(len(rows), len(rows[0]))
	require.NoError(t, err)
	for r, row := range rows {
		for c, cell := range row {
			switch cell {
			case 'L':
				b.PlacePiece(r, c, game.Light)
			case 'D':
				b.PlacePiece(r, c, game.Dark)
			}
		}
	}
	gs, err := game.NewGameState(b, first, first.Opponent())
	require.NoError(t, err)
	return gs
}

func composite(t *testing.T) *game.Composite {
	t.Helper()
	c := game.NewComposite()
	_, err := c.Add(game.ScoreDifferential{}, 10)
	require.NoError(t, err)
	_, err = c.Add(game.MobilityDifferential{}, 78.922)
	require.NoError(t, err)
	_, err = c.Add(game.CornersCaptured{}, 801.724)
	require.NoError(t, err)
	return c
}

// randomState plays plies random moves from the standard 8x8 start.
func randomState(t *testing.T, seed uint64, plies int) *game.GameState {
	t.Helper()
	gs, err := game.NewStandardGame(8, 8)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < plies && !gs.IsGameOver(); i++ {
		moves := gs.LegalMoves(gs.CurrentPlayer().Color)
		if len(moves) == 0 {
			gs.Pass()
			continue
		}
		gs.Play(moves[rng.Intn(len(moves))])
	}
	return gs
}

func TestExploreErrors(t *testing.T) {
	t.Run("nil heuristic panics", func(t *testing.T) {
		require.Panics(t, func() { NewMinimax(nil) })
	})

	t.Run("nil state", func(t *testing.T) {
		_, err := NewMinimax(game.ScoreDifferential{}).Explore(nil, 3)
		require.ErrorIs(t, err, ErrNilState)
	})

	t.Run("non-positive depth", func(t *testing.T) {
		gs, _ := game.NewStandardGame(8, 8)
		m := NewMinimax(game.ScoreDifferential{})
		_, err := m.Explore(gs, 0)
		require.ErrorIs(t, err, ErrInvalidDepth)
		_, err = m.Explore(gs, -2)
		require.ErrorIs(t, err, ErrInvalidDepth)
	})

	t.Run("empty composite", func(t *testing.T) {
		gs, _ := game.NewStandardGame(8, 8)
		_, err := NewMinimax(game.NewComposite()).Explore(gs, 2)
		require.ErrorIs(t, err, game.ErrEmptyComposite)
	})

	t.Run("blocked side to move", func(t *testing.T) {
		gs := stateFrom(t, game.Light, "DL..")
		_, err := NewMinimax(game.ScoreDifferential{}).Explore(gs, 2)
		require.ErrorIs(t, err, ErrNoLegalMoves)
	})
}

func TestExplore(t *testing.T) {
	t.Run("single legal move", func(t *testing.T) {
		gs := stateFrom(t, game.Light, "LD..")
		before := gs.Hash()

		result, err := NewMinimax(game.ScoreDifferential{}).Explore(gs, 1)

		require.NoError(t, err)
		require.Equal(t, game.Position{Row: 0, Column: 2}, result.Move)
		require.Equal(t, 100.0, result.Score, "Capturing every dark piece is a full win")
		require.Equal(t, before, gs.Hash(), "Explore should not modify the state")
	})

	t.Run("forced pass inside the tree", func(t *testing.T) {
		// After Light plays (0,2) Dark is blocked and passes
		expected := map[int]float64{1: 50, 2: 50, 3: 100}
		for depth, score := range expected {
			gs := stateFrom(t, game.Light, "LD.D..")
			result, err := NewMinimax(game.ScoreDifferential{}).Explore(gs, depth)
			require.NoError(t, err)
			require.Equal(t, game.Position{Row: 0, Column: 2}, result.Move)
			require.Equal(t, score, result.Score, "Unexpected score at depth %d", depth)
		}
	})

	t.Run("chosen move is always legal", func(t *testing.T) {
		m := NewMinimax(composite(t), WithAlphaBeta(), WithSeed(7))
		for seed := uint64(1); seed <= 5; seed++ {
			gs := randomState(t, seed, 12)
			if gs.IsGameOver() || len(gs.LegalMoves(gs.CurrentPlayer().Color)) == 0 {
				continue
			}
			result, err := m.Explore(gs, 2)
			require.NoError(t, err)
			require.Contains(t, gs.LegalMoves(gs.CurrentPlayer().Color), result.Move)
		}
	})
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	t.Run("standard start", func(t *testing.T) {
		for depth := 1; depth <= 4; depth++ {
			gs, _ := game.NewStandardGame(8, 8)
			plain, err := NewMinimax(composite(t), WithoutTieBreak()).Explore(gs, depth)
			require.NoError(t, err)
			pruned, err := NewMinimax(composite(t), WithoutTieBreak(), WithAlphaBeta()).Explore(gs, depth)
			require.NoError(t, err)
			require.Equal(t, plain, pruned, "Pruning should not change the result at depth %d", depth)
		}
	})

	t.Run("random positions", func(t *testing.T) {
		for seed := uint64(1); seed <= 8; seed++ {
			gs := randomState(t, seed, int(seed)*4)
			if gs.IsGameOver() || len(gs.LegalMoves(gs.CurrentPlayer().Color)) == 0 {
				continue
			}
			plain, err := NewMinimax(composite(t), WithoutTieBreak()).Explore(gs, 3)
			require.NoError(t, err)
			pruned, err := NewMinimax(composite(t), WithoutTieBreak(), WithAlphaBeta()).Explore(gs, 3)
			require.NoError(t, err)
			require.Equal(t, plain.Score, pruned.Score, "Scores differ for seed %d", seed)
		}
	})

	t.Run("pruning visits fewer positions", func(t *testing.T) {
		gs, _ := game.NewStandardGame(8, 8)

		plainMetrics := metrics.NewCollector()
		m := NewMinimax(composite(t), WithMetrics(plainMetrics))
		_, err := m.Explore(gs, 4)
		require.NoError(t, err)
		plain := m.LastMetric()

		m = NewMinimax(composite(t), WithAlphaBeta(), WithMetrics(metrics.NewCollector()))
		_, err = m.Explore(gs, 4)
		require.NoError(t, err)
		pruned := m.LastMetric()

		require.Zero(t, plain.Cutoffs)
		require.Positive(t, pruned.Cutoffs)
		require.LessOrEqual(t, pruned.Nodes, plain.Nodes)
		require.LessOrEqual(t, pruned.Leaves, plain.Leaves)
	})
}

func TestTieBreak(t *testing.T) {
	// Every opening move flips one piece, so all four score the same
	t.Run("disabled keeps the first move", func(t *testing.T) {
		m := NewMinimax(game.ScoreDifferential{}, WithoutTieBreak())
		for i := 0; i < 10; i++ {
			gs, _ := game.NewStandardGame(8, 8)
			result, err := m.Explore(gs, 1)
			require.NoError(t, err)
			require.Equal(t, game.Position{Row: 2, Column: 4}, result.Move)
			require.Equal(t, 60.0, result.Score)
		}
	})

	t.Run("enabled spreads over every tied move", func(t *testing.T) {
		m := NewMinimax(game.ScoreDifferential{}, WithSeed(42))
		seen := map[game.Position]int{}
		for i := 0; i < 200; i++ {
			gs, _ := game.NewStandardGame(8, 8)
			result, err := m.Explore(gs, 1)
			require.NoError(t, err)
			require.Equal(t, 60.0, result.Score)
			seen[result.Move]++
		}
		require.Len(t, seen, 4, "Every opening move should be picked at some point")
	})

	t.Run("same seed same choices", func(t *testing.T) {
		a := NewMinimax(game.ScoreDifferential{}, WithSeed(3))
		b := NewMinimax(game.ScoreDifferential{}, WithSeed(3))
		for i := 0; i < 20; i++ {
			gs, _ := game.NewStandardGame(8, 8)
			ra, _ := a.Explore(gs, 1)
			rb, _ := b.Explore(gs, 1)
			require.Equal(t, ra, rb)
		}
	})
}

func TestExploreContext(t *testing.T) {
	t.Run("cancelled context fails the search", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		gs, _ := game.NewStandardGame(8, 8)
		_, err := NewMinimax(game.ScoreDifferential{}).ExploreContext(ctx, gs, 3)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("tiny budget still returns a legal move", func(t *testing.T) {
		gs, _ := game.NewStandardGame(8, 8)
		result, err := NewMinimax(composite(t), WithDuration(time.Nanosecond)).Explore(gs, 4)
		require.NoError(t, err)
		require.Contains(t, gs.LegalMoves(game.Light), result.Move)
	})
}

func TestSearchMetric(t *testing.T) {
	gs := stateFrom(t, game.Light, "LD..")
	m := NewMinimax(game.Named("diff", game.ScoreDifferential{}), WithAlphaBeta(), WithMetrics(metrics.NewCollector()))

	_, err := m.Explore(gs, 1)
	require.NoError(t, err)

	metric := m.LastMetric()
	require.Equal(t, 1, metric.Depth)
	require.True(t, metric.Pruning)
	require.Equal(t, "diff", metric.Heuristic)
	require.Equal(t, 1, metric.Nodes)
	require.Equal(t, 1, metric.Leaves)
	require.Zero(t, metric.Cutoffs)
	require.Equal(t, 100.0, metric.Score)
}
