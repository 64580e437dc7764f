package experiments

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"reversi/config"
	"reversi/experiments/metrics"
	"reversi/game"
	"reversi/player"
	"testing"

	"github.com/stretchr/testify/require"
)

func smallConfig() *config.Config {
	c := config.Default()
	c.Board = config.BoardConfig{Rows: 4, Columns: 4}
	c.Agents = []metrics.AgentConfig{
		{ID: 1, Depth: 2, Pruning: true, Seed: 1, Score: 1, Corners: 5},
		{ID: 2, Random: true, Seed: 2},
	}
	c.Experiment.Games = 2
	c.Experiment.MatchUps = [][2]int{{1, 2}, {2, 1}}
	return &c
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestRun(t *testing.T) {
	t.Run("writes every record", func(t *testing.T) {
		cfg := smallConfig()
		w, err := metrics.NewWriter(t.TempDir(), cfg.Experiment.Name)
		require.NoError(t, err)

		require.NoError(t, Run(context.Background(), cfg, w))

		agents := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.Len(t, agents, 3)

		games := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, games, 5, "Header plus two games for each of two match-ups")
		require.Equal(t, []string{"1", "1", "2"}, games[1][:3])
		require.Equal(t, []string{"3", "2", "1"}, games[3][:3])

		moves := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Greater(t, len(moves), 1)
		for _, row := range moves[1:] {
			require.Contains(t, []string{"1", "2", "3", "4"}, row[0])
		}
	})

	t.Run("unknown agent in a match-up", func(t *testing.T) {
		cfg := smallConfig()
		cfg.Experiment.MatchUps = [][2]int{{1, 9}}
		w, err := metrics.NewWriter(t.TempDir(), "series")
		require.NoError(t, err)
		require.Error(t, Run(context.Background(), cfg, w))
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		w, err := metrics.NewWriter(t.TempDir(), "series")
		require.NoError(t, err)
		require.ErrorIs(t, Run(ctx, smallConfig(), w), context.Canceled)
	})
}

func TestRunPruningExperiment(t *testing.T) {
	t.Run("plays plain against pruned", func(t *testing.T) {
		cfg := smallConfig()
		cfg.Experiment.Games = 1
		w, err := metrics.NewWriter(t.TempDir(), "pruning")
		require.NoError(t, err)

		require.NoError(t, RunPruningExperiment(context.Background(), cfg, w))

		agents := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.Len(t, agents, 3)
		require.Equal(t, "false", agents[1][3], "Agent 1 searches without pruning")
		require.Equal(t, "true", agents[2][3], "Agent 2 prunes")

		games := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, games, 3)
	})

	t.Run("needs a search agent", func(t *testing.T) {
		cfg := smallConfig()
		cfg.Agents = cfg.Agents[1:]
		w, err := metrics.NewWriter(t.TempDir(), "pruning")
		require.NoError(t, err)
		require.Error(t, RunPruningExperiment(context.Background(), cfg, w))
	})
}

func TestNewAgent(t *testing.T) {
	t.Run("random agent", func(t *testing.T) {
		p, err := NewAgent(metrics.AgentConfig{Random: true, Seed: 3})
		require.NoError(t, err)
		require.IsType(t, &player.RandomPlayer{}, p)
	})

	t.Run("search agent", func(t *testing.T) {
		p, err := NewAgent(metrics.AgentConfig{Depth: 1, Mobility: 2})
		require.NoError(t, err)
		ai, ok := p.(*player.AIPlayer)
		require.True(t, ok)

		gs, _ := game.NewStandardGame(8, 8)
		_, err = ai.DecideMove(gs, gs.LegalMoves(game.Light))
		require.NoError(t, err)
		require.Equal(t, "2*mobility", ai.LastMetric().Heuristic)
	})

	t.Run("all weights zero", func(t *testing.T) {
		_, err := NewAgent(metrics.AgentConfig{Depth: 2})
		require.ErrorIs(t, err, game.ErrEmptyComposite)
	})
}
