package experiments

import (
	"context"
	"fmt"
	"reversi/config"
	"reversi/engine"
	"reversi/experiments/metrics"
	"reversi/game"
	"reversi/player"
	"reversi/searcher"

	"github.com/rs/zerolog/log"
)

// Run plays every match-up of the config and stores the results through
// writer.
func Run(ctx context.Context, cfg *config.Config, writer *metrics.Writer) error {
	matchUps := make([][]metrics.AgentConfig, 0, len(cfg.Experiment.MatchUps))
	for _, m := range cfg.Experiment.MatchUps {
		a1, ok1 := cfg.Agent(m[0])
		a2, ok2 := cfg.Agent(m[1])
		if !ok1 || !ok2 {
			return fmt.Errorf("match-up %v references an unknown agent", m)
		}
		matchUps = append(matchUps, []metrics.AgentConfig{a1, a2})
	}
	return runExperiment(ctx, cfg.Experiment.Name, cfg, cfg.Agents, matchUps, writer)
}

func runExperiment(ctx context.Context, name string, cfg *config.Config, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig, writer *metrics.Writer) error {
	// Run a number of games for each matchup
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	games := cfg.Experiment.Games

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		config1 := matchup[0]
		config2 := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		for i := 0; i < games; i++ {
			log.Info().Msgf("starting matchup %d of %d game %d of %d...", mi+1, len(matchUps), i+1, games)

			// Offset seeds per game so repeated games are not identical replays
			winner, gameMetric, moveMetrics, err := runGame(ctx, cfg.Board, reseed(config1, i), reseed(config2, i))
			if err != nil {
				return fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %q", mi+1, len(matchUps), i+1, winner)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", name)

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return nil
}

// runGame plays a single game, agent1 as Light and agent2 as Dark.
func runGame(ctx context.Context, board config.BoardConfig, config1, config2 metrics.AgentConfig) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	light, err := NewAgent(config1)
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}
	dark, err := NewAgent(config2)
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}
	state, err := game.NewStandardGame(board.Rows, board.Columns)
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}
	e, err := engine.NewLocal(state, map[game.Color]player.Player{
		game.Light: light,
		game.Dark:  dark,
	})
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}

	return e.Run(ctx)
}

// NewAgent builds the player described by an agent config.
func NewAgent(config metrics.AgentConfig) (player.Player, error) {
	if config.Random {
		return player.NewRandomPlayer(config.Seed), nil
	}

	composite := game.NewComposite()
	weighted := []struct {
		heuristic game.Heuristic
		weight    float64
	}{
		{game.ScoreDifferential{}, config.Score},
		{game.MobilityDifferential{}, config.Mobility},
		{game.CornersCaptured{}, config.Corners},
	}
	for _, w := range weighted {
		if w.weight == 0 { // Unused heuristic
			continue
		}
		if _, err := composite.Add(w.heuristic, w.weight); err != nil {
			return nil, err
		}
	}

	options := []searcher.Option{searcher.WithSeed(config.Seed)}
	if config.Pruning {
		options = append(options, searcher.WithAlphaBeta())
	}
	return player.NewAIPlayer(composite, config.Depth, options...)
}

func reseed(config metrics.AgentConfig, index int) metrics.AgentConfig {
	config.Seed += uint64(index)
	return config
}
