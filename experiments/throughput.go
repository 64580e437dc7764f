package experiments

import (
	"context"
	"fmt"
	"reversi/config"
	"reversi/experiments/metrics"
)

// RunPruningExperiment pits plain minimax against alpha-beta with otherwise
// identical agents. Both choose moves of equal value, so the interesting
// columns are nodes, cutoffs and duration in the move records.
func RunPruningExperiment(ctx context.Context, cfg *config.Config, writer *metrics.Writer) error {
	if len(cfg.Agents) == 0 {
		return fmt.Errorf("pruning experiment needs an agent to copy")
	}
	base := cfg.Agents[0]
	if base.Random {
		return fmt.Errorf("pruning experiment needs a search agent, agent %d plays randomly", base.ID)
	}

	plain := base
	plain.ID = 1
	plain.Pruning = false

	pruned := base
	pruned.ID = 2
	pruned.Pruning = true

	configs := []metrics.AgentConfig{plain, pruned}
	matchUps := [][]metrics.AgentConfig{
		{plain, pruned},
		{pruned, plain},
	}
	return runExperiment(ctx, "pruning", cfg, configs, matchUps, writer)
}
