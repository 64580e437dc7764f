package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"reversi/config"
	"reversi/experiments"
	"reversi/experiments/metrics"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "Path to a JSON config file (defaults to the XDG config dir)")
	experiment := flag.String("experiment", "series", "Experiment to run: series or pruning")
	games := flag.Int("games", 0, "Games per match-up, overrides the config")
	depth := flag.Int("depth", 0, "Search depth of every agent, overrides the config")
	verbose := flag.Bool("v", false, "Log every search")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *experiment != "series" && *experiment != "pruning" {
		log.Fatal().Msgf("unknown experiment %q", *experiment)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *games > 0 {
		cfg.Experiment.Games = *games
	}
	if *depth > 0 {
		for i := range cfg.Agents {
			cfg.Agents[i].Depth = *depth
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	writer, err := metrics.NewWriter(cfg.Experiment.ResultsDir, *experiment)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create experiment writer")
	}

	if *experiment == "pruning" {
		err = experiments.RunPruningExperiment(ctx, cfg, writer)
	} else {
		err = experiments.Run(ctx, cfg, writer)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s experiment failed", *experiment)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.InitConfig()
}
