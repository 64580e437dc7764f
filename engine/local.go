package engine

import (
	"context"
	"errors"
	"fmt"
	"reversi/experiments/metrics"
	"reversi/game"
	"reversi/player"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	ErrNilState       = errors.New("engine requires a game state")
	ErrMissingPlayer  = errors.New("both colors need a player")
	ErrTooManyRetries = errors.New("player kept choosing illegal moves")
)

// searchReporter is implemented by players that search and keep metrics.
type searchReporter interface {
	LastMetric() metrics.SearchMetric
}

var _ Engine = (*Local)(nil)

// Local drives a game between two in-process players.
type Local struct {
	State   *game.GameState
	players map[game.Color]player.Player
	step    int
	moves   []metrics.MoveMetric
}

func NewLocal(state *game.GameState, players map[game.Color]player.Player) (*Local, error) {
	if state == nil {
		return nil, ErrNilState
	}
	for _, color := range []game.Color{game.Light, game.Dark} {
		if players[color] == nil {
			return nil, fmt.Errorf("%w: %s is unbound", ErrMissingPlayer, color)
		}
	}
	return &Local{
		State:   state,
		players: players,
	}, nil
}

// PlayTurn lets the player bound to the side to move decide and plays its
// move. A blocked side passes without being asked. Illegal choices are
// retried up to MaxRetries times.
func (e *Local) PlayTurn() (game.Outcome, error) {
	if e.State.IsGameOver() {
		return game.GameFinished, nil
	}

	current := e.State.CurrentPlayer().Color
	legal := e.State.LegalMoves(current)
	if len(legal) == 0 {
		outcome := e.State.Pass()
		if outcome == game.SkippedTurn {
			log.Debug().Msgf("%s has no legal move and passes", current)
			e.record(current, game.Position{}, true, nil)
		}
		return outcome, nil
	}

	p := e.players[current]
	for attempt := 1; attempt <= MaxRetries; attempt++ {
		move, err := p.DecideMove(e.State, legal)
		if err != nil {
			return game.InvalidMove, fmt.Errorf("%s failed to decide a move: %w", current, err)
		}

		outcome := e.State.Play(move)
		if outcome == game.InvalidMove {
			log.Warn().Msgf("%s chose illegal move %+v (attempt %d of %d)", current, move, attempt, MaxRetries)
			continue
		}
		e.record(current, move, false, p)
		return outcome, nil
	}
	return game.InvalidMove, fmt.Errorf("%w: %s", ErrTooManyRetries, current)
}

func (e *Local) record(color game.Color, move game.Position, pass bool, p player.Player) {
	e.step++
	mm := metrics.MoveMetric{
		Step:   e.step,
		Player: color,
		Move:   move,
		Pass:   pass,
		Hash:   e.State.Hash(),
	}
	if reporter, ok := p.(searchReporter); ok {
		mm.SearchMetric = reporter.LastMetric()
	}
	e.moves = append(e.moves, mm)
}

// Run executes the game loop until the game is over or MaxTurns is reached.
func (e *Local) Run(ctx context.Context) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.State.CurrentPlayer().Color,
		StartTime:      time.Now(),
	}
	log.Info().Msgf("%s is starting", gameMetric.StartingPlayer)

	for turn := 1; !e.State.IsGameOver() && turn <= MaxTurns; turn++ {
		if err := ctx.Err(); err != nil {
			return "", gameMetric, e.moves, err
		}
		if _, err := e.PlayTurn(); err != nil {
			return "", gameMetric, e.moves, err
		}
	}

	winner := ""
	if color, ok := e.State.Winner(); ok {
		winner = color.String()
	}
	if !e.State.IsGameOver() {
		log.Warn().Msgf("stopped after %d turns without finishing", MaxTurns)
	}

	gameMetric.Winner = winner
	gameMetric.LightScore = e.State.Score(game.Light)
	gameMetric.DarkScore = e.State.Score(game.Dark)
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = e.State.Turn()

	log.Info().Msgf("game over: light=%d dark=%d winner=%q", gameMetric.LightScore, gameMetric.DarkScore, winner)
	return winner, gameMetric, e.moves, nil
}
