package game

import "errors"

// Color identifies the side owning a piece.
type Color int

const (
	Light Color = iota
	Dark
)

func (c Color) Opponent() Color {
	if c == Light {
		return Dark
	}
	return Light
}

func (c Color) String() string {
	switch c {
	case Light:
		return "Light"
	case Dark:
		return "Dark"
	default:
		return "Unknown"
	}
}

// Position is a (row, column) cell on the board.
type Position struct {
	Row    int
	Column int
}

// Outcome reports what a call to Play did to the game.
type Outcome int

const (
	PlayerPlayed Outcome = iota
	InvalidMove
	SkippedTurn
	GameFinished
)

func (o Outcome) String() string {
	switch o {
	case PlayerPlayed:
		return "PlayerPlayed"
	case InvalidMove:
		return "InvalidMove"
	case SkippedTurn:
		return "SkippedTurn"
	case GameFinished:
		return "GameFinished"
	default:
		return "Unknown"
	}
}

type StateHash uint64

var (
	ErrInvalidDimension = errors.New("board dimensions must be positive")
	ErrNilBoard         = errors.New("game state requires a board")
	ErrDuplicateColor   = errors.New("players must have distinct colors")
	ErrInvalidWeight    = errors.New("heuristic weight cannot be 0")
	ErrNilHeuristic     = errors.New("heuristic cannot be nil")
	ErrEmptyComposite   = errors.New("composite heuristic has no heuristics to evaluate")
)
