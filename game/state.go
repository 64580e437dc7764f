package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"reversi/utils"
)

// Player is the per-color record kept by the game. Score is recounted from
// the board after every move.
type Player struct {
	Color Color
	Score int
}

// GameState owns the board, both player records, whose turn it is and
// whether the game has ended.
type GameState struct {
	board   *Board
	players [2]Player
	current int  // index into players of the side to move
	turn    int  // moves played so far, passes excluded
	over    bool // both sides out of moves
}

// NewGameState wraps a board with two players; first moves first.
func NewGameState(board *Board, first, second Color) (*GameState, error) {
	if board == nil {
		return nil, ErrNilBoard
	}
	if first == second {
		return nil, fmt.Errorf("%w: both players are %s", ErrDuplicateColor, first)
	}
	gs := &GameState{
		board: board,
		players: [2]Player{
			{Color: first},
			{Color: second},
		},
	}
	gs.recount()
	return gs, nil
}

// NewStandardGame sets up the canonical criss-cross start in the middle of
// a rows x columns board with Light to move.
func NewStandardGame(rows, columns int) (*GameState, error) {
	if rows < 2 || columns < 2 {
		return nil, fmt.Errorf("%w: standard start needs at least 2x2, got %dx%d", ErrInvalidDimension, rows, columns)
	}
	board, err := NewBoard(rows, columns)
	if err != nil {
		return nil, err
	}
	midRow, midColumn := rows/2, columns/2
	board.PlacePiece(midRow-1, midColumn-1, Light)
	board.PlacePiece(midRow, midColumn, Light)
	board.PlacePiece(midRow-1, midColumn, Dark)
	board.PlacePiece(midRow, midColumn-1, Dark)
	return NewGameState(board, Light, Dark)
}

// Copy returns an independent game state.
func (gs *GameState) Copy() *GameState {
	return &GameState{
		board:   gs.board.Copy(),
		players: gs.players, // Array of values
		current: gs.current,
		turn:    gs.turn,
		over:    gs.over,
	}
}

func (gs *GameState) CurrentPlayer() Player {
	return gs.players[gs.current]
}

func (gs *GameState) OpponentPlayer() Player {
	return gs.players[1-gs.current]
}

// PlayerOf returns the record of the player with the given color.
func (gs *GameState) PlayerOf(color Color) Player {
	if gs.players[0].Color == color {
		return gs.players[0]
	}
	return gs.players[1]
}

func (gs *GameState) Score(color Color) int {
	return gs.PlayerOf(color).Score
}

func (gs *GameState) LegalMoves(color Color) []Position {
	return LegalMoves(gs.board, color)
}

func (gs *GameState) PieceAt(row, column int) (Piece, bool) {
	return gs.board.PieceAt(row, column)
}

func (gs *GameState) Rows() int {
	return gs.board.Rows()
}

func (gs *GameState) Columns() int {
	return gs.board.Columns()
}

func (gs *GameState) Corners() []Position {
	return gs.board.Corners()
}

// Board exposes a copy of the board so callers cannot bypass Play.
func (gs *GameState) Board() *Board {
	return gs.board.Copy()
}

func (gs *GameState) IsGameOver() bool {
	return gs.over
}

// Turn returns the number of pieces placed through Play.
func (gs *GameState) Turn() int {
	return gs.turn
}

// Winner returns the color with the higher score once the game is over.
// A draw or an unfinished game has no winner.
func (gs *GameState) Winner() (Color, bool) {
	if !gs.over {
		return 0, false
	}
	a, b := gs.players[0], gs.players[1]
	switch {
	case a.Score > b.Score:
		return a.Color, true
	case b.Score > a.Score:
		return b.Color, true
	default:
		return 0, false
	}
}

// Play applies pos for the side to move. InvalidMove leaves the state
// untouched so the caller can retry with another position.
func (gs *GameState) Play(pos Position) Outcome {
	if gs.over {
		return GameFinished
	}
	current := gs.CurrentPlayer().Color
	moves := gs.LegalMoves(current)
	if len(moves) == 0 {
		return gs.Pass()
	}
	if !utils.Contains(moves, pos) {
		return InvalidMove
	}
	if !PerformMove(gs.board, pos, current) {
		panic(fmt.Sprintf("legal move %+v for %s was rejected by the board", pos, current))
	}
	gs.turn++
	gs.recount()
	gs.switchTurn()
	if len(gs.LegalMoves(gs.CurrentPlayer().Color)) == 0 && len(gs.LegalMoves(gs.OpponentPlayer().Color)) == 0 {
		gs.over = true
	}
	return PlayerPlayed
}

// Pass hands the turn to the opponent when the side to move is blocked, or
// ends the game when the opponent is blocked too.
func (gs *GameState) Pass() Outcome {
	if gs.over {
		return GameFinished
	}
	if len(gs.LegalMoves(gs.CurrentPlayer().Color)) > 0 {
		return InvalidMove
	}
	if len(gs.LegalMoves(gs.OpponentPlayer().Color)) == 0 {
		gs.over = true
		return GameFinished
	}
	gs.switchTurn()
	return SkippedTurn
}

func (gs *GameState) switchTurn() {
	gs.current = 1 - gs.current
}

func (gs *GameState) recount() {
	for i := range gs.players {
		gs.players[i].Score = gs.board.Count(gs.players[i].Color)
	}
}

// Hash fingerprints the board and the side to move.
func (gs *GameState) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(gs.CurrentPlayer().Color))

	for row := 0; row < gs.board.Rows(); row++ {
		for column := 0; column < gs.board.Columns(); column++ {
			cell := int8(-1)
			if p, ok := gs.board.PieceAt(row, column); ok {
				cell = int8(p.Color)
			}
			binary.Write(hasher, binary.LittleEndian, cell)
		}
	}

	return StateHash(hasher.Sum64())
}
