// meta/meta.go
package meta

// BOARD_ROWS and BOARD_COLUMNS give the standard Othello board.
const BOARD_ROWS = 8
const BOARD_COLUMNS = 8

// DEPTH is the default search horizon in plies.
const DEPTH = 3

// GAMES is the number of games played per match-up.
const GAMES = 100

// Weights of the default composite heuristic.
const (
	SCORE_WEIGHT    = 10.0
	MOBILITY_WEIGHT = 78.922
	CORNERS_WEIGHT  = 801.724
)

// RESULTS_DIR is where experiment CSV files are written.
const RESULTS_DIR = "experiments"
