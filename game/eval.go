package game

// Heuristic scores a position from the point of view of the side to move.
// Scores are roughly within [-100, 100]; positive favors the side to move.
type Heuristic interface {
	Evaluate(gs *GameState) float64
}

// HeuristicFunc adapts a plain function to Heuristic.
type HeuristicFunc func(gs *GameState) float64

func (f HeuristicFunc) Evaluate(gs *GameState) float64 {
	return f(gs)
}

// ScoreDifferential compares piece counts.
type ScoreDifferential struct{}

func (ScoreDifferential) Evaluate(gs *GameState) float64 {
	return normalize(float64(gs.CurrentPlayer().Score), float64(gs.OpponentPlayer().Score))
}

func (ScoreDifferential) String() string { return "score" }

// MobilityDifferential compares the number of legal moves of each side.
type MobilityDifferential struct{}

func (MobilityDifferential) Evaluate(gs *GameState) float64 {
	mine := len(gs.LegalMoves(gs.CurrentPlayer().Color))
	theirs := len(gs.LegalMoves(gs.OpponentPlayer().Color))
	return normalize(float64(mine), float64(theirs))
}

func (MobilityDifferential) String() string { return "mobility" }

// CornersCaptured compares how many of the four corners each side holds.
type CornersCaptured struct{}

func (CornersCaptured) Evaluate(gs *GameState) float64 {
	me := gs.CurrentPlayer().Color
	var mine, theirs float64
	for _, corner := range gs.Corners() {
		p, ok := gs.PieceAt(corner.Row, corner.Column)
		if !ok {
			continue
		}
		if p.Color == me {
			mine++
		} else {
			theirs++
		}
	}
	return normalize(mine, theirs)
}

func (CornersCaptured) String() string { return "corners" }

// normalize maps two tallies to 100 * (value - otherValue) / (value + otherValue)
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return 100 * (value - otherValue) / total
}
