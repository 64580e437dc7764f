package game

type direction struct {
	dRow    int
	dColumn int
}

// Compass offsets, clockwise from north-west.
var directions = [8]direction{
	{-1, -1}, {-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1},
}

// run walks outward from pos and returns the opponent pieces that would be
// sandwiched in that direction, or nil when the direction does not capture.
func run(b *Board, pos Position, color Color, d direction) []Position {
	var captured []Position
	row, column := pos.Row+d.dRow, pos.Column+d.dColumn
	for b.InBounds(row, column) {
		piece, ok := b.PieceAt(row, column)
		if !ok {
			return nil
		}
		if piece.Color == color {
			// Own piece right next to the target is not a sandwich
			return captured
		}
		captured = append(captured, Position{Row: row, Column: column})
		row += d.dRow
		column += d.dColumn
	}
	// Ran off the board without an anchor
	return nil
}

// IsLegal reports whether color may place a piece on pos.
func IsLegal(b *Board, pos Position, color Color) bool {
	if _, occupied := b.PieceAt(pos.Row, pos.Column); occupied || !b.InBounds(pos.Row, pos.Column) {
		return false
	}
	for _, d := range directions {
		if len(run(b, pos, color, d)) > 0 {
			return true
		}
	}
	return false
}

// Captures lists every piece that placing color on pos would flip, grouped
// by direction in compass order.
func Captures(b *Board, pos Position, color Color) []Position {
	if _, occupied := b.PieceAt(pos.Row, pos.Column); occupied || !b.InBounds(pos.Row, pos.Column) {
		return nil
	}
	var flips []Position
	for _, d := range directions {
		flips = append(flips, run(b, pos, color, d)...)
	}
	return flips
}

// PerformMove places color on pos and flips every captured run. Nothing
// changes and false is returned when the cell is taken or no direction
// captures.
func PerformMove(b *Board, pos Position, color Color) bool {
	flips := Captures(b, pos, color)
	if len(flips) == 0 {
		return false
	}
	for _, f := range flips {
		b.Flip(f.Row, f.Column)
	}
	return b.PlacePiece(pos.Row, pos.Column, color)
}

// LegalMoves enumerates legal cells for color in row-major order.
func LegalMoves(b *Board, color Color) []Position {
	var moves []Position
	for row := 0; row < b.Rows(); row++ {
		for column := 0; column < b.Columns(); column++ {
			pos := Position{Row: row, Column: column}
			if IsLegal(b, pos, color) {
				moves = append(moves, pos)
			}
		}
	}
	return moves
}
