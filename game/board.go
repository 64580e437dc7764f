package game

import "fmt"

// Piece is a colored disc owned by the board cell holding it.
type Piece struct {
	Color Color
}

func (p *Piece) Flip() {
	p.Color = p.Color.Opponent()
}

// Board is a fixed rows x columns grid of optional pieces.
// Out-of-range coordinates are never an error: reads report an empty cell
// and writes report false.
type Board struct {
	rows    int
	columns int
	cells   [][]*Piece
}

func NewBoard(rows, columns int) (*Board, error) {
	if rows <= 0 || columns <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimension, rows, columns)
	}
	cells := make([][]*Piece, rows)
	for r := range cells {
		cells[r] = make([]*Piece, columns)
	}
	return &Board{rows: rows, columns: columns, cells: cells}, nil
}

func (b *Board) Rows() int {
	return b.rows
}

func (b *Board) Columns() int {
	return b.columns
}

func (b *Board) InBounds(row, column int) bool {
	return row >= 0 && row < b.rows && column >= 0 && column < b.columns
}

// PlacePiece puts a new piece of the given color on the cell, replacing
// whatever was there.
func (b *Board) PlacePiece(row, column int, color Color) bool {
	if !b.InBounds(row, column) {
		return false
	}
	b.cells[row][column] = &Piece{Color: color}
	return true
}

// PieceAt returns a copy of the piece on the cell and whether there is one.
func (b *Board) PieceAt(row, column int) (Piece, bool) {
	if !b.InBounds(row, column) {
		return Piece{}, false
	}
	p := b.cells[row][column]
	if p == nil {
		return Piece{}, false
	}
	return *p, true
}

func (b *Board) Flip(row, column int) bool {
	if !b.InBounds(row, column) {
		return false
	}
	p := b.cells[row][column]
	if p == nil {
		return false
	}
	p.Flip()
	return true
}

// Count tallies the pieces of a color.
func (b *Board) Count(color Color) int {
	count := 0
	for _, row := range b.cells {
		for _, p := range row {
			if p != nil && p.Color == color {
				count++
			}
		}
	}
	return count
}

// Corners lists the four corner cells, clockwise from the top left.
func (b *Board) Corners() []Position {
	return []Position{
		{Row: 0, Column: 0},
		{Row: 0, Column: b.columns - 1},
		{Row: b.rows - 1, Column: b.columns - 1},
		{Row: b.rows - 1, Column: 0},
	}
}

// Copy returns a deep clone; no piece is shared with the original.
func (b *Board) Copy() *Board {
	cells := make([][]*Piece, b.rows)
	for r, row := range b.cells {
		cells[r] = make([]*Piece, b.columns)
		for c, p := range row {
			if p != nil {
				pieceCopy := *p
				cells[r][c] = &pieceCopy
			}
		}
	}
	return &Board{rows: b.rows, columns: b.columns, cells: cells}
}
