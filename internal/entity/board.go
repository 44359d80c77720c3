package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/cookiemilk-backend/internal/apperror"
)

const (
	Columns = 4
	Rows    = 4
	Size    = Columns * Rows

	noWinner = "No winner."
)

// winLines holds every line of four, in the order they are checked:
// both diagonals, rows from the top down, then columns left to right.
var winLines = [][Rows]int{
	{0, 5, 10, 15},
	{3, 6, 9, 12},

	{12, 13, 14, 15},
	{8, 9, 10, 11},
	{4, 5, 6, 7},
	{0, 1, 2, 3},

	{0, 4, 8, 12},
	{1, 5, 9, 13},
	{2, 6, 10, 14},
	{3, 7, 11, 15},
}

// BoolSource - yields the bits a random board is dealt from.
type BoolSource interface {
	Bool() bool
}

// Board is a 4x4 grid addressed by flat index, row 0 at the bottom.
// Column c owns indices c, c+4, c+8 and c+12. Board is a value type,
// so a copy is a snapshot.
type Board struct {
	cells    [Size]Tile
	winner   Tile
	finished bool
}

func NewBoard() Board {
	return Board{}
}

// NewRandomBoard - deals every cell from src in index order (true is Cookie, false is Milk)
// and settles the result. The returned board is always finished.
func NewRandomBoard(src BoolSource) Board {
	var board Board

	for i := range board.cells {
		if src.Bool() {
			board.cells[i] = Cookie
		} else {
			board.cells[i] = Milk
		}
	}

	board.CheckWinner()

	return board
}

// Place - drops tile into column (0-indexed); the token lands on the lowest empty cell.
func (that *Board) Place(tile Tile, column int) error {
	if column < 0 || column >= Columns {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidColumn, column)
	}

	if !tile.IsTeam() {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidTeam, tile)
	}

	if that.cells[topIndex(column)] != Empty {
		return apperror.ErrColumnFull
	}

	if that.finished {
		return apperror.ErrGameOver
	}

	for row := 0; row < Rows; row++ {
		idx := row*Columns + column
		if that.cells[idx] == Empty {
			that.cells[idx] = tile
			break
		}
	}

	that.CheckWinner()

	return nil
}

// CheckWinner - recomputes the outcome from scratch. The first complete line wins;
// a full board without a line is a draw.
func (that *Board) CheckWinner() {
	for _, line := range winLines {
		tile := that.cells[line[0]]
		if tile == Empty {
			continue
		}

		if tile == that.cells[line[1]] && tile == that.cells[line[2]] && tile == that.cells[line[3]] {
			that.winner = tile
			that.finished = true
			return
		}
	}

	if that.FilledCells() == Size {
		// an Empty winner marks a draw
		that.winner = Empty
		that.finished = true
	}
}

// Winner - returns the outcome; ok is false while the game is in progress.
// A finished game with an Empty winner is a draw.
func (that Board) Winner() (Tile, bool) {
	return that.winner, that.finished
}

func (that Board) IsOver() bool {
	return that.finished
}

func (that Board) Cells() [Size]Tile {
	return that.cells
}

func (that Board) Cell(idx int) Tile {
	return that.cells[idx]
}

func (that Board) FilledCells() int {
	filled := 0
	for _, cell := range that.cells {
		if cell != Empty {
			filled++
		}
	}

	return filled
}

// Render - returns the board lines, top row first, followed by the frame and the status line.
func (that Board) Render() []string {
	lines := make([]string, 0, Rows+2)

	for row := Rows - 1; row >= 0; row-- {
		var sb strings.Builder
		sb.WriteString(glyphFrame)
		for column := 0; column < Columns; column++ {
			sb.WriteString(that.cells[row*Columns+column].String())
		}
		sb.WriteString(glyphFrame)
		lines = append(lines, sb.String())
	}

	lines = append(lines, strings.Repeat(glyphFrame, Columns+2))

	if that.finished {
		if that.winner == Empty {
			lines = append(lines, noWinner)
		} else {
			lines = append(lines, that.winner.String()+" wins!")
		}
	}

	return lines
}

// String - renders the board as the response body, one newline-terminated line each.
func (that Board) String() string {
	return strings.Join(that.Render(), "\n") + "\n"
}

func topIndex(column int) int {
	return (Rows-1)*Columns + column
}
