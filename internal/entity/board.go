package entity

type Mark string

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

// BoardSize - number of cells on the board, row-major 3x3.
const BoardSize = 9

// WinCombos - rows, columns and diagonals, in the order they are checked.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

type Board [BoardSize]Mark

// Outcome - result derived from a board. Line is nil while there is no winner.
type Outcome struct {
	Winner Mark    `json:"winner"`
	Line   *[3]int `json:"line"`
}

// HasWinner reports whether a triple is complete.
func (that Outcome) HasWinner() bool {
	return that.Winner != EmptyCell
}

// InLine reports whether the cell belongs to the winning triple.
func (that Outcome) InLine(cell int) bool {
	if that.Line == nil {
		return false
	}

	for _, idx := range that.Line {
		if idx == cell {
			return true
		}
	}

	return false
}

// Outcome - returns the first complete triple in WinCombos order.
func (that Board) Outcome() Outcome {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != EmptyCell && a == b && b == c {
			line := combo
			return Outcome{Winner: a, Line: &line}
		}
	}

	return Outcome{Winner: EmptyCell}
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// IsDraw - all cells are filled and nobody has three in a row.
func (that Board) IsDraw() bool {
	return !that.Outcome().HasWinner() && that.IsFull()
}

// IsDecided - the round is over, either won or drawn.
func (that Board) IsDecided() bool {
	return that.Outcome().HasWinner() || that.IsFull()
}

func ValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}

func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}
