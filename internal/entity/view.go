package entity

import "fmt"

const (
	statusWinner = "Winner: %s"
	statusDraw   = "It's a draw!"
	statusNext   = "Next: %s"
)

// Scores - rounds won per mark.
type Scores struct {
	X int `json:"X"`
	O int `json:"O"`
}

func (that *Scores) Add(mark Mark) {
	switch mark {
	case PlayerX:
		that.X++
	case PlayerO:
		that.O++
	}
}

func (that Scores) Of(mark Mark) int {
	switch mark {
	case PlayerX:
		return that.X
	case PlayerO:
		return that.O
	default:
		return 0
	}
}

// Cell is a single square as the render surface shows it.
type Cell struct {
	Index   int    `json:"index"`
	Label   string `json:"label"`
	Mark    Mark   `json:"mark"`
	Winning bool   `json:"winning"`
}

// View - read-only projection of the table sent to clients and observers.
type View struct {
	Cells  [BoardSize]Cell `json:"cells"`
	Status string          `json:"status"`
	Winner Mark            `json:"winner"`
	Line   *[3]int         `json:"line"`
	Draw   bool            `json:"draw"`
	Next   Mark            `json:"next"`
	Scores Scores          `json:"scores"`
	Round  int             `json:"round"`
}

// CellLabel - accessible name of a cell, 1-based.
func CellLabel(cell int) string {
	return fmt.Sprintf("Square %d", cell+1)
}

// Status - "Winner: X", "It's a draw!" or "Next: O".
func Status(board Board, next Mark) string {
	outcome := board.Outcome()

	switch {
	case outcome.HasWinner():
		return fmt.Sprintf(statusWinner, outcome.Winner)
	case board.IsFull():
		return statusDraw
	default:
		return fmt.Sprintf(statusNext, next)
	}
}

func NewView(board Board, next Mark, scores Scores, round int) View {
	outcome := board.Outcome()

	view := View{
		Status: Status(board, next),
		Winner: outcome.Winner,
		Line:   outcome.Line,
		Draw:   !outcome.HasWinner() && board.IsFull(),
		Next:   next,
		Scores: scores,
		Round:  round,
	}

	for i, mark := range board {
		view.Cells[i] = Cell{
			Index:   i,
			Label:   CellLabel(i),
			Mark:    mark,
			Winning: outcome.InLine(i),
		}
	}

	return view
}
