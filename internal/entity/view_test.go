package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	t.Run("Names the next mark while undecided", func(t *testing.T) {
		assert.Equal(t, "Next: O", Status(Board{PlayerX}, PlayerO))
	})

	t.Run("Names the winner", func(t *testing.T) {
		board := Board{PlayerO, PlayerO, PlayerO, PlayerX, PlayerX}
		assert.Equal(t, "Winner: O", Status(board, PlayerX))
	})

	t.Run("Reports a draw", func(t *testing.T) {
		board := Board{
			PlayerX, PlayerO, PlayerO,
			PlayerO, PlayerX, PlayerX,
			PlayerO, PlayerX, PlayerO,
		}
		assert.Equal(t, "It's a draw!", Status(board, PlayerO))
	})
}

func TestNewView(t *testing.T) {
	// Given: X has won on the first column
	board := Board{
		PlayerX, PlayerO, PlayerO,
		PlayerX, EmptyCell, EmptyCell,
		PlayerX, EmptyCell, EmptyCell,
	}

	// When: projecting the view
	view := NewView(board, PlayerO, Scores{X: 1}, 1)

	// Then: cells are labelled 1-based and the line is flagged
	for i, cell := range view.Cells {
		assert.Equal(t, i, cell.Index)
		assert.Equal(t, CellLabel(i), cell.Label)
		assert.Equal(t, board[i], cell.Mark)
	}

	assert.Equal(t, "Square 1", view.Cells[0].Label)
	assert.Equal(t, "Square 9", view.Cells[8].Label)

	assert.True(t, view.Cells[0].Winning)
	assert.True(t, view.Cells[3].Winning)
	assert.True(t, view.Cells[6].Winning)
	assert.False(t, view.Cells[1].Winning)
	assert.False(t, view.Cells[2].Winning)

	assert.Equal(t, "Winner: X", view.Status)
	assert.Equal(t, PlayerX, view.Winner)
	assert.False(t, view.Draw)
	assert.Equal(t, 1, view.Scores.X)
}

func TestScores(t *testing.T) {
	var scores Scores

	scores.Add(PlayerX)
	scores.Add(PlayerO)
	scores.Add(PlayerO)
	scores.Add(EmptyCell)

	assert.Equal(t, Scores{X: 1, O: 2}, scores)
	assert.Equal(t, 2, scores.Of(PlayerO))
	assert.Equal(t, 0, scores.Of(EmptyCell))
}
