package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-table/internal/entity"
	"github.com/rocketscienceinc/tictactoe-table/internal/tictactoe"
	mockedUseCase "github.com/rocketscienceinc/tictactoe-table/mocks/usecase"
)

var errObserverDown = errors.New("observer down")

func newTable(t *testing.T) (TableUseCase, *mockedUseCase.MockObserver) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	observer := mockedUseCase.NewMockObserver(t)

	tableUseCase := NewTableUseCase(logger, tictactoe.NewGameController())
	tableUseCase.Subscribe(observer)

	return tableUseCase, observer
}

func TestTableUseCase_Place(t *testing.T) {
	ctx := context.Background()

	t.Run("Notifies observers after a successful placement", func(t *testing.T) {
		// Given: a fresh table with one observer
		tableUseCase, observer := newTable(t)

		observer.EXPECT().
			Notify(mock.Anything, mock.MatchedBy(func(view entity.View) bool {
				return view.Cells[4].Mark == entity.PlayerX && view.Next == entity.PlayerO
			})).
			Return(nil).
			Once()

		// When: X clicks the centre
		view := tableUseCase.Place(ctx, 4)

		// Then: the returned view shows the move
		assert.Equal(t, entity.PlayerX, view.Cells[4].Mark)
		assert.Equal(t, "Next: O", view.Status)
	})

	t.Run("Ignored clicks return the unchanged view without notifying", func(t *testing.T) {
		// Given: X has taken cell 0
		tableUseCase, observer := newTable(t)

		observer.EXPECT().Notify(mock.Anything, mock.Anything).Return(nil).Once()
		before := tableUseCase.Place(ctx, 0)

		// When: O clicks cell 0 and then an out of range cell
		afterOccupied := tableUseCase.Place(ctx, 0)
		afterInvalid := tableUseCase.Place(ctx, 42)

		// Then: nothing changed and the observer saw only the first move
		assert.Equal(t, before, afterOccupied)
		assert.Equal(t, before, afterInvalid)
		assert.Equal(t, entity.PlayerO, afterOccupied.Next)
	})

	t.Run("Observer errors do not fail the interaction", func(t *testing.T) {
		tableUseCase, observer := newTable(t)

		observer.EXPECT().Notify(mock.Anything, mock.Anything).Return(errObserverDown).Once()

		view := tableUseCase.Place(ctx, 8)

		assert.Equal(t, entity.PlayerX, view.Cells[8].Mark)
	})

	t.Run("A winning move is reported with the score", func(t *testing.T) {
		// Given: a fresh table
		tableUseCase, observer := newTable(t)

		observer.EXPECT().Notify(mock.Anything, mock.Anything).Return(nil).Times(5)

		// When: X 0, O 1, X 3, O 2, X 6
		var view entity.View
		for _, cell := range []int{0, 1, 3, 2, 6} {
			view = tableUseCase.Place(ctx, cell)
		}

		// Then: X won once
		assert.Equal(t, "Winner: X", view.Status)
		assert.Equal(t, entity.Scores{X: 1}, view.Scores)
		assert.Equal(t, &[3]int{0, 3, 6}, view.Line)

		// And: re-reading the state does not score again
		assert.Equal(t, entity.Scores{X: 1}, tableUseCase.State(ctx).Scores)
	})
}

func TestTableUseCase_NewRound(t *testing.T) {
	ctx := context.Background()

	// Given: a table where X has won
	tableUseCase, observer := newTable(t)
	observer.EXPECT().Notify(mock.Anything, mock.Anything).Return(nil).Times(6)

	for _, cell := range []int{0, 1, 3, 2, 6} {
		tableUseCase.Place(ctx, cell)
	}

	// When: a new round starts
	view := tableUseCase.NewRound(ctx)

	// Then: the board is cleared and the score survives
	for _, cell := range view.Cells {
		assert.Equal(t, entity.EmptyCell, cell.Mark)
		assert.False(t, cell.Winning)
	}
	assert.Equal(t, entity.PlayerX, view.Next)
	assert.Equal(t, entity.Scores{X: 1}, view.Scores)
	assert.Equal(t, 2, view.Round)
}

func TestTableUseCase_ResetScores(t *testing.T) {
	ctx := context.Background()

	// Given: a table where X has won
	tableUseCase, observer := newTable(t)
	observer.EXPECT().Notify(mock.Anything, mock.Anything).Return(nil).Times(6)

	for _, cell := range []int{0, 1, 3, 2, 6} {
		tableUseCase.Place(ctx, cell)
	}

	// When: scores are reset
	view := tableUseCase.ResetScores(ctx)

	// Then: scores are zero and the finished board is still shown
	assert.Equal(t, entity.Scores{}, view.Scores)
	assert.Equal(t, "Winner: X", view.Status)
}

func TestTableUseCase_ConcurrentClicks(t *testing.T) {
	ctx := context.Background()

	// Given: a fresh table
	tableUseCase, observer := newTable(t)
	observer.EXPECT().Notify(mock.Anything, mock.Anything).Return(nil).Maybe()

	// When: every cell is clicked many times from several goroutines
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for cell := range entity.BoardSize {
				tableUseCase.Place(ctx, cell)
			}
		}()
	}
	wg.Wait()

	// Then: the board is consistent and at most one mark has scored
	view := tableUseCase.State(ctx)
	require.True(t, view.Winner != entity.EmptyCell || view.Draw)
	assert.LessOrEqual(t, view.Scores.X+view.Scores.O, 1)
}
