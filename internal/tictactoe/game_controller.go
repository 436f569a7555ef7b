package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-table/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-table/internal/entity"
)

// GameController - owns the board, the turn flag and the score tally.
// It is not safe for concurrent use.
type GameController struct {
	board  entity.Board
	turn   entity.Mark
	scores entity.Scores
	round  int
}

func NewGameController() *GameController {
	return &GameController{
		turn:  entity.PlayerX,
		round: 1,
	}
}

// Place - puts the current mark into cell. A non-nil error means the click
// was ignored and nothing changed.
func (that *GameController) Place(cell int) error {
	if err := that.validateMove(cell); err != nil {
		return fmt.Errorf("ignored placement: %w", err)
	}

	that.board[cell] = that.turn
	that.turn = that.turn.Opponent()

	// the board was undecided before this move, so a winner now is a new one
	if outcome := that.board.Outcome(); outcome.HasWinner() {
		that.scores.Add(outcome.Winner)
	}

	return nil
}

// validateMove - checks if the move is valid.
func (that *GameController) validateMove(cell int) error {
	if !entity.ValidCell(cell) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that.board.IsDecided() {
		return apperror.ErrGameFinished
	}

	if that.board[cell] != entity.EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	return nil
}

// NewRound - clears the board and gives the first move to X. Scores are kept.
func (that *GameController) NewRound() {
	that.board = entity.Board{}
	that.turn = entity.PlayerX
	that.round++
}

func (that *GameController) ResetScores() {
	that.scores = entity.Scores{}
}

func (that *GameController) Board() entity.Board {
	return that.board
}

func (that *GameController) Turn() entity.Mark {
	return that.turn
}

func (that *GameController) Scores() entity.Scores {
	return that.scores
}

func (that *GameController) Round() int {
	return that.round
}

func (that *GameController) Outcome() entity.Outcome {
	return that.board.Outcome()
}

func (that *GameController) IsDraw() bool {
	return that.board.IsDraw()
}

func (that *GameController) Status() string {
	return entity.Status(that.board, that.turn)
}

func (that *GameController) View() entity.View {
	return entity.NewView(that.board, that.turn, that.scores, that.round)
}
