package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

// WinCombos - the 3 rows, 3 columns and 2 diagonals of the row-major board.
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

// MakeTurn - places mark on cell and updates the winner and the turn of the room.
// The caller holds the room lock.
func MakeTurn(room *entity.Room, mark entity.Mark, cell int) error {
	if room.HasWinner() {
		return apperror.ErrGameFinished
	}

	if err := validateMove(room, mark, cell); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	room.Board[cell] = mark
	updateGameStatus(room, mark)

	return nil
}

// Evaluate - returns the mark owning a full triple, Draw for a full board without one,
// NoMark while the game goes on.
func Evaluate(board [9]entity.Mark) entity.Mark {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return a
		}
	}

	for _, cell := range board {
		if cell == entity.EmptyCell {
			return entity.NoMark
		}
	}

	return entity.Draw
}

// validateMove - checks if the move is valid.
func validateMove(room *entity.Room, mark entity.Mark, cell int) error {
	if cell < 0 || cell >= len(room.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if room.Turn == entity.NoMark || room.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if room.Board[cell] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}

// updateGameStatus - records the winner, or passes the turn when the game goes on.
func updateGameStatus(room *entity.Room, mark entity.Mark) {
	if winner := Evaluate(room.Board); winner != entity.NoMark {
		room.Winner = winner
		return
	}

	room.Turn = mark.Opponent()
}
