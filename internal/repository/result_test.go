package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/testing/suite"
)

func newResult(roomID string, winner entity.Mark) *entity.Result {
	return &entity.Result{
		RoomID:     roomID,
		Board:      [9]entity.Mark{winner, winner, winner},
		Winner:     winner,
		FinishedAt: time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestResultRepository_Save(t *testing.T) {
	ctx, st := suite.New(t)

	resultRepo := NewResultRepository(st.Redis, 10)

	// Given: a finished game
	result := newResult("1", entity.PlayerX)

	// When: Save is called
	err := resultRepo.Save(ctx, result)

	// Then: no error should be returned, and the result is listed
	require.NoError(t, err)

	recent, err := resultRepo.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, result, recent[0])
}

func TestResultRepository_Recent(t *testing.T) {
	t.Run("Newest first and trimmed", func(t *testing.T) {
		ctx, st := suite.New(t)

		resultRepo := NewResultRepository(st.Redis, 2)

		// Given: three results saved with a limit of two
		require.NoError(t, resultRepo.Save(ctx, newResult("1", entity.PlayerX)))
		require.NoError(t, resultRepo.Save(ctx, newResult("2", entity.PlayerO)))
		require.NoError(t, resultRepo.Save(ctx, newResult("3", entity.Draw)))

		// When: Recent is called
		recent, err := resultRepo.Recent(ctx, 10)

		// Then: only the two newest are kept, newest first
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, "3", recent[0].RoomID)
		assert.Equal(t, "2", recent[1].RoomID)
	})

	t.Run("Empty store", func(t *testing.T) {
		ctx, st := suite.New(t)

		resultRepo := NewResultRepository(st.Redis, 10)

		// When: Recent is called on an empty store
		recent, err := resultRepo.Recent(ctx, 10)

		// Then: an empty list is returned
		require.NoError(t, err)
		assert.Empty(t, recent)
	})
}

func TestResultRepository_Stats(t *testing.T) {
	ctx, st := suite.New(t)

	resultRepo := NewResultRepository(st.Redis, 1)

	// Given: results of every kind, more than the list keeps
	require.NoError(t, resultRepo.Save(ctx, newResult("1", entity.PlayerX)))
	require.NoError(t, resultRepo.Save(ctx, newResult("2", entity.PlayerX)))
	require.NoError(t, resultRepo.Save(ctx, newResult("3", entity.PlayerO)))
	require.NoError(t, resultRepo.Save(ctx, newResult("4", entity.Draw)))

	// When: Stats is called
	stats, err := resultRepo.Stats(ctx)

	// Then: totals count every saved result
	require.NoError(t, err)
	assert.Equal(t, &entity.ResultStats{X: 2, O: 1, Draw: 1}, stats)
}
