package service

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

type roomCounter interface {
	Len() int
}

const recentResultsLimit = 10

type resultStats interface {
	Stats(ctx context.Context) (*entity.ResultStats, error)
	Recent(ctx context.Context, limit int64) ([]*entity.Result, error)
}

type StatsService struct {
	rooms   roomCounter
	conns   *Connections
	results resultStats
}

// NewStatsService - results may be nil when no result store is configured.
func NewStatsService(rooms roomCounter, conns *Connections, results resultStats) *StatsService {
	return &StatsService{
		rooms:   rooms,
		conns:   conns,
		results: results,
	}
}

func (that *StatsService) Stats(ctx context.Context) (*entity.ServerStats, error) {
	stats := &entity.ServerStats{
		Rooms:       that.rooms.Len(),
		Connections: that.conns.Len(),
	}

	if that.results == nil {
		return stats, nil
	}

	results, err := that.results.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get result stats: %w", err)
	}
	stats.Results = results

	recent, err := that.results.Recent(ctx, recentResultsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent results: %w", err)
	}
	stats.Recent = recent

	return stats, nil
}
