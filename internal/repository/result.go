package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

const (
	resultsKey      = "results"
	resultsStatsKey = "results:stats"
)

type ResultRepository interface {
	Save(ctx context.Context, result *entity.Result) error
	Recent(ctx context.Context, limit int64) ([]*entity.Result, error)
	Stats(ctx context.Context) (*entity.ResultStats, error)
}

type dbResult struct {
	client *redis.Client
	keep   int64
}

// NewResultRepository - keep bounds the list of recent results; totals are never trimmed.
func NewResultRepository(client *redis.Client, keep int64) ResultRepository {
	return &dbResult{
		client: client,
		keep:   keep,
	}
}

func (that *dbResult) Save(ctx context.Context, result *entity.Result) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not marshal result: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, resultsKey, resultJSON)
		if that.keep > 0 {
			pipe.LTrim(ctx, resultsKey, 0, that.keep-1)
		}
		pipe.HIncrBy(ctx, resultsStatsKey, string(result.Winner), 1)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	return nil
}

func (that *dbResult) Recent(ctx context.Context, limit int64) ([]*entity.Result, error) {
	if limit <= 0 {
		return []*entity.Result{}, nil
	}

	response, err := that.client.LRange(ctx, resultsKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get recent results: %w", err)
	}

	results := make([]*entity.Result, 0, len(response))
	for _, raw := range response {
		var result entity.Result
		if err = json.Unmarshal([]byte(raw), &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result: %w", err)
		}

		results = append(results, &result)
	}

	return results, nil
}

func (that *dbResult) Stats(ctx context.Context) (*entity.ResultStats, error) {
	response, err := that.client.HGetAll(ctx, resultsStatsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get result stats: %w", err)
	}

	var stats entity.ResultStats
	for winner, raw := range response {
		count, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s count: %w", winner, err)
		}

		switch entity.Mark(winner) {
		case entity.PlayerX:
			stats.X = count
		case entity.PlayerO:
			stats.O = count
		case entity.Draw:
			stats.Draw = count
		}
	}

	return &stats, nil
}
