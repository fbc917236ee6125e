package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

const drainTimeout = 5 * time.Second

type ResultRecorder interface {
	Record(result *entity.Result)
}

type resultSaver interface {
	Save(ctx context.Context, result *entity.Result) error
}

// AsyncResultRecorder hands finished games to a background writer so the room
// path never waits on storage.
type AsyncResultRecorder struct {
	logger *slog.Logger
	repo   resultSaver
	queue  chan *entity.Result
}

func NewResultRecorder(logger *slog.Logger, repo resultSaver, size int) *AsyncResultRecorder {
	return &AsyncResultRecorder{
		logger: logger.With("component", "result_recorder"),
		repo:   repo,
		queue:  make(chan *entity.Result, size),
	}
}

// Record - enqueues result, dropping it when the queue is full.
func (that *AsyncResultRecorder) Record(result *entity.Result) {
	select {
	case that.queue <- result:
	default:
		that.logger.Warn("result queue is full, dropping result", "room", result.RoomID)
	}
}

// Run - saves queued results until ctx is done, then drains what is left.
func (that *AsyncResultRecorder) Run(ctx context.Context) {
	log := that.logger.With("method", "Run")

	for {
		select {
		case result := <-that.queue:
			that.save(ctx, log, result)
		case <-ctx.Done():
			that.drain(log)
			return
		}
	}
}

func (that *AsyncResultRecorder) drain(log *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	for {
		select {
		case result := <-that.queue:
			that.save(ctx, log, result)
		default:
			return
		}
	}
}

func (that *AsyncResultRecorder) save(ctx context.Context, log *slog.Logger, result *entity.Result) {
	if err := that.repo.Save(ctx, result); err != nil {
		log.Error("failed to save result", "room", result.RoomID, "error", err)
		return
	}

	log.Debug("result saved", "room", result.RoomID, "winner", result.Winner)
}

// NopRecorder discards results; used when no result store is configured.
type NopRecorder struct{}

func (NopRecorder) Record(*entity.Result) {}
