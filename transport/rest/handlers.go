package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

type statsService interface {
	Stats(ctx context.Context) (*entity.ServerStats, error)
}

type handlers struct {
	logger *slog.Logger
	stats  statsService
}

func (that *handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// Stats - live room and connection counts, plus result totals when recorded.
func (that *handlers) Stats(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "Stats")

	stats, err := that.stats.Stats(r.Context())
	if err != nil {
		log.Error("failed to get stats", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(stats); err != nil {
		log.Error("failed to write stats", "error", err)
	}
}
