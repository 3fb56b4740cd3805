package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/tuanvumaihuynh/price-tracker/internal/http/gen"
	"github.com/tuanvumaihuynh/price-tracker/internal/storage/db"
)

type healthHandler struct {
	logger *slog.Logger
	db     db.HealthChecker
}

func newHealthHandler(logger *slog.Logger, db db.HealthChecker) *healthHandler {
	return &healthHandler{
		logger: logger,
		db:     db,
	}
}

func (h *healthHandler) HealthCheck(ctx context.Context, _ gen.HealthCheckRequestObject) (gen.HealthCheckResponseObject, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if ok, err := h.db.IsHealthy(ctx); !ok {
		h.logger.WarnContext(ctx, "database is unhealthy", slog.Any("error", err))
		return gen.HealthCheck503JSONResponse{Status: gen.Degraded, Database: gen.Down}, nil
	}

	return gen.HealthCheck200JSONResponse{Status: gen.Ok, Database: gen.Up}, nil
}
