package http

import (
	"context"
	"fmt"

	"github.com/tuanvumaihuynh/price-tracker/internal/http/gen"
	"github.com/tuanvumaihuynh/price-tracker/internal/service"
)

type repriceHandler struct {
	repriceSvc service.RepriceService
}

func newRepriceHandler(repriceSvc service.RepriceService) *repriceHandler {
	return &repriceHandler{
		repriceSvc: repriceSvc,
	}
}

func (h *repriceHandler) RepriceProducts(ctx context.Context, _ gen.RepriceProductsRequestObject) (gen.RepriceProductsResponseObject, error) {
	res, err := h.repriceSvc.RepriceAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("reprice service reprice all: %w", err)
	}

	return gen.RepriceProducts200JSONResponse{Updated: res.Updated}, nil
}
