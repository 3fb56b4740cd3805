package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/price-tracker/internal/model"
)

func (s *productService) DisableProduct(ctx context.Context, id uuid.UUID) (model.Product, error) {
	return s.setStatus(ctx, id, model.ProductStatusDisabled)
}

func (s *productService) EnableProduct(ctx context.Context, id uuid.UUID) (model.Product, error) {
	return s.setStatus(ctx, id, model.ProductStatusActive)
}

func (s *productService) setStatus(ctx context.Context, id uuid.UUID, status model.ProductStatus) (model.Product, error) {
	product, err := s.productRepo.UpdateProductStatus(ctx, id, status)
	if err != nil {
		return model.Product{}, productErr(fmt.Errorf("product repository update product status: %w", err))
	}

	s.logger.InfoContext(ctx, "product status set",
		slog.String("product_id", id.String()),
		slog.String("status", status.String()))

	return product, nil
}
