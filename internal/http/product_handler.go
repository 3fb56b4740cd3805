package http

import (
	"context"
	"fmt"

	"github.com/tuanvumaihuynh/price-tracker/internal/http/gen"
	"github.com/tuanvumaihuynh/price-tracker/internal/model"
	"github.com/tuanvumaihuynh/price-tracker/internal/service"
)

type productHandler struct {
	productSvc service.ProductService
}

func newProductHandler(productSvc service.ProductService) *productHandler {
	return &productHandler{
		productSvc: productSvc,
	}
}

func (h *productHandler) ListProducts(ctx context.Context, request gen.ListProductsRequestObject) (gen.ListProductsResponseObject, error) {
	params := service.ListProductsParams{}
	if request.Params.Status != nil {
		status := model.ProductStatus(*request.Params.Status)
		params.Status = &status
	}
	if request.Params.Limit != nil {
		params.Limit = *request.Params.Limit
	}

	products, err := h.productSvc.ListProducts(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("product service list products: %w", err)
	}

	items := make([]gen.ProductResponse, 0, len(products))
	for _, product := range products {
		items = append(items, toProductResponse(product))
	}

	return gen.ListProducts200JSONResponse(items), nil
}

func (h *productHandler) CreateProduct(ctx context.Context, request gen.CreateProductRequestObject) (gen.CreateProductResponseObject, error) {
	params := service.CreateProductParams{
		Link:    request.Body.Link,
		Country: request.Body.Country,
		Title:   request.Body.Title,
	}
	product, err := h.productSvc.CreateProduct(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("product service create product: %w", err)
	}

	return gen.CreateProduct201JSONResponse(toProductResponse(product)), nil
}

func (h *productHandler) GetProduct(ctx context.Context, request gen.GetProductRequestObject) (gen.GetProductResponseObject, error) {
	product, err := h.productSvc.GetProduct(ctx, request.ProductId)
	if err != nil {
		return nil, fmt.Errorf("product service get product: %w", err)
	}

	return gen.GetProduct200JSONResponse(toProductResponse(product)), nil
}

func (h *productHandler) DisableProduct(ctx context.Context, request gen.DisableProductRequestObject) (gen.DisableProductResponseObject, error) {
	product, err := h.productSvc.DisableProduct(ctx, request.ProductId)
	if err != nil {
		return nil, fmt.Errorf("product service disable product: %w", err)
	}

	return gen.DisableProduct200JSONResponse(toProductResponse(product)), nil
}

func (h *productHandler) EnableProduct(ctx context.Context, request gen.EnableProductRequestObject) (gen.EnableProductResponseObject, error) {
	product, err := h.productSvc.EnableProduct(ctx, request.ProductId)
	if err != nil {
		return nil, fmt.Errorf("product service enable product: %w", err)
	}

	return gen.EnableProduct200JSONResponse(toProductResponse(product)), nil
}

func toProductResponse(p model.Product) gen.ProductResponse {
	res := gen.ProductResponse{
		Id:         p.ID,
		Title:      p.Title,
		InputLink:  p.InputLink,
		Country:    p.Country,
		InputPrice: p.InputPrice,
		Status:     gen.ProductStatus(p.Status),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	if p.BestPrice != nil {
		price, link := p.BestPrice.Price, p.BestPrice.Link
		res.BestPrice = &price
		res.BestPriceLink = &link
	}
	return res
}
