package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tuanvumaihuynh/price-tracker/internal/model"
	"github.com/tuanvumaihuynh/price-tracker/internal/storage/db"
)

const productColumns = `id, title, input_link, country, input_price, best_price, best_price_link, status, created_at, updated_at`

type ListRecentProductsParams struct {
	Limit  int32
	Status *model.ProductStatus
}

type ProductRepository interface {
	WithDB(db db.DB) ProductRepository
	// CreateProduct inserts the product and returns it with its assigned id and timestamps.
	CreateProduct(ctx context.Context, product model.Product) (model.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error)
	// ListRecentProducts returns the newest products first.
	ListRecentProducts(ctx context.Context, params ListRecentProductsParams) ([]model.Product, error)
	ListProductsByStatus(ctx context.Context, status model.ProductStatus) ([]model.Product, error)
	// UpdateProductStatus sets the status; updated_at only moves when the status changes.
	UpdateProductStatus(ctx context.Context, id uuid.UUID, status model.ProductStatus) (model.Product, error)
	// UpdateProductBestPrice writes price and link in one statement, for active products only.
	UpdateProductBestPrice(ctx context.Context, id uuid.UUID, best model.BestPrice) (model.Product, error)
}

type productRepository struct {
	db db.DB
}

func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) WithDB(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) CreateProduct(ctx context.Context, product model.Product) (model.Product, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return model.Product{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	var (
		bestPrice     pgtype.Numeric
		bestPriceLink *string
	)
	if product.BestPrice != nil {
		bestPrice = decimalToNumeric(product.BestPrice.Price)
		bestPriceLink = &product.BestPrice.Link
	}

	status := product.Status
	if status == "" {
		status = model.ProductStatusActive
	}

	now := time.Now()
	row := r.db.QueryRow(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES (@id, @title, @input_link, @country, @input_price, @best_price, @best_price_link, @status, @now, @now)
		RETURNING `+productColumns,
		pgx.NamedArgs{
			"id":              id,
			"title":           product.Title,
			"input_link":      product.InputLink,
			"country":         product.Country,
			"input_price":     decimalToNumeric(product.InputPrice),
			"best_price":      bestPrice,
			"best_price_link": bestPriceLink,
			"status":          string(status),
			"now":             now,
		})

	created, err := scanProduct(row)
	if err != nil {
		return model.Product{}, fmt.Errorf("insert product: %w", err)
	}

	return created, nil
}

func (r productRepository) GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error) {
	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	product, err := scanProduct(row)
	if err != nil {
		return model.Product{}, fmt.Errorf("select product %s: %w", id, notFound(err))
	}

	return product, nil
}

func (r productRepository) ListRecentProducts(ctx context.Context, params ListRecentProductsParams) ([]model.Product, error) {
	var status *string
	if params.Status != nil {
		s := string(*params.Status)
		status = &s
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE @status::text IS NULL OR status = @status::text
		ORDER BY created_at DESC, id DESC
		LIMIT @limit`,
		pgx.NamedArgs{
			"status": status,
			"limit":  params.Limit,
		})
	if err != nil {
		return nil, fmt.Errorf("query recent products: %w", err)
	}

	products, err := collectProducts(rows)
	if err != nil {
		return nil, fmt.Errorf("collect recent products: %w", err)
	}

	return products, nil
}

func (r productRepository) ListProductsByStatus(ctx context.Context, status model.ProductStatus) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE status = $1
		ORDER BY created_at`,
		string(status))
	if err != nil {
		return nil, fmt.Errorf("query products by status: %w", err)
	}

	products, err := collectProducts(rows)
	if err != nil {
		return nil, fmt.Errorf("collect products by status: %w", err)
	}

	return products, nil
}

func (r productRepository) UpdateProductStatus(ctx context.Context, id uuid.UUID, status model.ProductStatus) (model.Product, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE products
		SET
			status     = @status,
			updated_at = CASE WHEN status = @status THEN updated_at ELSE NOW() END
		WHERE id = @id
		RETURNING `+productColumns,
		pgx.NamedArgs{
			"id":     id,
			"status": string(status),
		})

	product, err := scanProduct(row)
	if err != nil {
		return model.Product{}, fmt.Errorf("update product %s status: %w", id, notFound(err))
	}

	return product, nil
}

func (r productRepository) UpdateProductBestPrice(ctx context.Context, id uuid.UUID, best model.BestPrice) (model.Product, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE products
		SET
			best_price      = @best_price,
			best_price_link = @best_price_link,
			updated_at      = NOW()
		WHERE id = @id AND status = @status
		RETURNING `+productColumns,
		pgx.NamedArgs{
			"id":              id,
			"best_price":      decimalToNumeric(best.Price),
			"best_price_link": best.Link,
			"status":          string(model.ProductStatusActive),
		})

	product, err := scanProduct(row)
	if err != nil {
		return model.Product{}, fmt.Errorf("update product %s best price: %w", id, notFound(err))
	}

	return product, nil
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func collectProducts(rows pgx.Rows) ([]model.Product, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Product, error) {
		return scanProduct(row)
	})
}

func scanProduct(row pgx.Row) (model.Product, error) {
	var (
		p             model.Product
		inputPrice    pgtype.Numeric
		bestPrice     pgtype.Numeric
		bestPriceLink *string
		status        string
	)

	if err := row.Scan(
		&p.ID,
		&p.Title,
		&p.InputLink,
		&p.Country,
		&inputPrice,
		&bestPrice,
		&bestPriceLink,
		&status,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return model.Product{}, err
	}

	var err error
	if p.InputPrice, err = numericToDecimal(inputPrice); err != nil {
		return model.Product{}, fmt.Errorf("input price: %w", err)
	}

	if bestPrice.Valid && bestPriceLink != nil {
		price, err := numericToDecimal(bestPrice)
		if err != nil {
			return model.Product{}, fmt.Errorf("best price: %w", err)
		}
		p.BestPrice = &model.BestPrice{Price: price, Link: *bestPriceLink}
	}

	if p.Status, err = model.ParseProductStatus(status); err != nil {
		return model.Product{}, err
	}

	return p, nil
}
