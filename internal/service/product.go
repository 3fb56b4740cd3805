package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/price-tracker/internal/agent"
	"github.com/tuanvumaihuynh/price-tracker/internal/apperr"
	"github.com/tuanvumaihuynh/price-tracker/internal/event"
	"github.com/tuanvumaihuynh/price-tracker/internal/model"
	"github.com/tuanvumaihuynh/price-tracker/internal/repository"
	"github.com/tuanvumaihuynh/price-tracker/internal/storage/db"
	"github.com/tuanvumaihuynh/price-tracker/pkg/validator"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

type CreateProductParams struct {
	// Link is passed to the agent as given; scheme-less links are accepted.
	Link    string `validate:"required,notblank"`
	Country string `validate:"required,notblank,max=10"`
	// Title skips title extraction when set. A blank title counts as unset.
	Title *string
}

type ListProductsParams struct {
	Status *model.ProductStatus `validate:"omitempty,enum"`
	// Limit defaults to DefaultListLimit when zero.
	Limit int32 `validate:"omitempty,min=1,max=500"`
}

type ProductService interface {
	// CreateProduct starts tracking the product behind a link. Nothing is
	// stored unless the extraction agent resolves every missing field.
	CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error)
	ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error)
	// DisableProduct stops repricing the product. Disabling twice is a no-op.
	DisableProduct(ctx context.Context, id uuid.UUID) (model.Product, error)
	// EnableProduct resumes repricing the product. Enabling twice is a no-op.
	EnableProduct(ctx context.Context, id uuid.UUID) (model.Product, error)
}

type productService struct {
	logger        *slog.Logger
	validator     validator.Validator
	db            db.DB
	agent         agent.Agent
	productRepo   repository.ProductRepository
	outboxMsgRepo repository.OutboxMsgRepository
}

func NewProductService(
	logger *slog.Logger,
	validator validator.Validator,
	db db.DB,
	agent agent.Agent,
	productRepo repository.ProductRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) ProductService {
	return &productService{
		logger:        logger.With(slog.String("service", "product")),
		validator:     validator,
		db:            db,
		agent:         agent,
		productRepo:   productRepo,
		outboxMsgRepo: outboxMsgRepo,
	}
}

func (s *productService) CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error) {
	if err := s.validator.Validate(params); err != nil {
		return model.Product{}, apperr.ValidationErr.WrapParent(err)
	}

	title, price, err := s.resolveTitleAndPrice(ctx, params)
	if err != nil {
		return model.Product{}, err
	}

	var created model.Product
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		created, err = s.productRepo.
			WithDB(db).
			CreateProduct(ctx, model.Product{
				Title:      title,
				InputLink:  params.Link,
				Country:    params.Country,
				InputPrice: price,
				Status:     model.ProductStatusActive,
			})
		if err != nil {
			return fmt.Errorf("product repository create product: %w", err)
		}

		return createOutboxMsg(ctx, s.outboxMsgRepo.WithDB(db), event.TopicProductTracked, created.ID, event.NewProductTrackedEvent(created))
	}); err != nil {
		return model.Product{}, storeErr(fmt.Errorf("db with tx: %w", err))
	}

	s.logger.InfoContext(ctx, "product tracked",
		slog.String("product_id", created.ID.String()),
		slog.Bool("title_extracted", !hasTitle(params.Title)))

	return created, nil
}

// resolveTitleAndPrice asks the agent for the title and price, or only for the
// price when the caller supplied a title.
func (s *productService) resolveTitleAndPrice(ctx context.Context, params CreateProductParams) (string, decimal.Decimal, error) {
	if hasTitle(params.Title) {
		price, err := s.agent.ExtractPrice(ctx, params.Link)
		if err != nil {
			return "", decimal.Decimal{}, apperr.ExtractionFailureErr.WrapParent(fmt.Errorf("extract price: %w", err))
		}
		price, err = model.NormalizePrice(price)
		if err != nil {
			return "", decimal.Decimal{}, apperr.ExtractionFailureErr.WrapParent(err)
		}
		return *params.Title, price, nil
	}

	info, err := s.agent.ExtractTitleAndPrice(ctx, params.Link)
	if err != nil {
		return "", decimal.Decimal{}, apperr.ExtractionFailureErr.WrapParent(fmt.Errorf("extract title and price: %w", err))
	}
	if strings.TrimSpace(info.Title) == "" {
		return "", decimal.Decimal{}, apperr.ExtractionFailureErr.WithMsg("extracted product has no title")
	}
	price, err := model.NormalizePrice(info.Price)
	if err != nil {
		return "", decimal.Decimal{}, apperr.ExtractionFailureErr.WrapParent(err)
	}

	return info.Title, price, nil
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error) {
	product, err := s.productRepo.GetProduct(ctx, id)
	if err != nil {
		return model.Product{}, productErr(fmt.Errorf("product repository get product: %w", err))
	}

	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error) {
	if err := s.validator.Validate(params); err != nil {
		return nil, apperr.ValidationErr.WrapParent(err)
	}

	limit := params.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}

	products, err := s.productRepo.ListRecentProducts(ctx, repository.ListRecentProductsParams{
		Limit:  limit,
		Status: params.Status,
	})
	if err != nil {
		return nil, storeErr(fmt.Errorf("product repository list recent products: %w", err))
	}

	return products, nil
}

func hasTitle(title *string) bool {
	return title != nil && strings.TrimSpace(*title) != ""
}

// productErr maps store failures of single product operations.
func productErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.ProductNotFoundErr.WrapParent(err)
	}
	return storeErr(err)
}

func storeErr(err error) error {
	if db.IsUnavailable(err) {
		return apperr.StoreUnavailableErr.WrapParent(err)
	}
	return err
}
