package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/price-tracker/internal/agent"
	"github.com/tuanvumaihuynh/price-tracker/internal/apperr"
	"github.com/tuanvumaihuynh/price-tracker/internal/event"
	"github.com/tuanvumaihuynh/price-tracker/internal/model"
	"github.com/tuanvumaihuynh/price-tracker/internal/service"
	"github.com/tuanvumaihuynh/price-tracker/pkg/ptr"
)

type productFixture struct {
	svc    service.ProductService
	db     *fakeDB
	repo   *fakeProductRepo
	outbox *fakeOutboxRepo
	agent  *fakeAgent
}

func newProductFixture(t *testing.T) productFixture {
	t.Helper()

	f := productFixture{
		db:     &fakeDB{},
		repo:   newFakeProductRepo(),
		outbox: &fakeOutboxRepo{},
		agent:  newFakeAgent(),
	}
	f.agent.info = agent.ProductInfo{Title: "Acme Kettle 1.7L", Price: dec("39.99")}
	f.svc = service.NewProductService(discardLogger(), newValidator(t), f.db, f.agent, f.repo, f.outbox)

	return f
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Should extract title and price when title is absent", func(t *testing.T) {
		f := newProductFixture(t)

		p, err := f.svc.CreateProduct(ctx, service.CreateProductParams{
			Link:    "https://shop.example/kettle",
			Country: "GB",
		})
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, p.ID)
		assert.Equal(t, "Acme Kettle 1.7L", p.Title)
		assert.True(t, p.InputPrice.Equal(dec("39.99")))
		assert.Equal(t, "https://shop.example/kettle", p.InputLink)
		assert.Equal(t, "GB", p.Country)
		assert.Equal(t, model.ProductStatusActive, p.Status)
		assert.Nil(t, p.BestPrice)
		assert.False(t, p.CreatedAt.IsZero())

		assert.Equal(t, 1, f.repo.count())
		assert.Equal(t, 1, f.agent.extractTitleCalls)
		assert.Equal(t, 0, f.agent.extractPriceCalls)
		assert.Equal(t, []string{event.TopicProductTracked}, f.outbox.topics())
		require.NotNil(t, f.outbox.msgs[0].PartitionKey)
		assert.Equal(t, p.ID.String(), *f.outbox.msgs[0].PartitionKey)
	})

	t.Run("Should accept a link without scheme", func(t *testing.T) {
		f := newProductFixture(t)

		p, err := f.svc.CreateProduct(ctx, service.CreateProductParams{
			Link:    "amazon.co.uk/dp/B0EXAMPLE",
			Country: "GB",
		})
		require.NoError(t, err)
		assert.Equal(t, "amazon.co.uk/dp/B0EXAMPLE", p.InputLink)
		assert.Equal(t, 1, f.repo.count())
	})

	t.Run("Should keep supplied title verbatim and extract only the price", func(t *testing.T) {
		f := newProductFixture(t)

		p, err := f.svc.CreateProduct(ctx, service.CreateProductParams{
			Link:    "https://shop.example/kettle",
			Country: "GB",
			Title:   ptr.New(" My kettle "),
		})
		require.NoError(t, err)

		assert.Equal(t, " My kettle ", p.Title)
		assert.True(t, p.InputPrice.Equal(dec("39.99")))
		assert.Equal(t, 0, f.agent.extractTitleCalls)
		assert.Equal(t, 1, f.agent.extractPriceCalls)
	})

	t.Run("Should treat blank title as absent", func(t *testing.T) {
		f := newProductFixture(t)

		p, err := f.svc.CreateProduct(ctx, service.CreateProductParams{
			Link:    "https://shop.example/kettle",
			Country: "GB",
			Title:   ptr.New("   "),
		})
		require.NoError(t, err)

		assert.Equal(t, "Acme Kettle 1.7L", p.Title)
		assert.Equal(t, 1, f.agent.extractTitleCalls)
	})

	t.Run("Should round extracted price to cents", func(t *testing.T) {
		f := newProductFixture(t)
		f.agent.info.Price = dec("10.005")

		p, err := f.svc.CreateProduct(ctx, service.CreateProductParams{Link: "https://x.example", Country: "DE"})
		require.NoError(t, err)
		assert.Equal(t, "10.01", p.InputPrice.StringFixed(2))
	})

	failures := []struct {
		name   string
		title  *string
		mutate func(f *productFixture)
	}{
		{name: "extraction fails", mutate: func(f *productFixture) { f.agent.extractErr = agent.ErrAgent }},
		{name: "price extraction fails", title: ptr.New("Kettle"), mutate: func(f *productFixture) { f.agent.extractErr = agent.ErrAgent }},
		{name: "extracted title is empty", mutate: func(f *productFixture) { f.agent.info.Title = " " }},
		{name: "extracted price is negative", mutate: func(f *productFixture) { f.agent.info.Price = dec("-1") }},
		{name: "extracted price is negative with title", title: ptr.New("Kettle"), mutate: func(f *productFixture) { f.agent.info.Price = dec("-1") }},
	}

	for _, tt := range failures {
		t.Run("Should create nothing when "+tt.name, func(t *testing.T) {
			f := newProductFixture(t)
			tt.mutate(&f)

			_, err := f.svc.CreateProduct(ctx, service.CreateProductParams{
				Link:    "https://shop.example/kettle",
				Country: "GB",
				Title:   tt.title,
			})
			assert.ErrorIs(t, err, apperr.ExtractionFailureErr)
			assert.Equal(t, 0, f.repo.count())
			assert.Empty(t, f.outbox.msgs)
		})
	}

	invalid := []struct {
		name   string
		params service.CreateProductParams
	}{
		{name: "empty link", params: service.CreateProductParams{Country: "GB"}},
		{name: "blank link", params: service.CreateProductParams{Link: "   ", Country: "GB"}},
		{name: "empty country", params: service.CreateProductParams{Link: "https://x.example"}},
		{name: "blank country", params: service.CreateProductParams{Link: "https://x.example", Country: "  "}},
		{name: "long country", params: service.CreateProductParams{Link: "https://x.example", Country: "United Kingdom"}},
	}

	for _, tt := range invalid {
		t.Run("Should reject "+tt.name, func(t *testing.T) {
			f := newProductFixture(t)

			_, err := f.svc.CreateProduct(ctx, tt.params)
			assert.ErrorIs(t, err, apperr.ValidationErr)
			assert.Equal(t, 0, f.agent.extractTitleCalls+f.agent.extractPriceCalls)
			assert.Equal(t, 0, f.repo.count())
		})
	}

	t.Run("Should report unreachable store", func(t *testing.T) {
		f := newProductFixture(t)
		f.db.txErr = errConnRefused

		_, err := f.svc.CreateProduct(ctx, service.CreateProductParams{Link: "https://x.example", Country: "GB"})
		assert.ErrorIs(t, err, apperr.StoreUnavailableErr)
	})

	t.Run("Should pass other store errors through", func(t *testing.T) {
		f := newProductFixture(t)
		boom := errors.New("check constraint")
		f.repo.createErr = boom

		_, err := f.svc.CreateProduct(ctx, service.CreateProductParams{Link: "https://x.example", Country: "GB"})
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, apperr.StoreUnavailableErr)
	})
}

func TestGetProduct(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(t)
	existing := f.repo.add(model.Product{Title: "Kettle", InputLink: "https://x", Country: "GB", InputPrice: dec("1")})

	got, err := f.svc.GetProduct(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, existing, got)

	_, err = f.svc.GetProduct(ctx, uuid.Must(uuid.NewV7()))
	assert.ErrorIs(t, err, apperr.ProductNotFoundErr)
}

func TestListProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("Should list newest first with default limit", func(t *testing.T) {
		f := newProductFixture(t)
		first := f.repo.add(model.Product{Title: "first"})
		second := f.repo.add(model.Product{Title: "second"})

		products, err := f.svc.ListProducts(ctx, service.ListProductsParams{})
		require.NoError(t, err)

		require.Len(t, products, 2)
		assert.Equal(t, second.ID, products[0].ID)
		assert.Equal(t, first.ID, products[1].ID)
		assert.Equal(t, int32(service.DefaultListLimit), f.repo.lastListArgs.Limit)
	})

	t.Run("Should filter by status", func(t *testing.T) {
		f := newProductFixture(t)
		f.repo.add(model.Product{Title: "active"})
		disabled := f.repo.add(model.Product{Title: "disabled", Status: model.ProductStatusDisabled})

		products, err := f.svc.ListProducts(ctx, service.ListProductsParams{
			Status: ptr.New(model.ProductStatusDisabled),
			Limit:  10,
		})
		require.NoError(t, err)

		require.Len(t, products, 1)
		assert.Equal(t, disabled.ID, products[0].ID)
	})

	t.Run("Should reject invalid params", func(t *testing.T) {
		f := newProductFixture(t)

		_, err := f.svc.ListProducts(ctx, service.ListProductsParams{Status: ptr.New(model.ProductStatus("archived"))})
		assert.ErrorIs(t, err, apperr.ValidationErr)

		_, err = f.svc.ListProducts(ctx, service.ListProductsParams{Limit: service.MaxListLimit + 1})
		assert.ErrorIs(t, err, apperr.ValidationErr)

		_, err = f.svc.ListProducts(ctx, service.ListProductsParams{Limit: -1})
		assert.ErrorIs(t, err, apperr.ValidationErr)
	})

	t.Run("Should report unreachable store", func(t *testing.T) {
		f := newProductFixture(t)
		f.repo.listErr = errConnRefused

		_, err := f.svc.ListProducts(ctx, service.ListProductsParams{})
		assert.ErrorIs(t, err, apperr.StoreUnavailableErr)
	})
}
