package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/price-tracker/internal/agent"
	"github.com/tuanvumaihuynh/price-tracker/internal/model"
	"github.com/tuanvumaihuynh/price-tracker/internal/repository"
	"github.com/tuanvumaihuynh/price-tracker/internal/storage/db"
	"github.com/tuanvumaihuynh/price-tracker/pkg/validator"
)

var errConnRefused = &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newValidator(t *testing.T) validator.Validator {
	t.Helper()
	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)
	return v
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// fakeDB runs transactions directly against the fakes.
type fakeDB struct {
	db.DB
	txErr error
}

func (f *fakeDB) WithTx(_ context.Context, txFunc func(db.DB) error) error {
	if f.txErr != nil {
		return f.txErr
	}
	return txFunc(f)
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]model.Product
	now      time.Time

	createErr    error
	listErr      error
	updateErr    map[uuid.UUID]error
	bestUpdates  int
	lastListArgs repository.ListRecentProductsParams
	// beforeUpdate runs before a best price update is applied.
	beforeUpdate func(id uuid.UUID)
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products:  map[uuid.UUID]model.Product{},
		now:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		updateErr: map[uuid.UUID]error{},
	}
}

func (r *fakeProductRepo) tick() time.Time {
	r.now = r.now.Add(time.Second)
	return r.now
}

func (r *fakeProductRepo) add(p model.Product) model.Product {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV7())
	}
	if p.Status == "" {
		p.Status = model.ProductStatusActive
	}
	p.CreatedAt = r.tick()
	p.UpdatedAt = p.CreatedAt
	r.products[p.ID] = p
	return p
}

func (r *fakeProductRepo) get(id uuid.UUID) model.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[id]
}

func (r *fakeProductRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.products)
}

func (r *fakeProductRepo) WithDB(db.DB) repository.ProductRepository {
	return r
}

func (r *fakeProductRepo) CreateProduct(_ context.Context, p model.Product) (model.Product, error) {
	if r.createErr != nil {
		return model.Product{}, r.createErr
	}
	p.ID = uuid.Nil
	return r.add(p), nil
}

func (r *fakeProductRepo) GetProduct(_ context.Context, id uuid.UUID) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return model.Product{}, repository.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) ListRecentProducts(_ context.Context, params repository.ListRecentProductsParams) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastListArgs = params
	if r.listErr != nil {
		return nil, r.listErr
	}

	var out []model.Product
	for _, p := range r.products {
		if params.Status == nil || p.Status == *params.Status {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > int(params.Limit) {
		out = out[:params.Limit]
	}
	return out, nil
}

func (r *fakeProductRepo) ListProductsByStatus(_ context.Context, status model.ProductStatus) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.listErr != nil {
		return nil, r.listErr
	}

	var out []model.Product
	for _, p := range r.products {
		if p.Status == status {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeProductRepo) UpdateProductStatus(_ context.Context, id uuid.UUID, status model.ProductStatus) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return model.Product{}, repository.ErrNotFound
	}
	if p.Status != status {
		p.Status = status
		p.UpdatedAt = r.tick()
		r.products[id] = p
	}
	return p, nil
}

func (r *fakeProductRepo) UpdateProductBestPrice(_ context.Context, id uuid.UUID, best model.BestPrice) (model.Product, error) {
	if r.beforeUpdate != nil {
		r.beforeUpdate(id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.updateErr[id]; err != nil {
		return model.Product{}, err
	}

	p, ok := r.products[id]
	if !ok || !p.IsActive() {
		return model.Product{}, repository.ErrNotFound
	}
	p.BestPrice = &best
	p.UpdatedAt = r.tick()
	r.products[id] = p
	r.bestUpdates++
	return p, nil
}

type fakeOutboxRepo struct {
	mu   sync.Mutex
	msgs []repository.CreateOutboxMsgParams
	err  error
}

func (r *fakeOutboxRepo) WithDB(db.DB) repository.OutboxMsgRepository {
	return r
}

func (r *fakeOutboxRepo) CreateOutboxMsg(_ context.Context, params repository.CreateOutboxMsgParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return r.err
	}
	r.msgs = append(r.msgs, params)
	return nil
}

func (r *fakeOutboxRepo) ListUnprocessedOutboxMsgs(context.Context, int32) ([]repository.OutboxMsg, error) {
	return nil, nil
}

func (r *fakeOutboxRepo) MarkOutboxMsgsProcessed(context.Context, []repository.OutboxMsgResult) error {
	return nil
}

func (r *fakeOutboxRepo) topics() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	topics := make([]string, len(r.msgs))
	for i, m := range r.msgs {
		topics[i] = m.Topic
	}
	return topics
}

// fakeAgent answers extraction with info and searches by product title.
type fakeAgent struct {
	mu sync.Mutex

	info       agent.ProductInfo
	extractErr error
	offers     map[string][]model.Offer
	searchErr  map[string]error
	// block makes searches for the title wait until ctx is done.
	block map[string]bool

	extractTitleCalls int
	extractPriceCalls int
	searchCalls       int
	limits            []int
}

func newFakeAgent() *fakeAgent {
	return &fakeAgent{
		offers:    map[string][]model.Offer{},
		searchErr: map[string]error{},
		block:     map[string]bool{},
	}
}

func (a *fakeAgent) ExtractTitleAndPrice(context.Context, string) (agent.ProductInfo, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.extractTitleCalls++
	if a.extractErr != nil {
		return agent.ProductInfo{}, a.extractErr
	}
	return a.info, nil
}

func (a *fakeAgent) ExtractPrice(context.Context, string) (decimal.Decimal, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.extractPriceCalls++
	if a.extractErr != nil {
		return decimal.Decimal{}, a.extractErr
	}
	return a.info.Price, nil
}

func (a *fakeAgent) SearchOffers(ctx context.Context, title, _ string, limit int) ([]model.Offer, error) {
	a.mu.Lock()
	a.searchCalls++
	a.limits = append(a.limits, limit)
	offers, err, block := a.offers[title], a.searchErr[title], a.block[title]
	a.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	return offers, nil
}
