package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/price-tracker/internal/agent"
	"github.com/tuanvumaihuynh/price-tracker/internal/apperr"
	"github.com/tuanvumaihuynh/price-tracker/internal/config"
	"github.com/tuanvumaihuynh/price-tracker/internal/event"
	"github.com/tuanvumaihuynh/price-tracker/internal/model"
	"github.com/tuanvumaihuynh/price-tracker/internal/service"
)

type repriceFixture struct {
	svc    service.RepriceService
	db     *fakeDB
	repo   *fakeProductRepo
	outbox *fakeOutboxRepo
	agent  *fakeAgent
}

func newRepriceFixture(cfg config.Reprice) repriceFixture {
	f := repriceFixture{
		db:     &fakeDB{},
		repo:   newFakeProductRepo(),
		outbox: &fakeOutboxRepo{},
		agent:  newFakeAgent(),
	}
	f.svc = service.NewRepriceService(cfg, discardLogger(), f.db, f.agent, f.repo, f.outbox)
	return f
}

var defaultRepriceCfg = config.Reprice{Concurrency: 4, ProductTimeout: time.Minute, OfferLimit: 5}

func offer(link, p string) model.Offer {
	return model.Offer{Title: link, Link: link, Price: dec(p)}
}

func TestRepriceAll(t *testing.T) {
	ctx := context.Background()

	t.Run("Should pick the cheapest offer", func(t *testing.T) {
		f := newRepriceFixture(defaultRepriceCfg)
		p := f.repo.add(model.Product{Title: "Kettle", Country: "GB"})
		f.agent.offers["Kettle"] = []model.Offer{
			offer("https://a", "120"),
			offer("https://b", "99.99"),
			offer("https://c", "150"),
		}

		res, err := f.svc.RepriceAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, service.RepriceResult{Updated: 1, Total: 1}, res)

		got := f.repo.get(p.ID)
		require.NotNil(t, got.BestPrice)
		assert.Equal(t, "99.99", got.BestPrice.Price.String())
		assert.Equal(t, "https://b", got.BestPrice.Link)
		assert.Equal(t, []int{5}, f.agent.limits)
	})

	t.Run("Should keep the first of equally cheap offers", func(t *testing.T) {
		f := newRepriceFixture(defaultRepriceCfg)
		p := f.repo.add(model.Product{Title: "Kettle", Country: "GB"})
		f.agent.offers["Kettle"] = []model.Offer{
			offer("https://first", "50"),
			offer("https://second", "50"),
		}

		_, err := f.svc.RepriceAll(ctx)
		require.NoError(t, err)

		assert.Equal(t, "https://first", f.repo.get(p.ID).BestPrice.Link)
	})

	t.Run("Should leave product untouched without offers", func(t *testing.T) {
		f := newRepriceFixture(defaultRepriceCfg)
		previous := &model.BestPrice{Price: dec("10"), Link: "https://old"}
		withPrice := f.repo.add(model.Product{Title: "Kettle", BestPrice: previous})
		withoutPrice := f.repo.add(model.Product{Title: "Toaster"})
		f.agent.offers["Kettle"] = []model.Offer{}

		res, err := f.svc.RepriceAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, service.RepriceResult{Updated: 0, Skipped: 2, Total: 2}, res)

		assert.Equal(t, withPrice, f.repo.get(withPrice.ID))
		assert.Equal(t, withoutPrice, f.repo.get(withoutPrice.ID))
		assert.Empty(t, f.outbox.msgs)
	})

	t.Run("Should never touch disabled products", func(t *testing.T) {
		f := newRepriceFixture(defaultRepriceCfg)
		disabled := f.repo.add(model.Product{Title: "Kettle", Status: model.ProductStatusDisabled})
		f.agent.offers["Kettle"] = []model.Offer{offer("https://a", "1")}

		res, err := f.svc.RepriceAll(ctx)
		require.NoError(t, err)

		assert.Equal(t, 0, res.Updated)
		assert.Nil(t, f.repo.get(disabled.ID).BestPrice)
		assert.Equal(t, 0, f.agent.searchCalls)
	})

	t.Run("Should skip product disabled during the pass", func(t *testing.T) {
		f := newRepriceFixture(defaultRepriceCfg)
		p := f.repo.add(model.Product{Title: "Kettle"})
		f.agent.offers["Kettle"] = []model.Offer{offer("https://a", "1")}
		f.repo.beforeUpdate = func(id uuid.UUID) {
			_, _ = f.repo.UpdateProductStatus(ctx, id, model.ProductStatusDisabled)
		}

		res, err := f.svc.RepriceAll(ctx)
		require.NoError(t, err)

		assert.Equal(t, service.RepriceResult{Skipped: 1, Total: 1}, res)
		assert.Nil(t, f.repo.get(p.ID).BestPrice)
	})

	t.Run("Should isolate failing products", func(t *testing.T) {
		f := newRepriceFixture(defaultRepriceCfg)
		titles := []string{"a", "b", "c", "d", "e", "f", "g"}
		for _, title := range titles {
			f.repo.add(model.Product{Title: title, Country: "GB"})
			f.agent.offers[title] = []model.Offer{offer("https://"+title, "5")}
		}
		f.agent.searchErr["b"] = agent.ErrAgent
		f.agent.searchErr["e"] = errors.New("malformed response")

		var failingStore uuid.UUID
		for _, p := range f.repo.products {
			if p.Title == "g" {
				failingStore = p.ID
			}
		}
		f.repo.updateErr[failingStore] = errors.New("check constraint violated")

		res, err := f.svc.RepriceAll(ctx)
		require.NoError(t, err)

		assert.Equal(t, service.RepriceResult{Updated: 4, Skipped: 3, Total: 7}, res)
		assert.Equal(t, 4, f.repo.bestUpdates)
	})

	t.Run("Should skip products whose agent call hits a network error", func(t *testing.T) {
		f := newRepriceFixture(defaultRepriceCfg)
		for _, title := range []string{"a", "b", "c"} {
			f.repo.add(model.Product{Title: title, Country: "GB"})
			f.agent.offers[title] = []model.Offer{offer("https://"+title, "5")}
		}
		f.agent.searchErr["a"] = fmt.Errorf("%w: %w", agent.ErrAgent,
			&url.Error{Op: "Post", URL: "http://agent.local/v1/chat/completions", Err: errConnRefused})
		f.agent.searchErr["b"] = fmt.Errorf("%w: %w", agent.ErrAgent, errConnRefused)

		res, err := f.svc.RepriceAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, service.RepriceResult{Updated: 1, Skipped: 2, Total: 3}, res)
	})

	t.Run("Should keep going when the llm backend is unreachable", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		baseURL := ts.URL + "/v1"
		ts.Close()

		f := newRepriceFixture(defaultRepriceCfg)
		f.repo.add(model.Product{Title: "Kettle", Country: "GB"})
		f.repo.add(model.Product{Title: "Toaster", Country: "GB"})
		unreachable := agent.NewOpenAI(agent.OpenAIConfig{APIKey: "test-key", BaseURL: baseURL, Timeout: 5 * time.Second})
		svc := service.NewRepriceService(defaultRepriceCfg, discardLogger(), f.db, unreachable, f.repo, f.outbox)

		res, err := svc.RepriceAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, service.RepriceResult{Skipped: 2, Total: 2}, res)
		assert.Zero(t, f.repo.bestUpdates)
	})

	t.Run("Should emit event only when best price changes", func(t *testing.T) {
		f := newRepriceFixture(defaultRepriceCfg)
		p := f.repo.add(model.Product{Title: "Kettle", Country: "GB"})
		f.agent.offers["Kettle"] = []model.Offer{offer("https://a", "20")}

		for range 2 {
			res, err := f.svc.RepriceAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, 1, res.Updated)
		}
		require.Equal(t, []string{event.TopicProductBestPriceChanged}, f.outbox.topics())

		var ev event.BestPriceChangedEvent
		require.NoError(t, json.Unmarshal(f.outbox.msgs[0].Payload, &ev))
		assert.Equal(t, p.ID, ev.ProductID)
		assert.Nil(t, ev.Previous)
		assert.Equal(t, "https://a", ev.Current.Link)
		assert.True(t, ev.Current.Price.Equal(dec("20")))

		f.agent.offers["Kettle"] = []model.Offer{offer("https://b", "18.50")}
		_, err := f.svc.RepriceAll(ctx)
		require.NoError(t, err)

		require.Len(t, f.outbox.msgs, 2)
		require.NoError(t, json.Unmarshal(f.outbox.msgs[1].Payload, &ev))
		require.NotNil(t, ev.Previous)
		assert.Equal(t, "https://a", ev.Previous.Link)
		assert.Equal(t, "https://b", ev.Current.Link)
	})

	t.Run("Should truncate offers to the limit", func(t *testing.T) {
		f := newRepriceFixture(config.Reprice{Concurrency: 1, OfferLimit: 2})
		p := f.repo.add(model.Product{Title: "Kettle"})
		f.agent.offers["Kettle"] = []model.Offer{
			offer("https://a", "3"),
			offer("https://b", "2"),
			offer("https://c", "1"),
		}

		_, err := f.svc.RepriceAll(ctx)
		require.NoError(t, err)

		assert.Equal(t, "https://b", f.repo.get(p.ID).BestPrice.Link)
		assert.Equal(t, []int{2}, f.agent.limits)
	})

	t.Run("Should succeed with nothing to do", func(t *testing.T) {
		f := newRepriceFixture(defaultRepriceCfg)

		res, err := f.svc.RepriceAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, service.RepriceResult{}, res)
	})
}

func TestRepriceAllStoreUnavailable(t *testing.T) {
	ctx := context.Background()

	t.Run("Should fail when products cannot be listed", func(t *testing.T) {
		f := newRepriceFixture(defaultRepriceCfg)
		f.repo.listErr = errConnRefused

		res, err := f.svc.RepriceAll(ctx)
		assert.ErrorIs(t, err, apperr.StoreUnavailableErr)
		assert.Equal(t, service.RepriceResult{}, res)
	})

	t.Run("Should fail the pass when the store drops mid-pass", func(t *testing.T) {
		f := newRepriceFixture(config.Reprice{Concurrency: 1, OfferLimit: 5})
		for _, title := range []string{"a", "b", "c"} {
			f.repo.add(model.Product{Title: title})
			f.agent.offers[title] = []model.Offer{offer("https://"+title, "1")}
		}
		f.db.txErr = errConnRefused

		res, err := f.svc.RepriceAll(ctx)
		assert.ErrorIs(t, err, apperr.StoreUnavailableErr)
		assert.Equal(t, service.RepriceResult{}, res)
	})

	t.Run("Should pass other list errors through", func(t *testing.T) {
		f := newRepriceFixture(defaultRepriceCfg)
		boom := errors.New("scan failed")
		f.repo.listErr = boom

		_, err := f.svc.RepriceAll(ctx)
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, apperr.StoreUnavailableErr)
	})
}

func TestRepriceAllTimeouts(t *testing.T) {
	t.Run("Should skip product whose search times out", func(t *testing.T) {
		f := newRepriceFixture(config.Reprice{Concurrency: 2, ProductTimeout: 20 * time.Millisecond, OfferLimit: 5})
		f.repo.add(model.Product{Title: "slow"})
		f.repo.add(model.Product{Title: "fast"})
		f.agent.block["slow"] = true
		f.agent.offers["fast"] = []model.Offer{offer("https://fast", "1")}

		res, err := f.svc.RepriceAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, service.RepriceResult{Updated: 1, Skipped: 1, Total: 2}, res)
	})

	t.Run("Should keep committed updates when cancelled", func(t *testing.T) {
		f := newRepriceFixture(config.Reprice{Concurrency: 1, OfferLimit: 5})
		f.repo.add(model.Product{Title: "fast"})
		f.repo.add(model.Product{Title: "slow"})
		f.agent.offers["fast"] = []model.Offer{offer("https://fast", "1")}
		f.agent.block["slow"] = true

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		res, err := f.svc.RepriceAll(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.NotErrorIs(t, err, apperr.StoreUnavailableErr)
		assert.Equal(t, 1, res.Updated)
		assert.Equal(t, 1, f.repo.bestUpdates)
	})
}
