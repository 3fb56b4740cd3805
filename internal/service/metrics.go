package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	repriceOutcomeUpdated   = "updated"
	repriceOutcomeUnchanged = "unchanged"
	repriceOutcomeNoOffers  = "no_offers"
	repriceOutcomeFailed    = "failed"
)

var (
	repriceProductsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reprice_products_total",
		Help: "Products processed by repricing passes, by outcome.",
	}, []string{"outcome"})

	repricePassDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reprice_pass_duration_seconds",
		Help:    "Duration of repricing passes.",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
	}, []string{"result"})
)
