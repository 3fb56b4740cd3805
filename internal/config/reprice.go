package config

import "time"

type Reprice struct {
	// Concurrency bounds the number of products searched at the same time.
	Concurrency int `env:"REPRICE_CONCURRENCY" envDefault:"4"`
	// ProductTimeout bounds the offer search of a single product. Zero disables it.
	ProductTimeout time.Duration `env:"REPRICE_PRODUCT_TIMEOUT" envDefault:"60s"`
	// OfferLimit is the number of offers requested from the agent per product.
	OfferLimit int `env:"REPRICE_OFFER_LIMIT" envDefault:"5"`
}
