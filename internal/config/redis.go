package config

import "time"

// Redis configures the offer cache. An empty Addr disables caching.
type Redis struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	OfferTTL time.Duration `env:"REDIS_OFFER_TTL" envDefault:"10m"`
}
