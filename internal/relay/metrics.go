package relay

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultPublished = "published"
	resultFailed    = "failed"
)

var (
	outboxMsgsRelayed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "outbox_msgs_relayed_total",
		Help: "Number of outbox messages handed to the broker by topic and result.",
	}, []string{"topic", "result"})

	relayBatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "outbox_relay_batch_size",
		Help:    "Number of outbox messages picked up per non-empty relay batch.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})
)
