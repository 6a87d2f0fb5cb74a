package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики конвейера. Регистрируются в глобальном реестре,
// отдаются через /metrics.
var (
	FeedFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rss_feed_fetches_total",
		Help: "Количество загрузок лент по источникам и статусу.",
	}, []string{"source", "status"})

	FeedFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rss_feed_fetch_duration_seconds",
		Help:    "Длительность загрузки и разбора одной ленты.",
		Buckets: prometheus.DefBuckets,
	})

	ItemsParsed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rss_items_parsed_total",
		Help: "Количество статей, извлечённых из всех лент.",
	})

	PostsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rss_posts_ingested_total",
		Help: "Результаты записи статей: inserted, skipped, error.",
	}, []string{"result"})

	Runs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rss_ingest_runs_total",
		Help: "Количество завершённых запусков конвейера.",
	})
)
