package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Результаты пересчёта очереди.
const (
	ResultOK            = "ok"
	ResultInvalidConfig = "invalid_config"
	ResultError         = "error"
)

var (
	// LineupRecomputes — количество пересчётов очереди по результату.
	LineupRecomputes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "karaoke_lineup_recomputes_total",
		Help: "Total lineup recomputations by result",
	}, []string{"service", "result"})

	// LineupDuration — длительность пересчёта (снимок + упорядочивание).
	LineupDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "karaoke_lineup_duration_seconds",
		Help:    "Lineup recomputation duration including snapshot load",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
	}, []string{"service"})

	// LineupSongs — количество заявок в последней очереди.
	LineupSongs = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "karaoke_lineup_songs",
		Help: "Number of songs in the current lineup",
	})

	// LineupRequesters — количество разных участников в очереди.
	LineupRequesters = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "karaoke_lineup_requesters",
		Help: "Number of distinct requesters in the current lineup",
	})

	// LineupRounds — количество раундов в очереди.
	LineupRounds = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "karaoke_lineup_rounds",
		Help: "Number of rounds in the current lineup",
	})

	// LineupTurnLimit — лимит песен за ход, применённый к последней очереди.
	LineupTurnLimit = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "karaoke_lineup_turn_limit",
		Help: "Turn limit applied to the current lineup",
	})

	// HTTPRequests — количество HTTP запросов.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "karaoke_http_requests_total",
		Help: "Total HTTP requests handled",
	}, []string{"service", "method", "status"})

	// NotificationsSent — уведомления о новых заявках.
	NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "karaoke_notifications_total",
		Help: "Song notifications by result",
	}, []string{"result"})
)
