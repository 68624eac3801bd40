// Package recorder implements the decision recorder: a
// structured log/metrics sink for every validation, and the fire-and-forget
// origin forwarder. Both are best-effort — neither is ever allowed to slow
// down or fail the request that produced the record.
package recorder

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/stoik/emailrisk/internal/domain"
)

// Sink implements ports.ObservabilitySink: it emits one structured log line
// per validation and the flat metrics projection exposed on /metrics (14
// string fields, 8 numeric fields, 1 indexed field), keyed by
// fingerprint_hash. Blocks are logged at warning level, everything else at
// info — or dropped entirely when logAll is false and the decision is
// allow.
//
// Grounded on jhkimqd-chaos-utils/pkg/reporting's zerolog wrapper for the
// logging half; the metrics half adopts prometheus/client_golang's
// promauto registration style, which the pack only exercises read-side
// (jhkimqd-chaos-utils/pkg/monitoring/prometheus) — this is the write side
// of the same dependency.
type Sink struct {
	logger  zerolog.Logger
	logAll  bool
	metrics *metrics
}

type metrics struct {
	decisions   *prometheus.CounterVec
	blockReason *prometheus.CounterVec
	riskBucket  *prometheus.CounterVec
	riskScore   prometheus.Histogram
	entropy     prometheus.Histogram
	botScore    prometheus.Histogram
	latency     prometheus.Histogram
}

// NewSink constructs a Sink and registers its metrics against reg. logAll
// mirrors cfg.flags.log_all_validations — when false, only block/warn
// decisions are logged (metrics are still recorded for every decision).
func NewSink(logger zerolog.Logger, reg prometheus.Registerer, logAll bool) *Sink {
	return &Sink{
		logger: logger.With().Str("component", "recorder").Logger(),
		logAll: logAll,
		metrics: &metrics{
			decisions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
				Name: "emailrisk_decisions_total",
				Help: "Validation decisions by outcome, country and ASN.",
			}, []string{"decision", "country", "asn"}),
			blockReason: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
				Name: "emailrisk_block_reason_total",
				Help: "Non-allow decisions by block reason.",
			}, []string{"reason"}),
			riskBucket: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
				Name: "emailrisk_risk_bucket_total",
				Help: "Decisions by coarse risk-score bucket (tenths).",
			}, []string{"bucket"}),
			riskScore: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
				Name:    "emailrisk_risk_score",
				Help:    "Computed risk score distribution.",
				Buckets: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
			}),
			entropy: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
				Name:    "emailrisk_entropy_score",
				Help:    "Local-part entropy score distribution.",
				Buckets: []float64{0.2, 0.4, 0.6, 0.7, 0.8, 1.0},
			}),
			botScore: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
				Name:    "emailrisk_bot_score",
				Help:    "Transport bot-score distribution.",
				Buckets: []float64{0.1, 0.25, 0.5, 0.75, 0.9, 1.0},
			}),
			latency: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
				Name:    "emailrisk_validation_latency_ms",
				Help:    "End-to-end validation latency in milliseconds.",
				Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 200, 500},
			}),
		},
	}
}

// Record implements ports.ObservabilitySink. It never returns an error and
// never blocks on I/O beyond the logger's own buffering — callers invoke it
// fire-and-forget from the request path.
func (s *Sink) Record(ctx context.Context, rec domain.DecisionRecord) {
	s.recordMetrics(rec)

	if !s.logAll && rec.Decision == domain.DecisionAllow {
		return
	}

	event := s.logger.Info()
	if rec.Decision == domain.DecisionBlock {
		event = s.logger.Warn()
	}

	event.
		Str("request_id", rec.RequestID).
		Str("decision", string(rec.Decision)).
		Str("block_reason", rec.BlockReason).
		Str("country", rec.Country).
		Str("risk_bucket", riskBucketLabel(rec.RiskScore)).
		Str("domain", rec.Domain).
		Str("tld", rec.TLD).
		Str("pattern_type", string(rec.Signals.Family.Type)).
		Str("pattern_family", rec.Signals.Family.FamilyHash).
		Bool("is_disposable", rec.Signals.Domain.IsDisposable).
		Bool("is_free_provider", rec.Signals.Domain.IsFreeProvider).
		Bool("has_plus_addressing", rec.Signals.PlusAddressing.Hit).
		Bool("has_keyboard_walk", rec.Signals.KeyboardWalk.Hit).
		Bool("is_gibberish", !rec.Signals.Gibberish.IsNatural).
		Str("email_hash", rec.EmailHash).
		Float64("risk_score", rec.RiskScore).
		Float64("entropy_score", rec.Signals.Format.EntropyScore).
		Float64("bot_score", rec.BotScore).
		Str("asn", rec.ASN).
		Int64("latency_ms", rec.LatencyMs).
		Float64("tld_risk_score", rec.Signals.Domain.TLDRiskScore).
		Float64("domain_reputation_score", rec.Signals.Domain.ReputationScore).
		Float64("pattern_confidence", rec.Signals.Family.Confidence).
		Str("fingerprint_hash", rec.FingerprintHash).
		Msg("email validation decision")
}

func (s *Sink) recordMetrics(rec domain.DecisionRecord) {
	s.metrics.decisions.WithLabelValues(string(rec.Decision), rec.Country, rec.ASN).Inc()
	s.metrics.riskBucket.WithLabelValues(riskBucketLabel(rec.RiskScore)).Inc()
	s.metrics.riskScore.Observe(rec.RiskScore)
	s.metrics.entropy.Observe(rec.Signals.Format.EntropyScore)
	if rec.BotScore > 0 {
		s.metrics.botScore.Observe(rec.BotScore)
	}
	s.metrics.latency.Observe(float64(rec.LatencyMs))

	if rec.Decision != domain.DecisionAllow && rec.BlockReason != "" {
		s.metrics.blockReason.WithLabelValues(rec.BlockReason).Inc()
	}
}

// riskBucketLabel renders a risk score to a tenths-resolution bucket label
// ("0.3", "0.7", ...) for low-cardinality metrics grouping.
func riskBucketLabel(score float64) string {
	tenths := int(score*10 + 0.5)
	if tenths < 0 {
		tenths = 0
	}
	if tenths > 10 {
		tenths = 10
	}
	return fmt.Sprintf("%.1f", float64(tenths)/10)
}
