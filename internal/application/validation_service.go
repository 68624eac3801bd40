// Package application implements the request orchestrator:
// the single entry point that ties the risk engine, reference data,
// configuration, fingerprinting and the decision recorder together into
// one validation call.
package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stoik/emailrisk/internal/configstore"
	"github.com/stoik/emailrisk/internal/domain"
	"github.com/stoik/emailrisk/internal/fingerprint"
	"github.com/stoik/emailrisk/internal/ports"
	"github.com/stoik/emailrisk/internal/refdata"
	"github.com/stoik/emailrisk/internal/risk"
)

// defaultHardBudget is the per-request hard latency ceiling this service
// names (~200 ms default); the detector pipeline is cancelled if it runs
// past this, so one slow request can never stall the caller indefinitely.
const defaultHardBudget = 200 * time.Millisecond

// ValidationService is the request orchestrator: constructor-injected
// dependencies, one top-level entry point (Validate), partial-failure
// tolerance on everything after the decision is computed.
//
// Grounded on JeromeDesseaux-test_stoik's FraudDetectionService
// (internal/application/fraud_detection_service.go): dependency-injected
// collaborators, a single exported orchestration method, "log and
// continue" handling of side-effect failures rather than propagating them
// to the caller.
type ValidationService struct {
	config     *configstore.Store
	refdata    *refdata.Store
	engine     *risk.Engine
	sink       ports.ObservabilitySink
	forwarder  ports.OriginForwarder
	logger     zerolog.Logger
	hardBudget time.Duration
}

// NewValidationService wires the orchestrator's collaborators.
func NewValidationService(
	config *configstore.Store,
	refdataStore *refdata.Store,
	engine *risk.Engine,
	sink ports.ObservabilitySink,
	forwarder ports.OriginForwarder,
	logger zerolog.Logger,
) *ValidationService {
	return &ValidationService{
		config:     config,
		refdata:    refdataStore,
		engine:     engine,
		sink:       sink,
		forwarder:  forwarder,
		logger:     logger.With().Str("component", "validation_service").Logger(),
		hardBudget: defaultHardBudget,
	}
}

// WithHardBudget overrides the default 200ms hard latency ceiling.
func (s *ValidationService) WithHardBudget(d time.Duration) *ValidationService {
	s.hardBudget = d
	return s
}

// Validate runs the full validation pipeline for one request.
func (s *ValidationService) Validate(ctx context.Context, req domain.ValidationRequest) (domain.ValidationResult, error) {
	start := time.Now()
	requestID := uuid.New().String()

	// Reject malformed request bodies up front. A well-formed body carrying
	// a malformed email address is a different error kind (ErrInvalidFormat)
	// and is handled inside the pipeline below, not here.
	if req.Email == "" {
		return domain.ValidationResult{}, domain.NewInvalidRequest("email is required")
	}

	// Fingerprint is derived unconditionally, regardless of outcome.
	fp := fingerprint.Derive(req.Transport)

	// Configuration and reference data are both served from in-process
	// cache; neither call blocks on a network round trip.
	cfg, err := s.config.Get(ctx)
	if err != nil {
		return domain.ValidationResult{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.hardBudget)
	defer cancel()

	signals, _, decision, score, reason := s.runPipeline(ctx, req.Email, cfg)

	latency := time.Since(start)
	result := domain.ValidationResult{
		Valid:       decision != domain.DecisionBlock,
		Decision:    decision,
		RiskScore:   score,
		Signals:     signals,
		Fingerprint: fp,
		Message:     message(decision, reason),
		LatencyMs:   latency.Milliseconds(),
		Reason:      reason,
	}

	// Side effects are dispatched best-effort and never gate the response —
	// the caller already has everything it needs above.
	s.dispatchSideEffects(requestID, req, result, fp, reason, cfg)

	return result, nil
}

// runPipeline runs format validation, domain
// classification, the pattern detectors, the family extractor, the Markov
// ensemble and the aggregator. The detector set is independent and runs
// concurrently inside engine.Evaluate, but is never reordered relative to
// itself — the result bundle references fields by name.
func (s *ValidationService) runPipeline(ctx context.Context, email string, cfg domain.Configuration) (domain.DetectorSignals, domain.DomainResult, domain.Decision, float64, string) {
	local, host, ok := risk.SplitEmail(email)
	if !ok {
		signals := domain.DetectorSignals{Format: domain.FormatResult{Valid: false, Reason: "malformed_email"}}
		return signals, domain.DomainResult{}, domain.DecisionBlock, 0.8, "invalid_format"
	}

	signals, domainResult, err := s.engine.Evaluate(ctx, local, host, s.refdata)
	if err != nil {
		s.logger.Error().Err(err).Msg("detector pipeline failed, treating as invalid format")
		signals = domain.DetectorSignals{Format: domain.FormatResult{Valid: false, Reason: "detector_error"}}
		return signals, domain.DomainResult{}, domain.DecisionBlock, 0.8, "invalid_format"
	}

	decision, score, reason := risk.Aggregate(signals, domainResult, cfg.Weights, cfg.Thresholds)
	return signals, domainResult, decision, score, reason
}

// dispatchSideEffects fires the side effects of a decision: the observability record is
// always sent (best-effort); origin forwarding only fires when enabled and
// configured. Neither failure path is visible to the caller.
func (s *ValidationService) dispatchSideEffects(requestID string, req domain.ValidationRequest, result domain.ValidationResult, fp domain.Fingerprint, reason string, cfg domain.Configuration) {
	record := domain.DecisionRecord{
		RequestID:       requestID,
		Timestamp:       time.Now(),
		FingerprintHash: fp.Hash,
		EmailHash:       fingerprint.EmailHash(req.Email),
		Decision:        result.Decision,
		RiskScore:       result.RiskScore,
		BlockReason:     reason,
		Signals:         result.Signals,
		LatencyMs:       result.LatencyMs,
		Country:         fp.Country,
		ASN:             fp.ASN,
		BotScore:        fp.BotScore,
		Domain:          result.Signals.Domain.Domain,
		TLD:             result.Signals.Domain.TLD,
	}

	if s.sink != nil {
		go s.sink.Record(context.Background(), record)
	}

	if cfg.Flags.EnableOriginHeaders && cfg.Integration.OriginURL != "" && s.forwarder != nil {
		headers := forwardHeaders(result, fp, reason)
		go func() {
			if err := s.forwarder.Forward(context.Background(), []byte(req.Email), headers); err != nil {
				s.logger.Warn().Err(err).Msg("origin forward failed")
			}
		}()
	}
}

// message renders the user-facing summary for result.Message. Block messages
// are deliberately generic: reason carries the detector that fired and must
// not reach the caller, or a signup-flow attacker could use it to map out
// which checks exist. The diagnostic reason still lives on DecisionRecord.
func message(decision domain.Decision, reason string) string {
	switch decision {
	case domain.DecisionBlock:
		return "this email address cannot be used"
	case domain.DecisionWarn:
		return "email accepted with elevated risk: " + reason
	default:
		return "email accepted"
	}
}
