// Package domain holds the core value types shared by every risk-engine
// component: the email representations, detector signal clusters, the
// configuration shape, reference-table metadata, fingerprints, and the
// decision record published to the observability sink.
//
// These types are immutable once constructed and carry no behavior beyond
// small invariant-preserving helpers; the pipeline logic that produces and
// combines them lives in internal/risk, internal/markov, internal/refdata,
// internal/configstore, internal/fingerprint and internal/recorder.
package domain

import "time"

// Decision is the final verdict returned for one validation request.
type Decision string

const (
	DecisionAllow Decision = "allow"
	DecisionWarn  Decision = "warn"
	DecisionBlock Decision = "block"
)

// Email is the per-request representation of the address under validation.
//
// Original is never logged in cleartext anywhere downstream of this type;
// only EmailHash (see DecisionRecord) is retained past the request.
type Email struct {
	Original   string
	Normalized string
	Local      string
	Domain     string
	TLD        string
}

// NormalisedEmail is the canonical, provider-aware form of the local part
// used for pattern and Markov scoring. Plus-addressing normalisation strips
// "+tag" and, for Gmail specifically, removes interior dots from the local
// part before the tag.
type NormalisedEmail struct {
	Local         string
	Domain        string
	PlusTag       string
	HasPlusTag    bool
	SuspiciousTag bool
	Canonical     string
}

// PatternFamily is the abstract structural signature of a local part, used
// both for per-request scoring and for cross-request aggregation.
type PatternFamily struct {
	FamilyString string            `json:"familyString"`
	FamilyHash   string            `json:"familyHash"` // first 16 hex chars of SHA-256(FamilyString)
	Type         PatternFamilyType `json:"type"`
	Confidence   float64           `json:"confidence"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// PatternFamilyType enumerates the family vocabulary the extractor assigns.
type PatternFamilyType string

const (
	PatternSequential  PatternFamilyType = "sequential"
	PatternDated       PatternFamilyType = "dated"
	PatternPlusAddress PatternFamilyType = "plus_addressing"
	PatternFormatted   PatternFamilyType = "formatted"
	PatternRandom      PatternFamilyType = "random"
	PatternSimple      PatternFamilyType = "simple"
	PatternUnknown     PatternFamilyType = "unknown"
)

// FormatResult is the output of the format validator.
type FormatResult struct {
	Valid           bool    `json:"valid"`
	EntropyScore    float64 `json:"entropyScore"`
	Diversity       float64 `json:"diversity"`
	LocalPartLength int     `json:"localPartLength"`
	Reason          string  `json:"reason,omitempty"`
}

// TLDCategory is the reference-data risk bucket for a TLD.
type TLDCategory string

const (
	TLDTrusted    TLDCategory = "trusted"
	TLDStandard   TLDCategory = "standard"
	TLDSuspicious TLDCategory = "suspicious"
	TLDHighRisk   TLDCategory = "high_risk"
	TLDUnknown    TLDCategory = "unknown"
)

// TLDProfile is one entry of the tld_risk reference table.
type TLDProfile struct {
	Category       TLDCategory
	RiskMultiplier float64 // in [0.2, 3.0]
	Description    string
}

// DomainResult is the output of the domain classifier.
type DomainResult struct {
	Domain                   string      `json:"domain"`
	TLD                      string      `json:"tld"`
	IsDisposable             bool        `json:"isDisposable"`
	IsFreeProvider           bool        `json:"isFreeProvider"`
	MatchesDisposablePattern bool        `json:"matchesDisposablePattern"`
	SubdomainDepth           int         `json:"subdomainDepth"`
	HasValidTLD              bool        `json:"hasValidTld"`
	ReputationScore          float64     `json:"reputationScore"`
	TLDCategory              TLDCategory `json:"tldCategory"`
	TLDRiskScore             float64     `json:"tldRiskScore"`
	Reason                   string      `json:"reason,omitempty"`
}

// KeyboardWalkResult is the output of the keyboard-walk detector.
type KeyboardWalkResult struct {
	Hit        bool    `json:"hit"`
	Type       string  `json:"type,omitempty"` // horizontal | vertical | diagonal
	Length     int     `json:"length"`
	Layout     string  `json:"layout,omitempty"`
	Confidence float64 `json:"confidence"`
}

// SequentialResult is the output of the sequential-suffix detector.
type SequentialResult struct {
	Hit        bool    `json:"hit"`
	RunLength  int     `json:"runLength"`
	Confidence float64 `json:"confidence"`
}

// DatedResult is the output of the dated-pattern detector.
type DatedResult struct {
	Hit        bool    `json:"hit"`
	Shape      string  `json:"shape,omitempty"`
	Year       int     `json:"year,omitempty"`
	Confidence float64 `json:"confidence"`
}

// PlusAddressingResult is the output of the plus-addressing detector.
type PlusAddressingResult struct {
	Hit           bool    `json:"hit"`
	Tag           string  `json:"tag,omitempty"`
	SuspiciousTag bool    `json:"suspiciousTag"`
	Confidence    float64 `json:"confidence"`
}

// GibberishResult is the output of the n-gram gibberish detector.
type GibberishResult struct {
	IsNatural    bool    `json:"isNatural"`
	BigramScore  float64 `json:"bigramScore"`
	TrigramScore float64 `json:"trigramScore"`
	OverallScore float64 `json:"overallScore"`
	Confidence   float64 `json:"confidence"`
}

// MarkovOrderResult is one order's (bigram or trigram) cross-entropy result.
type MarkovOrderResult struct {
	Order      int     `json:"order"`
	HLegit     float64 `json:"hLegit"`
	HFraud     float64 `json:"hFraud"`
	Prediction string  `json:"prediction"` // "legit" | "fraud"
	Confidence float64 `json:"confidence"`
}

// MarkovEnsembleResult is the arbitrated output of the bigram/trigram ensemble.
type MarkovEnsembleResult struct {
	Prediction string              `json:"prediction"`
	Confidence float64             `json:"confidence"`
	Reasoning  string              `json:"reasoning,omitempty"`
	PerOrder   []MarkovOrderResult `json:"perOrder,omitempty"`
}

// DetectorSignals is the full, named result bundle produced by the pipeline
// (C through G) and consumed by the aggregator (H) and the recorder (J).
//
// Fields are always populated (never absent) so the result envelope is a
// stable, explicit shape — optional values are zero-valued, not omitted.
type DetectorSignals struct {
	Format FormatResult `json:"format"`
	Domain DomainResult `json:"domain"`

	Sequential     SequentialResult     `json:"sequential"`
	Dated          DatedResult          `json:"dated"`
	PlusAddressing PlusAddressingResult `json:"plusAddressing"`
	KeyboardWalk   KeyboardWalkResult   `json:"keyboardWalk"`
	Gibberish      GibberishResult      `json:"gibberish"`

	Family PatternFamily `json:"family"`

	Markov MarkovEnsembleResult `json:"markov"`
}

// RiskWeights is the mixing-weight configuration for the hybrid aggregator.
// Invariant: the five weights sum to 1.0 within 1e-6, each in [0,1].
type RiskWeights struct {
	Entropy          float64 `json:"entropy"`
	DomainReputation float64 `json:"domainReputation"`
	TLDRisk          float64 `json:"tldRisk"`
	PatternDetection float64 `json:"patternDetection"`
	MarkovChain      float64 `json:"markovChain"`
}

// Sum returns the sum of all five weights.
func (w RiskWeights) Sum() float64 {
	return w.Entropy + w.DomainReputation + w.TLDRisk + w.PatternDetection + w.MarkovChain
}

// RiskThresholds is the decision-cutoff configuration.
// Invariant: 0 < Warn < Block < 1.
type RiskThresholds struct {
	Block float64 `json:"block"`
	Warn  float64 `json:"warn"`
}

// FeatureFlags toggles pipeline behavior.
type FeatureFlags struct {
	EnableDisposableCheck bool `json:"enableDisposableCheck"`
	EnablePatternCheck    bool `json:"enablePatternCheck"`
	EnableResponseHeaders bool `json:"enableResponseHeaders"`
	EnableOriginHeaders   bool `json:"enableOriginHeaders"`
	LogAllValidations     bool `json:"logAllValidations"`
}

// IntegrationConfig holds side-effect destinations.
type IntegrationConfig struct {
	OriginURL string `json:"originUrl,omitempty"`
	LogLevel  string `json:"logLevel,omitempty"`
}

// Secrets holds credential material. Never serialized back in admin reads —
// callers building an admin response project Configuration through their
// own DTO rather than marshaling this struct directly.
type Secrets struct {
	AdminAPIKey        string
	RefreshSourceToken string
}

// Configuration is the fully merged, validated configuration singleton
// See internal/configstore for the layered loader that
// produces and caches it.
type Configuration struct {
	Thresholds  RiskThresholds    `json:"thresholds"`
	Weights     RiskWeights       `json:"weights"`
	Flags       FeatureFlags      `json:"flags"`
	Integration IntegrationConfig `json:"integration"`
	Secrets     Secrets           `json:"-"`
}

// ConfigPatch is a partial Configuration used by PATCH /admin/config.
// Pointer fields distinguish "absent" from "explicit zero value".
type ConfigPatch struct {
	Thresholds  *RiskThresholds    `json:"thresholds,omitempty"`
	Weights     *RiskWeights       `json:"weights,omitempty"`
	Flags       *FeatureFlags      `json:"flags,omitempty"`
	Integration *IntegrationConfig `json:"integration,omitempty"`
	Secrets     *Secrets           `json:"-"`
}

// ReferenceMetadata describes the provenance of one reference table.
type ReferenceMetadata struct {
	Count       int
	LastUpdated time.Time
	Version     string
	Sources     []string
}

// UpdateReport is returned by a reference-table refresh.
type UpdateReport struct {
	Table       string
	Count       int
	RefreshedAt time.Time
	Sources     []string
	Err         error
}

// Fingerprint is the per-request transport identity summary.
type Fingerprint struct {
	Hash       string  `json:"hash"`
	Country    string  `json:"country,omitempty"`
	ASN        string  `json:"asn,omitempty"`
	BotScore   float64 `json:"botScore"`
	JA4        string  `json:"-"`
	JA3        string  `json:"-"`
	UserAgent  string  `json:"-"`
	DeviceType string  `json:"-"`
}

// TransportSignals is the raw input to the fingerprint deriver.
type TransportSignals struct {
	IP         string  `json:"ip,omitempty"`
	JA4        string  `json:"ja4,omitempty"`
	JA3        string  `json:"ja3,omitempty"`
	ASN        string  `json:"asn,omitempty"`
	BotScore   float64 `json:"botScore,omitempty"`
	UserAgent  string  `json:"userAgent,omitempty"`
	DeviceType string  `json:"deviceType,omitempty"`
	Country    string  `json:"country,omitempty"`
}

// ValidationRequest is the ingress request body.
type ValidationRequest struct {
	Email     string           `json:"email"`
	Consumer  string           `json:"consumer,omitempty"` // opaque passthrough, logging only — never interpreted
	Flow      string           `json:"flow,omitempty"`     // opaque passthrough, logging only — never interpreted
	Transport TransportSignals `json:"transport,omitempty"`
}

// ValidationResult is the ingress response body. Only
// the fields below are part of the JSON response contract; Reason is
// carried for the response-header/origin-forward projections (the
// X-Fraud-Reason family) and for the decision record, not serialized into
// the body itself.
type ValidationResult struct {
	Valid       bool            `json:"valid"`
	Decision    Decision        `json:"decision"`
	RiskScore   float64         `json:"riskScore"`
	Signals     DetectorSignals `json:"signals"`
	Fingerprint Fingerprint     `json:"fingerprint"`
	Message     string          `json:"message"`
	LatencyMs   int64           `json:"latency_ms"`
	Reason      string          `json:"-"`
}

// DecisionRecord is the structured record emitted to the observability sink.
// Email is represented only by its hash; the cleartext local
// part/domain never appear here except via the coarse projections below.
type DecisionRecord struct {
	RequestID       string // unique per call, for correlating a log line back to a support ticket
	Timestamp       time.Time
	FingerprintHash string
	EmailHash       string // first 16 hex chars of SHA-256(email as submitted)
	Decision        Decision
	RiskScore       float64
	BlockReason     string
	Signals         DetectorSignals
	LatencyMs       int64

	// Country, ASN and BotScore are carried alongside the core fields above
	// so the sink can populate the flat metrics projection
	// names (country, asn, bot_score) without re-deriving the fingerprint.
	Country  string
	ASN      string
	BotScore float64

	// Domain and TLD are coarse projections of the validated address: the
	// registrable domain and its top-level label. Permitted alongside the
	// hashes above because neither reveals the local part.
	Domain string
	TLD    string
}
