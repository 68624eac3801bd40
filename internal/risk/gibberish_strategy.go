package risk

import (
	"math"
	"strings"

	"github.com/stoik/emailrisk/internal/domain"
)

// gibberishDetector implements the n-gram gibberish detector:
// bigram/trigram overlap against compiled-in common-English frequency sets.
type gibberishDetector struct{}

func (gibberishDetector) Name() string { return "gibberish" }

func (gibberishDetector) Run(ne domain.NormalisedEmail) DetectorResult {
	letters := lettersOnly(ne.Local)

	bigrams := ngrams(letters, 2)
	trigrams := ngrams(letters, 3)

	bigramScore := matchRatio(bigrams, commonBigrams)
	trigramScore := matchRatio(trigrams, commonTrigrams)
	overall := 0.6*bigramScore + 0.4*trigramScore

	threshold := 0.40
	if len(letters) < 5 {
		threshold = 0.30
	}
	isNatural := overall > threshold

	totalNgrams := len(bigrams) + len(trigrams)
	confidence := math.Min(float64(totalNgrams)/10.0, 1.0)

	if hasNamePattern(letters) {
		confidence *= 0.5
	}

	result := domain.GibberishResult{
		IsNatural:    isNatural,
		BigramScore:  bigramScore,
		TrigramScore: trigramScore,
		OverallScore: overall,
		Confidence:   confidence,
	}

	// Hit means "looks like gibberish" — the inverse of isNatural — since
	// that's the signal the aggregator treats as risk-bearing.
	return DetectorResult{Hit: !isNatural, Confidence: confidence, Raw: result}
}

func (gibberishDetector) Risk(result DetectorResult) float64 {
	raw := result.Raw.(domain.GibberishResult)
	if raw.IsNatural {
		return 0
	}
	return result.Confidence
}

func lettersOnly(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func ngrams(s string, n int) []string {
	if len(s) < n {
		return nil
	}
	grams := make([]string, 0, len(s)-n+1)
	for i := 0; i+n <= len(s); i++ {
		grams = append(grams, s[i:i+n])
	}
	return grams
}

func matchRatio(grams []string, set map[string]struct{}) float64 {
	if len(grams) == 0 {
		return 0
	}
	matched := 0
	for _, g := range grams {
		if _, ok := set[g]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(grams))
}

func hasNamePattern(letters string) bool {
	for suffix := range namePatternAllowlist {
		if strings.HasSuffix(letters, suffix) {
			return true
		}
	}
	return false
}
