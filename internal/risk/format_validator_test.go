package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitEmail(t *testing.T) {
	cases := []struct {
		name      string
		raw       string
		wantLocal string
		wantHost  string
		wantOK    bool
	}{
		{"simple", "alice@example.com", "alice", "example.com", true},
		{"last_at_wins", "weird@local@example.com", "weird@local", "example.com", true},
		{"no_at", "alice.example.com", "", "", false},
		{"at_at_start", "@example.com", "", "", false},
		{"at_at_end", "alice@", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			local, host, ok := SplitEmail(tc.raw)
			assert.Equal(t, tc.wantOK, ok)
			if ok {
				assert.Equal(t, tc.wantLocal, local)
				assert.Equal(t, tc.wantHost, host)
			}
		})
	}
}

func TestValidateFormat_RejectsStructuralProblems(t *testing.T) {
	cases := []struct {
		name       string
		local      string
		host       string
		wantReason string
	}{
		{"empty_local", "", "example.com", "empty_local_or_domain"},
		{"too_long_local", repeatChar("a", 65), "example.com", "local_part_too_long"},
		{"too_long_domain", "alice", repeatChar("a", 256) + ".com", "domain_too_long"},
		{"bad_chars", "alice<>", "example.com", "invalid_local_part_characters"},
		{"leading_dot", ".alice", "example.com", "malformed_dot_placement"},
		{"trailing_dot", "alice.", "example.com", "malformed_dot_placement"},
		{"double_dot", "al..ice", "example.com", "malformed_dot_placement"},
		{"missing_tld", "alice", "localhost", "domain_missing_tld"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := ValidateFormat(tc.local, tc.host)
			assert.False(t, result.Valid)
			assert.Equal(t, tc.wantReason, result.Reason)
		})
	}
}

func TestValidateFormat_AcceptsWellFormedAddress(t *testing.T) {
	result := ValidateFormat("alice.smith", "example.com")
	assert.True(t, result.Valid)
	assert.Empty(t, result.Reason)
	assert.Equal(t, 11, result.LocalPartLength)
	assert.GreaterOrEqual(t, result.EntropyScore, 0.0)
	assert.LessOrEqual(t, result.EntropyScore, 1.0)
}

func TestShannonEntropy_UniformRandomScoresHigherThanRepeated(t *testing.T) {
	random := shannonEntropy("qz7wk2xr")
	repeated := shannonEntropy("aaaaaaaa")
	assert.Greater(t, random, repeated)
}

func TestValidateFormat_DiversityDistinguishesRepeatsFromRandom(t *testing.T) {
	dotted := ValidateFormat("person1.person2", "gmail.com")
	random := ValidateFormat("xk9m2qw7r4p", "gmail.com")

	assert.Less(t, dotted.Diversity, 0.7)
	assert.Greater(t, random.Diversity, 0.7)
}

func repeatChar(s string, n int) string {
	out := make([]byte, 0, n*len(s))
	for len(out) < n {
		out = append(out, s...)
	}
	return string(out[:n])
}
