package risk

// Compiled-in frequency sets of common English bigrams and trigrams, used
// by the n-gram gibberish detector to distinguish natural
// local parts from random character strings. These are plain membership
// sets (not weighted), distinct from internal/markov's trained log-
// probability tables.

var commonBigrams = buildSet([]string{
	"th", "he", "in", "er", "an", "re", "on", "at", "en", "nd", "ti", "es",
	"or", "te", "of", "ed", "is", "it", "al", "ar", "st", "to", "nt", "ng",
	"se", "ha", "as", "ou", "io", "le", "ve", "co", "me", "de", "hi", "ri",
	"ro", "ic", "ne", "ea", "ra", "ce", "li", "ch", "ll", "be", "ma", "si",
	"om", "ur",
})

var commonTrigrams = buildSet([]string{
	"the", "and", "ing", "ion", "tio", "ent", "ati", "for", "her", "ter",
	"hat", "tha", "ere", "ate", "his", "con", "res", "ver", "all", "ons",
	"nce", "men", "ith", "ted", "ers", "pro", "thi", "wit", "are", "ess",
	"not", "ive", "was", "ect", "rea", "com", "eve", "per", "int", "est",
})

// namePatternAllowlist halves gibberish confidence for common name-ish
// suffixes so ordinary surnames aren't flagged.
var namePatternAllowlist = buildSet([]string{
	"son", "sen", "man", "ton", "ley", "ham", "ford", "berg", "stein", "ing",
})

func buildSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, i := range items {
		set[i] = struct{}{}
	}
	return set
}
