package markov

// Compiled-in order-2 (bigram) and order-3 (trigram) character frequency
// tables for the "legit" and "fraud" local-part classes. These stand in for
// an offline-trained model (online training is out of scope): the
// fraud tables are weighted toward high-entropy, consonant-heavy and
// digit-interleaved transitions; the legit tables toward common English
// name/word transitions. Counts are raw observation weights, not
// probabilities — buildModel normalises them.
//
// Keys are (prefix + next-symbol): a bigram-table key is 3 characters (2 of
// context, 1 predicted), a trigram-table key is 4 characters (3 of context,
// 1 predicted). Alphabet is lowercase a-z, digits 0-9, '^' (start pad) and
// '$' (end pad).

var legitBigramCounts = map[string]int{
	"^jo": 40, "joh": 30, "ohn": 60, "hn$": 50,
	"^ma": 45, "mar": 40, "ary": 70, "ry$": 55,
	"^sa": 50, "san": 35, "ana": 90, "na$": 60,
	"^da": 38, "dav": 30, "avi": 25, "vid": 28, "id$": 40,
	"^ka": 30, "kat": 22, "ati": 50, "tie": 45, "ie$": 30,
	"^li": 34, "lis": 30, "isa": 60, "sa$": 40,
	"^ro": 32, "rob": 28, "ber": 40, "ert": 35, "rt$": 30,
	"^em": 36, "emi": 20, "mil": 45, "ily": 38, "ly$": 30,
	"the": 60, "her": 70, "ere": 28, "ent": 55, "nti": 34, "tio": 36,
	"ion": 40, "on$": 30, "and": 34, "ral": 22, "all": 24,
	"son": 40, "en$": 28, "sen": 28, "ton": 26, "man": 32, "an$": 20,
	"mic": 20, "cha": 25, "hae": 18, "ael": 20, "el$": 22,
	"jam": 20, "ame": 18, "mes": 20, "es$": 24,
	"chr": 20, "hri": 18, "ris": 24,
}

var legitTrigramCounts = map[string]int{
	"^joh": 30, "john": 25, "ohn$": 45,
	"^mar": 35, "mary": 40, "ary$": 32,
	"^san": 30, "sand": 20, "andr": 18, "ndra": 16, "dra$": 15,
	"^kat": 30, "kati": 22, "atie": 28, "tie$": 24,
	"^dav": 32, "davi": 28, "avid": 30, "vid$": 28,
	"^emi": 26, "emil": 22, "mily": 24, "ily$": 22,
	"^the": 40, "ther": 24, "here": 22, "eren": 16, "rend": 12,
	"^jam": 24, "jame": 20, "ames": 24, "mes$": 20,
	"^chr": 20, "chri": 18, "hris": 22, "ris$": 20, "rist": 14,
	"^rob": 22, "robe": 18, "bert": 24, "ert$": 20,
	"^mic": 20, "mich": 18, "icha": 16, "chae": 16, "hael": 18, "ael$": 16,
}

var fraudBigramCounts = map[string]int{
	"xkq": 18, "kqz": 14, "qzx": 10, "zxv": 9, "xvq": 8, "vqj": 7,
	"q9m": 12, "9m2": 10, "m2q": 12, "2qw": 9, "qw7": 20, "w7r": 8,
	"r4p": 10, "4p$": 8, "xzq": 9, "zqx": 7, "qxz": 8, "wqx": 7,
	"9k8": 10, "k8j": 9, "8jx": 7, "jxv": 8, "xvz": 7, "vzq": 6,
	"0xq": 6, "x0q": 6, "q0x": 6, "0qz": 6, "zjx": 6, "jzx": 6,
	"vzx": 6, "zvx": 6, "kxz": 9, "qkx": 8,
	"^xk": 16, "^kq": 12, "^q9": 10, "^9k": 9, "^zx": 8,
}

var fraudTrigramCounts = map[string]int{
	"^xkq": 14, "kqzx": 10, "qzxv": 8, "zxvq": 7, "xvqj": 6,
	"^q9m": 12, "q9m2": 10, "9m2q": 9, "m2qw": 8, "2qw7": 7, "qw7r": 6,
	"w7r4": 6, "7r4p": 6, "^xzq": 8, "xzqx": 6, "zqxz": 6, "qxzq": 5,
	"^9k8": 9, "9k8j": 7, "k8jx": 6, "8jxv": 6, "jxvz": 5, "xvzq": 5,
}
