package metric

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/mesi/internal/core/domain"
)

var requiredNames = []string{
	"hamming", "levenshtein", "damerau-levenshtein", "needleman-wunsch", "gotoh",
	"smith-waterman", "jaro", "jaro-winkler", "mlipns", "strcmp95", "editex", "mra",
	"jaccard", "sorensen-dice", "tversky", "overlap", "tanimoto", "cosine", "bag",
	"monge-elkan", "longest-common-subsequence", "longest-common-substring",
	"ratcliff-obershelp", "arithmetic-coding", "rle", "bwt-rle", "square-root",
	"entropy", "bz2", "lzma", "zlib", "prefix", "postfix", "length", "identity", "matrix",
}

func TestDefaultRegistryHasEveryAlgorithm(t *testing.T) {
	reg := Default()
	for _, name := range requiredNames {
		t.Run(name, func(t *testing.T) {
			m, err := reg.Lookup(name)
			require.NoError(t, err)
			assert.Equal(t, name, m.Name)
			assert.NotEmpty(t, m.Family)
		})
	}
	assert.IsIncreasing(t, reg.Names())
	assert.Len(t, reg.Metrics(), len(reg.Names()))
}

func TestFamilies(t *testing.T) {
	tests := map[string]Family{
		"hamming":            FamilyEdit,
		"levenshtein":        FamilyEdit,
		"needleman-wunsch":   FamilyAlignment,
		"jaro":               FamilyPhonetic,
		"mlipns":             FamilyPhonetic,
		"editex":             FamilyPhonetic,
		"monge-elkan":        FamilyToken,
		"ratcliff-obershelp": FamilySequence,
		"zlib":               FamilyCompression,
		"identity":           FamilySimple,
	}
	for name, want := range tests {
		m, err := Default().Lookup(name)
		require.NoError(t, err)
		assert.Equal(t, want, m.Family, name)
	}
}

func TestUnknownMetric(t *testing.T) {
	_, err := Default().Lookup("doesnotexist")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownMetric))
	assert.Contains(t, err.Error(), "doesnotexist is not a valid distance algorithm")

	_, err = Default().Resolve("doesnotexist")
	assert.ErrorIs(t, err, domain.ErrUnknownMetric)
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	m := New("same", FamilySimple, true, identity)
	_, err := NewRegistry(m, m)
	assert.Error(t, err)

	_, err = NewRegistry(New("", FamilySimple, true, identity))
	assert.Error(t, err)
}

func TestResolveBindsConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GapCost = 2
	fn, err := Default().Bind(cfg).Resolve("needleman-wunsch")
	require.NoError(t, err)

	d, err := fn("abc", "")
	require.NoError(t, err)
	// score -6 with a gap cost of 2
	assert.Equal(t, 9.0, d)
}

func TestKnownDistances(t *testing.T) {
	tests := []struct {
		metric string
		a, b   string
		want   float64
	}{
		{"levenshtein", "hello from test-1", "hi from test-2", 5},
		{"levenshtein", "this is a test", "this is a test", 0},
		{"levenshtein", "kitten", "sitting", 3},
		{"hamming", "karolin", "kathrin", 3},
		{"hamming", "", "", 0},
		{"damerau-levenshtein", "ca", "ac", 1},
		{"damerau-levenshtein", "ca", "abc", 3},
		{"damerau-levenshtein", "", "abc", 3},
		{"mlipns", "abc", "abd", 0},
		{"mlipns", "abcdef", "uvwxyz", 1},
		{"mlipns", "", "abc", 1},
		{"needleman-wunsch", "abc", "abd", 1},
		{"needleman-wunsch", "abc", "", 6},
		{"gotoh", "abc", "abc", 0},
		{"gotoh", "ab", "", 1.4},
		{"smith-waterman", "ab", "xab", 0},
		{"smith-waterman", "ab", "ba", 2},
		{"editex", "d", "t", 1},
		{"editex", "d", "x", 2},
		{"editex", "", "ab", 4},
		{"mra", "Byrne", "Boern", 3},
		{"mra", "Smith", "Smith", 0},
		{"jaccard", "abc", "abd", 0.5},
		{"tversky", "abc", "abd", 0.5},
		{"sorensen-dice", "abc", "abd", 1.0 / 3},
		{"overlap", "abc", "abd", 1.0 / 3},
		{"cosine", "abc", "abd", 1.0 / 3},
		{"tanimoto", "abc", "abd", 1},
		{"bag", "abc", "abd", 1},
		{"bag", "aab", "b", 2},
		{"monge-elkan", "hello world", "world hello", 0},
		{"monge-elkan", "hello", "hallo", 0.2},
		{"monge-elkan", "abc", "cab", 0},
		{"monge-elkan", "abc", "xbz", 2.0 / 3},
		{"monge-elkan", "ab", "abc", 0},
		{"monge-elkan", "abc", "ab", 1.0 / 3},
		{"monge-elkan", "", "abc", 1},
		{"longest-common-subsequence", "ABCBDAB", "BDCABA", 3},
		{"longest-common-substring", "abcdef", "zcdez", 3},
		{"ratcliff-obershelp", "WIKIMEDIA", "WIKIMANIA", 1 - 14.0/18},
		{"prefix", "abcd", "abxy", 2},
		{"postfix", "xxcd", "abcd", 2},
		{"length", "abc", "a", 2},
		{"identity", "abc", "abc", 0},
		{"identity", "abc", "abd", 1},
		{"matrix", "abc", "abd", 1},
		{"rle", "aaaa", "aaaa", 0},
	}

	for _, tc := range tests {
		t.Run(tc.metric+"/"+tc.a+"/"+tc.b, func(t *testing.T) {
			fn, err := Default().Resolve(tc.metric)
			require.NoError(t, err)
			got, err := fn(tc.a, tc.b)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestJaroFamily(t *testing.T) {
	fn, err := Default().Resolve("jaro")
	require.NoError(t, err)
	d, err := fn("MARTHA", "MARHTA")
	require.NoError(t, err)
	assert.InDelta(t, 1-0.944444, d, 1e-5)

	fn, err = Default().Resolve("jaro-winkler")
	require.NoError(t, err)
	d, err = fn("MARTHA", "MARHTA")
	require.NoError(t, err)
	assert.InDelta(t, 1-0.961111, d, 1e-5)

	d, err = fn("DIXON", "DICKSONX")
	require.NoError(t, err)
	assert.InDelta(t, 1-0.813333, d, 1e-5)

	fn, err = Default().Resolve("strcmp95")
	require.NoError(t, err)
	d, err = fn("MARTHA", "MARHTA")
	require.NoError(t, err)
	assert.InDelta(t, 1-0.961111, d, 1e-5)
}

func TestHammingRequiresEqualLength(t *testing.T) {
	fn, err := Default().Resolve("hamming")
	require.NoError(t, err)

	_, err = fn("abc", "ab")
	assert.ErrorIs(t, err, domain.ErrMetricPrecondition)

	d, err := fn("same", "same")
	require.NoError(t, err)
	assert.Zero(t, d)
}

func TestTanimotoDisjointIsInfinite(t *testing.T) {
	d, err := tanimoto("abc", "xyz", DefaultConfig())
	require.NoError(t, err)
	assert.True(t, math.IsInf(d, 1))
}

func TestIdenticalTextsAreAtZero(t *testing.T) {
	text := "The quick brown fox\njumps over the lazy dog."
	for _, m := range Default().Metrics() {
		if m.Family == FamilyCompression {
			continue
		}
		t.Run(m.Name, func(t *testing.T) {
			d, err := m.Distance(text, text, DefaultConfig())
			require.NoError(t, err)
			assert.Zero(t, d)
		})
	}
}

func TestDistancesAreNonNegative(t *testing.T) {
	pairs := [][2]string{
		{"hello from test-1", "hi from test-2"},
		{"", "something"},
		{"abc", "xyz"},
		{"Ünïcödé", "unicode"},
	}
	for _, m := range Default().Metrics() {
		if m.Name == "hamming" {
			continue
		}
		for _, p := range pairs {
			d, err := m.Distance(p[0], p[1], DefaultConfig())
			require.NoError(t, err, m.Name)
			assert.GreaterOrEqual(t, d, 0.0, "%s(%q, %q)", m.Name, p[0], p[1])
			if m.Bounded {
				assert.LessOrEqual(t, d, 1.0, "%s(%q, %q)", m.Name, p[0], p[1])
			}
		}
	}
}

func TestDistancesAreSymmetricWhereExpected(t *testing.T) {
	symmetric := []string{"levenshtein", "damerau-levenshtein", "jaccard", "cosine", "length", "longest-common-subsequence"}
	for _, name := range symmetric {
		fn, err := Default().Resolve(name)
		require.NoError(t, err)
		ab, err := fn("configuration-a", "konfiguration b")
		require.NoError(t, err)
		ba, err := fn("konfiguration b", "configuration-a")
		require.NoError(t, err)
		assert.InDelta(t, ab, ba, 1e-12, name)
	}
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.GapCost = -1
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.PrefixWeight = 0.3
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.MLIPNSThreshold = 2
	assert.Error(t, cfg.Validate())
}
