package metric

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRLEEncode(t *testing.T) {
	assert.Equal(t, "3abcc", rleEncode([]rune("aaabcc")))
	assert.Equal(t, "", rleEncode(nil))
}

func TestBurrowsWheeler(t *testing.T) {
	got := burrowsWheeler([]rune("banana\x00"))
	assert.Equal(t, "annb\x00aa", string(got))
}

func TestBWTRLEKeepsTextsWithTerminator(t *testing.T) {
	assert.Equal(t, rleEncode([]rune("a\x00b")), bwtRLEEncode([]rune("a\x00b")))
	assert.Equal(t, "\x00", bwtRLEEncode(nil))
}

func TestArithSize(t *testing.T) {
	size, err := arithSize("aab")
	require.NoError(t, err)
	assert.Equal(t, 2.0, size)

	size, err = arithSize("aaaa")
	require.NoError(t, err)
	assert.Zero(t, size)

	size, err = arithSize("")
	require.NoError(t, err)
	assert.Zero(t, size)
}

func TestEntropySize(t *testing.T) {
	size, err := entropySize("ab")
	require.NoError(t, err)
	assert.InDelta(t, 2.0, size, 1e-9)

	size, err = entropySize("")
	require.NoError(t, err)
	assert.Equal(t, 1.0, size)
}

func TestNCDRanksSimilarTextsCloser(t *testing.T) {
	base := strings.Repeat("the quick brown fox jumps over the lazy dog. ", 20)
	near := strings.Replace(base, "lazy", "sleepy", 1)
	far := strings.Repeat("lorem ipsum dolor sit amet, consectetur adipiscing. ", 20)

	for _, name := range []string{"bz2", "lzma", "zlib", "zstd", "brotli", "snappy"} {
		t.Run(name, func(t *testing.T) {
			fn, err := Default().Resolve(name)
			require.NoError(t, err)
			dNear, err := fn(base, near)
			require.NoError(t, err)
			dFar, err := fn(base, far)
			require.NoError(t, err)
			assert.Less(t, dNear, dFar)
		})
	}
}

func TestNCDEmptyTexts(t *testing.T) {
	for _, name := range []string{"arithmetic-coding", "rle", "square-root", "entropy", "snappy"} {
		fn, err := Default().Resolve(name)
		require.NoError(t, err)
		d, err := fn("", "")
		require.NoError(t, err)
		assert.Zero(t, d, name)
	}
}

func BenchmarkCompressionMetrics(b *testing.B) {
	text := strings.Repeat("configuration value = 42\n", 200)
	other := strings.Replace(text, "42", "43", 10)
	for _, name := range []string{"zlib", "zstd", "brotli", "bz2", "lzma"} {
		fn, err := Default().Resolve(name)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := fn(text, other); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
