package metric

import (
	"bytes"
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/andybalholm/brotli"
	"github.com/dsnet/compress/bzip2"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// sizer returns the compressed size of a text.
type sizer func(s string) (float64, error)

// ncd builds a normalized compression distance from a compressed-size
// function:
//
//	NCD(x, y) = (C(xy) - min(C(x), C(y))) / max(C(x), C(y))
//
// where C(xy) is the smaller of both concatenation orders.
func ncd(size sizer) Func {
	return func(a, b string, _ Config) (float64, error) {
		ab, err := size(a + b)
		if err != nil {
			return 0, err
		}
		ba, err := size(b + a)
		if err != nil {
			return 0, err
		}
		ca, err := size(a)
		if err != nil {
			return 0, err
		}
		cb, err := size(b)
		if err != nil {
			return 0, err
		}
		longest := max(ca, cb)
		if longest == 0 {
			return 0, nil
		}
		return (min(ab, ba) - min(ca, cb)) / longest, nil
	}
}

func textSize(encode func([]rune) string) sizer {
	return func(s string) (float64, error) {
		return float64(len([]rune(encode([]rune(s))))), nil
	}
}

func binarySize(compress func([]byte) ([]byte, error)) sizer {
	return func(s string) (float64, error) {
		out, err := compress([]byte(s))
		if err != nil {
			return 0, err
		}
		return float64(len(out)), nil
	}
}

// rleEncode writes runs longer than two as count followed by the character.
func rleEncode(data []rune) string {
	var sb strings.Builder
	for i := 0; i < len(data); {
		j := i
		for j < len(data) && data[j] == data[i] {
			j++
		}
		switch n := j - i; {
		case n > 2:
			sb.WriteString(strconv.Itoa(n))
			sb.WriteRune(data[i])
		case n == 2:
			sb.WriteRune(data[i])
			sb.WriteRune(data[i])
		default:
			sb.WriteRune(data[i])
		}
		i = j
	}
	return sb.String()
}

const bwtTerminator = '\x00'

// bwtRLEEncode applies the Burrows-Wheeler transform before run-length
// encoding. Texts that already contain the terminator are encoded as is.
func bwtRLEEncode(data []rune) string {
	if len(data) == 0 {
		return rleEncode([]rune{bwtTerminator})
	}
	for _, r := range data {
		if r == bwtTerminator {
			return rleEncode(data)
		}
	}
	return rleEncode(burrowsWheeler(append(append([]rune(nil), data...), bwtTerminator)))
}

func burrowsWheeler(data []rune) []rune {
	n := len(data)
	rotations := make([]int, n)
	for i := range rotations {
		rotations[i] = i
	}
	sort.Slice(rotations, func(x, y int) bool {
		i, j := rotations[x], rotations[y]
		for k := 0; k < n; k++ {
			ci, cj := data[(i+k)%n], data[(j+k)%n]
			if ci != cj {
				return ci < cj
			}
		}
		return false
	})
	out := make([]rune, n)
	for k, i := range rotations {
		out[k] = data[(i+n-1)%n]
	}
	return out
}

func sqrtSize(s string) (float64, error) {
	var total float64
	for _, c := range countRunes(s) {
		total += math.Sqrt(float64(c))
	}
	return total, nil
}

// entropySize is one plus the Shannon entropy (bits) of the characters.
func entropySize(s string) (float64, error) {
	counts := countRunes(s)
	total := float64(counts.size())
	var entropy float64
	for _, c := range counts {
		p := float64(c) / total
		entropy -= p * math.Log2(p)
	}
	return 1 + entropy, nil
}

// arithSize is the number of bits of the shortest binary fraction that falls
// inside the interval an exact arithmetic coder assigns to s.
func arithSize(s string) (float64, error) {
	data := []rune(s)
	if len(data) == 0 {
		return 0, nil
	}

	// Symbols ordered by descending frequency, ties by first appearance.
	counts := make(map[rune]int64)
	var order []rune
	for _, r := range data {
		if _, seen := counts[r]; !seen {
			order = append(order, r)
		}
		counts[r]++
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })

	total := int64(len(data))
	type probRange struct{ start, width *big.Rat }
	probs := make(map[rune]probRange, len(order))
	var cumulative int64
	for _, r := range order {
		probs[r] = probRange{
			start: big.NewRat(cumulative, total),
			width: big.NewRat(counts[r], total),
		}
		cumulative += counts[r]
	}

	start := new(big.Rat)
	width := big.NewRat(1, 1)
	tmp := new(big.Rat)
	for _, r := range data {
		p := probs[r]
		start.Add(start, tmp.Mul(p.start, width))
		width.Mul(width, p.width)
	}
	end := new(big.Rat).Add(start, width)

	out := new(big.Rat)
	denom := big.NewInt(1)
	num := new(big.Int)
	for out.Cmp(start) < 0 || out.Cmp(end) >= 0 {
		num.Mul(start.Num(), denom)
		num.Quo(num, start.Denom())
		num.Add(num, big.NewInt(1))
		out.SetFrac(num, denom)
		denom = new(big.Int).Lsh(denom, 1)
	}

	numerator := new(big.Int).Set(out.Num())
	if numerator.Sign() == 0 {
		return 0, nil
	}
	// ceil(log2(n)) == bitlen(n-1) for n >= 1.
	return float64(numerator.Sub(numerator, big.NewInt(1)).BitLen()), nil
}

// Stream headers carry no information about the content and are left out
// of the compressed size.
const (
	bz2HeaderLen  = 15
	zlibHeaderLen = 2
)

func bz2Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{Level: bzip2.BestCompression})
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return stripHeader(buf.Bytes(), bz2HeaderLen), nil
}

func lzmaCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func zlibCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.DefaultCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return stripHeader(buf.Bytes(), zlibHeaderLen), nil
}

// zstdEncoder is shared; EncodeAll is safe for concurrent use.
var zstdEncoder = sync.OnceValues(func() (*zstd.Encoder, error) {
	return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
})

func zstdCompress(data []byte) ([]byte, error) {
	enc, err := zstdEncoder()
	if err != nil {
		return nil, err
	}
	return enc.EncodeAll(data, nil), nil
}

func brotliCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, brotli.BestCompression)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func snappyCompress(data []byte) ([]byte, error) {
	return snappy.Encode(nil, data), nil
}

func stripHeader(b []byte, n int) []byte {
	if len(b) <= n {
		return nil
	}
	return b[n:]
}
