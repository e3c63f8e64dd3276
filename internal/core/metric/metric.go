// Package metric holds the registry of string distance algorithms.
//
// Every algorithm is exposed as a distance: zero means the two texts are
// identical for that algorithm. Ranges are not unified across algorithms;
// Bounded reports whether a metric stays within [0, 1].
package metric

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/baditaflorin/mesi/internal/core/domain"
	"github.com/baditaflorin/mesi/internal/ports"
)

// Family groups algorithms that share an approach.
type Family string

const (
	FamilyEdit        Family = "edit"
	FamilyAlignment   Family = "alignment"
	FamilyPhonetic    Family = "phonetic"
	FamilyToken       Family = "token"
	FamilySequence    Family = "sequence"
	FamilyCompression Family = "compression"
	FamilySimple      Family = "simple"
)

// DefaultAlgorithm is used when no algorithm is requested.
const DefaultAlgorithm = "levenshtein"

// Config carries the tunable parameters of the algorithms that have any.
type Config struct {
	// GapCost is the linear gap penalty of needleman-wunsch and smith-waterman.
	GapCost float64
	// GapOpen and GapExtend are the affine gap penalties of gotoh.
	GapOpen   float64
	GapExtend float64
	// PrefixWeight scales the common-prefix boost of jaro-winkler.
	PrefixWeight float64
	// MLIPNSThreshold and MLIPNSMaxMismatches drive mlipns.
	MLIPNSThreshold     float64
	MLIPNSMaxMismatches int
	// TverskyAlpha and TverskyBeta weight the two sides of tversky.
	TverskyAlpha float64
	TverskyBeta  float64
}

// DefaultConfig returns the parameters every algorithm uses by default.
func DefaultConfig() Config {
	return Config{
		GapCost:             1,
		GapOpen:             1,
		GapExtend:           0.4,
		PrefixWeight:        0.1,
		MLIPNSThreshold:     0.25,
		MLIPNSMaxMismatches: 2,
		TverskyAlpha:        1,
		TverskyBeta:         1,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.GapCost < 0 || c.GapOpen < 0 || c.GapExtend < 0 {
		return errors.New("gap penalties must not be negative")
	}
	if c.PrefixWeight < 0 || c.PrefixWeight > 0.25 {
		return errors.New("prefix weight must be between 0 and 0.25")
	}
	if c.MLIPNSThreshold < 0 || c.MLIPNSThreshold > 1 {
		return errors.New("mlipns threshold must be between 0 and 1")
	}
	if c.MLIPNSMaxMismatches < 0 {
		return errors.New("mlipns max mismatches must not be negative")
	}
	if c.TverskyAlpha < 0 || c.TverskyBeta < 0 {
		return errors.New("tversky weights must not be negative")
	}
	return nil
}

// Func computes a distance between a and b.
type Func func(a, b string, cfg Config) (float64, error)

// Metric is a named distance algorithm.
type Metric struct {
	Name    string
	Family  Family
	Bounded bool
	fn      Func
}

// New creates a Metric.
func New(name string, family Family, bounded bool, fn Func) Metric {
	return Metric{Name: name, Family: family, Bounded: bounded, fn: fn}
}

// Distance applies the metric to a and b.
func (m Metric) Distance(a, b string, cfg Config) (float64, error) {
	if m.fn == nil {
		return 0, fmt.Errorf("metric %q has no implementation", m.Name)
	}
	return m.fn(a, b, cfg)
}

// Registry is a read-only lookup table of metrics.
type Registry struct {
	metrics map[string]Metric
	names   []string
}

// NewRegistry builds a registry from metrics. Names must be unique and non-empty.
func NewRegistry(metrics ...Metric) (*Registry, error) {
	r := &Registry{metrics: make(map[string]Metric, len(metrics))}
	for _, m := range metrics {
		if m.Name == "" {
			return nil, errors.New("metric name must not be empty")
		}
		if _, dup := r.metrics[m.Name]; dup {
			return nil, fmt.Errorf("metric %q registered twice", m.Name)
		}
		r.metrics[m.Name] = m
		r.names = append(r.names, m.Name)
	}
	sort.Strings(r.names)
	return r, nil
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r, err := NewRegistry(builtins()...)
	if err != nil {
		panic(err)
	}
	return r
})

// Default returns the registry holding every built-in algorithm.
func Default() *Registry {
	return defaultRegistry()
}

// Lookup returns the metric registered under name.
func (r *Registry) Lookup(name string) (Metric, error) {
	m, ok := r.metrics[name]
	if !ok {
		return Metric{}, fmt.Errorf("%w: %s is not a valid distance algorithm", domain.ErrUnknownMetric, name)
	}
	return m, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Metrics returns the registered metrics sorted by name.
func (r *Registry) Metrics() []Metric {
	out := make([]Metric, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.metrics[name])
	}
	return out
}

// Resolve binds the named metric to the default configuration.
func (r *Registry) Resolve(name string) (ports.DistanceFunc, error) {
	return r.Bind(DefaultConfig()).Resolve(name)
}

// Bind returns a resolver that applies cfg to every metric it resolves.
func (r *Registry) Bind(cfg Config) ports.MetricResolver {
	return boundResolver{registry: r, config: cfg}
}

type boundResolver struct {
	registry *Registry
	config   Config
}

func (br boundResolver) Resolve(name string) (ports.DistanceFunc, error) {
	m, err := br.registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	cfg := br.config
	return func(a, b string) (float64, error) {
		return m.Distance(a, b, cfg)
	}, nil
}

func builtins() []Metric {
	return []Metric{
		New("hamming", FamilyEdit, false, hamming),
		New("levenshtein", FamilyEdit, false, levenshteinDistance),
		New("damerau-levenshtein", FamilyEdit, false, damerauLevenshtein),

		New("needleman-wunsch", FamilyAlignment, false, needlemanWunsch),
		New("gotoh", FamilyAlignment, false, gotoh),
		New("smith-waterman", FamilyAlignment, false, smithWaterman),

		New("jaro", FamilyPhonetic, true, jaro),
		New("jaro-winkler", FamilyPhonetic, true, jaroWinkler),
		New("mlipns", FamilyPhonetic, true, mlipns),
		New("strcmp95", FamilyPhonetic, true, strcmp95),
		New("editex", FamilyPhonetic, false, editex),
		New("mra", FamilyPhonetic, false, mra),

		New("jaccard", FamilyToken, true, jaccard),
		New("sorensen-dice", FamilyToken, true, sorensenDice),
		New("tversky", FamilyToken, true, tversky),
		New("overlap", FamilyToken, true, overlap),
		New("tanimoto", FamilyToken, false, tanimoto),
		New("cosine", FamilyToken, true, cosine),
		New("bag", FamilyToken, false, bag),
		New("monge-elkan", FamilyToken, true, mongeElkan),

		New("longest-common-subsequence", FamilySequence, false, lcsSeq),
		New("longest-common-substring", FamilySequence, false, lcsStr),
		New("ratcliff-obershelp", FamilySequence, true, ratcliffObershelp),

		New("arithmetic-coding", FamilyCompression, false, ncd(arithSize)),
		New("rle", FamilyCompression, false, ncd(textSize(rleEncode))),
		New("bwt-rle", FamilyCompression, false, ncd(textSize(bwtRLEEncode))),
		New("square-root", FamilyCompression, false, ncd(sqrtSize)),
		New("entropy", FamilyCompression, false, ncd(entropySize)),
		New("bz2", FamilyCompression, false, ncd(binarySize(bz2Compress))),
		New("lzma", FamilyCompression, false, ncd(binarySize(lzmaCompress))),
		New("zlib", FamilyCompression, false, ncd(binarySize(zlibCompress))),
		New("zstd", FamilyCompression, false, ncd(binarySize(zstdCompress))),
		New("brotli", FamilyCompression, false, ncd(binarySize(brotliCompress))),
		New("snappy", FamilyCompression, false, ncd(binarySize(snappyCompress))),

		New("prefix", FamilySimple, false, prefix),
		New("postfix", FamilySimple, false, postfix),
		New("length", FamilySimple, false, lengthDistance),
		New("identity", FamilySimple, true, identity),
		New("matrix", FamilySimple, true, matrix),
	}
}
