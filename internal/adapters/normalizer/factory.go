package normalizer

import (
	"github.com/baditaflorin/mesi/internal/ports"
)

// NormalizerFactory creates normalizers by type
type NormalizerFactory struct{}

// NewNormalizerFactory creates a new normalizer factory
func NewNormalizerFactory() *NormalizerFactory {
	return &NormalizerFactory{}
}

// Type of normalizer to create
type NormalizerType int

const (
	// IdentityNormalizerType leaves text unchanged
	IdentityNormalizerType NormalizerType = iota
	// WhitespaceNormalizerType removes every whitespace character
	WhitespaceNormalizerType
)

// CreateNormalizer creates a normalizer of the specified type
func (f *NormalizerFactory) CreateNormalizer(normalizerType NormalizerType) ports.Normalizer {
	switch normalizerType {
	case WhitespaceNormalizerType:
		return NewWhitespaceNormalizer()
	default:
		return NewIdentityNormalizer()
	}
}
