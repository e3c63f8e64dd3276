package normalizer

import (
	"unicode"
	"unicode/utf8"

	"github.com/baditaflorin/mesi/internal/pool"
	"github.com/baditaflorin/mesi/internal/ports"
)

// WhitespaceNormalizer removes every whitespace character, so texts that only
// differ in indentation, line breaks or spacing compare as equal.
type WhitespaceNormalizer struct {
	// asciiSpace marks the ASCII bytes unicode.IsSpace accepts.
	asciiSpace [utf8.RuneSelf]bool
	bytePool   *pool.BufferPool
}

// NewWhitespaceNormalizer creates a whitespace-stripping normalizer.
func NewWhitespaceNormalizer() ports.Normalizer {
	n := &WhitespaceNormalizer{
		bytePool: pool.NewBufferPool(8192),
	}
	for i := 0; i < utf8.RuneSelf; i++ {
		n.asciiSpace[i] = unicode.IsSpace(rune(i))
	}
	return n
}

// Normalize returns text without any whitespace.
func (n *WhitespaceNormalizer) Normalize(text string) string {
	if len(text) == 0 {
		return ""
	}

	buffer := n.bytePool.Get()
	defer n.bytePool.Put(buffer)
	if cap(*buffer) < len(text) {
		*buffer = make([]byte, 0, len(text))
	}

	for i := 0; i < len(text); {
		b := text[i]
		if b < utf8.RuneSelf {
			if !n.asciiSpace[b] {
				*buffer = append(*buffer, b)
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		if !unicode.IsSpace(r) {
			*buffer = append(*buffer, text[i:i+size]...)
		}
		i += size
	}
	return string(*buffer)
}

// IdentityNormalizer leaves text unchanged.
type IdentityNormalizer struct{}

// NewIdentityNormalizer creates a normalizer that returns its input.
func NewIdentityNormalizer() ports.Normalizer {
	return IdentityNormalizer{}
}

// Normalize returns text as is.
func (IdentityNormalizer) Normalize(text string) string {
	return text
}
