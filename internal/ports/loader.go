package ports

import (
	"context"

	"github.com/baditaflorin/mesi/internal/core/domain"
)

// ContentLoader reads the raw contents of both files of a pair.
type ContentLoader interface {
	Load(ctx context.Context, pair domain.FilePair) (string, string, error)
}
