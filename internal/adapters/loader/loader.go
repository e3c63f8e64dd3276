// Package loader reads file contents for the distance engine.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/baditaflorin/mesi/internal/core/domain"
	"github.com/baditaflorin/mesi/internal/pool"
	"github.com/baditaflorin/mesi/internal/ports"
)

// Config holds configuration for the file loader.
type Config struct {
	// CacheSize is the number of file contents kept in memory; 0 disables the cache.
	CacheSize int
	// BufferSize is the initial capacity of pooled read buffers.
	BufferSize int
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		CacheSize:  0,
		BufferSize: 64 * 1024,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.CacheSize < 0 {
		return errors.New("cache size cannot be negative")
	}
	if c.BufferSize <= 0 {
		return errors.New("buffer size must be positive")
	}
	return nil
}

// FileLoader reads both files of a pair from the local filesystem.
type FileLoader struct {
	buffers *pool.BufferPool
	cache   *lru.Cache[string, string]
	logger  ports.Logger
}

// New creates a file loader.
func New(config Config, logger ports.Logger) (*FileLoader, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	fl := &FileLoader{
		buffers: pool.NewBufferPool(config.BufferSize),
		logger:  logger,
	}
	if config.CacheSize > 0 {
		cache, err := lru.New[string, string](config.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("creating content cache: %w", err)
		}
		fl.cache = cache
	}
	return fl, nil
}

// Load returns the full text of both files of pair.
func (fl *FileLoader) Load(ctx context.Context, pair domain.FilePair) (string, string, error) {
	first, err := fl.read(ctx, pair.First)
	if err != nil {
		return "", "", err
	}
	second, err := fl.read(ctx, pair.Second)
	if err != nil {
		return "", "", err
	}
	return first, second, nil
}

func (fl *FileLoader) read(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if fl.cache != nil {
		if content, ok := fl.cache.Get(path); ok {
			return content, nil
		}
	}

	content, err := fl.readFile(path)
	if err != nil {
		if fl.logger != nil {
			fl.logger.Error("Failed to read file", "path", path, "error", err)
		}
		return "", fmt.Errorf("%w: reading %s: %v", domain.ErrIOFailure, path, err)
	}
	if !utf8.ValidString(content) {
		if fl.logger != nil {
			fl.logger.Error("File is not valid UTF-8", "path", path)
		}
		return "", fmt.Errorf("%w: reading %s: not valid UTF-8 text", domain.ErrIOFailure, path)
	}

	if fl.cache != nil {
		fl.cache.Add(path, content)
	}
	return content, nil
}

func (fl *FileLoader) readFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buffer := fl.buffers.Get()
	defer fl.buffers.Put(buffer)

	if info, err := f.Stat(); err == nil && int(info.Size()) > cap(*buffer) {
		*buffer = make([]byte, 0, int(info.Size())+1)
	}

	for {
		if len(*buffer) == cap(*buffer) {
			*buffer = append(*buffer, 0)[:len(*buffer)]
		}
		n, err := f.Read((*buffer)[len(*buffer):cap(*buffer)])
		*buffer = (*buffer)[:len(*buffer)+n]
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}
	return string(*buffer), nil
}
