// Package cache provides ai.Classifier and ai.Embedder decorators that
// memoize answers in a storage.ResponseCache.
//
// Cache failures never fail a request: a read error is treated as a miss and
// a write error is logged.
package cache

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/tweetlabel/ai"
	"github.com/poiesic/tweetlabel/core"
	"github.com/poiesic/tweetlabel/storage"
)

// Option configures a decorator.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used to report cache failures.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func buildOptions(component string, opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = o.logger.With("component", component)
	return o
}

// Classifier wraps an ai.Classifier with a label cache.
type Classifier struct {
	next  ai.Classifier
	cache storage.ResponseCache
	model string

	logger *slog.Logger
}

var _ ai.Classifier = (*Classifier)(nil)

// NewClassifier returns a caching classifier. model scopes the cache keys so
// answers from different models are never mixed.
func NewClassifier(next ai.Classifier, cache storage.ResponseCache, model string, opts ...Option) *Classifier {
	o := buildOptions("classifier-cache", opts)
	return &Classifier{
		next:   next,
		cache:  cache,
		model:  model,
		logger: o.logger,
	}
}

// Classify returns the cached label for text, or asks the wrapped classifier
// and stores its answer. Failures are not cached.
func (c *Classifier) Classify(ctx context.Context, text string) (bool, error) {
	key := LabelKey(c.model, text)

	label, found, err := c.cache.GetLabel(ctx, key)
	if err != nil {
		c.logger.Warn("label cache read failed", "err", err)
	} else if found {
		return label, nil
	}

	label, err = c.next.Classify(ctx, text)
	if err != nil {
		return false, err
	}

	if err := c.cache.PutLabel(ctx, key, label); err != nil {
		c.logger.Warn("label cache write failed", "err", err)
	}
	return label, nil
}

// Embedder wraps an ai.Embedder with a vector cache.
type Embedder struct {
	next       ai.Embedder
	cache      storage.ResponseCache
	model      string
	dimensions int

	logger *slog.Logger
}

var _ ai.Embedder = (*Embedder)(nil)

// NewEmbedder returns a caching embedder. model and dimensions scope the
// cache keys.
func NewEmbedder(next ai.Embedder, cache storage.ResponseCache, model string, dimensions int, opts ...Option) *Embedder {
	o := buildOptions("embedding-cache", opts)
	return &Embedder{
		next:       next,
		cache:      cache,
		model:      model,
		dimensions: dimensions,
		logger:     o.logger,
	}
}

// EmbedTexts returns cached vectors where available and sends the remaining
// texts to the wrapped embedder in a single call. Results are in input order.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	keys := make([]core.ID, len(texts))
	for i, text := range texts {
		keys[i] = VectorKey(e.model, e.dimensions, text)
	}

	vectors, err := e.cache.GetVectors(ctx, keys...)
	if err != nil {
		e.logger.Warn("vector cache read failed", "err", err)
		vectors = make([][]float32, len(texts))
	}

	var missTexts []string
	var missPos []int
	for i, v := range vectors {
		if v == nil {
			missTexts = append(missTexts, texts[i])
			missPos = append(missPos, i)
		}
	}

	e.logger.Debug("vector cache lookup", "hits", len(texts)-len(missTexts), "misses", len(missTexts))
	if len(missTexts) == 0 {
		return vectors, nil
	}

	fresh, err := e.next.EmbedTexts(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(fresh) != len(missTexts) {
		return nil, fmt.Errorf("%w: embedder returned %d vectors for %d texts", ai.ErrEmbedding, len(fresh), len(missTexts))
	}

	entries := make(map[core.ID][]float32, len(fresh))
	for j, pos := range missPos {
		vectors[pos] = fresh[j]
		entries[keys[pos]] = fresh[j]
	}
	if err := e.cache.PutVectors(ctx, entries); err != nil {
		e.logger.Warn("vector cache write failed", "err", err)
	}

	return vectors, nil
}

// LabelKey is the cache key of a classifier answer.
func LabelKey(model, text string) core.ID {
	return core.IDFromContent(fmt.Sprintf("label|%s|%s", model, text))
}

// VectorKey is the cache key of an embedding.
func VectorKey(model string, dimensions int, text string) core.ID {
	return core.IDFromContent(fmt.Sprintf("vector|%s|%d|%s", model, dimensions, text))
}
