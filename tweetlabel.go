// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package tweetlabel builds a political-classification training set from
// collected tweets: each tweet is labeled by a chat model, embedded, and
// written as a [text, label, vector] line.
package tweetlabel

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/poiesic/tweetlabel/ai"
	aicache "github.com/poiesic/tweetlabel/ai/cache"
	"github.com/poiesic/tweetlabel/ai/openai"
	"github.com/poiesic/tweetlabel/dataset"
	"github.com/poiesic/tweetlabel/enrich"
	"github.com/poiesic/tweetlabel/objectstore"
	"github.com/poiesic/tweetlabel/storage"
	"github.com/poiesic/tweetlabel/storage/badger"
)

// Labeler reads tweets, labels and embeds them, and writes the training set.
type Labeler struct {
	config      *Config
	provider    ai.AIProvider
	cache       storage.ResponseCache
	ownsCache   bool
	classifier  ai.Classifier
	embedder    ai.Embedder
	datasetOpts []dataset.Option
	progress    io.Writer
	logger      *slog.Logger
}

// LabelerOption configures a Labeler.
type LabelerOption func(*labelerOptions)

type labelerOptions struct {
	provider ai.AIProvider
	cache    storage.ResponseCache
	progress io.Writer
	stdin    io.Reader
	stdout   io.Writer
	logger   *slog.Logger
}

// WithProvider replaces the OpenAI provider built from Config.AI.
func WithProvider(provider ai.AIProvider) LabelerOption {
	return func(o *labelerOptions) {
		o.provider = provider
	}
}

// WithCache uses cache instead of opening Config.CacheDir.
// The caller keeps ownership of cache.
func WithCache(cache storage.ResponseCache) LabelerOption {
	return func(o *labelerOptions) {
		o.cache = cache
	}
}

// WithProgress writes classification progress to w.
func WithProgress(w io.Writer) LabelerOption {
	return func(o *labelerOptions) {
		o.progress = w
	}
}

// WithStdio sets the streams used for the "-" location.
func WithStdio(stdin io.Reader, stdout io.Writer) LabelerOption {
	return func(o *labelerOptions) {
		o.stdin = stdin
		o.stdout = stdout
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) LabelerOption {
	return func(o *labelerOptions) {
		o.logger = logger
	}
}

// NewLabeler validates cfg and wires the AI provider, the optional response
// cache and the optional object store.
func NewLabeler(cfg *Config, opts ...LabelerOption) (*Labeler, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &labelerOptions{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	l := &Labeler{
		config:   cfg,
		progress: options.progress,
		logger:   options.logger,
	}

	l.datasetOpts = append(l.datasetOpts, dataset.WithStdio(options.stdin, options.stdout))
	if cfg.ObjectStore.Enabled() {
		store, err := objectstore.NewStore(cfg.ObjectStore)
		if err != nil {
			return nil, err
		}
		l.datasetOpts = append(l.datasetOpts, dataset.WithObjectStore(store))
	}

	provider := options.provider
	if provider == nil {
		var err error
		provider, err = openai.NewProvider(&cfg.AI)
		if err != nil {
			return nil, err
		}
	}
	l.provider = provider
	l.classifier = provider.Classifier()
	l.embedder = provider.Embedder()

	l.cache = options.cache
	if l.cache == nil && cfg.CacheDir != "" {
		cache, err := badger.NewCache(cfg.CacheDir)
		if err != nil {
			provider.Close()
			return nil, err
		}
		l.cache = cache
		l.ownsCache = true
	}
	if l.cache != nil {
		l.classifier = aicache.NewClassifier(l.classifier, l.cache, cfg.AI.ClassifierModel,
			aicache.WithLogger(l.logger))
		l.embedder = aicache.NewEmbedder(l.embedder, l.cache, cfg.AI.EmbeddingModel, cfg.AI.Dimensions,
			aicache.WithLogger(l.logger))
	}

	return l, nil
}

// Close releases the provider and any cache the Labeler opened.
func (l *Labeler) Close() error {
	var errs []error
	if err := l.provider.Close(); err != nil {
		l.logger.Error("error closing AI provider", "err", err)
		errs = append(errs, err)
	}
	if l.ownsCache {
		if err := l.cache.Close(); err != nil {
			l.logger.Error("error closing response cache", "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewPipeline builds an enrichment pipeline from the Labeler's configuration.
func (l *Labeler) NewPipeline(logger *slog.Logger) (*enrich.Pipeline, error) {
	if logger == nil {
		logger = l.logger
	}
	opts := []enrich.Option{
		enrich.WithConcurrency(l.config.Concurrency),
		enrich.WithRateLimit(l.config.RateLimit, l.config.Burst),
		enrich.WithDimensions(l.config.AI.Dimensions),
		enrich.WithNormalize(l.config.Normalize),
		enrich.WithLogger(logger),
	}
	if l.progress != nil {
		opts = append(opts, enrich.WithProgress(l.progress, l.config.ProgressInterval))
	}
	return enrich.NewPipeline(l.classifier, l.embedder, opts...)
}

// Run loads input, enriches every record and writes the survivors to output.
// Nothing is written unless embedding succeeds.
func (l *Labeler) Run(ctx context.Context, input, output string) (enrich.Stats, error) {
	logger := l.logger.With("run", uuid.NewString())

	pipeline, err := l.NewPipeline(logger)
	if err != nil {
		return enrich.Stats{}, err
	}

	records, err := dataset.LoadFile(ctx, input, l.datasetOpts...)
	if err != nil {
		return enrich.Stats{}, err
	}
	logger.Info("records loaded", "input", input, "records", len(records))

	enriched, stats, err := pipeline.Run(ctx, records)
	if err != nil {
		logger.Error("run failed", "stats", stats, "err", err)
		return stats, err
	}

	w, err := dataset.Create(ctx, output, l.datasetOpts...)
	if err != nil {
		return stats, err
	}
	if err := w.WriteAll(enriched); err != nil {
		_ = w.Abort()
		return stats, err
	}
	if err := w.Close(); err != nil {
		return stats, err
	}

	logger.Info("run finished", "output", output, "stats", stats)
	return stats, nil
}
