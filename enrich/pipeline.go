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


package enrich

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/tweetlabel/ai"
	"github.com/poiesic/tweetlabel/core"
	"golang.org/x/time/rate"
)

// DefaultConcurrency is the default number of outstanding classifier calls.
const DefaultConcurrency = 10

// Pipeline labels and embeds a batch of records.
// Only the classification stage fans out; embedding is one batched call.
type Pipeline struct {
	classifier  ai.Classifier
	embedder    ai.Embedder
	concurrency int
	limiter     *rate.Limiter
	dimensions  int
	normalize   bool

	progress         io.Writer
	progressInterval int

	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithConcurrency sets the maximum number of outstanding classifier calls.
// Default is DefaultConcurrency.
func WithConcurrency(k int) Option {
	return func(p *Pipeline) error {
		if k < 1 {
			return fmt.Errorf("concurrency must be at least 1, got %d", k)
		}
		p.concurrency = k
		return nil
	}
}

// WithRateLimit paces classifier calls to at most rps per second with the
// given burst. A non-positive rps disables pacing.
func WithRateLimit(rps float64, burst int) Option {
	return func(p *Pipeline) error {
		if rps <= 0 {
			p.limiter = nil
			return nil
		}
		if burst < 1 {
			burst = 1
		}
		p.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		return nil
	}
}

// WithDimensions rejects embedding batches whose vectors are not exactly
// dims long. Zero disables the check.
func WithDimensions(dims int) Option {
	return func(p *Pipeline) error {
		if dims < 0 {
			return fmt.Errorf("dimensions must not be negative, got %d", dims)
		}
		p.dimensions = dims
		return nil
	}
}

// WithNormalize scales every vector to unit length before it is returned.
func WithNormalize(normalize bool) Option {
	return func(p *Pipeline) error {
		p.normalize = normalize
		return nil
	}
}

// WithProgress writes classification progress to w every interval records.
func WithProgress(w io.Writer, interval int) Option {
	return func(p *Pipeline) error {
		p.progress = w
		p.progressInterval = interval
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a pipeline around the given collaborators.
func NewPipeline(classifier ai.Classifier, embedder ai.Embedder, opts ...Option) (*Pipeline, error) {
	if classifier == nil {
		return nil, ErrClassifierRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	p := &Pipeline{
		classifier:  classifier,
		embedder:    embedder,
		concurrency: DefaultConcurrency,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	p.logger = p.logger.With("component", "enrich")

	return p, nil
}

// Concurrency returns the configured classifier concurrency.
func (p *Pipeline) Concurrency() int {
	return p.concurrency
}

// Run classifies every record, drops the failures, and embeds the survivors.
// Per-record classification failures are logged and counted in Stats; only
// an embedding failure or cancellation during embedding returns an error.
func (p *Pipeline) Run(ctx context.Context, records []*core.Record) ([]core.EnrichedRecord, Stats, error) {
	start := time.Now()
	stats := Stats{Loaded: len(records)}

	outcomes := p.ClassifyAll(ctx, records)
	pairs, dropped := FilterSucceeded(outcomes)

	stats.Succeeded = len(pairs)
	stats.Failed = dropped
	for _, pair := range pairs {
		if pair.Label {
			stats.Political++
		}
	}

	p.logger.Info("classification finished",
		"records", stats.Loaded,
		"succeeded", stats.Succeeded,
		"political", stats.Political)
	if dropped > 0 {
		p.logger.Warn("classification completed with failures", "failed", dropped)
	}

	enriched, err := p.EmbedAll(ctx, pairs)
	stats.Elapsed = time.Since(start)
	if err != nil {
		return nil, stats, err
	}
	stats.Embedded = len(enriched)

	return enriched, stats, nil
}
