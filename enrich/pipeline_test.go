package enrich

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/poiesic/tweetlabel/ai"
	"github.com/poiesic/tweetlabel/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPipeline(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p := newTestPipeline(t, mock.NewMockClassifier(), mock.NewMockEmbedder())
		assert.Equal(t, DefaultConcurrency, p.Concurrency())
		assert.Nil(t, p.limiter)
		assert.False(t, p.normalize)
	})

	t.Run("missing collaborators", func(t *testing.T) {
		_, err := NewPipeline(nil, mock.NewMockEmbedder())
		assert.ErrorIs(t, err, ErrClassifierRequired)

		_, err = NewPipeline(mock.NewMockClassifier(), nil)
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})

	t.Run("invalid options", func(t *testing.T) {
		_, err := NewPipeline(mock.NewMockClassifier(), mock.NewMockEmbedder(), WithConcurrency(0))
		assert.Error(t, err)

		_, err = NewPipeline(mock.NewMockClassifier(), mock.NewMockEmbedder(), WithDimensions(-1))
		assert.Error(t, err)
	})

	t.Run("rate limit", func(t *testing.T) {
		p := newTestPipeline(t, mock.NewMockClassifier(), mock.NewMockEmbedder(), WithRateLimit(5, 0))
		require.NotNil(t, p.limiter)
		assert.Equal(t, 1, p.limiter.Burst())

		p = newTestPipeline(t, mock.NewMockClassifier(), mock.NewMockEmbedder(), WithRateLimit(0, 10))
		assert.Nil(t, p.limiter)
	})
}

func TestRun_CorrelatesLabelsAndVectors(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = indexTaggingEmbedder(t)
	p := newTestPipeline(t, evenIsPolitical(t), embedder, WithConcurrency(3))

	enriched, stats, err := p.Run(context.Background(), makeRecords(12))
	require.NoError(t, err)
	require.Len(t, enriched, 12)

	for i, e := range enriched {
		assert.Equal(t, i, e.Record.Index, "survivors keep load order")
		assert.Equal(t, e.Record.Index%2 == 0, e.Label)
		assert.Equal(t, []float32{float32(e.Record.Index)}, e.Vector)
	}

	assert.Equal(t, 12, stats.Loaded)
	assert.Equal(t, 12, stats.Succeeded)
	assert.Equal(t, 0, stats.Failed)
	assert.Equal(t, 6, stats.Political)
	assert.Equal(t, 12, stats.Embedded)
	assert.Positive(t, stats.Elapsed)
}

func TestRun_SingleFailureDropsOneRecord(t *testing.T) {
	const n = 10
	classifier := ai.ClassifierFunc(func(ctx context.Context, text string) (bool, error) {
		if textIndex(t, text) == 6 {
			return false, ai.ErrClassification
		}
		return true, nil
	})
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = indexTaggingEmbedder(t)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	p := newTestPipeline(t, classifier, embedder, WithLogger(logger))

	enriched, stats, err := p.Run(context.Background(), makeRecords(n))
	require.NoError(t, err)
	require.Len(t, enriched, n-1)

	for _, e := range enriched {
		assert.NotEqual(t, 6, e.Record.Index)
		assert.Equal(t, []float32{float32(e.Record.Index)}, e.Vector)
	}
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, n-1, stats.Embedded)

	assert.Contains(t, logs.String(), "classification failed")
	assert.Contains(t, logs.String(), "index=6")
	assert.Contains(t, logs.String(), "tweet_index=106")
	assert.Contains(t, logs.String(), "completed with failures")
}

func TestRun_EmptyInput(t *testing.T) {
	classifier := mock.NewMockClassifier()
	embedder := mock.NewMockEmbedder()
	p := newTestPipeline(t, classifier, embedder)

	enriched, stats, err := p.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, enriched)
	assert.Zero(t, stats.Loaded)
	assert.Zero(t, classifier.CallCount())
	assert.Zero(t, embedder.CallCount())
}

func TestRun_AllFailedMakesNoEmbeddingCall(t *testing.T) {
	classifier := mock.NewMockClassifier()
	classifier.ClassifyFunc = func(ctx context.Context, text string) (bool, error) {
		return false, errors.New("quota exceeded")
	}
	embedder := mock.NewMockEmbedder()
	p := newTestPipeline(t, classifier, embedder)

	enriched, stats, err := p.Run(context.Background(), makeRecords(4))
	require.NoError(t, err)
	assert.Empty(t, enriched)
	assert.Equal(t, 4, stats.Failed)
	assert.Zero(t, embedder.CallCount())
}

func TestRun_EmbedderFailureIsFatal(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, ai.ErrEmbedding
	}
	p := newTestPipeline(t, mock.NewMockClassifier(), embedder)

	enriched, stats, err := p.Run(context.Background(), makeRecords(5))
	assert.Nil(t, enriched)

	var eerr *EmbeddingError
	require.True(t, errors.As(err, &eerr))
	assert.Equal(t, 5, eerr.Count)
	assert.Equal(t, 5, stats.Succeeded)
	assert.Zero(t, stats.Embedded)
}

func TestRun_Progress(t *testing.T) {
	var progress strings.Builder
	p := newTestPipeline(t, mock.NewMockClassifier(), mock.NewMockEmbedder(), WithProgress(&progress, 2))

	_, _, err := p.Run(context.Background(), makeRecords(6))
	require.NoError(t, err)

	assert.Contains(t, progress.String(), "6/6")
	assert.True(t, strings.HasSuffix(progress.String(), "\n"))
}

func TestStats_LogValue(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	logger.Info("done", "stats", Stats{Loaded: 3, Succeeded: 2, Failed: 1, Political: 1, Embedded: 2})

	out := logs.String()
	assert.Contains(t, out, "stats.loaded=3")
	assert.Contains(t, out, "stats.failed=1")
	assert.Contains(t, out, "stats.embedded=2")
}

func TestRun_CancelledRunWritesNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	classifier := ai.ClassifierFunc(func(ctx context.Context, text string) (bool, error) {
		cancel()
		return true, nil
	})
	embedder := mock.NewMockEmbedder()
	p := newTestPipeline(t, classifier, embedder, WithConcurrency(1))

	enriched, stats, err := p.Run(ctx, makeRecords(5))
	assert.Nil(t, enriched)
	assert.ErrorIs(t, err, context.Canceled)

	var eerr *EmbeddingError
	require.True(t, errors.As(err, &eerr))
	assert.Equal(t, 1, stats.Succeeded)
	assert.Equal(t, 4, stats.Failed)
	assert.Zero(t, embedder.CallCount())
}
