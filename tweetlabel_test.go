package tweetlabel

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poiesic/tweetlabel/ai"
	"github.com/poiesic/tweetlabel/ai/mock"
	"github.com/poiesic/tweetlabel/dataset"
	"github.com/poiesic/tweetlabel/enrich"
	"github.com/poiesic/tweetlabel/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeInput writes n records whose text representation is "tweet <i>".
func writeInput(t *testing.T, n int) string {
	t.Helper()
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, `{"tweet":{"index":%d,"author":{"name":"User","handle":"@user%d","verified":false},`+
			`"content":{"text":"text %d"},"engagement":{}},"textRepresentation":"tweet %d"}`+"\n", i, i, i, i)
	}
	path := filepath.Join(t.TempDir(), "tweets.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	return path
}

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.AI.Dimensions = mock.DefaultDimensions
	cfg.Concurrency = 3
	return cfg
}

func newTestLabeler(t *testing.T, cfg *Config, provider ai.AIProvider, opts ...LabelerOption) *Labeler {
	t.Helper()
	opts = append([]LabelerOption{WithProvider(provider)}, opts...)
	l, err := NewLabeler(cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestNewLabeler(t *testing.T) {
	t.Run("default provider", func(t *testing.T) {
		l, err := NewLabeler(nil)
		require.NoError(t, err)
		require.NoError(t, l.Close())
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Concurrency = 0
		l, err := NewLabeler(cfg, WithProvider(mock.NewMockProvider()))
		assert.Error(t, err)
		assert.Nil(t, l)
	})

	t.Run("cache dir is opened and closed", func(t *testing.T) {
		cfg := testConfig()
		cfg.CacheDir = filepath.Join(t.TempDir(), "cache")

		provider := mock.NewMockProvider()
		l, err := NewLabeler(cfg, WithProvider(provider))
		require.NoError(t, err)
		assert.True(t, l.ownsCache)
		_, err = os.Stat(cfg.CacheDir)
		assert.NoError(t, err)

		require.NoError(t, l.Close())
		assert.True(t, provider.(*mock.MockProvider).Closed())
	})
}

func TestLabeler_Run(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)
	l := newTestLabeler(t, testConfig(), provider)

	input := writeInput(t, 20)
	output := filepath.Join(t.TempDir(), "labeled.jsonl")

	stats, err := l.Run(context.Background(), input, output)
	require.NoError(t, err)
	assert.Equal(t, 20, stats.Loaded)
	assert.Equal(t, 20, stats.Embedded)
	assert.Equal(t, 20, provider.GetMockClassifier().CallCount())
	assert.Equal(t, 1, provider.GetMockEmbedder().CallCount())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 20)

	classifier := provider.GetMockClassifier()
	for i, line := range lines {
		res, err := dataset.DecodeLine([]byte(line))
		require.NoError(t, err)

		text := fmt.Sprintf("tweet %d", i)
		want, _ := classifier.Classify(context.Background(), text)
		assert.Equal(t, text, res.Text)
		assert.Equal(t, want, res.Label)
		assert.Equal(t, mock.DeterministicVector(text, mock.DefaultDimensions), res.Vector)
	}
}

func TestLabeler_RunDropsFailedRecords(t *testing.T) {
	classifier := mock.NewMockClassifier()
	classifier.ClassifyFunc = func(ctx context.Context, text string) (bool, error) {
		if text == "tweet 3" {
			return false, ai.ErrClassification
		}
		return true, nil
	}
	provider := mock.NewMockProviderWithServices(classifier, mock.NewMockEmbedder())
	l := newTestLabeler(t, testConfig(), provider)

	output := filepath.Join(t.TempDir(), "labeled.jsonl")
	stats, err := l.Run(context.Background(), writeInput(t, 6), output)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Failed)

	summary, err := dataset.SummarizeFile(context.Background(), output)
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Lines)
	assert.Equal(t, 5, summary.Political)
}

func TestLabeler_RunEmptyInput(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)
	l := newTestLabeler(t, testConfig(), provider)

	input := filepath.Join(t.TempDir(), "empty.jsonl")
	require.NoError(t, os.WriteFile(input, nil, 0644))
	output := filepath.Join(t.TempDir(), "labeled.jsonl")

	stats, err := l.Run(context.Background(), input, output)
	require.NoError(t, err)
	assert.Zero(t, stats.Loaded)
	assert.Zero(t, provider.GetMockClassifier().CallCount())
	assert.Zero(t, provider.GetMockEmbedder().CallCount())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestLabeler_RunEmbeddingFailureWritesNothing(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, ai.ErrEmbedding
	}
	provider := mock.NewMockProviderWithServices(mock.NewMockClassifier(), embedder)
	l := newTestLabeler(t, testConfig(), provider)

	dir := t.TempDir()
	output := filepath.Join(dir, "labeled.jsonl")

	_, err := l.Run(context.Background(), writeInput(t, 4), output)
	var eerr *enrich.EmbeddingError
	require.True(t, errors.As(err, &eerr))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no output or temp file is left behind")
}

func TestLabeler_RunLoadFailureMakesNoCalls(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)
	l := newTestLabeler(t, testConfig(), provider)

	input := filepath.Join(t.TempDir(), "bad.jsonl")
	require.NoError(t, os.WriteFile(input, []byte("{not json}\n"), 0644))

	_, err := l.Run(context.Background(), input, filepath.Join(t.TempDir(), "out.jsonl"))
	var lerr *dataset.LoadError
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, 1, lerr.Line)
	assert.Zero(t, provider.GetMockClassifier().CallCount())
}

func TestLabeler_RunUsesCache(t *testing.T) {
	cache, err := badger.NewMemoryCache()
	require.NoError(t, err)
	defer cache.Close()

	provider := mock.NewMockProvider().(*mock.MockProvider)
	l := newTestLabeler(t, testConfig(), provider, WithCache(cache))
	input := writeInput(t, 8)

	first := filepath.Join(t.TempDir(), "first.jsonl")
	_, err = l.Run(context.Background(), input, first)
	require.NoError(t, err)
	assert.Equal(t, 8, provider.GetMockClassifier().CallCount())
	assert.Equal(t, 1, provider.GetMockEmbedder().CallCount())

	second := filepath.Join(t.TempDir(), "second.jsonl")
	_, err = l.Run(context.Background(), input, second)
	require.NoError(t, err)
	assert.Equal(t, 8, provider.GetMockClassifier().CallCount(), "labels come from the cache")
	assert.Equal(t, 1, provider.GetMockEmbedder().CallCount(), "vectors come from the cache")

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestLabeler_RunStdio(t *testing.T) {
	var in bytes.Buffer
	data, err := os.ReadFile(writeInput(t, 2))
	require.NoError(t, err)
	in.Write(data)

	var out bytes.Buffer
	var progress bytes.Buffer
	l := newTestLabeler(t, testConfig(), mock.NewMockProvider(),
		WithStdio(&in, &out), WithProgress(&progress))

	_, err = l.Run(context.Background(), "-", "-")
	require.NoError(t, err)

	summary, err := dataset.Summarize(context.Background(), &out)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Lines)
	assert.Equal(t, mock.DefaultDimensions, summary.Dimensions)
	assert.Contains(t, progress.String(), "Classified: 2/2")
}

func TestLabeler_RunCompressedOutput(t *testing.T) {
	l := newTestLabeler(t, testConfig(), mock.NewMockProvider())

	output := filepath.Join(t.TempDir(), "labeled.jsonl.zst")
	_, err := l.Run(context.Background(), writeInput(t, 5), output)
	require.NoError(t, err)

	summary, err := dataset.SummarizeFile(context.Background(), output)
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Lines)
}
