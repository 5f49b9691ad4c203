package enrich

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/poiesic/tweetlabel/ai"
	"github.com/poiesic/tweetlabel/core"
	"github.com/stretchr/testify/require"
)

// makeRecords returns n records whose text is "tweet <i>".
func makeRecords(n int) []*core.Record {
	records := make([]*core.Record, n)
	for i := range records {
		records[i] = &core.Record{
			Index:              i,
			Tweet:              core.TweetData{Index: 100 + i},
			TextRepresentation: fmt.Sprintf("tweet %d", i),
		}
	}
	return records
}

// textIndex recovers i from "tweet <i>".
func textIndex(t *testing.T, text string) int {
	t.Helper()
	i, err := strconv.Atoi(strings.TrimPrefix(text, "tweet "))
	require.NoError(t, err)
	return i
}

// indexTaggingEmbedder returns a vector whose only element is the index
// encoded in each text, so a mis-paired vector is detectable.
func indexTaggingEmbedder(t *testing.T) ai.EmbedderFunc {
	return func(ctx context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i, text := range texts {
			out[i] = []float32{float32(textIndex(t, text))}
		}
		return out, nil
	}
}

// evenIsPolitical labels records with an even index as political.
func evenIsPolitical(t *testing.T) ai.ClassifierFunc {
	return func(ctx context.Context, text string) (bool, error) {
		return textIndex(t, text)%2 == 0, nil
	}
}

func newTestPipeline(t *testing.T, c ai.Classifier, e ai.Embedder, opts ...Option) *Pipeline {
	t.Helper()
	p, err := NewPipeline(c, e, opts...)
	require.NoError(t, err)
	return p
}
