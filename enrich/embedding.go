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

	"github.com/poiesic/tweetlabel/core"
)

// EmbedAll embeds the text of every pair in one embedder call and pairs
// vector i with pair i. An empty batch makes no call. An embedder error or a
// result of the wrong length is returned as *EmbeddingError, as is a context
// that is already done.
func (p *Pipeline) EmbedAll(ctx context.Context, pairs []core.LabeledRecord) ([]core.EnrichedRecord, error) {
	if len(pairs) == 0 {
		return []core.EnrichedRecord{}, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, &EmbeddingError{Count: len(pairs), Err: err}
	}

	texts := make([]string, len(pairs))
	for i, pair := range pairs {
		texts[i] = pair.Record.TextRepresentation
	}

	p.logger.Info("embedding batch", "count", len(texts))
	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, &EmbeddingError{Count: len(texts), Err: err}
	}
	if len(vectors) != len(texts) {
		return nil, &EmbeddingError{
			Count: len(texts),
			Err:   fmt.Errorf("%w: got %d vectors", ErrVectorCountMismatch, len(vectors)),
		}
	}

	enriched := make([]core.EnrichedRecord, len(pairs))
	for i, pair := range pairs {
		vector := vectors[i]
		if p.dimensions > 0 && len(vector) != p.dimensions {
			return nil, &EmbeddingError{
				Count: len(texts),
				Err: fmt.Errorf("%w: record %d has %d, expected %d",
					ErrDimensionMismatch, pair.Record.Index, len(vector), p.dimensions),
			}
		}
		if p.normalize {
			vector = NormalizeVector(vector)
		}
		enriched[i] = core.EnrichedRecord{
			Record: pair.Record,
			Label:  pair.Label,
			Vector: vector,
		}
	}

	return enriched, nil
}
