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


package dataset

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/poiesic/tweetlabel/core"
)

// maxLineSize bounds a single input line.
const maxLineSize = 16 << 20

// wireRecord mirrors one input line. Required objects are pointers so a
// missing one can be told apart from an empty one.
type wireRecord struct {
	Tweet              *wireTweet `json:"tweet"`
	TextRepresentation *string    `json:"textRepresentation"`
}

type wireTweet struct {
	Index       *int             `json:"index"`
	ID          string           `json:"id"`
	Author      *core.Author     `json:"author"`
	Content     *core.Content    `json:"content"`
	Engagement  *core.Engagement `json:"engagement"`
	Timestamp   string           `json:"timestamp"`
	CollectedAt string           `json:"collected_at"`
	TabID       *uint32          `json:"tab_id"`
	URL         string           `json:"url"`
}

// Load reads one record per line from r. Blank lines are skipped. The first
// malformed or invalid line aborts the load with a *LoadError.
func Load(ctx context.Context, r io.Reader) ([]*core.Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64<<10), maxLineSize)

	var records []*core.Record
	line := 0
	for scanner.Scan() {
		line++
		if line%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, &LoadError{Line: line, Err: err}
			}
		}

		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		record, err := parseLine(raw, len(records))
		if err != nil {
			return nil, &LoadError{Line: line, Err: err}
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Line: line + 1, Err: err}
	}

	return records, nil
}

// LoadFile opens location and loads every record in it.
func LoadFile(ctx context.Context, location string, opts ...Option) ([]*core.Record, error) {
	loc, err := ParseLocation(location)
	if err != nil {
		return nil, &LoadError{Err: err}
	}

	rc, err := openReader(ctx, loc, buildOptions(opts))
	if err != nil {
		return nil, &LoadError{Err: fmt.Errorf("open %s: %w", loc, err)}
	}
	defer rc.Close()

	return Load(ctx, rc)
}

func parseLine(raw []byte, position int) (*core.Record, error) {
	var w wireRecord
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}

	switch {
	case w.Tweet == nil:
		return nil, fmt.Errorf("%w: tweet", ErrMissingField)
	case w.TextRepresentation == nil:
		return nil, fmt.Errorf("%w: textRepresentation", ErrMissingField)
	case w.Tweet.Index == nil:
		return nil, fmt.Errorf("%w: tweet.index", ErrMissingField)
	case w.Tweet.Author == nil:
		return nil, fmt.Errorf("%w: tweet.author", ErrMissingField)
	case w.Tweet.Content == nil:
		return nil, fmt.Errorf("%w: tweet.content", ErrMissingField)
	case w.Tweet.Engagement == nil:
		return nil, fmt.Errorf("%w: tweet.engagement", ErrMissingField)
	case *w.Tweet.Index < 0:
		return nil, fmt.Errorf("tweet.index: %w", core.ErrNegativeIndex)
	}

	record := &core.Record{
		Index: position,
		Tweet: core.TweetData{
			Index:       *w.Tweet.Index,
			ID:          w.Tweet.ID,
			Author:      *w.Tweet.Author,
			Content:     *w.Tweet.Content,
			Engagement:  *w.Tweet.Engagement,
			Timestamp:   w.Tweet.Timestamp,
			CollectedAt: w.Tweet.CollectedAt,
			TabID:       w.Tweet.TabID,
			URL:         w.Tweet.URL,
		},
		TextRepresentation: *w.TextRepresentation,
	}

	if err := core.ValidateRecord(record); err != nil {
		return nil, err
	}
	return record, nil
}
