package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a deterministic content identifier.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Author identifies who posted a tweet.
type Author struct {
	Name     string `json:"name"`
	Handle   string `json:"handle"`
	Verified bool   `json:"verified"`
}

// QuotedTweet is the tweet embedded in a quote tweet.
type QuotedTweet struct {
	Author string `json:"author"`
	Handle string `json:"handle"`
	Text   string `json:"text"`
	ID     string `json:"id,omitempty"`
}

// Content holds the text of a tweet and, for quote tweets, the quoted tweet.
type Content struct {
	Text        string       `json:"text"`
	IsQuote     bool         `json:"is_quote"`
	QuotedTweet *QuotedTweet `json:"quoted_tweet,omitempty"`
}

// Engagement holds the engagement counters as displayed ("1.2K", "15").
// Any of them may be missing.
type Engagement struct {
	Replies string `json:"replies,omitempty"`
	Reposts string `json:"reposts,omitempty"`
	Likes   string `json:"likes,omitempty"`
	Views   string `json:"views,omitempty"`
}

// TweetData is the structured payload collected for a single tweet.
type TweetData struct {
	Index       int        `json:"index"`
	ID          string     `json:"id,omitempty"`
	Author      Author     `json:"author"`
	Content     Content    `json:"content"`
	Engagement  Engagement `json:"engagement"`
	Timestamp   string     `json:"timestamp,omitempty"`
	CollectedAt string     `json:"collected_at,omitempty"`
	TabID       *uint32    `json:"tab_id,omitempty"`
	URL         string     `json:"url,omitempty"`
}

// Record is one unit of work in a labeling run.
// Records are created once at load time and shared by pointer between
// stages; nothing modifies a Record after it has been loaded.
type Record struct {
	// Index is the record's position in the input, starting at 0.
	Index int

	// Tweet is the structured payload.
	Tweet TweetData

	// TextRepresentation is the flattened text sent to both the classifier
	// and the embedder.
	TextRepresentation string
}

// LabeledRecord is a record whose classification call succeeded.
type LabeledRecord struct {
	Record *Record
	Label  bool
}

// EnrichedRecord is the final output unit: a labeled record and its embedding.
type EnrichedRecord struct {
	Record *Record
	Label  bool
	Vector []float32
}

// Text returns the text representation of the underlying record.
func (e EnrichedRecord) Text() string {
	if e.Record == nil {
		return ""
	}
	return e.Record.TextRepresentation
}
