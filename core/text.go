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


package core

import (
	"strings"
	"time"
)

// RenderText builds the flattened, human-readable text representation of a
// tweet in the same layout the collector extension exports.
func RenderText(t *TweetData) string {
	var b strings.Builder

	b.WriteString("Author: " + t.Author.Name + " (@" + t.Author.Handle + ")")
	if t.Author.Verified {
		b.WriteString(" ✓")
	}
	if t.ID != "" {
		b.WriteString("\nTweet ID: " + t.ID)
		b.WriteString("\nLink: " + statusLink(t.Author.Handle, t.ID))
	}

	if t.Timestamp != "" {
		b.WriteString("\nPosted: " + displayTime(t.Timestamp))
	}

	b.WriteString("\n\nContent: " + t.Content.Text)

	if q := t.Content.QuotedTweet; t.Content.IsQuote && q != nil {
		b.WriteString("\n\nQuoted Tweet:\n  Author: " + q.Author + " (@" + q.Handle + ")")
		if q.ID != "" {
			b.WriteString("\n  Tweet ID: " + q.ID)
			b.WriteString("\n  Link: " + statusLink(q.Handle, q.ID))
		}
		b.WriteString("\n  Content: " + q.Text)
	}

	b.WriteString("\n\nEngagement:")
	e := t.Engagement
	for _, m := range [][2]string{
		{"Replies", e.Replies},
		{"Reposts", e.Reposts},
		{"Likes", e.Likes},
		{"Views", e.Views},
	} {
		if m[1] != "" {
			b.WriteString("\n  " + m[0] + ": " + m[1])
		}
	}

	return b.String()
}

func statusLink(handle, id string) string {
	return "https://twitter.com/" + strings.Replace(handle, "@", "", 1) + "/status/" + id
}

// displayTime formats RFC 3339 timestamps for display and passes anything
// else through unchanged.
func displayTime(ts string) string {
	parsed, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return parsed.UTC().Format("2006-01-02 15:04:05 MST")
}
