package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSame bool
	}{
		{
			name:     "same content produces same ID",
			content:  "test content",
			wantSame: true,
		},
		{
			name:     "empty string",
			content:  "",
			wantSame: true,
		},
		{
			name:     "multi-line text representation",
			content:  "Author: Jane (@jane)\n\nContent: hello\n\nEngagement:",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if tt.wantSame && id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestEnrichedRecord_Text(t *testing.T) {
	rec := &Record{Index: 3, TextRepresentation: "Content: taxes are going up"}

	got := EnrichedRecord{Record: rec, Label: true}.Text()
	if got != rec.TextRepresentation {
		t.Errorf("EnrichedRecord.Text() = %q, want %q", got, rec.TextRepresentation)
	}

	if got := (EnrichedRecord{}).Text(); got != "" {
		t.Errorf("EnrichedRecord.Text() on empty record = %q, want empty", got)
	}
}
