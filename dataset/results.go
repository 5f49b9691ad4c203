package dataset

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// Result is one decoded output line.
type Result struct {
	Text   string
	Label  bool
	Vector []float32
}

// Summary describes a labeled output file.
type Summary struct {
	Lines      int
	Political  int
	Dimensions int
}

// PoliticalRatio is the share of lines labeled political.
func (s Summary) PoliticalRatio() float64 {
	if s.Lines == 0 {
		return 0
	}
	return float64(s.Political) / float64(s.Lines)
}

// DecodeLine parses a [text, label, vector] line.
func DecodeLine(raw []byte) (Result, error) {
	var fields []json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Result{}, err
	}
	if len(fields) != 3 {
		return Result{}, fmt.Errorf("expected 3 elements, got %d", len(fields))
	}

	var r Result
	if err := json.Unmarshal(fields[0], &r.Text); err != nil {
		return Result{}, fmt.Errorf("text: %w", err)
	}
	if err := json.Unmarshal(fields[1], &r.Label); err != nil {
		return Result{}, fmt.Errorf("label: %w", err)
	}
	if err := json.Unmarshal(fields[2], &r.Vector); err != nil {
		return Result{}, fmt.Errorf("vector: %w", err)
	}
	return r, nil
}

// Summarize reads labeled output from r. Every vector must have the same
// length.
func Summarize(ctx context.Context, r io.Reader) (Summary, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64<<10), maxLineSize)

	var s Summary
	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return s, &LoadError{Line: line, Err: err}
		}

		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		result, err := DecodeLine(raw)
		if err != nil {
			return s, &LoadError{Line: line, Err: err}
		}

		if s.Lines == 0 {
			s.Dimensions = len(result.Vector)
		} else if len(result.Vector) != s.Dimensions {
			return s, &LoadError{Line: line, Err: fmt.Errorf("%w: %d, expected %d",
				ErrInconsistentDimensions, len(result.Vector), s.Dimensions)}
		}

		s.Lines++
		if result.Label {
			s.Political++
		}
	}
	if err := scanner.Err(); err != nil {
		return s, &LoadError{Line: line + 1, Err: err}
	}
	return s, nil
}

// SummarizeFile opens location and summarizes it.
func SummarizeFile(ctx context.Context, location string, opts ...Option) (Summary, error) {
	loc, err := ParseLocation(location)
	if err != nil {
		return Summary{}, &LoadError{Err: err}
	}

	rc, err := openReader(ctx, loc, buildOptions(opts))
	if err != nil {
		return Summary{}, &LoadError{Err: fmt.Errorf("open %s: %w", loc, err)}
	}
	defer rc.Close()

	return Summarize(ctx, rc)
}
