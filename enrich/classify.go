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
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/tweetlabel/core"
)

// ClassifyAll calls the classifier once for every record with at most
// Concurrency calls outstanding. As each call finishes the next pending
// record is admitted. The result has one outcome per record, in input order.
//
// A failed call becomes a Failed outcome and is logged; it never stops the
// stage. Once ctx is done, records not yet admitted fail with ctx's error.
func (p *Pipeline) ClassifyAll(ctx context.Context, records []*core.Record) []Outcome {
	outcomes := make([]Outcome, len(records))
	if len(records) == 0 {
		return outcomes
	}
	for i, rec := range records {
		outcomes[i] = Outcome{Record: rec, Status: StatusPending}
	}

	var tracker *ProgressTracker
	if p.progress != nil {
		tracker = NewProgressTracker(p.progress, len(records), p.progressInterval)
		tracker.Start()
		defer tracker.Finish()
	}

	// Submit blocks while all workers are busy, which is what admits
	// exactly one pending record per finished call.
	pool, err := ants.NewPool(p.concurrency, ants.WithLogger(poolLogger{p.logger}))
	if err != nil {
		for i, rec := range records {
			outcomes[i] = p.fail(rec, err)
		}
		return outcomes
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			outcomes[i] = p.fail(rec, err)
			continue
		}

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			p.run(ctx, &outcomes[i])
			if tracker != nil {
				tracker.Increment(1)
			}
		})
		if submitErr != nil {
			wg.Done()
			outcomes[i] = p.fail(rec, submitErr)
		}
	}
	wg.Wait()

	return outcomes
}

// run moves a pending slot to InFlight and then to its terminal state.
func (p *Pipeline) run(ctx context.Context, slot *Outcome) {
	slot.Status = StatusInFlight
	*slot = p.classifyOne(ctx, slot.Record)
}

// classifyOne runs a single classifier call. Panics are recovered into a
// Failed outcome.
func (p *Pipeline) classifyOne(ctx context.Context, rec *core.Record) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = p.fail(rec, fmt.Errorf("%w: %v", ErrClassifierPanic, r))
		}
	}()

	if err := ctx.Err(); err != nil {
		return p.fail(rec, err)
	}
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return p.fail(rec, err)
		}
	}

	label, err := p.classifier.Classify(ctx, rec.TextRepresentation)
	if err != nil {
		return p.fail(rec, err)
	}

	p.logger.Debug("record classified", "index", rec.Index, "political", label)
	return succeeded(rec, label)
}

func (p *Pipeline) fail(rec *core.Record, err error) Outcome {
	cerr := &ClassificationError{Index: rec.Index, Err: err}
	p.logger.Warn("classification failed",
		"index", rec.Index,
		"tweet_index", rec.Tweet.Index,
		"err", err)
	return failed(rec, cerr)
}

// poolLogger routes ants' internal messages to slog.
type poolLogger struct {
	logger *slog.Logger
}

func (l poolLogger) Printf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...), "source", "ants")
}
