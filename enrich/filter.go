package enrich

import "github.com/poiesic/tweetlabel/core"

// FilterSucceeded keeps the labeled records of successful outcomes, in
// outcome order, and reports how many outcomes were dropped.
func FilterSucceeded(outcomes []Outcome) ([]core.LabeledRecord, int) {
	pairs := make([]core.LabeledRecord, 0, len(outcomes))
	dropped := 0
	for _, o := range outcomes {
		if !o.OK() {
			dropped++
			continue
		}
		pairs = append(pairs, core.LabeledRecord{Record: o.Record, Label: o.Label})
	}
	return pairs, dropped
}
