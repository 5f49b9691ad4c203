package enrich

import "github.com/poiesic/tweetlabel/core"

// Status is the state of a record in the classification stage.
type Status int

const (
	StatusPending Status = iota
	StatusInFlight
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusInFlight:
		return "in-flight"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of classifying one record: either
// Succeeded with a label or Failed with an error. It always carries the
// record it belongs to.
type Outcome struct {
	Record *core.Record
	Status Status
	Label  bool
	Err    error
}

func succeeded(record *core.Record, label bool) Outcome {
	return Outcome{Record: record, Status: StatusSucceeded, Label: label}
}

func failed(record *core.Record, err error) Outcome {
	return Outcome{Record: record, Status: StatusFailed, Err: err}
}

// OK reports whether the classifier call succeeded.
func (o Outcome) OK() bool {
	return o.Status == StatusSucceeded
}
