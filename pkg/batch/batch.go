// Package batch aggregates the per-unit outcomes of a maintenance command.
//
// Every unit of work (a file, a site folder, a model) ends in exactly one
// Status. A failed unit never aborts the batch; the Report carries it to the
// final summary instead.
package batch

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexsab-ru/sitekit/pkg/errors"
)

// Status is the outcome of a single unit of work.
type Status string

// Status constants.
const (
	StatusCreated   Status = "created"
	StatusChanged   Status = "changed"
	StatusUnchanged Status = "unchanged"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Statuses lists every status in summary order.
var Statuses = []Status{StatusCreated, StatusChanged, StatusUnchanged, StatusSkipped, StatusFailed}

// Outcome records what happened to one unit.
type Outcome struct {
	Unit   string `json:"unit" yaml:"unit"`
	Status Status `json:"status" yaml:"status"`
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
	Err    error  `json:"-" yaml:"-"`
}

// Report collects the outcomes of one command run.
type Report struct {
	Operation string
	DryRun    bool
	StartTime time.Time
	EndTime   time.Time
	Outcomes  []Outcome
}

// NewReport creates a report for operation.
func NewReport(operation string) *Report {
	return &Report{
		Operation: operation,
		StartTime: time.Now(),
		Outcomes:  []Outcome{},
	}
}

// Add appends an outcome.
func (r *Report) Add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}

// Created records a newly created unit.
func (r *Report) Created(unit string) {
	r.Add(Outcome{Unit: unit, Status: StatusCreated})
}

// Changed records a unit that was rewritten.
func (r *Report) Changed(unit string) {
	r.Add(Outcome{Unit: unit, Status: StatusChanged})
}

// Unchanged records a unit that needed no write.
func (r *Report) Unchanged(unit string) {
	r.Add(Outcome{Unit: unit, Status: StatusUnchanged})
}

// Synced records the result of writing a file: unchanged when its content
// did not change, otherwise created or changed depending on whether it existed.
func (r *Report) Synced(unit string, existed, changed bool) {
	switch {
	case !changed:
		r.Unchanged(unit)
	case existed:
		r.Changed(unit)
	default:
		r.Created(unit)
	}
}

// Skipped records a unit left untouched on purpose.
func (r *Report) Skipped(unit, reason string) {
	r.Add(Outcome{Unit: unit, Status: StatusSkipped, Reason: reason})
}

// Failed records a unit that could not be processed. Errors marked with
// errors.ErrSkipped are recorded as skipped instead.
func (r *Report) Failed(unit string, err error) {
	if err == nil {
		return
	}
	if errors.IsSkipped(err) {
		r.Add(Outcome{Unit: unit, Status: StatusSkipped, Reason: err.Error(), Err: err})
		return
	}
	r.Add(Outcome{Unit: unit, Status: StatusFailed, Reason: err.Error(), Err: err})
}

// Merge appends every outcome of other.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Outcomes = append(r.Outcomes, other.Outcomes...)
}

// Finalize marks the end of the run.
func (r *Report) Finalize() {
	r.EndTime = time.Now()
}

// Duration returns the time between creation and Finalize.
func (r *Report) Duration() time.Duration {
	if r.EndTime.IsZero() {
		return time.Since(r.StartTime)
	}
	return r.EndTime.Sub(r.StartTime)
}

// Count returns the number of outcomes with status s.
func (r *Report) Count(s Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}

// Counts returns the number of outcomes per status.
func (r *Report) Counts() map[Status]int {
	counts := make(map[Status]int, len(Statuses))
	for _, s := range Statuses {
		counts[s] = 0
	}
	for _, o := range r.Outcomes {
		counts[o.Status]++
	}
	return counts
}

// Units returns the units with status s, in the order they were recorded.
func (r *Report) Units(s Status) []string {
	var units []string
	for _, o := range r.Outcomes {
		if o.Status == s {
			units = append(units, o.Unit)
		}
	}
	return units
}

// Written returns how many units were created or changed.
func (r *Report) Written() int {
	return r.Count(StatusCreated) + r.Count(StatusChanged)
}

// HasFailures reports whether any unit failed.
func (r *Report) HasFailures() bool {
	return r.Count(StatusFailed) > 0
}

// Err returns an error describing the failed units, or nil.
func (r *Report) Err() error {
	failed := r.Count(StatusFailed)
	if failed == 0 {
		return nil
	}
	return fmt.Errorf("%s: %d unit(s) failed", r.Operation, failed)
}

// Summary returns a one-line human readable summary.
func (r *Report) Summary() string {
	parts := make([]string, 0, len(Statuses))
	for _, s := range Statuses {
		if n := r.Count(s); n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, s))
		}
	}
	prefix := r.Operation
	if r.DryRun {
		prefix += " (dry run)"
	}
	if len(parts) == 0 {
		return prefix + ": nothing to do"
	}
	return prefix + ": " + strings.Join(parts, ", ")
}
