package output

import (
	"fmt"
	"io"

	"github.com/alexsab-ru/sitekit/pkg/batch"
)

// ReportView is the serialized form of a batch report.
type ReportView struct {
	Operation string          `json:"operation" yaml:"operation"`
	DryRun    bool            `json:"dry_run" yaml:"dry_run"`
	Duration  string          `json:"duration" yaml:"duration"`
	Counts    map[string]int  `json:"counts" yaml:"counts"`
	Outcomes  []batch.Outcome `json:"outcomes" yaml:"outcomes"`
}

// NewReportView converts r for JSON or YAML output.
func NewReportView(r *batch.Report) ReportView {
	view := ReportView{
		Operation: r.Operation,
		DryRun:    r.DryRun,
		Duration:  r.Duration().String(),
		Counts:    make(map[string]int),
		Outcomes:  r.Outcomes,
	}
	for status, n := range r.Counts() {
		if n > 0 {
			view.Counts[string(status)] = n
		}
	}
	if view.Outcomes == nil {
		view.Outcomes = []batch.Outcome{}
	}
	return view
}

// ReportTable lists the outcomes of r. Unchanged units are listed only
// when wide is set.
func ReportTable(r *batch.Report, wide bool) Data {
	data := Data{
		Headers:         []string{"Status", "Unit", "Reason"},
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignLeft},
	}
	for _, o := range r.Outcomes {
		if o.Status == batch.StatusUnchanged && !wide {
			continue
		}
		data.Rows = append(data.Rows, []string{string(o.Status), o.Unit, o.Reason})
	}
	return data
}

// WriteReport renders r to w in the given format. Tables are followed by
// the one-line summary.
func WriteReport(w io.Writer, format Format, r *batch.Report) error {
	switch format {
	case FormatJSON, FormatYAML:
		return NewFormatter(format).Format(w, NewReportView(r))
	default:
		table := ReportTable(r, format == FormatWide)
		if len(table.Rows) > 0 {
			if err := NewFormatter(format).Format(w, table); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintln(w, r.Summary())
		return err
	}
}
