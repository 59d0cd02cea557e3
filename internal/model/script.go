package model

import "time"

// DateLayout is the yyyy-MM-dd layout used for snapshot dates in every row.
const DateLayout = "2006-01-02"

// Script is one script found in a corpus item. Scope is the scope the script
// starts in; the flattener tracks its own working copy.
type Script struct {
	ProgramID string
	Date      time.Time
	Location  string
	Code      Sequence
	Scope     Scope
}

// Anomaly describes a script that was skipped because it had an unexpected shape.
type Anomaly struct {
	Scope  Scope
	Index  int
	Reason string
}

// Project is a decoded corpus item: every well-formed script of the stage and
// its sprites, in document order.
type Project struct {
	ProgramID string
	Date      time.Time
	Scripts   []Script
	Anomalies []Anomaly
}

// FormatDate renders a snapshot date for output rows.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
