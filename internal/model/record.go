package model

import (
	"strconv"
	"strings"
	"time"
)

// CommandRecord is one emitted line of flattened code.
type CommandRecord struct {
	ProgramID string
	Date      time.Time
	Indent    int
	ScopeKind ScopeKind
	ScopeName string // already quoted
	Order     int
	Args      []string
}

// Row renders the record with exactly arity argument columns. Arguments past
// the last column are joined into it with a single space.
func (r CommandRecord) Row(arity int) []string {
	row := make([]string, 0, 6+arity)
	row = append(row,
		r.ProgramID,
		FormatDate(r.Date),
		strconv.Itoa(r.Indent),
		string(r.ScopeKind),
		r.ScopeName,
		strconv.Itoa(r.Order),
	)

	for i := 0; i < arity; i++ {
		switch {
		case i == arity-1 && len(r.Args) > arity:
			row = append(row, strings.Join(r.Args[i:], " "))
		case i < len(r.Args):
			row = append(row, r.Args[i])
		default:
			row = append(row, "")
		}
	}

	return row
}

// CommandHeader returns the column names of command rows.
func CommandHeader(arity int) []string {
	header := []string{"program_id", "date", "indent", "scope_kind", "scope_name", "order"}
	for i := 1; i <= arity; i++ {
		header = append(header, "arg_"+strconv.Itoa(i))
	}

	return header
}

// ScriptSummaryRecord summarises one flattened script.
type ScriptSummaryRecord struct {
	ProgramID    string
	Date         time.Time
	ScopeKind    ScopeKind
	ScopeName    string // final scope, already quoted
	CommandCount int
	MaxIndent    int
}

// Row renders the summary in output column order.
func (r ScriptSummaryRecord) Row() []string {
	return []string{
		r.ProgramID,
		FormatDate(r.Date),
		string(r.ScopeKind),
		r.ScopeName,
		strconv.Itoa(r.CommandCount),
		strconv.Itoa(r.MaxIndent),
	}
}

// ScriptSummaryHeader returns the column names of script summary rows.
func ScriptSummaryHeader() []string {
	return []string{"program_id", "date", "scope_kind", "scope_name", "command_count", "max_indent"}
}

// ProcedureRecord describes one procedure definition.
type ProcedureRecord struct {
	ProgramID          string
	Date               time.Time
	EnclosingScopeName string // already quoted
	ProcedureName      string
	ParamCount         int
}

// Row renders the procedure in output column order.
func (r ProcedureRecord) Row() []string {
	return []string{
		r.ProgramID,
		FormatDate(r.Date),
		r.EnclosingScopeName,
		r.ProcedureName,
		strconv.Itoa(r.ParamCount),
	}
}

// ProcedureHeader returns the column names of procedure rows.
func ProcedureHeader() []string {
	return []string{"program_id", "date", "scope_name", "procedure_name", "param_count"}
}

// CloneVariant selects which clone report a group belongs to.
type CloneVariant string

const (
	// CloneScripts groups whole scripts.
	CloneScripts CloneVariant = "scripts"
	// CloneWaitBlocks groups wait-condition blocks and echoes their code.
	CloneWaitBlocks CloneVariant = "wait_blocks"
)

// ScopeCount is the number of clone occurrences found in one scope.
type ScopeCount struct {
	ScopeName string // already quoted
	Count     int
}

// CloneGroupRecord describes a set of at least two identical scripts or wait blocks.
type CloneGroupRecord struct {
	Variant                 CloneVariant
	ProgramID               string
	OccurrenceCount         int
	DistinctScopeCount      int
	RepresentativeScopeName string // already quoted
	RepresentativeLocation  string
	Code                    string
	Scopes                  []ScopeCount
}

// Row renders the group. The wait-block variant carries the serialized code
// after the location; both end with one (scope, count) pair per scope.
func (r CloneGroupRecord) Row() []string {
	row := []string{
		r.ProgramID,
		strconv.Itoa(r.OccurrenceCount),
		strconv.Itoa(r.DistinctScopeCount),
		r.RepresentativeScopeName,
		r.RepresentativeLocation,
	}

	if r.Variant == CloneWaitBlocks {
		row = append(row, r.Code)
	}

	for _, sc := range r.Scopes {
		row = append(row, sc.ScopeName, strconv.Itoa(sc.Count))
	}

	return row
}

// CloneHeader returns the fixed leading column names of a clone table. The
// variable (scope, count) tail is unnamed.
func CloneHeader(variant CloneVariant) []string {
	header := []string{"program_id", "occurrences", "distinct_scopes", "scope_name", "location"}
	if variant == CloneWaitBlocks {
		header = append(header, "code")
	}

	return append(header, "scope", "count")
}

// FailureKind classifies why input was skipped.
type FailureKind string

const (
	// FailureMalformedItem means a whole corpus item was skipped.
	FailureMalformedItem FailureKind = "malformed_item"
	// FailureStructuralAnomaly means a single script was skipped.
	FailureStructuralAnomaly FailureKind = "structural_anomaly"
)

// FailureRecord reports skipped input as data.
type FailureRecord struct {
	ProgramID string
	Date      time.Time
	Kind      FailureKind
	Scope     string
	Reason    string
}

// Row renders the failure in output column order.
func (r FailureRecord) Row() []string {
	return []string{r.ProgramID, FormatDate(r.Date), string(r.Kind), r.Scope, r.Reason}
}

// FailureHeader returns the column names of failure rows.
func FailureHeader() []string {
	return []string{"program_id", "date", "kind", "scope", "reason"}
}
