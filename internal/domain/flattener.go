package domain

import (
	m "github.com/mouse-blink/blockscan/internal/model"
)

const (
	emptyToken   = "[]"
	procDefToken = "procdef"
)

// FlattenResult holds everything produced by flattening one script.
type FlattenResult struct {
	Commands   []m.CommandRecord
	Summary    m.ScriptSummaryRecord
	Procedures []m.ProcedureRecord
	FinalScope m.Scope
}

// Flattener turns a script's block tree into command records.
type Flattener interface {
	Flatten(script m.Script) FlattenResult
}

type flattener struct{}

// NewFlattener constructs a Flattener.
func NewFlattener() Flattener {
	return &flattener{}
}

// Flatten walks the script pre-order with fresh traversal state. Each call
// owns its state, so concurrent calls on different scripts are safe.
func (f *flattener) Flatten(script m.Script) FlattenResult {
	t := newTraversal(script)
	commands := t.walk(script.Code)

	return FlattenResult{
		Commands: commands,
		Summary: m.ScriptSummaryRecord{
			ProgramID:    script.ProgramID,
			Date:         script.Date,
			ScopeKind:    t.scope.Kind,
			ScopeName:    t.quoted,
			CommandCount: t.order,
			MaxIndent:    t.maxIndent,
		},
		Procedures: t.procedures,
		FinalScope: t.scope,
	}
}

// traversal is the mutable state of one script walk. The scope is shared by
// every recursive call: a procedure definition re-scopes the rest of the
// script, later siblings included.
type traversal struct {
	script     m.Script
	scope      m.Scope
	quoted     string
	order      int
	indent     int
	maxIndent  int
	procedures []m.ProcedureRecord
}

func newTraversal(script m.Script) *traversal {
	t := &traversal{script: script}
	t.setScope(script.Scope)

	return t
}

// setScope replaces the shared scope; the quoted name is computed once per value.
func (t *traversal) setScope(scope m.Scope) {
	t.scope = scope
	t.quoted = scope.QuotedName()
}

// walk emits the rows of node and its descendants. A node's own row is
// appended after the rows of its nested children.
func (t *traversal) walk(node m.Sequence) []m.CommandRecord {
	row := m.CommandRecord{
		ProgramID: t.script.ProgramID,
		Date:      t.script.Date,
		Indent:    t.indent,
		ScopeKind: t.scope.Kind,
		ScopeName: t.quoted,
		Order:     -1,
	}

	var out []m.CommandRecord

	for _, child := range node {
		switch c := child.(type) {
		case m.Primitive:
			t.appendArg(&row, c.Text())
		case m.Sequence:
			switch {
			case len(c) == 0:
				t.appendArg(&row, emptyToken)
			case IsPureWrapper(c):
				out = append(out, t.descend(c)...)
			case hasOpcode(c, ProcDefOpcode):
				t.appendArg(&row, procDefToken)
				t.defineProcedure(c)
			default:
				out = append(out, t.descend(c)...)
			}
		}
	}

	if row.Order >= 0 {
		out = append(out, row)
	}

	return out
}

// appendArg adds a value to row; the first value of a row takes the next order slot.
func (t *traversal) appendArg(row *m.CommandRecord, value string) {
	if row.Order < 0 {
		row.Order = t.order
		t.order++
	}

	row.Args = append(row.Args, value)
}

func (t *traversal) descend(node m.Sequence) []m.CommandRecord {
	t.indent++
	if t.indent > t.maxIndent {
		t.maxIndent = t.indent
	}

	rows := t.walk(node)
	t.indent--

	return rows
}

// defineProcedure records a procedure definition and re-scopes the traversal.
func (t *traversal) defineProcedure(block m.Sequence) {
	name := procedureName(block)

	t.procedures = append(t.procedures, m.ProcedureRecord{
		ProgramID:          t.script.ProgramID,
		Date:               t.script.Date,
		EnclosingScopeName: t.quoted,
		ProcedureName:      m.QuoteName(name),
		ParamCount:         paramCount(block),
	})

	t.setScope(m.ProcedureScope(name))
}

func procedureName(block m.Sequence) string {
	if len(block) < 2 {
		return ""
	}

	switch v := block[1].(type) {
	case m.Primitive:
		return v.Value
	default:
		return m.Serialize(v)
	}
}

func paramCount(block m.Sequence) int {
	if len(block) < 3 {
		return 0
	}

	params, ok := block[2].(m.Sequence)
	if !ok {
		return 0
	}

	return len(params)
}
