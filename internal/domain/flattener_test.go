package domain

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/blockscan/internal/model"
)

var testDate = time.Date(2014, time.March, 2, 0, 0, 0, 0, time.UTC)

func stageScript(code m.Sequence) m.Script {
	return m.Script{ProgramID: "1001", Date: testDate, Location: "10,20", Code: code, Scope: m.StageScope()}
}

// procDef builds ["procDef", name, params, defaults, false].
func procDef(name string, params ...string) m.Sequence {
	names := m.Seq()
	defaults := m.Seq()

	for _, p := range params {
		names = append(names, m.String(p))
		defaults = append(defaults, m.Number("1"))
	}

	return m.Seq(m.String(ProcDefOpcode), m.String(name), names, defaults, m.Bool(false))
}

type flatRow struct {
	order  int
	indent int
	scope  string
	args   []string
}

func rowsOf(commands []m.CommandRecord) []flatRow {
	rows := make([]flatRow, 0, len(commands))
	for _, c := range commands {
		rows = append(rows, flatRow{order: c.Order, indent: c.Indent, scope: c.ScopeName, args: c.Args})
	}

	return rows
}

func TestFlatten_PrimitivesOnly(t *testing.T) {
	res := NewFlattener().Flatten(stageScript(m.Seq(m.String("say:"), m.String("hi"))))

	assert.Equal(t, []flatRow{{order: 0, indent: 0, scope: `"stage"`, args: []string{`"say:"`, `"hi"`}}}, rowsOf(res.Commands))
	assert.Equal(t, 1, res.Summary.CommandCount)
	assert.Equal(t, 0, res.Summary.MaxIndent)
}

func TestFlatten_NestedCommandsInnermostFirst(t *testing.T) {
	code := m.Seq(
		m.Seq(m.String("whenGreenFlag")),
		m.Seq(m.String("forward:"), m.Number("10")),
		m.Seq(m.String("doRepeat"), m.Number("10"), m.Seq(
			m.Seq(m.String("turnRight:"), m.Number("15")),
		)),
	)

	res := NewFlattener().Flatten(stageScript(code))

	assert.Equal(t, []flatRow{
		{order: 0, indent: 1, scope: `"stage"`, args: []string{`"whenGreenFlag"`}},
		{order: 1, indent: 1, scope: `"stage"`, args: []string{`"forward:"`, "10"}},
		{order: 3, indent: 3, scope: `"stage"`, args: []string{`"turnRight:"`, "15"}},
		{order: 2, indent: 1, scope: `"stage"`, args: []string{`"doRepeat"`, "10"}},
	}, rowsOf(res.Commands))

	assert.Equal(t, m.ScriptSummaryRecord{
		ProgramID:    "1001",
		Date:         testDate,
		ScopeKind:    m.ScopeStage,
		ScopeName:    `"stage"`,
		CommandCount: 4,
		MaxIndent:    3,
	}, res.Summary)
	assert.Empty(t, res.Procedures)
}

func TestFlatten_PrimitiveAfterNestedChildTakesLaterOrder(t *testing.T) {
	code := m.Seq(m.Seq(m.String("b"), m.String("c")), m.String("d"))

	res := NewFlattener().Flatten(stageScript(code))

	assert.Equal(t, []flatRow{
		{order: 0, indent: 1, scope: `"stage"`, args: []string{`"b"`, `"c"`}},
		{order: 1, indent: 0, scope: `"stage"`, args: []string{`"d"`}},
	}, rowsOf(res.Commands))
}

func TestFlatten_EmptySequenceRendersToken(t *testing.T) {
	t.Run("inside a command", func(t *testing.T) {
		res := NewFlattener().Flatten(stageScript(m.Seq(m.Seq(m.String("say:"), m.Seq()))))

		require.Len(t, res.Commands, 1)
		assert.Equal(t, []string{`"say:"`, "[]"}, res.Commands[0].Args)
		assert.Equal(t, 0, res.Commands[0].Order)
	})

	t.Run("as the first value of a row", func(t *testing.T) {
		res := NewFlattener().Flatten(stageScript(m.Seq(m.Seq(), m.String("x"))))

		require.Len(t, res.Commands, 1)
		assert.Equal(t, []string{"[]", `"x"`}, res.Commands[0].Args)
		assert.Equal(t, 1, res.Summary.CommandCount)
	})

	t.Run("empty script", func(t *testing.T) {
		res := NewFlattener().Flatten(stageScript(m.Seq()))

		assert.Empty(t, res.Commands)
		assert.Equal(t, 0, res.Summary.CommandCount)
		assert.Equal(t, 0, res.Summary.MaxIndent)
	})
}

func TestFlatten_ProcedureDefinitionRescopesRestOfScript(t *testing.T) {
	code := m.Seq(
		procDef("jump %n", "height"),
		m.Seq(m.String("changeYposBy:"), m.Seq(m.String("getParam"), m.String("height"), m.String("r"))),
	)

	res := NewFlattener().Flatten(stageScript(code))

	assert.Equal(t, []flatRow{
		{order: 2, indent: 2, scope: `"jump %n"`, args: []string{`"getParam"`, `"height"`, `"r"`}},
		{order: 1, indent: 1, scope: `"jump %n"`, args: []string{`"changeYposBy:"`}},
		{order: 0, indent: 0, scope: `"stage"`, args: []string{procDefToken}},
	}, rowsOf(res.Commands))

	assert.Equal(t, []m.ProcedureRecord{{
		ProgramID:          "1001",
		Date:               testDate,
		EnclosingScopeName: `"stage"`,
		ProcedureName:      `"jump %n"`,
		ParamCount:         1,
	}}, res.Procedures)

	assert.Equal(t, m.ProcedureScope("jump %n"), res.FinalScope)
	assert.Equal(t, m.ScopeProcedure, res.Summary.ScopeKind)
	assert.Equal(t, `"jump %n"`, res.Summary.ScopeName)
	assert.Equal(t, 3, res.Summary.CommandCount)
	assert.Equal(t, 2, res.Summary.MaxIndent)
}

func TestFlatten_ProcedureScopeReachesLaterSiblingsOfParent(t *testing.T) {
	code := m.Seq(
		m.Seq(m.String("a"), procDef("p")),
		m.Seq(m.String("b"), m.Number("1")),
	)

	res := NewFlattener().Flatten(stageScript(code))

	require.Len(t, res.Commands, 2)
	assert.Equal(t, flatRow{order: 0, indent: 1, scope: `"stage"`, args: []string{`"a"`, procDefToken}}, rowsOf(res.Commands)[0])
	assert.Equal(t, flatRow{order: 1, indent: 1, scope: `"p"`, args: []string{`"b"`, "1"}}, rowsOf(res.Commands)[1])
	assert.Equal(t, m.ScopeProcedure, res.Commands[1].ScopeKind)
}

func TestFlatten_SecondProcedureEnclosedByFirst(t *testing.T) {
	code := m.Seq(procDef("first", "a", "b"), procDef("second"))

	res := NewFlattener().Flatten(stageScript(code))

	require.Len(t, res.Procedures, 2)
	assert.Equal(t, `"stage"`, res.Procedures[0].EnclosingScopeName)
	assert.Equal(t, 2, res.Procedures[0].ParamCount)
	assert.Equal(t, `"first"`, res.Procedures[1].EnclosingScopeName)
	assert.Equal(t, 0, res.Procedures[1].ParamCount)
	assert.Equal(t, `"second"`, res.Summary.ScopeName)
}

func TestFlatten_QuotedProcedureNameIsNotQuotedAgain(t *testing.T) {
	code := m.Seq(procDef(`"quoted"`), m.Seq(m.String("say:"), m.String("x")))

	res := NewFlattener().Flatten(stageScript(code))

	require.Len(t, res.Commands, 2)
	assert.Equal(t, `"quoted"`, res.Commands[0].ScopeName)
	assert.Equal(t, `"quoted"`, res.Summary.ScopeName)
	assert.Equal(t, `"quoted"`, res.Procedures[0].ProcedureName)
	assert.Equal(t, `"stage"`, res.Commands[1].ScopeName)
}

func TestFlatten_SpriteScopeQuotedOnce(t *testing.T) {
	script := stageScript(m.Seq(m.Seq(m.String("say:"), m.String("x"))))
	script.Scope = m.SpriteScope("Cat")

	res := NewFlattener().Flatten(script)

	require.Len(t, res.Commands, 1)
	assert.Equal(t, m.ScopeSprite, res.Commands[0].ScopeKind)
	assert.Equal(t, `"Cat"`, res.Commands[0].ScopeName)
}

func TestFlatten_OrdersAreGapFreeFromZero(t *testing.T) {
	code := m.Seq(
		m.Seq(m.String("whenGreenFlag")),
		m.Seq(m.String("doIf"), m.Seq(m.String("<"), m.Number("1"), m.Number("2")), m.Seq(
			m.Seq(m.String("say:"), m.Seq(m.String("concatenate:with:"), m.String("a"), m.String("b"))),
			m.Seq(m.String("doForever"), m.Seq(m.Seq(m.String("nextCostume")))),
		), m.String("tail")),
		procDef("p", "x"),
		m.Seq(m.String("doWaitUntil"), m.Seq(m.Bool(true))),
	)

	res := NewFlattener().Flatten(stageScript(code))

	orders := make([]int, 0, len(res.Commands))
	for _, c := range res.Commands {
		orders = append(orders, c.Order)
	}

	sort.Ints(orders)

	for i, o := range orders {
		assert.Equal(t, i, o)
	}

	assert.Equal(t, len(res.Commands), res.Summary.CommandCount)
}

func TestFlatten_MaxIndentGrowsOnePerLevel(t *testing.T) {
	tests := []struct {
		name string
		code m.Sequence
		want int
	}{
		{"flat", m.Seq(m.String("a"), m.String("b")), 0},
		{"wrapper only", m.Seq(m.Seq(m.String("x"))), 1},
		{"nested wrappers", m.Seq(m.Seq(m.Seq(m.String("x")))), 2},
		{"one level", m.Seq(m.String("a"), m.Seq(m.String("b"), m.String("c"))), 1},
		{"two levels", m.Seq(m.String("a"), m.Seq(m.String("b"), m.Seq(m.String("c"), m.String("d")))), 2},
		{"three levels", m.Seq(m.String("a"), m.Seq(m.String("b"), m.Seq(m.String("c"), m.Seq(m.String("d"), m.String("e"))))), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewFlattener().Flatten(stageScript(tt.code)).Summary.MaxIndent)
		})
	}
}

func TestFlatten_IdenticalInputsIdenticalRows(t *testing.T) {
	code := m.Seq(
		m.Seq(m.String("whenGreenFlag")),
		m.Seq(m.String("doRepeat"), m.Number("3"), m.Seq(m.Seq(m.String("turnRight:"), m.Number("15")))),
	)

	a := stageScript(code)
	b := stageScript(code)
	b.ProgramID = "2002"
	b.Date = testDate.AddDate(0, 1, 0)

	f := NewFlattener()
	ra, rb := f.Flatten(a), f.Flatten(b)

	assert.Equal(t, rowsOf(ra.Commands), rowsOf(rb.Commands))
	assert.Equal(t, ra.Summary.CommandCount, rb.Summary.CommandCount)
	assert.Equal(t, "2002", rb.Commands[0].ProgramID)
}

func TestFlatten_StateIsFreshPerScript(t *testing.T) {
	f := NewFlattener()

	first := f.Flatten(stageScript(m.Seq(procDef("p"), m.Seq(m.String("a"), m.String("b")))))
	second := f.Flatten(stageScript(m.Seq(m.Seq(m.String("a"), m.String("b")))))

	assert.Equal(t, `"p"`, first.Summary.ScopeName)
	require.Len(t, second.Commands, 1)
	assert.Equal(t, 0, second.Commands[0].Order)
	assert.Equal(t, `"stage"`, second.Commands[0].ScopeName)
}

func TestFlatten_RowPadding(t *testing.T) {
	res := NewFlattener().Flatten(stageScript(m.Seq(m.Seq(m.String("forward:"), m.Number("10")))))
	require.Len(t, res.Commands, 1)

	row := res.Commands[0].Row(10)
	assert.Len(t, row, 16)
	assert.Equal(t, []string{"1001", "2014-03-02", "1", "stage", `"stage"`, "0", `"forward:"`, "10"}, row[:8])

	for _, col := range row[8:] {
		assert.Empty(t, col)
	}
}
