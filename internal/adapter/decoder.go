package adapter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	m "github.com/mouse-blink/blockscan/internal/model"
)

const (
	scriptsField  = "scripts"
	childrenField = "children"
	nameField     = "objName"
)

// ProjectDecoder converts raw corpus JSON into the Block model.
type ProjectDecoder interface {
	// Valid reports whether data is syntactically valid JSON.
	Valid(data []byte) bool

	// Decode builds the project of item. It fails with ErrMalformedItem when
	// the item cannot be used at all; scripts with an unexpected shape are
	// reported as anomalies on the returned project instead.
	Decode(item m.CorpusItem, data []byte) (m.Project, error)
}

type projectDecoder struct{}

// NewProjectDecoder constructs a ProjectDecoder.
func NewProjectDecoder() ProjectDecoder {
	return &projectDecoder{}
}

func (d *projectDecoder) Valid(data []byte) bool {
	return gjson.ValidBytes(data)
}

func (d *projectDecoder) Decode(item m.CorpusItem, data []byte) (m.Project, error) {
	if !gjson.ValidBytes(data) {
		return m.Project{}, fmt.Errorf("%w: invalid JSON", ErrMalformedItem)
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return m.Project{}, fmt.Errorf("%w: top level is not an object", ErrMalformedItem)
	}

	stageScripts := root.Get(scriptsField)
	if stageScripts.Exists() && !stageScripts.IsArray() {
		return m.Project{}, fmt.Errorf("%w: %q is not an array", ErrMalformedItem, scriptsField)
	}

	children := root.Get(childrenField)
	if children.Exists() && !children.IsArray() {
		return m.Project{}, fmt.Errorf("%w: %q is not an array", ErrMalformedItem, childrenField)
	}

	project := m.Project{ProgramID: item.ProgramID, Date: item.Date}
	d.collect(&project, m.StageScope(), stageScripts)

	for _, child := range children.Array() {
		if !child.IsObject() {
			continue
		}

		// children also holds watchers and list monitors, which carry no objName
		name := child.Get(nameField)
		if !name.Exists() {
			continue
		}

		d.collect(&project, m.SpriteScope(name.String()), child.Get(scriptsField))
	}

	return project, nil
}

func (d *projectDecoder) collect(project *m.Project, scope m.Scope, scripts gjson.Result) {
	if !scripts.Exists() {
		return
	}

	if !scripts.IsArray() {
		project.Anomalies = append(project.Anomalies, m.Anomaly{
			Scope:  scope,
			Index:  -1,
			Reason: fmt.Sprintf("%v: %q is not an array", ErrStructuralAnomaly, scriptsField),
		})

		return
	}

	for i, entry := range scripts.Array() {
		script, err := toScript(entry)
		if err != nil {
			project.Anomalies = append(project.Anomalies, m.Anomaly{
				Scope:  scope,
				Index:  i,
				Reason: fmt.Sprintf("script %d: %v", i, err),
			})

			continue
		}

		script.ProgramID = project.ProgramID
		script.Date = project.Date
		script.Scope = scope
		project.Scripts = append(project.Scripts, script)
	}
}

// toScript decodes a [x, y, code] script entry.
func toScript(entry gjson.Result) (m.Script, error) {
	if !entry.IsArray() {
		return m.Script{}, fmt.Errorf("%w: script entry is not an array", ErrStructuralAnomaly)
	}

	parts := entry.Array()
	if len(parts) != 3 {
		return m.Script{}, fmt.Errorf("%w: script entry has %d elements, want 3", ErrStructuralAnomaly, len(parts))
	}

	if !parts[2].IsArray() {
		return m.Script{}, fmt.Errorf("%w: script code is not an array", ErrStructuralAnomaly)
	}

	block, err := toBlock(parts[2])
	if err != nil {
		return m.Script{}, err
	}

	code, _ := block.(m.Sequence)

	return m.Script{
		Location: parts[0].String() + "," + parts[1].String(),
		Code:     code,
	}, nil
}

// toBlock converts a JSON value into a Block, rejecting objects and null.
func toBlock(r gjson.Result) (m.Block, error) {
	switch r.Type {
	case gjson.String:
		if !utf8.ValidString(r.Str) {
			return nil, fmt.Errorf("%w: string is not valid UTF-8", ErrStructuralAnomaly)
		}

		return m.String(r.Str), nil
	case gjson.Number:
		return m.Number(strings.TrimSpace(r.Raw)), nil
	case gjson.True:
		return m.Bool(true), nil
	case gjson.False:
		return m.Bool(false), nil
	case gjson.Null:
		return nil, fmt.Errorf("%w: null value", ErrStructuralAnomaly)
	case gjson.JSON:
		if !r.IsArray() {
			return nil, fmt.Errorf("%w: object value", ErrStructuralAnomaly)
		}
	}

	seq := m.Sequence{}

	var err error

	r.ForEach(func(_, value gjson.Result) bool {
		var child m.Block

		child, err = toBlock(value)
		if err != nil {
			return false
		}

		seq = append(seq, child)

		return true
	})

	if err != nil {
		return nil, err
	}

	return seq, nil
}
