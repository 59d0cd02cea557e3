package model

import "strings"

// ScopeKind defines the lexical context kind a command executes in.
type ScopeKind string

const (
	// ScopeStage is the project-level stage.
	ScopeStage ScopeKind = "stage"
	// ScopeSprite is a named sprite.
	ScopeSprite ScopeKind = "sprite"
	// ScopeProcedure is the body of a named procedure definition.
	ScopeProcedure ScopeKind = "procdef"
)

// StageName is the literal scope name of the stage.
const StageName = "stage"

// Scope is the lexical context of a script or command.
type Scope struct {
	Kind ScopeKind
	Name string
}

// StageScope returns the scope of stage-level scripts.
func StageScope() Scope {
	return Scope{Kind: ScopeStage, Name: StageName}
}

// SpriteScope returns the scope of a sprite's scripts.
func SpriteScope(name string) Scope {
	return Scope{Kind: ScopeSprite, Name: name}
}

// ProcedureScope returns the scope of a procedure body.
func ProcedureScope(name string) Scope {
	return Scope{Kind: ScopeProcedure, Name: name}
}

// QuotedName returns the scope name as rendered in output rows.
func (s Scope) QuotedName() string {
	return QuoteName(s.Name)
}

// QuoteName wraps name in double quotes unless it already begins with one.
// Applying it twice is a no-op.
func QuoteName(name string) string {
	if strings.HasPrefix(name, `"`) {
		return name
	}

	return `"` + name + `"`
}
