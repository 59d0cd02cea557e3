package domain

import m "github.com/mouse-blink/blockscan/internal/model"

// WaitMiner collects every wait-condition block of a script as a pseudo-script.
type WaitMiner interface {
	Mine(script m.Script) []m.Script
}

type waitMiner struct{}

// NewWaitMiner constructs a WaitMiner.
func NewWaitMiner() WaitMiner {
	return &waitMiner{}
}

// Mine visits every sequence of the script pre-order. It tracks scope on its
// own: a procedure definition re-scopes every node visited after it, the same
// way the flattener does, so a wait block is tagged with the scope active
// where it appears. The slots of a procedure definition are not visited.
// Nested wait blocks are captured as well.
func (w *waitMiner) Mine(script m.Script) []m.Script {
	scope := script.Scope

	var found []m.Script

	var visit func(node m.Sequence, root bool)

	visit = func(node m.Sequence, root bool) {
		switch {
		case !root && hasOpcode(node, ProcDefOpcode):
			// the flattener never enters a definition's slots either
			scope = m.ProcedureScope(procedureName(node))

			return
		case hasOpcode(node, WaitUntilOpcode):
			found = append(found, m.Script{
				ProgramID: script.ProgramID,
				Date:      script.Date,
				Location:  script.Location,
				Code:      node,
				Scope:     scope,
			})
		}

		for _, child := range node {
			if seq, ok := child.(m.Sequence); ok {
				visit(seq, false)
			}
		}
	}

	visit(script.Code, true)

	return found
}
