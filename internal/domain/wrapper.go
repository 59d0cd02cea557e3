package domain

import m "github.com/mouse-blink/blockscan/internal/model"

const (
	// ProcDefOpcode marks a procedure definition block.
	ProcDefOpcode = "procDef"
	// WaitUntilOpcode marks a wait-condition block.
	WaitUntilOpcode = "doWaitUntil"
)

// IsPureWrapper reports whether b only wraps a single value: it has at most
// one element and, when that element is a sequence, it is a pure wrapper too.
func IsPureWrapper(b m.Sequence) bool {
	for len(b) == 1 {
		inner, ok := b[0].(m.Sequence)
		if !ok {
			return true
		}

		b = inner
	}

	return len(b) == 0
}

// hasOpcode reports whether b is a genuine command whose first element is the
// given opcode.
func hasOpcode(b m.Sequence, opcode string) bool {
	if IsPureWrapper(b) {
		return false
	}

	p, ok := b[0].(m.Primitive)

	return ok && p.IsString(opcode)
}
