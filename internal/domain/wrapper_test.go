package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	m "github.com/mouse-blink/blockscan/internal/model"
)

func TestIsPureWrapper(t *testing.T) {
	tests := []struct {
		name string
		in   m.Sequence
		want bool
	}{
		{"empty", m.Seq(), true},
		{"single primitive", m.Seq(m.String("x")), true},
		{"single number", m.Seq(m.Number("10")), true},
		{"nested single primitive", m.Seq(m.Seq(m.Seq(m.Bool(true)))), true},
		{"nested empty", m.Seq(m.Seq()), true},
		{"two primitives", m.Seq(m.String("a"), m.String("b")), false},
		{"single wrapping a command", m.Seq(m.Seq(m.String("a"), m.String("b"))), false},
		{"deep command", m.Seq(m.Seq(m.Seq(m.String("a"), m.Number("1")))), false},
		{"primitive and sequence", m.Seq(m.String("a"), m.Seq()), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPureWrapper(tt.in))
		})
	}
}

func TestIsPureWrapper_SingleSequenceMatchesInner(t *testing.T) {
	inners := []m.Sequence{
		m.Seq(),
		m.Seq(m.String("x")),
		m.Seq(m.String("x"), m.String("y")),
		m.Seq(m.Seq(m.String("x"), m.String("y"))),
	}

	for _, inner := range inners {
		assert.Equal(t, IsPureWrapper(inner), IsPureWrapper(m.Seq(inner)), m.Serialize(inner))
	}
}

func TestHasOpcode(t *testing.T) {
	assert.True(t, hasOpcode(m.Seq(m.String(WaitUntilOpcode), m.Seq(m.Bool(true))), WaitUntilOpcode))
	assert.False(t, hasOpcode(m.Seq(m.String(WaitUntilOpcode)), WaitUntilOpcode), "a lone opcode is a wrapper")
	assert.False(t, hasOpcode(m.Seq(m.Number("1"), m.String(WaitUntilOpcode)), WaitUntilOpcode))
	assert.False(t, hasOpcode(m.Seq(m.Seq(m.String(WaitUntilOpcode)), m.String("x")), WaitUntilOpcode))
}
