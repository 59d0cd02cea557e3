// Package model defines the data structures shared by the block-tree engine,
// the storage adapters and the UI.
package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

// PrimitiveKind tells which JSON scalar a Primitive carries.
type PrimitiveKind int

const (
	// PrimitiveString is a JSON string.
	PrimitiveString PrimitiveKind = iota
	// PrimitiveNumber is a JSON number, kept as written in the corpus item.
	PrimitiveNumber
	// PrimitiveBool is a JSON boolean.
	PrimitiveBool
)

// Block is a node of a script's code tree: either a Primitive or a Sequence.
// The set of implementations is closed.
type Block interface {
	isBlock()
}

// Primitive is a scalar leaf of the code tree.
type Primitive struct {
	Kind  PrimitiveKind
	Value string // decoded string, number literal, or "true"/"false"
}

// Sequence is an ordered list of child blocks.
type Sequence []Block

func (Primitive) isBlock() {}
func (Sequence) isBlock()  {}

// String builds a string primitive.
func String(s string) Primitive { return Primitive{Kind: PrimitiveString, Value: s} }

// Number builds a number primitive from its literal text.
func Number(literal string) Primitive { return Primitive{Kind: PrimitiveNumber, Value: literal} }

// Bool builds a boolean primitive.
func Bool(b bool) Primitive {
	if b {
		return Primitive{Kind: PrimitiveBool, Value: "true"}
	}

	return Primitive{Kind: PrimitiveBool, Value: "false"}
}

// Seq is shorthand for building a Sequence.
func Seq(items ...Block) Sequence { return Sequence(items) }

// IsString reports whether p is a string primitive equal to s.
func (p Primitive) IsString(s string) bool {
	return p.Kind == PrimitiveString && p.Value == s
}

// Text renders the primitive as its JSON literal. Strings are quoted.
func (p Primitive) Text() string {
	if p.Kind != PrimitiveString {
		return p.Value
	}

	return quoteJSON(p.Value)
}

// Serialize renders b in compact canonical JSON. Two trees serialize to the
// same text iff they are structurally and literally identical.
func Serialize(b Block) string {
	var sb strings.Builder

	writeBlock(&sb, b)

	return sb.String()
}

func writeBlock(sb *strings.Builder, b Block) {
	switch v := b.(type) {
	case Primitive:
		sb.WriteString(v.Text())
	case Sequence:
		sb.WriteByte('[')

		for i, child := range v {
			if i > 0 {
				sb.WriteByte(',')
			}

			writeBlock(sb, child)
		}

		sb.WriteByte(']')
	}
}

func quoteJSON(s string) string {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(s); err != nil {
		return `"` + s + `"`
	}

	return strings.TrimSuffix(buf.String(), "\n")
}
