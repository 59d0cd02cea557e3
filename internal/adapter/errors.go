// Package adapter contains the storage and decoding adapters of the blockscan CLI.
package adapter

import "errors"

var (
	// ErrMalformedItem marks a corpus item that cannot be decoded at all.
	ErrMalformedItem = errors.New("malformed corpus item")
	// ErrStructuralAnomaly marks a single script with an unexpected shape.
	ErrStructuralAnomaly = errors.New("structural anomaly")
)
