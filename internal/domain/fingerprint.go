package domain

import (
	"github.com/minio/highwayhash"
)

var fingerprintKey = []byte("blockscan-fingerprint-key-000000")

// Fingerprint returns a stable 64-bit HighwayHash of data.
func Fingerprint(data []byte) uint64 {
	return highwayhash.Sum64(data, fingerprintKey)
}
