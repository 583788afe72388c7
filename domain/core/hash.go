package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// Short returns the first 12 hex characters, enough for display.
func (h Hash) Short() string {
	if len(h) <= 12 {
		return string(h)
	}
	return string(h[:12])
}

// TableHash fingerprints a dataset so two reports over the same rows can be matched.
type TableHash Hash

func (h TableHash) String() string { return Hash(h).String() }

// Short returns the display form of the fingerprint.
func (h TableHash) Short() string { return Hash(h).Short() }

// ComputeTableHash hashes rows of cells in order. Row order is part of the
// fingerprint because the annotated table preserves it.
func ComputeTableHash(rows [][]string) TableHash {
	var data strings.Builder
	for _, row := range rows {
		for i, v := range row {
			if i > 0 {
				data.WriteByte('\x1f')
			}
			data.WriteString(v)
		}
		data.WriteByte('\n')
	}
	return TableHash(NewHash([]byte(data.String())))
}
