// Package idhash computes deterministic record identifiers.
package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ComputeBallID computes a deterministic ball_id using SHA256.
// Formula: SHA256(innings_id|seq)
// Returns hex-encoded hash (64 characters).
//
// Replaying the same innings always yields the same identifiers, which is
// what lets the authoritative path stay idempotent per logical operation.
func ComputeBallID(inningsID string, seq int) string {
	data := fmt.Sprintf("%s|%d", inningsID, seq)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
