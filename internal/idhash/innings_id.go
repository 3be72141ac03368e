package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ComputeInningsID computes a deterministic innings_id using SHA256.
// Formula: SHA256(match_id|innings_number)
// Returns hex-encoded hash (64 characters).
func ComputeInningsID(matchID string, number int) string {
	data := fmt.Sprintf("%s|%d", matchID, number)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
