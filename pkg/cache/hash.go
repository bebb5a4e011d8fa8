package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Hash computes a SHA-256 hash of the given data, returned as a hex string.
// Used for deriving cache keys from content.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// RenderKey derives a cache key for a rendered artifact from the snapshot
// content hash and the output format. Two graphs with identical snapshots
// share rendered output.
func RenderKey(snapshotHash, format string) string {
	return fmt.Sprintf("render:%s:%s", snapshotHash, format)
}
