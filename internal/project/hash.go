package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest is a fixed 256-bit content hash.
type Digest [32]byte

// DigestOf hashes data.
func DigestOf(data []byte) Digest {
	return sha256.Sum256(data)
}

// Combine builds a derived hash H(content || part1 || part2 ...).
// Callers must pass parts in a deterministic order.
func Combine(content Digest, parts ...string) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, p := range parts {
		_, _ = h.Write([]byte(p))
		_, _ = h.Write([]byte{0})
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func (d Digest) String() string { return hex.EncodeToString(d[:]) }
