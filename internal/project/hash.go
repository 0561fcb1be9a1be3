package project

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// Digest is a SHA-256 sum; it converts directly from source.File.Hash.
type Digest [sha256.Size]byte

// Combine derives a cache key from content and the ordered parts.
// Each part is length-prefixed, so ("ab","c") and ("a","bc") differ.
func Combine(content Digest, parts ...[]byte) Digest {
	h := sha256.New()
	h.Write(content[:])
	var n [binary.MaxVarintLen64]byte
	for _, p := range parts {
		h.Write(n[:binary.PutUvarint(n[:], uint64(len(p)))])
		h.Write(p)
	}
	return Digest(h.Sum(nil))
}

// ParseDigest is the inverse of Digest.String.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	raw, err := hex.DecodeString(s)
	if err != nil {
		return d, fmt.Errorf("digest %q: %w", s, err)
	}
	if len(raw) != len(d) {
		return d, fmt.Errorf("digest %q: want %d bytes, got %d", s, len(d), len(raw))
	}
	return Digest(raw), nil
}

func (d Digest) IsZero() bool { return d == Digest{} }

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// Short is the prefix used for cache file names.
func (d Digest) Short() string { return hex.EncodeToString(d[:8]) }
