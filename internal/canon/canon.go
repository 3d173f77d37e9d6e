// Package canon turns a polynomial's canonical sorted-term form into a
// fixed-size digest, the way DECS/merkle.go in this repository's NTRU
// signature code turns a leaf/node byte string into a fixed-size SHAKE-256
// hash. Assumption's signMap is keyed by this digest rather than by a
// polynomial's Go value, because two *poly.Multi built through different
// sequences of Add/Mul/Reduce calls are the same polynomial iff their sorted
// term lists agree, and a Go map needs a comparable key to express that
// (spec.md §9: "a polynomial's hash/equality must be based on that canonical
// form, otherwise signMap lookups silently diverge").
package canon

import "golang.org/x/crypto/sha3"

// Digest is a 32-byte canonical-form fingerprint.
type Digest [32]byte

const (
	leafPrefix byte = 0x00
)

// Sum hashes the already-canonicalized byte encoding of a polynomial (sorted
// terms, normalized representation) into a Digest.
func Sum(canonicalBytes []byte) Digest {
	buf := make([]byte, 1+len(canonicalBytes))
	buf[0] = leafPrefix
	copy(buf[1:], canonicalBytes)

	var out Digest
	h := sha3.NewShake256()
	_, _ = h.Write(buf)
	_, _ = h.Read(out[:])
	return out
}
