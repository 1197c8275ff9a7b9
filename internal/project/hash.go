package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest - фиксированный 256 битный хеш содержимого входного файла
type Digest [32]byte

// DigestOf hashes raw content.
func DigestOf(content []byte) Digest {
	return sha256.Sum256(content)
}

// Combine строит ключ: H( content || part1 || part2 ... ).
// Порядок частей должен быть детерминированным.
func Combine(content Digest, parts ...[]byte) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// IsZero reports whether d was never computed.
func (d Digest) IsZero() bool { return d == Digest{} }

// String returns the lowercase hex form.
func (d Digest) String() string { return hex.EncodeToString(d[:]) }
