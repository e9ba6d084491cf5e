// Package address derives deterministic record addresses from a namespace
// tag and an ordered tuple of key fields. Every record in the store is
// located this way, so no directory or index has to be maintained.
package address

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
)

// Size is the byte length of an Address.
const Size = 32

// domain separates our derivations from any other use of BLAKE2b over the same bytes.
const domain = "commentlog/address/v1"

// Namespaces used by the record model.
const (
	NamespacePost         = "post"
	NamespaceCommentPage  = "comment_page"
	NamespaceUserLike     = "user_like"
	NamespaceCommentLikes = "user_comment_likes"
	NamespaceFollow       = "user_follow"
	NamespaceProfile      = "user_profile"
	NamespaceBalance      = "balance"
)

var ErrInvalid = errors.New("invalid address")

// Address is a 32-byte record location (also used as a user identity).
type Address [Size]byte

// Zero is the all-zero address; never produced by Derive in practice.
var Zero Address

// Derive hashes the namespace and keys into an address. Every element is
// length-prefixed so ("ab","c") and ("a","bc") never collide.
func Derive(namespace string, keys ...[]byte) Address {
	h, _ := blake2b.New256(nil)
	h.Write([]byte(domain))
	writeField(h, []byte(namespace))
	for _, k := range keys {
		writeField(h, k)
	}
	var out Address
	copy(out[:], h.Sum(nil))
	return out
}

func writeField(w io.Writer, b []byte) {
	var prefix [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(prefix[:], uint64(len(b)))
	w.Write(prefix[:n])
	w.Write(b)
}

// U64 encodes v as 8 little-endian bytes, the page index seed layout.
func U64(v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return b[:]
}

// Bytes returns a copy of the address as a slice, for use as a key field.
func (a Address) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, a[:])
	return b
}

func (a Address) IsZero() bool { return a == Zero }

func (a Address) String() string { return hex.EncodeToString(a[:]) }

// Short is the first 8 hex characters, for log lines.
func (a Address) Short() string { return a.String()[:8] }

func (a Address) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Parse decodes a 64-character hex string.
func Parse(s string) (Address, error) {
	var a Address
	if len(s) != hex.EncodedLen(Size) {
		return a, fmt.Errorf("%w: want %d hex chars, got %d", ErrInvalid, hex.EncodedLen(Size), len(s))
	}
	if _, err := hex.Decode(a[:], []byte(s)); err != nil {
		return a, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return a, nil
}

// MustParse is Parse for constants and tests.
func MustParse(s string) Address {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}
