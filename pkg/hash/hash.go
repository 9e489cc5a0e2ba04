// Package hash provides the fixed-size SHA-256 value used for header and
// validator-set commitments.
package hash

import (
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
	"github.com/cometbft/cometbft/crypto/tmhash"
	cmbytes "github.com/cometbft/cometbft/libs/bytes"

	liteerrors "github.com/rollkit/go-lite-abci/pkg/errors"
)

// Size is the length of a Hash in bytes.
const Size = tmhash.Size

// Hash is a 32-byte SHA-256 digest.
//
// The zero value marks an absent hash. It is distinct from Empty(), which is
// the digest of empty input. A genuine all-zero digest cannot be told apart
// from an absent one and is encoded as absent.
type Hash [Size]byte

// New copies b into a Hash. It fails unless b is exactly Size bytes.
func New(b []byte) (Hash, error) {
	var h Hash
	if len(b) != Size {
		return h, errorsmod.Wrapf(liteerrors.ErrParse, "hash must be %d bytes, got %d", Size, len(b))
	}
	copy(h[:], b)
	return h, nil
}

// Sum returns the SHA-256 digest of data.
func Sum(data []byte) Hash {
	var h Hash
	copy(h[:], tmhash.Sum(data))
	return h
}

// Empty returns the digest of empty input.
func Empty() Hash {
	return Sum(nil)
}

// Parse decodes a 64-character hex string. Upper and lower case are accepted.
func Parse(s string) (Hash, error) {
	var h Hash
	if len(s) != 2*Size {
		return h, errorsmod.Wrapf(liteerrors.ErrParse, "expected %d hex characters, got %d", 2*Size, len(s))
	}
	if _, err := hex.Decode(h[:], []byte(s)); err != nil {
		return Hash{}, errorsmod.Wrapf(liteerrors.ErrParse, "invalid hex %q: %v", s, err)
	}
	return h, nil
}

// Bytes returns a copy of the hash as a slice.
func (h Hash) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, h[:])
	return b
}

// IsZero reports whether h is the absent hash.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// Equal compares the full arrays in constant time.
func (h Hash) Equal(o Hash) bool {
	return subtle.ConstantTimeCompare(h[:], o[:]) == 1
}

// String returns the uppercase hex form.
func (h Hash) String() string {
	return cmbytes.HexBytes(h[:]).String()
}

// MarshalJSON encodes the hash as an uppercase hex string. The zero value
// encodes as "".
func (h Hash) MarshalJSON() ([]byte, error) {
	if h.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(h.String())
}

// UnmarshalJSON decodes a hex string; "" yields the zero value.
func (h *Hash) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errorsmod.Wrapf(liteerrors.ErrParse, "hash must be a JSON string: %v", err)
	}
	if s == "" {
		*h = Hash{}
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
