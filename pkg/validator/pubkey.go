package validator

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"github.com/cometbft/cometbft/crypto"
	"github.com/cometbft/cometbft/crypto/ed25519"
	"github.com/cometbft/cometbft/crypto/secp256k1"

	"github.com/rollkit/go-lite-abci/pkg/canonical"
	liteerrors "github.com/rollkit/go-lite-abci/pkg/errors"
)

// KeyType identifies the signature algorithm of a public key.
type KeyType uint8

const (
	KeyTypeUnknown KeyType = iota
	KeyTypeEd25519
	KeyTypeSecp256k1
)

// Amino registration names and the prefixes derived from them.
const (
	Ed25519AminoName   = "tendermint/PubKeyEd25519"
	Secp256k1AminoName = "tendermint/PubKeySecp256k1"
)

var aminoPrefixes = map[KeyType][]byte{
	KeyTypeEd25519:   {0x16, 0x24, 0xDE, 0x64},
	KeyTypeSecp256k1: {0xEB, 0x5A, 0xE9, 0x87},
}

func (k KeyType) String() string {
	switch k {
	case KeyTypeEd25519:
		return ed25519.KeyType
	case KeyTypeSecp256k1:
		return secp256k1.KeyType
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// PubKey is a public key tagged with its algorithm. The zero value is not a
// valid key.
type PubKey struct {
	typ KeyType
	key []byte
}

// NewEd25519PubKey wraps a 32-byte Ed25519 public key.
func NewEd25519PubKey(b []byte) (PubKey, error) {
	if len(b) != ed25519.PubKeySize {
		return PubKey{}, errorsmod.Wrapf(liteerrors.ErrParse, "ed25519 public key must be %d bytes, got %d", ed25519.PubKeySize, len(b))
	}
	return PubKey{typ: KeyTypeEd25519, key: bytes.Clone(b)}, nil
}

// NewSecp256k1PubKey wraps a 33-byte compressed secp256k1 public key.
func NewSecp256k1PubKey(b []byte) (PubKey, error) {
	if len(b) != secp256k1.PubKeySize {
		return PubKey{}, errorsmod.Wrapf(liteerrors.ErrParse, "secp256k1 public key must be %d bytes, got %d", secp256k1.PubKeySize, len(b))
	}
	return PubKey{typ: KeyTypeSecp256k1, key: bytes.Clone(b)}, nil
}

// Type returns the key algorithm.
func (pk PubKey) Type() KeyType { return pk.typ }

// Bytes returns a copy of the raw key.
func (pk PubKey) Bytes() []byte { return bytes.Clone(pk.key) }

// IsValid reports whether pk was built by one of the constructors.
func (pk PubKey) IsValid() bool {
	_, ok := aminoPrefixes[pk.typ]
	return ok && len(pk.key) > 0
}

// Equal reports whether both keys have the same type and bytes.
func (pk PubKey) Equal(o PubKey) bool {
	return pk.typ == o.typ && bytes.Equal(pk.key, o.key)
}

// Address derives the account address: SHA-256(key)[:20] for Ed25519 and
// RIPEMD-160(SHA-256(key)) for secp256k1.
func (pk PubKey) Address() crypto.Address {
	switch pk.typ {
	case KeyTypeEd25519:
		return ed25519.PubKey(pk.key).Address()
	case KeyTypeSecp256k1:
		return secp256k1.PubKey(pk.key).Address()
	default:
		return nil
	}
}

// AminoBytes returns the amino interface encoding of the key.
func (pk PubKey) AminoBytes() ([]byte, error) {
	prefix, ok := aminoPrefixes[pk.typ]
	if !ok {
		return nil, errorsmod.Wrapf(liteerrors.ErrEncoding, "pub_key: unknown key type %s", pk.typ)
	}
	return canonical.PubKey(prefix, pk.key), nil
}

func (pk PubKey) String() string {
	return fmt.Sprintf("%s{%X}", pk.typ, pk.key)
}

type aminoJSONPubKey struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// MarshalJSON encodes the key in amino JSON form.
func (pk PubKey) MarshalJSON() ([]byte, error) {
	var name string
	switch pk.typ {
	case KeyTypeEd25519:
		name = Ed25519AminoName
	case KeyTypeSecp256k1:
		name = Secp256k1AminoName
	default:
		return nil, errorsmod.Wrapf(liteerrors.ErrEncoding, "pub_key: unknown key type %s", pk.typ)
	}
	return json.Marshal(aminoJSONPubKey{Type: name, Value: base64.StdEncoding.EncodeToString(pk.key)})
}

// UnmarshalJSON decodes {"type": "tendermint/PubKeyEd25519", "value": "<base64>"}.
func (pk *PubKey) UnmarshalJSON(data []byte) error {
	var raw aminoJSONPubKey
	if err := json.Unmarshal(data, &raw); err != nil {
		return errorsmod.Wrapf(liteerrors.ErrParse, "pub_key: %v", err)
	}
	decoded, err := base64.StdEncoding.DecodeString(raw.Value)
	if err != nil {
		return errorsmod.Wrapf(liteerrors.ErrParse, "pub_key: invalid base64: %v", err)
	}

	var parsed PubKey
	switch raw.Type {
	case Ed25519AminoName:
		parsed, err = NewEd25519PubKey(decoded)
	case Secp256k1AminoName:
		parsed, err = NewSecp256k1PubKey(decoded)
	default:
		return errorsmod.Wrapf(liteerrors.ErrUnsupportedKey, "pub_key: type %q", raw.Type)
	}
	if err != nil {
		return err
	}
	*pk = parsed
	return nil
}
