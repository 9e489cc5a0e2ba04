package validator

import (
	"maps"

	errorsmod "cosmossdk.io/errors"
	"github.com/cometbft/cometbft/crypto/ed25519"
	"github.com/cometbft/cometbft/crypto/secp256k1"

	liteerrors "github.com/rollkit/go-lite-abci/pkg/errors"
)

// VerifyFunc checks sig over msg against a raw public key. Malformed keys or
// signatures yield false.
type VerifyFunc func(pubKey, msg, sig []byte) bool

// Verifiers maps each supported key type to its verification function.
// Key types without an entry are unsupported.
type Verifiers map[KeyType]VerifyFunc

var defaultVerifiers = Verifiers{KeyTypeEd25519: VerifyEd25519}

// DefaultVerifiers returns a fresh copy of the default table, which supports
// Ed25519 only.
func DefaultVerifiers() Verifiers {
	return maps.Clone(defaultVerifiers)
}

// With returns a copy of v with fn registered for kt.
func (v Verifiers) With(kt KeyType, fn VerifyFunc) Verifiers {
	out := maps.Clone(v)
	if out == nil {
		out = make(Verifiers, 1)
	}
	out[kt] = fn
	return out
}

// Verify dispatches on the key type of pk. It returns ErrUnsupportedKey when
// no function is registered; a bad signature is (false, nil).
func (v Verifiers) Verify(pk PubKey, msg, sig []byte) (bool, error) {
	fn, ok := v[pk.typ]
	if !ok || fn == nil {
		return false, errorsmod.Wrapf(liteerrors.ErrUnsupportedKey, "no signature verifier for %s keys", pk.typ)
	}
	return fn(pk.key, msg, sig), nil
}

// VerifyEd25519 verifies an Ed25519 signature.
func VerifyEd25519(pubKey, msg, sig []byte) bool {
	if len(pubKey) != ed25519.PubKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.PubKey(pubKey).VerifySignature(msg, sig)
}

// VerifySecp256k1 verifies a 64-byte (r || s) secp256k1 signature over the
// SHA-256 of msg. It is not registered by DefaultVerifiers.
func VerifySecp256k1(pubKey, msg, sig []byte) bool {
	if len(pubKey) != secp256k1.PubKeySize {
		return false
	}
	return secp256k1.PubKey(pubKey).VerifySignature(msg, sig)
}
