// Package lite declares the capabilities a light-client verifier needs from
// headers, validators and validator sets.
//
// Verification logic written against these interfaces runs unchanged over
// the concrete types in this module and over test fixtures.
package lite

import (
	"time"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"

	liteerrors "github.com/rollkit/go-lite-abci/pkg/errors"
	"github.com/rollkit/go-lite-abci/pkg/hash"
)

// Header is the part of a block header a light client inspects.
type Header interface {
	GetHeight() uint64
	GetTime() time.Time
	GetValidatorsHash() hash.Hash
	GetNextValidatorsHash() hash.Hash
	Hash() (hash.Hash, error)
}

// Validator is a single voting member.
type Validator interface {
	VotingPower() uint64
	VerifySignature(signBytes, signature []byte) bool
}

// ValidatorSet is an ordered collection of validators.
type ValidatorSet[V Validator] interface {
	Hash() hash.Hash
	TotalVotingPower() (uint64, error)
	Validators() []V
}

// ValidatorsMatch reports whether vals is the set the header commits to as
// its current validators.
func ValidatorsMatch[V Validator](h Header, vals ValidatorSet[V]) bool {
	return h.GetValidatorsHash().Equal(vals.Hash())
}

// NextValidatorsMatch reports whether vals is the set the header commits to
// for the next height.
func NextValidatorsMatch[V Validator](h Header, vals ValidatorSet[V]) bool {
	return h.GetNextValidatorsHash().Equal(vals.Hash())
}

// VotingPower sums the voting power of vals, failing with ErrOverflow when
// the sum does not fit in a uint64.
func VotingPower[V Validator](vals []V) (uint64, error) {
	total := sdkmath.ZeroInt()
	for _, v := range vals {
		total = total.Add(sdkmath.NewIntFromUint64(v.VotingPower()))
	}
	if !total.IsUint64() {
		return 0, errorsmod.Wrapf(liteerrors.ErrOverflow, "voting power %s of %d validators", total, len(vals))
	}
	return total.Uint64(), nil
}
