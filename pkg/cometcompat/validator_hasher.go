package cometcompat

import (
	"fmt"
	"math"

	errorsmod "cosmossdk.io/errors"
	cmtcrypto "github.com/cometbft/cometbft/crypto"
	"github.com/cometbft/cometbft/crypto/ed25519"
	"github.com/cometbft/cometbft/crypto/secp256k1"
	cmttypes "github.com/cometbft/cometbft/types"

	liteerrors "github.com/rollkit/go-lite-abci/pkg/errors"
	"github.com/rollkit/go-lite-abci/pkg/hash"
	"github.com/rollkit/go-lite-abci/pkg/validator"
)

// LightValidatorHasher returns the canonical light-client set hash.
func LightValidatorHasher() ValidatorHasher {
	return func(set *validator.Set) (hash.Hash, error) {
		return set.Hash(), nil
	}
}

// CometValidatorHasher returns the hash CometBFT computes for the converted
// set.
func CometValidatorHasher() ValidatorHasher {
	return func(set *validator.Set) (hash.Hash, error) {
		cmtSet, err := ToCometValidatorSet(set)
		if err != nil {
			return hash.Hash{}, err
		}
		return hash.New(cmtSet.Hash())
	}
}

// ToCometPubKey converts a tagged public key to its CometBFT key type.
func ToCometPubKey(pk validator.PubKey) (cmtcrypto.PubKey, error) {
	switch pk.Type() {
	case validator.KeyTypeEd25519:
		return ed25519.PubKey(pk.Bytes()), nil
	case validator.KeyTypeSecp256k1:
		return secp256k1.PubKey(pk.Bytes()), nil
	default:
		return nil, errorsmod.Wrapf(liteerrors.ErrUnsupportedKey, "cannot convert %s key to CometBFT", pk.Type())
	}
}

// ToCometValidator converts a validator. CometBFT stores voting power as
// int64, so larger powers are rejected.
func ToCometValidator(info validator.Info) (*cmttypes.Validator, error) {
	pk, err := ToCometPubKey(info.PubKey())
	if err != nil {
		return nil, err
	}
	if info.VotingPower() > math.MaxInt64 {
		return nil, errorsmod.Wrapf(liteerrors.ErrOverflow, "validator %s: voting power %d exceeds int64", info.Address(), info.VotingPower())
	}

	val := cmttypes.NewValidator(pk, int64(info.VotingPower())) //nolint:gosec // checked above
	if prio, ok := info.ProposerPriority(); ok {
		val.ProposerPriority = prio
	}
	return val, nil
}

// ToCometValidatorSet converts a set. CometBFT recomputes proposer
// priorities and enforces its own total power limit.
func ToCometValidatorSet(set *validator.Set) (*cmttypes.ValidatorSet, error) {
	members := set.Validators()
	vals := make([]*cmttypes.Validator, 0, len(members))
	for _, info := range members {
		val, err := ToCometValidator(info)
		if err != nil {
			return nil, err
		}
		vals = append(vals, val)
	}

	cmtSet := &cmttypes.ValidatorSet{}
	if len(vals) == 0 {
		return cmtSet, nil
	}
	if err := cmtSet.UpdateWithChangeSet(vals); err != nil {
		return nil, fmt.Errorf("build cometbft validator set: %w", err)
	}
	return cmtSet, nil
}
