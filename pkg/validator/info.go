package validator

import (
	"bytes"
	"encoding/json"
	"strconv"

	errorsmod "cosmossdk.io/errors"
	"github.com/cometbft/cometbft/crypto"

	"github.com/rollkit/go-lite-abci/pkg/canonical"
	liteerrors "github.com/rollkit/go-lite-abci/pkg/errors"
)

// Info describes a single validator. The address is always derived from the
// public key.
type Info struct {
	address          crypto.Address
	pubKey           PubKey
	votingPower      uint64
	proposerPriority *int64
}

// NewInfo creates a validator with no proposer priority.
func NewInfo(pk PubKey, votingPower uint64) Info {
	return Info{
		address:     pk.Address(),
		pubKey:      pk,
		votingPower: votingPower,
	}
}

// WithProposerPriority returns a copy of i with the given priority.
func (i Info) WithProposerPriority(p int64) Info {
	i.proposerPriority = &p
	return i
}

// WithVotingPower returns a copy of i with the given voting power.
func (i Info) WithVotingPower(power uint64) Info {
	i.votingPower = power
	return i
}

func (i Info) Address() crypto.Address { return bytes.Clone(i.address) }
func (i Info) PubKey() PubKey          { return i.pubKey }
func (i Info) VotingPower() uint64     { return i.votingPower }

// ProposerPriority returns the priority and whether one is set.
func (i Info) ProposerPriority() (int64, bool) {
	if i.proposerPriority == nil {
		return 0, false
	}
	return *i.proposerPriority, true
}

// Verify checks sig over signBytes using the verifier registered for the
// validator's key type.
func (i Info) Verify(verifiers Verifiers, signBytes, sig []byte) (bool, error) {
	return verifiers.Verify(i.pubKey, signBytes, sig)
}

// VerifySignature verifies with DefaultVerifiers. Unsupported key types are
// reported as not verified.
func (i Info) VerifySignature(signBytes, sig []byte) bool {
	ok, err := i.Verify(defaultVerifiers, signBytes, sig)
	return err == nil && ok
}

// HashLeaf returns the Merkle leaf of the validator: the canonical encoding
// of {pub_key, voting_power}. Address and proposer priority are excluded so
// the set hash is stable across priority rotation.
func (i Info) HashLeaf() ([]byte, error) {
	pk, err := i.pubKey.AminoBytes()
	if err != nil {
		return nil, err
	}
	return canonical.ValidatorLeaf(pk, i.votingPower), nil
}

type infoJSON struct {
	Address          crypto.Address `json:"address"`
	PubKey           PubKey         `json:"pub_key"`
	VotingPower      *string        `json:"voting_power,omitempty"`
	Power            *string        `json:"power,omitempty"`
	ProposerPriority *string        `json:"proposer_priority,omitempty"`
}

// MarshalJSON encodes the validator with decimal-string integers.
func (i Info) MarshalJSON() ([]byte, error) {
	power := strconv.FormatUint(i.votingPower, 10)
	out := infoJSON{
		Address:     i.address,
		PubKey:      i.pubKey,
		VotingPower: &power,
	}
	if i.proposerPriority != nil {
		p := strconv.FormatInt(*i.proposerPriority, 10)
		out.ProposerPriority = &p
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts either "voting_power" or "power". A non-empty
// address must match the one derived from the key.
func (i *Info) UnmarshalJSON(data []byte) error {
	var raw infoJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if !raw.PubKey.IsValid() {
		return errorsmod.Wrap(liteerrors.ErrParse, "validator: missing pub_key")
	}

	powerStr := raw.VotingPower
	if powerStr == nil {
		powerStr = raw.Power
	}
	if powerStr == nil {
		return errorsmod.Wrapf(liteerrors.ErrParse, "validator %s: missing voting_power", raw.PubKey.Address())
	}
	power, err := strconv.ParseUint(*powerStr, 10, 64)
	if err != nil {
		return errorsmod.Wrapf(liteerrors.ErrParse, "validator %s: voting_power %q: %v", raw.PubKey.Address(), *powerStr, err)
	}

	parsed := NewInfo(raw.PubKey, power)
	if len(raw.Address) > 0 && !bytes.Equal(raw.Address, parsed.address) {
		return errorsmod.Wrapf(liteerrors.ErrParse, "validator address %s does not match pub_key address %s", raw.Address, parsed.address)
	}
	if raw.ProposerPriority != nil {
		p, err := strconv.ParseInt(*raw.ProposerPriority, 10, 64)
		if err != nil {
			return errorsmod.Wrapf(liteerrors.ErrParse, "validator %s: proposer_priority %q: %v", parsed.address, *raw.ProposerPriority, err)
		}
		parsed = parsed.WithProposerPriority(p)
	}

	*i = parsed
	return nil
}
