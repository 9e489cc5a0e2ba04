package validator

import (
	"bytes"
	"encoding/json"
	"math"
	"runtime"
	"sort"
	"strconv"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	"github.com/cometbft/cometbft/crypto"
	"golang.org/x/sync/errgroup"

	liteerrors "github.com/rollkit/go-lite-abci/pkg/errors"
	"github.com/rollkit/go-lite-abci/pkg/hash"
	"github.com/rollkit/go-lite-abci/pkg/merkle"
)

// parallelLeafThreshold is the set size above which leaves are encoded
// concurrently.
const parallelLeafThreshold = 128

// Set is an immutable validator set ordered by ascending address. Changes
// produce a new Set.
type Set struct {
	validators []Info
	leaves     [][]byte
}

// NewSet sorts a copy of vals by address and encodes the hash leaves.
// Validators sharing an address are rejected, never merged.
func NewSet(vals []Info) (*Set, error) {
	sorted := make([]Info, len(vals))
	copy(sorted, vals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i].address, sorted[j].address) < 0
	})

	for i, v := range sorted {
		if !v.pubKey.IsValid() {
			return nil, errorsmod.Wrapf(liteerrors.ErrEncoding, "validator %d: invalid pub_key", i)
		}
		if i > 0 && bytes.Equal(sorted[i-1].address, v.address) {
			return nil, errorsmod.Wrapf(liteerrors.ErrDuplicateValidator, "address %s", v.address)
		}
	}

	leaves, err := hashLeaves(sorted)
	if err != nil {
		return nil, err
	}
	return &Set{validators: sorted, leaves: leaves}, nil
}

func hashLeaves(vals []Info) ([][]byte, error) {
	leaves := make([][]byte, len(vals))
	if len(vals) <= parallelLeafThreshold {
		for i, v := range vals {
			leaf, err := v.HashLeaf()
			if err != nil {
				return nil, err
			}
			leaves[i] = leaf
		}
		return leaves, nil
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range vals {
		g.Go(func() error {
			leaf, err := vals[i].HashLeaf()
			if err != nil {
				return err
			}
			leaves[i] = leaf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return leaves, nil
}

// Hash returns the Merkle root over the address-ordered validator leaves.
func (s *Set) Hash() hash.Hash {
	return merkle.HashFromByteSlices(s.leaves)
}

// TotalVotingPower returns the sum of all voting powers. It fails with
// ErrOverflow instead of wrapping when the sum does not fit in a uint64.
func (s *Set) TotalVotingPower() (uint64, error) {
	total := sdkmath.ZeroInt()
	for _, v := range s.validators {
		total = total.Add(sdkmath.NewIntFromUint64(v.votingPower))
	}
	if !total.IsUint64() {
		return 0, errorsmod.Wrapf(liteerrors.ErrOverflow, "total voting power %s exceeds %d", total, uint64(math.MaxUint64))
	}
	return total.Uint64(), nil
}

// Validators returns a copy of the members in address order.
func (s *Set) Validators() []Info {
	out := make([]Info, len(s.validators))
	copy(out, s.validators)
	return out
}

// Size returns the number of validators.
func (s *Set) Size() int {
	return len(s.validators)
}

// GetByAddress returns the validator with the given address.
func (s *Set) GetByAddress(addr crypto.Address) (Info, bool) {
	i := s.search(addr)
	if i < len(s.validators) && bytes.Equal(s.validators[i].address, addr) {
		return s.validators[i], true
	}
	return Info{}, false
}

// HasAddress reports whether a validator with the address is in the set.
func (s *Set) HasAddress(addr crypto.Address) bool {
	_, ok := s.GetByAddress(addr)
	return ok
}

func (s *Set) search(addr crypto.Address) int {
	return sort.Search(len(s.validators), func(i int) bool {
		return bytes.Compare(s.validators[i].address, addr) >= 0
	})
}

// Update changes the voting power of one validator. A power of zero removes
// the validator; an unknown key is added.
type Update struct {
	PubKey PubKey
	Power  uint64
}

// WithUpdates applies updates to a copy of the set. Proposer priorities of
// retained validators are kept. A key may appear at most once in updates.
func (s *Set) WithUpdates(updates []Update) (*Set, error) {
	byAddr := make(map[string]Info, len(s.validators)+len(updates))
	for _, v := range s.validators {
		byAddr[string(v.address)] = v
	}

	seen := make(map[string]struct{}, len(updates))
	for _, u := range updates {
		if !u.PubKey.IsValid() {
			return nil, errorsmod.Wrap(liteerrors.ErrEncoding, "validator update: invalid pub_key")
		}
		addr := u.PubKey.Address()
		key := string(addr)
		if _, dup := seen[key]; dup {
			return nil, errorsmod.Wrapf(liteerrors.ErrDuplicateValidator, "update for %s listed twice", addr)
		}
		seen[key] = struct{}{}

		existing, ok := byAddr[key]
		switch {
		case u.Power == 0 && !ok:
			return nil, errorsmod.Wrapf(liteerrors.ErrValidatorNotFound, "cannot remove %s", addr)
		case u.Power == 0:
			delete(byAddr, key)
		case ok:
			byAddr[key] = existing.WithVotingPower(u.Power)
		default:
			byAddr[key] = NewInfo(u.PubKey, u.Power)
		}
	}

	vals := make([]Info, 0, len(byAddr))
	for _, v := range byAddr {
		vals = append(vals, v)
	}
	return NewSet(vals)
}

type updatePubKeyJSON struct {
	Type string `json:"type"`
	Data []byte `json:"data"`
}

type updateJSON struct {
	PubKey updatePubKeyJSON `json:"pub_key"`
	Power  string           `json:"power"`
}

// UnmarshalJSON decodes the ABCI validator update form
// {"pub_key": {"type": "ed25519", "data": "<base64>"}, "power": "10"}.
func (u *Update) UnmarshalJSON(data []byte) error {
	var raw updateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return errorsmod.Wrapf(liteerrors.ErrParse, "validator update: %v", err)
	}

	var (
		pk  PubKey
		err error
	)
	switch raw.PubKey.Type {
	case KeyTypeEd25519.String():
		pk, err = NewEd25519PubKey(raw.PubKey.Data)
	case KeyTypeSecp256k1.String():
		pk, err = NewSecp256k1PubKey(raw.PubKey.Data)
	default:
		return errorsmod.Wrapf(liteerrors.ErrUnsupportedKey, "validator update: pub_key type %q", raw.PubKey.Type)
	}
	if err != nil {
		return err
	}

	power, err := strconv.ParseUint(raw.Power, 10, 64)
	if err != nil {
		return errorsmod.Wrapf(liteerrors.ErrParse, "validator update %s: power %q: %v", pk.Address(), raw.Power, err)
	}

	*u = Update{PubKey: pk, Power: power}
	return nil
}
