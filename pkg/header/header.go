// Package header defines the block header and its canonical hash.
package header

import (
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/cometbft/cometbft/crypto"

	"github.com/rollkit/go-lite-abci/pkg/canonical"
	liteerrors "github.com/rollkit/go-lite-abci/pkg/errors"
	"github.com/rollkit/go-lite-abci/pkg/hash"
	"github.com/rollkit/go-lite-abci/pkg/merkle"
)

const (
	// MaxChainIDLen is the longest chain id accepted by ValidateBasic.
	MaxChainIDLen = 50
	// AddressSize is the length of a proposer address.
	AddressSize = crypto.AddressSize
)

// Version holds the block and application protocol versions.
type Version struct {
	Block uint64 `json:"block,string"`
	App   uint64 `json:"app,string"`
}

// PartSetHeader identifies the parts a block was split into for gossip.
type PartSetHeader struct {
	Total uint32    `json:"total,string"`
	Hash  hash.Hash `json:"hash"`
}

// BlockID identifies a block by its header hash and part set header.
type BlockID struct {
	Hash          hash.Hash     `json:"hash"`
	PartSetHeader PartSetHeader `json:"parts"`
}

// IsZero reports whether the block id is entirely unset, as it is for the
// first block of a chain.
func (id BlockID) IsZero() bool {
	return id.Hash.IsZero() && id.PartSetHeader.Total == 0 && id.PartSetHeader.Hash.IsZero()
}

// Header is the block header. Its hash commits to exactly these sixteen
// fields in this order.
//
// Hash-valued fields, app_hash included, use the zero hash.Hash for
// "absent", which hashes as an empty leaf. A field holding a genuine
// all-zero digest hashes the same as an absent one.
type Header struct {
	Version            Version        `json:"version"`
	ChainID            string         `json:"chain_id"`
	Height             uint64         `json:"height,string"`
	Time               time.Time      `json:"time"`
	NumTxs             uint64         `json:"num_txs,string"`
	TotalTxs           uint64         `json:"total_txs,string"`
	LastBlockID        BlockID        `json:"last_block_id"`
	LastCommitHash     hash.Hash      `json:"last_commit_hash"`
	DataHash           hash.Hash      `json:"data_hash"`
	ValidatorsHash     hash.Hash      `json:"validators_hash"`
	NextValidatorsHash hash.Hash      `json:"next_validators_hash"`
	ConsensusHash      hash.Hash      `json:"consensus_hash"`
	AppHash            hash.Hash      `json:"app_hash"`
	LastResultsHash    hash.Hash      `json:"last_results_hash"`
	EvidenceHash       hash.Hash      `json:"evidence_hash"`
	ProposerAddress    crypto.Address `json:"proposer_address"`
}

// Hash returns the Merkle root over the canonically encoded header fields.
// Malformed fields are reported as ErrEncoding; Hash never panics.
func (h *Header) Hash() (hash.Hash, error) {
	leaves, err := h.leaves()
	if err != nil {
		return hash.Hash{}, err
	}
	return merkle.HashFromByteSlices(leaves), nil
}

func (h *Header) leaves() ([][]byte, error) {
	if h.Height == 0 {
		return nil, errorsmod.Wrap(liteerrors.ErrEncoding, "height: must be positive")
	}
	if n := len(h.ProposerAddress); n != 0 && n != AddressSize {
		return nil, errorsmod.Wrapf(liteerrors.ErrEncoding, "proposer_address: expected %d bytes, got %d", AddressSize, n)
	}
	timeEnc, err := canonical.Time(h.Time)
	if err != nil {
		return nil, errorsmod.Wrap(err, "time")
	}

	return [][]byte{
		canonical.Version(h.Version.Block, h.Version.App),
		canonical.LengthPrefixed([]byte(h.ChainID)),
		canonical.Uvarint(h.Height),
		timeEnc,
		canonical.Uvarint(h.NumTxs),
		canonical.Uvarint(h.TotalTxs),
		encodeBlockID(h.LastBlockID),
		encodeHash(h.LastCommitHash),
		encodeHash(h.DataHash),
		encodeHash(h.ValidatorsHash),
		encodeHash(h.NextValidatorsHash),
		encodeHash(h.ConsensusHash),
		encodeHash(h.AppHash),
		encodeHash(h.LastResultsHash),
		encodeHash(h.EvidenceHash),
		canonical.LengthPrefixed(h.ProposerAddress),
	}, nil
}

func encodeHash(h hash.Hash) []byte {
	return canonical.OptionalBytes(optional(h))
}

func encodeBlockID(id BlockID) []byte {
	return canonical.BlockID(optional(id.Hash), id.PartSetHeader.Total, optional(id.PartSetHeader.Hash))
}

func optional(h hash.Hash) []byte {
	if h.IsZero() {
		return nil
	}
	return h[:]
}

// ValidateBasic performs stateless checks beyond what hashing requires.
func (h *Header) ValidateBasic() error {
	if len(h.ChainID) == 0 {
		return errorsmod.Wrap(liteerrors.ErrValidation, "chain_id: empty")
	}
	if len(h.ChainID) > MaxChainIDLen {
		return errorsmod.Wrapf(liteerrors.ErrValidation, "chain_id: longer than %d characters", MaxChainIDLen)
	}
	if h.NumTxs > h.TotalTxs {
		return errorsmod.Wrapf(liteerrors.ErrValidation, "num_txs %d exceeds total_txs %d", h.NumTxs, h.TotalTxs)
	}
	_, err := h.leaves()
	return err
}

// Light-client accessors.

func (h *Header) GetHeight() uint64                { return h.Height }
func (h *Header) GetTime() time.Time               { return h.Time }
func (h *Header) GetValidatorsHash() hash.Hash     { return h.ValidatorsHash }
func (h *Header) GetNextValidatorsHash() hash.Hash { return h.NextValidatorsHash }
