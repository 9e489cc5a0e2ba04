// Package genesis holds the bootstrap record of a chain: its initial
// validator set and the application hash that anchors trust.
package genesis

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	errorsmod "cosmossdk.io/errors"

	liteerrors "github.com/rollkit/go-lite-abci/pkg/errors"
	"github.com/rollkit/go-lite-abci/pkg/hash"
	"github.com/rollkit/go-lite-abci/pkg/header"
	"github.com/rollkit/go-lite-abci/pkg/validator"
)

// BlockSize limits the size of blocks.
type BlockSize struct {
	MaxBytes int64 `json:"max_bytes,string"`
	MaxGas   int64 `json:"max_gas,string"`
}

// EvidenceParams bounds the age of admissible evidence.
type EvidenceParams struct {
	MaxAge int64 `json:"max_age,string"`
}

// ValidatorParams restricts the key types validators may use.
type ValidatorParams struct {
	PubKeyTypes []string `json:"pub_key_types"`
}

// ConsensusParams are the consensus parameters fixed at genesis.
type ConsensusParams struct {
	Block     BlockSize       `json:"block"`
	Evidence  EvidenceParams  `json:"evidence"`
	Validator ValidatorParams `json:"validator"`
}

// UnmarshalJSON also accepts the older "block_size" key for Block.
func (p *ConsensusParams) UnmarshalJSON(data []byte) error {
	type params ConsensusParams
	var raw struct {
		params
		BlockSize *BlockSize `json:"block_size"`
	}
	raw.params = params(*p)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = ConsensusParams(raw.params)
	if raw.BlockSize != nil {
		p.Block = *raw.BlockSize
	}
	return nil
}

// DefaultConsensusParams mirrors the Tendermint defaults.
func DefaultConsensusParams() ConsensusParams {
	return ConsensusParams{
		Block:     BlockSize{MaxBytes: 22020096, MaxGas: -1},
		Evidence:  EvidenceParams{MaxAge: 100000},
		Validator: ValidatorParams{PubKeyTypes: []string{validator.KeyTypeEd25519.String()}},
	}
}

// Validate checks the parameters for internal consistency.
func (p ConsensusParams) Validate() error {
	if p.Block.MaxBytes <= 0 {
		return fmt.Errorf("block.max_bytes must be positive, got %d", p.Block.MaxBytes)
	}
	if p.Block.MaxGas < -1 {
		return fmt.Errorf("block.max_gas must be >= -1, got %d", p.Block.MaxGas)
	}
	if p.Evidence.MaxAge <= 0 {
		return fmt.Errorf("evidence.max_age must be positive, got %d", p.Evidence.MaxAge)
	}
	if len(p.Validator.PubKeyTypes) == 0 {
		return fmt.Errorf("validator.pub_key_types must not be empty")
	}
	for _, kt := range p.Validator.PubKeyTypes {
		if kt != validator.KeyTypeEd25519.String() && kt != validator.KeyTypeSecp256k1.String() {
			return fmt.Errorf("validator.pub_key_types: unknown key type %q", kt)
		}
	}
	return nil
}

// Genesis is created once when a chain starts and never changes afterwards.
// It is the only source of the initial trusted validator set.
type Genesis struct {
	GenesisTime     time.Time        `json:"genesis_time"`
	ChainID         string           `json:"chain_id"`
	ConsensusParams ConsensusParams  `json:"consensus_params"`
	Validators      []validator.Info `json:"validators"`
	AppHash         hash.Hash        `json:"app_hash"`
	AppState        json.RawMessage  `json:"app_state,omitempty"`
}

// FromJSON decodes and validates a genesis document.
func FromJSON(bz []byte) (*Genesis, error) {
	g := &Genesis{ConsensusParams: DefaultConsensusParams()}
	if err := json.Unmarshal(bz, g); err != nil {
		return nil, errorsmod.Wrapf(liteerrors.ErrInvalidGenesis, "decode: %v", err)
	}
	if err := g.ValidateBasic(); err != nil {
		return nil, err
	}
	return g, nil
}

// FromFile reads and decodes the genesis document at path.
func FromFile(path string) (*Genesis, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read genesis file %s: %w", path, err)
	}
	g, err := FromJSON(bz)
	if err != nil {
		return nil, fmt.Errorf("genesis file %s: %w", path, err)
	}
	return g, nil
}

// ValidateBasic checks the document without building the validator set.
func (g *Genesis) ValidateBasic() error {
	if g.ChainID == "" {
		return errorsmod.Wrap(liteerrors.ErrInvalidGenesis, "chain_id: empty")
	}
	if len(g.ChainID) > header.MaxChainIDLen {
		return errorsmod.Wrapf(liteerrors.ErrInvalidGenesis, "chain_id: longer than %d characters", header.MaxChainIDLen)
	}
	if err := g.ConsensusParams.Validate(); err != nil {
		return errorsmod.Wrapf(liteerrors.ErrInvalidGenesis, "consensus_params: %v", err)
	}

	allowed := make(map[string]bool, len(g.ConsensusParams.Validator.PubKeyTypes))
	for _, kt := range g.ConsensusParams.Validator.PubKeyTypes {
		allowed[kt] = true
	}
	seen := make(map[string]bool, len(g.Validators))
	for i, v := range g.Validators {
		if v.VotingPower() == 0 {
			return errorsmod.Wrapf(liteerrors.ErrInvalidGenesis, "validators[%d] %s: voting power must be positive", i, v.Address())
		}
		if kt := v.PubKey().Type().String(); !allowed[kt] {
			return errorsmod.Wrapf(liteerrors.ErrInvalidGenesis, "validators[%d] %s: key type %s not allowed by consensus params", i, v.Address(), kt)
		}
		addr := string(v.Address())
		if seen[addr] {
			return errorsmod.Wrapf(liteerrors.ErrDuplicateValidator, "validators[%d] %s", i, v.Address())
		}
		seen[addr] = true
	}
	return nil
}

// ValidatorSet builds the initial validator set.
func (g *Genesis) ValidatorSet() (*validator.Set, error) {
	return validator.NewSet(g.Validators)
}

// InitialAppHash returns the application hash trust anchor. The zero value
// means the chain starts without one.
func (g *Genesis) InitialAppHash() hash.Hash {
	return g.AppHash
}
