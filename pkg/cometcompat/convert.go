package cometcompat

import (
	"math"

	errorsmod "cosmossdk.io/errors"
	cmbytes "github.com/cometbft/cometbft/libs/bytes"
	cmprotoversion "github.com/cometbft/cometbft/proto/tendermint/version"
	cmttypes "github.com/cometbft/cometbft/types"

	liteerrors "github.com/rollkit/go-lite-abci/pkg/errors"
	"github.com/rollkit/go-lite-abci/pkg/genesis"
	"github.com/rollkit/go-lite-abci/pkg/hash"
	"github.com/rollkit/go-lite-abci/pkg/header"
)

// ToCometHeader converts a light-client header to the CometBFT header
// format. NumTxs and TotalTxs have no CometBFT counterpart and are dropped.
func ToCometHeader(h *header.Header) (cmttypes.Header, error) {
	if h.Height > math.MaxInt64 {
		return cmttypes.Header{}, errorsmod.Wrapf(liteerrors.ErrEncoding, "height %d exceeds int64", h.Height)
	}

	return cmttypes.Header{
		Version: cmprotoversion.Consensus{
			Block: h.Version.Block,
			App:   h.Version.App,
		},
		ChainID:            h.ChainID,
		Height:             int64(h.Height), //nolint:gosec // checked above
		Time:               h.Time,
		LastBlockID:        ToCometBlockID(h.LastBlockID),
		LastCommitHash:     hexBytes(h.LastCommitHash),
		DataHash:           hexBytes(h.DataHash),
		ValidatorsHash:     hexBytes(h.ValidatorsHash),
		NextValidatorsHash: hexBytes(h.NextValidatorsHash),
		ConsensusHash:      hexBytes(h.ConsensusHash),
		AppHash:            hexBytes(h.AppHash),
		LastResultsHash:    hexBytes(h.LastResultsHash),
		EvidenceHash:       hexBytes(h.EvidenceHash),
		ProposerAddress:    h.ProposerAddress,
	}, nil
}

// ToCometBlockID converts a block id.
func ToCometBlockID(id header.BlockID) cmttypes.BlockID {
	return cmttypes.BlockID{
		Hash: hexBytes(id.Hash),
		PartSetHeader: cmttypes.PartSetHeader{
			Total: id.PartSetHeader.Total,
			Hash:  hexBytes(id.PartSetHeader.Hash),
		},
	}
}

// ToCometGenesisDoc converts a genesis record and validates the result with
// CometBFT's own rules.
func ToCometGenesisDoc(g *genesis.Genesis) (*cmttypes.GenesisDoc, error) {
	params := cmttypes.DefaultConsensusParams()
	params.Block.MaxBytes = g.ConsensusParams.Block.MaxBytes
	params.Block.MaxGas = g.ConsensusParams.Block.MaxGas
	params.Evidence.MaxAgeNumBlocks = g.ConsensusParams.Evidence.MaxAge
	params.Validator.PubKeyTypes = append([]string(nil), g.ConsensusParams.Validator.PubKeyTypes...)

	validators := make([]cmttypes.GenesisValidator, 0, len(g.Validators))
	for _, info := range g.Validators {
		val, err := ToCometValidator(info)
		if err != nil {
			return nil, err
		}
		validators = append(validators, cmttypes.GenesisValidator{
			Address: val.Address,
			PubKey:  val.PubKey,
			Power:   val.VotingPower,
		})
	}

	doc := &cmttypes.GenesisDoc{
		GenesisTime:     g.GenesisTime,
		ChainID:         g.ChainID,
		InitialHeight:   1,
		ConsensusParams: params,
		Validators:      validators,
		AppHash:         hexBytes(g.InitialAppHash()),
		AppState:        append([]byte(nil), g.AppState...),
	}
	if err := doc.ValidateAndComplete(); err != nil {
		return nil, errorsmod.Wrapf(liteerrors.ErrInvalidGenesis, "cometbft: %v", err)
	}
	return doc, nil
}

func hexBytes(h hash.Hash) cmbytes.HexBytes {
	if h.IsZero() {
		return nil
	}
	return h.Bytes()
}
