package cometcompat

import (
	"time"

	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	cmttypes "github.com/cometbft/cometbft/types"

	"github.com/rollkit/go-lite-abci/pkg/header"
)

// PrecommitSignBytes returns the CometBFT sign bytes of a precommit for the
// block identified by blockID at the header's height. These are the bytes a
// validator's signature is checked against.
func PrecommitSignBytes(h *header.Header, blockID header.BlockID, round int32, timestamp time.Time) ([]byte, error) {
	cmtHeader, err := ToCometHeader(h)
	if err != nil {
		return nil, err
	}

	cmtBlockID := ToCometBlockID(blockID)
	vote := cmtproto.Vote{
		Type:             cmtproto.PrecommitType,
		Height:           cmtHeader.Height,
		Round:            round,
		BlockID:          cmtBlockID.ToProto(),
		Timestamp:        timestamp,
		ValidatorAddress: h.ProposerAddress,
		ValidatorIndex:   0,
	}

	return cmttypes.VoteSignBytes(h.ChainID, &vote), nil
}
