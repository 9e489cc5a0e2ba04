package cometcompat

import (
	errorsmod "cosmossdk.io/errors"

	liteerrors "github.com/rollkit/go-lite-abci/pkg/errors"
	"github.com/rollkit/go-lite-abci/pkg/hash"
	"github.com/rollkit/go-lite-abci/pkg/header"
)

// LightHeaderHasher returns the canonical light-client header hash.
func LightHeaderHasher() HeaderHasher {
	return func(h *header.Header) (hash.Hash, error) {
		return h.Hash()
	}
}

// CometHeaderHasher returns the hash CometBFT assigns to the converted
// header. It differs from the light-client hash because CometBFT encodes the
// leaves as protobuf and has no transaction counters.
func CometHeaderHasher() HeaderHasher {
	return func(h *header.Header) (hash.Hash, error) {
		cmtHeader, err := ToCometHeader(h)
		if err != nil {
			return hash.Hash{}, err
		}
		sum := cmtHeader.Hash()
		if sum == nil {
			return hash.Hash{}, errorsmod.Wrap(liteerrors.ErrEncoding, "validators_hash: CometBFT cannot hash a header without it")
		}
		return hash.New(sum)
	}
}
