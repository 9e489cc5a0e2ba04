package cometcompat

import (
	"github.com/rollkit/go-lite-abci/pkg/hash"
	"github.com/rollkit/go-lite-abci/pkg/header"
	"github.com/rollkit/go-lite-abci/pkg/validator"
)

// HeaderHasher computes the hash a header is known by in a given consensus
// system. It is injected wherever a component needs header identity, so the
// same code can serve the canonical light-client hash and CometBFT's.
type HeaderHasher func(h *header.Header) (hash.Hash, error)

// ValidatorHasher computes the commitment to a validator set.
type ValidatorHasher func(set *validator.Set) (hash.Hash, error)
