// Package merkle computes the simple binary Merkle root shared by header and
// validator-set hashing.
//
// The tree is CometBFT's RFC 6962 tree: leaves are hashed as
// SHA-256(0x00 || leaf) and inner nodes as SHA-256(0x01 || left || right).
// A list of n > 1 leaves is split after the largest power of two strictly
// less than n. The root of an empty list is SHA-256 of empty input.
package merkle

import (
	cmtmerkle "github.com/cometbft/cometbft/crypto/merkle"

	"github.com/rollkit/go-lite-abci/pkg/hash"
)

// HashFromByteSlices returns the Merkle root of items, in order.
func HashFromByteSlices(items [][]byte) hash.Hash {
	var root hash.Hash
	copy(root[:], cmtmerkle.HashFromByteSlices(items))
	return root
}
