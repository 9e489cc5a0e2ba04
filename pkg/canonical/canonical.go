// Package canonical implements the deterministic byte encoding of header and
// validator fields that feeds the Merkle hasher.
//
// The encoding is the amino binary format, which for the types used here is
// wire-compatible with proto3:
//
//   - integers are unsigned LEB128 varints; signed values are encoded as their
//     two's complement uint64 (ten bytes when negative)
//   - byte strings are a varint length followed by the raw bytes
//   - nested messages are a sequence of (field<<3 | wiretype) keys and values,
//     with zero scalars and empty byte strings omitted
//   - interface values (public keys) carry a four byte registration prefix
//     ahead of their length-prefixed content
//
// Every conformant implementation must produce identical bytes, so none of
// these rules may change.
package canonical

import (
	"time"

	errorsmod "cosmossdk.io/errors"
	"google.golang.org/protobuf/encoding/protowire"

	liteerrors "github.com/rollkit/go-lite-abci/pkg/errors"
)

// Range of timestamps representable by google.protobuf.Timestamp.
const (
	minTimestampSeconds int64 = -62135596800
	maxTimestampSeconds int64 = 253402300800
)

// Uvarint encodes v as a varint.
func Uvarint(v uint64) []byte {
	return protowire.AppendVarint(nil, v)
}

// LengthPrefixed encodes b as a varint length followed by b. An empty b
// encodes as the single byte 0x00.
func LengthPrefixed(b []byte) []byte {
	return protowire.AppendBytes(make([]byte, 0, protowire.SizeBytes(len(b))), b)
}

// OptionalBytes is LengthPrefixed for non-empty input and an empty leaf
// otherwise.
func OptionalBytes(b []byte) []byte {
	if len(b) == 0 {
		return []byte{}
	}
	return LengthPrefixed(b)
}

// Version encodes the consensus version message {1: block, 2: app}.
func Version(block, app uint64) []byte {
	var bz []byte
	bz = appendUvarintField(bz, 1, block)
	bz = appendUvarintField(bz, 2, app)
	return nonNil(bz)
}

// Time encodes t as the timestamp message {1: seconds, 2: nanos}.
func Time(t time.Time) ([]byte, error) {
	seconds := t.Unix()
	if seconds < minTimestampSeconds || seconds >= maxTimestampSeconds {
		return nil, errorsmod.Wrapf(liteerrors.ErrEncoding, "time %s outside the timestamp range", t.UTC().Format(time.RFC3339Nano))
	}
	nanos := int32(t.Nanosecond()) //nolint:gosec // always in [0, 1e9)

	var bz []byte
	bz = appendUvarintField(bz, 1, uint64(seconds)) //nolint:gosec // two's complement is the wire form
	bz = appendUvarintField(bz, 2, uint64(nanos))
	return nonNil(bz), nil
}

// BlockID encodes the block id message
// {1: hash, 2: {1: total, 2: parts_hash}}. The parts header is omitted when
// both of its fields are empty.
func BlockID(blockHash []byte, total uint32, partsHash []byte) []byte {
	var parts []byte
	parts = appendUvarintField(parts, 1, uint64(total))
	parts = appendBytesField(parts, 2, partsHash)

	var bz []byte
	bz = appendBytesField(bz, 1, blockHash)
	bz = appendBytesField(bz, 2, parts)
	return nonNil(bz)
}

// PubKey encodes an amino interface value: the registration prefix followed
// by the length-prefixed key bytes.
func PubKey(prefix, key []byte) []byte {
	bz := make([]byte, 0, len(prefix)+protowire.SizeBytes(len(key)))
	bz = append(bz, prefix...)
	return protowire.AppendBytes(bz, key)
}

// ValidatorLeaf encodes the validator hashing message
// {1: pub_key, 2: voting_power} where pubKey is the output of PubKey.
func ValidatorLeaf(pubKey []byte, votingPower uint64) []byte {
	var bz []byte
	bz = appendBytesField(bz, 1, pubKey)
	bz = appendUvarintField(bz, 2, votingPower)
	return nonNil(bz)
}

func appendUvarintField(bz []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return bz
	}
	bz = protowire.AppendTag(bz, num, protowire.VarintType)
	return protowire.AppendVarint(bz, v)
}

func appendBytesField(bz []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return bz
	}
	bz = protowire.AppendTag(bz, num, protowire.BytesType)
	return protowire.AppendBytes(bz, v)
}

// nonNil returns empty messages as a non-nil, zero-length leaf.
func nonNil(bz []byte) []byte {
	if bz == nil {
		return []byte{}
	}
	return bz
}
