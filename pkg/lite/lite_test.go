package lite

import (
	"math"
	"testing"
	"time"

	"github.com/cometbft/cometbft/crypto/ed25519"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	liteerrors "github.com/rollkit/go-lite-abci/pkg/errors"
	"github.com/rollkit/go-lite-abci/pkg/hash"
	"github.com/rollkit/go-lite-abci/pkg/header"
	"github.com/rollkit/go-lite-abci/pkg/merkle"
	"github.com/rollkit/go-lite-abci/pkg/validator"
)

type fixtureHeader struct {
	height   uint64
	vals     hash.Hash
	nextVals hash.Hash
}

func (f fixtureHeader) GetHeight() uint64                { return f.height }
func (f fixtureHeader) GetTime() time.Time               { return time.Unix(int64(f.height), 0) }
func (f fixtureHeader) GetValidatorsHash() hash.Hash     { return f.vals }
func (f fixtureHeader) GetNextValidatorsHash() hash.Hash { return f.nextVals }
func (f fixtureHeader) Hash() (hash.Hash, error)         { return hash.Sum([]byte{byte(f.height)}), nil }

type fixtureValidator struct {
	name  string
	power uint64
}

func (v fixtureValidator) VotingPower() uint64 { return v.power }
func (v fixtureValidator) VerifySignature(signBytes, signature []byte) bool {
	return string(signature) == v.name+":"+string(signBytes)
}

type fixtureSet []fixtureValidator

func (s fixtureSet) Hash() hash.Hash {
	leaves := make([][]byte, len(s))
	for i, v := range s {
		leaves[i] = []byte(v.name)
	}
	return merkle.HashFromByteSlices(leaves)
}

func (s fixtureSet) TotalVotingPower() (uint64, error) { return VotingPower([]fixtureValidator(s)) }
func (s fixtureSet) Validators() []fixtureValidator    { return s }

func TestValidatorsMatchFixtures(t *testing.T) {
	set := fixtureSet{{name: "a", power: 1}, {name: "b", power: 2}}
	other := fixtureSet{{name: "c", power: 1}}

	h := fixtureHeader{height: 3, vals: set.Hash(), nextVals: other.Hash()}
	assert.True(t, ValidatorsMatch[fixtureValidator](h, set))
	assert.False(t, ValidatorsMatch[fixtureValidator](h, other))
	assert.True(t, NextValidatorsMatch[fixtureValidator](h, other))
	assert.False(t, NextValidatorsMatch[fixtureValidator](h, set))

	total, err := set.TotalVotingPower()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), total)

	for _, v := range set.Validators() {
		assert.True(t, v.VerifySignature([]byte("msg"), []byte(v.name+":msg")))
	}
}

func TestValidatorsMatchProductionTypes(t *testing.T) {
	priv := ed25519.GenPrivKey()
	pk, err := validator.NewEd25519PubKey(priv.PubKey().Bytes())
	require.NoError(t, err)
	set, err := validator.NewSet([]validator.Info{validator.NewInfo(pk, 10)})
	require.NoError(t, err)

	h := &header.Header{
		ChainID:            "lite-test",
		Height:             1,
		Time:               time.Now(),
		ValidatorsHash:     set.Hash(),
		NextValidatorsHash: hash.Empty(),
	}
	assert.True(t, ValidatorsMatch[validator.Info](h, set))
	assert.False(t, NextValidatorsMatch[validator.Info](h, set))

	signBytes := []byte("vote")
	sig, err := priv.Sign(signBytes)
	require.NoError(t, err)
	for _, v := range set.Validators() {
		assert.True(t, v.VerifySignature(signBytes, sig))
	}

	power, err := VotingPower(set.Validators())
	require.NoError(t, err)
	assert.Equal(t, uint64(10), power)
}

func TestVotingPowerOverflow(t *testing.T) {
	vals := []fixtureValidator{{name: "a", power: math.MaxUint64}, {name: "b", power: 1}}
	_, err := VotingPower(vals)
	require.ErrorIs(t, err, liteerrors.ErrOverflow)

	_, err = fixtureSet(vals).TotalVotingPower()
	require.ErrorIs(t, err, liteerrors.ErrOverflow)
}
