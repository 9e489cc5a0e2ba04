package validator

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	errorsmod "cosmossdk.io/errors"
	"github.com/cometbft/cometbft/crypto/ed25519"
	"github.com/cometbft/cometbft/crypto/secp256k1"
	cmttypes "github.com/cometbft/cometbft/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	liteerrors "github.com/rollkit/go-lite-abci/pkg/errors"
)

func TestNewInfoDerivesAddress(t *testing.T) {
	priv := ed25519.GenPrivKey()
	pk, err := NewEd25519PubKey(priv.PubKey().Bytes())
	require.NoError(t, err)

	info := NewInfo(pk, 7)
	assert.Equal(t, cmttypes.NewValidator(priv.PubKey(), 7).Address, info.Address())
	assert.Len(t, info.Address(), 20)
	_, ok := info.ProposerPriority()
	assert.False(t, ok)

	secpPriv := secp256k1.GenPrivKey()
	secpPK, err := NewSecp256k1PubKey(secpPriv.PubKey().Bytes())
	require.NoError(t, err)
	assert.Equal(t, secpPriv.PubKey().Address(), NewInfo(secpPK, 1).Address())
}

func TestPubKeyConstructors(t *testing.T) {
	_, err := NewEd25519PubKey(make([]byte, 31))
	require.ErrorIs(t, err, liteerrors.ErrParse)

	_, err = NewSecp256k1PubKey(make([]byte, 32))
	require.ErrorIs(t, err, liteerrors.ErrParse)

	assert.False(t, PubKey{}.IsValid())
	_, err = PubKey{}.AminoBytes()
	require.ErrorIs(t, err, liteerrors.ErrEncoding)
}

func TestVerifySignature(t *testing.T) {
	priv := ed25519.GenPrivKey()
	pk, err := NewEd25519PubKey(priv.PubKey().Bytes())
	require.NoError(t, err)
	info := NewInfo(pk, 1)

	msg := []byte("sign bytes")
	sig, err := priv.Sign(msg)
	require.NoError(t, err)

	assert.True(t, info.VerifySignature(msg, sig))
	assert.False(t, info.VerifySignature([]byte("other"), sig))

	t.Run("malformed signature is not verified", func(t *testing.T) {
		assert.False(t, info.VerifySignature(msg, sig[:10]))
		assert.False(t, info.VerifySignature(msg, nil))

		ok, err := info.Verify(DefaultVerifiers(), msg, []byte{1, 2, 3})
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestVerifyUnsupportedKey(t *testing.T) {
	priv := secp256k1.GenPrivKey()
	pk, err := NewSecp256k1PubKey(priv.PubKey().Bytes())
	require.NoError(t, err)
	info := NewInfo(pk, 1)

	msg := []byte("sign bytes")
	sig, err := priv.Sign(msg)
	require.NoError(t, err)

	ok, err := info.Verify(DefaultVerifiers(), msg, sig)
	require.Error(t, err)
	assert.True(t, errorsmod.IsOf(err, liteerrors.ErrUnsupportedKey))
	assert.False(t, ok)
	assert.False(t, info.VerifySignature(msg, sig))

	t.Run("opt in", func(t *testing.T) {
		verifiers := DefaultVerifiers().With(KeyTypeSecp256k1, VerifySecp256k1)
		ok, err := info.Verify(verifiers, msg, sig)
		require.NoError(t, err)
		assert.True(t, ok)

		// With does not mutate the receiver
		_, err = info.Verify(DefaultVerifiers(), msg, sig)
		require.ErrorIs(t, err, liteerrors.ErrUnsupportedKey)
	})

	t.Run("default table is not shared", func(t *testing.T) {
		verifiers := DefaultVerifiers()
		verifiers[KeyTypeSecp256k1] = VerifySecp256k1
		delete(verifiers, KeyTypeEd25519)

		assert.False(t, info.VerifySignature(msg, sig))
		_, ok := DefaultVerifiers()[KeyTypeEd25519]
		assert.True(t, ok)
		_, ok = DefaultVerifiers()[KeyTypeSecp256k1]
		assert.False(t, ok)
	})

	t.Run("empty table", func(t *testing.T) {
		_, err := NewInfo(pk, 1).Verify(nil, msg, sig)
		require.ErrorIs(t, err, liteerrors.ErrUnsupportedKey)
	})
}

func TestInfoJSON(t *testing.T) {
	priv := ed25519.GenPrivKey()
	pkBytes := priv.PubKey().Bytes()
	pk, err := NewEd25519PubKey(pkBytes)
	require.NoError(t, err)
	addr := pk.Address().String()
	b64 := base64.StdEncoding.EncodeToString(pkBytes)

	t.Run("power alias and priority", func(t *testing.T) {
		doc := `{
			"address": "` + addr + `",
			"pub_key": {"type": "tendermint/PubKeyEd25519", "value": "` + b64 + `"},
			"power": "10",
			"proposer_priority": "-5"
		}`
		var info Info
		require.NoError(t, json.Unmarshal([]byte(doc), &info))
		assert.Equal(t, uint64(10), info.VotingPower())
		assert.True(t, info.PubKey().Equal(pk))
		prio, ok := info.ProposerPriority()
		require.True(t, ok)
		assert.Equal(t, int64(-5), prio)

		out, err := json.Marshal(info)
		require.NoError(t, err)
		var back Info
		require.NoError(t, json.Unmarshal(out, &back))
		assert.Equal(t, info, back)
	})

	t.Run("voting_power without address", func(t *testing.T) {
		doc := `{"pub_key": {"type": "tendermint/PubKeyEd25519", "value": "` + b64 + `"}, "voting_power": "3"}`
		var info Info
		require.NoError(t, json.Unmarshal([]byte(doc), &info))
		assert.Equal(t, uint64(3), info.VotingPower())
		assert.Equal(t, pk.Address(), info.Address())
	})

	t.Run("address mismatch", func(t *testing.T) {
		other := NewInfo(mustRandomPubKey(t), 1).Address().String()
		doc := `{"address": "` + other + `", "pub_key": {"type": "tendermint/PubKeyEd25519", "value": "` + b64 + `"}, "power": "1"}`
		var info Info
		err := json.Unmarshal([]byte(doc), &info)
		require.ErrorIs(t, err, liteerrors.ErrParse)
		assert.ErrorContains(t, err, other)
	})

	t.Run("unsupported key type", func(t *testing.T) {
		doc := `{"pub_key": {"type": "tendermint/PubKeySr25519", "value": "` + b64 + `"}, "power": "1"}`
		var info Info
		err := json.Unmarshal([]byte(doc), &info)
		require.ErrorIs(t, err, liteerrors.ErrUnsupportedKey)
	})

	t.Run("missing power", func(t *testing.T) {
		doc := `{"pub_key": {"type": "tendermint/PubKeyEd25519", "value": "` + b64 + `"}}`
		var info Info
		require.ErrorIs(t, json.Unmarshal([]byte(doc), &info), liteerrors.ErrParse)
	})

	t.Run("negative power", func(t *testing.T) {
		doc := `{"pub_key": {"type": "tendermint/PubKeyEd25519", "value": "` + b64 + `"}, "power": "-1"}`
		var info Info
		require.ErrorIs(t, json.Unmarshal([]byte(doc), &info), liteerrors.ErrParse)
	})
}

func TestUpdateJSON(t *testing.T) {
	pkBytes := ed25519.GenPrivKey().PubKey().Bytes()
	doc := `{"pub_key": {"type": "ed25519", "data": "` + base64.StdEncoding.EncodeToString(pkBytes) + `"}, "power": "12"}`

	var u Update
	require.NoError(t, json.Unmarshal([]byte(doc), &u))
	assert.Equal(t, uint64(12), u.Power)
	assert.Equal(t, KeyTypeEd25519, u.PubKey.Type())
	assert.Equal(t, pkBytes, u.PubKey.Bytes())

	bad := `{"pub_key": {"type": "sr25519", "data": "AA=="}, "power": "1"}`
	require.ErrorIs(t, json.Unmarshal([]byte(bad), &u), liteerrors.ErrUnsupportedKey)
}

func mustRandomPubKey(t *testing.T) PubKey {
	t.Helper()
	pk, err := NewEd25519PubKey(ed25519.GenPrivKey().PubKey().Bytes())
	require.NoError(t, err)
	return pk
}
