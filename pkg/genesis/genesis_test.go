package genesis

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	errorsmod "cosmossdk.io/errors"
	"github.com/cometbft/cometbft/crypto/ed25519"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	liteerrors "github.com/rollkit/go-lite-abci/pkg/errors"
	"github.com/rollkit/go-lite-abci/pkg/hash"
	"github.com/rollkit/go-lite-abci/pkg/validator"
)

const conformanceGenesis = `{
  "genesis_time": "2019-09-01T00:00:00Z",
  "chain_id": "conformance-chain",
  "consensus_params": {
    "block_size": {"max_bytes": "22020096", "max_gas": "-1"},
    "evidence": {"max_age": "100000"},
    "validator": {"pub_key_types": ["ed25519"]}
  },
  "validators": [
    {
      "pub_key": {"type": "tendermint/PubKeyEd25519", "value": "80lTnH5e98SVSbCcS/wjNTGKsP5R+/qiQztPE+gW9Kc="},
      "power": "148151478422287875"
    },
    {
      "pub_key": {"type": "tendermint/PubKeyEd25519", "value": "VkaqTHBrevc3aJA+d9EXSH0lhLdtg+uP8oeTTud1ivw="},
      "voting_power": "158095448483785107"
    },
    {
      "pub_key": {"type": "tendermint/PubKeyEd25519", "value": "62tzLEvYa1+j87w9tojaDtGCp0EfgcLUBVBrKY/BnlI="},
      "power": "770561664770006272",
      "proposer_priority": "12"
    }
  ],
  "app_hash": "",
  "app_state": {"accounts": []}
}`

func TestFromJSONConformance(t *testing.T) {
	g, err := FromJSON([]byte(conformanceGenesis))
	require.NoError(t, err)

	assert.Equal(t, "conformance-chain", g.ChainID)
	assert.Equal(t, int64(22020096), g.ConsensusParams.Block.MaxBytes)
	assert.Equal(t, int64(-1), g.ConsensusParams.Block.MaxGas)
	assert.Len(t, g.Validators, 3)
	assert.JSONEq(t, `{"accounts": []}`, string(g.AppState))
	assert.True(t, g.InitialAppHash().IsZero())

	set, err := g.ValidatorSet()
	require.NoError(t, err)
	assert.Equal(t, "B92B4474567A1B57969375C13CF8129AA70230642BD7FB9FB2CC316E87CE01D7", set.Hash().String())

	total, err := set.TotalVotingPower()
	require.NoError(t, err)
	assert.Equal(t, uint64(1076808591676079254), total)
}

func TestFromJSONDefaults(t *testing.T) {
	pk := ed25519.GenPrivKey().PubKey()
	appHash := hash.Sum([]byte("app state"))
	doc := `{
		"genesis_time": "2020-01-01T00:00:00Z",
		"chain_id": "defaults",
		"validators": [{"pub_key": {"type": "tendermint/PubKeyEd25519", "value": "` + base64.StdEncoding.EncodeToString(pk.Bytes()) + `"}, "power": "1"}],
		"app_hash": "` + appHash.String() + `"
	}`
	g, err := FromJSON([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, DefaultConsensusParams(), g.ConsensusParams)
	assert.Equal(t, appHash, g.InitialAppHash())
}

func TestFromJSONInvalid(t *testing.T) {
	pkB64 := base64.StdEncoding.EncodeToString(ed25519.GenPrivKey().PubKey().Bytes())
	val := `{"pub_key": {"type": "tendermint/PubKeyEd25519", "value": "` + pkB64 + `"}, "power": "1"}`

	tests := []struct {
		name string
		doc  string
		kind *errorsmod.Error
	}{
		{
			name: "malformed json",
			doc:  `{"chain_id": `,
			kind: liteerrors.ErrInvalidGenesis,
		},
		{
			name: "empty chain id",
			doc:  `{"chain_id": "", "validators": []}`,
			kind: liteerrors.ErrInvalidGenesis,
		},
		{
			name: "chain id too long",
			doc:  `{"chain_id": "` + strings.Repeat("x", 51) + `"}`,
			kind: liteerrors.ErrInvalidGenesis,
		},
		{
			name: "zero power",
			doc:  `{"chain_id": "c", "validators": [{"pub_key": {"type": "tendermint/PubKeyEd25519", "value": "` + pkB64 + `"}, "power": "0"}]}`,
			kind: liteerrors.ErrInvalidGenesis,
		},
		{
			name: "duplicate validator",
			doc:  `{"chain_id": "c", "validators": [` + val + `,` + val + `]}`,
			kind: liteerrors.ErrDuplicateValidator,
		},
		{
			name: "bad hash hex",
			doc:  `{"chain_id": "c", "app_hash": "XYZ"}`,
			kind: liteerrors.ErrInvalidGenesis,
		},
		{
			name: "short app_hash",
			doc:  `{"chain_id": "c", "app_hash": "0A0B"}`,
			kind: liteerrors.ErrInvalidGenesis,
		},
		{
			name: "key type not allowed",
			doc:  `{"chain_id": "c", "consensus_params": {"validator": {"pub_key_types": ["secp256k1"]}}, "validators": [` + val + `]}`,
			kind: liteerrors.ErrInvalidGenesis,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromJSON([]byte(tc.doc))
			require.Error(t, err)
			assert.True(t, errorsmod.IsOf(err, tc.kind), "got %v", err)
		})
	}
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genesis.json")
	require.NoError(t, os.WriteFile(path, []byte(conformanceGenesis), 0o600))

	g, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "conformance-chain", g.ChainID)

	_, err = FromFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "missing.json")
}

func TestValidatorSetIsIndependent(t *testing.T) {
	g, err := FromJSON([]byte(conformanceGenesis))
	require.NoError(t, err)

	set, err := g.ValidatorSet()
	require.NoError(t, err)

	updated, err := set.WithUpdates([]validator.Update{{PubKey: g.Validators[0].PubKey(), Power: 1}})
	require.NoError(t, err)
	assert.NotEqual(t, set.Hash(), updated.Hash())

	again, err := g.ValidatorSet()
	require.NoError(t, err)
	assert.Equal(t, set.Hash(), again.Hash())
}
