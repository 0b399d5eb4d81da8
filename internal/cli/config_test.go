package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/stakeflow/internal/config"
	stakeerr "github.com/mrz1836/stakeflow/pkg/errors"
)

func TestConfigInit(t *testing.T) {
	home := t.TempDir()

	out, err := runIn(t, home, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized at "+config.Path(home))

	loaded, err := config.Load(config.Path(home))
	require.NoError(t, err)
	assert.Equal(t, config.Defaults().Deployments, loaded.Deployments)

	_, err = runIn(t, home, "config", "init")
	require.ErrorIs(t, err, stakeerr.ErrGeneral)

	_, err = runIn(t, home, "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigGet(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"default_chain_id", "6900"},
		{"display.locale", "en"},
		{"display.truncate_length", "12"},
		{"output.default_format", "auto"},
		{"output.verbose", "false"},
		{"logging.level", "off"},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			out, err := run(t, "config", "get", tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.want+"\n", out)
		})
	}
}

func TestConfigGet_UnknownKey(t *testing.T) {
	_, err := run(t, "config", "get", "networks.eth.rpc")
	require.ErrorIs(t, err, stakeerr.ErrUnknownConfigKey)
	assert.Equal(t, stakeerr.ExitInput, ExitCode(err))

	var se *stakeerr.StakeError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "networks.eth.rpc", se.Details["path"])
}

func TestConfigSet(t *testing.T) {
	tests := []struct {
		path  string
		value string
		want  string
	}{
		{"default_chain_id", "nibiru-testnet", "6911"},
		{"display.locale", "de-DE", "de-DE"},
		{"display.truncate_length", "20", "20"},
		{"output.default_format", "json", "json"},
		{"output.verbose", "true", "true"},
		{"output.color", "never", "never"},
		{"logging.file", "/tmp/stakeflow.log", "/tmp/stakeflow.log"},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			home := t.TempDir()
			out, err := runIn(t, home, "config", "set", tc.path, tc.value)
			require.NoError(t, err)
			assert.Equal(t, "Set "+tc.path+" = "+tc.value+"\n", out)

			out, err = runIn(t, home, "config", "get", tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.want+"\n", out)
		})
	}
}

func TestConfigSet_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		value   string
		wantErr error
	}{
		{"unknown key", "deployments", "x", stakeerr.ErrUnknownConfigKey},
		{"unsupported chain", "default_chain_id", "1", stakeerr.ErrConfigInvalid},
		{"unparseable chain", "default_chain_id", "ethereum", stakeerr.ErrInvalidInput},
		{"bad locale", "display.locale", "not a locale!", stakeerr.ErrInvalidInput},
		{"negative truncate", "display.truncate_length", "-1", stakeerr.ErrInvalidInput},
		{"bad format", "output.default_format", "xml", stakeerr.ErrInvalidInput},
		{"bad bool", "output.verbose", "maybe", stakeerr.ErrInvalidInput},
		{"bad color", "output.color", "pink", stakeerr.ErrInvalidInput},
		{"bad level", "logging.level", "trace", stakeerr.ErrInvalidInput},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			home := t.TempDir()
			_, err := runIn(t, home, "config", "set", tc.path, tc.value)
			require.ErrorIs(t, err, tc.wantErr)

			_, statErr := os.Stat(config.Path(home))
			assert.True(t, os.IsNotExist(statErr), "rejected values are not saved")
		})
	}
}

func TestConfigSet_NegativeValueIsPositional(t *testing.T) {
	home := t.TempDir()

	_, err := runIn(t, home, "config", "set", "display.truncate_length", "-1")
	require.ErrorIs(t, err, stakeerr.ErrInvalidInput)

	var se *stakeerr.StakeError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "-1", se.Details["value"])

	out, err := runIn(t, home, "config", "set", "logging.file", "-stakeflow.log")
	require.NoError(t, err)
	assert.Equal(t, "Set logging.file = -stakeflow.log\n", out)
}

func TestConfigShow_Text(t *testing.T) {
	out, err := run(t, "config", "show", "-o", "text")
	require.NoError(t, err)

	assert.Contains(t, out, "Default chain: 6900")
	assert.Contains(t, out, "staking_contract: "+config.NibiruStakingContract)
	assert.Contains(t, out, "principal: NIBI, 18 decimals, native, granularity 1000000000000")
	assert.Contains(t, out, "receipt: stNIBI, 18 decimals, "+config.NibiruStNIBIToken)
	assert.Contains(t, out, "level: off")
}

func TestConfigShow_JSON(t *testing.T) {
	out, err := run(t, "config", "show", "-o", "json")
	require.NoError(t, err)

	var got struct {
		DefaultChainID uint64 `json:"default_chain_id"`
		Deployments    []struct {
			ChainID   uint64 `json:"chain_id"`
			Default   bool   `json:"default"`
			Principal struct {
				Symbol         string `json:"symbol"`
				Address        string `json:"address"`
				MinGranularity string `json:"min_granularity"`
			} `json:"principal"`
		} `json:"deployments"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, uint64(6900), got.DefaultChainID)
	require.Len(t, got.Deployments, 2)
	assert.True(t, got.Deployments[0].Default)
	assert.False(t, got.Deployments[1].Default)
	assert.Equal(t, "NIBI", got.Deployments[0].Principal.Symbol)
	assert.Empty(t, got.Deployments[0].Principal.Address)
	assert.Equal(t, "1000000000000", got.Deployments[0].Principal.MinGranularity)
}

func TestDeployments_Text(t *testing.T) {
	out, err := run(t, "deployments", "-o", "text")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "CHAIN"))
	assert.True(t, strings.HasPrefix(lines[2], "6900*"))
	assert.True(t, strings.HasPrefix(lines[3], "6911 "))
	assert.Contains(t, lines[2], "NIBI (18)")
	assert.Contains(t, lines[2], "stNIBI (18)")
	assert.True(t, strings.HasSuffix(lines[3], "true"))
}

func TestDeployments_CustomFile(t *testing.T) {
	home := t.TempDir()
	content := `
version: 1
deployments:
  - chain_id: 31337
    name: local
    staking_contract: "0x1234567890123456789012345678901234567890"
    native_value: false
    principal:
      symbol: TKN
      address: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"
      decimals: 6
    receipt:
      symbol: stTKN
      address: "0x62C054E4D7f8e066596Cd7A55DB0881E529ec00C"
      decimals: 6
`
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(content), 0o600))

	out, err := runIn(t, home, "deployments", "-o", "json")
	require.NoError(t, err)

	var got []deploymentJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, uint64(31337), got[0].ChainID)
	assert.True(t, got[0].Default)
	assert.False(t, got[0].NativeValue)
	assert.Equal(t, 6, got[0].Principal.Decimals)

	// ERC-20 principal stakes attach no value.
	call := runCallIn(t, home, "stake", "1.5")
	assert.Equal(t, "0", call.Value)
	assert.Equal(t, "0x1234567890123456789012345678901234567890", call.To)
	assert.True(t, strings.HasSuffix(call.Data, "16e360"))
}
