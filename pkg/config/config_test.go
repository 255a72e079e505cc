package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/betbot/gobet-signer/clob/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0x4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"

func envFrom(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func baseEnv() map[string]string {
	return map[string]string{
		"CLOB_HOST":         "https://clob.polymarket.com",
		"CHAIN_ID":          "137",
		"PRIVATE_KEY":       testKey,
		"SIGNER_AUTH_TOKEN": "secret",
	}
}

func TestFromSources_Defaults(t *testing.T) {
	c, err := FromSources(nil, envFrom(baseEnv()))
	require.NoError(t, err)

	assert.Equal(t, ":8080", c.ListenAddr)
	assert.Equal(t, types.ChainPolygon, c.ChainID)
	assert.Equal(t, types.SignatureTypeBrowser, c.SignatureType)
	assert.Equal(t, types.TickSize001, c.TickSize)
	assert.Equal(t, 30*time.Second, c.Relay.Timeout)
	assert.False(t, c.Relay.Configured())
	assert.False(t, c.NegRisk)
	assert.Equal(t, "info", c.LogLevel)
}

func TestFromSources_RelayNeedsBoth(t *testing.T) {
	env := baseEnv()
	env["RELAY_URL"] = "https://relay.example/submit"
	c, err := FromSources(nil, envFrom(env))
	require.NoError(t, err)
	assert.False(t, c.Relay.Configured())

	env["RELAY_AUTH_TOKEN"] = "relay-token"
	c, err = FromSources(nil, envFrom(env))
	require.NoError(t, err)
	assert.True(t, c.Relay.Configured())
}

func TestFromSources_Invalid(t *testing.T) {
	tests := []struct {
		name string
		edit func(map[string]string)
		want string
	}{
		{"missing host", func(m map[string]string) { delete(m, "CLOB_HOST") }, "CLOB_HOST"},
		{"missing chain", func(m map[string]string) { delete(m, "CHAIN_ID") }, "CHAIN_ID"},
		{"non-numeric chain", func(m map[string]string) { m["CHAIN_ID"] = "polygon" }, "CHAIN_ID"},
		{"unknown chain", func(m map[string]string) { m["CHAIN_ID"] = "1" }, "1"},
		{"missing key", func(m map[string]string) { delete(m, "PRIVATE_KEY") }, "PRIVATE_KEY"},
		{"short key", func(m map[string]string) { m["PRIVATE_KEY"] = "0x1234" }, "PRIVATE_KEY"},
		{"missing auth token", func(m map[string]string) { delete(m, "SIGNER_AUTH_TOKEN") }, "SIGNER_AUTH_TOKEN"},
		{"bad signature type", func(m map[string]string) { m["SIGNATURE_TYPE"] = "5" }, "SIGNATURE_TYPE"},
		{"proxy without funder", func(m map[string]string) { m["SIGNATURE_TYPE"] = "1" }, "FUNDER_ADDRESS"},
		{"bad funder", func(m map[string]string) { m["FUNDER_ADDRESS"] = "not-an-address" }, "FUNDER_ADDRESS"},
		{"bad tick", func(m map[string]string) { m["TICK_SIZE"] = "0.5" }, "TICK_SIZE"},
		{"bad neg risk", func(m map[string]string) { m["NEG_RISK"] = "maybe" }, "NEG_RISK"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := baseEnv()
			tt.edit(env)
			_, err := FromSources(nil, envFrom(env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.NotContains(t, err.Error(), strings.TrimPrefix(testKey, "0x"))
		})
	}
}

func TestLoad_FileWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen_addr: ":9090"
clob_host: "https://file.example"
chain_id: 80002
private_key: "`+testKey+`"
auth_token: "file-secret"
relay_url: "https://relay.example"
relay_auth_token: "relay-token"
relay_timeout_seconds: 5
signature_type: 2
funder_address: "0x0000000000000000000000000000000000000abc"
neg_risk: true
tick_size: "0.001"
`), 0o600))

	cf, err := loadConfigFile(path)
	require.NoError(t, err)

	c, err := FromSources(cf, envFrom(map[string]string{"CLOB_HOST": "https://env.example"}))
	require.NoError(t, err)

	assert.Equal(t, "https://env.example", c.ClobHost)
	assert.Equal(t, ":9090", c.ListenAddr)
	assert.Equal(t, types.ChainAmoy, c.ChainID)
	assert.Equal(t, "file-secret", c.AuthToken)
	assert.True(t, c.Relay.Configured())
	assert.Equal(t, 5*time.Second, c.Relay.Timeout)
	assert.Equal(t, types.SignatureTypeGnosisSafe, c.SignatureType)
	assert.True(t, c.NegRisk)
	assert.Equal(t, types.TickSize0001, c.TickSize)
}

func TestLoadConfigFile_UnsupportedExt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signer.toml")
	require.NoError(t, os.WriteFile(path, []byte("x=1"), 0o600))
	_, err := loadConfigFile(path)
	assert.Error(t, err)
}

func TestConfigString_Redacted(t *testing.T) {
	env := baseEnv()
	env["RELAY_URL"] = "https://relay.example"
	env["RELAY_AUTH_TOKEN"] = "relay-token"
	c, err := FromSources(nil, envFrom(env))
	require.NoError(t, err)

	s := c.String()
	assert.NotContains(t, s, strings.TrimPrefix(testKey, "0x"))
	assert.NotContains(t, s, "relay-token")
	assert.NotContains(t, s, "secret")
}
