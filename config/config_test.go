package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
env:
  serviceName: credential-test
  log:
    level: debug
http:
  port: 9090
  timeouts:
    readTimeout: 3s
store:
  driver: memory
auth:
  scrypt:
    n: 2048
    r: 8
    p: 1
    keyLen: 32
`

func writeTestConfig(t *testing.T, name, content string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(content), 0o600))

	return dir
}

func TestLoadWithEnv_ReadsYAML(t *testing.T) {
	dir := writeTestConfig(t, "config", testConfigYAML)
	t.Chdir(dir)

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, "credential-test", cfg.Env.ServiceName)
	assert.Equal(t, "debug", cfg.Env.Log.Level)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "3s", cfg.HTTP.Timeouts.ReadTimeout.String())
	require.NotNil(t, cfg.Auth)
	require.NotNil(t, cfg.Auth.Scrypt)
	assert.Equal(t, 2048, cfg.Auth.Scrypt.N)
}

func TestLoadWithEnv_EnvOverridesYAML(t *testing.T) {
	dir := writeTestConfig(t, "config", testConfigYAML)
	t.Chdir(dir)
	t.Setenv("AUTH_SCRYPT_N", "4096")
	t.Setenv("AUTH_SCRYPT_KEYLEN", "64")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, 4096, cfg.Auth.Scrypt.N)
	assert.Equal(t, 64, cfg.Auth.Scrypt.KeyLen)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("absent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.yaml not found")
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, defaultHTTPPort, cfg.HTTP.Port)
	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, &ScryptConfig{
		N:      DefaultScryptN,
		R:      DefaultScryptR,
		P:      DefaultScryptP,
		KeyLen: DefaultScryptKeyLen,
	}, cfg.Auth.Scrypt)
}

func TestApplyDefaults_KeepsConfiguredValues(t *testing.T) {
	cfg := &Config{
		Store: &StoreConfig{Driver: StoreDriverPostgres},
		Auth:  &AuthConfig{Scrypt: &ScryptConfig{N: 1024}},
	}
	applyDefaults(cfg)

	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 1024, cfg.Auth.Scrypt.N)
	assert.Equal(t, DefaultScryptR, cfg.Auth.Scrypt.R)
}
