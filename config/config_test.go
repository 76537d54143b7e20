package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults_FillsMissingSections(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	require.NotNil(t, cfg.Storage)
	assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
}

func TestTokenTTL_SingleValueForAllFlows(t *testing.T) {
	var nilCfg *Config
	assert.Equal(t, time.Hour, nilCfg.TokenTTL())

	cfg := &Config{Auth: &AuthConfig{TokenTTL: 2 * time.Hour}}
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL())

	cfg.Auth.TokenTTL = -time.Second
	assert.Equal(t, time.Hour, cfg.TokenTTL())
}

func TestBcryptCost(t *testing.T) {
	assert.Equal(t, 0, (&Config{}).BcryptCost())
	assert.Equal(t, 12, (&Config{Auth: &AuthConfig{BcryptCost: 12}}).BcryptCost())
}

func TestLoadWithEnv_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	yamlBody := []byte(`
env:
  env: test
secretKey:
  access: from-yaml
auth:
  bcryptCost: 4
  tokenTTL: 30m
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.yaml"), yamlBody, 0o600))

	t.Chdir(dir)
	t.Setenv("SECRETKEY_ACCESS", "from-env")
	t.Setenv("AUTH_TOKENTTL", "45m")

	cfg, err := LoadWithEnv[Config]("settings")
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Env.Env)
	assert.Equal(t, "from-env", cfg.SecretKey.Access)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
	assert.Equal(t, 45*time.Minute, cfg.Auth.TokenTTL)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("does-not-exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file does-not-exist.yaml not found")
}
