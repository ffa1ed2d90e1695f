package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoadPricingConfigDefaultsWhenFileMissing(t *testing.T) {
	holder, err := LoadPricingConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultPricingConfig(), holder.Get())
}

func TestLoadPricingConfigReadsFile(t *testing.T) {
	dir := t.TempDir()
	body := []byte(`pricing:
  dealerSegment: haendler
  quoteTTL: 5m
  rateLimit:
    enabled: false
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pricing.yml"), body, 0o600))

	holder, err := LoadPricingConfig(dir)
	require.NoError(t, err)

	cfg := holder.Get()
	assert.Equal(t, "haendler", cfg.DealerSegment)
	assert.Equal(t, "corporate", cfg.CampaignType)
	assert.Equal(t, 5*time.Minute, cfg.QuoteTTL)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadPricingConfigKeepsDefaultsForOmittedKeys(t *testing.T) {
	dir := t.TempDir()
	body := []byte(`pricing:
  quoteTTL: 5m
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pricing.yml"), body, 0o600))

	holder, err := LoadPricingConfig(dir)
	require.NoError(t, err)

	want := DefaultPricingConfig()
	want.QuoteTTL = 5 * time.Minute
	assert.Equal(t, want, holder.Get())
}

func TestLoadPricingConfigMergesPartialRateLimit(t *testing.T) {
	dir := t.TempDir()
	body := []byte(`pricing:
  rateLimit:
    burst: 50
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pricing.yml"), body, 0o600))

	holder, err := LoadPricingConfig(dir)
	require.NoError(t, err)

	cfg := holder.Get()
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 5.0, cfg.RateLimit.Rate)
	assert.Equal(t, 50, cfg.RateLimit.Burst)
}

// The reload callback re-reads through readPricingConfig, so a changed
// partial file must merge with the defaults the same way.
func TestReadPricingConfigAfterReload(t *testing.T) {
	v := viper.New()
	setPricingDefaults(v)
	v.SetConfigType("yml")

	require.NoError(t, v.ReadConfig(bytes.NewBufferString(`pricing:
  dealerSegment: dealer
`)))
	assert.Equal(t, DefaultPricingConfig(), readPricingConfig(v))

	require.NoError(t, v.ReadConfig(bytes.NewBufferString(`pricing:
  campaignType: partner
`)))
	cfg := readPricingConfig(v)
	assert.Equal(t, "partner", cfg.CampaignType)
	assert.Equal(t, "dealer", cfg.DealerSegment)
	assert.Equal(t, "discount", cfg.CampaignTarget)
	assert.Equal(t, 15*time.Minute, cfg.QuoteTTL)
	require.NoError(t, validatePricingConfig(cfg))
}

func TestLoadPricingConfigRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	body := []byte(`pricing:
  quoteTTL: 0s
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pricing.yml"), body, 0o600))

	_, err := LoadPricingConfig(dir)
	assert.Error(t, err)
}

func TestValidatePricingConfig(t *testing.T) {
	cfg := DefaultPricingConfig()
	cfg.RateLimit.Burst = 0
	assert.Error(t, validatePricingConfig(cfg))

	cfg.RateLimit.Enabled = false
	assert.NoError(t, validatePricingConfig(cfg))

	cfg.DealerSegment = " "
	assert.Error(t, validatePricingConfig(cfg))
}
