package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// PricingConfig holds the waterfall tunables that operators may change at runtime.
type PricingConfig struct {
	DealerSegment  string          `mapstructure:"dealerSegment"`
	CampaignType   string          `mapstructure:"campaignType"`
	CampaignTarget string          `mapstructure:"campaignTarget"`
	QuoteTTL       time.Duration   `mapstructure:"quoteTTL"`
	RateLimit      RateLimitConfig `mapstructure:"rateLimit"`
}

type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Rate    float64 `mapstructure:"rate"`
	Burst   int     `mapstructure:"burst"`
}

func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		DealerSegment:  "dealer",
		CampaignType:   "corporate",
		CampaignTarget: "discount",
		QuoteTTL:       15 * time.Minute,
		RateLimit: RateLimitConfig{
			Enabled: true,
			Rate:    5,
			Burst:   20,
		},
	}
}

type PricingConfigHolder struct {
	current atomic.Value // holds PricingConfig
}

// NewPricingConfigHolder loads pricing.yml from the standard locations.
func NewPricingConfigHolder() (*PricingConfigHolder, error) {
	return LoadPricingConfig(
		"/var/lib/classifieds/config", // Volume-mounted config
		"/etc/classifieds",            // System config
		".",                           // Current directory (dev mode)
	)
}

// LoadPricingConfig reads pricing.yml from the first matching path and watches it for changes.
func LoadPricingConfig(paths ...string) (*PricingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("pricing")
	v.SetConfigType("yml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("CLASSIFIEDS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setPricingDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := readPricingConfig(v)
	if err := validatePricingConfig(cfg); err != nil {
		return nil, err
	}

	holder := &PricingConfigHolder{}
	holder.current.Store(cfg)

	if v.ConfigFileUsed() == "" {
		return holder, nil
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated := readPricingConfig(v)
		if err := validatePricingConfig(updated); err != nil {
			log.Printf("[pricing-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[pricing-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func setPricingDefaults(v *viper.Viper) {
	defaults := DefaultPricingConfig()
	v.SetDefault("pricing.dealerSegment", defaults.DealerSegment)
	v.SetDefault("pricing.campaignType", defaults.CampaignType)
	v.SetDefault("pricing.campaignTarget", defaults.CampaignTarget)
	v.SetDefault("pricing.quoteTTL", defaults.QuoteTTL)
	v.SetDefault("pricing.rateLimit.enabled", defaults.RateLimit.Enabled)
	v.SetDefault("pricing.rateLimit.rate", defaults.RateLimit.Rate)
	v.SetDefault("pricing.rateLimit.burst", defaults.RateLimit.Burst)
}

// readPricingConfig resolves every key on its own so a file that sets only
// some keys keeps the defaults for the rest. UnmarshalKey("pricing") would
// replace the whole default map with the file's map.
func readPricingConfig(v *viper.Viper) PricingConfig {
	return PricingConfig{
		DealerSegment:  strings.TrimSpace(v.GetString("pricing.dealerSegment")),
		CampaignType:   strings.TrimSpace(v.GetString("pricing.campaignType")),
		CampaignTarget: strings.TrimSpace(v.GetString("pricing.campaignTarget")),
		QuoteTTL:       v.GetDuration("pricing.quoteTTL"),
		RateLimit: RateLimitConfig{
			Enabled: v.GetBool("pricing.rateLimit.enabled"),
			Rate:    v.GetFloat64("pricing.rateLimit.rate"),
			Burst:   v.GetInt("pricing.rateLimit.burst"),
		},
	}
}

// NewStaticPricingConfig returns a holder that never reloads.
func NewStaticPricingConfig(cfg PricingConfig) *PricingConfigHolder {
	holder := &PricingConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *PricingConfigHolder) Get() PricingConfig {
	return h.current.Load().(PricingConfig)
}

func validatePricingConfig(cfg PricingConfig) error {
	if strings.TrimSpace(cfg.DealerSegment) == "" {
		return errors.New("pricing.dealerSegment cannot be empty")
	}
	if strings.TrimSpace(cfg.CampaignType) == "" {
		return errors.New("pricing.campaignType cannot be empty")
	}
	if strings.TrimSpace(cfg.CampaignTarget) == "" {
		return errors.New("pricing.campaignTarget cannot be empty")
	}
	if cfg.QuoteTTL <= 0 {
		return errors.New("pricing.quoteTTL must be positive")
	}
	if cfg.RateLimit.Enabled && (cfg.RateLimit.Rate <= 0 || cfg.RateLimit.Burst <= 0) {
		return errors.New("pricing.rateLimit rate and burst must be positive")
	}
	return nil
}
