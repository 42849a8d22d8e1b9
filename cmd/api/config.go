package main

import (
	"fmt"
	"time"

	"github.com/VighnaRajan/Adyen-Dropin-Applepay/internal/adyen"
	"github.com/VighnaRajan/Adyen-Dropin-Applepay/internal/domainverify"
	"github.com/VighnaRajan/Adyen-Dropin-Applepay/internal/env"
	"github.com/VighnaRajan/Adyen-Dropin-Applepay/internal/ratelimiter"
	"github.com/VighnaRajan/Adyen-Dropin-Applepay/internal/relay"
)

// LoadRateLimiterConfig retrieves rate limiter settings from environment variables
func LoadRateLimiterConfig() ratelimiter.Config {
	return ratelimiter.Config{
		RequestsPerTimeFrame: env.GetInt("RATELIMITER_REQUESTS_COUNT", 200),
		TimeFrame:            5 * time.Second,
		Enabled:              env.GetBool("RATE_LIMITER_ENABLED", false),
	}
}

// loadConfig reads the environment once. Missing credentials are allowed here; the relay
// reports them per request.
func loadConfig() config {
	port := env.GetString("PORT", "3000")

	relayCfg := relay.DefaultConfig()
	relayCfg.MerchantAccount = env.GetString("ADYEN_MERCHANT_ACCOUNT", "")
	relayCfg.AppleMerchantID = env.GetString("APPLE_MERCHANT_ID", "")
	relayCfg.DomainName = env.GetString("DOMAIN_NAME", "")
	relayCfg.DisplayName = env.GetString("DEFAULT_DISPLAY_NAME", relay.DefaultDisplayName)
	relayCfg.DefaultAmount = adyen.Amount{
		Currency: env.GetString("DEFAULT_CURRENCY", relay.DefaultCurrency),
		Value:    env.GetInt64("DEFAULT_AMOUNT_VALUE", relay.DefaultValue),
	}
	relayCfg.ReferencePrefix = env.GetString("REFERENCE_PREFIX", relay.DefaultRefPrefix)
	relayCfg.ReferenceSalt = env.GetString("REFERENCE_SALT", relay.DefaultRefSalt)

	return config{
		addr:      env.GetString("ADDR", ":"+port),
		env:       env.GetString("ENV", "development"),
		apiURL:    env.GetString("EXTERNAL_URL", "localhost:"+port),
		logLevel:  env.GetString("LOG_LEVEL", "info"),
		publicDir: env.GetString("PUBLIC_DIR", "public"),
		adyen: adyen.Config{
			APIKey:  env.GetString("ADYEN_API_KEY", ""),
			BaseURL: env.GetString("ADYEN_CHECKOUT_BASE", adyen.DefaultBaseURL),
			Timeout: env.GetDuration("ADYEN_TIMEOUT", adyen.DefaultTimeout),
		},
		relay: relayCfg,
		domainVerify: domainverify.Config{
			FilePath:    env.GetString("APPLE_DOMAIN_ASSOCIATION_FILE", domainverify.DefaultFilePath),
			ContentType: env.GetString("APPLE_DOMAIN_ASSOCIATION_CONTENT_TYPE", domainverify.DefaultContentType),
			Audit:       env.GetBool("DOMAIN_ASSOCIATION_AUDIT", true),
		},
		auth: authConfig{
			basic: basicConfig{
				user: env.GetString("AUTH_BASIC_USER", ""),
				pass: env.GetString("AUTH_BASIC_PASS", ""),
			},
		},
		rateLimiter: LoadRateLimiterConfig(),
	}
}

// validateConfig rejects settings the process cannot start with.
func validateConfig(cfg config) error {
	checks := []struct {
		name  string
		value any
		tag   string
	}{
		{"ADYEN_CHECKOUT_BASE", cfg.adyen.BaseURL, "required,url"},
		{"ADYEN_TIMEOUT", int64(cfg.adyen.Timeout), "gt=0"},
		{"DEFAULT_CURRENCY", cfg.relay.DefaultAmount.Currency, "len=3,alpha,uppercase"},
		{"DEFAULT_AMOUNT_VALUE", cfg.relay.DefaultAmount.Value, "gte=0"},
		{"LOG_LEVEL", cfg.logLevel, "oneof=debug info warn error"},
		{"RATELIMITER_REQUESTS_COUNT", cfg.rateLimiter.RequestsPerTimeFrame, "gt=0"},
	}

	for _, c := range checks {
		if err := Validate.Var(c.value, c.tag); err != nil {
			return fmt.Errorf("invalid %s: %w", c.name, err)
		}
	}
	return nil
}
