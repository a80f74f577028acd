package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Reference rate providers
const (
	RateProviderRiksbank = "riksbank"
	RateProviderCBR      = "cbr"
)

var (
	// currencyRateProviders maps a currency to the central bank that sets its policy rate
	currencyRateProviders = map[string]string{
		"SEK": RateProviderRiksbank,
		"RUB": RateProviderCBR,
	}
	rateProviderURLs = map[string]string{
		RateProviderRiksbank: "https://api.riksbank.se/swea/v1/Observations/Latest/SECBREPOEFF",
		RateProviderCBR:      "https://www.cbr.ru/DailyInfoWebServ/DailyInfo.asmx",
	}
)

// Config holds application configuration
type Config struct {
	Port          string
	LogLevel      string
	StorePath     string
	ForecastYears int
	Currency      string

	ShareSecret string
	ShareTTL    time.Duration

	RateProvider    string
	RateURL         string
	RateMarginPct   float64
	RateRefreshSpec string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
		StorePath:     getEnv("STORE_PATH", "projects.json"),
		ForecastYears: getEnvAsInt("FORECAST_YEARS", 10),
		Currency:      getEnv("CURRENCY", "SEK"),

		ShareSecret: getEnv("SHARE_SECRET", "f4b1c2d3e4a5b6c7d8e9f0a1b2c3d4e5"),
		ShareTTL:    time.Duration(getEnvAsInt("SHARE_TTL_HOURS", 168)) * time.Hour,

		RateMarginPct:   getEnvAsFloat64("RATE_MARGIN_PCT", 1.5),
		RateRefreshSpec: getEnv("RATE_REFRESH_SPEC", "0 0 6 * * *"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SenderEmail:  getEnv("SENDER_EMAIL", "rapport@localhost"),
	}

	cfg.Currency = strings.ToUpper(cfg.Currency)
	// The suggested loan rate follows the central bank of the configured currency
	cfg.RateProvider = strings.ToLower(getEnv("RATE_PROVIDER", ""))
	if cfg.RateProvider == "" {
		cfg.RateProvider = currencyRateProviders[cfg.Currency]
	}
	defaultURL, ok := rateProviderURLs[cfg.RateProvider]
	if !ok {
		if cfg.RateProvider == "" {
			return nil, fmt.Errorf("no reference rate provider known for currency %s, set RATE_PROVIDER", cfg.Currency)
		}
		return nil, fmt.Errorf("unknown RATE_PROVIDER %q", cfg.RateProvider)
	}
	if cfg.RateURL = getEnv("RATE_URL", ""); cfg.RateURL == "" {
		cfg.RateURL = defaultURL
	}

	if cfg.StorePath == "" {
		return nil, fmt.Errorf("STORE_PATH is required")
	}
	if cfg.ShareSecret == "" {
		return nil, fmt.Errorf("SHARE_SECRET is required")
	}
	if cfg.ForecastYears < 1 {
		return nil, fmt.Errorf("FORECAST_YEARS must be at least 1, got %d", cfg.ForecastYears)
	}
	if cfg.ShareTTL <= 0 {
		return nil, fmt.Errorf("SHARE_TTL_HOURS must be positive")
	}

	return cfg, nil
}

// EmailEnabled reports whether reports can be sent by e-mail
func (c *Config) EmailEnabled() bool {
	return c.SMTPHost != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
