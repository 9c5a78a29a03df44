package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence.
func LoadConfig(configPath string) (*AttestAPIConfig, error) {
	v := viper.New()

	// Defaults matching DefaultAttestAPIConfig
	v.SetDefault("attest_api.host", "0.0.0.0")
	v.SetDefault("attest_api.port", 50061)
	v.SetDefault("attest_api.request_timeout", "30s")
	v.SetDefault("attest_api.max_payload_bytes", 4*1024*1024)
	v.SetDefault("attest_api.archive_url", "")

	// Bind environment variables with TN_ prefix
	v.SetEnvPrefix("TN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Secrets must be environment-only per 12-factor principles
	if v.IsSet("hmac_secret") || v.IsSet("attest_api.hmac_secret") {
		return nil, fmt.Errorf("HMAC secrets not allowed in config files (use TN_HMAC_SECRET environment variable)")
	}

	cfg := &AttestAPIConfig{
		Host:            v.GetString("attest_api.host"),
		Port:            v.GetInt("attest_api.port"),
		RequestTimeout:  v.GetDuration("attest_api.request_timeout"),
		MaxPayloadBytes: v.GetInt("attest_api.max_payload_bytes"),
		ArchiveURL:      v.GetString("attest_api.archive_url"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validateConfig checks port range and positive limits.
func validateConfig(cfg *AttestAPIConfig) error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", cfg.Port)
	}
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %v", cfg.RequestTimeout)
	}
	if cfg.MaxPayloadBytes <= 0 {
		return fmt.Errorf("max_payload_bytes must be positive, got %d", cfg.MaxPayloadBytes)
	}
	return nil
}
