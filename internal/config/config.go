package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	UI       UIConfig
	Voice    VoiceConfig
	Speech   SpeechConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
	Timezone       string
}

// VoiceConfig holds intent extraction settings.
type VoiceConfig struct {
	DefaultLanguage string `mapstructure:"default_language"`
}

// SpeechConfig holds speech recognition provider settings.
type SpeechConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	SampleRateHertz int    `mapstructure:"sample_rate_hertz"`
}

// Load reads configuration from file and env. Env var overrides use prefix MUNIM_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "munim", "munim.db"))
	v.SetDefault("ui.currency_symbol", "₹")
	v.SetDefault("ui.timezone", "Asia/Kolkata")
	v.SetDefault("voice.default_language", "en")
	v.SetDefault("speech.credentials_file", "")
	v.SetDefault("speech.sample_rate_hertz", 16000)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("MUNIM_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "munim"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("MUNIM")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
