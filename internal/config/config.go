package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/1set/vestaboard"
)

// Mode values.
const (
	ModeCloud = "cloud"
	ModeLocal = "local"
)

// Config holds CLI configuration.
type Config struct {
	Mode            string `mapstructure:"mode"`
	BaseURL         string `mapstructure:"base_url"`
	CredentialsFile string `mapstructure:"credentials_file"`
	// MinInterval overrides the client's rate limit when positive.
	MinInterval time.Duration `mapstructure:"min_interval"`
	LogLevel    string        `mapstructure:"log_level"`
	Cloud       CloudConfig   `mapstructure:"cloud"`
	Local       LocalConfig   `mapstructure:"local"`
	Format      FormatConfig  `mapstructure:"format"`
}

// CloudConfig holds Read/Write API credentials.
type CloudConfig struct {
	APIKey         string `mapstructure:"api_key"`
	APISecret      string `mapstructure:"api_secret"`
	SubscriptionID string `mapstructure:"subscription_id"`
}

// LocalConfig holds local API settings.
type LocalConfig struct {
	APIKey string `mapstructure:"api_key"`
	IP     string `mapstructure:"ip"`
}

// FormatConfig holds layout preferences.
type FormatConfig struct {
	Align  string `mapstructure:"align"`
	Pad    string `mapstructure:"pad"`
	Strict bool   `mapstructure:"strict"`
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"mode":             "mode",
	"base-url":         "base_url",
	"credentials-file": "credentials_file",
	"min-interval":     "min_interval",
	"log-level":        "log_level",
	"api-key":          "cloud.api_key",
	"api-secret":       "cloud.api_secret",
	"subscription-id":  "cloud.subscription_id",
	"local-key":        "local.api_key",
	"local-ip":         "local.ip",
	"align":            "format.align",
	"pad":              "format.pad",
	"strict":           "format.strict",
}

// Load reads configuration from file, env and flags, in increasing priority.
// Env var overrides use prefix VESTABOARD_ (e.g. VESTABOARD_CLOUD_API_KEY).
// flags may be nil.
func Load(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetDefault("mode", ModeCloud)
	v.SetDefault("base_url", "")
	v.SetDefault("credentials_file", "")
	v.SetDefault("min_interval", time.Duration(0))
	v.SetDefault("log_level", "info")
	v.SetDefault("cloud.api_key", "")
	v.SetDefault("cloud.api_secret", "")
	v.SetDefault("cloud.subscription_id", "")
	v.SetDefault("local.api_key", "")
	v.SetDefault("local.ip", "")
	v.SetDefault("format.align", "left")
	v.SetDefault("format.pad", "")
	v.SetDefault("format.strict", false)

	v.SetConfigType("toml")
	if cfgPath := os.Getenv("VESTABOARD_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "vestaboard"))
		}
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("VESTABOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	if c.Mode != ModeCloud && c.Mode != ModeLocal {
		return Config{}, fmt.Errorf("unknown mode %q (want %s or %s)", c.Mode, ModeCloud, ModeLocal)
	}
	return c, nil
}

// RegisterFlags adds the shared flags to fs. Defaults are left empty so that
// unset flags do not shadow file or env values.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("mode", "", "cloud or local (or set VESTABOARD_MODE)")
	fs.String("base-url", "", "override the API base URL")
	fs.String("credentials-file", "", "credentials TOML file (default: user config dir)")
	fs.Duration("min-interval", 0, "minimum spacing between posts")
	fs.String("log-level", "", "debug, info, warn or error")
	fs.String("api-key", "", "cloud API key (or set VESTABOARD_CLOUD_API_KEY)")
	fs.String("api-secret", "", "cloud API secret (or set VESTABOARD_CLOUD_API_SECRET)")
	fs.String("subscription-id", "", "cloud subscription ID (or set VESTABOARD_CLOUD_SUBSCRIPTION_ID)")
	fs.String("local-key", "", "local API key (or set VESTABOARD_LOCAL_API_KEY)")
	fs.String("local-ip", "", "board IP address for the local API (or set VESTABOARD_LOCAL_IP)")
	fs.String("align", "", "left, center or right")
	fs.String("pad", "", "top, bottom or center; empty centers with a warning")
	fs.Bool("strict", false, "fail on unsupported characters instead of blanking them")
}

// Credentials returns the cloud credentials given in config, if any.
func (c Config) Credentials() vestaboard.Credentials {
	return vestaboard.Credentials{
		APIKey:         c.Cloud.APIKey,
		APISecret:      c.Cloud.APISecret,
		SubscriptionID: c.Cloud.SubscriptionID,
	}
}

// LocalToken returns the local API token given in config, if any.
func (c Config) LocalToken() vestaboard.LocalToken {
	return vestaboard.LocalToken{APIKey: c.Local.APIKey, IP: c.Local.IP}
}

// Layout parses the format section.
func (c Config) Layout() (vestaboard.HorizontalAlignment, vestaboard.VerticalAlignment, vestaboard.Strictness, error) {
	align, err := vestaboard.ParseHorizontalAlignment(c.Format.Align)
	if err != nil {
		return 0, 0, 0, err
	}
	pad, err := vestaboard.ParseVerticalAlignment(c.Format.Pad)
	if err != nil {
		return 0, 0, 0, err
	}
	strict := vestaboard.Lenient
	if c.Format.Strict {
		strict = vestaboard.Strict
	}
	return align, pad, strict, nil
}
