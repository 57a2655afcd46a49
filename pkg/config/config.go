// Package config holds the provisioning configuration for bootstrap.
// Defaults match an Amazon Linux host running Apache; every value can be
// overridden via a YAML file or BOOTSTRAP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides,
// e.g. BOOTSTRAP_SERVICE_NAME=nginx.
const EnvPrefix = "BOOTSTRAP"

// Config represents all settings for a provisioning run.
type Config struct {
	// Package and service configuration
	PackageName string `mapstructure:"package_name"` // OS package to install
	ServiceName string `mapstructure:"service_name"` // systemd unit to manage

	// Web content configuration
	WebRoot   string `mapstructure:"web_root"`   // Directory served on port 80
	IndexFile string `mapstructure:"index_file"` // Page file name inside WebRoot
	Owner     string `mapstructure:"owner"`      // user:group for WebRoot
	FileMode  uint32 `mapstructure:"file_mode"`  // Mode applied to WebRoot (octal)

	// Log and summary outputs
	LogPath     string `mapstructure:"log_path"`     // Provisioning log file
	SummaryPath string `mapstructure:"summary_path"` // Completion summary file

	// Instance metadata service
	IMDSBaseURL string        `mapstructure:"imds_base_url"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`
	IMDSTimeout time.Duration `mapstructure:"imds_timeout"`

	// Post-deployment verification
	VerifyURL     string        `mapstructure:"verify_url"`
	VerifyDelay   time.Duration `mapstructure:"verify_delay"`
	MinimalMark   string        `mapstructure:"minimal_marker"`
	FullMark      string        `mapstructure:"full_marker"`
	VerifyTimeout time.Duration `mapstructure:"verify_timeout"`
}

// IndexPath returns the full path of the generated page.
func (c *Config) IndexPath() string {
	return strings.TrimRight(c.WebRoot, "/") + "/" + c.IndexFile
}

// setDefaults registers every default value on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("package_name", "httpd")
	v.SetDefault("service_name", "httpd")
	v.SetDefault("web_root", "/var/www/html")
	v.SetDefault("index_file", "index.html")
	v.SetDefault("owner", "apache:apache")
	v.SetDefault("file_mode", 0o755)
	v.SetDefault("log_path", "/var/log/user-data.log")
	v.SetDefault("summary_path", "/var/log/provision-summary.txt")
	v.SetDefault("imds_base_url", "http://169.254.169.254")
	v.SetDefault("token_ttl", 21600*time.Second)
	v.SetDefault("imds_timeout", 5*time.Second)
	v.SetDefault("verify_url", "http://localhost:80")
	v.SetDefault("verify_delay", 10*time.Second)
	v.SetDefault("minimal_marker", "Hello World")
	v.SetDefault("full_marker", "Hello AWS")
	v.SetDefault("verify_timeout", 5*time.Second)
}

// Load reads configuration from the optional file at path, applying
// defaults and environment overrides. An empty path loads defaults and
// environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns the built-in configuration without touching the
// filesystem or environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	// Unmarshal of pure defaults cannot fail
	_ = v.Unmarshal(cfg)
	return cfg
}

// Validate checks the configuration for values that would make a
// provisioning run nonsensical.
func (c *Config) Validate() error {
	var errs []error

	if c.PackageName == "" {
		errs = append(errs, errors.New("package_name must not be empty"))
	}
	if c.ServiceName == "" {
		errs = append(errs, errors.New("service_name must not be empty"))
	}
	if c.WebRoot == "" {
		errs = append(errs, errors.New("web_root must not be empty"))
	}
	if c.IndexFile == "" || strings.Contains(c.IndexFile, "/") {
		errs = append(errs, errors.New("index_file must be a bare file name"))
	}
	if c.Owner != "" && len(strings.Split(c.Owner, ":")) != 2 {
		errs = append(errs, errors.New("owner must be in user:group form"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("token_ttl must be positive"))
	}
	if c.IMDSTimeout <= 0 {
		errs = append(errs, errors.New("imds_timeout must be positive"))
	}
	if c.VerifyDelay < 0 {
		errs = append(errs, errors.New("verify_delay must not be negative"))
	}

	return errors.Join(errs...)
}
