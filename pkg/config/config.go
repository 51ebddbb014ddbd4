// Package config loads the arbor configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/arbor/config.toml unless a
// path is given explicitly. Every field is optional; missing fields keep
// the values from [Default]. Command-line flags override the file.
//
//	[cache]
//	redis_url = "redis://localhost:6379/0"
//
//	[proof]
//	rounds = 32
//
//	[render]
//	format = "png"
package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/arbor/pkg/errors"
)

// FileName is the name of the configuration file inside the config dir.
const FileName = "config.toml"

// Config is the full configuration.
type Config struct {
	Cache   CacheConfig   `toml:"cache"`
	Log     LogConfig     `toml:"log"`
	Proof   ProofConfig   `toml:"proof"`
	Render  RenderConfig  `toml:"render"`
	Metrics MetricsConfig `toml:"metrics"`
}

// CacheConfig selects the result cache backend.
type CacheConfig struct {
	Disabled bool   `toml:"disabled"`
	Dir      string `toml:"dir" validate:"omitempty,max=4096"`
	RedisURL string `toml:"redis_url" validate:"omitempty,redisurl"`
	Prefix   string `toml:"prefix" validate:"omitempty,max=64"`

	// Scope namespaces keys so several projects can share one backend.
	Scope string `toml:"scope" validate:"omitempty,max=64"`
}

// LogConfig sets the default log level.
type LogConfig struct {
	Level string `toml:"level" validate:"oneof=debug info warn error"`
}

// ProofConfig holds proof defaults.
type ProofConfig struct {
	Rounds int    `toml:"rounds" validate:"gte=1,lte=256"`
	Seed   uint64 `toml:"seed"`
}

// RenderConfig holds render defaults.
type RenderConfig struct {
	Format      string `toml:"format" validate:"oneof=dot svg pdf png"`
	MarkCenters bool   `toml:"mark_centers"`
}

// MetricsConfig controls the Prometheus textfile.
type MetricsConfig struct {
	// File is written after every command when set.
	File string `toml:"file" validate:"omitempty,max=4096"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("redisurl", validateRedisURL)
}

// validateRedisURL accepts the schemes understood by redis.ParseURL.
func validateRedisURL(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "redis", "rediss":
		return u.Host != ""
	case "unix":
		return u.Path != ""
	default:
		return false
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "info"},
		Proof:  ProofConfig{Rounds: 16},
		Render: RenderConfig{Format: "svg"},
	}
}

// DefaultPath returns the config file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return filepath.Join(dir, "arbor", FileName), nil
}

// Load reads the config file at path on top of [Default]. An empty path
// means [DefaultPath], which may be absent; an explicit path must exist.
// Unknown keys are rejected so that typos do not go unnoticed.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	switch {
	case err == nil:
	case !explicit && stderrors.Is(err, fs.ErrNotExist):
		return cfg, nil
	case stderrors.Is(err, fs.ErrNotExist):
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
	default:
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid config")
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fieldMessage(fe)
	}
	return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid config: %s", strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	name := strings.ToLower(strings.TrimPrefix(fe.Namespace(), "Config."))
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", name, fe.Param(), fe.Value())
	case "gte", "lte":
		return fmt.Sprintf("%s must be %s %s, got %v", name, fe.Tag(), fe.Param(), fe.Value())
	case "redisurl":
		return fmt.Sprintf("%s must be a redis://, rediss:// or unix:// URL", name)
	default:
		return fmt.Sprintf("%s failed %s", name, fe.Tag())
	}
}

// Write encodes c as TOML to path, creating parent directories.
func (c *Config) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
