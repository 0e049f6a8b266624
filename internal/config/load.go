package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tailscale/hujson"
)

// EnvPrefix is prepended to every environment variable, e.g. CATALOG_SERVER_PORT.
const EnvPrefix = "CATALOG"

// Default values for settings that may be omitted.
const (
	DefaultPort        = 5000
	DefaultLogLevel    = "info"
	DefaultBackend     = "local"
	DefaultDataDir     = "db"
	DefaultUserFile    = "users.csv"
	DefaultProductFile = "products.csv"
	DefaultIDPolicy    = "length"
)

// flagKeys maps command line flags onto configuration keys.
var flagKeys = map[string]string{
	"port":      "server.port",
	"log-level": "server.log_level",
	"data-dir":  "storage.data_dir",
}

// NewFlagSet defines the command line flags understood by Load.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "path to a JSON or JSONC config file (env "+EnvPrefix+"_CONFIG)")
	fs.Int("port", DefaultPort, "HTTP listen port")
	fs.String("log-level", DefaultLogLevel, "log level: debug, info, warn or error")
	fs.String("data-dir", DefaultDataDir, "directory holding the record files (local backend)")
	return fs
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("server.rate_limit", 0)

	v.SetDefault("storage.backend", DefaultBackend)
	v.SetDefault("storage.data_dir", DefaultDataDir)
	v.SetDefault("storage.user_file", DefaultUserFile)
	v.SetDefault("storage.product_file", DefaultProductFile)

	// Environment variables are only consulted for keys viper knows about.
	v.SetDefault("storage.s3.endpoint", "")
	v.SetDefault("storage.s3.access_key", "")
	v.SetDefault("storage.s3.secret_key", "")
	v.SetDefault("storage.s3.bucket", "")
	v.SetDefault("storage.s3.prefix", "")
	v.SetDefault("storage.s3.use_ssl", false)

	v.SetDefault("store.id_policy", DefaultIDPolicy)
	v.SetDefault("store.serialize_writes", true)
}

// Load configuration from defaults, an optional config file, environment
// variables and flags, in increasing order of precedence.
// fs may be nil, in which case only the first three sources apply.
// Returns a populated Config struct or an error if loading/validation fails.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configFile := os.Getenv(EnvPrefix + "_CONFIG")
	if fs != nil {
		if f := fs.Lookup("config"); f != nil && f.Changed {
			configFile = f.Value.String()
		}
		for flagName, key := range flagKeys {
			f := fs.Lookup(flagName)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %q: %w", flagName, err)
			}
		}
	}

	if configFile != "" {
		if err := readConfigFile(v, configFile); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// readConfigFile loads path into v. Comments and trailing commas are allowed.
func readConfigFile(v *viper.Viper, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	standard, err := hujson.Standardize(raw)
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	v.SetConfigType("json")
	if err := v.ReadConfig(bytes.NewReader(standard)); err != nil {
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	return nil
}

// Validate checks cfg against its struct tags. The S3 section is only
// checked when the s3 backend is selected.
func Validate(cfg *Config) error {
	validate := validator.New()

	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if cfg.Storage.Backend == "s3" {
		if err := validate.Struct(cfg.Storage.S3); err != nil {
			return fmt.Errorf("validation failed: s3: %w", err)
		}
	}

	return nil
}

// IsValidationError reports whether err came from Validate.
func IsValidationError(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}
