package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	Store   StoreConfig   `mapstructure:"store" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// RateLimit is the global request budget per second. 0 disables limiting.
	RateLimit float64 `mapstructure:"rate_limit" validate:"gte=0"`
}

// StorageConfig selects where the record files live.
type StorageConfig struct {
	Backend     string `mapstructure:"backend" validate:"required,oneof=local s3 memory"`
	DataDir     string `mapstructure:"data_dir" validate:"required_if=Backend local"`
	UserFile    string `mapstructure:"user_file" validate:"required"`
	ProductFile string `mapstructure:"product_file" validate:"required,nefield=UserFile"`
	// S3 is only checked when Backend is s3.
	S3 S3Config `mapstructure:"s3" validate:"-"`
}

// S3Config holds settings for an S3-compatible object store.
type S3Config struct {
	Endpoint  string `mapstructure:"endpoint" validate:"required,hostname_port"`
	AccessKey string `mapstructure:"access_key" validate:"required"`
	SecretKey string `mapstructure:"secret_key" validate:"required"`
	Bucket    string `mapstructure:"bucket" validate:"required"`
	Prefix    string `mapstructure:"prefix"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// StoreConfig tunes the record collections.
type StoreConfig struct {
	IDPolicy        string `mapstructure:"id_policy" validate:"required,oneof=length max"`
	SerializeWrites bool   `mapstructure:"serialize_writes"`
}
