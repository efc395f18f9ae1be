package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	// Required fields
	JWTSecretKey string `mapstructure:"jwt_secret_key"`

	// Database settings
	DBDriver string `mapstructure:"db_driver"` // "sqlite" or "postgres"
	DBDSN    string `mapstructure:"db_dsn"`

	// Optional API settings
	APIHost string `mapstructure:"api_host"`
	APIPort int    `mapstructure:"api_port"`

	// Optional SSL settings
	SSLCert string `mapstructure:"ssl_cert"`
	SSLKey  string `mapstructure:"ssl_key"`

	// Optional CORS settings
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Optional logging settings
	LogFile  string `mapstructure:"log_file"`
	LogLevel string `mapstructure:"log_level"`

	// Optional JWT settings
	JWTAlgorithm string `mapstructure:"jwt_algorithm"`

	// Auth code storage: "sql" keeps codes in the database, "redis" in Redis
	AuthCodeStore string `mapstructure:"auth_code_store"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`

	ConfigPath string
}

const (
	EnvPrefix            = "RESULTSAPI"
	DefaultConfigPath    = "/etc/resultsapi/config.yml"
	DefaultDBDriver      = "sqlite"
	DefaultDBPath        = "/var/lib/resultsapi/db.sqlite3"
	DefaultAPIHost       = "0.0.0.0"
	DefaultAPIPort       = 8336
	DefaultLogLevel      = "info"
	DefaultJWTAlgorithm  = "HS256"
	DefaultAuthCodeStore = "sql"
	DefaultRedisAddr     = "localhost:6379"
)

// Load reads the YAML file at configPath (the default path may be absent),
// after loading a .env file from the working directory if there is one.
// RESULTSAPI_<KEY> environment variables override file values.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	explicit := configPath != ""
	if !explicit {
		configPath = DefaultConfigPath
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Every key gets a default so environment-only values are unmarshalled too
	v.SetDefault("jwt_secret_key", "")
	v.SetDefault("db_driver", DefaultDBDriver)
	v.SetDefault("db_dsn", "")
	v.SetDefault("api_host", DefaultAPIHost)
	v.SetDefault("api_port", DefaultAPIPort)
	v.SetDefault("ssl_cert", "")
	v.SetDefault("ssl_key", "")
	v.SetDefault("cors_origins", []string{})
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("jwt_algorithm", DefaultJWTAlgorithm)
	v.SetDefault("auth_code_store", DefaultAuthCodeStore)
	v.SetDefault("redis_addr", DefaultRedisAddr)
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)

	// Allow environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.ConfigPath = configPath
	if cfg.DBDSN == "" && cfg.DBDriver == DefaultDBDriver {
		cfg.DBDSN = DefaultDBPath
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecretKey == "" {
		return fmt.Errorf("jwt_secret_key is required")
	}

	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("db_driver must be 'sqlite' or 'postgres'")
	}

	if c.DBDSN == "" {
		return fmt.Errorf("db_dsn is required for db_driver %s", c.DBDriver)
	}

	switch c.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("jwt_algorithm must be one of HS256, HS384, HS512")
	}

	switch c.AuthCodeStore {
	case "sql":
	case "redis":
		if c.RedisAddr == "" {
			return fmt.Errorf("redis_addr is required when auth_code_store is redis")
		}
	default:
		return fmt.Errorf("auth_code_store must be 'sql' or 'redis'")
	}

	if c.APIPort <= 0 || c.APIPort > 65535 {
		return fmt.Errorf("api_port out of range: %d", c.APIPort)
	}

	// Validate SSL config if provided
	if c.SSLCert != "" || c.SSLKey != "" {
		if c.SSLCert == "" || c.SSLKey == "" {
			return fmt.Errorf("both ssl_cert and ssl_key must be provided")
		}
		if _, err := os.Stat(c.SSLCert); os.IsNotExist(err) {
			return fmt.Errorf("ssl_cert file does not exist: %s", c.SSLCert)
		}
		if _, err := os.Stat(c.SSLKey); os.IsNotExist(err) {
			return fmt.Errorf("ssl_key file does not exist: %s", c.SSLKey)
		}
	}

	return nil
}

func (c *Config) IsDevMode() bool {
	return os.Getenv(EnvPrefix+"_DEV_MODE") == "1"
}
