package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the immutable process configuration, built once in main and
// passed explicitly into the layers that need it.
type Config struct {
	Server struct {
		Port string
	}
	Database struct {
		Path string
	}
	Log struct {
		Level string
	}
	Token struct {
		Secret    string
		ExpiresIn int // minutes
	}
	Auth struct {
		DefaultRole string
	}
}

const (
	defaultPort        = "8080"
	defaultDBPath      = "accounts.db"
	defaultLogLevel    = "info"
	defaultExpiresIn   = 30 // minutes
	defaultRole        = "user"
	defaultTokenSecret = "" // must be provided via env or config file
)

// Load reads configuration from environment variables (prefix ACCOUNTS_) and
// an optional configs/config.yml, applying defaults for everything but the
// token secret.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ACCOUNTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", defaultPort)
	v.SetDefault("database.path", defaultDBPath)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("token.secret", defaultTokenSecret)
	v.SetDefault("token.expiresin", defaultExpiresIn)
	v.SetDefault("auth.defaultrole", defaultRole)

	v.SetConfigName("config")
	v.AddConfigPath("configs")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // config file is optional

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Token.Secret) == "" {
		return errors.New("token.secret must be set (env ACCOUNTS_TOKEN_SECRET or config file)")
	}
	if c.Token.ExpiresIn <= 0 {
		return fmt.Errorf("token.expiresin must be positive, got %d", c.Token.ExpiresIn)
	}
	if strings.TrimSpace(c.Auth.DefaultRole) == "" {
		return errors.New("auth.defaultrole must not be empty")
	}
	return nil
}
