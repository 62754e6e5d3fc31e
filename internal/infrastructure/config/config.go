package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Env       string `env:"CONTACTDESK_ENV,       default=development"`
	LogLevel  string `env:"CONTACTDESK_LOG_LEVEL, default=info"`
	LogPretty bool   `env:"CONTACTDESK_LOG_PRETTY, default=true"`
	DBPath    string `env:"CONTACTDESK_DB_PATH,   default=contactdesk.db"`

	Bootstrap BootstrapConfig
}

// BootstrapConfig seeds the initial Manager account when the users table has
// no manager yet. Password empty means no bootstrap is attempted.
type BootstrapConfig struct {
	Username  string `env:"CONTACTDESK_ADMIN_USERNAME, default=admin"`
	Password  string `env:"CONTACTDESK_ADMIN_PASSWORD"`
	FirstName string `env:"CONTACTDESK_ADMIN_NAME,     default=System"`
	LastName  string `env:"CONTACTDESK_ADMIN_SURNAME,  default=Administrator"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return &cfg, nil
}
