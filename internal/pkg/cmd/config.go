package cmd

import (
	"os"
	"path/filepath"
	"time"

	"github.com/neuraops/dashboard/pkg/env"
)

type Config struct {
	Address  string `env:"DASHBOARD_ADDRESS" envDefault:":3000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	APIURL  string        `env:"NEURAOPS_API_URL" envDefault:"http://localhost:8000"`
	APIWait time.Duration `env:"NEURAOPS_API_WAIT" envDefault:"10s"`

	StoragePath    string        `env:"DASHBOARD_STORAGE_PATH"`
	SecureCookies  bool          `env:"DASHBOARD_SECURE_COOKIES" envDefault:"false"`
	VisitorIdleTTL time.Duration `env:"DASHBOARD_VISITOR_IDLE_TTL" envDefault:"24h"`
	PurgeInterval  time.Duration `env:"DASHBOARD_PURGE_INTERVAL" envDefault:"5m"`

	LoginRate  float64 `env:"DASHBOARD_LOGIN_RATE" envDefault:"0.2"`
	LoginBurst int     `env:"DASHBOARD_LOGIN_BURST" envDefault:"5"`

	CredentialsPath string `env:"NEURAOPS_CREDENTIALS_PATH"`
}

func ParseConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return cfg, err
	}

	if cfg.CredentialsPath == "" {
		cfg.CredentialsPath = defaultCredentialsPath()
	}

	return cfg, nil
}

func defaultCredentialsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}

	return filepath.Join(dir, "neuraops", "credentials.json")
}
