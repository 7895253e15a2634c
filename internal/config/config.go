package config

import (
	"context"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all application configuration.
type Config struct {
	// DBPath is the SQLite database file path.
	DBPath string `env:"DB_PATH, default=utility.db"`
	// CostPerKWh is the process-wide billing rate; it is not per-customer.
	CostPerKWh float64 `env:"COST_PER_KWH, default=0.12"`
	JWTSecret  string  `env:"JWT_SECRET, default=dev-secret-change-me"`
	LogLevel   string  `env:"LOG_LEVEL, default=info"`
	// ExportFile and ReportFile are the default output paths offered by the
	// interactive shell.
	ExportFile string `env:"EXPORT_FILENAME, default=customer_export.csv"`
	ReportFile string `env:"REPORT_FILENAME, default=usage_report.png"`

	// Bootstrap admin seeded on first run so the portal is never locked out.
	AdminEmail    string `env:"ADMIN_EMAIL, default=admin@portal.com"`
	AdminPassword string `env:"ADMIN_PASSWORD, default=admin"`
}

// Load reads configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
