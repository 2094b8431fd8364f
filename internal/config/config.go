package config

import (
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	RunAddress      string
	DatabaseURI     string
	OrderAPIAddress string
	SecretKey       string

	FraudAPIURL string
	FraudAPIKey string

	AdminLogin    string
	AdminPassword string

	RefreshInterval time.Duration
	AutosaveDelay   time.Duration
	Timezone        string

	Logger *zap.SugaredLogger
}

func NewConfig() *Config {
	// .env is optional, real environment wins
	_ = godotenv.Load()

	logCfg := zap.NewProductionConfig()
	logCfg.OutputPaths = []string{"stdout", "server.log"}

	logger := zap.Must(logCfg.Build())

	cfg := &Config{}
	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "HTTP server address")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "DB connection string")
	flag.StringVar(&cfg.OrderAPIAddress, "o", "", "Order API address")
	flag.StringVar(&cfg.SecretKey, "k", "", "JWT secret key")
	flag.DurationVar(&cfg.RefreshInterval, "i", time.Minute, "Order list refresh interval")
	flag.Parse()

	cfg.AutosaveDelay = 1500 * time.Millisecond
	cfg.Timezone = "Asia/Dhaka"
	cfg.Logger = logger.Sugar()

	ReadServerEnvironment(cfg)

	return cfg
}

func ReadServerEnvironment(cfg *Config) {
	if runAddress := os.Getenv("RUN_ADDRESS"); runAddress != "" {
		cfg.RunAddress = runAddress
	}

	if databaseURI := os.Getenv("DATABASE_URI"); databaseURI != "" {
		cfg.DatabaseURI = databaseURI
	}

	if orderAPIAddress := os.Getenv("ORDER_API_ADDRESS"); orderAPIAddress != "" {
		cfg.OrderAPIAddress = orderAPIAddress
	}

	if secretKey := os.Getenv("SECRET_KEY"); secretKey != "" {
		cfg.SecretKey = secretKey
	}

	if fraudURL := os.Getenv("FRAUD_API_URL"); fraudURL != "" {
		cfg.FraudAPIURL = fraudURL
	}

	if fraudKey := os.Getenv("FRAUD_API_KEY"); fraudKey != "" {
		cfg.FraudAPIKey = fraudKey
	}

	if login := os.Getenv("ADMIN_LOGIN"); login != "" {
		cfg.AdminLogin = login
	}

	if password := os.Getenv("ADMIN_PASSWORD"); password != "" {
		cfg.AdminPassword = password
	}

	if interval := os.Getenv("REFRESH_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil && d > 0 {
			cfg.RefreshInterval = d
		}
	}

	if delay := os.Getenv("AUTOSAVE_DELAY"); delay != "" {
		if d, err := time.ParseDuration(delay); err == nil && d > 0 {
			cfg.AutosaveDelay = d
		}
	}

	if tz := os.Getenv("TIMEZONE"); tz != "" {
		cfg.Timezone = tz
	}
}

// Location resolves Timezone, falling back to the local zone.
func (cfg *Config) Location() *time.Location {
	if cfg.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warnf("unknown timezone %q, using local: %v", cfg.Timezone, err)
		}
		return time.Local
	}
	return loc
}
