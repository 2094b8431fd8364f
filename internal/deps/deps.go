package deps

import (
	"github.com/and161185/bookdesk/internal/auth"
	"github.com/and161185/bookdesk/internal/config"
	"github.com/and161185/bookdesk/internal/metrics"
	"go.uber.org/zap"
)

type Deps struct {
	Logger       *zap.SugaredLogger
	TokenManager *auth.TokenManager
	Metrics      *metrics.Metrics
}

func NewDependencies(cfg *config.Config) *Deps {
	logger := cfg.Logger
	if logger == nil {
		logCfg := zap.NewProductionConfig()
		logCfg.OutputPaths = []string{"stdout", "server.log"}
		logger = zap.Must(logCfg.Build()).Sugar()
	}

	return &Deps{
		Logger:       logger,
		TokenManager: auth.NewTokenManager(cfg.SecretKey),
		Metrics:      metrics.New(),
	}
}
