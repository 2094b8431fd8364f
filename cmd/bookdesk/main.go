package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/and161185/bookdesk/internal/config"
	"github.com/and161185/bookdesk/internal/deps"
	"github.com/and161185/bookdesk/internal/orderapi"
	"github.com/and161185/bookdesk/internal/server"
	"github.com/and161185/bookdesk/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config := config.NewConfig()
	defer config.Logger.Sync()

	if config.OrderAPIAddress == "" {
		config.Logger.Fatal("order api address is required (-o or ORDER_API_ADDRESS)")
	}
	if config.SecretKey == "" {
		config.Logger.Fatal("secret key is required (-k or SECRET_KEY)")
	}
	if config.FraudAPIURL == "" || config.FraudAPIKey == "" {
		config.Logger.Warn("fraud api is not configured, fraud checks will be unavailable")
	}

	storage, err := storage.NewPostgresStorage(ctx, config.DatabaseURI)
	if err != nil {
		config.Logger.Fatal(err)
	}
	defer storage.Close()

	if config.AdminLogin != "" && config.AdminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(config.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			config.Logger.Fatal(err)
		}
		created, err := storage.EnsureAdmin(ctx, config.AdminLogin, string(hash))
		if err != nil {
			config.Logger.Fatal(err)
		}
		if created {
			config.Logger.Infof("admin %q created", config.AdminLogin)
		}
	}

	deps := deps.NewDependencies(config)
	remote := orderapi.NewClient(config.OrderAPIAddress, deps.Metrics)

	srv := server.NewServer(storage, remote, config, deps)
	if err := srv.Run(ctx); err != nil {
		config.Logger.Fatal(err)
	}
}
