package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/and161185/bookdesk/internal/autosave"
	"github.com/and161185/bookdesk/internal/config"
	"github.com/and161185/bookdesk/internal/dashboard"
	"github.com/and161185/bookdesk/internal/deps"
	"github.com/and161185/bookdesk/internal/fraud"
	"github.com/and161185/bookdesk/internal/middleware"
	"github.com/and161185/bookdesk/internal/model"
	"github.com/and161185/bookdesk/internal/recovery"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -destination=../mocks/mock_storage.go -package=mocks github.com/and161185/bookdesk/internal/server Storage

type Storage interface {
	GetAdminByLogin(ctx context.Context, login string) (model.Admin, string, error)
	GetAdminByID(ctx context.Context, id int) (model.Admin, error)

	RecordAction(ctx context.Context, action model.AdminAction) error
	ListActions(ctx context.Context, target string, limit int) ([]model.AdminAction, error)

	Ping(ctx context.Context) error
}

// Remote is the order API surface the handlers use.
type Remote interface {
	dashboard.Remote
	recovery.Remote

	MoveToAbandoned(ctx context.Context, id string) (model.APIResult, error)
	SavePartialOrder(ctx context.Context, payload model.RawRecord) error

	ListBlockedUsers(ctx context.Context) ([]model.RawRecord, error)
	BlockUser(ctx context.Context, req model.BlockRequest) (model.APIResult, error)
	UnblockUser(ctx context.Context, identifier string) (model.APIResult, error)
}

type Server struct {
	storage Storage
	remote  Remote
	config  *config.Config
	deps    *deps.Deps

	board    *dashboard.Dashboard
	recovery *recovery.Workflow
	fraud    *fraud.Client
	drafts   *autosave.Debouncer
	validate *validator.Validate
}

func NewServer(storage Storage, remote Remote, config *config.Config, deps *deps.Deps) *Server {
	board := dashboard.New(remote, deps.Logger, config.Location())

	return &Server{
		storage:  storage,
		remote:   remote,
		config:   config,
		deps:     deps,
		board:    board,
		recovery: recovery.NewWorkflow(remote, board, deps.Logger, deps.Metrics),
		fraud:    fraud.NewClient(config.FraudAPIURL, config.FraudAPIKey, deps.Metrics),
		drafts:   autosave.New(remote, config.AutosaveDelay, deps.Logger),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (srv *Server) buildRouter() http.Handler {
	logger := srv.deps.Logger

	router := chi.NewRouter()
	router.Use(chiMiddleware.StripSlashes)
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.LogMiddleware(logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(middleware.DecompressMiddleware)
	router.Use(middleware.CompressMiddleware(logger))

	router.Get("/healthz", srv.HealthHandler)
	router.Method(http.MethodGet, "/metrics", srv.deps.Metrics.Handler())

	router.Post("/api/checkout", srv.CheckoutHandler)
	router.Post("/api/checkout/draft", srv.DraftHandler)
	router.Get("/api/device", srv.DeviceHandler)

	router.Post("/api/admin/login", srv.LoginHandler)

	// admin routes
	router.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(srv.storage, srv.deps.TokenManager, logger))

		r.Get("/api/admin/orders", srv.ListOrdersHandler)
		r.Post("/api/admin/orders/refresh", srv.RefreshHandler)
		r.Get("/api/admin/orders/{id}", srv.OrderDetailHandler)
		r.Patch("/api/admin/orders/{id}/status", srv.StatusHandler)
		r.Patch("/api/admin/orders/{id}/call-status", srv.CallStatusHandler)
		r.Patch("/api/admin/orders/{id}/shipping-method", srv.ShippingMethodHandler)
		r.Patch("/api/admin/orders/{id}/price", srv.PriceHandler)
		r.Patch("/api/admin/orders/{id}/note", srv.NoteHandler)
		r.Post("/api/admin/orders/{id}/move-to-abandoned", srv.MoveToAbandonedHandler)

		r.Get("/api/admin/analytics", srv.AnalyticsHandler)

		r.Get("/api/admin/abandoned", srv.ListAbandonedHandler)
		r.Post("/api/admin/abandoned/{id}/migration", srv.RequestMigrationHandler)
		r.Get("/api/admin/migrations/{token}", srv.GetMigrationHandler)
		r.Post("/api/admin/migrations/{token}/confirm", srv.ConfirmMigrationHandler)
		r.Delete("/api/admin/migrations/{token}", srv.CancelMigrationHandler)

		r.Get("/api/admin/blocked-users", srv.ListBlockedHandler)
		r.Post("/api/admin/blocked-users", srv.BlockHandler)
		r.Delete("/api/admin/blocked-users/{identifier}", srv.UnblockHandler)

		r.Post("/api/admin/fraud-check", srv.FraudCheckHandler)
	})

	return router
}

func (srv *Server) Run(ctx context.Context) error {
	logger := srv.deps.Logger

	server := &http.Server{
		Addr:              srv.config.RunAddress,
		Handler:           srv.buildRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if err := srv.board.Refresh(ctx); err != nil {
		logger.Warnf("initial refresh: %v", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Infof("listening on %s", srv.config.RunAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		srv.RefreshLoop(gctx)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := server.Shutdown(shutdownCtx)
		srv.drafts.Close(shutdownCtx)
		return err
	})

	return g.Wait()
}
