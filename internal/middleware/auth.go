package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/and161185/bookdesk/internal/auth"
	"github.com/and161185/bookdesk/internal/errs"
	"github.com/and161185/bookdesk/internal/model"
	"go.uber.org/zap"
)

type Storage interface {
	GetAdminByID(ctx context.Context, id int) (model.Admin, error)
}

type contextKey string

const AdminContextKey contextKey = "admin"

// AdminFromContext returns the admin stored by AuthMiddleware.
func AdminFromContext(ctx context.Context) (model.Admin, bool) {
	admin, ok := ctx.Value(AdminContextKey).(model.Admin)
	return admin, ok
}

func AuthMiddleware(store Storage, tm *auth.TokenManager, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				jsonError(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			adminID, err := tm.ParseToken(tokenStr)
			if err != nil {
				jsonError(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			admin, err := store.GetAdminByID(r.Context(), adminID)
			if err != nil {
				if errors.Is(err, errs.ErrAdminNotFound) {
					jsonError(w, "unauthorized", http.StatusUnauthorized)
					return
				}
				logger.Errorf("auth: load admin %d: %v", adminID, err)
				jsonError(w, "internal_error", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), AdminContextKey, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func jsonError(w http.ResponseWriter, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + code + `"}`))
}
