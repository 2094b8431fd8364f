package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/and161185/bookdesk/internal/auth"
	"github.com/and161185/bookdesk/internal/errs"
	"github.com/and161185/bookdesk/internal/model"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type mockStorage struct {
	GetAdminFunc func(ctx context.Context, id int) (model.Admin, error)
}

func (m *mockStorage) GetAdminByID(ctx context.Context, id int) (model.Admin, error) {
	return m.GetAdminFunc(ctx, id)
}

func TestAuthMiddleware(t *testing.T) {
	tm := auth.NewTokenManager("test-secret")
	validToken, err := tm.GenerateToken(1)
	require.NoError(t, err)

	otherToken, err := auth.NewTokenManager("other-secret").GenerateToken(1)
	require.NoError(t, err)

	tests := []struct {
		name           string
		authHeader     string
		storage        Storage
		expectedStatus int
	}{
		{
			name:           "no header",
			authHeader:     "",
			storage:        &mockStorage{},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid token",
			authHeader:     "Bearer invalidtoken",
			storage:        &mockStorage{},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "foreign signature",
			authHeader:     "Bearer " + otherToken,
			storage:        &mockStorage{},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "admin not found",
			authHeader: "Bearer " + validToken,
			storage: &mockStorage{
				GetAdminFunc: func(ctx context.Context, id int) (model.Admin, error) {
					return model.Admin{}, errs.ErrAdminNotFound
				},
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "storage error",
			authHeader: "Bearer " + validToken,
			storage: &mockStorage{
				GetAdminFunc: func(ctx context.Context, id int) (model.Admin, error) {
					return model.Admin{}, errors.New("some db error")
				},
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:       "ok",
			authHeader: "Bearer " + validToken,
			storage: &mockStorage{
				GetAdminFunc: func(ctx context.Context, id int) (model.Admin, error) {
					return model.Admin{ID: id, Login: "admin"}, nil
				},
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rr := httptest.NewRecorder()
			mw := AuthMiddleware(tt.storage, tm, zaptest.NewLogger(t).Sugar())
			handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				admin, ok := AdminFromContext(r.Context())
				require.True(t, ok)
				require.Equal(t, 1, admin.ID)
				w.WriteHeader(http.StatusOK)
			}))

			handler.ServeHTTP(rr, req)

			require.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}
