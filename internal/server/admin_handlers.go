package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/and161185/bookdesk/internal/analytics"
	"github.com/and161185/bookdesk/internal/dashboard"
	"github.com/and161185/bookdesk/internal/device"
	"github.com/and161185/bookdesk/internal/errs"
	"github.com/and161185/bookdesk/internal/model"
	"github.com/and161185/bookdesk/internal/orders"
	"github.com/and161185/bookdesk/internal/recovery"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

const historyLimit = 20

type orderDetail struct {
	Order       model.Order                         `json:"order"`
	Fingerprint device.Fingerprint                  `json:"fingerprint"`
	Fields      map[dashboard.Field]dashboard.State `json:"fields"`
	History     []model.AdminAction                 `json:"history"`
}

type refreshResult struct {
	Orders      int       `json:"orders"`
	Abandoned   int       `json:"abandoned"`
	RefreshedAt time.Time `json:"refreshedAt"`
}

func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if !s.decode(w, r, &creds) {
		return
	}
	if creds.Login == "" || creds.Password == "" {
		s.writeError(w, http.StatusBadRequest, "bad_request", "login and password required")
		return
	}

	admin, hash, err := s.storage.GetAdminByLogin(r.Context(), creds.Login)
	if err != nil {
		if errors.Is(err, errs.ErrAdminNotFound) {
			s.writeError(w, http.StatusUnauthorized, "invalid_credentials", "")
			return
		}
		s.deps.Logger.Errorf("login %s: %v", creds.Login, err)
		s.writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(creds.Password)); err != nil {
		s.writeError(w, http.StatusUnauthorized, "invalid_credentials", "")
		return
	}

	token, err := s.deps.TokenManager.GenerateToken(admin.ID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "internal_error", "token error")
		return
	}

	w.Header().Set("Authorization", "Bearer "+token)
	s.writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) ListOrdersHandler(w http.ResponseWriter, r *http.Request) {
	page := orders.Apply(s.board.Orders(), orders.ParseQuery(r.URL.Query()))
	s.writeJSON(w, http.StatusOK, page)
}

func (s *Server) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.board.Refresh(r.Context()); err != nil {
		s.deps.Logger.Errorf("refresh: %v", err)
		s.writeError(w, http.StatusBadGateway, "upstream_error", err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, refreshResult{
		Orders:      len(s.board.Orders()),
		Abandoned:   len(s.board.Abandoned()),
		RefreshedAt: s.board.RefreshedAt(),
	})
}

func (s *Server) OrderDetailHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	order, ok := s.board.Order(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "order_not_found", "")
		return
	}

	history, err := s.storage.ListActions(r.Context(), id, historyLimit)
	if err != nil {
		s.deps.Logger.Warnf("history of order %s: %v", id, err)
	}
	if history == nil {
		history = []model.AdminAction{}
	}

	s.writeJSON(w, http.StatusOK, orderDetail{
		Order:       order,
		Fingerprint: device.Parse(order.ClientInfo.UserAgent),
		Fields:      s.board.FieldStates(id),
		History:     history,
	})
}

func (s *Server) StatusHandler(w http.ResponseWriter, r *http.Request) {
	var req model.StatusRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.mutation(w, r, "order.status", string(req.Status), func(ctx context.Context, id string) (dashboard.Mutation, error) {
		return s.board.ChangeStatus(ctx, id, req.Status)
	})
}

func (s *Server) CallStatusHandler(w http.ResponseWriter, r *http.Request) {
	var req model.CallStatusRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.mutation(w, r, "order.call_status", string(req.CallStatus), func(ctx context.Context, id string) (dashboard.Mutation, error) {
		return s.board.ChangeCallStatus(ctx, id, req.CallStatus)
	})
}

func (s *Server) ShippingMethodHandler(w http.ResponseWriter, r *http.Request) {
	var req model.ShippingMethodRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.mutation(w, r, "order.shipping_method", req.ShippingMethod, func(ctx context.Context, id string) (dashboard.Mutation, error) {
		return s.board.ChangeShippingMethod(ctx, id, req.ShippingMethod)
	})
}

func (s *Server) PriceHandler(w http.ResponseWriter, r *http.Request) {
	var req model.PriceRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.mutation(w, r, "order.price", strconv.FormatFloat(req.TotalValue, 'f', -1, 64), func(ctx context.Context, id string) (dashboard.Mutation, error) {
		return s.board.ChangePrice(ctx, id, req.TotalValue)
	})
}

func (s *Server) NoteHandler(w http.ResponseWriter, r *http.Request) {
	var req model.NoteRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.mutation(w, r, "order.note", req.Note, func(ctx context.Context, id string) (dashboard.Mutation, error) {
		return s.board.ChangeNote(ctx, id, req.Note)
	})
}

func (s *Server) mutation(w http.ResponseWriter, r *http.Request, kind, value string, change func(ctx context.Context, id string) (dashboard.Mutation, error)) {
	id := chi.URLParam(r, "id")

	m, err := change(r.Context(), id)
	switch {
	case errors.Is(err, errs.ErrOrderNotFound):
		s.writeError(w, http.StatusNotFound, "order_not_found", "")
		return
	case errors.Is(err, errs.ErrUnknownStatus),
		errors.Is(err, errs.ErrUnknownCallStatus),
		errors.Is(err, errs.ErrUnknownShippingMethod):
		s.writeError(w, http.StatusUnprocessableEntity, "invalid_value", err.Error())
		return
	}

	s.journal(r, kind, id, outcomeOf(err), value)

	if err != nil {
		s.writeJSON(w, http.StatusBadGateway, m)
		return
	}
	s.writeJSON(w, http.StatusOK, m)
}

func (s *Server) MoveToAbandonedHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.board.Order(id); !ok {
		s.writeError(w, http.StatusNotFound, "order_not_found", "")
		return
	}

	res, err := s.remote.MoveToAbandoned(r.Context(), id)
	if err != nil {
		s.deps.Logger.Errorf("move order %s to abandoned: %v", id, err)
		s.journal(r, "order.move_to_abandoned", id, "failed", err.Error())
		s.writeError(w, http.StatusBadGateway, "upstream_error", err.Error())
		return
	}
	if !res.OK() {
		s.journal(r, "order.move_to_abandoned", id, "rejected", res.Reason)
		s.writeJSON(w, http.StatusUnprocessableEntity, res)
		return
	}

	s.board.RemoveOrder(id)
	if err := s.board.Refresh(r.Context()); err != nil {
		s.deps.Logger.Warnf("refresh after moving order %s: %v", id, err)
	}
	s.journal(r, "order.move_to_abandoned", id, "ok", "")
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) AnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	days := analytics.Windows[0]
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || !analytics.ValidWindow(n) {
			s.writeError(w, http.StatusBadRequest, "invalid_window", "days must be one of 7, 15, 30")
			return
		}
		days = n
	}

	summary := analytics.Aggregate(s.board.Orders(), days, s.board.Now())
	if summary == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) ListAbandonedHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.board.Abandoned())
}

func (s *Server) RequestMigrationHandler(w http.ResponseWriter, r *http.Request) {
	m, err := s.recovery.Request(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, errs.ErrOrderNotFound) {
			s.writeError(w, http.StatusNotFound, "order_not_found", "")
			return
		}
		s.writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	s.writeJSON(w, http.StatusCreated, m)
}

func (s *Server) GetMigrationHandler(w http.ResponseWriter, r *http.Request) {
	m, ok := s.recovery.Get(chi.URLParam(r, "token"))
	if !ok {
		s.writeError(w, http.StatusNotFound, "migration_not_found", "")
		return
	}
	s.writeJSON(w, http.StatusOK, m)
}

func (s *Server) ConfirmMigrationHandler(w http.ResponseWriter, r *http.Request) {
	m, err := s.recovery.Confirm(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		s.migrationError(w, err)
		return
	}

	s.journal(r, "abandoned.migrate", m.SourceID, string(m.State), m.OrderID)

	status := http.StatusOK
	switch m.State {
	case recovery.DuplicateExists:
		status = http.StatusConflict
	case recovery.Failed:
		status = http.StatusBadGateway
	}
	s.writeJSON(w, status, m)
}

func (s *Server) CancelMigrationHandler(w http.ResponseWriter, r *http.Request) {
	m, err := s.recovery.Cancel(chi.URLParam(r, "token"))
	if err != nil {
		s.migrationError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, m)
}

func (s *Server) migrationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrMigrationNotFound):
		s.writeError(w, http.StatusNotFound, "migration_not_found", "")
	case errors.Is(err, errs.ErrMigrationState), errors.Is(err, errs.ErrMigrationInFlight):
		s.writeError(w, http.StatusConflict, "migration_conflict", err.Error())
	default:
		s.writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func (s *Server) ListBlockedHandler(w http.ResponseWriter, r *http.Request) {
	records, err := s.remote.ListBlockedUsers(r.Context())
	if err != nil {
		s.deps.Logger.Errorf("list blocked users: %v", err)
		s.writeError(w, http.StatusBadGateway, "upstream_error", err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, orders.NormalizeBlockedUsers(records))
}

func (s *Server) BlockHandler(w http.ResponseWriter, r *http.Request) {
	var req model.BlockRequest
	if !s.decode(w, r, &req) || !s.check(w, req) {
		return
	}

	res, err := s.remote.BlockUser(r.Context(), req)
	if err != nil {
		s.deps.Logger.Errorf("block %s: %v", req.Identifier, err)
		s.writeError(w, http.StatusBadGateway, "upstream_error", err.Error())
		return
	}
	if !res.OK() {
		s.journal(r, "user.block", req.Identifier, "rejected", res.Reason)
		s.writeJSON(w, http.StatusUnprocessableEntity, res)
		return
	}

	s.journal(r, "user.block", req.Identifier, "ok", req.Note)
	s.writeJSON(w, http.StatusCreated, res)
}

func (s *Server) UnblockHandler(w http.ResponseWriter, r *http.Request) {
	identifier := chi.URLParam(r, "identifier")

	res, err := s.remote.UnblockUser(r.Context(), identifier)
	if err != nil {
		s.deps.Logger.Errorf("unblock %s: %v", identifier, err)
		s.writeError(w, http.StatusBadGateway, "upstream_error", err.Error())
		return
	}
	if !res.OK() {
		s.writeJSON(w, http.StatusUnprocessableEntity, res)
		return
	}

	s.journal(r, "user.unblock", identifier, "ok", "")
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) FraudCheckHandler(w http.ResponseWriter, r *http.Request) {
	var req model.FraudCheckRequest
	if !s.decode(w, r, &req) {
		return
	}

	report, err := s.fraud.Check(r.Context(), req.Phone)
	switch {
	case errors.Is(err, errs.ErrPhoneTooShort):
		s.writeError(w, http.StatusBadRequest, "phone_too_short", err.Error())
	case errors.Is(err, errs.ErrNotConfigured):
		s.writeError(w, http.StatusServiceUnavailable, "configuration_error", "fraud check is not configured")
	case err != nil:
		s.deps.Logger.Errorf("fraud check: %v", err)
		s.writeError(w, http.StatusBadGateway, "upstream_error", err.Error())
	default:
		s.writeJSON(w, http.StatusOK, report)
	}
}
