package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/and161185/bookdesk/internal/middleware"
	"github.com/and161185/bookdesk/internal/model"
	"github.com/go-playground/validator/v10"
)

type errorBody struct {
	Error   string   `json:"error"`
	Message string   `json:"message,omitempty"`
	Fields  []string `json:"fields,omitempty"`
}

func (srv *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		srv.deps.Logger.Errorf("encode response: %v", err)
	}
}

func (srv *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	srv.writeJSON(w, status, errorBody{Error: code, Message: message})
}

func (srv *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			srv.writeError(w, http.StatusRequestEntityTooLarge, "body_too_large", "")
			return false
		}
		srv.writeError(w, http.StatusBadRequest, "bad_request", "invalid json body")
		return false
	}
	return true
}

// check runs struct validation and writes a 400 listing the failed fields.
func (srv *Server) check(w http.ResponseWriter, v any) bool {
	err := srv.validate.Struct(v)
	if err == nil {
		return true
	}

	body := errorBody{Error: "validation_error", Message: err.Error()}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			body.Fields = append(body.Fields, fe.Namespace())
		}
	}
	srv.writeJSON(w, http.StatusBadRequest, body)
	return false
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}

// journal records an admin action. Failures are logged and never fail the request.
func (srv *Server) journal(r *http.Request, kind, target, outcome, detail string) {
	admin, ok := middleware.AdminFromContext(r.Context())
	if !ok {
		return
	}

	ctx := context.WithoutCancel(r.Context())
	err := srv.storage.RecordAction(ctx, model.AdminAction{
		AdminID: admin.ID,
		Kind:    kind,
		Target:  target,
		Outcome: outcome,
		Detail:  detail,
	})
	if err != nil {
		srv.deps.Logger.Warnf("journal %s %s: %v", kind, target, err)
	}
}

func outcomeOf(err error) string {
	if err != nil {
		return "failed"
	}
	return "ok"
}
