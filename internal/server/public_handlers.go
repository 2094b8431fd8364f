package server

import (
	"net/http"
	"time"

	"github.com/and161185/bookdesk/internal/device"
	"github.com/and161185/bookdesk/internal/model"
	"github.com/and161185/bookdesk/internal/utils"
	"github.com/shopspring/decimal"
)

const (
	reasonDuplicateOrder = "duplicate_order"
	reasonBlockedUser    = "blocked_user"
)

type checkoutResult struct {
	OrderID      string  `json:"orderId,omitempty"`
	ShippingCost float64 `json:"shippingCost"`
	TotalValue   float64 `json:"totalValue"`
}

type healthResult struct {
	Status      string    `json:"status"`
	RefreshedAt time.Time `json:"refreshedAt"`
}

// CheckoutTotal sums price times quantity of every item plus the shipping cost.
func CheckoutTotal(items []model.CheckoutItem, shippingCost float64) (float64, []model.CartItem) {
	total := decimal.NewFromFloat(shippingCost)
	cart := make([]model.CartItem, 0, len(items))
	for _, it := range items {
		line := decimal.NewFromFloat(it.ProductPrice).Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(line)
		cart = append(cart, model.CartItem{
			PostID:       it.PostID,
			ProductPrice: it.ProductPrice,
			Quantity:     it.Quantity,
			TotalAmount:  line.InexactFloat64(),
		})
	}
	return total.InexactFloat64(), cart
}

func (s *Server) CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	var req model.CheckoutRequest
	if !s.decode(w, r, &req) || !s.check(w, req) {
		return
	}

	cost, ok := model.ShippingCost(req.ShippingMethod)
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid_value", "unknown shipping method")
		return
	}

	total, cart := CheckoutTotal(req.Items, cost)
	for i := range cart {
		cart[i].ShippingMethod = req.ShippingMethod
		cart[i].ShippingCost = cost
	}

	payload := model.RawRecord{
		"name":            req.Name,
		"number":          req.Phone,
		"address":         req.Address,
		"shippingMethod":  req.ShippingMethod,
		"shippingCost":    cost,
		"totalValue":      total,
		"note":            req.Note,
		"items":           cart,
		"status":          model.Processing,
		"phoneCallStatus": model.CallPending,
		"clientInfo": model.ClientInfo{
			IP:        clientIP(r),
			UserAgent: r.UserAgent(),
		},
	}
	if req.DeviceID != "" {
		payload["deviceId"] = req.DeviceID
	}

	res, err := s.remote.CreateOrder(r.Context(), payload)
	if err != nil {
		s.deps.Logger.Errorf("checkout: %v", err)
		s.writeError(w, http.StatusBadGateway, "upstream_error", err.Error())
		return
	}
	if !res.OK() {
		status := http.StatusUnprocessableEntity
		switch res.Reason {
		case reasonDuplicateOrder:
			status = http.StatusConflict
		case reasonBlockedUser:
			status = http.StatusForbidden
		}
		s.deps.Logger.Infof("checkout rejected: %s %s", res.Reason, res.Message)
		s.writeJSON(w, status, res)
		return
	}

	s.drafts.Cancel(draftKey(req.Phone, r))
	s.writeJSON(w, http.StatusCreated, checkoutResult{
		OrderID:      res.OrderID,
		ShippingCost: cost,
		TotalValue:   total,
	})
}

func (s *Server) DraftHandler(w http.ResponseWriter, r *http.Request) {
	var req model.DraftRequest
	if !s.decode(w, r, &req) {
		return
	}

	payload := model.RawRecord{
		"name":    req.Name,
		"number":  req.Phone,
		"address": req.Address,
		"clientInfo": model.ClientInfo{
			IP:        clientIP(r),
			UserAgent: r.UserAgent(),
		},
	}
	if cost, ok := model.ShippingCost(req.ShippingMethod); ok {
		total, cart := CheckoutTotal(req.Items, cost)
		for i := range cart {
			cart[i].ShippingMethod = req.ShippingMethod
			cart[i].ShippingCost = cost
		}
		payload["shippingMethod"] = req.ShippingMethod
		payload["shippingCost"] = cost
		payload["totalValue"] = total
		payload["items"] = cart
	} else if len(req.Items) > 0 {
		_, cart := CheckoutTotal(req.Items, 0)
		payload["items"] = cart
	}
	if req.DeviceID != "" {
		payload["deviceId"] = req.DeviceID
	}

	if !s.drafts.Save(draftKey(req.Phone, r), payload) {
		s.writeError(w, http.StatusServiceUnavailable, "shutting_down", "")
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// draftKey identifies a visitor: the phone when typed, otherwise the client IP.
func draftKey(phone string, r *http.Request) string {
	if p := utils.NormalizePhone(phone); p != "" {
		return "phone:" + p
	}
	return "ip:" + clientIP(r)
}

func (s *Server) DeviceHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, device.Parse(r.UserAgent()))
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.storage.Ping(r.Context()); err != nil {
		s.deps.Logger.Warnf("health: %v", err)
		s.writeError(w, http.StatusServiceUnavailable, "storage_unavailable", "")
		return
	}
	s.writeJSON(w, http.StatusOK, healthResult{Status: "ok", RefreshedAt: s.board.RefreshedAt()})
}
