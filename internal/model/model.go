package model

import "time"

type OrderStatus string

const (
	Processing OrderStatus = "Processing"
	Shipped    OrderStatus = "Shipped"
	Delivered  OrderStatus = "Delivered"
	Cancelled  OrderStatus = "Cancelled"
	Returned   OrderStatus = "Returned"
	Abandoned  OrderStatus = "Abandoned"
)

// OrderStatuses lists the statuses an admin can assign.
var OrderStatuses = []OrderStatus{Processing, Shipped, Delivered, Cancelled, Returned, Abandoned}

func (s OrderStatus) Valid() bool {
	for _, st := range OrderStatuses {
		if st == s {
			return true
		}
	}
	return false
}

type CallStatus string

const (
	CallPending   CallStatus = "Pending"
	CallConfirmed CallStatus = "Confirmed"
	CallNoAnswer  CallStatus = "No Answer"
)

var CallStatuses = []CallStatus{CallPending, CallConfirmed, CallNoAnswer}

func (s CallStatus) Valid() bool {
	for _, st := range CallStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// RawRecord is a loosely typed record as returned by the remote order API.
type RawRecord map[string]any

type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type ClientInfo struct {
	IP        string `json:"ip"`
	UserAgent string `json:"userAgent"`
}

type CartItem struct {
	PostID         string  `json:"postId"`
	ProductPrice   float64 `json:"productPrice"`
	Quantity       int     `json:"quantity"`
	ShippingMethod string  `json:"shippingMethod"`
	ShippingCost   float64 `json:"shippingCost"`
	TotalAmount    float64 `json:"totalAmount"`
}

type Order struct {
	ID             string      `json:"id"`
	OrderID        string      `json:"orderId"`
	Customer       Customer    `json:"customer"`
	Address        string      `json:"address"`
	ShippingMethod string      `json:"shippingMethod"`
	ShippingCost   float64     `json:"shippingCost"`
	TotalValue     float64     `json:"totalValue"`
	Status         OrderStatus `json:"status"`
	CallStatus     CallStatus  `json:"callStatus"`
	Date           time.Time   `json:"date"`
	Note           string      `json:"note"`
	ClientInfo     ClientInfo  `json:"clientInfo"`
	Items          []CartItem  `json:"items,omitempty"`
}

// AbandonedOrder keeps the remote record verbatim next to its normalized view.
type AbandonedOrder struct {
	Order
	Raw RawRecord `json:"-"`
}

type BlockedUser struct {
	Identifier     string         `json:"identifier"`
	IdentifierKind IdentifierKind `json:"identifierKind"`
	Note           string         `json:"note"`
	BlockedAt      time.Time      `json:"blockedAt"`
}

type IdentifierKind string

const (
	IdentifierIP     IdentifierKind = "ip"
	IdentifierPhone  IdentifierKind = "phone"
	IdentifierDevice IdentifierKind = "device"
)

// APIResult is the envelope the remote API uses for create-like operations.
type APIResult struct {
	Success *bool  `json:"success,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
	OrderID string `json:"orderId,omitempty"`
}

// OK reports whether the result signals success. A missing success flag counts as success.
func (r APIResult) OK() bool {
	return r.Success == nil || *r.Success
}

type Admin struct {
	ID    int    `json:"id"`
	Login string `json:"login"`
}

type AdminAction struct {
	ID        string    `json:"id"`
	AdminID   int       `json:"adminId"`
	Kind      string    `json:"kind"`
	Target    string    `json:"target"`
	Outcome   string    `json:"outcome"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
