package model

type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type StatusRequest struct {
	Status OrderStatus `json:"status"`
}

type CallStatusRequest struct {
	CallStatus CallStatus `json:"callStatus"`
}

type ShippingMethodRequest struct {
	ShippingMethod string `json:"shippingMethod"`
}

type PriceRequest struct {
	TotalValue float64 `json:"totalValue"`
}

type NoteRequest struct {
	Note string `json:"note"`
}

type FraudCheckRequest struct {
	Phone string `json:"phone"`
}

type BlockRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Note       string `json:"note"`
}

type CheckoutItem struct {
	PostID       string  `json:"postId" validate:"required"`
	ProductPrice float64 `json:"productPrice" validate:"gte=0"`
	Quantity     int     `json:"quantity" validate:"gte=1"`
}

type CheckoutRequest struct {
	Name           string         `json:"name" validate:"required"`
	Phone          string         `json:"phone" validate:"required,min=11"`
	Address        string         `json:"address" validate:"required"`
	ShippingMethod string         `json:"shippingMethod" validate:"required"`
	Note           string         `json:"note"`
	DeviceID       string         `json:"deviceId"`
	Items          []CheckoutItem `json:"items" validate:"required,min=1,dive"`
}

// DraftRequest is the partially filled checkout form; every field is optional.
type DraftRequest struct {
	Name           string         `json:"name"`
	Phone          string         `json:"phone"`
	Address        string         `json:"address"`
	ShippingMethod string         `json:"shippingMethod"`
	DeviceID       string         `json:"deviceId"`
	Items          []CheckoutItem `json:"items"`
}
