package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound     = errors.New("order not found")
	ErrInvalidInput = errors.New("invalid order input")
)

// Status is the fulfillment state of an order.
type Status string

const (
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
)

// Next returns the next fulfillment state. Only the two forward edges are
// defined; any other status, Delivered included, maps to itself.
func (s Status) Next() Status {
	switch s {
	case StatusProcessing:
		return StatusShipped
	case StatusShipped:
		return StatusDelivered
	default:
		return s
	}
}

type ShippingInfo struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	PinCode string `json:"pin_code"`
}

type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Photo     string  `json:"photo"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type Order struct {
	ID              string       `json:"id"`
	UserID          string       `json:"user_id"`
	UserName        string       `json:"user_name,omitempty"`
	Items           []OrderItem  `json:"order_items"`
	Shipping        ShippingInfo `json:"shipping_info"`
	Subtotal        float64      `json:"subtotal"`
	Tax             float64      `json:"tax"`
	ShippingCharges float64      `json:"shipping_charges"`
	Discount        float64      `json:"discount"`
	Total           float64      `json:"total"`
	Status          Status       `json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
}

// NewOrderInput carries the caller-supplied fields of an order before the
// store assigns an id and the initial status.
type NewOrderInput struct {
	UserID          string       `json:"user_id"`
	Items           []OrderItem  `json:"order_items"`
	Shipping        ShippingInfo `json:"shipping_info"`
	Subtotal        float64      `json:"subtotal"`
	Tax             float64      `json:"tax"`
	ShippingCharges float64      `json:"shipping_charges"`
	Discount        float64      `json:"discount"`
	Total           float64      `json:"total"`
}

// Validate enforces the creation preconditions. Total is trusted as given and
// never cross-checked against subtotal, tax, charges and discount.
func (in NewOrderInput) Validate() error {
	switch {
	case in.Shipping == (ShippingInfo{}):
		return fmt.Errorf("%w: shipping_info is required", ErrInvalidInput)
	case in.UserID == "":
		return fmt.Errorf("%w: user is required", ErrInvalidInput)
	case len(in.Items) == 0:
		return fmt.Errorf("%w: order must contain at least one item", ErrInvalidInput)
	case in.Subtotal <= 0:
		return fmt.Errorf("%w: subtotal is required", ErrInvalidInput)
	case in.Tax <= 0:
		return fmt.Errorf("%w: tax is required", ErrInvalidInput)
	case in.Total <= 0:
		return fmt.Errorf("%w: total is required", ErrInvalidInput)
	}
	return nil
}
