package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusInDelivery OrderStatus = "IN_DELIVERY"
	StatusDelivered  OrderStatus = "DELIVERED"
	StatusCanceled   OrderStatus = "CANCELED"
)

// OrderStatuses lists every valid status.
var OrderStatuses = []OrderStatus{StatusPending, StatusInDelivery, StatusDelivered, StatusCanceled}

// Valid reports whether s is one of the four known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInDelivery, StatusDelivered, StatusCanceled:
		return true
	}
	return false
}

// Customer holds the delivery contact captured at checkout.
type Customer struct {
	Name      string `json:"name" db:"customer_name"`
	Phone     string `json:"phone" db:"customer_phone"`
	Address   string `json:"address" db:"customer_address"`
	Reference string `json:"reference,omitempty" db:"customer_reference"`
}

// OrderItem is a snapshot of a product at order time.
type OrderItem struct {
	ProductID    string  `json:"productId" db:"product_id"`
	Name         string  `json:"name" db:"name"`
	PricePer100g float64 `json:"pricePer100g" db:"price_per_100g"`
	Grams        int     `json:"grams" db:"grams"`
	LineTotal    float64 `json:"lineTotal" db:"line_total"`
	Image        string  `json:"image" db:"image"`
}

// Totals holds the computed order amounts.
type Totals struct {
	Subtotal float64 `json:"subtotal" db:"subtotal"`
}

// Order represents a placed customer order.
type Order struct {
	ID        string      `json:"id" db:"id"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
	Status    OrderStatus `json:"status" db:"status"`
	Customer  Customer    `json:"customer"`
	Items     []OrderItem `json:"items"`
	Totals    Totals      `json:"totals"`
	Notes     string      `json:"notes,omitempty" db:"notes"`
}

// Clone returns a deep copy so callers cannot mutate stored item slices.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	c.Items = append([]OrderItem(nil), o.Items...)
	return &c
}

// Grams is a requested weight. It decodes from a JSON number or numeric string;
// anything else decodes to NaN and is normalised later.
type Grams float64

// UnmarshalJSON implements json.Unmarshaler.
func (g *Grams) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*g = Grams(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*g = Grams(f)
			return nil
		}
	}

	*g = Grams(math.NaN())
	return nil
}

// CartLine is a single requested item in a checkout request.
type CartLine struct {
	ProductID string `json:"productId"`
	Grams     Grams  `json:"grams"`
}

// CustomerRequest is the customer block of a checkout request.
type CustomerRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Reference string `json:"reference,omitempty"`
}

// OrderRequest represents the request payload for creating an order.
type OrderRequest struct {
	Customer CustomerRequest `json:"customer"`
	Items    []CartLine      `json:"items"`
	Notes    string          `json:"notes,omitempty"`
}

// StatusRequest represents the payload of PATCH /orders/{id}/status.
type StatusRequest struct {
	Status OrderStatus `json:"status"`
}
