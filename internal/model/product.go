package model

// DefaultProductImage is used when an upsert payload carries no image.
const DefaultProductImage = "/images/produto1.jpeg"

// Product represents a bulk product sold by weight in the catalogue.
type Product struct {
	ID           string  `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	PricePer100g float64 `json:"pricePer100g" db:"price_per_100g"`
	Image        string  `json:"image" db:"image"`
	Active       bool    `json:"active" db:"active"`
}

// ProductRequest represents the admin upsert payload.
// Pointer fields distinguish an omitted value from a zero value.
type ProductRequest struct {
	ID           string   `json:"id" validate:"required"`
	Name         string   `json:"name" validate:"required"`
	PricePer100g *float64 `json:"pricePer100g" validate:"omitempty,gte=0,lte=100000"`
	Image        string   `json:"image"`
	Active       *bool    `json:"active"`
}

// ActiveRequest represents the payload of PATCH /products/{id}/active.
type ActiveRequest struct {
	Active bool `json:"active"`
}
