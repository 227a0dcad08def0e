package models

import "time"

// Dimensions describes a product's physical size.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Product is a catalog item. FinalPrice is derived from Price and
// DiscountPercent at creation time. Images holds URLs of additional photos
// beyond the main ImageURL. Dimensions is nil when not provided.
type Product struct {
	ID              int64
	Name            string
	Description     string
	Price           float64
	DiscountPercent float64
	FinalPrice      float64
	Category        string
	Brand           string
	Stock           int
	Rating          float64
	ReviewsCount    int
	Tags            []string
	Color           string
	Size            string
	Weight          float64
	Dimensions      *Dimensions
	ImageURL        string
	Images          []string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
