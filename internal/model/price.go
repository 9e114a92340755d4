package model

import "time"

// PricePoint is a single price observation for one asset.
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
}
