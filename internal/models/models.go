package models

import "time"

// CartLine is one scanned product in the shared register cart. Name and
// Price are snapshots taken from the catalog when the line is first scanned;
// they are not re-synced if the catalog file changes later.
type CartLine struct {
	Barcode string `gorm:"primaryKey"`
	Name    string
	Price   int // minor currency unit
	Qty     int
}

// Order is an append-only record of a completed checkout. Rows are written
// exactly once by the payment-verification transaction and never updated.
type Order struct {
	ID          uint   `gorm:"primaryKey"`
	OrderNumber string `gorm:"unique"`
	Total       int
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	Status      string    `gorm:"default:active"`
}
