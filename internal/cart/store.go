// Package cart persists the single shared register cart. There is exactly
// one cart for the process; every mutation is its own transaction, but no
// lock spans a whole checkout flow.
package cart

import (
	"gorm.io/gorm"

	"github.com/diewo77/pos-register/internal/catalog"
	"github.com/diewo77/pos-register/internal/models"
)

type Store struct {
	DB *gorm.DB
}

func NewStore(db *gorm.DB) *Store { return &Store{DB: db} }

// AddOrIncrement adds qty of the product under barcode, creating the line
// with a price snapshot on first scan. qty below 1 is coerced to 1.
func (s *Store) AddOrIncrement(barcode string, p catalog.Product, qty int) error {
	if qty < 1 {
		qty = 1
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var line models.CartLine
		err := tx.First(&line, "barcode = ?", barcode).Error
		switch {
		case err == nil:
			return tx.Model(&models.CartLine{}).
				Where("barcode = ?", barcode).
				Update("qty", gorm.Expr("qty + ?", qty)).Error
		case err == gorm.ErrRecordNotFound:
			return tx.Create(&models.CartLine{
				Barcode: barcode,
				Name:    p.Name,
				Price:   p.Price,
				Qty:     qty,
			}).Error
		default:
			return err
		}
	})
}

// Increment bumps the quantity of an existing line by one. A barcode that
// is not in the cart is a no-op, not an error.
func (s *Store) Increment(barcode string) error {
	return s.DB.Model(&models.CartLine{}).
		Where("barcode = ?", barcode).
		Update("qty", gorm.Expr("qty + 1")).Error
}

// Decrement lowers the quantity by one and removes the line once it would
// drop below one, so a quantity-1 line disappears from the cart.
func (s *Store) Decrement(barcode string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.CartLine{}).
			Where("barcode = ?", barcode).
			Update("qty", gorm.Expr("qty - 1")).Error; err != nil {
			return err
		}
		return tx.Where("qty <= 0").Delete(&models.CartLine{}).Error
	})
}

// Delete removes the line unconditionally; absent barcodes are a no-op.
func (s *Store) Delete(barcode string) error {
	return s.DB.Where("barcode = ?", barcode).Delete(&models.CartLine{}).Error
}

// List returns every cart line in insertion order.
func (s *Store) List() ([]models.CartLine, error) {
	var lines []models.CartLine
	if err := s.DB.Order("rowid").Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// Total returns the cart subtotal in the minor currency unit; an empty
// cart totals zero.
func (s *Store) Total() (int, error) {
	return total(s.DB)
}

// Clear empties the cart. Outside tests it only runs as part of the
// post-payment commit transaction.
func (s *Store) Clear() error {
	return clearAll(s.DB)
}

// total and clearAll are split out so the checkout commit can run them
// inside its own transaction handle.
func total(db *gorm.DB) (int, error) {
	var sum *int
	if err := db.Model(&models.CartLine{}).
		Select("SUM(price * qty)").Scan(&sum).Error; err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}

func clearAll(db *gorm.DB) error {
	return db.Where("1 = 1").Delete(&models.CartLine{}).Error
}

// TotalTx computes the subtotal through an existing transaction handle.
func TotalTx(tx *gorm.DB) (int, error) { return total(tx) }

// ClearTx empties the cart through an existing transaction handle.
func ClearTx(tx *gorm.DB) error { return clearAll(tx) }
