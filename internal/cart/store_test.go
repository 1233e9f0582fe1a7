package cart

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/pos-register/internal/catalog"
	"github.com/diewo77/pos-register/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.CartLine{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

var apple = catalog.Product{Name: "Apple", Price: 50}

func TestAddOrIncrementAccumulates(t *testing.T) {
	s := NewStore(setupTestDB(t))

	for _, qty := range []int{2, 1, 0, -5} { // 0 and -5 coerce to 1
		if err := s.AddOrIncrement("A1", apple, qty); err != nil {
			t.Fatalf("add qty=%d: %v", qty, err)
		}
	}

	lines, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	if lines[0].Qty != 5 {
		t.Errorf("expected qty 2+1+1+1=5, got %d", lines[0].Qty)
	}
	if lines[0].Name != "Apple" || lines[0].Price != 50 {
		t.Errorf("expected product snapshot on line, got %+v", lines[0])
	}
}

func TestDecrementRemovesAtZero(t *testing.T) {
	s := NewStore(setupTestDB(t))
	if err := s.AddOrIncrement("A1", apple, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := s.Decrement("A1"); err != nil {
		t.Fatalf("dec: %v", err)
	}
	lines, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected quantity-1 line to be removed, got %+v", lines)
	}
}

func TestDecrementAbsentBarcodeIsNoop(t *testing.T) {
	s := NewStore(setupTestDB(t))
	if err := s.Decrement("missing"); err != nil {
		t.Fatalf("decrement of absent barcode should not error: %v", err)
	}
}

func TestIncrementAbsentBarcodeIsNoop(t *testing.T) {
	s := NewStore(setupTestDB(t))
	if err := s.Increment("missing"); err != nil {
		t.Fatalf("increment of absent barcode should not error: %v", err)
	}
	lines, _ := s.List()
	if len(lines) != 0 {
		t.Fatalf("increment must not create lines, got %+v", lines)
	}
}

func TestTotal(t *testing.T) {
	s := NewStore(setupTestDB(t))

	got, err := s.Total()
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if got != 0 {
		t.Errorf("empty cart total = %d, want 0", got)
	}

	if err := s.AddOrIncrement("A1", apple, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.AddOrIncrement("B2", catalog.Product{Name: "Banana", Price: 10}, 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	got, err = s.Total()
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if want := 2*50 + 3*10; got != want {
		t.Errorf("total = %d, want %d", got, want)
	}
}

func TestDeleteAndClear(t *testing.T) {
	s := NewStore(setupTestDB(t))
	_ = s.AddOrIncrement("A1", apple, 1)
	_ = s.AddOrIncrement("B2", catalog.Product{Name: "Banana", Price: 10}, 1)

	if err := s.Delete("A1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete("A1"); err != nil {
		t.Fatalf("delete of absent barcode should not error: %v", err)
	}
	lines, _ := s.List()
	if len(lines) != 1 || lines[0].Barcode != "B2" {
		t.Fatalf("expected only B2 left, got %+v", lines)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	total, _ := s.Total()
	if total != 0 {
		t.Errorf("total after clear = %d, want 0", total)
	}
}
