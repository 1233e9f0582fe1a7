package db

import (
	"path/filepath"
	"testing"
)

func TestConnectAndMigrateCreatesTables(t *testing.T) {
	dbConn, err := ConnectAndMigrate(filepath.Join(t.TempDir(), "pos.db"))
	if err != nil {
		t.Fatalf("connect and migrate: %v", err)
	}
	for _, table := range []string{"cart_lines", "orders"} {
		if !dbConn.Migrator().HasTable(table) {
			t.Errorf("missing table %s", table)
		}
	}
}

func TestConnectAndMigrateEmptyDSN(t *testing.T) {
	if _, err := ConnectAndMigrate(""); err == nil {
		t.Fatal("expected error for empty DSN")
	}
}
