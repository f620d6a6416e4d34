package dbtranslation

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func TestNewBunDB(t *testing.T) {
	sqldb, err := sql.Open("sqlite3", "file:dbtest?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })

	db, err := NewBunDB(sqldb, "sqlite3")
	if err != nil {
		t.Fatalf("NewBunDB(sqlite3) error = %v", err)
	}
	if db == nil {
		t.Fatal("NewBunDB() returned nil db")
	}

	if _, err := NewBunDB(sqldb, "oracle"); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
