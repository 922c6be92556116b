package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("final Open() failed: %v", err)
	}
	defer s.Close()

	var name string
	err = s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='kv'").Scan(&name)
	if err != nil {
		t.Errorf("table kv not found after idempotent opens: %v", err)
	}
}

func TestOpen_Pragmas(t *testing.T) {
	s := createTestSQLite(t)

	if err := s.verifyPragma("journal_mode", "wal"); err != nil {
		t.Error(err)
	}
	if err := s.verifyPragma("synchronous", "1"); err != nil {
		t.Error(err)
	}
	if err := s.verifyPragma("busy_timeout", "5000"); err != nil {
		t.Error(err)
	}
	if err := s.verifyPragma("user_version", "1"); err != nil {
		t.Error(err)
	}
}

func TestOpen_MigratesV0Database(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.db")

	// Build a pre-revision database by hand.
	raw, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("sql.Open() failed: %v", err)
	}
	if _, err := raw.Exec(`CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		t.Fatalf("create legacy table: %v", err)
	}
	if _, err := raw.Exec(`INSERT INTO kv (key, value) VALUES ('calendarEvents', '[]')`); err != nil {
		t.Fatalf("seed legacy row: %v", err)
	}
	raw.Close()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() on legacy database failed: %v", err)
	}
	defer s.Close()

	rev, err := s.Revision(context.Background(), "calendarEvents")
	if err != nil {
		t.Fatalf("Revision() failed: %v", err)
	}
	if rev != 1 {
		t.Errorf("revision = %d, expected 1 for migrated row", rev)
	}
	if err := s.verifyPragma("user_version", "1"); err != nil {
		t.Error(err)
	}
}

func TestSQLite_GetPut(t *testing.T) {
	ctx := context.Background()
	s := createTestSQLite(t)

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok:%v err:%v, expected absent", ok, err)
	}

	if err := s.Put(ctx, "k", "v1"); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if err := s.Put(ctx, "k", "v2"); err != nil {
		t.Fatalf("second Put() failed: %v", err)
	}

	v, ok, err := s.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get(k) = ok:%v err:%v", ok, err)
	}
	if v != "v2" {
		t.Errorf("Get(k) = %q, expected %q", v, "v2")
	}

	rev, err := s.Revision(ctx, "k")
	if err != nil {
		t.Fatalf("Revision() failed: %v", err)
	}
	if rev != 2 {
		t.Errorf("revision = %d, expected 2", rev)
	}
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := s1.Put(ctx, EventsKey, `[]`); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s2.Close()

	v, ok, err := s2.Get(ctx, EventsKey)
	if err != nil || !ok || v != "[]" {
		t.Errorf("Get() after reopen = %q ok:%v err:%v", v, ok, err)
	}
}

func TestSQLite_InMemory(t *testing.T) {
	ctx := context.Background()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer s.Close()

	if err := s.Put(ctx, "k", "v"); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if v, ok, _ := s.Get(ctx, "k"); !ok || v != "v" {
		t.Errorf("Get() = %q ok:%v", v, ok)
	}
}

func TestSQLite_CloseNil(t *testing.T) {
	s := &SQLite{}
	if err := s.Close(); err != nil {
		t.Errorf("Close() on zero SQLite = %v", err)
	}
}
