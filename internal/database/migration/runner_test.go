package migration

import (
	"errors"
	"testing"
	"testing/fstest"

	"resume-tailor/migrations"
)

func TestLoadMigrations_SortsAndFilters(t *testing.T) {
	src := fstest.MapFS{
		"V2__feedback.sql": {Data: []byte("CREATE TABLE b (id INT);")},
		"V1__init.sql":     {Data: []byte("  CREATE TABLE a (id INT);\n")},
		"README.md":        {Data: []byte("ignored")},
		"V3_bad.sql":       {Data: []byte("ignored")},
	}

	migs, err := loadMigrations(src)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) != 2 || migs[0].Version != 1 || migs[1].Version != 2 {
		t.Fatalf("unexpected migrations: %+v", migs)
	}
	if migs[0].Name != "init" || migs[0].SQL != "CREATE TABLE a (id INT);" {
		t.Fatalf("unexpected first migration: %+v", migs[0])
	}
}

func TestLoadMigrations_Errors(t *testing.T) {
	if _, err := loadMigrations(fstest.MapFS{"V1__empty.sql": {Data: []byte("  ")}}); err == nil {
		t.Fatalf("expected error for empty file")
	}
	dup := fstest.MapFS{
		"V1__a.sql":  {Data: []byte("SELECT 1;")},
		"V01__b.sql": {Data: []byte("SELECT 2;")},
	}
	if _, err := loadMigrations(dup); err == nil {
		t.Fatalf("expected duplicate version error")
	}
}

func TestFilterPending(t *testing.T) {
	migs := []Migration{{Version: 1, Checksum: "a"}, {Version: 2, Checksum: "b"}}

	pending, err := filterPending(migs, map[int64]appliedMigration{1: {Version: 1, Checksum: "a"}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(pending) != 1 || pending[0].Version != 2 {
		t.Fatalf("unexpected pending: %+v", pending)
	}

	_, err = filterPending(migs, map[int64]appliedMigration{1: {Version: 1, Checksum: "changed"}})
	if !errors.Is(err, ErrChecksumMismatch) {
		t.Fatalf("expected ErrChecksumMismatch, got %v", err)
	}
}

func TestEmbeddedMigrationsLoad(t *testing.T) {
	migs, err := loadMigrations(migrations.FS)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) == 0 || migs[0].Version != 1 {
		t.Fatalf("expected embedded V1 migration, got %+v", migs)
	}
}
