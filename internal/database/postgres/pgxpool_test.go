package postgres

import (
	"testing"

	"resume-tailor/internal/config"
)

func TestDSN(t *testing.T) {
	got := DSN(config.DatabaseConfig{
		DBHost:     "db",
		DBPort:     "5432",
		DBUser:     "tailor",
		DBPassword: "p@ss word's",
		DBName:     "tailor",
		DBSSLMode:  "disable",
	})
	want := `host=db port=5432 user=tailor password='p@ss word\'s' dbname=tailor sslmode=disable`
	if got != want {
		t.Fatalf("unexpected dsn:\n got %s\nwant %s", got, want)
	}
}

func TestDSN_OmitsEmpty(t *testing.T) {
	if got := DSN(config.DatabaseConfig{DBHost: "localhost", DBSSLMode: "disable"}); got != "host=localhost sslmode=disable" {
		t.Fatalf("unexpected dsn %q", got)
	}
}
