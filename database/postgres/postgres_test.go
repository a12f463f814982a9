package postgres

import (
	"strings"
	"testing"
)

func TestDSNFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_USER", "face")
	t.Setenv("DB_PASSWORD", "p@ss")
	t.Setenv("DB_NAME", "geometry")
	t.Setenv("DB_SSLMODE", "")

	got := DSNFromEnv()
	want := "postgres://face:p%40ss@db:5432/geometry?sslmode=disable"
	if got != want {
		t.Errorf("DSNFromEnv() = %q, want %q", got, want)
	}
}

func TestSchemaEmbedded(t *testing.T) {
	for _, table := range []string{"operators", "profiles", "tracking_sessions", "click_events"} {
		if !strings.Contains(Schema, "CREATE TABLE IF NOT EXISTS "+table) {
			t.Errorf("schema is missing table %s", table)
		}
	}
}
