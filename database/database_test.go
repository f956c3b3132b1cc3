package database

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestDialector(t *testing.T) {
	tests := []struct {
		driver  string
		name    string
		wantErr bool
	}{
		{"sqlite", "sqlite", false},
		{"postgres", "postgres", false},
		{"memory", "", true},
		{"redis", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			v := viper.New()
			v.Set("storage.driver", tt.driver)
			v.Set("database.sqlite_path", ":memory:")
			d, err := Dialector(v)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s", tt.driver)
				}
				return
			}
			if err != nil {
				t.Fatalf("dialector: %v", err)
			}
			if d.Name() != tt.name {
				t.Fatalf("name = %q, want %q", d.Name(), tt.name)
			}
		})
	}
}

func TestPostgresDSNDefaults(t *testing.T) {
	v := viper.New()
	v.Set("database.host", "db")
	v.Set("database.port", 5432)
	dsn := postgresDSN(v)
	for _, want := range []string{"host=db", "port=5432", "sslmode=disable", "TimeZone=UTC"} {
		if !strings.Contains(dsn, want) {
			t.Fatalf("dsn %q missing %q", dsn, want)
		}
	}
}

func TestMigrateSQLite(t *testing.T) {
	v := viper.New()
	v.Set("storage.driver", "sqlite")
	v.Set("database.sqlite_path", "file:migrate_test?mode=memory&cache=shared")
	db := New(v)
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if !db.Migrator().HasTable("kv_entries") {
		t.Fatal("kv_entries table missing")
	}
}
