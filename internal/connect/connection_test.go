package connect

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/joshua-takyi/eventhub/internal/config"
	"github.com/joshua-takyi/eventhub/internal/models"
	"gorm.io/gorm"
)

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"app.db", "app.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"},
		{"file:app.db?cache=shared", "file:app.db?cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"},
		{"app.db?_pragma=busy_timeout(100)", "app.db?_pragma=busy_timeout(100)"},
	}
	for _, tt := range tests {
		if got := sqliteDSN(tt.in); got != tt.want {
			t.Errorf("sqliteDSN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDialectorRejectsUnknownDriver(t *testing.T) {
	if _, err := dialector("oracle", "dsn"); err == nil {
		t.Error("expected error for unknown driver")
	}
}

func TestOpenDatabaseSQLite(t *testing.T) {
	cfg := &config.Config{
		Environment:    "test",
		DatabaseDriver: "sqlite",
		DatabaseURL:    filepath.Join(t.TempDir(), "eventhub.db"),
	}
	db, err := OpenDatabase(cfg)
	if err != nil {
		t.Fatalf("OpenDatabase: %v", err)
	}
	defer func() {
		if err := CloseDatabase(db); err != nil {
			t.Errorf("CloseDatabase: %v", err)
		}
	}()

	for _, table := range []any{&models.User{}, &models.Category{}, &models.Event{}, &models.Registration{}} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("expected table for %T to be migrated", table)
		}
	}
}

func TestMongoDBConnectOptional(t *testing.T) {
	client, err := MongoDBConnect(&config.Config{})
	if err != nil || client != nil {
		t.Fatalf("expected no client without a URI, got %v, %v", client, err)
	}
	if err := MongoDBDisconnect(nil); err != nil {
		t.Errorf("MongoDBDisconnect(nil): %v", err)
	}
}

func TestGormLoggerSkipsRecordNotFound(t *testing.T) {
	var buf bytes.Buffer
	l := newGormLogger(slog.NewJSONHandler(&buf, nil), &config.Config{Environment: "production"})
	query := func() (string, int64) { return "SELECT * FROM categories", 0 }

	l.Trace(context.Background(), time.Now(), query, gorm.ErrRecordNotFound)
	if buf.Len() != 0 {
		t.Fatalf("record not found should not be logged, got %s", buf.String())
	}

	l.Trace(context.Background(), time.Now(), query, errors.New("disk I/O error"))
	out := buf.String()
	if !strings.Contains(out, "disk I/O error") || !strings.Contains(out, `"level":"WARN"`) {
		t.Errorf("expected a structured warn line, got %s", out)
	}
	if strings.Contains(out, "\x1b[") || strings.Contains(out, "\u001b") {
		t.Errorf("log line should not carry colour codes: %s", out)
	}
}
