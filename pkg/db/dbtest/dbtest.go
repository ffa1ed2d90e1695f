// Package dbtest opens throwaway SQLite databases for repository and service tests.
package dbtest

import (
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns an in-memory database migrated with models. The pool is
// pinned to one connection so every statement sees the same database and
// concurrent transactions serialize the way row locks would.
func Open(t testing.TB, models ...any) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// SQLite has no row locks; strip FOR UPDATE so locking queries still run.
	if err := db.Callback().Query().Before("gorm:query").Register("dbtest:strip_for_update", stripForUpdate); err != nil {
		t.Fatalf("register query callback: %v", err)
	}
	if err := db.Callback().Row().Before("gorm:row").Register("dbtest:strip_for_update_row", stripForUpdate); err != nil {
		t.Fatalf("register row callback: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			t.Fatalf("auto migrate: %v", err)
		}
	}
	return db
}

func stripForUpdate(d *gorm.DB) {
	sql := d.Statement.SQL.String()
	if !strings.Contains(sql, "FOR UPDATE") {
		return
	}
	sql = strings.ReplaceAll(sql, "FOR UPDATE SKIP LOCKED", "")
	sql = strings.ReplaceAll(sql, "FOR UPDATE", "")
	d.Statement.SQL.Reset()
	d.Statement.SQL.WriteString(sql)
}
