package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"anoa.com/kitaplik/internal/bootstrap"
	"anoa.com/kitaplik/internal/catalog"
	"anoa.com/kitaplik/pkg/clock"
	"anoa.com/kitaplik/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Epoch is the default start of the manual test clock: a Wednesday.
var Epoch = time.Date(2024, time.March, 6, 10, 0, 0, 0, time.UTC)

// DB opens an isolated in-memory SQLite database with every entity migrated
// and the default catalog seeded. The pool holds one connection, so code under
// test must route every query inside a transaction through that transaction.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
		NowFunc:                                  func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := bootstrap.Migrate(db); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	cat := Catalog(tb)
	if err := bootstrap.SeedBadges(db, cat); err != nil {
		tb.Fatalf("seed badges: %v", err)
	}
	return db
}

func Catalog(tb testing.TB) *catalog.Catalog {
	tb.Helper()
	cat, err := catalog.Default()
	if err != nil {
		tb.Fatalf("catalog: %v", err)
	}
	return cat
}

func Clock() *clock.Manual {
	return clock.NewManual(Epoch)
}

func Logger() *logger.Logger {
	return logger.NewNop()
}

func Ctx() context.Context {
	return context.Background()
}
