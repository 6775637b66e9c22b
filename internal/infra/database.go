package infra

import (
	"fmt"

	"github.com/mathews-augusto-alves/library-api/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection with a bounded pool. Schema setup
// is separate: callers run RunMigrations once at startup.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return db, nil
}

// RunMigrations creates / updates the schema. Also used by integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Book{},
		&model.Person{},
		&model.User{},
		&model.Loan{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot handle.
// The partial unique index is a safety net under the availability flag: if two
// borrows race past the pre-checks, the second insert fails and the losing
// transaction rolls back instead of leaving two active loans on one book.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_loans_one_active_per_book
		     ON loans (book_id)
		     WHERE returned_at IS NULL`,
	}
	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
