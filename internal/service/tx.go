package service

import (
	"context"

	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction when db is available, or calls
// fn(nil) directly when db is nil (unit test mode with stub repositories).
// This is the unit-of-work boundary: every mutating service method wraps its
// side effects in exactly one runTx call; an error from fn rolls everything
// back and propagates to the caller unchanged. Read-only methods never call it.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
