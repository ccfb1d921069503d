package postgres

import (
	"fmt"

	"gorm.io/gorm"
)

// handleDBError wraps database errors with the failed operation while
// preserving gorm sentinel errors for errors.Is checks upstream.
func handleDBError(err error, operation string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s failed: %w", operation, err)
}

// getDB returns the transaction handle when one is active
func getDB(db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}

// rate returns present/total as a percentage rounded to two decimals, or 0
// when the register is empty.
func rate(present, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(int64(float64(present)/float64(total)*10000+0.5)) / 100
}
