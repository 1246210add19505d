package repository

import "gorm.io/gorm"

// dayLockStatement returns the statement that serializes writers of one
// date for the dialect, or "" when the driver already has a single writer.
func dayLockStatement(dialect string) string {
	if dialect == "postgres" {
		return "SELECT pg_advisory_xact_lock(hashtext(?))"
	}
	return ""
}

// lockDay must run inside a transaction; the lock is released on commit or
// rollback.
func lockDay(tx *gorm.DB, date string) error {
	stmt := dayLockStatement(tx.Dialector.Name())
	if stmt == "" {
		return nil
	}
	return tx.Exec(stmt, date).Error
}
