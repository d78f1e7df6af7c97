package repository

import "strings"

// IsUniqueViolation matches the duplicate-key error text of both the
// MySQL driver and the sqlite driver used in tests. Concurrent imports
// racing on the same username land here and are downgraded to a
// per-row error by the caller.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
