package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern safely invalidates cache pattern with logging
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete safely deletes cache keys with logging
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateRosterCache drops cached roster listings after a student or
// teacher write.
func InvalidateRosterCache(ctx context.Context, cm *CacheManager, entity string) {
	SafeInvalidatePattern(ctx, cm.Roster, fmt.Sprintf("%s:*", entity))
	SafeInvalidatePattern(ctx, cm.Stats, "*")
}

// InvalidatePrivilegeCache drops the cached privilege set for a role.
func InvalidatePrivilegeCache(ctx context.Context, cm *CacheManager, role string) {
	SafeDelete(ctx, cm.Privilege, fmt.Sprintf("role:%s", role))
	SafeInvalidatePattern(ctx, cm.Privilege, "list:*")
}

// InvalidateAttendanceCache drops register existence checks and stats after
// a bulk save or delete touches a teacher's register for a date.
func InvalidateAttendanceCache(ctx context.Context, cm *CacheManager, markedBy, date string) {
	SafeDelete(ctx, cm.Exists, fmt.Sprintf("register:%s:%s", markedBy, date))
	SafeInvalidatePattern(ctx, cm.Stats, "attendance:*")
}
