package opportunity

import (
	"errors"
	"fmt"
	"time"

	"depin-monitor/models"
)

var ErrInvalidWindow = errors.New("invalid opportunity window")

// IsWindowActive reports whether now falls inside w. Both bounds are inclusive.
func IsWindowActive(w models.OpportunityWindow, now time.Time) bool {
	return !now.Before(w.StartTime) && !now.After(w.EndTime)
}

// ValidateWindow rejects windows that could never be active or pay nothing extra.
func ValidateWindow(w models.OpportunityWindow) error {
	if !w.EndTime.After(w.StartTime) {
		return fmt.Errorf("%w: %s ends at %s, not after start %s", ErrInvalidWindow,
			w.OpportunityID, w.EndTime.Format(time.RFC3339), w.StartTime.Format(time.RFC3339))
	}
	if w.RewardMultiplier <= 0 {
		return fmt.Errorf("%w: %s has non-positive reward multiplier %v", ErrInvalidWindow, w.OpportunityID, w.RewardMultiplier)
	}
	return nil
}

// Active keeps the windows that are active at now, in input order.
func Active(windows []models.OpportunityWindow, now time.Time) []models.OpportunityWindow {
	active := make([]models.OpportunityWindow, 0, len(windows))
	for _, w := range windows {
		if IsWindowActive(w, now) {
			active = append(active, w)
		}
	}
	return active
}

// Remaining is the time left until w ends, or zero when w is not active.
func Remaining(w models.OpportunityWindow, now time.Time) time.Duration {
	if !IsWindowActive(w, now) {
		return 0
	}
	return w.EndTime.Sub(now)
}

// FormatRemaining renders d as "2h 15m" or "15m", rounded down to the minute.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
