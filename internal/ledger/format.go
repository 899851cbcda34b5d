package ledger

import (
	"fmt"

	"github.com/oneiric/dreamtemple/pkg/models"
)

// RemainingTime returns the milliseconds until the effect expires, never
// negative. Strictly decreasing in now until expiry, then exactly 0.
func RemainingTime(e *models.StatusEffect, now int64) int64 {
	remaining := e.ExpiresAt - now
	if remaining < 0 {
		return 0
	}
	return remaining
}

// FormatRemaining renders the remaining time as the two largest applicable
// units: "2d 4h", "3h 12m", "45m 10s", or "30s". A fully elapsed effect
// renders as "Expired".
func FormatRemaining(e *models.StatusEffect, now int64) string {
	ms := RemainingTime(e, now)
	if ms == 0 {
		return "Expired"
	}

	totalSeconds := ms / 1000
	days := totalSeconds / 86400
	hours := (totalSeconds % 86400) / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
