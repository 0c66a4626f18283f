package businessflow

import (
	"strconv"
	"strings"
	"time"

	"github.com/megaphone-app/megaphone/utils"
)

// ResolveWindow parses a lookback window expression like "7d" or "30d" and
// returns the number of days it covers. The expression is trimmed and
// case-insensitive; the day count must be between 1 and 365.
func ResolveWindow(window string) (int, error) {
	w := strings.ToLower(strings.TrimSpace(window))
	if !strings.HasSuffix(w, "d") {
		return 0, NewBusinessError("INVALID_WINDOW", "Window must be like 7d or 30d", ErrInvalidWindowFormat)
	}

	digits := strings.TrimSuffix(w, "d")
	if digits == "" {
		return 0, NewBusinessError("INVALID_WINDOW", "Window must be like 7d or 30d", ErrInvalidWindowFormat)
	}

	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, NewBusinessError("INVALID_WINDOW", "Window must be like 7d or 30d", ErrInvalidWindowFormat)
		}
	}

	days, err := strconv.Atoi(digits)
	if err != nil {
		return 0, NewBusinessError("INVALID_WINDOW", "Window must be like 7d or 30d", ErrInvalidWindowFormat)
	}

	if days < 1 || days > utils.MaxWindowDays {
		return 0, NewBusinessError("WINDOW_OUT_OF_RANGE", "Window days must be between 1 and 365", ErrWindowOutOfRange)
	}

	return days, nil
}

// WindowStart returns the UTC instant where a lookback window of the given
// number of days begins.
func WindowStart(days int) time.Time {
	return utils.UTCNow().AddDate(0, 0, -days)
}
