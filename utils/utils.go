package utils

import (
	"fmt"
	"math"
	"time"
)

// Terminal color codes.
const (
	DefaultColor = "\x1b[39m"
	SuccessColor = "\x1b[92m"
	ErrorColor   = "\x1b[31m"
)

// FormatTime formats time.Duration output to a human readable value.
func FormatTime(d time.Duration) string {
	if d.Seconds() < 60.0 {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	if d.Minutes() < 60.0 {
		remainingSeconds := math.Mod(d.Seconds(), 60)
		return fmt.Sprintf("%dm:%ds", int64(d.Minutes()), int64(remainingSeconds))
	}
	remainingMinutes := math.Mod(d.Minutes(), 60)
	remainingSeconds := math.Mod(d.Seconds(), 60)
	return fmt.Sprintf("%dh:%dm:%ds",
		int64(d.Hours()), int64(remainingMinutes), int64(remainingSeconds))
}

// Decorate wraps the message in the given terminal color when enabled.
func Decorate(msg, color string, enabled bool) string {
	if !enabled {
		return msg
	}
	return color + msg + DefaultColor
}
