package scheduler

import (
	"fmt"
	"strings"
)

// Mode selects how package checks are scheduled.
type Mode string

const (
	// ModeSequential checks packages one by one in listing order.
	ModeSequential Mode = "sequential"
	// ModeConcurrent starts one goroutine per package with no limit.
	ModeConcurrent Mode = "concurrent"
	// ModePool runs at most Options.Concurrency checks at a time.
	ModePool Mode = "pool"
)

// DefaultMode is used when no mode is configured.
const DefaultMode = ModeConcurrent

// ParseMode parses a mode name case-insensitively.
//
// Parameters:
//   - s: Mode name; empty selects DefaultMode
//
// Returns:
//   - Mode: The parsed mode
//   - error: When s names no known mode
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultMode, nil
	case ModeSequential:
		return ModeSequential, nil
	case ModeConcurrent:
		return ModeConcurrent, nil
	case ModePool:
		return ModePool, nil
	default:
		return "", fmt.Errorf("unknown mode %q (expected sequential, concurrent or pool)", s)
	}
}
