package validate

import "fmt"

// FailureLevel is the severity of a single validation result.
type FailureLevel int

const (
	LevelInfo FailureLevel = iota
	LevelWarning
	LevelError
)

// String returns the uppercase level name.
func (l FailureLevel) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("FailureLevel(%d)", int(l))
	}
}

// ParseFailureLevel converts a level name (case-sensitive, uppercase) into a
// FailureLevel.
func ParseFailureLevel(s string) (FailureLevel, error) {
	switch s {
	case "INFO":
		return LevelInfo, nil
	case "WARNING":
		return LevelWarning, nil
	case "ERROR":
		return LevelError, nil
	default:
		return 0, fmt.Errorf("unknown failure level %q", s)
	}
}

// Result is one classified diagnostic produced by a validator. It is
// immutable once created.
type Result struct {
	Level         FailureLevel
	Message       string
	ValidatorType string
}

// HasLevelAtOrAbove reports whether any result meets the threshold. Callers
// use this to turn a result list into a pass/fail decision.
func HasLevelAtOrAbove(results []Result, threshold FailureLevel) bool {
	for _, r := range results {
		if r.Level >= threshold {
			return true
		}
	}
	return false
}
