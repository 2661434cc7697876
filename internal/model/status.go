package model

import "strings"

// ConditionLevel classifies a free-text condition for display.
type ConditionLevel string

// Condition levels
const (
	LevelOK       ConditionLevel = "ok"
	LevelWarning  ConditionLevel = "warning"
	LevelCritical ConditionLevel = "critical"
	LevelBlocked  ConditionLevel = "blocked"
)

// LevelOf derives the display level from a condition value.
// Matching is by substring, so learned values like "Leicht verschmutzt"
// classify the same way as the built-in ones.
func LevelOf(condition string) ConditionLevel {
	switch {
	case strings.Contains(condition, "Leicht"):
		return LevelWarning
	case strings.Contains(condition, "Stark"):
		return LevelCritical
	case strings.Contains(condition, "Nicht"):
		return LevelBlocked
	default:
		return LevelOK
	}
}

// DisplayCondition returns the condition or UnknownCondition when empty.
func DisplayCondition(condition string) string {
	if condition == "" {
		return UnknownCondition
	}
	return condition
}

// ScanStatus says whether a record's folder currently holds scans.
// It is never stored; it is read from the filesystem at query time.
type ScanStatus string

// Scan statuses
const (
	ScanMissing ScanStatus = "missing"
	ScanEmpty   ScanStatus = "empty"
	ScanPresent ScanStatus = "scanned"
	ScanUnknown ScanStatus = "unknown"
)

// Symbol returns the list-view marker for the status.
func (s ScanStatus) Symbol() string {
	switch s {
	case ScanPresent:
		return "✅"
	case ScanEmpty:
		return "⚪"
	case ScanUnknown:
		return "❓"
	default:
		return "⚠️"
	}
}

// Listing is a record as shown in the list view.
type Listing struct {
	Record
	Level ConditionLevel `json:"level"`
	Scan  ScanStatus     `json:"scan"`
}
