package models

import "strings"

// DangerLevel is the outcome of a screening. It is derived from the answers and never stored.
type DangerLevel string

const (
	DangerLow    DangerLevel = "low"
	DangerMedium DangerLevel = "medium"
	DangerHigh   DangerLevel = "high"
)

// Valid reports whether l is one of the known levels.
func (l DangerLevel) Valid() bool {
	return l == DangerLow || l == DangerMedium || l == DangerHigh
}

// Upper returns the level as shown in reports, e.g. "HIGH".
func (l DangerLevel) Upper() string {
	return strings.ToUpper(string(l))
}
