package service

import "math"

// Tier is the presentation band of the capacity indicator.
type Tier string

// Capacity tiers.
const (
	TierNormal   Tier = "normal"
	TierWarning  Tier = "warning"
	TierCritical Tier = "critical"
)

// CapacityReport describes how full the build room is.
type CapacityReport struct {
	Ready    int  `json:"ready"`
	Capacity int  `json:"capacity"`
	Percent  int  `json:"percent"`
	Tier     Tier `json:"tier"`
}

// Capacity computes the fill level from the number of requests ready for
// pickup. The percentage is rounded and clamped to [0, 100]; a non-positive
// capacity counts as full as soon as anything is ready.
func Capacity(ready, capacity int) CapacityReport {
	var pct int
	switch {
	case ready <= 0:
		pct = 0
	case capacity <= 0:
		pct = 100
	default:
		pct = int(math.Round(float64(ready) / float64(capacity) * 100))
	}
	pct = min(max(pct, 0), 100)

	return CapacityReport{
		Ready:    ready,
		Capacity: capacity,
		Percent:  pct,
		Tier:     tierFor(pct),
	}
}

func tierFor(pct int) Tier {
	switch {
	case pct > 80:
		return TierCritical
	case pct > 50:
		return TierWarning
	default:
		return TierNormal
	}
}
