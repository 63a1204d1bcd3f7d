package timetable

import "math"

// Chronological converts academic blocks into chronological hours.
func (c Calendar) Chronological(blocks int) float64 {
	return float64(blocks*c.BlockMinutes) / 60
}

// Admits reports whether a teacher already holding assignedBlocks can take
// deltaBlocks more without exceeding contractedHours. The comparison is made
// in whole minutes so boundaries such as 58 blocks of 45 minutes against 44
// hours are exact.
func (c Calendar) Admits(assignedBlocks, deltaBlocks int, contractedHours float64) bool {
	if deltaBlocks < 0 {
		deltaBlocks = 0
	}
	used := (assignedBlocks + deltaBlocks) * c.BlockMinutes
	return float64(used) <= contractedMinutes(contractedHours)
}

// MaxBlocks returns the largest number of blocks that fits in contractedHours.
func (c Calendar) MaxBlocks(contractedHours float64) int {
	if c.BlockMinutes <= 0 || contractedHours <= 0 {
		return 0
	}
	return int(contractedMinutes(contractedHours)) / c.BlockMinutes
}

// Utilization returns the share of contractedHours used, as a percentage.
func Utilization(assignedHours, contractedHours float64) float64 {
	if contractedHours <= 0 {
		return 0
	}
	return math.Round(assignedHours/contractedHours*10000) / 100
}

// contract values come from a numeric column and may carry float noise
func contractedMinutes(hours float64) float64 {
	return math.Round(hours*60*1000) / 1000
}
