package timetable

import "fmt"

// Range is a contiguous interval [StartMin, EndMin) on one weekday.
type Range struct {
	Weekday  Weekday `json:"weekday"`
	StartMin int     `json:"start_min"`
	EndMin   int     `json:"end_min"`
}

// Duration returns the range length in minutes.
func (r Range) Duration() int {
	return r.EndMin - r.StartMin
}

func (r Range) String() string {
	return fmt.Sprintf("%s %s-%s", r.Weekday, FormatClock(r.StartMin), FormatClock(r.EndMin))
}

// OccupiedRange is a committed range together with the module holding it.
type OccupiedRange struct {
	Range
	ModuleID string `json:"module_id"`
	Label    string `json:"label"`
}

// Conflict describes the first occupied range hit by a candidate.
type Conflict struct {
	ModuleID  string `json:"module_id"`
	Label     string `json:"label"`
	Occupied  Range  `json:"occupied"`
	Candidate Range  `json:"candidate"`
}

// Overlaps reports whether two ranges share any minute. Ranges are half-open,
// so one ending exactly when the other starts does not overlap.
func Overlaps(a, b Range) bool {
	return a.Weekday == b.Weekday && a.StartMin < b.EndMin && b.StartMin < a.EndMin
}

// FirstConflict scans candidates in order against occupied and returns the
// first overlapping pair.
func FirstConflict(candidates []Range, occupied []OccupiedRange) (Conflict, bool) {
	for _, candidate := range candidates {
		for _, held := range occupied {
			if Overlaps(candidate, held.Range) {
				return Conflict{
					ModuleID:  held.ModuleID,
					Label:     held.Label,
					Occupied:  held.Range,
					Candidate: candidate,
				}, true
			}
		}
	}
	return Conflict{}, false
}
