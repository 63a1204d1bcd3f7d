package timetable

import (
	"errors"
	"fmt"
	"sort"
)

// ErrMalformedRange marks ranges that cannot be reduced to whole grid blocks.
var ErrMalformedRange = errors.New("malformed range")

// RangeError reports why a range or block selection was rejected.
type RangeError struct {
	Weekday Weekday
	Reason  string
}

func (e *RangeError) Error() string {
	if e.Weekday.Valid() {
		return fmt.Sprintf("%s: %s", e.Weekday, e.Reason)
	}
	return e.Reason
}

// Unwrap lets callers match ErrMalformedRange.
func (e *RangeError) Unwrap() error {
	return ErrMalformedRange
}

// Malformed builds a RangeError for day.
func Malformed(day Weekday, format string, args ...interface{}) error {
	return &RangeError{Weekday: day, Reason: fmt.Sprintf(format, args...)}
}

// BlockSet maps each weekday to the block indices selected on it.
type BlockSet map[Weekday][]int

// Count returns the number of distinct selected blocks.
func (s BlockSet) Count() int {
	total := 0
	for _, indices := range s {
		total += len(uniqueSorted(indices))
	}
	return total
}

// Contains reports whether block idx on day is selected.
func (s BlockSet) Contains(day Weekday, idx int) bool {
	for _, candidate := range s[day] {
		if candidate == idx {
			return true
		}
	}
	return false
}

// Decompose splits a range into the block indices it covers, in order.
func (c Calendar) Decompose(r Range) ([]int, error) {
	if !r.Weekday.Valid() {
		return nil, Malformed(r.Weekday, "unknown weekday %d", int(r.Weekday))
	}
	length := r.Duration()
	if length <= 0 {
		return nil, Malformed(r.Weekday, "range %s-%s has no positive length", FormatClock(r.StartMin), FormatClock(r.EndMin))
	}
	if length%c.BlockMinutes != 0 {
		return nil, Malformed(r.Weekday, "range %s-%s is not a multiple of %d minutes", FormatClock(r.StartMin), FormatClock(r.EndMin), c.BlockMinutes)
	}
	first, ok := c.BlockIndex(r.StartMin)
	if !ok {
		return nil, Malformed(r.Weekday, "range start %s is not a block boundary", FormatClock(r.StartMin))
	}
	if r.EndMin > c.DayEnd() {
		return nil, Malformed(r.Weekday, "range end %s is after the last block (%s)", FormatClock(r.EndMin), FormatClock(c.DayEnd()))
	}

	count := length / c.BlockMinutes
	indices := make([]int, count)
	for i := range indices {
		indices[i] = first + i
	}
	return indices, nil
}

// DecomposeAll decomposes every range into a single selection. A block
// covered by more than one range is rejected.
func (c Calendar) DecomposeAll(ranges []Range) (BlockSet, error) {
	selection := make(BlockSet)
	seen := make(map[Weekday]map[int]bool)
	for _, r := range ranges {
		indices, err := c.Decompose(r)
		if err != nil {
			return nil, err
		}
		if seen[r.Weekday] == nil {
			seen[r.Weekday] = make(map[int]bool)
		}
		for _, idx := range indices {
			if seen[r.Weekday][idx] {
				return nil, Malformed(r.Weekday, "block %s is covered by more than one range", FormatClock(c.BlockStart(idx)))
			}
			seen[r.Weekday][idx] = true
			selection[r.Weekday] = append(selection[r.Weekday], idx)
		}
	}
	for day := range selection {
		sort.Ints(selection[day])
	}
	return selection, nil
}

// Select merges requested ranges with explicitly selected blocks. A block
// requested more than once is malformed.
func (c Calendar) Select(ranges []Range, blocks BlockSet) (BlockSet, error) {
	selection, err := c.DecomposeAll(ranges)
	if err != nil {
		return nil, err
	}
	for day, indices := range blocks {
		if len(indices) > 0 && !day.Valid() {
			return nil, Malformed(day, "unknown weekday %d", int(day))
		}
	}
	for _, day := range Weekdays {
		if len(blocks[day]) == 0 {
			continue
		}
		for _, idx := range blocks[day] {
			if !c.ValidBlock(idx) {
				return nil, Malformed(day, "block index %d outside of 0..%d", idx, c.BlocksPerDay-1)
			}
			if selection.Contains(day, idx) {
				return nil, Malformed(day, "block %s is requested more than once", FormatClock(c.BlockStart(idx)))
			}
			selection[day] = append(selection[day], idx)
		}
		sort.Ints(selection[day])
	}
	return selection, nil
}

// Aggregate merges selected blocks into the minimal list of contiguous
// ranges, ordered by weekday then start. Duplicate indices collapse.
func (c Calendar) Aggregate(selection BlockSet) ([]Range, error) {
	for day, indices := range selection {
		if len(indices) > 0 && !day.Valid() {
			return nil, Malformed(day, "unknown weekday %d", int(day))
		}
		for _, idx := range indices {
			if !c.ValidBlock(idx) {
				return nil, Malformed(day, "block index %d outside of 0..%d", idx, c.BlocksPerDay-1)
			}
		}
	}

	ranges := make([]Range, 0)
	for _, day := range Weekdays {
		indices := uniqueSorted(selection[day])
		if len(indices) == 0 {
			continue
		}
		runStart := indices[0]
		prev := indices[0]
		for _, idx := range indices[1:] {
			if idx == prev+1 {
				prev = idx
				continue
			}
			ranges = append(ranges, c.run(day, runStart, prev))
			runStart, prev = idx, idx
		}
		ranges = append(ranges, c.run(day, runStart, prev))
	}
	return ranges, nil
}

func (c Calendar) run(day Weekday, first, last int) Range {
	return Range{
		Weekday:  day,
		StartMin: c.BlockStart(first),
		EndMin:   c.AddBlockDuration(c.BlockStart(last)),
	}
}

func uniqueSorted(indices []int) []int {
	if len(indices) == 0 {
		return nil
	}
	out := append([]int(nil), indices...)
	sort.Ints(out)
	n := 1
	for i := 1; i < len(out); i++ {
		if out[i] != out[n-1] {
			out[n] = out[i]
			n++
		}
	}
	return out[:n]
}
