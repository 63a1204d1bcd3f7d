// Package timetable holds the pure scheduling rules: the weekly block grid,
// range arithmetic, overlap detection, block aggregation and cell
// classification. Nothing in this package performs I/O.
package timetable

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/noah-isme/timetable-api/pkg/config"
)

// Weekday is a working day of the weekly grid, 1 (Monday) through 5 (Friday).
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
)

// Weekdays lists the working days in grid order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

var weekdayNames = map[Weekday]string{
	Monday:    "MONDAY",
	Tuesday:   "TUESDAY",
	Wednesday: "WEDNESDAY",
	Thursday:  "THURSDAY",
	Friday:    "FRIDAY",
}

// legacy rows were stored with Spanish labels
var weekdayAliases = map[string]Weekday{
	"MONDAY":    Monday,
	"TUESDAY":   Tuesday,
	"WEDNESDAY": Wednesday,
	"THURSDAY":  Thursday,
	"FRIDAY":    Friday,
	"LUNES":     Monday,
	"MARTES":    Tuesday,
	"MIERCOLES": Wednesday,
	"MIÉRCOLES": Wednesday,
	"JUEVES":    Thursday,
	"VIERNES":   Friday,
}

// Valid reports whether d is one of the working days.
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Friday
}

func (d Weekday) String() string {
	if name, ok := weekdayNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Weekday(%d)", int(d))
}

// MarshalJSON renders the weekday name.
func (d Weekday) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts either a weekday name or its numeric index.
func (d *Weekday) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var (
		parsed Weekday
		err    error
	)
	switch v := raw.(type) {
	case string:
		parsed, err = ParseWeekday(v)
	case float64:
		parsed, err = ParseWeekday(strconv.Itoa(int(v)))
	default:
		err = fmt.Errorf("invalid weekday %s", string(data))
	}
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseWeekday resolves a weekday name, legacy alias or index.
func ParseWeekday(raw string) (Weekday, error) {
	key := strings.ToUpper(strings.TrimSpace(raw))
	if day, ok := weekdayAliases[key]; ok {
		return day, nil
	}
	if n, err := strconv.Atoi(key); err == nil && Weekday(n).Valid() {
		return Weekday(n), nil
	}
	return 0, fmt.Errorf("unknown weekday %q", raw)
}

const minutesPerDay = 24 * 60

// Calendar is the discrete block grid shared by every day of the week.
type Calendar struct {
	DayStart     int
	BlockMinutes int
	BlocksPerDay int
}

// DefaultCalendar returns the 45-minute grid starting at 08:30 with 18 blocks.
func DefaultCalendar() Calendar {
	return Calendar{DayStart: 8*60 + 30, BlockMinutes: 45, BlocksPerDay: 18}
}

// NewCalendar builds a calendar from configuration, falling back to defaults for zero values.
func NewCalendar(cfg config.CalendarConfig) (Calendar, error) {
	cal := DefaultCalendar()
	if cfg.DayStart != "" {
		start, err := NormalizeTime(cfg.DayStart)
		if err != nil {
			return Calendar{}, fmt.Errorf("calendar day start: %w", err)
		}
		cal.DayStart = start
	}
	if cfg.BlockMinutes > 0 {
		cal.BlockMinutes = cfg.BlockMinutes
	}
	if cfg.BlocksPerDay > 0 {
		cal.BlocksPerDay = cfg.BlocksPerDay
	}
	if cal.DayEnd() > minutesPerDay {
		return Calendar{}, fmt.Errorf("calendar grid ends after midnight (%d blocks of %d minutes from %s)", cal.BlocksPerDay, cal.BlockMinutes, FormatClock(cal.DayStart))
	}
	return cal, nil
}

// DayEnd is the minute at which the last block of the day ends.
func (c Calendar) DayEnd() int {
	return c.DayStart + c.BlocksPerDay*c.BlockMinutes
}

// ValidBlock reports whether idx addresses a block of the grid.
func (c Calendar) ValidBlock(idx int) bool {
	return idx >= 0 && idx < c.BlocksPerDay
}

// BlockStart returns the start minute of block idx.
func (c Calendar) BlockStart(idx int) int {
	return c.DayStart + idx*c.BlockMinutes
}

// AddBlockDuration returns the end minute of a block starting at start.
func (c Calendar) AddBlockDuration(start int) int {
	return start + c.BlockMinutes
}

// BlockIndex returns the index of the block starting exactly at minute.
func (c Calendar) BlockIndex(minute int) (int, bool) {
	offset := minute - c.DayStart
	if offset < 0 || offset%c.BlockMinutes != 0 {
		return 0, false
	}
	idx := offset / c.BlockMinutes
	return idx, c.ValidBlock(idx)
}

// BlockRange returns the range covered by block idx on day.
func (c Calendar) BlockRange(day Weekday, idx int) Range {
	start := c.BlockStart(idx)
	return Range{Weekday: day, StartMin: start, EndMin: c.AddBlockDuration(start)}
}

// ConversionFactor is the number of chronological hours in one academic block.
func (c Calendar) ConversionFactor() float64 {
	return float64(c.BlockMinutes) / 60
}

// Labels lists the start label of every block.
func (c Calendar) Labels() []string {
	labels := make([]string, c.BlocksPerDay)
	for i := range labels {
		labels[i] = FormatClock(c.BlockStart(i))
	}
	return labels
}

// NormalizeTime converts any supported time-of-day representation into
// minutes since midnight. Clock labels ("08:30", "8:30:00"), elapsed
// durations (time.Duration, "8h30m"), driver values (time.Time, []byte) and
// whole minute counts all resolve to the same value. Seconds are truncated.
func NormalizeTime(value interface{}) (int, error) {
	var minutes int
	switch v := value.(type) {
	case int:
		minutes = v
	case int64:
		minutes = int(v)
	case int32:
		minutes = int(v)
	case float64:
		// JSON numbers
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("time value %v is not a whole minute", v)
		}
		minutes = int(v)
	case time.Duration:
		minutes = int(v / time.Minute)
	case time.Time:
		minutes = v.Hour()*60 + v.Minute()
	case []byte:
		return NormalizeTime(string(v))
	case string:
		parsed, err := parseTimeLabel(v)
		if err != nil {
			return 0, err
		}
		minutes = parsed
	case nil:
		return 0, fmt.Errorf("empty time value")
	default:
		return 0, fmt.Errorf("unsupported time value %T", value)
	}
	if minutes < 0 || minutes > minutesPerDay {
		return 0, fmt.Errorf("time value %v outside of a day", value)
	}
	return minutes, nil
}

func parseTimeLabel(raw string) (int, error) {
	label := strings.TrimSpace(raw)
	if label == "" {
		return 0, fmt.Errorf("empty time label")
	}
	if !strings.Contains(label, ":") {
		d, err := time.ParseDuration(label)
		if err != nil {
			return 0, fmt.Errorf("invalid time label %q", raw)
		}
		return int(d / time.Minute), nil
	}

	parts := strings.Split(label, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time label %q", raw)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 24 {
		return 0, fmt.Errorf("invalid hour in %q", raw)
	}
	mins, err := strconv.Atoi(parts[1])
	if err != nil || mins < 0 || mins > 59 {
		return 0, fmt.Errorf("invalid minute in %q", raw)
	}
	if len(parts) == 3 {
		// postgres may render fractional seconds
		if _, err := strconv.ParseFloat(parts[2], 64); err != nil {
			return 0, fmt.Errorf("invalid second in %q", raw)
		}
	}
	return hours*60 + mins, nil
}

// FormatClock renders minutes since midnight as HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
