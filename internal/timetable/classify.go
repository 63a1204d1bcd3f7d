package timetable

// CellStatus is the editability state of one grid cell while a module's
// schedule is being drafted.
type CellStatus string

const (
	// CellLocked is occupied by another module and not selected for this one.
	CellLocked CellStatus = "LOCKED"
	// CellConflict is selected for this module and occupied by another one.
	CellConflict CellStatus = "CONFLICT"
	CellSelected  CellStatus = "SELECTED"
	CellAvailable CellStatus = "AVAILABLE"
	// CellUnavailable is free but closed by the teacher's preference grid.
	CellUnavailable CellStatus = "UNAVAILABLE"
)

// Availability is a teacher's soft preference grid. Missing cells are open.
type Availability map[Weekday]map[int]bool

// IsOpen reports whether the teacher accepts block idx on day.
func (a Availability) IsOpen(day Weekday, idx int) bool {
	blocks, ok := a[day]
	if !ok {
		return true
	}
	open, ok := blocks[idx]
	if !ok {
		return true
	}
	return open
}

// Set records the preference for one cell.
func (a Availability) Set(day Weekday, idx int, open bool) {
	if a[day] == nil {
		a[day] = make(map[int]bool)
	}
	a[day][idx] = open
}

// GridContext carries what is needed to classify the cells of a draft.
type GridContext struct {
	ModuleID     string
	Selected     BlockSet
	Occupied     []OccupiedRange
	Availability Availability
}

// Cell is the classification of one weekday/block pair.
type Cell struct {
	Weekday    Weekday        `json:"weekday"`
	Block      int            `json:"block"`
	Start      string         `json:"start"`
	End        string         `json:"end"`
	Status     CellStatus     `json:"status"`
	OccupiedBy *OccupiedRange `json:"occupied_by,omitempty"`
}

// Occupant returns the first range held by another module that overlaps
// block idx on day.
func (c Calendar) Occupant(ctx GridContext, day Weekday, idx int) (OccupiedRange, bool) {
	block := c.BlockRange(day, idx)
	for _, held := range ctx.Occupied {
		if held.ModuleID != "" && held.ModuleID == ctx.ModuleID {
			continue
		}
		if Overlaps(block, held.Range) {
			return held, true
		}
	}
	return OccupiedRange{}, false
}

// Classify returns the status of block idx on day. Occupancy by another
// module wins over the teacher's preference, and a selected block that is
// also occupied is a conflict. Cells outside the grid are unavailable.
func (c Calendar) Classify(ctx GridContext, day Weekday, idx int) CellStatus {
	if !day.Valid() || !c.ValidBlock(idx) {
		return CellUnavailable
	}
	_, occupied := c.Occupant(ctx, day, idx)
	selected := ctx.Selected.Contains(day, idx)
	switch {
	case occupied && selected:
		return CellConflict
	case occupied:
		return CellLocked
	case selected:
		return CellSelected
	case ctx.Availability.IsOpen(day, idx):
		return CellAvailable
	default:
		return CellUnavailable
	}
}

// ClassifyCell classifies one block and attaches its occupant, if any.
func (c Calendar) ClassifyCell(ctx GridContext, day Weekday, idx int) Cell {
	start := c.BlockStart(idx)
	cell := Cell{
		Weekday: day,
		Block:   idx,
		Start:   FormatClock(start),
		End:     FormatClock(c.AddBlockDuration(start)),
		Status:  c.Classify(ctx, day, idx),
	}
	if held, ok := c.Occupant(ctx, day, idx); ok {
		cell.OccupiedBy = &held
	}
	return cell
}

// ClassifyGrid classifies every cell, weekday by weekday.
func (c Calendar) ClassifyGrid(ctx GridContext) []Cell {
	cells := make([]Cell, 0, len(Weekdays)*c.BlocksPerDay)
	for _, day := range Weekdays {
		for idx := 0; idx < c.BlocksPerDay; idx++ {
			cells = append(cells, c.ClassifyCell(ctx, day, idx))
		}
	}
	return cells
}
