package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/models"
	"github.com/noah-isme/timetable-api/internal/timetable"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
)

// memoryStore backs every repository the scheduling services read from.
type memoryStore struct {
	teachers     map[string]*models.Teacher
	rooms        map[string]*models.Room
	modules      map[string]*models.Module
	ranges       map[string][]models.ScheduleRange
	availability map[string]*models.TeacherAvailability

	replaceErr   error
	occupancyErr error
	replaceCalls int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		teachers:     map[string]*models.Teacher{},
		rooms:        map[string]*models.Room{},
		modules:      map[string]*models.Module{},
		ranges:       map[string][]models.ScheduleRange{},
		availability: map[string]*models.TeacherAvailability{},
	}
}

func strPtr(v string) *string { return &v }

func intPtr(v int) *int { return &v }

func (m *memoryStore) addTeacher(id string, contracted float64) {
	m.teachers[id] = &models.Teacher{ID: id, FullName: "Teacher " + id, ContractedHours: contracted, Active: true}
}

func (m *memoryStore) addRoom(id string) {
	m.rooms[id] = &models.Room{ID: id, Name: "Room " + id, Capacity: 30}
}

func (m *memoryStore) addModule(module models.Module) {
	cp := module
	if cp.Name == "" {
		cp.Name = "Module " + cp.ID
	}
	if cp.Code == "" {
		cp.Code = cp.ID
	}
	m.modules[cp.ID] = &cp
}

func (m *memoryStore) ListByModule(ctx context.Context, moduleID string) ([]models.ScheduleRange, error) {
	return append([]models.ScheduleRange(nil), m.ranges[moduleID]...), nil
}

func (m *memoryStore) ReplaceModuleRanges(ctx context.Context, assignment models.ModuleAssignment, ranges []models.ScheduleRange) error {
	m.replaceCalls++
	if m.replaceErr != nil {
		return m.replaceErr
	}
	module, ok := m.modules[assignment.ModuleID]
	if !ok {
		return sql.ErrNoRows
	}
	module.TeacherID = assignment.TeacherID
	module.RoomID = assignment.RoomID
	module.CareerID = assignment.CareerID
	module.SemesterNumber = assignment.SemesterNumber

	stored := make([]models.ScheduleRange, 0, len(ranges))
	for i, r := range ranges {
		r.ID = fmt.Sprintf("%s-r%d", assignment.ModuleID, i)
		r.ModuleID = assignment.ModuleID
		r.CreatedAt = time.Now()
		stored = append(stored, r)
	}
	m.ranges[assignment.ModuleID] = stored
	return nil
}

func (m *memoryStore) ListOccupied(ctx context.Context, key models.OccupancyKey, excludeModuleID string) ([]models.OccupiedRangeRow, error) {
	if m.occupancyErr != nil {
		return nil, m.occupancyErr
	}
	ids := make([]string, 0, len(m.modules))
	for id := range m.modules {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var rows []models.OccupiedRangeRow
	for _, id := range ids {
		module := m.modules[id]
		if id == excludeModuleID || !matchesKey(module, key) {
			continue
		}
		for _, r := range m.ranges[id] {
			rows = append(rows, models.OccupiedRangeRow{
				ModuleID:   id,
				ModuleName: module.Name,
				ModuleCode: module.Code,
				Weekday:    r.Weekday,
				StartMin:   r.StartMin,
				EndMin:     r.EndMin,
			})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Weekday != rows[j].Weekday {
			return rows[i].Weekday < rows[j].Weekday
		}
		return rows[i].StartMin < rows[j].StartMin
	})
	return rows, nil
}

func matchesKey(module *models.Module, key models.OccupancyKey) bool {
	switch key.Kind {
	case models.DimensionTeacher:
		return module.TeacherID != nil && *module.TeacherID == key.ID
	case models.DimensionRoom:
		return module.RoomID != nil && *module.RoomID == key.ID
	case models.DimensionParity:
		return module.CareerID != nil && *module.CareerID == key.ID && module.SemesterNumber > 0 &&
			models.Parity(module.SemesterNumber) != models.Parity(key.Semester)
	}
	return false
}

type memoryModules struct{ *memoryStore }

func (m memoryModules) FindByID(ctx context.Context, id string) (*models.Module, error) {
	module, ok := m.modules[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *module
	return &cp, nil
}

func (m memoryModules) SumBlocksByTeacher(ctx context.Context, teacherID, excludeModuleID string) (int, error) {
	total := 0
	for id, module := range m.modules {
		if id == excludeModuleID || module.TeacherID == nil || *module.TeacherID != teacherID {
			continue
		}
		total += module.RequiredBlocks()
	}
	return total, nil
}

type memoryTeachers struct{ *memoryStore }

func (m memoryTeachers) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	teacher, ok := m.teachers[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *teacher
	return &cp, nil
}

func (m memoryTeachers) Delete(ctx context.Context, id string) error {
	if _, ok := m.teachers[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.teachers, id)
	delete(m.availability, id)
	for _, module := range m.modules {
		if module.TeacherID != nil && *module.TeacherID == id {
			module.TeacherID = nil
		}
	}
	return nil
}

func (m memoryTeachers) GetByTeacher(ctx context.Context, teacherID string) (*models.TeacherAvailability, error) {
	stored, ok := m.availability[teacherID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *stored
	return &cp, nil
}

func (m memoryTeachers) Replace(ctx context.Context, availability *models.TeacherAvailability) error {
	cp := *availability
	m.availability[availability.TeacherID] = &cp
	return nil
}

type memoryRooms struct{ *memoryStore }

func (m memoryRooms) FindByID(ctx context.Context, id string) (*models.Room, error) {
	room, ok := m.rooms[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *room
	return &cp, nil
}

func (m memoryRooms) Delete(ctx context.Context, id string) error {
	if _, ok := m.rooms[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.rooms, id)
	for _, module := range m.modules {
		if module.RoomID != nil && *module.RoomID == id {
			module.RoomID = nil
		}
	}
	return nil
}

// memoryCache is an in-process CacheRepository.
type memoryCache struct {
	entries map[string][]byte
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := c.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.entries, key)
		c.deleted = append(c.deleted, key)
	}
	return nil
}

func (c *memoryCache) DeleteByPattern(ctx context.Context, pattern string) error {
	for key := range c.entries {
		delete(c.entries, key)
	}
	return nil
}

func newTestServices(store *memoryStore, cache *CacheService) (*AssignmentService, *GridService, *TeacherService) {
	cal := timetable.DefaultCalendar()
	occupancy := NewOccupancyService(store, zap.NewNop())
	workload := NewWorkloadService(memoryTeachers{store}, memoryModules{store}, cal, zap.NewNop())
	teachers := NewTeacherService(memoryTeachers{store}, memoryTeachers{store}, cache, cal, validator.New(), zap.NewNop())
	assignments := NewAssignmentService(memoryModules{store}, store, memoryRooms{store}, occupancy, workload, cache, NewMetricsService(), cal, validator.New(), zap.NewNop())
	grid := NewGridService(memoryModules{store}, occupancy, teachers, cal, validator.New(), zap.NewNop())
	return assignments, grid, teachers
}
