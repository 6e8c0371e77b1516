package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"control-asistencia/internal/models"
	"control-asistencia/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testClock is a settable clock so tests can cross midnight on demand.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

type testEnv struct {
	db           *gorm.DB
	clock        *testClock
	employeeRepo repository.EmployeeRepository
	typeRepo     repository.AttendanceTypeRepository
	recordRepo   repository.AttendanceRecordRepository
	bindingRepo  repository.DeviceBindingRepository
	activityRepo repository.DailyActivityRepository

	devices    *DeviceService
	attendance *AttendanceService
	activities *ActivityService
	reports    *ReportService
}

// newTestEnv opens a per-test in-memory database and wires the full service
// stack over it, with the catalog seeded.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	employeeRepo, err := repository.NewGormEmployeeRepository(db)
	if err != nil {
		t.Fatalf("employee repo: %v", err)
	}
	typeRepo, err := repository.NewGormAttendanceTypeRepository(db)
	if err != nil {
		t.Fatalf("type repo: %v", err)
	}
	recordRepo, err := repository.NewGormAttendanceRecordRepository(db)
	if err != nil {
		t.Fatalf("record repo: %v", err)
	}
	bindingRepo, err := repository.NewGormDeviceBindingRepository(db)
	if err != nil {
		t.Fatalf("binding repo: %v", err)
	}
	activityRepo, err := repository.NewGormDailyActivityRepository(db)
	if err != nil {
		t.Fatalf("activity repo: %v", err)
	}

	clk := &testClock{now: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)}

	devices := NewDeviceService(bindingRepo, employeeRepo)

	return &testEnv{
		db:           db,
		clock:        clk,
		employeeRepo: employeeRepo,
		typeRepo:     typeRepo,
		recordRepo:   recordRepo,
		bindingRepo:  bindingRepo,
		activityRepo: activityRepo,
		devices:      devices,
		attendance:   NewAttendanceService(recordRepo, employeeRepo, typeRepo, devices, clk),
		activities:   NewActivityService(activityRepo, employeeRepo, clk),
		reports:      NewReportService(recordRepo, activityRepo),
	}
}

func (e *testEnv) addEmployee(t *testing.T, firstName, lastName string, dni int64) *models.Employee {
	t.Helper()

	employee := &models.Employee{
		FirstName: firstName,
		LastName:  lastName,
		DNI:       dni,
		Contract:  "Planilla",
	}
	if err := e.employeeRepo.Create(employee); err != nil {
		t.Fatalf("failed to create employee: %v", err)
	}

	return employee
}

func (e *testEnv) typeID(t *testing.T, name string) uint {
	t.Helper()

	row, err := e.typeRepo.GetByName(name)
	if err != nil || row == nil {
		t.Fatalf("attendance type %q not seeded: %v", name, err)
	}

	return row.ID
}
