package service

import (
	"errors"

	"control-asistencia/internal/clock"
	"control-asistencia/internal/models"
	"control-asistencia/internal/repository"

	"github.com/sirupsen/logrus"
)

type AttendanceService struct {
	recordRepo   repository.AttendanceRecordRepository
	employeeRepo repository.EmployeeRepository
	typeRepo     repository.AttendanceTypeRepository
	devices      *DeviceService
	clock        clock.Clock
	logger       *logrus.Logger
}

func NewAttendanceService(
	recordRepo repository.AttendanceRecordRepository,
	employeeRepo repository.EmployeeRepository,
	typeRepo repository.AttendanceTypeRepository,
	devices *DeviceService,
	clk clock.Clock,
) *AttendanceService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &AttendanceService{
		recordRepo:   recordRepo,
		employeeRepo: employeeRepo,
		typeRepo:     typeRepo,
		devices:      devices,
		clock:        clk,
		logger:       logger,
	}
}

// Register validates and stores one attendance event. Checks run in a fixed
// order: resolve employee and type, stamp local date/time, normalize the
// fingerprint, reject a repeat of a daily-unique type, reject a device
// bound to someone else, then persist. The duplicate check runs before the
// device check on purpose: a repeat submission from the employee's own
// phone must read as "already registered", not as a device conflict.
func (s *AttendanceService) Register(employeeID, typeID uint, description, fingerprint string) (*models.AttendanceRecord, error) {
	employee, err := s.employeeRepo.GetByID(employeeID)
	if err != nil {
		return nil, internalError(err)
	}
	if employee == nil {
		return nil, notFoundError("employee %d not found", employeeID)
	}

	attendanceType, err := s.typeRepo.GetByID(typeID)
	if err != nil {
		return nil, internalError(err)
	}
	if attendanceType == nil {
		return nil, notFoundError("attendance type %d not found", typeID)
	}

	now := s.clock.Now()
	date := now.Format(models.DateLayout)
	timeOfDay := now.Format(models.TimeLayout)

	fp := NormalizeFingerprint(fingerprint)

	if attendanceType.DailyUnique {
		exists, err := s.recordRepo.ExistsForDate(employee.ID, attendanceType.ID, date)
		if err != nil {
			return nil, internalError(err)
		}
		if exists {
			return nil, duplicateError("%q already registered today", attendanceType.Name)
		}
	}

	ownedByOther, err := s.devices.IsOwnedByOther(employee, fp)
	if err != nil {
		return nil, err
	}
	if ownedByOther {
		return nil, deviceConflictError("this device is bound to another employee")
	}

	record := &models.AttendanceRecord{
		EmployeeID:  employee.ID,
		TypeID:      attendanceType.ID,
		Date:        date,
		Time:        timeOfDay,
		Description: description,
		Fingerprint: fp,
	}
	if attendanceType.DailyUnique {
		key := models.BuildDailyKey(employee.ID, attendanceType.ID, date)
		record.DailyKey = &key
	}

	if err := s.recordRepo.Create(record); err != nil {
		// A concurrent registration can slip past the read above; the
		// unique index settles it and the loser gets the same outcome.
		if errors.Is(err, repository.ErrDuplicateRecord) {
			return nil, duplicateError("%q already registered today", attendanceType.Name)
		}
		return nil, internalError(err)
	}

	record.Employee = *employee
	record.Type = *attendanceType

	s.logger.WithFields(logrus.Fields{
		"employee_id": employee.ID,
		"type":        attendanceType.Name,
		"date":        date,
		"time":        timeOfDay,
	}).Info("Attendance registered")

	return record, nil
}

// RecordsFor returns an employee's records for a date, today when date is
// empty, ordered by time of day.
func (s *AttendanceService) RecordsFor(employeeID uint, date string) ([]*models.AttendanceRecord, error) {
	employee, err := s.employeeRepo.GetByID(employeeID)
	if err != nil {
		return nil, internalError(err)
	}
	if employee == nil {
		return nil, notFoundError("employee %d not found", employeeID)
	}

	if date == "" {
		date = s.clock.Now().Format(models.DateLayout)
	}

	records, err := s.recordRepo.GetByEmployeeAndDate(employee.ID, date)
	if err != nil {
		return nil, internalError(err)
	}

	return records, nil
}

// Today is the current calendar date in the configured zone.
func (s *AttendanceService) Today() string {
	return s.clock.Now().Format(models.DateLayout)
}

// Types exposes the closed catalog for the kiosk form.
func (s *AttendanceService) Types() ([]*models.AttendanceType, error) {
	types, err := s.typeRepo.GetAll()
	if err != nil {
		return nil, internalError(err)
	}
	return types, nil
}
