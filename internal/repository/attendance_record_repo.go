package repository

import (
	"errors"

	"control-asistencia/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrDuplicateRecord is returned when the daily-key unique index rejects a
// second daily-unique record for the same employee, type and date. With
// TranslateError enabled the race loser sees this instead of a raw SQLite
// constraint message.
var ErrDuplicateRecord = errors.New("attendance record already exists for this date")

type AttendanceRecordRepository interface {
	Create(record *models.AttendanceRecord) error
	ExistsForDate(employeeID, typeID uint, date string) (bool, error)
	GetByEmployeeAndDate(employeeID uint, date string) ([]*models.AttendanceRecord, error)
	GetAllOrdered() ([]*models.AttendanceRecord, error)
	GetAllNewestFirst() ([]*models.AttendanceRecord, error)
}

type GormAttendanceRecordRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormAttendanceRecordRepository(db *gorm.DB) (*GormAttendanceRecordRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.AttendanceRecord{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate attendance_records table")
		return nil, err
	}

	return &GormAttendanceRecordRepository{db: db, logger: logger}, nil
}

func (r *GormAttendanceRecordRepository) Create(record *models.AttendanceRecord) error {
	r.logger.WithFields(logrus.Fields{
		"employee_id": record.EmployeeID,
		"type_id":     record.TypeID,
		"date":        record.Date,
		"time":        record.Time,
	}).Info("Creating attendance record")

	result := r.db.Create(record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			r.logger.WithFields(logrus.Fields{
				"employee_id": record.EmployeeID,
				"type_id":     record.TypeID,
				"date":        record.Date,
			}).Warn("Duplicate attendance record rejected by constraint")
			return ErrDuplicateRecord
		}
		r.logger.WithError(result.Error).Error("Failed to create attendance record")
		return result.Error
	}

	return nil
}

func (r *GormAttendanceRecordRepository) ExistsForDate(employeeID, typeID uint, date string) (bool, error) {
	var count int64
	result := r.db.Model(&models.AttendanceRecord{}).
		Where("employee_id = ? AND type_id = ? AND date = ?", employeeID, typeID, date).
		Count(&count)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to check existing attendance record")
		return false, result.Error
	}

	return count > 0, nil
}

func (r *GormAttendanceRecordRepository) GetByEmployeeAndDate(employeeID uint, date string) ([]*models.AttendanceRecord, error) {
	var records []*models.AttendanceRecord
	result := r.db.Preload("Type").
		Where("employee_id = ? AND date = ?", employeeID, date).
		Order("time").
		Find(&records)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get attendance records by employee and date")
		return nil, result.Error
	}

	return records, nil
}

// GetAllOrdered returns every record ordered for summary grouping:
// employee, then date, then time of day.
func (r *GormAttendanceRecordRepository) GetAllOrdered() ([]*models.AttendanceRecord, error) {
	var records []*models.AttendanceRecord
	result := r.db.Preload("Employee").Preload("Type").
		Order("employee_id, date, time").
		Find(&records)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get ordered attendance records")
		return nil, result.Error
	}

	return records, nil
}

// GetAllNewestFirst feeds the raw attendance export.
func (r *GormAttendanceRecordRepository) GetAllNewestFirst() ([]*models.AttendanceRecord, error) {
	var records []*models.AttendanceRecord
	result := r.db.Preload("Employee").Preload("Type").
		Order("date DESC, time DESC").
		Find(&records)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get attendance records")
		return nil, result.Error
	}

	return records, nil
}
