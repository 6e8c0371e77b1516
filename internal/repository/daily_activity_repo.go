package repository

import (
	"errors"

	"control-asistencia/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DailyActivityRepository interface {
	GetByEmployeeAndDate(employeeID uint, date string) (*models.DailyActivity, error)
	ExistsForDate(employeeID uint, date string) (bool, error)
	Upsert(activity *models.DailyActivity) (*models.DailyActivity, error)
	GetAllNewestFirst() ([]*models.DailyActivity, error)
}

type GormDailyActivityRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormDailyActivityRepository(db *gorm.DB) (*GormDailyActivityRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.DailyActivity{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate daily_activities table")
		return nil, err
	}

	return &GormDailyActivityRepository{db: db, logger: logger}, nil
}

func (r *GormDailyActivityRepository) GetByEmployeeAndDate(employeeID uint, date string) (*models.DailyActivity, error) {
	var activity models.DailyActivity
	result := r.db.Where("employee_id = ? AND date = ?", employeeID, date).First(&activity)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get daily activity")
		return nil, result.Error
	}

	return &activity, nil
}

func (r *GormDailyActivityRepository) ExistsForDate(employeeID uint, date string) (bool, error) {
	var count int64
	result := r.db.Model(&models.DailyActivity{}).
		Where("employee_id = ? AND date = ?", employeeID, date).
		Count(&count)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to check daily activity")
		return false, result.Error
	}

	return count > 0, nil
}

// Upsert stores the day's declaration; a second submission for the same
// (employee, date) overwrites project, activity and time.
func (r *GormDailyActivityRepository) Upsert(activity *models.DailyActivity) (*models.DailyActivity, error) {
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employee_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"project", "activity", "time", "updated_at"}),
	}).Create(activity)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to upsert daily activity")
		return nil, result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"employee_id": activity.EmployeeID,
		"date":        activity.Date,
		"project":     activity.Project,
	}).Info("Daily activity stored")

	return r.GetByEmployeeAndDate(activity.EmployeeID, activity.Date)
}

func (r *GormDailyActivityRepository) GetAllNewestFirst() ([]*models.DailyActivity, error) {
	var activities []*models.DailyActivity
	result := r.db.Preload("Employee").Order("date DESC, time DESC").Find(&activities)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get daily activities")
		return nil, result.Error
	}

	return activities, nil
}
