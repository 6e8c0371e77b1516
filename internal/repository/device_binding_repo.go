package repository

import (
	"errors"

	"control-asistencia/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DeviceBindingRepository interface {
	GetByFingerprint(fingerprint string) (*models.DeviceBinding, error)
	Upsert(employeeID uint, fingerprint string) (*models.DeviceBinding, error)
	DeleteByFingerprint(fingerprint string) (int64, error)
	GetAll() ([]*models.DeviceBinding, error)
}

type GormDeviceBindingRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormDeviceBindingRepository(db *gorm.DB) (*GormDeviceBindingRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.DeviceBinding{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate device_bindings table")
		return nil, err
	}

	return &GormDeviceBindingRepository{db: db, logger: logger}, nil
}

func (r *GormDeviceBindingRepository) GetByFingerprint(fingerprint string) (*models.DeviceBinding, error) {
	var binding models.DeviceBinding
	result := r.db.Preload("Employee").
		Where("fingerprint = ?", fingerprint).
		First(&binding)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get device binding")
		return nil, result.Error
	}

	return &binding, nil
}

// Upsert creates the binding or, when the fingerprint row already exists,
// reassigns it to the given employee. Last write wins; the unique index on
// fingerprint guarantees a single row either way.
func (r *GormDeviceBindingRepository) Upsert(employeeID uint, fingerprint string) (*models.DeviceBinding, error) {
	binding := &models.DeviceBinding{
		EmployeeID:  employeeID,
		Fingerprint: fingerprint,
	}

	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "fingerprint"}},
		DoUpdates: clause.AssignmentColumns([]string{"employee_id"}),
	}).Create(binding)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to upsert device binding")
		return nil, result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"employee_id": employeeID,
		"fingerprint": fingerprint,
	}).Info("Device binding stored")

	return r.GetByFingerprint(fingerprint)
}

func (r *GormDeviceBindingRepository) DeleteByFingerprint(fingerprint string) (int64, error) {
	result := r.db.Where("fingerprint = ?", fingerprint).Delete(&models.DeviceBinding{})

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete device binding")
		return 0, result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"fingerprint": fingerprint,
		"deleted":     result.RowsAffected,
	}).Info("Device binding removed")

	return result.RowsAffected, nil
}

func (r *GormDeviceBindingRepository) GetAll() ([]*models.DeviceBinding, error) {
	var bindings []*models.DeviceBinding
	result := r.db.Preload("Employee").Order("created_at").Find(&bindings)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get device bindings")
		return nil, result.Error
	}

	return bindings, nil
}
