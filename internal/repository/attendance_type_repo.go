package repository

import (
	"errors"

	"control-asistencia/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AttendanceTypeRepository interface {
	GetByID(id uint) (*models.AttendanceType, error)
	GetByName(name string) (*models.AttendanceType, error)
	GetAll() ([]*models.AttendanceType, error)
}

type GormAttendanceTypeRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewGormAttendanceTypeRepository migrates and seeds the closed type
// catalog. Capability flags are fixed here, once, instead of being derived
// from the name on every call.
func NewGormAttendanceTypeRepository(db *gorm.DB) (*GormAttendanceTypeRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.AttendanceType{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate attendance_types table")
		return nil, err
	}

	repo := &GormAttendanceTypeRepository{db: db, logger: logger}
	if err := repo.seedCatalog(); err != nil {
		return nil, err
	}

	return repo, nil
}

func (r *GormAttendanceTypeRepository) seedCatalog() error {
	for _, name := range models.CatalogNames() {
		flags := models.CatalogFlags[name]
		row := models.AttendanceType{
			Name:                name,
			DailyUnique:         flags.DailyUnique,
			RequiresDescription: flags.RequiresDescription,
		}

		result := r.db.Where("name = ?", name).FirstOrCreate(&row)
		if result.Error != nil {
			r.logger.WithError(result.Error).WithField("name", name).
				Error("Failed to seed attendance type")
			return result.Error
		}

		// Existing rows may predate the flag columns; keep them current.
		if row.DailyUnique != flags.DailyUnique || row.RequiresDescription != flags.RequiresDescription {
			row.DailyUnique = flags.DailyUnique
			row.RequiresDescription = flags.RequiresDescription
			if err := r.db.Save(&row).Error; err != nil {
				return err
			}
		}
	}

	r.logger.WithField("types", len(models.CatalogNames())).Info("Attendance type catalog ready")

	return nil
}

func (r *GormAttendanceTypeRepository) GetByID(id uint) (*models.AttendanceType, error) {
	var attendanceType models.AttendanceType
	result := r.db.First(&attendanceType, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get attendance type by ID")
		return nil, result.Error
	}

	return &attendanceType, nil
}

func (r *GormAttendanceTypeRepository) GetByName(name string) (*models.AttendanceType, error) {
	var attendanceType models.AttendanceType
	result := r.db.Where("name = ?", name).First(&attendanceType)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get attendance type by name")
		return nil, result.Error
	}

	return &attendanceType, nil
}

func (r *GormAttendanceTypeRepository) GetAll() ([]*models.AttendanceType, error) {
	var types []*models.AttendanceType
	result := r.db.Order("id").Find(&types)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get attendance types")
		return nil, result.Error
	}

	return types, nil
}
