package repository

import (
	"errors"

	"control-asistencia/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AdminUserRepository interface {
	GetByUsername(username string) (*models.AdminUser, error)
	Upsert(user *models.AdminUser) error
}

type GormAdminUserRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormAdminUserRepository(db *gorm.DB) (*GormAdminUserRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.AdminUser{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate admin_users table")
		return nil, err
	}

	return &GormAdminUserRepository{db: db, logger: logger}, nil
}

func (r *GormAdminUserRepository) GetByUsername(username string) (*models.AdminUser, error) {
	var user models.AdminUser
	result := r.db.Where("username = ?", username).First(&user)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get admin user")
		return nil, result.Error
	}

	return &user, nil
}

// Upsert keeps the bootstrap admin current: password changes in the
// environment take effect on the next start.
func (r *GormAdminUserRepository) Upsert(user *models.AdminUser) error {
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash", "updated_at"}),
	}).Create(user)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to upsert admin user")
		return result.Error
	}

	return nil
}
