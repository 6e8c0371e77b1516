package repository

import (
	"errors"

	"control-asistencia/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EmployeeRepository interface {
	Create(employee *models.Employee) error
	GetByID(id uint) (*models.Employee, error)
	GetByDNI(dni int64) (*models.Employee, error)
	GetByQRCode(code string) (*models.Employee, error)
	GetAll() ([]*models.Employee, error)
	SetQRCode(id uint, code string) error
	UpsertByDNI(employees []*models.Employee) (int64, error)
	Count() (int64, error)
}

type GormEmployeeRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormEmployeeRepository(db *gorm.DB) (*GormEmployeeRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.Employee{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate employees table")
		return nil, err
	}

	return &GormEmployeeRepository{db: db, logger: logger}, nil
}

func (r *GormEmployeeRepository) Create(employee *models.Employee) error {
	result := r.db.Create(employee)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create employee")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":  employee.ID,
		"dni": employee.DNI,
	}).Info("Employee created")

	return nil
}

func (r *GormEmployeeRepository) GetByID(id uint) (*models.Employee, error) {
	var employee models.Employee
	result := r.db.First(&employee, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get employee by ID")
		return nil, result.Error
	}

	return &employee, nil
}

func (r *GormEmployeeRepository) GetByDNI(dni int64) (*models.Employee, error) {
	var employee models.Employee
	result := r.db.Where("dni = ?", dni).First(&employee)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get employee by DNI")
		return nil, result.Error
	}

	return &employee, nil
}

func (r *GormEmployeeRepository) GetByQRCode(code string) (*models.Employee, error) {
	var employee models.Employee
	result := r.db.Where("qr_code = ?", code).First(&employee)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get employee by QR code")
		return nil, result.Error
	}

	return &employee, nil
}

func (r *GormEmployeeRepository) GetAll() ([]*models.Employee, error) {
	var employees []*models.Employee
	result := r.db.Order("last_name, first_name").Find(&employees)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get employees")
		return nil, result.Error
	}

	return employees, nil
}

func (r *GormEmployeeRepository) SetQRCode(id uint, code string) error {
	result := r.db.Model(&models.Employee{}).
		Where("id = ?", id).
		Update("qr_code", code)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to set employee QR code")
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("employee not found")
	}

	return nil
}

// UpsertByDNI bulk-loads the directory: existing DNIs get their names and
// contract refreshed, new ones are created. Returns the number of rows
// touched.
func (r *GormEmployeeRepository) UpsertByDNI(employees []*models.Employee) (int64, error) {
	if len(employees) == 0 {
		return 0, nil
	}

	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "dni"}},
		DoUpdates: clause.AssignmentColumns([]string{"first_name", "last_name", "contract", "updated_at"}),
	}).Create(&employees)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to upsert employees")
		return 0, result.Error
	}

	r.logger.WithField("count", result.RowsAffected).Info("Employees imported")

	return result.RowsAffected, nil
}

func (r *GormEmployeeRepository) Count() (int64, error) {
	var count int64
	result := r.db.Model(&models.Employee{}).Count(&count)

	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
