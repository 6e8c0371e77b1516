package service

import (
	"fmt"
	"strings"

	"control-asistencia/internal/models"
	"control-asistencia/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// EmployeeService is the read-mostly directory plus the lazily generated
// per-employee QR code. The code payload is a URL; rendering it as an image
// happens elsewhere.
type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
	baseURL      string
	logger       *logrus.Logger
}

func NewEmployeeService(employeeRepo repository.EmployeeRepository, baseURL string) *EmployeeService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &EmployeeService{
		employeeRepo: employeeRepo,
		baseURL:      strings.TrimRight(baseURL, "/"),
		logger:       logger,
	}
}

func (s *EmployeeService) GetByID(id uint) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetByID(id)
	if err != nil {
		return nil, internalError(err)
	}
	if employee == nil {
		return nil, notFoundError("employee %d not found", id)
	}
	return employee, nil
}

func (s *EmployeeService) GetByDNI(dni int64) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetByDNI(dni)
	if err != nil {
		return nil, internalError(err)
	}
	if employee == nil {
		return nil, notFoundError("employee with DNI %d not found", dni)
	}
	return employee, nil
}

// GetByQRCode resolves a scanned code to its employee.
func (s *EmployeeService) GetByQRCode(code string) (*models.Employee, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, validationError("a QR code is required")
	}

	employee, err := s.employeeRepo.GetByQRCode(code)
	if err != nil {
		return nil, internalError(err)
	}
	if employee == nil {
		return nil, notFoundError("no employee for that QR code")
	}

	return employee, nil
}

func (s *EmployeeService) List() ([]*models.Employee, error) {
	employees, err := s.employeeRepo.GetAll()
	if err != nil {
		return nil, internalError(err)
	}
	return employees, nil
}

// EnsureQRCode returns the employee's code, generating and storing one the
// first time it is asked for.
func (s *EmployeeService) EnsureQRCode(id uint) (*models.Employee, error) {
	employee, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if employee.HasQRCode() {
		return employee, nil
	}

	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	code := fmt.Sprintf("EMP%d%s", employee.DNI, suffix)

	if err := s.employeeRepo.SetQRCode(employee.ID, code); err != nil {
		return nil, internalError(err)
	}
	employee.QRCode = &code

	s.logger.WithFields(logrus.Fields{
		"employee_id": employee.ID,
		"qr_code":     code,
	}).Info("QR code generated")

	return employee, nil
}

// QRPayloadURL is the URL a printed code points the scanner at.
func (s *EmployeeService) QRPayloadURL(employee *models.Employee) string {
	if !employee.HasQRCode() {
		return ""
	}
	return fmt.Sprintf("%s/qr/%s/", s.baseURL, *employee.QRCode)
}

// ImportEntry is one row of a directory bulk load.
type ImportEntry struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	DNI       int64  `json:"dni" binding:"required"`
	Contract  string `json:"contract"`
}

// Import bulk-upserts the directory keyed on DNI: known DNIs are refreshed,
// unknown ones created.
func (s *EmployeeService) Import(entries []ImportEntry) (int64, error) {
	if len(entries) == 0 {
		return 0, validationError("no employees to import")
	}

	employees := make([]*models.Employee, 0, len(entries))
	for _, e := range entries {
		employees = append(employees, &models.Employee{
			FirstName: strings.TrimSpace(e.FirstName),
			LastName:  strings.TrimSpace(e.LastName),
			DNI:       e.DNI,
			Contract:  strings.TrimSpace(e.Contract),
		})
	}

	count, err := s.employeeRepo.UpsertByDNI(employees)
	if err != nil {
		return 0, internalError(err)
	}

	return count, nil
}
