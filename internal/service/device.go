package service

import (
	"strings"

	"control-asistencia/internal/models"
	"control-asistencia/internal/repository"

	"github.com/sirupsen/logrus"
)

// DeviceService is the binding registry between device fingerprints and
// employees. Every fingerprint coming from a client passes through
// NormalizeFingerprint before it is compared or stored.
type DeviceService struct {
	bindingRepo  repository.DeviceBindingRepository
	employeeRepo repository.EmployeeRepository
	logger       *logrus.Logger
}

func NewDeviceService(
	bindingRepo repository.DeviceBindingRepository,
	employeeRepo repository.EmployeeRepository,
) *DeviceService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &DeviceService{
		bindingRepo:  bindingRepo,
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

// NormalizeFingerprint trims the raw client value and treats the empty
// string and the literal junk tokens browsers send ("null", "none",
// "undefined", any casing) as no fingerprint at all.
func NormalizeFingerprint(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	switch strings.ToLower(s) {
	case "null", "none", "undefined":
		return nil
	}
	return &s
}

// Lookup resolves a fingerprint to its bound employee, or nil when the
// device is unknown.
func (s *DeviceService) Lookup(fingerprint string) (*models.Employee, error) {
	fp := NormalizeFingerprint(fingerprint)
	if fp == nil {
		return nil, nil
	}

	binding, err := s.bindingRepo.GetByFingerprint(*fp)
	if err != nil {
		return nil, internalError(err)
	}
	if binding == nil {
		return nil, nil
	}

	return &binding.Employee, nil
}

// Bind associates the fingerprint with the employee. Rebinding an already
// known fingerprint to a different employee replaces the old association.
func (s *DeviceService) Bind(employeeID uint, fingerprint string) (*models.DeviceBinding, error) {
	employee, err := s.employeeRepo.GetByID(employeeID)
	if err != nil {
		return nil, internalError(err)
	}
	if employee == nil {
		return nil, notFoundError("employee %d not found", employeeID)
	}

	fp := NormalizeFingerprint(fingerprint)
	if fp == nil {
		return nil, validationError("a device fingerprint is required")
	}

	binding, err := s.bindingRepo.Upsert(employee.ID, *fp)
	if err != nil {
		return nil, internalError(err)
	}

	return binding, nil
}

// Unbind removes the binding for a fingerprint. Unbinding an unknown
// fingerprint is not an error; the count says whether anything was removed.
func (s *DeviceService) Unbind(fingerprint string) (int64, error) {
	fp := NormalizeFingerprint(fingerprint)
	if fp == nil {
		return 0, nil
	}

	deleted, err := s.bindingRepo.DeleteByFingerprint(*fp)
	if err != nil {
		return 0, internalError(err)
	}

	return deleted, nil
}

// IsOwnedByOther reports whether the fingerprint is bound to an employee
// other than the given one. A missing fingerprint never blocks anyone.
func (s *DeviceService) IsOwnedByOther(employee *models.Employee, fingerprint *string) (bool, error) {
	if fingerprint == nil {
		return false, nil
	}

	binding, err := s.bindingRepo.GetByFingerprint(*fingerprint)
	if err != nil {
		return false, internalError(err)
	}

	return binding != nil && binding.EmployeeID != employee.ID, nil
}

// Bindings lists every fingerprint link for the admin audit view.
func (s *DeviceService) Bindings() ([]*models.DeviceBinding, error) {
	bindings, err := s.bindingRepo.GetAll()
	if err != nil {
		return nil, internalError(err)
	}
	return bindings, nil
}
