package service

import (
	"strings"

	"control-asistencia/internal/clock"
	"control-asistencia/internal/models"
	"control-asistencia/internal/repository"

	"github.com/sirupsen/logrus"
)

// ActivityService tracks the single project/activity declaration an
// employee makes per day, collected right after the day's first clock-in.
type ActivityService struct {
	activityRepo repository.DailyActivityRepository
	employeeRepo repository.EmployeeRepository
	clock        clock.Clock
	logger       *logrus.Logger
}

func NewActivityService(
	activityRepo repository.DailyActivityRepository,
	employeeRepo repository.EmployeeRepository,
	clk clock.Clock,
) *ActivityService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &ActivityService{
		activityRepo: activityRepo,
		employeeRepo: employeeRepo,
		clock:        clk,
		logger:       logger,
	}
}

// HasToday reports whether the employee already declared an activity today.
func (s *ActivityService) HasToday(employeeID uint) (bool, error) {
	today := s.clock.Now().Format(models.DateLayout)
	exists, err := s.activityRepo.ExistsForDate(employeeID, today)
	if err != nil {
		return false, internalError(err)
	}
	return exists, nil
}

// Today returns the employee's declaration for today, or nil.
func (s *ActivityService) Today(employeeID uint) (*models.DailyActivity, error) {
	today := s.clock.Now().Format(models.DateLayout)
	activity, err := s.activityRepo.GetByEmployeeAndDate(employeeID, today)
	if err != nil {
		return nil, internalError(err)
	}
	return activity, nil
}

// RecordToday stores today's project/activity pairing. Both fields are
// required after trimming; submitting twice on the same day overwrites the
// earlier declaration instead of duplicating it.
func (s *ActivityService) RecordToday(employeeID uint, project, activity string) (*models.DailyActivity, error) {
	employee, err := s.employeeRepo.GetByID(employeeID)
	if err != nil {
		return nil, internalError(err)
	}
	if employee == nil {
		return nil, notFoundError("employee %d not found", employeeID)
	}

	project = strings.TrimSpace(project)
	activity = strings.TrimSpace(activity)
	if project == "" || activity == "" {
		return nil, validationError("project and activity are required")
	}

	now := s.clock.Now()
	row := &models.DailyActivity{
		EmployeeID: employee.ID,
		Date:       now.Format(models.DateLayout),
		Project:    project,
		Activity:   activity,
		Time:       now.Format(models.TimeLayout),
	}

	stored, err := s.activityRepo.Upsert(row)
	if err != nil {
		return nil, internalError(err)
	}

	s.logger.WithFields(logrus.Fields{
		"employee_id": employee.ID,
		"date":        stored.Date,
		"project":     stored.Project,
	}).Info("Daily activity recorded")

	return stored, nil
}

// All feeds the activities export, newest first.
func (s *ActivityService) All() ([]*models.DailyActivity, error) {
	activities, err := s.activityRepo.GetAllNewestFirst()
	if err != nil {
		return nil, internalError(err)
	}
	return activities, nil
}
