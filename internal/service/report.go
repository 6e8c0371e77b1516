package service

import (
	"fmt"
	"strings"
	"time"

	"control-asistencia/internal/models"
	"control-asistencia/internal/repository"
	"control-asistencia/pkg/timespan"

	"github.com/sirupsen/logrus"
)

// DailyGroup is one employee's events for one calendar date: the ordered
// times of day recorded under each attendance-type name.
type DailyGroup struct {
	Employee models.Employee     `json:"employee"`
	Date     string              `json:"date"`
	Times    map[string][]string `json:"times"`
}

// Durations holds the day's reconstructed spans, each formatted HH:MM.
type Durations struct {
	Lunch      string `json:"lunch"`
	Commission string `json:"commission"`
	Permission string `json:"permission"`
	Worked     string `json:"worked"`
}

// SummaryRow is one line of the daily summary feed, shaped like the
// spreadsheet the reporting side builds from it.
type SummaryRow struct {
	Employee string `json:"employee"`
	Date     string `json:"date"`
	Project  string `json:"project"`
	Activity string `json:"activity"`
	Durations
}

// ReportService reconstructs per-employee per-day durations from the raw
// event log. Read-only: it runs independently of registration.
type ReportService struct {
	recordRepo   repository.AttendanceRecordRepository
	activityRepo repository.DailyActivityRepository
	logger       *logrus.Logger
}

func NewReportService(
	recordRepo repository.AttendanceRecordRepository,
	activityRepo repository.DailyActivityRepository,
) *ReportService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &ReportService{
		recordRepo:   recordRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// DailySummary groups every stored record by (employee, date), ordered by
// employee, date and time of day.
func (s *ReportService) DailySummary() ([]*DailyGroup, error) {
	records, err := s.recordRepo.GetAllOrdered()
	if err != nil {
		return nil, internalError(err)
	}

	var groups []*DailyGroup
	index := make(map[string]*DailyGroup)

	for _, record := range records {
		key := fmt.Sprintf("%d|%s", record.EmployeeID, record.Date)
		group, ok := index[key]
		if !ok {
			group = &DailyGroup{
				Employee: record.Employee,
				Date:     record.Date,
				Times:    make(map[string][]string),
			}
			index[key] = group
			groups = append(groups, group)
		}
		name := record.Type.Name
		group.Times[name] = append(group.Times[name], record.Time)
	}

	return groups, nil
}

// bucket looks a type name up in the group case-insensitively: stored names
// may differ in casing from the catalog, and the report must follow the
// stored casing rather than force a canonical one.
func bucket(times map[string][]string, name string) []string {
	lower := strings.ToLower(name)
	for stored, entries := range times {
		if strings.ToLower(stored) == lower {
			return entries
		}
	}
	return nil
}

// span returns end[0] - start[0] when both buckets are non-empty, else
// zero. Only the first entry counts; duplicates should not exist for
// daily-unique types, but a dirty log must not break the report.
func span(times map[string][]string, startName, endName string) time.Duration {
	start := bucket(times, startName)
	end := bucket(times, endName)
	if len(start) == 0 || len(end) == 0 {
		return 0
	}

	d, err := timespan.Between(start[0], end[0])
	if err != nil {
		return 0
	}
	return d
}

// ComputeDurations reconstructs the day's lunch, commission, permission and
// worked spans. Commission time counts as worked and is not subtracted.
// Negative spans (bad data, end before start) are reported as-is.
func (s *ReportService) ComputeDurations(group *DailyGroup) Durations {
	lunch := span(group.Times, models.TypeLunchStart, models.TypeLunchEnd)
	commission := span(group.Times, models.TypeErrandExit, models.TypeErrandReturn)
	permission := span(group.Times, models.TypeAbsenceExit, models.TypeAbsenceReturn)

	var worked time.Duration
	dayStart := bucket(group.Times, models.TypeClockIn)
	dayEnd := bucket(group.Times, models.TypeClockOut)
	if len(dayStart) > 0 && len(dayEnd) > 0 {
		total, err := timespan.Between(dayStart[0], dayEnd[0])
		if err == nil {
			worked = total - lunch - permission
		}
	}

	return Durations{
		Lunch:      timespan.FormatHHMM(lunch),
		Commission: timespan.FormatHHMM(commission),
		Permission: timespan.FormatHHMM(permission),
		Worked:     timespan.FormatHHMM(worked),
	}
}

// SummaryRows joins each day group with its durations and the project and
// activity declared that day, if any. This is the data feed behind the
// summary spreadsheet.
func (s *ReportService) SummaryRows() ([]*SummaryRow, error) {
	groups, err := s.DailySummary()
	if err != nil {
		return nil, err
	}

	rows := make([]*SummaryRow, 0, len(groups))
	for _, group := range groups {
		row := &SummaryRow{
			Employee:  group.Employee.FullName(),
			Date:      group.Date,
			Durations: s.ComputeDurations(group),
		}

		activity, err := s.activityRepo.GetByEmployeeAndDate(group.Employee.ID, group.Date)
		if err != nil {
			return nil, internalError(err)
		}
		if activity != nil {
			row.Project = activity.Project
			row.Activity = activity.Activity
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// AllRecords feeds the raw attendance export, newest first.
func (s *ReportService) AllRecords() ([]*models.AttendanceRecord, error) {
	records, err := s.recordRepo.GetAllNewestFirst()
	if err != nil {
		return nil, internalError(err)
	}
	return records, nil
}

// SummaryText renders rows for a given date as a plain-text digest, the
// payload for the Telegram notifier.
func (s *ReportService) SummaryText(date string) (string, error) {
	rows, err := s.SummaryRows()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Resumen de asistencia %s\n", date)
	count := 0
	for _, row := range rows {
		if row.Date != date {
			continue
		}
		count++
		fmt.Fprintf(&b, "%s: trabajadas %s, almuerzo %s, comisión %s, permiso %s\n",
			row.Employee, row.Worked, row.Lunch, row.Commission, row.Permission)
	}
	if count == 0 {
		b.WriteString("Sin registros.\n")
	}

	return b.String(), nil
}
