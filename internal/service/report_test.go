package service

import (
	"testing"
	"time"

	"control-asistencia/internal/models"
)

func group(times map[string][]string) *DailyGroup {
	return &DailyGroup{
		Employee: models.Employee{ID: 1, FirstName: "Iris", LastName: "Oblitas"},
		Date:     "2025-03-10",
		Times:    times,
	}
}

func TestComputeDurationsFullDay(t *testing.T) {
	reports := &ReportService{}
	g := group(map[string][]string{
		models.TypeClockIn:    {"08:00:00"},
		models.TypeLunchStart: {"12:00:00"},
		models.TypeLunchEnd:   {"13:00:00"},
		models.TypeClockOut:   {"17:30:00"},
	})

	d := reports.ComputeDurations(g)
	if d.Lunch != "01:00" {
		t.Errorf("Expected lunch 01:00, got %s", d.Lunch)
	}
	if d.Worked != "07:30" {
		t.Errorf("Expected worked 07:30, got %s", d.Worked)
	}
	if d.Commission != "00:00" || d.Permission != "00:00" {
		t.Errorf("Expected zero commission/permission, got %s/%s", d.Commission, d.Permission)
	}
}

func TestComputeDurationsCaseInsensitiveBuckets(t *testing.T) {
	reports := &ReportService{}
	g := group(map[string][]string{
		"entrada":         {"09:00:00"},
		"SALIDA":          {"17:00:00"},
		"inicio almuerzo": {"13:00:00"},
		"Fin Almuerzo":    {"14:00:00"},
	})

	d := reports.ComputeDurations(g)
	if d.Worked != "07:00" {
		t.Errorf("Expected worked 07:00 from mixed-case buckets, got %s", d.Worked)
	}
	if d.Lunch != "01:00" {
		t.Errorf("Expected lunch 01:00, got %s", d.Lunch)
	}
}

func TestComputeDurationsCommissionCountsAsWorked(t *testing.T) {
	reports := &ReportService{}
	g := group(map[string][]string{
		models.TypeClockIn:      {"08:00:00"},
		models.TypeClockOut:     {"17:00:00"},
		models.TypeErrandExit:   {"10:00:00"},
		models.TypeErrandReturn: {"11:30:00"},
	})

	d := reports.ComputeDurations(g)
	if d.Commission != "01:30" {
		t.Errorf("Expected commission 01:30, got %s", d.Commission)
	}
	// Commission is reported but not subtracted from worked time.
	if d.Worked != "09:00" {
		t.Errorf("Expected worked 09:00, got %s", d.Worked)
	}
}

func TestComputeDurationsPermissionSubtracted(t *testing.T) {
	reports := &ReportService{}
	g := group(map[string][]string{
		models.TypeClockIn:       {"08:00:00"},
		models.TypeClockOut:      {"17:00:00"},
		models.TypeAbsenceExit:   {"15:00:00"},
		models.TypeAbsenceReturn: {"16:00:00"},
	})

	d := reports.ComputeDurations(g)
	if d.Permission != "01:00" {
		t.Errorf("Expected permission 01:00, got %s", d.Permission)
	}
	if d.Worked != "08:00" {
		t.Errorf("Expected worked 08:00, got %s", d.Worked)
	}
}

func TestComputeDurationsMissingBuckets(t *testing.T) {
	reports := &ReportService{}
	g := group(map[string][]string{
		models.TypeClockIn: {"08:00:00"},
	})

	d := reports.ComputeDurations(g)
	if d.Worked != "00:00" || d.Lunch != "00:00" {
		t.Errorf("Expected zeros without a clock-out, got worked=%s lunch=%s", d.Worked, d.Lunch)
	}
}

func TestComputeDurationsNegativeSpanPropagates(t *testing.T) {
	reports := &ReportService{}
	g := group(map[string][]string{
		models.TypeClockIn:  {"09:00:00"},
		models.TypeClockOut: {"08:00:00"},
	})

	// End before start is bad data; it is reported, not corrected.
	d := reports.ComputeDurations(g)
	if d.Worked != "-1:00" {
		t.Errorf("Expected worked -1:00, got %s", d.Worked)
	}
}

func TestComputeDurationsUsesFirstEntry(t *testing.T) {
	reports := &ReportService{}
	g := group(map[string][]string{
		models.TypeClockIn:  {"08:00:00", "08:45:00"},
		models.TypeClockOut: {"16:00:00"},
	})

	d := reports.ComputeDurations(g)
	if d.Worked != "08:00" {
		t.Errorf("Expected first entry used, got %s", d.Worked)
	}
}

func TestDailySummaryGroupsAndOrders(t *testing.T) {
	env := newTestEnv(t)
	ana := env.addEmployee(t, "Ana", "Alvarez", 20000001)
	beto := env.addEmployee(t, "Beto", "Bravo", 20000002)

	register := func(empID uint, typeName string, at time.Time) {
		t.Helper()
		env.clock.now = at
		if _, err := env.attendance.Register(empID, env.typeID(t, typeName), "", ""); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
	}

	day1 := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	register(beto.ID, models.TypeClockIn, day1.Add(15*time.Minute))
	register(beto.ID, models.TypeClockOut, day1.Add(9*time.Hour))
	register(ana.ID, models.TypeClockIn, day1)
	register(ana.ID, models.TypeClockOut, day1.Add(8*time.Hour))
	register(ana.ID, models.TypeClockIn, day1.AddDate(0, 0, 1))

	groups, err := env.reports.DailySummary()
	if err != nil {
		t.Fatalf("DailySummary failed: %v", err)
	}
	if len(groups) != 3 {
		t.Fatalf("Expected 3 groups, got %d", len(groups))
	}

	// Ordered by employee, then date.
	if groups[0].Employee.ID != ana.ID || groups[0].Date != "2025-03-10" {
		t.Errorf("Unexpected first group: employee %d date %s", groups[0].Employee.ID, groups[0].Date)
	}
	if groups[1].Employee.ID != ana.ID || groups[1].Date != "2025-03-11" {
		t.Errorf("Unexpected second group: employee %d date %s", groups[1].Employee.ID, groups[1].Date)
	}
	if groups[2].Employee.ID != beto.ID {
		t.Errorf("Unexpected third group: employee %d", groups[2].Employee.ID)
	}

	if got := groups[0].Times[models.TypeClockIn]; len(got) != 1 || got[0] != "08:00:00" {
		t.Errorf("Unexpected clock-in bucket: %v", got)
	}
}

func TestSummaryRowsJoinActivity(t *testing.T) {
	env := newTestEnv(t)
	emp := env.addEmployee(t, "Iris", "Oblitas", 10000010)

	if _, err := env.attendance.Register(emp.ID, env.typeID(t, models.TypeClockIn), "", ""); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := env.activities.RecordToday(emp.ID, "Proyecto Sur", "Mantenimiento"); err != nil {
		t.Fatalf("RecordToday failed: %v", err)
	}
	env.clock.now = env.clock.now.Add(9 * time.Hour)
	if _, err := env.attendance.Register(emp.ID, env.typeID(t, models.TypeClockOut), "", ""); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	rows, err := env.reports.SummaryRows()
	if err != nil {
		t.Fatalf("SummaryRows failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.Project != "Proyecto Sur" || row.Activity != "Mantenimiento" {
		t.Errorf("Expected joined activity, got %q/%q", row.Project, row.Activity)
	}
	if row.Worked != "09:00" {
		t.Errorf("Expected worked 09:00, got %s", row.Worked)
	}
	if row.Employee != "Iris Oblitas" {
		t.Errorf("Unexpected employee name %q", row.Employee)
	}
}
