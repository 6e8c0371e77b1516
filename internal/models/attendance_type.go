package models

// Canonical attendance type names. The catalog is closed: these eight rows
// are seeded at startup and nothing else ever creates one.
const (
	TypeClockIn       = "Entrada"
	TypeClockOut      = "Salida"
	TypeLunchStart    = "Inicio Almuerzo"
	TypeLunchEnd      = "Fin Almuerzo"
	TypeErrandExit    = "Salida por comisión"
	TypeErrandReturn  = "Entrada por comisión"
	TypeAbsenceExit   = "Salida por otros"
	TypeAbsenceReturn = "Entrada por otros"
)

type AttendanceType struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"size:50;uniqueIndex;not null" json:"name"`

	// Capability flags, fixed when the catalog row is seeded.
	DailyUnique         bool `gorm:"not null;default:false" json:"daily_unique"`
	RequiresDescription bool `gorm:"not null;default:false" json:"requires_description"`
}

func (AttendanceType) TableName() string {
	return "attendance_types"
}

// CatalogFlags maps every catalog name to its capability flags. The four
// day-boundary events are daily-unique; the two free-form absence events
// ask the kiosk for a description.
var CatalogFlags = map[string]struct{ DailyUnique, RequiresDescription bool }{
	TypeClockIn:       {DailyUnique: true},
	TypeClockOut:      {DailyUnique: true},
	TypeLunchStart:    {DailyUnique: true},
	TypeLunchEnd:      {DailyUnique: true},
	TypeErrandExit:    {},
	TypeErrandReturn:  {},
	TypeAbsenceExit:   {RequiresDescription: true},
	TypeAbsenceReturn: {RequiresDescription: true},
}

// CatalogNames returns the seed order for the catalog.
func CatalogNames() []string {
	return []string{
		TypeClockIn, TypeClockOut, TypeLunchStart, TypeLunchEnd,
		TypeErrandReturn, TypeErrandExit,
		TypeAbsenceReturn, TypeAbsenceExit,
	}
}
