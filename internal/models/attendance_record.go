package models

import (
	"fmt"
	"time"
)

// Layouts for the calendar-date / time-of-day pair every record carries.
// Both sort lexicographically, so ordering in SQL stays correct.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

type AttendanceRecord struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	EmployeeID  uint    `gorm:"not null;index" json:"employee_id"`
	TypeID      uint    `gorm:"not null;index" json:"type_id"`
	Date        string  `gorm:"type:date;not null;index" json:"date"`
	Time        string  `gorm:"type:time;not null" json:"time"`
	Description string  `gorm:"size:50" json:"description"`
	Fingerprint *string `gorm:"size:100" json:"fingerprint,omitempty"`

	// DailyKey is set only for daily-unique types. SQLite unique indexes
	// skip NULLs, so repeatable types stay unconstrained while a race on a
	// daily-unique type fails the second insert.
	DailyKey *string `gorm:"size:64;uniqueIndex" json:"-"`

	CreatedAt time.Time `json:"created_at"`

	Employee Employee       `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Type     AttendanceType `gorm:"foreignKey:TypeID" json:"type,omitempty"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

// BuildDailyKey is the value DailyKey takes for daily-unique types.
func BuildDailyKey(employeeID, typeID uint, date string) string {
	return fmt.Sprintf("%d:%d:%s", employeeID, typeID, date)
}
