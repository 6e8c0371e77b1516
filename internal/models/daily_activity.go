package models

import "time"

// DailyActivity is the project/activity pairing an employee declares once
// per day, right after the first clock-in. At most one row per
// (employee, date); a second submission overwrites the first.
type DailyActivity struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	EmployeeID uint      `gorm:"not null;uniqueIndex:idx_daily_activity_employee_date" json:"employee_id"`
	Date       string    `gorm:"type:date;not null;uniqueIndex:idx_daily_activity_employee_date" json:"date"`
	Project    string    `gorm:"size:100;not null" json:"project"`
	Activity   string    `gorm:"size:100;not null" json:"activity"`
	Time       string    `gorm:"type:time;not null" json:"time"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Employee Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

func (DailyActivity) TableName() string {
	return "daily_activities"
}
