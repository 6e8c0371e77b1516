package models

import "time"

// DeviceBinding links one device fingerprint to exactly one employee so a
// kiosk session can identify its owner without a printed code. The unique
// index on Fingerprint is what makes rebinding last-write-wins.
type DeviceBinding struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	EmployeeID  uint      `gorm:"not null;index" json:"employee_id"`
	Fingerprint string    `gorm:"size:100;uniqueIndex;not null" json:"fingerprint"`
	CreatedAt   time.Time `json:"created_at"`

	Employee Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

func (DeviceBinding) TableName() string {
	return "device_bindings"
}
