package models

import (
	"fmt"
	"time"
)

type Employee struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	FirstName string    `gorm:"size:50;not null" json:"first_name"`
	LastName  string    `gorm:"size:50;not null" json:"last_name"`
	DNI       int64     `gorm:"uniqueIndex;not null" json:"dni"`
	Contract  string    `gorm:"size:50" json:"contract"`
	QRCode    *string   `gorm:"size:20;uniqueIndex" json:"qr_code,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

// FullName returns the display name shown on kiosks and reports.
func (e *Employee) FullName() string {
	return fmt.Sprintf("%s %s", e.FirstName, e.LastName)
}

// HasQRCode reports whether a printed code was already issued.
func (e *Employee) HasQRCode() bool {
	return e.QRCode != nil && *e.QRCode != ""
}
