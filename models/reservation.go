package models

import "time"

type Reservation struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	CustomerName string `gorm:"type:varchar(100);not null" json:"customer_name"`
	PhoneNumber  string `gorm:"type:varchar(20);not null" json:"phone_number"`
	TableID      *uint  `gorm:"index" json:"table_id,omitempty"`
	Table        *Table `gorm:"foreignKey:TableID" json:"table,omitempty"`
	// Date is YYYY-MM-DD, Time is the slot label (e.g. "19:00").
	// A table/date/time triple with an active status blocks other bookings.
	Date           string            `gorm:"type:varchar(10);not null;index" json:"date"`
	Time           string            `gorm:"type:varchar(10);not null" json:"time"`
	NumberOfGuests int               `gorm:"not null" json:"number_of_guests"`
	Status         ReservationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Notes          string            `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"not null" json:"updated_at"`
}
