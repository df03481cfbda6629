package models

import (
	"time"
)

type Company struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Code      string    `gorm:"uniqueIndex;size:24;not null" json:"code"`
	Name      string    `gorm:"not null" json:"name"`
	Sector    string    `gorm:"size:80;index" json:"sector"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
