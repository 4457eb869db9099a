package models

import (
	"time"

	"github.com/google/uuid"
)

// BusinessHours guarda a janela de funcionamento de um dia da semana.
// Weekday segue a convenção segunda=0 .. domingo=6.
// StartTime/EndTime/Lunch* são hora local "15:04" (sem data).
type BusinessHours struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BusinessID uuid.UUID `gorm:"type:uuid;index:idx_business_weekday,unique;not null" json:"business_id"`

	Weekday int `gorm:"index:idx_business_weekday,unique;not null" json:"weekday"`

	IsOpen     bool   `json:"is_open"`
	StartTime  string `gorm:"size:5" json:"start_time"`
	EndTime    string `gorm:"size:5" json:"end_time"`
	LunchStart string `gorm:"size:5" json:"lunch_start"`
	LunchEnd   string `gorm:"size:5" json:"lunch_end"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
