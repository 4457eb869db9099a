package models

import (
	"time"

	"github.com/google/uuid"
)

type Professional struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BusinessID uuid.UUID `gorm:"type:uuid;index;not null" json:"business_id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Phone    string `gorm:"size:20" json:"phone"`
	PhotoURL string `gorm:"size:255" json:"photo_url"`
	Active   bool   `gorm:"default:true" json:"active"`

	// serviços que o profissional está habilitado a executar
	Services []Service `gorm:"many2many:professional_services;" json:"services,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfessionalService é a tabela de qualificação (profissional executa serviço).
type ProfessionalService struct {
	ProfessionalID uuid.UUID `gorm:"type:uuid;primaryKey" json:"professional_id"`
	ServiceID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"service_id"`

	CreatedAt time.Time `json:"created_at"`
}
