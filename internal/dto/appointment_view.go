package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/fluxoapp/fluxo-api/internal/models"
)

// AppointmentView é a projeção de listagem com os nomes de exibição
// do serviço e do profissional já resolvidos.
type AppointmentView struct {
	ID uuid.UUID `json:"id"`

	ServiceID   uuid.UUID `json:"service_id"`
	ServiceName string    `json:"service_name"`

	ProfessionalID   uuid.UUID `json:"professional_id"`
	ProfessionalName string    `json:"professional_name"`

	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

func NewAppointmentView(ap *models.Appointment) AppointmentView {
	return AppointmentView{
		ID:               ap.ID,
		ServiceID:        ap.ServiceID,
		ServiceName:      ap.Service.Name,
		ProfessionalID:   ap.ProfessionalID,
		ProfessionalName: ap.Professional.Name,
		CustomerName:     ap.CustomerName,
		CustomerPhone:    ap.CustomerPhone,
		StartTime:        ap.StartTime,
		EndTime:          ap.EndTime,
		Status:           ap.Status,
		Notes:            ap.Notes,
	}
}

func NewAppointmentViews(aps []models.Appointment) []AppointmentView {
	views := make([]AppointmentView, 0, len(aps))
	for i := range aps {
		views = append(views, NewAppointmentView(&aps[i]))
	}
	return views
}
