package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fluxoapp/fluxo-api/internal/models"
)

// Repository é a porta de persistência do agendamento. Toda consulta é
// escopada por businessID; o id do tenant nunca vem do cliente.
type Repository interface {
	// -------- Business --------
	GetBusinessByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Business, error)

	GetBusinessBySlug(
		ctx context.Context,
		slug string,
	) (*models.Business, error)

	// -------- Service / Professional --------
	GetService(
		ctx context.Context,
		businessID uuid.UUID,
		serviceID uuid.UUID,
	) (*models.Service, error)

	GetProfessional(
		ctx context.Context,
		businessID uuid.UUID,
		professionalID uuid.UUID,
	) (*models.Professional, error)

	ListQualifiedProfessionals(
		ctx context.Context,
		businessID uuid.UUID,
		serviceID uuid.UUID,
	) ([]models.Professional, error)

	// -------- Business hours --------
	ListBusinessHours(
		ctx context.Context,
		businessID uuid.UUID,
	) ([]models.BusinessHours, error)

	// -------- Appointments (leitura) --------
	GetAppointment(
		ctx context.Context,
		businessID uuid.UUID,
		id uuid.UUID,
	) (*models.Appointment, error)

	// ListConflicts devolve os agendamentos ativos do negócio que se
	// sobrepõem a [start, end), opcionalmente ignorando um id (edição).
	ListConflicts(
		ctx context.Context,
		businessID uuid.UUID,
		start time.Time,
		end time.Time,
		exclude *uuid.UUID,
	) ([]models.Appointment, error)

	ListAppointmentsForProfessional(
		ctx context.Context,
		professionalID uuid.UUID,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsBetween(
		ctx context.Context,
		businessID uuid.UUID,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	DistinctCustomerPhonesBefore(
		ctx context.Context,
		businessID uuid.UUID,
		before time.Time,
	) ([]string, error)

	// -------- Appointments (escrita) --------

	// CreateAppointmentChecked refaz a checagem de conflito do
	// profissional e insere na mesma transação (FOR UPDATE); a constraint
	// de exclusão do Postgres é a última linha de defesa contra corrida.
	CreateAppointmentChecked(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// UpdateAppointmentChecked idem, ignorando o próprio id no conflito.
	UpdateAppointmentChecked(
		ctx context.Context,
		ap *models.Appointment,
	) error

	SaveAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		businessID uuid.UUID,
		id uuid.UUID,
	) error
}

// ProfessionalView é a projeção mínima para exibição.
type ProfessionalView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// TimeSlot é um horário candidato formatado para o cliente.
type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
