package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fluxoapp/fluxo-api/internal/domain/schedule"
	"github.com/fluxoapp/fluxo-api/internal/httperr"
	"github.com/fluxoapp/fluxo-api/internal/models"
)

// timeout de qualquer ida ao banco; estouro vira StorageError
const queryTimeout = 5 * time.Second

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, queryTimeout)
}

// translate converte erros do gorm para a taxonomia da aplicação.
func translate(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrNotFound(entity)
	}
	return httperr.ErrStorage(err)
}

// --------------------------------------------------
// Business
// --------------------------------------------------

func (r *ScheduleGormRepository) GetBusinessByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Business, error) {

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var biz models.Business
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&biz).Error; err != nil {
		return nil, translate(err, "business")
	}
	return &biz, nil
}

func (r *ScheduleGormRepository) GetBusinessBySlug(
	ctx context.Context,
	slug string,
) (*models.Business, error) {

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var biz models.Business
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&biz).Error; err != nil {
		return nil, translate(err, "business")
	}
	return &biz, nil
}

// --------------------------------------------------
// Service / Professional
// --------------------------------------------------

func (r *ScheduleGormRepository) GetService(
	ctx context.Context,
	businessID uuid.UUID,
	serviceID uuid.UUID,
) (*models.Service, error) {

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", serviceID, businessID).
		First(&svc).Error; err != nil {
		return nil, translate(err, "service")
	}
	return &svc, nil
}

func (r *ScheduleGormRepository) GetProfessional(
	ctx context.Context,
	businessID uuid.UUID,
	professionalID uuid.UUID,
) (*models.Professional, error) {

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var pro models.Professional
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", professionalID, businessID).
		First(&pro).Error; err != nil {
		return nil, translate(err, "professional")
	}
	return &pro, nil
}

func (r *ScheduleGormRepository) ListQualifiedProfessionals(
	ctx context.Context,
	businessID uuid.UUID,
	serviceID uuid.UUID,
) ([]models.Professional, error) {

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var pros []models.Professional
	err := r.db.WithContext(ctx).
		Joins("JOIN professional_services ps ON ps.professional_id = professionals.id").
		Where(
			"professionals.business_id = ? AND ps.service_id = ? AND professionals.active",
			businessID, serviceID,
		).
		Order("professionals.created_at ASC").
		Find(&pros).Error
	if err != nil {
		return nil, httperr.ErrStorage(err)
	}

	return pros, nil
}

// --------------------------------------------------
// Business hours
// --------------------------------------------------

func (r *ScheduleGormRepository) ListBusinessHours(
	ctx context.Context,
	businessID uuid.UUID,
) ([]models.BusinessHours, error) {

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var hours []models.BusinessHours
	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("weekday ASC").
		Find(&hours).Error
	if err != nil {
		return nil, httperr.ErrStorage(err)
	}

	return hours, nil
}

// --------------------------------------------------
// Appointments (leitura)
// --------------------------------------------------

func (r *ScheduleGormRepository) GetAppointment(
	ctx context.Context,
	businessID uuid.UUID,
	id uuid.UUID,
) (*models.Appointment, error) {

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Professional").
		Where("id = ? AND business_id = ?", id, businessID).
		First(&ap).Error; err != nil {
		return nil, translate(err, "appointment")
	}
	return &ap, nil
}

func (r *ScheduleGormRepository) ListConflicts(
	ctx context.Context,
	businessID uuid.UUID,
	start time.Time,
	end time.Time,
	exclude *uuid.UUID,
) ([]models.Appointment, error) {

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	q := r.db.WithContext(ctx).
		Where(
			"business_id = ? AND status = 'scheduled' AND start_time < ? AND end_time > ?",
			businessID, end, start,
		)
	if exclude != nil {
		q = q.Where("id <> ?", *exclude)
	}

	var aps []models.Appointment
	if err := q.Find(&aps).Error; err != nil {
		return nil, httperr.ErrStorage(err)
	}
	return aps, nil
}

func (r *ScheduleGormRepository) ListAppointmentsForProfessional(
	ctx context.Context,
	professionalID uuid.UUID,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var aps []models.Appointment
	err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"professional_id = ? AND status = 'scheduled' AND start_time < ? AND end_time > ?",
			professionalID, end, start,
		).
		Order("start_time ASC").
		Find(&aps).Error
	if err != nil {
		return nil, httperr.ErrStorage(err)
	}

	return aps, nil
}

func (r *ScheduleGormRepository) ListAppointmentsBetween(
	ctx context.Context,
	businessID uuid.UUID,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var aps []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Professional").
		Where(
			"business_id = ? AND start_time >= ? AND start_time < ?",
			businessID, start, end,
		).
		Order("start_time ASC").
		Find(&aps).Error
	if err != nil {
		return nil, httperr.ErrStorage(err)
	}

	return aps, nil
}

func (r *ScheduleGormRepository) DistinctCustomerPhonesBefore(
	ctx context.Context,
	businessID uuid.UUID,
	before time.Time,
) ([]string, error) {

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	// cancelados não contam como visita, aqui nem no mês corrente
	var phones []string
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Distinct("customer_phone").
		Where(
			"business_id = ? AND status <> 'cancelled' AND start_time < ?",
			businessID, before,
		).
		Pluck("customer_phone", &phones).Error
	if err != nil {
		return nil, httperr.ErrStorage(err)
	}

	return phones, nil
}

// --------------------------------------------------
// Appointments (escrita)
// --------------------------------------------------

// createChecked roda a checagem de conflito e a escrita na mesma transação.
// O SELECT ... FOR UPDATE serializa reservas concorrentes do mesmo
// profissional; a constraint de exclusão (tsrange && ) derruba o que passar.
func (r *ScheduleGormRepository) createChecked(
	ctx context.Context,
	ap *models.Appointment,
	exclude *uuid.UUID,
	persist func(tx *gorm.DB) error,
) error {

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		q := tx.
			Model(&models.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"professional_id = ? AND status = 'scheduled' AND start_time < ? AND end_time > ?",
				ap.ProfessionalID, ap.EndTime, ap.StartTime,
			)
		if exclude != nil {
			q = q.Where("id <> ?", *exclude)
		}

		var count int64
		if err := q.Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrConflict()
		}

		return persist(tx)
	})

	if err == nil {
		return nil
	}
	var ce httperr.ConflictError
	if errors.As(err, &ce) || httperr.IsExclusionConflict(err) {
		return httperr.ErrConflict()
	}
	return httperr.ErrStorage(err)
}

func (r *ScheduleGormRepository) CreateAppointmentChecked(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.createChecked(ctx, ap, nil, func(tx *gorm.DB) error {
		return tx.Create(ap).Error
	})
}

func (r *ScheduleGormRepository) UpdateAppointmentChecked(
	ctx context.Context,
	ap *models.Appointment,
) error {
	id := ap.ID
	return r.createChecked(ctx, ap, &id, func(tx *gorm.DB) error {
		return tx.Save(ap).Error
	})
}

func (r *ScheduleGormRepository) SaveAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := r.db.WithContext(ctx).Save(ap).Error; err != nil {
		return httperr.ErrStorage(err)
	}
	return nil
}

func (r *ScheduleGormRepository) DeleteAppointment(
	ctx context.Context,
	businessID uuid.UUID,
	id uuid.UUID,
) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", id, businessID).
		Delete(&models.Appointment{})
	if res.Error != nil {
		return httperr.ErrStorage(res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound("appointment")
	}
	return nil
}

// Compile-time check
var _ schedule.Repository = (*ScheduleGormRepository)(nil)
