package appointment

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fluxoapp/fluxo-api/internal/domain/schedule"
	"github.com/fluxoapp/fluxo-api/internal/httperr"
	"github.com/fluxoapp/fluxo-api/internal/models"
)

// fakeRepo é um dublê em memória da porta schedule.Repository, com a
// mesma semântica de conflito (intervalos meio-abertos) do banco.
type fakeRepo struct {
	mu sync.Mutex

	business  *models.Business
	services  map[uuid.UUID]*models.Service
	pros      map[uuid.UUID]*models.Professional
	qualified map[uuid.UUID][]uuid.UUID // serviceID -> professionals
	hours     []models.BusinessHours

	appointments []*models.Appointment
	phonesBefore []string
}

func newFakeRepo(biz *models.Business) *fakeRepo {
	return &fakeRepo{
		business:  biz,
		services:  map[uuid.UUID]*models.Service{},
		pros:      map[uuid.UUID]*models.Professional{},
		qualified: map[uuid.UUID][]uuid.UUID{},
	}
}

func (f *fakeRepo) addService(svc *models.Service) {
	svc.BusinessID = f.business.ID
	f.services[svc.ID] = svc
}

func (f *fakeRepo) addProfessional(pro *models.Professional, serviceIDs ...uuid.UUID) {
	pro.BusinessID = f.business.ID
	f.pros[pro.ID] = pro
	for _, sid := range serviceIDs {
		f.qualified[sid] = append(f.qualified[sid], pro.ID)
	}
}

func (f *fakeRepo) GetBusinessByID(_ context.Context, id uuid.UUID) (*models.Business, error) {
	if f.business == nil || f.business.ID != id {
		return nil, httperr.ErrNotFound("business")
	}
	return f.business, nil
}

func (f *fakeRepo) GetBusinessBySlug(_ context.Context, slug string) (*models.Business, error) {
	if f.business == nil || f.business.Slug != slug {
		return nil, httperr.ErrNotFound("business")
	}
	return f.business, nil
}

func (f *fakeRepo) GetService(_ context.Context, businessID, serviceID uuid.UUID) (*models.Service, error) {
	svc, ok := f.services[serviceID]
	if !ok || svc.BusinessID != businessID {
		return nil, httperr.ErrNotFound("service")
	}
	return svc, nil
}

func (f *fakeRepo) GetProfessional(_ context.Context, businessID, professionalID uuid.UUID) (*models.Professional, error) {
	pro, ok := f.pros[professionalID]
	if !ok || pro.BusinessID != businessID {
		return nil, httperr.ErrNotFound("professional")
	}
	return pro, nil
}

func (f *fakeRepo) ListQualifiedProfessionals(_ context.Context, _ uuid.UUID, serviceID uuid.UUID) ([]models.Professional, error) {
	var out []models.Professional
	for _, id := range f.qualified[serviceID] {
		out = append(out, *f.pros[id])
	}
	return out, nil
}

func (f *fakeRepo) ListBusinessHours(_ context.Context, _ uuid.UUID) ([]models.BusinessHours, error) {
	return f.hours, nil
}

func (f *fakeRepo) GetAppointment(_ context.Context, businessID, id uuid.UUID) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ap := range f.appointments {
		if ap.ID == id && ap.BusinessID == businessID {
			cp := *ap
			return &cp, nil
		}
	}
	return nil, httperr.ErrNotFound("appointment")
}

func (f *fakeRepo) ListConflicts(
	_ context.Context,
	businessID uuid.UUID,
	start, end time.Time,
	exclude *uuid.UUID,
) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.BusinessID != businessID || ap.Status != string(schedule.StatusScheduled) {
			continue
		}
		if exclude != nil && ap.ID == *exclude {
			continue
		}
		if schedule.Overlaps(ap.StartTime, ap.EndTime, start, end) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAppointmentsForProfessional(
	_ context.Context,
	professionalID uuid.UUID,
	start, end time.Time,
) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.ProfessionalID != professionalID || ap.Status != string(schedule.StatusScheduled) {
			continue
		}
		if schedule.Overlaps(ap.StartTime, ap.EndTime, start, end) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAppointmentsBetween(
	_ context.Context,
	businessID uuid.UUID,
	start, end time.Time,
) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.BusinessID != businessID {
			continue
		}
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			cp := *ap
			if svc, ok := f.services[ap.ServiceID]; ok {
				cp.Service = *svc
			}
			if pro, ok := f.pros[ap.ProfessionalID]; ok {
				cp.Professional = *pro
			}
			out = append(out, cp)
		}
	}
	return out, nil
}

func (f *fakeRepo) DistinctCustomerPhonesBefore(
	_ context.Context,
	_ uuid.UUID,
	_ time.Time,
) ([]string, error) {
	return f.phonesBefore, nil
}

func (f *fakeRepo) conflictFor(ap *models.Appointment, exclude *uuid.UUID) bool {
	for _, other := range f.appointments {
		if other.ProfessionalID != ap.ProfessionalID || other.Status != string(schedule.StatusScheduled) {
			continue
		}
		if exclude != nil && other.ID == *exclude {
			continue
		}
		if schedule.Overlaps(other.StartTime, other.EndTime, ap.StartTime, ap.EndTime) {
			return true
		}
	}
	return false
}

func (f *fakeRepo) CreateAppointmentChecked(_ context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.conflictFor(ap, nil) {
		return httperr.ErrConflict()
	}

	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	cp := *ap
	f.appointments = append(f.appointments, &cp)
	return nil
}

func (f *fakeRepo) UpdateAppointmentChecked(_ context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := ap.ID
	if f.conflictFor(ap, &id) {
		return httperr.ErrConflict()
	}

	for i, old := range f.appointments {
		if old.ID == ap.ID {
			cp := *ap
			f.appointments[i] = &cp
			return nil
		}
	}
	return httperr.ErrNotFound("appointment")
}

func (f *fakeRepo) SaveAppointment(_ context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, old := range f.appointments {
		if old.ID == ap.ID {
			cp := *ap
			f.appointments[i] = &cp
			return nil
		}
	}
	return httperr.ErrNotFound("appointment")
}

func (f *fakeRepo) DeleteAppointment(_ context.Context, businessID, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, ap := range f.appointments {
		if ap.ID == id && ap.BusinessID == businessID {
			f.appointments = append(f.appointments[:i], f.appointments[i+1:]...)
			return nil
		}
	}
	return httperr.ErrNotFound("appointment")
}

var _ schedule.Repository = (*fakeRepo)(nil)
