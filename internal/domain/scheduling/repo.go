package scheduling

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence interface for appointments and doctor
// schedules.
type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Appointment, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Appointment, int, error)

	CreateSchedule(ctx context.Context, s *DoctorSchedule) error
	GetSchedule(ctx context.Context, id uuid.UUID) (*DoctorSchedule, error)
	DeleteSchedule(ctx context.Context, id uuid.UUID) error
	ListSchedulesByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*DoctorSchedule, error)
}

// IdentityDirectory resolves the accounts and profiles a booking must be
// validated against. The users and patients domains provide the
// implementation.
type IdentityDirectory interface {
	IsDoctor(ctx context.Context, userID uuid.UUID) (bool, error)
	HasPatientProfile(ctx context.Context, userID uuid.UUID) (bool, error)
}
