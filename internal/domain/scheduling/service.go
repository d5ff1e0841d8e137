package scheduling

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hospital/hospital/internal/platform/auth"
)

// Service enforces the booking rules around appointments. Every method takes
// the caller's identity explicitly.
type Service struct {
	repo  Repository
	users IdentityDirectory
}

func NewService(repo Repository, users IdentityDirectory) *Service {
	return &Service{repo: repo, users: users}
}

// ListAppointments returns the appointments the caller may see. Staff see
// everything, doctors their own calendar, patients their own bookings.
func (s *Service) ListAppointments(ctx context.Context, caller auth.Identity, limit, offset int) ([]*Appointment, int, error) {
	switch {
	case caller.IsStaff():
		return s.repo.List(ctx, limit, offset)
	case caller.Role == auth.RoleDoctor:
		return s.repo.ListByDoctor(ctx, caller.UserID, limit, offset)
	case caller.Role == auth.RolePatient:
		return s.repo.ListByPatient(ctx, caller.UserID, limit, offset)
	}
	return nil, 0, nil
}

// GetAppointment returns a single appointment with object-level denial.
func (s *Service) GetAppointment(ctx context.Context, caller auth.Identity, id uuid.UUID) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanReadAppointment(caller, a) {
		return nil, ErrForbidden
	}
	return a, nil
}

// CreateAppointment books a visit for the calling patient. The patient on
// the booking is always the caller, regardless of what the client sent, and
// the caller must already have a clinical profile on file.
func (s *Service) CreateAppointment(ctx context.Context, caller auth.Identity, in CreateAppointmentInput) (*Appointment, error) {
	if !CanCreateAppointment(caller) {
		return nil, ErrForbidden
	}
	hasProfile, err := s.users.HasPatientProfile(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if !hasProfile {
		return nil, fmt.Errorf("%w: no patient profile for this account", ErrValidation)
	}
	if in.DoctorID == uuid.Nil {
		return nil, fmt.Errorf("%w: doctor_id is required", ErrValidation)
	}
	if in.StartTime.IsZero() || in.EndTime.IsZero() {
		return nil, fmt.Errorf("%w: start_time and end_time are required", ErrValidation)
	}

	isDoctor, err := s.users.IsDoctor(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}
	if !isDoctor {
		return nil, fmt.Errorf("%w: doctor_id does not refer to a doctor", ErrValidation)
	}

	a := &Appointment{
		PatientID: caller.UserID,
		DoctorID:  in.DoctorID,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Status:    StatusScheduled,
		Notes:     in.Notes,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateAppointment applies the non-nil fields of in. The assigned doctor
// can see the booking but not change it.
func (s *Service) UpdateAppointment(ctx context.Context, caller auth.Identity, id uuid.UUID, in UpdateAppointmentInput) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanMutateAppointment(caller, a) {
		return nil, ErrForbidden
	}

	if in.StartTime != nil {
		a.StartTime = *in.StartTime
	}
	if in.EndTime != nil {
		a.EndTime = *in.EndTime
	}
	if in.Status != nil {
		if !ValidStatus(*in.Status) {
			return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, *in.Status)
		}
		a.Status = *in.Status
	}
	if in.Notes != nil {
		a.Notes = *in.Notes
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteAppointment removes a booking. Same rule as updates.
func (s *Service) DeleteAppointment(ctx context.Context, caller auth.Identity, id uuid.UUID) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !CanMutateAppointment(caller, a) {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

// CreateSchedule registers a weekly availability window. Doctors manage
// their own schedule; admins manage anyone's.
func (s *Service) CreateSchedule(ctx context.Context, caller auth.Identity, sched *DoctorSchedule) error {
	if caller.Role == auth.RoleDoctor {
		sched.DoctorID = caller.UserID
	} else if !caller.IsStaff() {
		return ErrForbidden
	}
	if sched.DoctorID == uuid.Nil {
		return fmt.Errorf("%w: doctor_id is required", ErrValidation)
	}
	if sched.Weekday < 0 || sched.Weekday > 6 {
		return fmt.Errorf("%w: weekday must be 0-6", ErrValidation)
	}
	if sched.StartTime == "" || sched.EndTime == "" {
		return fmt.Errorf("%w: start_time and end_time are required", ErrValidation)
	}
	return s.repo.CreateSchedule(ctx, sched)
}

// ListSchedules returns a doctor's availability. Readable by any
// authenticated user so patients can pick a slot.
func (s *Service) ListSchedules(ctx context.Context, doctorID uuid.UUID) ([]*DoctorSchedule, error) {
	return s.repo.ListSchedulesByDoctor(ctx, doctorID)
}

// DeleteSchedule removes an availability window. A doctor removes only
// their own windows; admins remove anyone's.
func (s *Service) DeleteSchedule(ctx context.Context, caller auth.Identity, id uuid.UUID) error {
	sched, err := s.repo.GetSchedule(ctx, id)
	if err != nil {
		return err
	}
	if !caller.IsStaff() {
		if caller.Role != auth.RoleDoctor || sched.DoctorID != caller.UserID {
			return ErrForbidden
		}
	}
	return s.repo.DeleteSchedule(ctx, id)
}
