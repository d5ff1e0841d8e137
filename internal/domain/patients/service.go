package patients

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/hospital/hospital/internal/platform/auth"
)

// Service enforces the access rules around patient profiles and medical
// records. Every method takes the caller's identity explicitly.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListPatients returns the patients the caller may see. Staff and doctors
// see everyone; a patient sees only their own profile.
func (s *Service) ListPatients(ctx context.Context, caller auth.Identity, limit, offset int) ([]*Patient, int, error) {
	if caller.IsStaff() || caller.Role == auth.RoleDoctor {
		return s.repo.List(ctx, limit, offset)
	}
	if caller.Role == auth.RolePatient {
		p, err := s.repo.GetByUserID(ctx, caller.UserID)
		if err == ErrNotFound {
			return nil, 0, nil
		}
		if err != nil {
			return nil, 0, err
		}
		return []*Patient{p}, 1, nil
	}
	return nil, 0, nil
}

// GetPatient returns a single patient profile, or ErrForbidden when the
// caller is a patient asking about someone else.
func (s *Service) GetPatient(ctx context.Context, caller auth.Identity, patientID uuid.UUID) (*Patient, error) {
	if !CanReadPatient(caller, patientID) {
		return nil, ErrForbidden
	}
	return s.repo.GetByUserID(ctx, patientID)
}

// CreatePatient registers a clinical profile for a user. Only doctors and
// staff create profiles, always on behalf of a named user.
func (s *Service) CreatePatient(ctx context.Context, caller auth.Identity, in CreatePatientInput) (*Patient, error) {
	if !CanWritePatient(caller) {
		return nil, ErrForbidden
	}
	if in.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: user_id is required", ErrValidation)
	}

	p := &Patient{
		UserID:      in.UserID,
		DateOfBirth: in.DateOfBirth,
		Address:     strings.TrimSpace(in.Address),
		Phone:       strings.TrimSpace(in.Phone),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.repo.GetByUserID(ctx, in.UserID)
}

// UpdatePatient applies the non-nil fields of in to a profile.
func (s *Service) UpdatePatient(ctx context.Context, caller auth.Identity, patientID uuid.UUID, in UpdatePatientInput) (*Patient, error) {
	if !CanWritePatient(caller) {
		return nil, ErrForbidden
	}
	p, err := s.repo.GetByUserID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	if in.DateOfBirth != nil {
		p.DateOfBirth = in.DateOfBirth
	}
	if in.Address != nil {
		p.Address = strings.TrimSpace(*in.Address)
	}
	if in.Phone != nil {
		p.Phone = strings.TrimSpace(*in.Phone)
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeletePatient removes a profile. Same write rule as updates.
func (s *Service) DeletePatient(ctx context.Context, caller auth.Identity, patientID uuid.UUID) error {
	if !CanWritePatient(caller) {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, patientID)
}

// ListRecords returns the medical history of a patient. A patient asking
// about another patient's history gets an empty page rather than an error,
// matching list semantics elsewhere.
func (s *Service) ListRecords(ctx context.Context, caller auth.Identity, patientID uuid.UUID, limit, offset int) ([]*MedicalRecord, int, error) {
	if !CanReadRecords(caller, patientID) {
		return nil, 0, nil
	}
	return s.repo.ListRecordsByPatient(ctx, patientID, limit, offset)
}

// GetRecord returns a single record, with object-level denial for patients
// reading someone else's record.
func (s *Service) GetRecord(ctx context.Context, caller auth.Identity, recordID uuid.UUID) (*MedicalRecord, error) {
	rec, err := s.repo.GetRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if !CanReadRecords(caller, rec.PatientID) {
		return nil, ErrForbidden
	}
	return rec, nil
}

// CreateRecord adds an entry to a patient's history. Only doctors and staff
// author records; the author is always the caller.
func (s *Service) CreateRecord(ctx context.Context, caller auth.Identity, patientID uuid.UUID, in CreateRecordInput) (*MedicalRecord, error) {
	if !CanCreateRecord(caller) {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(in.Diagnosis) == "" {
		return nil, fmt.Errorf("%w: diagnosis is required", ErrValidation)
	}

	createdBy := caller.UserID
	rec := &MedicalRecord{
		PatientID: patientID,
		CreatedBy: &createdBy,
		Diagnosis: strings.TrimSpace(in.Diagnosis),
		Treatment: strings.TrimSpace(in.Treatment),
		Notes:     in.Notes,
	}
	// The existence check and the insert share a transaction so the patient
	// cannot disappear between them.
	err := s.repo.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetByUserID(ctx, patientID); err != nil {
			return err
		}
		return s.repo.CreateRecord(ctx, rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// MyMedicalHistory returns the caller's own records. Only patients have a
// history of their own.
func (s *Service) MyMedicalHistory(ctx context.Context, caller auth.Identity, limit, offset int) ([]*MedicalRecord, int, error) {
	if caller.Role != auth.RolePatient {
		return nil, 0, ErrForbidden
	}
	return s.repo.ListRecordsByPatient(ctx, caller.UserID, limit, offset)
}
