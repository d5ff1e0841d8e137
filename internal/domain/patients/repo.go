package patients

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence interface for patient profiles and their
// medical records.
type Repository interface {
	// WithinTx runs fn with every repository call inside it sharing one
	// transaction.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error

	Create(ctx context.Context, p *Patient) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, userID uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)

	CreateRecord(ctx context.Context, rec *MedicalRecord) error
	GetRecord(ctx context.Context, id uuid.UUID) (*MedicalRecord, error)
	ListRecordsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*MedicalRecord, int, error)
}
