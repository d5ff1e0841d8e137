package patients

import (
	"time"

	"github.com/google/uuid"
)

// Patient is the clinical profile attached to a PATIENT user account. It
// shares its primary key with the owning user.
type Patient struct {
	UserID      uuid.UUID  `json:"id"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Address     string     `json:"address"`
	Phone       string     `json:"phone"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Joined from the users table on reads.
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// MedicalRecord is a single clinical note on a patient's history. CreatedBy
// points at the authoring user and survives as NULL if that account is
// deleted.
type MedicalRecord struct {
	ID            uuid.UUID  `json:"id"`
	PatientID     uuid.UUID  `json:"patient_id"`
	CreatedBy     *uuid.UUID `json:"created_by"`
	CreatedByName string     `json:"created_by_name,omitempty"`
	VisitDate     time.Time  `json:"visit_date"`
	Diagnosis     string     `json:"diagnosis"`
	Treatment     string     `json:"treatment"`
	Notes         *string    `json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CreatePatientInput registers a clinical profile for an existing user.
type CreatePatientInput struct {
	UserID      uuid.UUID  `json:"user_id"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Address     string     `json:"address"`
	Phone       string     `json:"phone"`
}

// UpdatePatientInput carries the mutable profile fields. Nil fields are
// left unchanged.
type UpdatePatientInput struct {
	DateOfBirth *time.Time `json:"date_of_birth"`
	Address     *string    `json:"address"`
	Phone       *string    `json:"phone"`
}

// CreateRecordInput is the payload for adding a medical record. The author
// and visit date are set server-side.
type CreateRecordInput struct {
	Diagnosis string  `json:"diagnosis"`
	Treatment string  `json:"treatment"`
	Notes     *string `json:"notes"`
}
