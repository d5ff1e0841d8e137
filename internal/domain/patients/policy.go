package patients

import (
	"github.com/google/uuid"

	"github.com/hospital/hospital/internal/platform/auth"
)

// Access rules for patient profiles and medical records. Doctors and
// administrators read and write any profile; a patient reads only their
// own and never writes one.

// CanReadPatient reports whether ident may view the given patient profile.
func CanReadPatient(ident auth.Identity, patientID uuid.UUID) bool {
	if ident.IsStaff() {
		return true
	}
	if ident.Role == auth.RoleDoctor {
		return true
	}
	return ident.Role == auth.RolePatient && ident.UserID == patientID
}

// CanWritePatient reports whether ident may create, modify, or delete
// patient profiles. Clinical staff only; patients never edit their own.
func CanWritePatient(ident auth.Identity) bool {
	return ident.IsStaff() || ident.Role == auth.RoleDoctor
}

// CanReadRecords reports whether ident may view the medical history of the
// given patient.
func CanReadRecords(ident auth.Identity, patientID uuid.UUID) bool {
	return CanReadPatient(ident, patientID)
}

// CanCreateRecord reports whether ident may author a medical record.
// Patients never write to their own history.
func CanCreateRecord(ident auth.Identity) bool {
	return ident.Role == auth.RoleDoctor || ident.IsStaff()
}
