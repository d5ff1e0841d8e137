package scheduling

import "github.com/hospital/hospital/internal/platform/auth"

// Access rules for appointments. The assigned doctor may review a booking
// but only the owning patient and administrators change or cancel it.

// CanCreateAppointment reports whether ident may book an appointment.
// Only patients book; staff manage existing bookings instead.
func CanCreateAppointment(ident auth.Identity) bool {
	return ident.Role == auth.RolePatient
}

// CanReadAppointment reports whether ident may view the appointment.
func CanReadAppointment(ident auth.Identity, a *Appointment) bool {
	if ident.IsStaff() {
		return true
	}
	if ident.Role == auth.RoleDoctor && ident.UserID == a.DoctorID {
		return true
	}
	return ident.Role == auth.RolePatient && ident.UserID == a.PatientID
}

// CanMutateAppointment reports whether ident may modify or cancel the
// appointment.
func CanMutateAppointment(ident auth.Identity, a *Appointment) bool {
	if ident.IsStaff() {
		return true
	}
	return ident.Role == auth.RolePatient && ident.UserID == a.PatientID
}
