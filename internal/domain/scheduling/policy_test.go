package scheduling

import (
	"testing"

	"github.com/google/uuid"

	"github.com/hospital/hospital/internal/platform/auth"
)

func TestCanCreateAppointment(t *testing.T) {
	if !CanCreateAppointment(auth.Identity{Role: auth.RolePatient}) {
		t.Error("patient should book appointments")
	}
	if CanCreateAppointment(auth.Identity{Role: auth.RoleDoctor}) {
		t.Error("doctor must not book appointments")
	}
	if CanCreateAppointment(auth.Identity{Role: auth.RoleAdmin}) {
		t.Error("admin must not book appointments")
	}
}

func TestCanReadAppointment(t *testing.T) {
	patient := uuid.New()
	doctor := uuid.New()
	a := &Appointment{PatientID: patient, DoctorID: doctor}

	tests := []struct {
		name  string
		ident auth.Identity
		want  bool
	}{
		{"admin", auth.Identity{UserID: uuid.New(), Role: auth.RoleAdmin}, true},
		{"owning patient", auth.Identity{UserID: patient, Role: auth.RolePatient}, true},
		{"assigned doctor", auth.Identity{UserID: doctor, Role: auth.RoleDoctor}, true},
		{"other doctor", auth.Identity{UserID: uuid.New(), Role: auth.RoleDoctor}, false},
		{"other patient", auth.Identity{UserID: uuid.New(), Role: auth.RolePatient}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanReadAppointment(tt.ident, a); got != tt.want {
				t.Errorf("CanReadAppointment = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanMutateAppointment(t *testing.T) {
	patient := uuid.New()
	doctor := uuid.New()
	a := &Appointment{PatientID: patient, DoctorID: doctor}

	tests := []struct {
		name  string
		ident auth.Identity
		want  bool
	}{
		{"admin", auth.Identity{UserID: uuid.New(), Role: auth.RoleAdmin}, true},
		{"owning patient", auth.Identity{UserID: patient, Role: auth.RolePatient}, true},
		{"assigned doctor", auth.Identity{UserID: doctor, Role: auth.RoleDoctor}, false},
		{"other patient", auth.Identity{UserID: uuid.New(), Role: auth.RolePatient}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanMutateAppointment(tt.ident, a); got != tt.want {
				t.Errorf("CanMutateAppointment = %v, want %v", got, tt.want)
			}
		})
	}
}
