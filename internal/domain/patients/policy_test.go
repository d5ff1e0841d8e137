package patients

import (
	"testing"

	"github.com/google/uuid"

	"github.com/hospital/hospital/internal/platform/auth"
)

func TestCanReadPatient(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	tests := []struct {
		name  string
		ident auth.Identity
		pid   uuid.UUID
		want  bool
	}{
		{"admin any patient", auth.Identity{UserID: other, Role: auth.RoleAdmin}, owner, true},
		{"doctor any patient", auth.Identity{UserID: other, Role: auth.RoleDoctor}, owner, true},
		{"patient own profile", auth.Identity{UserID: owner, Role: auth.RolePatient}, owner, true},
		{"patient other profile", auth.Identity{UserID: other, Role: auth.RolePatient}, owner, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanReadPatient(tt.ident, tt.pid); got != tt.want {
				t.Errorf("CanReadPatient = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanWritePatient(t *testing.T) {
	tests := []struct {
		name  string
		ident auth.Identity
		want  bool
	}{
		{"admin", auth.Identity{UserID: uuid.New(), Role: auth.RoleAdmin}, true},
		{"doctor", auth.Identity{UserID: uuid.New(), Role: auth.RoleDoctor}, true},
		{"patient even on own profile", auth.Identity{UserID: uuid.New(), Role: auth.RolePatient}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanWritePatient(tt.ident); got != tt.want {
				t.Errorf("CanWritePatient = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanCreateRecord(t *testing.T) {
	if !CanCreateRecord(auth.Identity{Role: auth.RoleDoctor}) {
		t.Error("doctor should author records")
	}
	if !CanCreateRecord(auth.Identity{Role: auth.RoleAdmin}) {
		t.Error("admin should author records")
	}
	if CanCreateRecord(auth.Identity{Role: auth.RolePatient}) {
		t.Error("patient must not author records")
	}
}
