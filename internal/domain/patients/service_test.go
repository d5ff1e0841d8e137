package patients

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hospital/hospital/internal/platform/auth"
)

type mockRepo struct {
	patients map[uuid.UUID]*Patient
	records  map[uuid.UUID]*MedicalRecord
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		patients: make(map[uuid.UUID]*Patient),
		records:  make(map[uuid.UUID]*MedicalRecord),
	}
}

func (m *mockRepo) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *mockRepo) Create(ctx context.Context, p *Patient) error {
	m.patients[p.UserID] = p
	return nil
}

func (m *mockRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*Patient, error) {
	p, ok := m.patients[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (m *mockRepo) Update(ctx context.Context, p *Patient) error {
	if _, ok := m.patients[p.UserID]; !ok {
		return ErrNotFound
	}
	m.patients[p.UserID] = p
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, userID uuid.UUID) error {
	if _, ok := m.patients[userID]; !ok {
		return ErrNotFound
	}
	delete(m.patients, userID)
	return nil
}

func (m *mockRepo) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var all []*Patient
	for _, p := range m.patients {
		all = append(all, p)
	}
	total := len(all)
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, total, nil
}

func (m *mockRepo) CreateRecord(ctx context.Context, rec *MedicalRecord) error {
	rec.ID = uuid.New()
	rec.VisitDate = time.Now()
	rec.CreatedAt = rec.VisitDate
	rec.UpdatedAt = rec.VisitDate
	m.records[rec.ID] = rec
	return nil
}

func (m *mockRepo) GetRecord(ctx context.Context, id uuid.UUID) (*MedicalRecord, error) {
	rec, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return rec, nil
}

func (m *mockRepo) ListRecordsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*MedicalRecord, int, error) {
	var all []*MedicalRecord
	for _, rec := range m.records {
		if rec.PatientID == patientID {
			all = append(all, rec)
		}
	}
	total := len(all)
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, total, nil
}

func seedPatient(repo *mockRepo) *Patient {
	p := &Patient{UserID: uuid.New(), Username: "alice", FirstName: "Alice", LastName: "Smith"}
	repo.patients[p.UserID] = p
	return p
}

func TestListPatients_Scoping(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	a := seedPatient(repo)
	seedPatient(repo)

	t.Run("admin sees all", func(t *testing.T) {
		_, total, err := svc.ListPatients(context.Background(), auth.Identity{Role: auth.RoleAdmin}, 20, 0)
		if err != nil || total != 2 {
			t.Errorf("total = %d (err %v), want 2", total, err)
		}
	})

	t.Run("doctor sees all", func(t *testing.T) {
		_, total, err := svc.ListPatients(context.Background(), auth.Identity{Role: auth.RoleDoctor}, 20, 0)
		if err != nil || total != 2 {
			t.Errorf("total = %d (err %v), want 2", total, err)
		}
	})

	t.Run("patient sees self only", func(t *testing.T) {
		list, total, err := svc.ListPatients(context.Background(),
			auth.Identity{UserID: a.UserID, Role: auth.RolePatient}, 20, 0)
		if err != nil || total != 1 || len(list) != 1 {
			t.Fatalf("got %d patients (err %v), want 1", len(list), err)
		}
		if list[0].UserID != a.UserID {
			t.Error("patient saw someone else's profile")
		}
	})

	t.Run("patient without profile sees empty", func(t *testing.T) {
		list, total, err := svc.ListPatients(context.Background(),
			auth.Identity{UserID: uuid.New(), Role: auth.RolePatient}, 20, 0)
		if err != nil || total != 0 || len(list) != 0 {
			t.Errorf("got %d patients (err %v), want empty", len(list), err)
		}
	})
}

func TestGetPatient_Denial(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	a := seedPatient(repo)
	b := seedPatient(repo)

	if _, err := svc.GetPatient(context.Background(),
		auth.Identity{UserID: b.UserID, Role: auth.RolePatient}, a.UserID); err != ErrForbidden {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
	if _, err := svc.GetPatient(context.Background(),
		auth.Identity{UserID: a.UserID, Role: auth.RolePatient}, a.UserID); err != nil {
		t.Errorf("owner read failed: %v", err)
	}
}

func TestUpdatePatient_Doctor(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	a := seedPatient(repo)

	addr := "1 Hospital Way"
	got, err := svc.UpdatePatient(context.Background(),
		auth.Identity{UserID: uuid.New(), Role: auth.RoleDoctor}, a.UserID,
		UpdatePatientInput{Address: &addr})
	if err != nil {
		t.Fatalf("UpdatePatient: %v", err)
	}
	if got.Address != addr {
		t.Errorf("address = %q, want %q", got.Address, addr)
	}
}

func TestUpdatePatient_OwnerDenied(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	a := seedPatient(repo)

	addr := "1 Hospital Way"
	_, err := svc.UpdatePatient(context.Background(),
		auth.Identity{UserID: a.UserID, Role: auth.RolePatient}, a.UserID,
		UpdatePatientInput{Address: &addr})
	if err != ErrForbidden {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestCreatePatient_PatientDenied(t *testing.T) {
	svc := NewService(newMockRepo())
	caller := auth.Identity{UserID: uuid.New(), Role: auth.RolePatient}

	_, err := svc.CreatePatient(context.Background(), caller,
		CreatePatientInput{UserID: caller.UserID, Phone: "555-0100"})
	if err != ErrForbidden {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestCreatePatient_DoctorForUser(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	userID := uuid.New()

	got, err := svc.CreatePatient(context.Background(),
		auth.Identity{UserID: uuid.New(), Role: auth.RoleDoctor},
		CreatePatientInput{UserID: userID, Phone: "555-0100"})
	if err != nil {
		t.Fatalf("CreatePatient: %v", err)
	}
	if got.UserID != userID {
		t.Errorf("user_id = %s, want %s", got.UserID, userID)
	}
}

func TestCreatePatient_RequiresUserID(t *testing.T) {
	svc := NewService(newMockRepo())
	_, err := svc.CreatePatient(context.Background(),
		auth.Identity{UserID: uuid.New(), Role: auth.RoleAdmin}, CreatePatientInput{})
	if err == nil {
		t.Error("expected validation error")
	}
}

func TestListRecords_OtherPatientGetsEmptyPage(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	a := seedPatient(repo)
	b := seedPatient(repo)
	doctor := uuid.New()
	repo.records[uuid.New()] = &MedicalRecord{ID: uuid.New(), PatientID: a.UserID, CreatedBy: &doctor, Diagnosis: "flu"}

	recs, total, err := svc.ListRecords(context.Background(),
		auth.Identity{UserID: b.UserID, Role: auth.RolePatient}, a.UserID, 20, 0)
	if err != nil {
		t.Fatalf("ListRecords: %v", err)
	}
	if total != 0 || len(recs) != 0 {
		t.Errorf("got %d records, want empty page", len(recs))
	}
}

func TestGetRecord_ObjectLevelDenial(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	a := seedPatient(repo)
	b := seedPatient(repo)
	rec := &MedicalRecord{ID: uuid.New(), PatientID: a.UserID, Diagnosis: "flu"}
	repo.records[rec.ID] = rec

	if _, err := svc.GetRecord(context.Background(),
		auth.Identity{UserID: b.UserID, Role: auth.RolePatient}, rec.ID); err != ErrForbidden {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
	if _, err := svc.GetRecord(context.Background(),
		auth.Identity{UserID: uuid.New(), Role: auth.RoleDoctor}, rec.ID); err != nil {
		t.Errorf("doctor read failed: %v", err)
	}
}

func TestCreateRecord_AuthorIsCaller(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	a := seedPatient(repo)
	doctor := auth.Identity{UserID: uuid.New(), Role: auth.RoleDoctor}

	rec, err := svc.CreateRecord(context.Background(), doctor, a.UserID,
		CreateRecordInput{Diagnosis: "flu", Treatment: "rest"})
	if err != nil {
		t.Fatalf("CreateRecord: %v", err)
	}
	if rec.CreatedBy == nil || *rec.CreatedBy != doctor.UserID {
		t.Errorf("created_by = %v, want caller", rec.CreatedBy)
	}
	if rec.PatientID != a.UserID {
		t.Errorf("patient_id = %s, want %s", rec.PatientID, a.UserID)
	}
}

func TestCreateRecord_PatientDenied(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	a := seedPatient(repo)

	_, err := svc.CreateRecord(context.Background(),
		auth.Identity{UserID: a.UserID, Role: auth.RolePatient}, a.UserID,
		CreateRecordInput{Diagnosis: "self-diagnosis"})
	if err != ErrForbidden {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestCreateRecord_RequiresDiagnosis(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	a := seedPatient(repo)

	_, err := svc.CreateRecord(context.Background(),
		auth.Identity{UserID: uuid.New(), Role: auth.RoleDoctor}, a.UserID,
		CreateRecordInput{Diagnosis: "  "})
	if err == nil {
		t.Error("expected validation error")
	}
}

func TestCreateRecord_UnknownPatient(t *testing.T) {
	svc := NewService(newMockRepo())
	_, err := svc.CreateRecord(context.Background(),
		auth.Identity{UserID: uuid.New(), Role: auth.RoleDoctor}, uuid.New(),
		CreateRecordInput{Diagnosis: "flu"})
	if err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMyMedicalHistory(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	a := seedPatient(repo)
	rec := &MedicalRecord{ID: uuid.New(), PatientID: a.UserID, Diagnosis: "flu"}
	repo.records[rec.ID] = rec

	recs, total, err := svc.MyMedicalHistory(context.Background(),
		auth.Identity{UserID: a.UserID, Role: auth.RolePatient}, 20, 0)
	if err != nil {
		t.Fatalf("MyMedicalHistory: %v", err)
	}
	if total != 1 || len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}

	if _, _, err := svc.MyMedicalHistory(context.Background(),
		auth.Identity{Role: auth.RoleDoctor}, 20, 0); err != ErrForbidden {
		t.Errorf("doctor err = %v, want ErrForbidden", err)
	}
}
