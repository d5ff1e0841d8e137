package patients

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hospital/hospital/internal/platform/db"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *repoPG) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return db.WithTx(ctx, r.pool, fn)
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const patientCols = `p.user_id, p.date_of_birth, p.address, p.phone, p.created_at, p.updated_at,
	u.username, u.first_name, u.last_name, u.email`

const patientFrom = ` FROM patients p JOIN users u ON u.id = p.user_id`

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patients (user_id, date_of_birth, address, phone)
		VALUES ($1,$2,$3,$4)`,
		p.UserID, p.DateOfBirth, p.Address, p.Phone,
	)
	return err
}

func (r *repoPG) GetByUserID(ctx context.Context, userID uuid.UUID) (*Patient, error) {
	p, err := scanPatient(r.conn(ctx).QueryRow(ctx,
		`SELECT `+patientCols+patientFrom+` WHERE p.user_id = $1`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patients SET date_of_birth=$2, address=$3, phone=$4, updated_at=NOW()
		WHERE user_id = $1`,
		p.UserID, p.DateOfBirth, p.Address, p.Phone,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, userID uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM patients WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+patientCols+patientFrom+` ORDER BY u.last_name, u.first_name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []*Patient
	for rows.Next() {
		var p Patient
		if err := rows.Scan(&p.UserID, &p.DateOfBirth, &p.Address, &p.Phone, &p.CreatedAt, &p.UpdatedAt,
			&p.Username, &p.FirstName, &p.LastName, &p.Email); err != nil {
			return nil, 0, err
		}
		list = append(list, &p)
	}
	return list, total, nil
}

const recordCols = `r.id, r.patient_id, r.created_by, r.visit_date, r.diagnosis, r.treatment, r.notes,
	r.created_at, r.updated_at, COALESCE(u.first_name || ' ' || u.last_name, '')`

const recordFrom = ` FROM medical_records r LEFT JOIN users u ON u.id = r.created_by`

func (r *repoPG) CreateRecord(ctx context.Context, rec *MedicalRecord) error {
	rec.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO medical_records (id, patient_id, created_by, diagnosis, treatment, notes)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING visit_date, created_at, updated_at`,
		rec.ID, rec.PatientID, rec.CreatedBy, rec.Diagnosis, rec.Treatment, rec.Notes,
	).Scan(&rec.VisitDate, &rec.CreatedAt, &rec.UpdatedAt)
}

func (r *repoPG) GetRecord(ctx context.Context, id uuid.UUID) (*MedicalRecord, error) {
	rec, err := scanRecord(r.conn(ctx).QueryRow(ctx,
		`SELECT `+recordCols+recordFrom+` WHERE r.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rec, err
}

func (r *repoPG) ListRecordsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*MedicalRecord, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM medical_records WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+recordCols+recordFrom+` WHERE r.patient_id = $1 ORDER BY r.visit_date DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []*MedicalRecord
	for rows.Next() {
		var rec MedicalRecord
		if err := rows.Scan(&rec.ID, &rec.PatientID, &rec.CreatedBy, &rec.VisitDate,
			&rec.Diagnosis, &rec.Treatment, &rec.Notes,
			&rec.CreatedAt, &rec.UpdatedAt, &rec.CreatedByName); err != nil {
			return nil, 0, err
		}
		list = append(list, &rec)
	}
	return list, total, nil
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.UserID, &p.DateOfBirth, &p.Address, &p.Phone, &p.CreatedAt, &p.UpdatedAt,
		&p.Username, &p.FirstName, &p.LastName, &p.Email)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanRecord(row pgx.Row) (*MedicalRecord, error) {
	var rec MedicalRecord
	err := row.Scan(&rec.ID, &rec.PatientID, &rec.CreatedBy, &rec.VisitDate,
		&rec.Diagnosis, &rec.Treatment, &rec.Notes,
		&rec.CreatedAt, &rec.UpdatedAt, &rec.CreatedByName)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
