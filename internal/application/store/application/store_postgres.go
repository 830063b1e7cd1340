package application

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"warishd/internal/application/models"
	"warishd/pkg/domain"
	"warishd/pkg/platform/sentinel"
)

// Postgres persists applications in PostgreSQL.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed application store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const applicationColumns = `id, applicant_name, deceased_name, village, status, created_at, updated_at`

func (s *Postgres) FindByID(ctx context.Context, id domain.ApplicationID) (*models.Application, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM warish_applications WHERE id = $1`, uuid.UUID(id))
	rec, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("application %s: %w", id, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find application by id: %w", err)
	}
	return rec, nil
}

func (s *Postgres) List(ctx context.Context) ([]*models.Application, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+applicationColumns+` FROM warish_applications ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var out []*models.Application
	for rows.Next() {
		rec, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applications: %w", err)
	}
	return out, nil
}

func (s *Postgres) Insert(ctx context.Context, rec *models.Application) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO warish_applications (`+applicationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		uuid.UUID(rec.ID), rec.ApplicantName, rec.DeceasedName, rec.Village,
		string(rec.Status), rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("application %s already exists: %w", rec.ID, sentinel.ErrConflict)
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

func (s *Postgres) Update(ctx context.Context, rec *models.Application) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE warish_applications
		SET applicant_name = $2, deceased_name = $3, village = $4, status = $5, updated_at = $6
		WHERE id = $1
	`,
		uuid.UUID(rec.ID), rec.ApplicantName, rec.DeceasedName, rec.Village,
		string(rec.Status), rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update application rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("application %s: %w", rec.ID, sentinel.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (*models.Application, error) {
	var (
		rec     models.Application
		id      uuid.UUID
		village sql.NullString
	)
	err := row.Scan(&id, &rec.ApplicantName, &rec.DeceasedName, &village,
		&rec.Status, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	rec.ID = domain.ApplicationID(id)
	rec.Village = village.String
	return &rec, nil
}
