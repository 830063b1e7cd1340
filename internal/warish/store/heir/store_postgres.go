package heir

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"warishd/internal/warish/models"
	"warishd/pkg/domain"
	"warishd/pkg/platform/sentinel"
	pgtx "warishd/pkg/platform/tx"
)

// Postgres persists heir records in PostgreSQL. All statements are tx-aware:
// when RunInTx has placed a transaction in the context, they execute inside
// it, so a cascading delete commits or rolls back as one unit.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed heir store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const heirColumns = `id, application_id, parent_id, name, gender, relation, living_status, maritial_status, spouse_name, created_at, updated_at`

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Postgres) q(ctx context.Context) querier {
	if tx, ok := pgtx.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *Postgres) FindByApplication(ctx context.Context, applicationID domain.ApplicationID) ([]*models.HeirRecord, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		`SELECT `+heirColumns+` FROM warish_heirs WHERE application_id = $1 ORDER BY created_at, id`,
		uuid.UUID(applicationID))
	if err != nil {
		return nil, fmt.Errorf("find heirs by application: %w", err)
	}
	defer rows.Close()
	return scanHeirs(rows)
}

func (s *Postgres) FindByID(ctx context.Context, id domain.HeirID) (*models.HeirRecord, error) {
	row := s.q(ctx).QueryRowContext(ctx,
		`SELECT `+heirColumns+` FROM warish_heirs WHERE id = $1`, uuid.UUID(id))
	rec, err := scanHeir(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("heir %s: %w", id, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find heir by id: %w", err)
	}
	return rec, nil
}

func (s *Postgres) FindChildren(ctx context.Context, parentID domain.HeirID) ([]*models.HeirRecord, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		`SELECT `+heirColumns+` FROM warish_heirs WHERE parent_id = $1 ORDER BY created_at, id`,
		uuid.UUID(parentID))
	if err != nil {
		return nil, fmt.Errorf("find heir children: %w", err)
	}
	defer rows.Close()
	return scanHeirs(rows)
}

func (s *Postgres) Insert(ctx context.Context, rec *models.HeirRecord) error {
	_, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO warish_heirs (`+heirColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		uuid.UUID(rec.ID), uuid.UUID(rec.ApplicationID), parentArg(rec.ParentID),
		rec.Name, string(rec.Gender), string(rec.Relation),
		string(rec.LivingStatus), string(rec.MaritalStatus), rec.SpouseName,
		rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("heir %s already exists: %w", rec.ID, sentinel.ErrConflict)
		}
		return fmt.Errorf("insert heir: %w", err)
	}
	return nil
}

func (s *Postgres) Update(ctx context.Context, rec *models.HeirRecord) error {
	// parent_id and application_id are deliberately absent: immutable columns.
	res, err := s.q(ctx).ExecContext(ctx, `
		UPDATE warish_heirs
		SET name = $2, gender = $3, relation = $4, living_status = $5,
		    maritial_status = $6, spouse_name = $7, updated_at = $8
		WHERE id = $1
	`,
		uuid.UUID(rec.ID), rec.Name, string(rec.Gender), string(rec.Relation),
		string(rec.LivingStatus), string(rec.MaritalStatus), rec.SpouseName, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update heir: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update heir rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("heir %s: %w", rec.ID, sentinel.ErrNotFound)
	}
	return nil
}

func (s *Postgres) Remove(ctx context.Context, id domain.HeirID) error {
	res, err := s.q(ctx).ExecContext(ctx,
		`DELETE FROM warish_heirs WHERE id = $1`, uuid.UUID(id))
	if err != nil {
		return fmt.Errorf("remove heir: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove heir rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("heir %s: %w", id, sentinel.ErrNotFound)
	}
	return nil
}

// RunInTx begins a transaction, stores it in the context for the statement
// helpers, and commits on success.
func (s *Postgres) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(pgtx.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHeir(row rowScanner) (*models.HeirRecord, error) {
	var (
		rec      models.HeirRecord
		id       uuid.UUID
		appID    uuid.UUID
		parentID uuid.NullUUID
		spouse   sql.NullString
	)
	err := row.Scan(&id, &appID, &parentID, &rec.Name, &rec.Gender, &rec.Relation,
		&rec.LivingStatus, &rec.MaritalStatus, &spouse, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	rec.ID = domain.HeirID(id)
	rec.ApplicationID = domain.ApplicationID(appID)
	if parentID.Valid {
		pid := domain.HeirID(parentID.UUID)
		rec.ParentID = &pid
	}
	rec.SpouseName = spouse.String
	return &rec, nil
}

func scanHeirs(rows *sql.Rows) ([]*models.HeirRecord, error) {
	var out []*models.HeirRecord
	for rows.Next() {
		rec, err := scanHeir(rows)
		if err != nil {
			return nil, fmt.Errorf("scan heir: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate heirs: %w", err)
	}
	return out, nil
}

func parentArg(id *domain.HeirID) any {
	if id == nil {
		return nil
	}
	return uuid.UUID(*id)
}
