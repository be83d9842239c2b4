package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/scolara/scolara-api/internal/models"
)

// SchoolRepository persists one JSONB document per tenant. The aggregation
// layer depends only on whole-document reads, merge updates of top-level
// fields and append/remove of single array elements; those operations keep
// per-field granularity on the remote side.
type SchoolRepository struct {
	db *sqlx.DB
}

// NewSchoolRepository constructs a SchoolRepository.
func NewSchoolRepository(db *sqlx.DB) *SchoolRepository {
	return &SchoolRepository{db: db}
}

type schoolRow struct {
	ID  string `db:"id"`
	Doc []byte `db:"doc"`
}

// All reads every tenant document for the wholesale in-memory load.
func (r *SchoolRepository) All(ctx context.Context) ([]models.SchoolData, error) {
	var rows []schoolRow
	if err := r.db.SelectContext(ctx, &rows, "SELECT id, doc FROM schools ORDER BY id"); err != nil {
		return nil, fmt.Errorf("load schools: %w", err)
	}
	schools := make([]models.SchoolData, 0, len(rows))
	for _, row := range rows {
		var school models.SchoolData
		if err := json.Unmarshal(row.Doc, &school); err != nil {
			return nil, fmt.Errorf("decode school %s: %w", row.ID, err)
		}
		school.ID = row.ID
		schools = append(schools, school)
	}
	return schools, nil
}

// Get reads one tenant document. sql.ErrNoRows bubbles up for missing tenants.
func (r *SchoolRepository) Get(ctx context.Context, id string) (*models.SchoolData, error) {
	var row schoolRow
	if err := r.db.GetContext(ctx, &row, "SELECT id, doc FROM schools WHERE id = $1", id); err != nil {
		return nil, err
	}
	var school models.SchoolData
	if err := json.Unmarshal(row.Doc, &school); err != nil {
		return nil, fmt.Errorf("decode school %s: %w", id, err)
	}
	school.ID = row.ID
	return &school, nil
}

// Count returns the number of stored tenants; used by the seed guard.
func (r *SchoolRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM schools"); err != nil {
		return 0, fmt.Errorf("count schools: %w", err)
	}
	return count, nil
}

// Merge overlays the given top-level fields onto the tenant document.
func (r *SchoolRepository) Merge(ctx context.Context, id string, fields map[string]interface{}) error {
	payload, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode merge fields: %w", err)
	}
	const query = `UPDATE schools SET doc = doc || $2::jsonb, updated_at = $3 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("merge school %s: %w", id, err)
	}
	return requireRow(result, id)
}

// AppendElement appends one element to a top-level array field.
func (r *SchoolRepository) AppendElement(ctx context.Context, id, field string, elem interface{}) error {
	payload, err := json.Marshal(elem)
	if err != nil {
		return fmt.Errorf("encode element: %w", err)
	}
	const query = `UPDATE schools
        SET doc = jsonb_set(doc, ARRAY[$2]::text[], COALESCE(doc->$2, '[]'::jsonb) || jsonb_build_array($3::jsonb)),
            updated_at = $4
        WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, field, payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("append %s element for school %s: %w", field, id, err)
	}
	return requireRow(result, id)
}

// RemoveElement drops the array element whose "id" key matches elemID.
func (r *SchoolRepository) RemoveElement(ctx context.Context, id, field, elemID string) error {
	const query = `UPDATE schools
        SET doc = jsonb_set(doc, ARRAY[$2]::text[], COALESCE(
                (SELECT jsonb_agg(elem) FROM jsonb_array_elements(doc->$2) elem WHERE elem->>'id' <> $3),
                '[]'::jsonb)),
            updated_at = $4
        WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, field, elemID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("remove %s element for school %s: %w", field, id, err)
	}
	return requireRow(result, id)
}

// Insert stores a new tenant document. Used by provisioning.
func (r *SchoolRepository) Insert(ctx context.Context, school *models.SchoolData) error {
	payload, err := json.Marshal(school)
	if err != nil {
		return fmt.Errorf("encode school %s: %w", school.ID, err)
	}
	const query = `INSERT INTO schools (id, doc, updated_at) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, school.ID, payload, time.Now().UTC()); err != nil {
		return fmt.Errorf("insert school %s: %w", school.ID, err)
	}
	return nil
}

// Seed bootstraps the store from the fixed initial dataset. It is a no-op
// when any tenant already exists.
func (r *SchoolRepository) Seed(ctx context.Context, schools []models.SchoolData) error {
	count, err := r.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck
	now := time.Now().UTC()
	for i := range schools {
		payload, err := json.Marshal(&schools[i])
		if err != nil {
			return fmt.Errorf("encode seed school %s: %w", schools[i].ID, err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schools (id, doc, updated_at) VALUES ($1, $2, $3)", schools[i].ID, payload, now); err != nil {
			return fmt.Errorf("seed school %s: %w", schools[i].ID, err)
		}
	}
	return tx.Commit()
}

func requireRow(result interface{ RowsAffected() (int64, error) }, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for school %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("school %s not found", id)
	}
	return nil
}
