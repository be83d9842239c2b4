package repository

import (
	"context"
	"encoding/json"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scolara/scolara-api/internal/models"
)

func newSchoolMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestSchoolRepositoryAll(t *testing.T) {
	db, mock, cleanup := newSchoolMock(t)
	defer cleanup()
	repo := NewSchoolRepository(db)

	doc, err := json.Marshal(models.SchoolData{
		ID:      "northwood-high",
		Profile: models.SchoolProfile{Name: "Northwood High", Tier: models.TierPro},
	})
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id, doc FROM schools ORDER BY id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "doc"}).AddRow("northwood-high", doc))

	schools, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Len(t, schools, 1)
	assert.Equal(t, "northwood-high", schools[0].ID)
	assert.Equal(t, "Northwood High", schools[0].Profile.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchoolRepositoryGetDecodes(t *testing.T) {
	db, mock, cleanup := newSchoolMock(t)
	defer cleanup()
	repo := NewSchoolRepository(db)

	doc, err := json.Marshal(models.SchoolData{
		Students: []models.Student{{ID: "s1", FullName: "Ada"}},
	})
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id, doc FROM schools WHERE id").
		WithArgs("northwood-high").
		WillReturnRows(sqlmock.NewRows([]string{"id", "doc"}).AddRow("northwood-high", doc))

	school, err := repo.Get(context.Background(), "northwood-high")
	require.NoError(t, err)
	require.Len(t, school.Students, 1)
	assert.Equal(t, "Ada", school.Students[0].FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchoolRepositoryMerge(t *testing.T) {
	db, mock, cleanup := newSchoolMock(t)
	defer cleanup()
	repo := NewSchoolRepository(db)

	mock.ExpectExec("UPDATE schools SET doc = doc").
		WithArgs("northwood-high", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Merge(context.Background(), "northwood-high", map[string]interface{}{
		"students": []models.Student{{ID: "s1"}},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchoolRepositoryMergeMissingTenant(t *testing.T) {
	db, mock, cleanup := newSchoolMock(t)
	defer cleanup()
	repo := NewSchoolRepository(db)

	mock.ExpectExec("UPDATE schools SET doc = doc").
		WithArgs("ghost", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Merge(context.Background(), "ghost", map[string]interface{}{"students": nil})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchoolRepositoryAppendElement(t *testing.T) {
	db, mock, cleanup := newSchoolMock(t)
	defer cleanup()
	repo := NewSchoolRepository(db)

	mock.ExpectExec("UPDATE schools").
		WithArgs("northwood-high", "grades", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AppendElement(context.Background(), "northwood-high", "grades", models.Grade{ID: "g1", Score: "17"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchoolRepositoryRemoveElement(t *testing.T) {
	db, mock, cleanup := newSchoolMock(t)
	defer cleanup()
	repo := NewSchoolRepository(db)

	mock.ExpectExec("UPDATE schools").
		WithArgs("northwood-high", "teachers", "t1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.RemoveElement(context.Background(), "northwood-high", "teachers", "t1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchoolRepositorySeedSkipsWhenPopulated(t *testing.T) {
	db, mock, cleanup := newSchoolMock(t)
	defer cleanup()
	repo := NewSchoolRepository(db)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	err := repo.Seed(context.Background(), []models.SchoolData{{ID: "any"}})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchoolRepositorySeedInsertsWhenEmpty(t *testing.T) {
	db, mock, cleanup := newSchoolMock(t)
	defer cleanup()
	repo := NewSchoolRepository(db)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO schools").
		WithArgs("northwood-high", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Seed(context.Background(), []models.SchoolData{{ID: "northwood-high"}})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
