package directory_test

import (
	"context"
	"testing"

	"karma-manager/internal/directory"
	directoryerrors "karma-manager/internal/directory/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db, PreferSimpleProtocol: true}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return gdb, mock
}

func TestRepository_FindAllByCompany_Students(t *testing.T) {
	gdb, mock := newGormMock(t)
	repo := directory.NewRepository(gdb)

	companyID := uuid.New()
	studentID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "company_id", "full_name", "class_name"}).
		AddRow(studentID.String(), companyID.String(), "Deni", "7B")

	mock.ExpectQuery(`SELECT \* FROM "students" WHERE company_id = \$1`).
		WithArgs(companyID.String()).
		WillReturnRows(rows)

	people, err := repo.FindAllByCompany(context.Background(), companyID.String(), directory.KindStudent)
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, directory.Person{ID: studentID, CompanyID: companyID, Kind: directory.KindStudent, Name: "Deni", Label: "7B"}, people[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByIDAndCompany_UnknownKind(t *testing.T) {
	gdb, mock := newGormMock(t)
	repo := directory.NewRepository(gdb)

	_, err := repo.FindByIDAndCompany(context.Background(), uuid.NewString(), "guest", uuid.NewString())
	assert.ErrorIs(t, err, directoryerrors.ErrInvalidKind)
	assert.NoError(t, mock.ExpectationsWereMet())
}
