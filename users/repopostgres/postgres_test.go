package userrepopostgres_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jrsteele09/go-storefront-api/users"
	userrepopostgres "github.com/jrsteele09/go-storefront-api/users/repopostgres"
	"github.com/stretchr/testify/require"
)

const testUserID = "8f14e45f-ceea-467f-a8f6-2b8b3c4b8e21"

var userCols = []string{"id", "username", "email", "password_hash", "role", "created_by", "updated_by", "created_at", "updated_at"}

func newRepoWithMock(t *testing.T) (*userrepopostgres.PostgresUserRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return userrepopostgres.NewPostgresUserRepo(db), mock
}

func TestCreateAssignsID(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+users`).
		WithArgs(sqlmock.AnyArg(), "ana", "ana@x.com", "hash", "buyer", "system", "system", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	u := &users.User{Username: "ana", Email: "ana@x.com", PasswordHash: "hash", Role: users.RoleBuyer, CreatedBy: "system", UpdatedBy: "system"}
	require.NoError(t, repo.Create(context.Background(), u))
	require.NotEmpty(t, u.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDuplicate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+users`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &users.User{Username: "ana", Email: "ana@x.com"})
	require.ErrorIs(t, err, users.DuplicateUserErr)
}

func TestCreateDBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+users`).
		WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &users.User{Username: "ana", Email: "ana@x.com"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "db down")
}

func TestGetByEmailFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`(?s)^SELECT\s+id,.*FROM\s+users\s+WHERE\s+email\s*=\s*\$1$`).
		WithArgs("ana@x.com").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(testUserID, "ana", "ana@x.com", "hash", "seller", "system", "system", now, now))

	u, err := repo.GetByEmail(context.Background(), "ana@x.com")
	require.NoError(t, err)
	require.Equal(t, testUserID, u.ID)
	require.Equal(t, users.RoleSeller, u.Role)
	require.Equal(t, "hash", u.PasswordHash)
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^SELECT\s+id,.*FROM\s+users\s+WHERE\s+id\s*=\s*\$1$`).
		WithArgs(testUserID).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), testUserID)
	require.ErrorIs(t, err, users.UserNotFoundErr)
}

func TestGetByIDMalformed(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	_, err := repo.GetByID(context.Background(), "not-a-uuid")
	require.ErrorIs(t, err, users.InvalidIDErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMissingRow(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)^UPDATE\s+users`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &users.User{ID: testUserID, Username: "ana", Email: "ana@x.com"})
	require.ErrorIs(t, err, users.UserNotFoundErr)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1$`).
		WithArgs(testUserID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), testUserID))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAndDeleteMalformedID(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	err := repo.Update(context.Background(), &users.User{ID: "not-a-uuid", Username: "ana", Email: "ana@x.com"})
	require.ErrorIs(t, err, users.InvalidIDErr)

	err = repo.Delete(context.Background(), "not-a-uuid")
	require.ErrorIs(t, err, users.InvalidIDErr)
	require.NoError(t, mock.ExpectationsWereMet())
}
