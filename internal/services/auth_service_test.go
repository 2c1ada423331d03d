package services

import (
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/carelinkhq/carelink-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, *AuthService) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return mock, NewAuthService(db, testConfig())
}

func userRows(userID uuid.UUID, refreshHash string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "role", "refresh_token_hash", "is_active"}).
		AddRow(userID.String(), "ada@example.com", models.RolePatient, refreshHash, true)
}

// differsFrom matches any string argument except the given one.
type differsFrom struct{ old string }

func (d differsFrom) Match(v driver.Value) bool {
	s, ok := v.(string)
	return ok && s != d.old
}

func TestRefreshRejectsRotatedOutToken(t *testing.T) {
	mock, svc := setupMockDB(t)
	userID := uuid.New()

	// A structurally valid token whose hash no longer matches the stored one:
	// the pair was rotated after this token was issued.
	oldToken, _, err := MintRefreshToken(testConfig(), &models.User{ID: userID, Role: models.RolePatient})
	require.NoError(t, err)
	newToken, _, err := MintRefreshToken(testConfig(), &models.User{ID: userID, Role: models.RolePatient})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRows(userID, HashToken(newToken)))

	_, err = svc.Refresh(oldToken)
	require.ErrorIs(t, err, ErrTokenInvalid)
	require.NoError(t, mock.ExpectationsWereMet(), "a rejected token must never reach the rotation write")
}

func TestRefreshRejectsWhenNoTokenStored(t *testing.T) {
	mock, svc := setupMockDB(t)
	userID := uuid.New()

	token, _, err := MintRefreshToken(testConfig(), &models.User{ID: userID, Role: models.RolePatient})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRows(userID, ""))

	_, err = svc.Refresh(token)
	require.ErrorIs(t, err, ErrTokenInvalid)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshRotatesStoredHash(t *testing.T) {
	mock, svc := setupMockDB(t)
	userID := uuid.New()

	token, _, err := MintRefreshToken(testConfig(), &models.User{ID: userID, Role: models.RolePatient})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRows(userID, HashToken(token)))
	// Rotation must overwrite the hash with a different value, retiring the
	// supplied token.
	mock.ExpectExec(`UPDATE "users" SET "refresh_token_hash"`).
		WithArgs(differsFrom{old: HashToken(token)}, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	tokens, err := svc.Refresh(token)
	require.NoError(t, err)
	require.NotEqual(t, token, tokens.RefreshToken)

	// The new token belongs to the same user and passes verification.
	subject, err := ParseRefreshToken(testConfig(), tokens.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, userID, subject)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureAccessCodeRetriesOnWriteCollision(t *testing.T) {
	mock, svc := setupMockDB(t)
	user := &models.User{ID: uuid.New(), Role: models.RolePatient}

	// First candidate passes the pre-check but loses the race at the write.
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`UPDATE "users" SET "access_code"`).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_access_code" (SQLSTATE 23505)`))

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`UPDATE "users" SET "access_code"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	code, err := svc.EnsureAccessCode(user)
	require.NoError(t, err)
	require.Len(t, code, 6)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureAccessCodeStopsOnUnrelatedWriteError(t *testing.T) {
	mock, svc := setupMockDB(t)
	user := &models.User{ID: uuid.New(), Role: models.RolePatient}

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`UPDATE "users" SET "access_code"`).
		WillReturnError(errors.New("connection reset by peer"))

	_, err := svc.EnsureAccessCode(user)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
