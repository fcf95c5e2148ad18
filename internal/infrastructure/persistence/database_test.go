package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/oms/backend/internal/infrastructure/config"
)

// newMockDatabase creates a Database instance with a mocked SQL connection
func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return &Database{DB: gormDB}, mock, mockDB
}

func TestGormCustomerRepository_FindByEmails_SQL(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "customers" WHERE email IN \(\$1,\$2\)`).
		WithArgs("a@example.com", "b@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "first_name"}).
			AddRow(id, "a@example.com", "ana"))

	repo := NewGormCustomerRepository(db.DB)
	found, err := repo.FindByEmails(context.Background(), []string{"a@example.com", "b@example.com"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, id, found[0].ID)
	assert.Equal(t, "ana", found[0].FirstName)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabaseConfig_DSNWiring(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:    "localhost",
		Port:    5432,
		User:    "postgres",
		DBName:  "oms",
		SSLMode: "disable",
	}
	assert.Contains(t, cfg.DSN(), "oms")
}
