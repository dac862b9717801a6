package repository_test

import (
	"context"
	"giftlist/infras/otel/mocks"
	"giftlist/infras/postgres"
	"giftlist/internal/domains/admin/model"
	"giftlist/internal/domains/admin/repository"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dsnEnv points at a disposable database. The admin_credentials table is dropped and recreated.
const dsnEnv = "GIFTLIST_TEST_POSTGRES_DSN"

func TestAdminRepository_Postgres_SavePasswordHash(t *testing.T) {
	dsn := os.Getenv(dsnEnv)
	if dsn == "" {
		t.Skipf("%s is not set", dsnEnv)
	}

	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "migrations", "postgres", "000002_create_admin_credentials_table.up.sql"))
	require.NoError(t, err)

	db.MustExec("DROP TABLE IF EXISTS admin_credentials")
	db.MustExec(string(schema))

	repo := repository.New(postgres.NewFromDB(db, 5*time.Second), mocks.NewOtel())
	ctx := context.Background()

	empty, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.False(t, empty.Configured())

	require.NoError(t, repo.SavePasswordHash(ctx, "$2a$10$first"))

	first, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.True(t, first.Configured())
	assert.Equal(t, model.SingletonID, first.ID)

	require.NoError(t, repo.SavePasswordHash(ctx, "$2a$10$second"))

	second, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$second", second.PasswordHash)
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))

	var rows int

	require.NoError(t, db.Get(&rows, "SELECT COUNT(*) FROM admin_credentials"))
	assert.Equal(t, 1, rows)
}
