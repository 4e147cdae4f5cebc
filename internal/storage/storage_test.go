package storage

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-storefront-api/internal/config"
	"github.com/jrsteele09/go-storefront-api/internal/storage/migrations"
)

type storageConfig struct {
	driver config.StoreDriver
}

func (s storageConfig) GetStoreDriver() config.StoreDriver { return s.driver }
func (storageConfig) GetMongoURI() string                  { return "" }
func (storageConfig) GetMongoDatabase() string             { return "" }
func (storageConfig) GetDatabaseURL() string               { return "" }

func TestOpenMemory(t *testing.T) {
	stores, err := Open(context.Background(), storageConfig{driver: config.StoreDriverMemory})
	require.NoError(t, err)
	require.NotNil(t, stores.Users)
	require.NotNil(t, stores.Products)
	require.Equal(t, config.StoreDriverMemory, stores.Driver)
	require.NoError(t, stores.Close(context.Background()))
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), storageConfig{driver: "cassandra"})
	require.Error(t, err)
}

func TestMigrationsAreEmbedded(t *testing.T) {
	names, err := fs.Glob(migrations.Migrations, "*.sql")
	require.NoError(t, err)
	require.Len(t, names, 2)
}

func TestRunMigrations(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	var gotDir string
	gooseUpContext = func(ctx context.Context, _ *sql.DB, dir string, _ ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}
	require.NoError(t, RunMigrations(context.Background(), db))
	require.Equal(t, ".", gotDir)

	gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	require.ErrorContains(t, RunMigrations(context.Background(), db), "boom")
}
