// Package storage opens the record stores selected by configuration.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/jrsteele09/go-storefront-api/internal/config"
	"github.com/jrsteele09/go-storefront-api/internal/storage/migrations"
	"github.com/jrsteele09/go-storefront-api/products"
	fakeproductrepo "github.com/jrsteele09/go-storefront-api/products/repofake"
	productrepomongo "github.com/jrsteele09/go-storefront-api/products/repomongo"
	productrepopostgres "github.com/jrsteele09/go-storefront-api/products/repopostgres"
	"github.com/jrsteele09/go-storefront-api/users"
	fakeuserrepo "github.com/jrsteele09/go-storefront-api/users/repofake"
	userrepomongo "github.com/jrsteele09/go-storefront-api/users/repomongo"
	userrepopostgres "github.com/jrsteele09/go-storefront-api/users/repopostgres"
)

const connectTimeout = 10 * time.Second

// Stores bundles the repositories for one backend together with its shutdown hook
type Stores struct {
	Users    users.UserRepo
	Products products.ProductRepo
	Driver   config.StoreDriver
	closeFn  func(ctx context.Context) error
}

func (s *Stores) Close(ctx context.Context) error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn(ctx)
}

// Open connects to the configured backend and prepares its schema or indexes
func Open(ctx context.Context, cfg config.StorageConfig) (*Stores, error) {
	switch cfg.GetStoreDriver() {
	case config.StoreDriverMemory, "":
		return NewMemoryStores(), nil
	case config.StoreDriverMongo:
		return openMongo(ctx, cfg.GetMongoURI(), cfg.GetMongoDatabase())
	case config.StoreDriverPostgres:
		return openPostgres(ctx, cfg.GetDatabaseURL())
	default:
		return nil, errors.Errorf("[storage.Open] unsupported store driver %q", cfg.GetStoreDriver())
	}
}

// NewMemoryStores returns process-local stores; data is lost on restart
func NewMemoryStores() *Stores {
	log.Warn().Msg("using in-memory stores, data will not survive a restart")
	return &Stores{
		Users:    fakeuserrepo.NewFakeUserRepo(),
		Products: fakeproductrepo.NewFakeProductRepo(),
		Driver:   config.StoreDriverMemory,
	}
}

func openMongo(ctx context.Context, uri, database string) (*Stores, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "[storage.openMongo] connect")
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "[storage.openMongo] ping")
	}

	db := client.Database(database)
	userRepo := userrepomongo.NewMongoUserRepo(db)
	productRepo := productrepomongo.NewMongoProductRepo(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "[storage.openMongo]")
	}
	if err := productRepo.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "[storage.openMongo]")
	}

	log.Info().Str("database", database).Msg("connected to mongodb")
	return &Stores{
		Users:    userRepo,
		Products: productRepo,
		Driver:   config.StoreDriverMongo,
		closeFn:  client.Disconnect,
	}, nil
}

func openPostgres(ctx context.Context, dsn string) (*Stores, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "[storage.openPostgres] open")
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "[storage.openPostgres] ping")
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Info().Msg("connected to postgres")
	return &Stores{
		Users:    userrepopostgres.NewPostgresUserRepo(db),
		Products: productrepopostgres.NewPostgresProductRepo(db),
		Driver:   config.StoreDriverPostgres,
		closeFn:  func(context.Context) error { return db.Close() },
	}, nil
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded SQL migrations
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return errors.Wrap(err, "[storage.RunMigrations] dialect")
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("[storage.RunMigrations] %w", err)
	}
	return nil
}
