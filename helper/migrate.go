package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"giftlist/config"
	"giftlist/infras/postgres"
	"io/fs"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const MigrationSource = "file://migrations/postgres"

var ErrDirtyDatabase = errors.New("database schema is dirty")

func getDBName(config *config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

func connectionString(config *config.Config) string {
	write := config.DB.Postgres.Write
	dsn := postgres.DSN(write.Username, write.Password, write.Host, write.Port,
		getDBName(config, write.Name), write.SSLMode, config.DB.Postgres.ConnectTimeoutSeconds)

	parsed, err := url.Parse(dsn)
	if err != nil {
		return dsn
	}

	query := parsed.Query()
	query.Set("x-migrations-table", config.DB.Postgres.MigrationTable)
	parsed.RawQuery = query.Encode()

	return parsed.String()
}

func getConnection(config *config.Config) (*migrate.Migrate, error) {
	mig, err := migrate.New(MigrationSource, connectionString(config))
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func Runner(config *config.Config, action string) error {
	mig, err := getConnection(config)
	if err != nil {
		return err
	}

	defer mig.Close()

	switch action {
	case "up":
		if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Info().Msg("Database migrations completed successfully")

		return nil
	case "down":
		if err := mig.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Msg("Database migrations rolled back successfully")

		return nil
	case "step-up":
		if err := mig.Steps(1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Info().Msg("Database migrations completed successfully")

		return nil
	case "drop":
		if err := mig.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Msg("Database migrations rolled back successfully")

		return nil
	case "version":
		version, dirty, err := Version(config)
		if err != nil {
			return err
		}

		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Database schema version")

		return nil
	}

	return fmt.Errorf("unknown migration action: %s", action)
}

func Up(config *config.Config) error {
	return Runner(config, "up")
}

func StepUp(config *config.Config) error {
	return Runner(config, "step-up")
}

func Down(config *config.Config) error {
	return Runner(config, "down")
}

func Drop(config *config.Config) error {
	return Runner(config, "drop")
}

// Version reports the applied schema version. A database without migrations reports 0.
func Version(config *config.Config) (uint, bool, error) {
	mig, err := getConnection(config)
	if err != nil {
		return 0, false, err
	}

	defer mig.Close()

	version, dirty, err := mig.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}

	if err != nil {
		return 0, false, fmt.Errorf("error reading schema version: %w", err)
	}

	return version, dirty, nil
}

// LatestVersion returns the highest migration version shipped in sourceURL.
func LatestVersion(sourceURL string) (uint, error) {
	src, err := source.Open(sourceURL)
	if err != nil {
		return 0, fmt.Errorf("error opening migration source: %w", err)
	}

	defer src.Close()

	latest, err := src.First()
	if err != nil {
		return 0, fmt.Errorf("error reading first migration: %w", err)
	}

	for {
		next, err := src.Next(latest)
		if errors.Is(err, fs.ErrNotExist) {
			return latest, nil
		}

		if err != nil {
			return 0, fmt.Errorf("error reading migrations: %w", err)
		}

		latest = next
	}
}

// EnsureVersion fails on a dirty schema and warns when the database is behind the shipped migrations.
func EnsureVersion(config *config.Config) error {
	version, dirty, err := Version(config)
	if err != nil {
		return err
	}

	if dirty {
		return fmt.Errorf("%w at version %d, fix it with cmd/migrate", ErrDirtyDatabase, version)
	}

	latest, err := LatestVersion(MigrationSource)
	if err != nil {
		log.Warn().Err(err).Msg("Could not read shipped migrations, skipping version check")

		return nil
	}

	if version < latest {
		log.Warn().
			Uint("current", version).
			Uint("latest", latest).
			Msg("Database schema is behind, run cmd/migrate up or set DB_POSTGRES_AUTO_MIGRATE")

		return nil
	}

	log.Info().Uint("version", version).Msg("Database schema is up to date")

	return nil
}
