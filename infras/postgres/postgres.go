package postgres

//nolint:revive
import (
	"context"
	"fmt"
	"giftlist/config"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB

	queryTimeout time.Duration
}

func New(config *config.Config) *Connection {
	return &Connection{
		Read:         CreatePostgresReadConn(*config),
		Write:        CreatePostgresWriteConn(*config),
		queryTimeout: time.Duration(config.DB.Postgres.QueryTimeoutSeconds) * time.Second,
	}
}

// NewFromDB builds a connection that reads and writes through a single pool.
func NewFromDB(db *sqlx.DB, queryTimeout time.Duration) *Connection {
	return &Connection{
		Read:         db,
		Write:        db,
		queryTimeout: queryTimeout,
	}
}

// QueryTimeout is the upper bound for a single statement or transaction.
func (c *Connection) QueryTimeout() time.Duration {
	if c == nil || c.queryTimeout <= 0 {
		return defaultQueryTimeout
	}

	return c.queryTimeout
}

// Ping checks both pools.
func (c *Connection) Ping(ctx context.Context) error {
	if c == nil || c.Read == nil || c.Write == nil {
		return errNotConnected
	}

	if err := c.Write.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping write database: %w", err)
	}

	if err := c.Read.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping read database: %w", err)
	}

	return nil
}

func (c *Connection) Close() {
	if c == nil {
		return
	}

	if c.Write != nil {
		if err := c.Write.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close write database")
		}
	}

	if c.Read != nil && c.Read != c.Write {
		if err := c.Read.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close read database")
		}
	}
}

// getDBName returns the database name with prefix if configured
func getDBName(config config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

// CreatePostgresWriteConn creates a database connection for write access.
func CreatePostgresWriteConn(config config.Config) *sqlx.DB {
	write := config.DB.Postgres.Write

	return CreatePostgresConnection("write", DSN(write.Username, write.Password, write.Host, write.Port,
		getDBName(config, write.Name), write.SSLMode, config.DB.Postgres.ConnectTimeoutSeconds), config)
}

// CreatePostgresReadConn creates a database connection for read access.
func CreatePostgresReadConn(config config.Config) *sqlx.DB {
	read := config.DB.Postgres.Read

	return CreatePostgresConnection("read", DSN(read.Username, read.Password, read.Host, read.Port,
		getDBName(config, read.Name), read.SSLMode, config.DB.Postgres.ConnectTimeoutSeconds), config)
}

// DSN renders a lib/pq connection URL.
func DSN(username, password, host, port, dbName, sslMode string, connectTimeoutSeconds int) string {
	query := url.Values{}
	query.Set("sslmode", sslMode)

	if connectTimeoutSeconds > 0 {
		query.Set("connect_timeout", fmt.Sprint(connectTimeoutSeconds))
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(username, password),
		Host:     net.JoinHostPort(host, port),
		Path:     dbName,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// CreatePostgresConnection creates a database connection, retrying MaxRetry times.
func CreatePostgresConnection(name, descriptor string, config config.Config) *sqlx.DB {
	pg := config.DB.Postgres

	for retry := range max(pg.MaxRetry, 1) {
		sqlDB, err := sqlx.Connect("postgres", descriptor)
		if err == nil {
			log.
				Info().
				Str("name", name).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(pg.MaxIdleConns)
			sqlDB.SetMaxOpenConns(pg.MaxOpenConns)
			sqlDB.SetConnMaxLifetime(time.Duration(pg.ConnMaxLifetimeMinutes) * time.Minute)

			return sqlDB
		}

		log.
			Error().
			Err(err).
			Str("name", name).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(pg.RetryWaitTime) * time.Second)
	}

	log.Fatal().Str("name", name).Msg("Could not connect to database")

	return nil
}
