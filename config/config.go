package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env                 string `envconfig:"ENV" default:"development"`
		LogLevel            string `envconfig:"LOG_LEVEL" default:"info"`
		Port                string `envconfig:"PORT" default:"3000"`
		Host                string `envconfig:"HOST" default:"0.0.0.0"`
		ReadTimeoutSeconds  int    `envconfig:"READ_TIMEOUT_SECONDS" default:"30"`
		WriteTimeoutSeconds int    `envconfig:"WRITE_TIMEOUT_SECONDS" default:"60"`
		Shutdown            struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"10"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS" default:"5"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name      string `envconfig:"NAME" default:"giftlist"`
		Timezone  string `envconfig:"TIMEZONE"`
		StaticDir string `envconfig:"STATIC_DIR"`
		CORS      struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS" default:"Accept,Authorization,Content-Type,X-Request-ID"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS" default:"*"`
			Enable           bool     `envconfig:"ENABLE" default:"true"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS" default:"300"`
		} `envconfig:"CORS"`
		Upload struct {
			Driver    string  `envconfig:"DRIVER" default:"local"`
			Dir       string  `envconfig:"DIR" default:"uploads"`
			MaxSizeMB float64 `envconfig:"MAX_SIZE_MB" default:"5"`
			MaxWidth  uint    `envconfig:"MAX_WIDTH" default:"1200"`
		} `envconfig:"UPLOAD"`
	} `envconfig:"APP"`

	Cache struct {
		Enable bool `envconfig:"ENABLE"`
		Redis  struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL" default:"60"`
	} `envconfig:"CACHE"`

	JWT struct {
		Secret    string `envconfig:"SECRET"`
		ExpireMin int    `envconfig:"EXPIRE_MIN" default:"1440"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry               int    `envconfig:"MAX_RETRY" default:"5"`
			RetryWaitTime          int    `envconfig:"RETRY_WAIT_TIME" default:"2"`
			MigrationTable         string `envconfig:"MIGRATION_TABLE" default:"schema_migrations"`
			AutoMigrate            bool   `envconfig:"AUTO_MIGRATE"`
			Prefix                 string `envconfig:"PREFIX"`
			MaxOpenConns           int    `envconfig:"MAX_OPEN_CONNS" default:"10"`
			MaxIdleConns           int    `envconfig:"MAX_IDLE_CONNS" default:"10"`
			ConnMaxLifetimeMinutes int    `envconfig:"CONN_MAX_LIFETIME_MINUTES" default:"30"`
			ConnectTimeoutSeconds  int    `envconfig:"CONNECT_TIMEOUT_SECONDS" default:"10"`
			QueryTimeoutSeconds    int    `envconfig:"QUERY_TIMEOUT_SECONDS" default:"30"`
			Read                   struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
			} `envconfig:"READ"`
			Write struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
			} `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		S3 struct {
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
			BucketName      string `envconfig:"BUCKET_NAME"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
			Region          string `envconfig:"REGION" default:"auto"`
		} `envconfig:"S3"`
	} `envconfig:"EXTERNAL"`
}

// IsProduction reports whether the server runs with SERVER_ENV=production.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Warn().Err(err).Msg("Configuration initialized without .env file")
		}
	}

	return &conf
}
