package storage

//go:generate go run go.uber.org/mock/mockgen -source=./storage.go -destination=./mocks/storage_mock.go -package=mocks

import (
	"context"
	"giftlist/config"
	"giftlist/infras/otel"
	"giftlist/shared/constant"
	"io"

	"github.com/rs/zerolog/log"
)

const (
	imageDirectory = "images"
	filePrefix     = "gift"

	// PublicPath is the URL prefix the router serves local uploads under.
	PublicPath = "/uploads"

	otelAttrFileName = "file_name"
	otelAttrRef      = "ref"
)

// Upload is an image received from a client.
type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// Storage saves gift images and hands back the reference stored on the gift.
type Storage interface {
	Save(ctx context.Context, upload Upload) (ref string, err error)
	Delete(ctx context.Context, ref string) error
	Owns(ref string) bool
}

type limits struct {
	maxSizeMB float64
	maxWidth  uint
}

// New builds the storage driver selected by APP_UPLOAD_DRIVER.
func New(cfg *config.Config, otl otel.Otel) Storage {
	lim := limits{
		maxSizeMB: cfg.App.Upload.MaxSizeMB,
		maxWidth:  cfg.App.Upload.MaxWidth,
	}

	switch cfg.App.Upload.Driver {
	case constant.StorageDriverS3:
		log.Info().Str("bucket", cfg.External.S3.BucketName).Msg("Using S3 image storage")

		return NewS3(cfg, lim, otl)
	case constant.StorageDriverLocal, constant.Empty:
		log.Info().Str("dir", cfg.App.Upload.Dir).Msg("Using local image storage")

		return NewLocal(cfg.App.Upload.Dir, lim, otl)
	default:
		log.Warn().Str("driver", cfg.App.Upload.Driver).Msg("Unknown upload driver, falling back to local storage")

		return NewLocal(cfg.App.Upload.Dir, lim, otl)
	}
}
