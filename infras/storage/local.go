package storage

import (
	"context"
	"errors"
	"fmt"
	"giftlist/infras/otel"
	"giftlist/shared/constant"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

type localStorage struct {
	dir    string
	limits limits
	otel   otel.Otel
}

// NewLocal stores images under dir/images and references them as /uploads/images/<file>.
func NewLocal(dir string, lim limits, otl otel.Otel) Storage {
	return &localStorage{
		dir:    dir,
		limits: lim,
		otel:   otl,
	}
}

func (svc *localStorage) Save(ctx context.Context, upload Upload) (ref string, err error) {
	_, scope := svc.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".local.Save")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	img, err := svc.limits.prepare(upload)
	if err != nil {
		return constant.Empty, err
	}

	name := fileName(img.extension)
	scope.SetAttribute(otelAttrFileName, name)

	target := filepath.Join(svc.dir, imageDirectory)
	if err = os.MkdirAll(target, dirPerm); err != nil {
		log.Error().Err(err).Str("dir", target).Msg("failed to create upload directory")

		return constant.Empty, fmt.Errorf("failed to create upload directory: %w", err)
	}

	if err = os.WriteFile(filepath.Join(target, name), img.data, filePerm); err != nil {
		log.Error().Err(err).Str("file", name).Msg("failed to write upload")

		return constant.Empty, fmt.Errorf("failed to write upload: %w", err)
	}

	return path.Join(PublicPath, imageDirectory, name), nil
}

func (svc *localStorage) Delete(ctx context.Context, ref string) (err error) {
	_, scope := svc.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".local.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelAttrRef, ref)

	if !svc.Owns(ref) {
		return nil
	}

	err = os.Remove(filepath.Join(svc.dir, imageDirectory, path.Base(ref)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Error().Err(err).Str("ref", ref).Msg("failed to delete upload")

		return fmt.Errorf("failed to delete upload: %w", err)
	}

	return nil
}

func (svc *localStorage) Owns(ref string) bool {
	prefix := path.Join(PublicPath, imageDirectory) + "/"
	if !strings.HasPrefix(ref, prefix) {
		return false
	}

	name := strings.TrimPrefix(ref, prefix)

	return name != constant.Empty && name == path.Base(name) && name != "." && name != ".."
}
