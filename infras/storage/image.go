package storage

import (
	"bytes"
	"fmt"
	"giftlist/shared/constant"
	"giftlist/shared/failure"
	"giftlist/shared/validator"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

const (
	mimeJPEG = "image/jpeg"
	mimePNG  = "image/png"
	mimeGIF  = "image/gif"
	mimeWEBP = "image/webp"

	allowedMimetypes = mimeJPEG + " " + mimePNG + " " + mimeGIF + " " + mimeWEBP
	jpegQuality      = 85
	randomSuffixLen  = 8
)

var errInvalidImage = failure.BadRequestFromString("invalid image file")

type preparedImage struct {
	data        []byte
	contentType string
	extension   string
}

// prepare reads the upload, checks its size and sniffed type, and downscales wide JPEG/PNG images.
func (lim limits) prepare(upload Upload) (*preparedImage, error) {
	if upload.Content == nil {
		return nil, failure.MissingFileError
	}

	sizeRule := fmt.Sprintf("maxfilesize=%g", lim.maxSizeMB)

	if err := validator.ValidateVar(upload.Size, sizeRule); err != nil {
		return nil, err //nolint:wrapcheck
	}

	maxBytes := int64(lim.maxSizeMB * constant.BytesPerMegabyte)

	data, err := io.ReadAll(io.LimitReader(upload.Content, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	if len(data) == 0 {
		return nil, failure.MissingFileError
	}

	if err = validator.ValidateVar(int64(len(data)), sizeRule); err != nil {
		return nil, err //nolint:wrapcheck
	}

	mime := mimetype.Detect(data)
	contentType := mime.String()

	if err = validator.ValidateVar(contentType, "mimetypes="+allowedMimetypes); err != nil {
		return nil, err //nolint:wrapcheck
	}

	prepared := &preparedImage{
		data:        data,
		contentType: contentType,
		extension:   mime.Extension(),
	}

	if contentType == mimeJPEG || contentType == mimePNG {
		if err = lim.downscale(prepared); err != nil {
			return nil, err
		}
	}

	return prepared, nil
}

func (lim limits) downscale(img *preparedImage) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(img.data))
	if err != nil {
		return errInvalidImage
	}

	if lim.maxWidth == 0 || cfg.Width <= int(lim.maxWidth) { //nolint:gosec
		return nil
	}

	decoded, _, err := image.Decode(bytes.NewReader(img.data))
	if err != nil {
		return errInvalidImage
	}

	resized := resize.Resize(lim.maxWidth, 0, decoded, resize.Lanczos3)

	var buf bytes.Buffer

	switch img.contentType {
	case mimePNG:
		err = png.Encode(&buf, resized)
	default:
		err = jpeg.Encode(&buf, resized, &jpeg.Options{Quality: jpegQuality})
	}

	if err != nil {
		return fmt.Errorf("failed to encode resized image: %w", err)
	}

	img.data = buf.Bytes()

	return nil
}

// fileName renders gift-<unix millis>-<random>.<ext>.
func fileName(extension string) string {
	random := uuid.New().String()[:randomSuffixLen]

	return fmt.Sprintf("%s-%d-%s%s", filePrefix, time.Now().UnixMilli(), random, extension)
}
