package admin

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"giftlist/infras/storage"
	"giftlist/shared/constant"
	"giftlist/shared/failure"
	"giftlist/shared/validator"
	"mime"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

func noop() {}

// decodeGiftPayload fills dst from a JSON body or from a multipart form. A form carries the
// fields one by one or as a JSON document in the data field, next to an optional image file.
// The returned release func must be called once the upload has been consumed.
func decodeGiftPayload[T any](request *http.Request, dst *T) (*storage.Upload, func(), error) {
	mediaType, _, _ := mime.ParseMediaType(request.Header.Get(constant.RequestHeaderContentType))
	if mediaType != constant.ContentTypeMultipartFormData {
		return nil, noop, validator.Decode(request.Body, dst)
	}

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, noop, failure.PayloadTooLarge
		}

		log.Debug().Err(err).Msg("failed to parse multipart form")

		return nil, noop, failure.InvalidForm
	}

	form := request.MultipartForm
	release := func() {
		_ = form.RemoveAll()
	}

	if err := decodeFormFields(form.Value, dst); err != nil {
		release()

		return nil, noop, err
	}

	file, header, err := request.FormFile(constant.FormFieldImage)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, release, nil
	}

	if err != nil {
		release()

		log.Debug().Err(err).Msg("failed to read image")

		return nil, noop, failure.InvalidForm
	}

	upload := &storage.Upload{
		Filename: header.Filename,
		Size:     header.Size,
		Content:  file,
	}

	return upload, func() {
		_ = file.Close()

		release()
	}, nil
}

// decodeFormFields maps the first value of every form field onto the JSON tags of dst. Fields
// missing from the form stay unset.
func decodeFormFields[T any](values map[string][]string, dst *T) error {
	if data := values[constant.FormFieldData]; len(data) > 0 && strings.TrimSpace(data[0]) != constant.Empty {
		return validator.Decode(strings.NewReader(data[0]), dst)
	}

	fields := make(map[string]string, len(values))

	for key, value := range values {
		if len(value) > 0 {
			fields[key] = value[0]
		}
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode form fields: %w", err)
	}

	return validator.Decode(bytes.NewReader(raw), dst)
}
