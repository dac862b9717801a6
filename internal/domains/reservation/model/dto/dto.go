package dto

import (
	"bytes"
	"giftlist/internal/domains/gift/model"
	"giftlist/shared"
	"giftlist/shared/constant"
	"giftlist/shared/failure"
	"giftlist/shared/validator"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	MessageIncompleteData     = "incomplete data"
	MessageNameTooShort       = "name must be at least 3 characters"
	MessageInvalidStatus      = `invalid status, use "available" or "reserved"`
	MessageReservedByRequired = "reserved_by is required and must be at least 3 characters"
	MessageNotReserved        = "only reserved gifts can have the name updated"

	MessageReserved         = "gift reserved successfully"
	MessageMarkedReserved   = "gift marked as reserved"
	MessageReleased         = "gift released"
	MessageReservedByUpdate = "name updated successfully"
)

var (
	ErrIncompleteData     = failure.BadRequestFromString(MessageIncompleteData)
	ErrNameTooShort       = failure.BadRequestFromString(MessageNameTooShort)
	ErrInvalidStatus      = failure.BadRequestFromString(MessageInvalidStatus)
	ErrReservedByRequired = failure.BadRequestFromString(MessageReservedByRequired)
	ErrNotReserved        = failure.BadRequestFromString(MessageNotReserved)
	ErrAlreadyReserved    = failure.Conflict("this gift has already been reserved")
)

// GiftID accepts a JSON number or a numeric string. Anything else decodes to zero, which the
// request validation reports as incomplete data.
type GiftID int64

func (id *GiftID) UnmarshalJSON(data []byte) error {
	raw := string(bytes.Trim(bytes.TrimSpace(data), `"`))

	parsed, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		*id = 0

		return nil //nolint:nilerr
	}

	*id = GiftID(parsed)

	return nil
}

// ReserveRequest is a guest claiming a gift.
type ReserveRequest struct {
	GiftID    GiftID `json:"giftId"    validate:"gt=0"`
	GuestName string `json:"guestName" validate:"notblank"`
}

// Validate checks the request before any storage access.
func (r ReserveRequest) Validate() error {
	if len(validator.Violations(&r)) > 0 {
		return ErrIncompleteData
	}

	if !hasMinLength(r.GuestName) {
		return ErrNameTooShort
	}

	return nil
}

// Guest returns the trimmed guest name cut to the column limit.
func (r ReserveRequest) Guest() string {
	return sanitizeName(r.GuestName)
}

// UpdateStatusRequest is an admin override of the reservation state. ReservedBy is only read
// when Status is reserved.
type UpdateStatusRequest struct {
	Status     string `json:"status"      validate:"oneof=available reserved"`
	ReservedBy string `json:"reserved_by"`
}

func (r *UpdateStatusRequest) Normalize() {
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	r.ReservedBy = strings.TrimSpace(r.ReservedBy)
}

func (r UpdateStatusRequest) Validate() error {
	r.Normalize()

	if len(validator.Violations(&r)) > 0 {
		return ErrInvalidStatus
	}

	if r.Status == model.StatusReserved && !hasMinLength(r.ReservedBy) {
		return ErrReservedByRequired
	}

	return nil
}

// Holder returns the trimmed name cut to the column limit.
func (r UpdateStatusRequest) Holder() string {
	return sanitizeName(r.ReservedBy)
}

type UpdateReservedByRequest struct {
	ReservedBy string `json:"reserved_by"`
}

// Validate rejects an empty name as well as a short one; a reserved gift always keeps a holder.
func (r UpdateReservedByRequest) Validate() error {
	if !hasMinLength(r.ReservedBy) {
		return ErrNameTooShort
	}

	return nil
}

func (r UpdateReservedByRequest) Holder() string {
	return sanitizeName(r.ReservedBy)
}

func hasMinLength(name string) bool {
	name = strings.TrimSpace(name)

	return name != constant.Empty && utf8.RuneCountInString(name) >= model.MinReservedByLength
}

func sanitizeName(name string) string {
	return shared.Truncate(strings.TrimSpace(name), model.MaxReservedByLength)
}
