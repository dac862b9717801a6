package constant

import (
	"time"
)

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyAdminID   contextKey = "admin_id"
	ContextKeyTokenID   contextKey = "token_id"
	ContextKeyRequestID contextKey = "request_id"
)

const (
	RequestParamID       = "id"
	RequestParamStatus   = "status"
	RequestParamCategory = "category"
	RequestMaxMemory     = 10 << 20 // 10 MB
)

const (
	DefaultValueSortBy  = "created_at"
	DefaultValueSortDir = "DESC"
)

const (
	FieldCreatedAt  = "created_at"
	FieldModifiedAt = "modified_at"
)

const (
	PqErrorCodeUndefinedColumn = "42703"
)

const (
	DateFormat = time.RFC3339
)

const (
	MinutesToSeconds = 60
	BytesPerMegabyte = 1024 * 1024
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelStorageScopeName    = "storage"

	OtelQueryAttributeKey = "query"
	OtelS3ScopeName       = "s3"
)

const (
	RequestHeaderAuthorization = "Authorization"
	RequestHeaderUserAgent     = "User-Agent"
	RequestHeaderContentType   = "Content-Type"
	RequestHeaderRequestID     = "X-Request-ID"
)

const (
	ContentTypeJSON              = "application/json"
	ContentTypeMultipartFormData = "multipart/form-data"
	FormFieldImage               = "image"
	FormFieldData                = "data"
)

const (
	ResponseErrorPrepareShutdown = "server preparing to shut down"
	ResponseErrorUnhealthy       = "server unhealthy"
	ResponseErrorInternal        = "internal server error"
	ResponseErrorRouteNotFound   = "route not found"
	ResponseErrorMethodNotAllow  = "method not allowed"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	StorageDriverLocal = "local"
	StorageDriverS3    = "s3"
)

const (
	Asterix = "*"
	Empty   = ""
)
