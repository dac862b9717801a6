package model

import "time"

const (
	TableName  = "admin_credentials"
	EntityName = "admin credential"

	FieldID           = "id"
	FieldPasswordHash = "password_hash"
	FieldCreatedAt    = "created_at"
	FieldModifiedAt   = "modified_at"
)

// SingletonID is the only key the credential table accepts.
const SingletonID int64 = 1

type Credential struct {
	ID           int64     `db:"id"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	ModifiedAt   time.Time `db:"modified_at"`
}

// Configured reports whether a password has been set.
func (c Credential) Configured() bool {
	return c.ID == SingletonID && c.PasswordHash != ""
}
