package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"giftlist/infras/otel"
	"giftlist/infras/postgres"
	"giftlist/internal/domains/admin/model"
	"giftlist/shared"
	gRepo "giftlist/shared/repository"
	"giftlist/shared/timezone"
)

type Admin interface {
	Get(ctx context.Context) (model.Credential, error)
	SavePasswordHash(ctx context.Context, hash string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Credential]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Admin {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Credential](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Get returns the singleton credential, or the zero value when no password was ever set.
func (r *repositoryImpl) Get(ctx context.Context) (model.Credential, error) {
	return r.Repository.Get(ctx, shared.FilterByID(model.SingletonID, model.FieldID, model.TableName)) //nolint:wrapcheck
}

// SavePasswordHash creates the singleton row or replaces its hash. created_at survives a replace.
func (r *repositoryImpl) SavePasswordHash(ctx context.Context, hash string) error {
	now := timezone.Now()

	return r.Upsert(ctx, model.Credential{ //nolint:wrapcheck
		ID:           model.SingletonID,
		PasswordHash: hash,
		CreatedAt:    now,
		ModifiedAt:   now,
	}, model.FieldID, model.FieldPasswordHash, model.FieldModifiedAt)
}
