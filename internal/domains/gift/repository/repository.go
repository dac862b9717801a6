package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"giftlist/infras/otel"
	"giftlist/infras/postgres"
	"giftlist/internal/domains/gift/model"
	"giftlist/internal/domains/gift/model/dto"
	"giftlist/shared"
	"giftlist/shared/constant"
	gDto "giftlist/shared/dto"
	gRepo "giftlist/shared/repository"
	"slices"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// reducedColumns are the columns a legacy gifts table may lack.
var reducedColumns = []string{model.FieldReservedBy, model.FieldReservedAt, model.FieldCreatedAt}

type Gift interface {
	GetAll(ctx context.Context, filter dto.ListFilter) ([]model.Gift, error)
	GetByID(ctx context.Context, id int64) (model.Gift, error)
	Insert(ctx context.Context, gift model.Gift) (int64, error)
	Update(ctx context.Context, id int64, fields map[string]any) error
	UpdateReservedBy(ctx context.Context, id int64, reservedBy string, modifiedAt time.Time) (bool, error)
	Delete(ctx context.Context, id int64) error

	WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
	GetByIDForUpdateTx(ctx context.Context, tx *sqlx.Tx, id int64) (model.Gift, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, id int64, fields map[string]any) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Gift]
	db      *postgres.Connection
	otel    otel.Otel
	columns []string
	reduced bool
}

// New inspects the gifts table once. When a legacy table lacks the reservation or creation columns
// reads fall back to the columns that exist, ordered by id.
func New(db *postgres.Connection, otel otel.Otel) Gift {
	repo := &repositoryImpl{
		Repository: gRepo.NewRepository[model.Gift](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}

	repo.inspectSchema()

	return repo
}

func (r *repositoryImpl) inspectSchema() {
	ctx, cancel := context.WithTimeout(context.Background(), r.db.QueryTimeout())
	defer cancel()

	existing, err := r.db.Columns(ctx, model.TableName)
	if err != nil || len(existing) == 0 {
		log.Warn().Err(err).Msg("Could not inspect gifts table, assuming the full schema")

		return
	}

	missing := []string{}

	for _, col := range reducedColumns {
		if !existing[col] {
			missing = append(missing, col)
		}
	}

	if len(missing) == 0 {
		return
	}

	for _, col := range allColumns() {
		if existing[col] {
			r.columns = append(r.columns, col)
		}
	}

	r.reduced = true

	log.Warn().Strs("missing", missing).Msg("Gifts table lacks columns, serving the reduced column set")
}

func (r *repositoryImpl) ordering() gDto.QueryParams {
	if r.reduced && !slices.Contains(r.columns, model.FieldCreatedAt) {
		return gDto.QueryParams{SortBy: model.FieldID, SortDir: gDto.SortDirDesc}
	}

	return gDto.QueryParams{SortBy: model.FieldCreatedAt + "," + model.FieldID, SortDir: gDto.SortDirDesc}
}

func (r *repositoryImpl) GetAll(ctx context.Context, filter dto.ListFilter) ([]model.Gift, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".gift.GetAll")
	defer scope.End()

	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if filter.Status != constant.Empty {
		group.Filters = append(group.Filters, gDto.Eq(model.TableName, model.FieldStatus, filter.Status))
	}

	if filter.Category != constant.Empty {
		group.Filters = append(group.Filters, gDto.Eq(model.TableName, model.FieldCategory, filter.Category))
	}

	return r.Repository.GetAll(ctx, r.ordering(), group, r.columns...) //nolint:wrapcheck
}

func (r *repositoryImpl) GetByID(ctx context.Context, id int64) (model.Gift, error) {
	return r.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName), r.columns...) //nolint:wrapcheck
}

func (r *repositoryImpl) Insert(ctx context.Context, gift model.Gift) (int64, error) {
	return r.Repository.Insert(ctx, gift) //nolint:wrapcheck
}

func (r *repositoryImpl) Update(ctx context.Context, id int64, fields map[string]any) error {
	_, err := r.Repository.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName))

	return err //nolint:wrapcheck
}

// UpdateReservedBy renames the holder of a reservation. It reports false when the gift is missing
// or no longer reserved.
func (r *repositoryImpl) UpdateReservedBy(ctx context.Context, id int64, reservedBy string, modifiedAt time.Time) (bool, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Eq(model.TableName, model.FieldID, id),
			gDto.Eq(model.TableName, model.FieldStatus, model.StatusReserved),
		},
	}

	affected, err := r.Repository.Update(ctx, map[string]any{
		model.FieldReservedBy: reservedBy,
		model.FieldModifiedAt: modifiedAt,
	}, filter)
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	return affected > 0, nil
}

func (r *repositoryImpl) Delete(ctx context.Context, id int64) error {
	return r.Repository.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
}

func (r *repositoryImpl) GetByIDForUpdateTx(ctx context.Context, tx *sqlx.Tx, id int64) (model.Gift, error) {
	return r.GetForUpdateTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
}

func (r *repositoryImpl) UpdateTx(ctx context.Context, tx *sqlx.Tx, id int64, fields map[string]any) error {
	_, err := r.Repository.UpdateTx(ctx, tx, fields, shared.FilterByID(id, model.FieldID, model.TableName))

	return err //nolint:wrapcheck
}

func allColumns() []string {
	return []string{
		model.FieldID, model.FieldName, model.FieldCategory, model.FieldDescription, model.FieldProductLink,
		model.FieldImageURL, model.FieldStatus, model.FieldReservedBy, model.FieldReservedAt,
		model.FieldCreatedAt, model.FieldModifiedAt,
	}
}
