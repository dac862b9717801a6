package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"giftlist/config"
	"giftlist/infras/metrics"
	"giftlist/infras/otel"
	"giftlist/internal/domains/gift/model"
	giftDto "giftlist/internal/domains/gift/model/dto"
	"giftlist/internal/domains/gift/repository"
	"giftlist/internal/domains/reservation/model/dto"
	"giftlist/shared"
	"giftlist/shared/cache"
	"giftlist/shared/constant"
	"giftlist/shared/timezone"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrGiftID  = "gift.id"
	otelAttrOutcome = "reservation.outcome"

	defaultQueryTimeout = 30 * time.Second
)

type Reservation interface {
	Reserve(ctx context.Context, req dto.ReserveRequest) (giftDto.GiftResponse, error)
	UpdateStatus(ctx context.Context, id int64, req dto.UpdateStatusRequest) (giftDto.GiftResponse, error)
	UpdateReservedBy(ctx context.Context, id int64, req dto.UpdateReservedByRequest) (giftDto.GiftResponse, error)
}

type serviceImpl struct {
	repo    repository.Gift
	cfg     *config.Config
	cache   cache.RedisCache
	metrics *metrics.Metrics
	otel    otel.Otel
}

func New(repo repository.Gift, cfg *config.Config, cache cache.RedisCache, metrics *metrics.Metrics, otel otel.Otel) Reservation {
	return &serviceImpl{
		repo:    repo,
		cfg:     cfg,
		cache:   cache,
		metrics: metrics,
		otel:    otel,
	}
}

// Reserve claims an available gift for a guest. The gift row is locked for the whole
// read-check-write so concurrent claims on one gift leave exactly one winner; every other caller
// gets a conflict and nothing is written for them.
func (s *serviceImpl) Reserve(ctx context.Context, req dto.ReserveRequest) (res giftDto.GiftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reserve")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	outcome := metrics.OutcomeError

	defer func() {
		scope.SetAttribute(otelAttrOutcome, outcome)
		s.metrics.IncReservation(outcome)
	}()

	if err = req.Validate(); err != nil {
		outcome = metrics.OutcomeInvalid

		return res, err
	}

	id := int64(req.GiftID)
	guest := req.Guest()

	scope.SetAttribute(otelAttrGiftID, id)

	// The commit must not depend on the caller staying connected; the query timeout bounds it instead.
	txCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.queryTimeout())
	defer cancel()

	var reserved model.Gift

	err = s.repo.WithTx(txCtx, func(tx *sqlx.Tx) error {
		gift, err := s.repo.GetByIDForUpdateTx(txCtx, tx, id)
		if err != nil {
			return fmt.Errorf("failed to lock gift: %w", err)
		}

		if !gift.Exists() {
			return model.ErrNotFound
		}

		if gift.IsReserved() {
			return dto.ErrAlreadyReserved
		}

		now := timezone.Now()

		err = s.repo.UpdateTx(txCtx, tx, id, map[string]any{
			model.FieldStatus:     model.StatusReserved,
			model.FieldReservedBy: guest,
			model.FieldReservedAt: now,
			model.FieldModifiedAt: now,
		})
		if err != nil {
			return fmt.Errorf("failed to reserve gift: %w", err)
		}

		gift.Status = model.StatusReserved
		gift.ReservedBy = &guest
		gift.ReservedAt = &now
		gift.ModifiedAt = now
		reserved = gift

		return nil
	})

	switch {
	case errors.Is(err, model.ErrNotFound):
		outcome = metrics.OutcomeNotFound

		return res, err
	case errors.Is(err, dto.ErrAlreadyReserved):
		outcome = metrics.OutcomeConflict

		return res, err
	case err != nil:
		log.Error().Err(err).Int64("id", id).Msg("failed to reserve gift")

		return res, fmt.Errorf("failed to reserve gift: %w", err)
	}

	outcome = metrics.OutcomeReserved

	shared.InvalidateCaches(ctx, s.cache, model.CachePrefix)

	log.Info().Int64("id", id).Msg("Gift reserved")

	res.FromModel(reserved)

	return res, nil
}

// UpdateStatus is the admin override. It takes no row lock and overwrites any reservation.
func (s *serviceImpl) UpdateStatus(ctx context.Context, id int64, req dto.UpdateStatusRequest) (res giftDto.GiftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelAttrGiftID, id)

	req.Normalize()

	if err = req.Validate(); err != nil {
		return res, err
	}

	if _, err = s.load(ctx, id); err != nil {
		return res, err
	}

	now := timezone.Now()
	fields := map[string]any{
		model.FieldStatus:     req.Status,
		model.FieldReservedBy: (*string)(nil),
		model.FieldReservedAt: (*time.Time)(nil),
		model.FieldModifiedAt: now,
	}

	if req.Status == model.StatusReserved {
		fields[model.FieldReservedBy] = req.Holder()
		fields[model.FieldReservedAt] = now
	}

	if err = s.repo.Update(ctx, id, fields); err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to update gift status")

		return res, fmt.Errorf("failed to update gift status: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, model.CachePrefix)

	return s.reload(ctx, id)
}

// UpdateReservedBy renames the holder of a reservation without touching its status or time.
func (s *serviceImpl) UpdateReservedBy(ctx context.Context, id int64, req dto.UpdateReservedByRequest) (res giftDto.GiftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateReservedBy")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelAttrGiftID, id)

	gift, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	if !gift.IsReserved() {
		return res, dto.ErrNotReserved
	}

	if err = req.Validate(); err != nil {
		return res, err
	}

	updated, err := s.repo.UpdateReservedBy(ctx, id, req.Holder(), timezone.Now())
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to update reserved by")

		return res, fmt.Errorf("failed to update reserved by: %w", err)
	}

	// released between the read and the guarded write
	if !updated {
		return res, dto.ErrNotReserved
	}

	shared.InvalidateCaches(ctx, s.cache, model.CachePrefix)

	return s.reload(ctx, id)
}

func (s *serviceImpl) queryTimeout() time.Duration {
	if s.cfg == nil || s.cfg.DB.Postgres.QueryTimeoutSeconds <= 0 {
		return defaultQueryTimeout
	}

	return time.Duration(s.cfg.DB.Postgres.QueryTimeoutSeconds) * time.Second
}

func (s *serviceImpl) load(ctx context.Context, id int64) (model.Gift, error) {
	gift, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get gift")

		return gift, fmt.Errorf("failed to get gift: %w", err)
	}

	if !gift.Exists() {
		return gift, model.ErrNotFound
	}

	return gift, nil
}

func (s *serviceImpl) reload(ctx context.Context, id int64) (res giftDto.GiftResponse, err error) {
	gift, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(gift)

	return res, nil
}
