package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"giftlist/config"
	"giftlist/infras/otel"
	"giftlist/infras/storage"
	"giftlist/internal/domains/gift/model"
	"giftlist/internal/domains/gift/model/dto"
	"giftlist/internal/domains/gift/repository"
	"giftlist/shared"
	"giftlist/shared/cache"
	"giftlist/shared/constant"
	"giftlist/shared/failure"
	"giftlist/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllGift = model.CachePrefix + "gets"

	otelAttrGiftID = "gift.id"
)

type Gift interface {
	ListAll(ctx context.Context, filter dto.ListFilter) ([]dto.GiftResponse, error)
	Get(ctx context.Context, id int64) (dto.GiftResponse, error)
	Create(ctx context.Context, req dto.CreateGiftRequest, image *storage.Upload) (dto.GiftResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateGiftRequest, image *storage.Upload) (dto.GiftResponse, error)
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo    repository.Gift
	storage storage.Storage
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
}

func New(repo repository.Gift, storage storage.Storage, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Gift {
	return &serviceImpl{
		repo:    repo,
		storage: storage,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
	}
}

func (s *serviceImpl) ListAll(ctx context.Context, filter dto.ListFilter) (res []dto.GiftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter.Normalize()

	if err = validator.ValidateStruct(&filter); err != nil {
		return nil, err //nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllGift, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for gifts")

		return res, nil
	}

	generation := shared.CacheGeneration(model.CachePrefix)

	gifts, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get gifts")

		return nil, fmt.Errorf("failed to get gifts: %w", err)
	}

	res = dto.FromModels(gifts)

	shared.SaveCache(context.WithoutCancel(ctx), s.cache, model.CachePrefix, generation, cacheKey, res, s.cfg.Cache.TTL)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.GiftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelAttrGiftID, id)

	gift, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(gift)

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateGiftRequest, image *storage.Upload) (res dto.GiftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Normalize()

	if image != nil {
		req.ImageURL = constant.Empty
	}

	if err = failure.Validation(req.Validate()); err != nil {
		return res, err //nolint:wrapcheck
	}

	imageRef, err := s.saveImage(ctx, image)
	if err != nil {
		return res, err
	}

	id, err := s.repo.Insert(ctx, req.ToModel(imageRef))
	if err != nil {
		log.Error().Err(err).Msg("failed to create gift")
		s.discardImage(ctx, imageRef)

		return res, fmt.Errorf("failed to create gift: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, model.CachePrefix)

	scope.SetAttribute(otelAttrGiftID, id)

	created, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(created)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id int64, req dto.UpdateGiftRequest, image *storage.Upload) (res dto.GiftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelAttrGiftID, id)

	existing, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	merged := req.Merge(existing)
	if image != nil {
		merged.ImageURL = constant.Empty
	}

	if err = failure.Validation(merged.Validate()); err != nil {
		return res, err //nolint:wrapcheck
	}

	imageRef, err := s.saveImage(ctx, image)
	if err != nil {
		return res, err
	}

	switch {
	case imageRef != constant.Empty:
	case merged.ImageURL != constant.Empty:
		imageRef = merged.ImageURL
	default:
		imageRef = existing.ImageRef()
	}

	if err = s.repo.Update(ctx, id, merged.ToUpdateFields(imageRef)); err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to update gift")

		if image != nil {
			s.discardImage(ctx, imageRef)
		}

		return res, fmt.Errorf("failed to update gift: %w", err)
	}

	if previous := existing.ImageRef(); previous != imageRef {
		s.discardImage(ctx, previous)
	}

	shared.InvalidateCaches(ctx, s.cache, model.CachePrefix)

	updated, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelAttrGiftID, id)

	existing, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	s.discardImage(ctx, existing.ImageRef())

	if err = s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete gift")

		return fmt.Errorf("failed to delete gift: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, model.CachePrefix)

	return nil
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

func (s *serviceImpl) saveImage(ctx context.Context, image *storage.Upload) (string, error) {
	if image == nil {
		return constant.Empty, nil
	}

	ref, err := s.storage.Save(ctx, *image)
	if err != nil {
		if failure.IsDomain(err) {
			return constant.Empty, err //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to store gift image")

		return constant.Empty, fmt.Errorf("failed to store gift image: %w", err)
	}

	return ref, nil
}

// discardImage removes ref when this service stored it. Failures are logged only.
func (s *serviceImpl) discardImage(ctx context.Context, ref string) {
	if ref == constant.Empty || !s.storage.Owns(ref) {
		return
	}

	if err := s.storage.Delete(ctx, ref); err != nil {
		log.Error().Err(err).Str("ref", ref).Msg("failed to delete gift image")
	}
}
