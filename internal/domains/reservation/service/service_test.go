package service_test

import (
	"context"
	"errors"
	"fmt"
	"giftlist/config"
	"giftlist/infras/metrics"
	"giftlist/infras/otel/mocks"
	giftMocks "giftlist/internal/domains/gift/mocks"
	"giftlist/internal/domains/gift/model"
	"giftlist/internal/domains/gift/repository/repotest"
	"giftlist/internal/domains/reservation/model/dto"
	"giftlist/internal/domains/reservation/service"
	"giftlist/shared/cache"
	cacheMocks "giftlist/shared/cache/mocks"
	"giftlist/shared/failure"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	promDto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.DB.Postgres.QueryTimeoutSeconds = 5

	return cfg
}

func availableGift(id int64) model.Gift {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	return model.Gift{
		ID:          id,
		Name:        "Stand mixer",
		Category:    "Kitchen",
		Description: "Any colour is fine",
		Status:      model.StatusAvailable,
		CreatedAt:   at,
		ModifiedAt:  at,
	}
}

func reservedGift(id int64, by string) model.Gift {
	gift := availableGift(id)
	at := gift.CreatedAt.Add(time.Hour)
	gift.Status = model.StatusReserved
	gift.ReservedBy = &by
	gift.ReservedAt = &at

	return gift
}

func reservationCount(t *testing.T, reg *prometheus.Registry, outcome string) float64 {
	t.Helper()

	mfs, err := reg.Gather()
	require.NoError(t, err)

	for _, mf := range mfs {
		if mf.GetName() != "giftlist_reservations_total" {
			continue
		}

		for _, metric := range mf.GetMetric() {
			if labelValue(metric, "outcome") == outcome {
				return metric.GetCounter().GetValue()
			}
		}
	}

	return 0
}

func labelValue(metric *promDto.Metric, name string) string {
	for _, label := range metric.GetLabel() {
		if label.GetName() == name {
			return label.GetValue()
		}
	}

	return ""
}

func TestReservationService_Reserve_ConcurrentClaimsHaveOneWinner(t *testing.T) {
	const guests = 20

	repo := repotest.NewMemory(availableGift(1))
	reg := prometheus.NewRegistry()
	svc := service.New(repo, newConfig(), cache.NewNoop(), metrics.NewWithRegistry(reg), mocks.NewOtel())

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		winners   []string
		conflicts int
		others    []error
	)

	start := make(chan struct{})

	for i := range guests {
		wg.Add(1)

		go func(name string) {
			defer wg.Done()

			<-start

			res, err := svc.Reserve(context.Background(), dto.ReserveRequest{GiftID: 1, GuestName: name})

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				winners = append(winners, *res.ReservedBy)
			case failure.GetCode(err) == http.StatusConflict:
				conflicts++
			default:
				others = append(others, err)
			}
		}(fmt.Sprintf("Guest %02d", i))
	}

	close(start)
	wg.Wait()

	require.Empty(t, others)
	require.Len(t, winners, 1)
	assert.Equal(t, guests-1, conflicts)

	stored, ok := repo.Snapshot(1)
	require.True(t, ok)
	assert.Equal(t, model.StatusReserved, stored.Status)
	require.NotNil(t, stored.ReservedBy)
	assert.Equal(t, winners[0], *stored.ReservedBy)
	assert.NotNil(t, stored.ReservedAt)

	assert.InDelta(t, 1, reservationCount(t, reg, metrics.OutcomeReserved), 0)
	assert.InDelta(t, guests-1, reservationCount(t, reg, metrics.OutcomeConflict), 0)
}

func TestReservationService_Reserve(t *testing.T) {
	tests := []struct {
		name        string
		gifts       []model.Gift
		failOn      string
		req         dto.ReserveRequest
		wantCode    int
		wantOutcome string
		wantStatus  string
	}{
		{
			name:        "reserves an available gift",
			gifts:       []model.Gift{availableGift(3)},
			req:         dto.ReserveRequest{GiftID: 3, GuestName: "  Carla  "},
			wantOutcome: metrics.OutcomeReserved,
			wantStatus:  model.StatusReserved,
		},
		{
			name:        "already reserved",
			gifts:       []model.Gift{reservedGift(3, "Someone")},
			req:         dto.ReserveRequest{GiftID: 3, GuestName: "Carla"},
			wantCode:    http.StatusConflict,
			wantOutcome: metrics.OutcomeConflict,
			wantStatus:  model.StatusReserved,
		},
		{
			name:        "unknown gift",
			gifts:       []model.Gift{availableGift(3)},
			req:         dto.ReserveRequest{GiftID: 99, GuestName: "Carla"},
			wantCode:    http.StatusNotFound,
			wantOutcome: metrics.OutcomeNotFound,
			wantStatus:  model.StatusAvailable,
		},
		{
			name:        "write failure rolls back",
			gifts:       []model.Gift{availableGift(3)},
			failOn:      "UpdateTx",
			req:         dto.ReserveRequest{GiftID: 3, GuestName: "Carla"},
			wantCode:    http.StatusInternalServerError,
			wantOutcome: metrics.OutcomeError,
			wantStatus:  model.StatusAvailable,
		},
		{
			name:        "lock failure",
			gifts:       []model.Gift{availableGift(3)},
			failOn:      "GetByIDForUpdateTx",
			req:         dto.ReserveRequest{GiftID: 3, GuestName: "Carla"},
			wantCode:    http.StatusInternalServerError,
			wantOutcome: metrics.OutcomeError,
			wantStatus:  model.StatusAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := repotest.NewMemory(tt.gifts...)
			if tt.failOn != "" {
				repo.FailOn(tt.failOn, repotest.ErrInjected)
			}

			reg := prometheus.NewRegistry()
			svc := service.New(repo, newConfig(), cache.NewNoop(), metrics.NewWithRegistry(reg), mocks.NewOtel())

			res, err := svc.Reserve(context.Background(), tt.req)

			assert.InDelta(t, 1, reservationCount(t, reg, tt.wantOutcome), 0)

			stored, ok := repo.Snapshot(3)
			require.True(t, ok)
			assert.Equal(t, tt.wantStatus, stored.Status)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.Equal(t, tt.gifts[0].ReservedBy, stored.ReservedBy)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, model.StatusReserved, res.Status)
			require.NotNil(t, res.ReservedBy)
			assert.Equal(t, "Carla", *res.ReservedBy)
			assert.NotNil(t, res.ReservedAt)
			assert.Equal(t, "Carla", *stored.ReservedBy)
		})
	}
}

func TestReservationService_Reserve_RejectsBeforeStorage(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.ReserveRequest
		message string
	}{
		{name: "short name", req: dto.ReserveRequest{GiftID: 1, GuestName: " ab "}, message: dto.MessageNameTooShort},
		{name: "missing name", req: dto.ReserveRequest{GiftID: 1}, message: dto.MessageIncompleteData},
		{name: "missing id", req: dto.ReserveRequest{GuestName: "Carla"}, message: dto.MessageIncompleteData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			// no expectations: any repository or cache call fails the test
			repo := giftMocks.NewMockGift(ctrl)
			redisCache := cacheMocks.NewMockRedisCache(ctrl)

			reg := prometheus.NewRegistry()
			svc := service.New(repo, newConfig(), redisCache, metrics.NewWithRegistry(reg), mocks.NewOtel())

			_, err := svc.Reserve(context.Background(), tt.req)

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Equal(t, tt.message, err.Error())
			assert.InDelta(t, 1, reservationCount(t, reg, metrics.OutcomeInvalid), 0)
		})
	}
}

func TestReservationService_Reserve_CacheInvalidation(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *giftMocks.MockGift, redisCache *cacheMocks.MockRedisCache)
		wantErr   bool
	}{
		{
			name: "cleared after commit",
			setupMock: func(repo *giftMocks.MockGift, redisCache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					WithTx(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fn func(*sqlx.Tx) error) error {
						return fn(nil)
					})
				repo.EXPECT().GetByIDForUpdateTx(gomock.Any(), gomock.Nil(), int64(5)).Return(availableGift(5), nil)
				repo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Nil(), int64(5), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, _ int64, fields map[string]any) error {
						assert.Equal(t, model.StatusReserved, fields[model.FieldStatus])
						assert.Equal(t, "Carla", fields[model.FieldReservedBy])
						assert.Equal(t, fields[model.FieldReservedAt], fields[model.FieldModifiedAt])

						return nil
					})
				redisCache.EXPECT().Clear(gomock.Any(), model.CachePrefix+"*").Return(nil)
			},
		},
		{
			name: "kept on conflict",
			setupMock: func(repo *giftMocks.MockGift, _ *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					WithTx(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fn func(*sqlx.Tx) error) error {
						return fn(nil)
					})
				repo.EXPECT().GetByIDForUpdateTx(gomock.Any(), gomock.Nil(), int64(5)).Return(reservedGift(5, "Dora"), nil)
			},
			wantErr: true,
		},
		{
			name: "begin failure",
			setupMock: func(repo *giftMocks.MockGift, _ *cacheMocks.MockRedisCache) {
				repo.EXPECT().WithTx(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := giftMocks.NewMockGift(ctrl)
			redisCache := cacheMocks.NewMockRedisCache(ctrl)
			tt.setupMock(repo, redisCache)

			svc := service.New(repo, newConfig(), redisCache, nil, mocks.NewOtel())

			_, err := svc.Reserve(context.Background(), dto.ReserveRequest{GiftID: 5, GuestName: "Carla"})
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestReservationService_Reserve_IgnoresCallerCancellation(t *testing.T) {
	repo := repotest.NewMemory(availableGift(1))
	svc := service.New(repo, newConfig(), cache.NewNoop(), nil, mocks.NewOtel())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Reserve(ctx, dto.ReserveRequest{GiftID: 1, GuestName: "Carla"})
	require.NoError(t, err)

	stored, _ := repo.Snapshot(1)
	assert.Equal(t, model.StatusReserved, stored.Status)
}

func TestReservationService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name       string
		gift       model.Gift
		id         int64
		req        dto.UpdateStatusRequest
		wantCode   int
		wantStatus string
		wantHolder *string
	}{
		{
			name:       "release clears the reservation",
			gift:       reservedGift(2, "Dora"),
			id:         2,
			req:        dto.UpdateStatusRequest{Status: "available"},
			wantStatus: model.StatusAvailable,
		},
		{
			name:       "reserve overwrites without conflict",
			gift:       reservedGift(2, "Dora"),
			id:         2,
			req:        dto.UpdateStatusRequest{Status: "RESERVED", ReservedBy: "  Eva Lima "},
			wantStatus: model.StatusReserved,
			wantHolder: ptr("Eva Lima"),
		},
		{
			name:       "reserve an available gift",
			gift:       availableGift(2),
			id:         2,
			req:        dto.UpdateStatusRequest{Status: "reserved", ReservedBy: "Fabio"},
			wantStatus: model.StatusReserved,
			wantHolder: ptr("Fabio"),
		},
		{
			name:     "reserve without a name",
			gift:     availableGift(2),
			id:       2,
			req:      dto.UpdateStatusRequest{Status: "reserved", ReservedBy: " "},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown status",
			gift:     availableGift(2),
			id:       2,
			req:      dto.UpdateStatusRequest{Status: "gone"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown gift",
			gift:     availableGift(2),
			id:       8,
			req:      dto.UpdateStatusRequest{Status: "available"},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := repotest.NewMemory(tt.gift)
			svc := service.New(repo, newConfig(), cache.NewNoop(), nil, mocks.NewOtel())

			res, err := svc.UpdateStatus(context.Background(), tt.id, tt.req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.Zero(t, repo.Updates())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, tt.wantHolder, res.ReservedBy)

			stored, _ := repo.Snapshot(tt.id)
			assert.Equal(t, tt.wantStatus, stored.Status)
			assert.Equal(t, tt.wantHolder, stored.ReservedBy)

			if tt.wantHolder == nil {
				assert.Nil(t, stored.ReservedAt)
			} else {
				assert.NotNil(t, stored.ReservedAt)
			}
		})
	}
}

func TestReservationService_UpdateReservedBy(t *testing.T) {
	tests := []struct {
		name       string
		gift       model.Gift
		id         int64
		req        dto.UpdateReservedByRequest
		wantCode   int
		wantHolder string
	}{
		{
			name:       "renames the holder",
			gift:       reservedGift(4, "Dora"),
			id:         4,
			req:        dto.UpdateReservedByRequest{ReservedBy: " Dora Silva "},
			wantHolder: "Dora Silva",
		},
		{
			name:     "empty name",
			gift:     reservedGift(4, "Dora"),
			id:       4,
			req:      dto.UpdateReservedByRequest{ReservedBy: ""},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "gift not reserved",
			gift:     availableGift(4),
			id:       4,
			req:      dto.UpdateReservedByRequest{ReservedBy: "Dora"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown gift",
			gift:     reservedGift(4, "Dora"),
			id:       5,
			req:      dto.UpdateReservedByRequest{ReservedBy: "Dora"},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := repotest.NewMemory(tt.gift)
			svc := service.New(repo, newConfig(), cache.NewNoop(), nil, mocks.NewOtel())

			res, err := svc.UpdateReservedBy(context.Background(), tt.id, tt.req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.Zero(t, repo.Updates())

				return
			}

			require.NoError(t, err)
			require.NotNil(t, res.ReservedBy)
			assert.Equal(t, tt.wantHolder, *res.ReservedBy)
			assert.Equal(t, model.StatusReserved, res.Status)
			assert.Equal(t, tt.gift.ReservedAt.UTC(), res.ReservedAt.UTC())
		})
	}
}

func TestReservationService_UpdateReservedBy_ReleasedConcurrently(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := giftMocks.NewMockGift(ctrl)

	repo.EXPECT().GetByID(gomock.Any(), int64(4)).Return(reservedGift(4, "Dora"), nil)
	repo.EXPECT().UpdateReservedBy(gomock.Any(), int64(4), "Dora Silva", gomock.Any()).Return(false, nil)

	svc := service.New(repo, newConfig(), cache.NewNoop(), nil, mocks.NewOtel())

	_, err := svc.UpdateReservedBy(context.Background(), 4, dto.UpdateReservedByRequest{ReservedBy: "Dora Silva"})

	require.Error(t, err)
	assert.ErrorIs(t, err, dto.ErrNotReserved)
}

func ptr[T any](v T) *T {
	return &v
}
