// Package repotest provides an in-memory gift repository for tests that need real locking
// semantics without a database.
package repotest

import (
	"context"
	"errors"
	"giftlist/internal/domains/gift/model"
	"giftlist/internal/domains/gift/model/dto"
	"giftlist/internal/domains/gift/repository"
	"giftlist/shared/constant"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrInjected = errors.New("injected repository failure")

// Memory keeps gifts in a map. WithTx holds a single lock for the whole transaction, which gives
// the same serialization a row lock gives for a single gift, and restores the snapshot when the
// transaction body fails.
type Memory struct {
	mu      sync.Mutex
	txMu    sync.Mutex
	gifts   map[int64]model.Gift
	nextID  int64
	fail    map[string]error
	updates int
}

var _ repository.Gift = (*Memory)(nil)

func NewMemory(gifts ...model.Gift) *Memory {
	mem := &Memory{
		gifts:  map[int64]model.Gift{},
		nextID: 1,
		fail:   map[string]error{},
	}

	for _, gift := range gifts {
		if gift.ID == 0 {
			gift.ID = mem.nextID
		}

		mem.gifts[gift.ID] = gift
		mem.nextID = max(mem.nextID, gift.ID+1)
	}

	return mem
}

// FailOn makes every later call of method return err.
func (m *Memory) FailOn(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.fail[method] = err
}

// Snapshot returns a copy of the stored gift.
func (m *Memory) Snapshot(id int64) (model.Gift, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	gift, ok := m.gifts[id]

	return gift, ok
}

// Updates counts successful writes.
func (m *Memory) Updates() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.updates
}

func (m *Memory) failure(method string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.fail[method]
}

func (m *Memory) GetAll(_ context.Context, filter dto.ListFilter) ([]model.Gift, error) {
	if err := m.failure("GetAll"); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	gifts := []model.Gift{}

	for _, gift := range m.gifts {
		if filter.Status != constant.Empty && gift.Status != filter.Status {
			continue
		}

		if filter.Category != constant.Empty && gift.Category != filter.Category {
			continue
		}

		gifts = append(gifts, gift)
	}

	slices.SortFunc(gifts, func(a, b model.Gift) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}

		return int(b.ID - a.ID)
	})

	return gifts, nil
}

func (m *Memory) GetByID(_ context.Context, id int64) (model.Gift, error) {
	if err := m.failure("GetByID"); err != nil {
		return model.Gift{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.gifts[id], nil
}

func (m *Memory) Insert(_ context.Context, gift model.Gift) (int64, error) {
	if err := m.failure("Insert"); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	gift.ID = m.nextID
	m.nextID++
	m.gifts[gift.ID] = gift
	m.updates++

	return gift.ID, nil
}

func (m *Memory) Update(_ context.Context, id int64, fields map[string]any) error {
	if err := m.failure("Update"); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.apply(id, fields)

	return nil
}

func (m *Memory) UpdateReservedBy(_ context.Context, id int64, reservedBy string, modifiedAt time.Time) (bool, error) {
	if err := m.failure("UpdateReservedBy"); err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	gift, ok := m.gifts[id]
	if !ok || gift.Status != model.StatusReserved {
		return false, nil
	}

	m.apply(id, map[string]any{model.FieldReservedBy: reservedBy, model.FieldModifiedAt: modifiedAt})

	return true, nil
}

func (m *Memory) Delete(_ context.Context, id int64) error {
	if err := m.failure("Delete"); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.gifts, id)
	m.updates++

	return nil
}

func (m *Memory) WithTx(_ context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	if err = m.failure("WithTx"); err != nil {
		return err
	}

	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.Lock()
	snapshot := maps.Clone(m.gifts)
	m.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			m.restore(snapshot)
			panic(p)
		}

		if err != nil {
			m.restore(snapshot)
		}
	}()

	return fn(nil)
}

func (m *Memory) GetByIDForUpdateTx(ctx context.Context, _ *sqlx.Tx, id int64) (model.Gift, error) {
	if err := m.failure("GetByIDForUpdateTx"); err != nil {
		return model.Gift{}, err
	}

	return m.GetByID(ctx, id)
}

func (m *Memory) UpdateTx(ctx context.Context, _ *sqlx.Tx, id int64, fields map[string]any) error {
	if err := m.failure("UpdateTx"); err != nil {
		return err
	}

	return m.Update(ctx, id, fields)
}

func (m *Memory) restore(snapshot map[int64]model.Gift) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gifts = snapshot
}

// apply writes fields the way the SQL UPDATE would. The caller holds mu.
func (m *Memory) apply(id int64, fields map[string]any) {
	gift, ok := m.gifts[id]
	if !ok {
		return
	}

	for col, value := range fields {
		switch col {
		case model.FieldName:
			gift.Name = asString(value)
		case model.FieldCategory:
			gift.Category = asString(value)
		case model.FieldDescription:
			gift.Description = asString(value)
		case model.FieldProductLink:
			gift.ProductLink = asStringPtr(value)
		case model.FieldImageURL:
			gift.ImageURL = asStringPtr(value)
		case model.FieldStatus:
			gift.Status = asString(value)
		case model.FieldReservedBy:
			gift.ReservedBy = asStringPtr(value)
		case model.FieldReservedAt:
			gift.ReservedAt = asTimePtr(value)
		case model.FieldModifiedAt:
			if at := asTimePtr(value); at != nil {
				gift.ModifiedAt = *at
			}
		}
	}

	m.gifts[id] = gift
	m.updates++
}

func asString(value any) string {
	if ptr := asStringPtr(value); ptr != nil {
		return *ptr
	}

	return constant.Empty
}

func asStringPtr(value any) *string {
	switch v := value.(type) {
	case string:
		return &v
	case *string:
		if v == nil {
			return nil
		}

		copied := *v

		return &copied
	default:
		return nil
	}
}

func asTimePtr(value any) *time.Time {
	switch v := value.(type) {
	case time.Time:
		return &v
	case *time.Time:
		if v == nil {
			return nil
		}

		copied := *v

		return &copied
	default:
		return nil
	}
}
