package commands_test

import (
	"context"
	"sync"

	"printshop/internal/core/application/usecases/commands"
	"printshop/internal/core/domain/model/draft"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/model/user"
	"printshop/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetStatusForUpdate(ctx context.Context, id kernel.UUID) (order.Status, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(order.Status), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id kernel.UUID, update order.StatusUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockOrderRepository) IsOwnedBy(ctx context.Context, id, ownerID kernel.UUID) (bool, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Bool(0), args.Error(1)
}

type MockSettingsRepository struct{ mock.Mock }

func (m *MockSettingsRepository) LoadQueueSeq(ctx context.Context) (uint16, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint16), args.Error(1)
}

func (m *MockSettingsRepository) SaveQueueSeq(ctx context.Context, seq uint16) error {
	args := m.Called(ctx, seq)
	return args.Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUoW struct{ MockOrderUoW }

func (m *MockUoW) SettingsRepository() ports.SettingsRepository {
	args := m.Called()
	return args.Get(0).(ports.SettingsRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

// fakeStorage is an in-memory ports.ObjectStorage for handler tests.
type fakeStorage struct {
	mu      sync.Mutex
	missing map[string]bool
	deleted []draft.StoredObject
}

func (s *fakeStorage) Exists(_ context.Context, object draft.StoredObject) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.missing[object.Key], nil
}

func (s *fakeStorage) DeleteObject(_ context.Context, object draft.StoredObject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, object)
	return nil
}

func (s *fakeStorage) DeleteObjects(_ context.Context, objects []draft.StoredObject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, objects...)
	return nil
}

func clientSession(role user.Role) user.Session {
	session, err := user.NewSession(kernel.NewUUID(), role)
	if err != nil {
		panic(err)
	}
	return session
}
