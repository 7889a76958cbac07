package reservation

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	domain "github.com/lumiere-studio/salon-booking/internal/domain/slot"
	"github.com/lumiere-studio/salon-booking/internal/models"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) List(ctx context.Context) ([]models.Slot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Slot), args.Error(1)
}
func (m *mockRepo) Find(ctx context.Context, key domain.Key) (*models.Slot, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Slot), args.Error(1)
}
func (m *mockRepo) Insert(ctx context.Context, key domain.Key) error {
	return m.Called(ctx, key).Error(0)
}
func (m *mockRepo) Delete(ctx context.Context, key domain.Key) error {
	return m.Called(ctx, key).Error(0)
}
func (m *mockRepo) Book(ctx context.Context, key domain.Key, c models.Client) error {
	return m.Called(ctx, key, c).Error(0)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreateSession(ctx context.Context, req domain.CheckoutRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type mockHolds struct {
	mock.Mock
}

func (m *mockHolds) Acquire(ctx context.Context, key domain.Key, owner string) (bool, error) {
	args := m.Called(ctx, key, owner)
	return args.Bool(0), args.Error(1)
}
func (m *mockHolds) Release(ctx context.Context, key domain.Key) error {
	return m.Called(ctx, key).Error(0)
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []models.Client
}

func (n *recordingNotifier) NotifyConfirmed(_ domain.Key, c models.Client) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, c)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}
