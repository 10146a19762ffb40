package menu

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/qrmenu/backend/internal/domain/identity"
	"github.com/qrmenu/backend/internal/domain/menu"
	"github.com/qrmenu/backend/internal/infrastructure/printing"
	"github.com/stretchr/testify/mock"
)

// MockCategoryRepository is a mock implementation of menu.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*menu.Category, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID) ([]menu.Category, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]menu.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *menu.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *menu.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) DeleteForBusiness(ctx context.Context, businessID, id uuid.UUID) (*menu.CategoryDeletion, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.CategoryDeletion), args.Error(1)
}

// MockMenuItemRepository is a mock implementation of menu.MenuItemRepository
type MockMenuItemRepository struct {
	mock.Mock
}

func (m *MockMenuItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*menu.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*menu.MenuItemView, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.MenuItemView), args.Error(1)
}

func (m *MockMenuItemRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter menu.MenuItemFilter) ([]menu.MenuItemView, error) {
	args := m.Called(ctx, businessID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]menu.MenuItemView), args.Error(1)
}

func (m *MockMenuItemRepository) Create(ctx context.Context, item *menu.MenuItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockMenuItemRepository) UpdateForBusiness(ctx context.Context, businessID uuid.UUID, item *menu.MenuItem) error {
	return m.Called(ctx, businessID, item).Error(0)
}

func (m *MockMenuItemRepository) DeleteForBusiness(ctx context.Context, businessID, id uuid.UUID) error {
	return m.Called(ctx, businessID, id).Error(0)
}

// MockBusinessRepository is a mock implementation of identity.BusinessRepository
type MockBusinessRepository struct {
	mock.Mock
}

func (m *MockBusinessRepository) Create(ctx context.Context, business *identity.Business) error {
	return m.Called(ctx, business).Error(0)
}

func (m *MockBusinessRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Business), args.Error(1)
}

func (m *MockBusinessRepository) FindBySlug(ctx context.Context, slug string) (*identity.Business, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Business), args.Error(1)
}

// MockImageStore is a mock implementation of ImageStore. Save drains the
// reader so tests observe what would have been written.
type MockImageStore struct {
	mock.Mock
	saved map[string][]byte
}

func (m *MockImageStore) Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	data, _ := io.ReadAll(r)
	if m.saved == nil {
		m.saved = make(map[string][]byte)
	}
	m.saved[key] = data
	return m.Called(ctx, key, size, contentType).Error(0)
}

func (m *MockImageStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockImageStore) URL(key string) string {
	return "/uploads/" + key
}

// MockPosterRenderer is a mock implementation of PosterRenderer
type MockPosterRenderer struct {
	mock.Mock
}

func (m *MockPosterRenderer) RenderPoster(ctx context.Context, poster printing.Poster) ([]byte, error) {
	args := m.Called(ctx, poster)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
