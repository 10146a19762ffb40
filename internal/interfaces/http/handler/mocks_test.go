package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/qrmenu/backend/internal/application/identity"
	menuapp "github.com/qrmenu/backend/internal/application/menu"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, input identity.LoginInput) (*identity.LoginResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.LoginResult), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, input identity.LogoutInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockAuthService) GetCurrentUser(ctx context.Context, input identity.CurrentUserInput) (*identity.CurrentUserResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.CurrentUserResult), args.Error(1)
}

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context, businessID uuid.UUID) ([]menuapp.CategoryResult, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]menuapp.CategoryResult), args.Error(1)
}

func (m *MockCategoryService) Get(ctx context.Context, businessID, id uuid.UUID) (*menuapp.CategoryResult, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menuapp.CategoryResult), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, input menuapp.CreateCategoryInput) (*menuapp.CategoryResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menuapp.CategoryResult), args.Error(1)
}

func (m *MockCategoryService) Update(ctx context.Context, input menuapp.UpdateCategoryInput) (*menuapp.CategoryResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menuapp.CategoryResult), args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, businessID, id uuid.UUID) (*menuapp.DeleteCategoryResult, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menuapp.DeleteCategoryResult), args.Error(1)
}

type MockMenuItemService struct {
	mock.Mock
}

func (m *MockMenuItemService) List(ctx context.Context, businessID uuid.UUID, filter menuapp.MenuItemListFilter) ([]menuapp.MenuItemResult, error) {
	args := m.Called(ctx, businessID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]menuapp.MenuItemResult), args.Error(1)
}

func (m *MockMenuItemService) Get(ctx context.Context, businessID, id uuid.UUID) (*menuapp.MenuItemResult, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menuapp.MenuItemResult), args.Error(1)
}

func (m *MockMenuItemService) Create(ctx context.Context, input menuapp.CreateMenuItemInput) (*menuapp.MenuItemResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menuapp.MenuItemResult), args.Error(1)
}

func (m *MockMenuItemService) Update(ctx context.Context, input menuapp.UpdateMenuItemInput) (*menuapp.MenuItemResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menuapp.MenuItemResult), args.Error(1)
}

func (m *MockMenuItemService) Delete(ctx context.Context, businessID, id uuid.UUID) error {
	return m.Called(ctx, businessID, id).Error(0)
}

type MockPublicMenuService struct {
	mock.Mock
}

func (m *MockPublicMenuService) GetMenu(ctx context.Context, slug string) (*menuapp.PublicMenu, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menuapp.PublicMenu), args.Error(1)
}

func (m *MockPublicMenuService) DemoMenu(ctx context.Context) (*menuapp.PublicMenu, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menuapp.PublicMenu), args.Error(1)
}

func (m *MockPublicMenuService) GetCategory(ctx context.Context, slug string, id uuid.UUID) (*menuapp.PublicCategory, error) {
	args := m.Called(ctx, slug, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menuapp.PublicCategory), args.Error(1)
}

type MockQRService struct {
	mock.Mock
}

func (m *MockQRService) Generate(ctx context.Context) (*menuapp.QRCodeResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menuapp.QRCodeResult), args.Error(1)
}

func (m *MockQRService) Poster(ctx context.Context, businessID uuid.UUID) (*menuapp.PosterResult, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menuapp.PosterResult), args.Error(1)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
