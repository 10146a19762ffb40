package menu

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/qrmenu/backend/internal/domain/menu"
	"github.com/qrmenu/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type categoryFixture struct {
	categories *MockCategoryRepository
	images     *MockImageStore
	service    *CategoryService
	logs       *observer.ObservedLogs
	businessID uuid.UUID
}

func newCategoryFixture() *categoryFixture {
	core, logs := observer.New(zapcore.DebugLevel)
	f := &categoryFixture{
		categories: new(MockCategoryRepository),
		images:     new(MockImageStore),
		logs:       logs,
		businessID: uuid.New(),
	}
	f.service = NewCategoryService(f.categories, f.images, CategoryImagePolicy(1024), zap.New(core))
	return f
}

func (f *categoryFixture) existing(t *testing.T, imagePath string) *menu.Category {
	t.Helper()
	c, err := menu.NewCategory(f.businessID, "Drinks", "")
	require.NoError(t, err)
	c.ImagePath = imagePath
	return c
}

func TestCategoryService_List(t *testing.T) {
	ctx := context.Background()
	f := newCategoryFixture()
	withImage := f.existing(t, "categories/1-a.jpg")
	withoutImage := f.existing(t, "")
	f.categories.On("FindAllForBusiness", mock.Anything, f.businessID).Return([]menu.Category{*withImage, *withoutImage}, nil)

	results, err := f.service.List(ctx, f.businessID)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "/uploads/categories/1-a.jpg", results[0].ImageURL)
	assert.Empty(t, results[1].ImageURL)
}

func TestCategoryService_Get_OtherBusiness(t *testing.T) {
	ctx := context.Background()
	f := newCategoryFixture()
	id := uuid.New()
	f.categories.On("FindByIDForBusiness", mock.Anything, f.businessID, id).Return(nil, shared.ErrNotFound)

	_, err := f.service.Get(ctx, f.businessID, id)

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("stores image and takes business from caller", func(t *testing.T) {
		f := newCategoryFixture()
		f.images.On("Save", mock.Anything, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "categories/") && strings.HasSuffix(key, ".png")
		}), int64(len(pngHeader)), "image/png").Return(nil)
		f.categories.On("Create", mock.Anything, mock.MatchedBy(func(c *menu.Category) bool {
			return c.BusinessID == f.businessID && c.Name == "Desserts" && c.HasImage()
		})).Return(nil)

		result, err := f.service.Create(ctx, CreateCategoryInput{
			BusinessID: f.businessID,
			Name:       "Desserts",
			Image:      newUpload("cake.png", "image/png", pngHeader),
		})

		require.NoError(t, err)
		assert.Equal(t, f.businessID, result.BusinessID)
		assert.True(t, strings.HasPrefix(result.ImageURL, "/uploads/categories/"))
		f.categories.AssertExpectations(t)
	})

	t.Run("empty name stores nothing", func(t *testing.T) {
		f := newCategoryFixture()

		_, err := f.service.Create(ctx, CreateCategoryInput{
			BusinessID: f.businessID,
			Name:       " ",
			Image:      newUpload("cake.png", "image/png", pngHeader),
		})

		require.Error(t, err)
		f.images.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.categories.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("persistence failure removes the new file", func(t *testing.T) {
		f := newCategoryFixture()
		var savedKey string
		f.images.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { savedKey = args.String(1) }).
			Return(nil)
		f.categories.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk I/O error"))
		f.images.On("Delete", mock.Anything, mock.Anything).Return(nil)

		_, err := f.service.Create(ctx, CreateCategoryInput{
			BusinessID: f.businessID,
			Name:       "Desserts",
			Image:      newUpload("cake.png", "image/png", pngHeader),
		})

		require.Error(t, err)
		f.images.AssertCalled(t, "Delete", mock.Anything, savedKey)
	})
}

func TestCategoryService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("replacing the image keeps the old file", func(t *testing.T) {
		f := newCategoryFixture()
		existing := f.existing(t, "categories/old.jpg")
		f.categories.On("FindByIDForBusiness", mock.Anything, f.businessID, existing.ID).Return(existing, nil)
		f.images.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		f.categories.On("Update", mock.Anything, mock.MatchedBy(func(c *menu.Category) bool {
			return c.Name == "Beverages" && c.ImagePath != "categories/old.jpg"
		})).Return(nil)

		result, err := f.service.Update(ctx, UpdateCategoryInput{
			BusinessID: f.businessID,
			ID:         existing.ID,
			Name:       "Beverages",
			Image:      newUpload("new.jpg", "image/jpeg", jpegHeader),
		})

		require.NoError(t, err)
		assert.Equal(t, "Beverages", result.Name)
		assert.NotEqual(t, "/uploads/categories/old.jpg", result.ImageURL)
		f.images.AssertExpectations(t)
		f.images.AssertNotCalled(t, "Delete", mock.Anything, "categories/old.jpg")
	})

	t.Run("without upload keeps the image", func(t *testing.T) {
		f := newCategoryFixture()
		existing := f.existing(t, "categories/old.jpg")
		f.categories.On("FindByIDForBusiness", mock.Anything, f.businessID, existing.ID).Return(existing, nil)
		f.categories.On("Update", mock.Anything, mock.Anything).Return(nil)

		result, err := f.service.Update(ctx, UpdateCategoryInput{BusinessID: f.businessID, ID: existing.ID, Name: "Drinks"})

		require.NoError(t, err)
		assert.Equal(t, "/uploads/categories/old.jpg", result.ImageURL)
		f.images.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("other business is not found", func(t *testing.T) {
		f := newCategoryFixture()
		id := uuid.New()
		f.categories.On("FindByIDForBusiness", mock.Anything, f.businessID, id).Return(nil, shared.ErrNotFound)

		_, err := f.service.Update(ctx, UpdateCategoryInput{
			BusinessID: f.businessID,
			ID:         id,
			Name:       "X",
			Image:      newUpload("new.jpg", "image/jpeg", jpegHeader),
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
		f.images.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("failed write keeps the old file and drops the new one", func(t *testing.T) {
		f := newCategoryFixture()
		existing := f.existing(t, "categories/old.jpg")
		var savedKey string
		f.categories.On("FindByIDForBusiness", mock.Anything, f.businessID, existing.ID).Return(existing, nil)
		f.images.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { savedKey = args.String(1) }).
			Return(nil)
		f.categories.On("Update", mock.Anything, mock.Anything).Return(shared.ErrNotFound)
		f.images.On("Delete", mock.Anything, mock.Anything).Return(nil)

		_, err := f.service.Update(ctx, UpdateCategoryInput{
			BusinessID: f.businessID,
			ID:         existing.ID,
			Name:       "Drinks",
			Image:      newUpload("new.jpg", "image/jpeg", jpegHeader),
		})

		require.Error(t, err)
		f.images.AssertCalled(t, "Delete", mock.Anything, savedKey)
		f.images.AssertNotCalled(t, "Delete", mock.Anything, "categories/old.jpg")
	})
}

func TestCategoryService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes category and cascaded item images", func(t *testing.T) {
		f := newCategoryFixture()
		id := uuid.New()
		f.categories.On("DeleteForBusiness", mock.Anything, f.businessID, id).Return(&menu.CategoryDeletion{
			Category:       menu.Category{ImagePath: "categories/c.jpg"},
			ItemCount:      2,
			ItemImagePaths: []string{"menu-items/image-1.png"},
		}, nil)
		f.images.On("Delete", mock.Anything, "categories/c.jpg").Return(nil)
		f.images.On("Delete", mock.Anything, "menu-items/image-1.png").Return(errors.New("permission denied"))

		result, err := f.service.Delete(ctx, f.businessID, id)

		require.NoError(t, err, "cleanup failures are not surfaced")
		assert.Equal(t, 2, result.DeletedItems)
		f.images.AssertExpectations(t)
		assert.Equal(t, 1, f.logs.FilterMessage("Failed to delete image").FilterLevelExact(zapcore.WarnLevel).Len())
	})

	t.Run("other business is not found", func(t *testing.T) {
		f := newCategoryFixture()
		id := uuid.New()
		f.categories.On("DeleteForBusiness", mock.Anything, f.businessID, id).Return(nil, shared.ErrNotFound)

		_, err := f.service.Delete(ctx, f.businessID, id)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		f.images.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
