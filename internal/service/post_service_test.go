package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "shopapi/internal/errors"
	"shopapi/internal/model"
	"shopapi/internal/storage"
)

// MockPostRepository is a mock implementation of PostRepository.
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Update(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) FindByID(ctx context.Context, id uint) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, offset, limit int) ([]model.Post, int64, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Post), args.Get(1).(int64), args.Error(2)
}

func TestPostService_Create(t *testing.T) {
	t.Run("creates against an existing product", func(t *testing.T) {
		mockPosts := new(MockPostRepository)
		mockProducts := new(MockProductRepository)
		mockStore := new(MockStore)
		mockProducts.On("FindByID", mock.Anything, uint(5)).Return(&model.Product{ID: 5, UserID: 42}, nil)
		mockPosts.On("Create", mock.Anything, mock.AnythingOfType("*model.Post")).Return(nil)

		svc := NewPostService(mockPosts, mockProducts, mockStore)
		post, err := svc.Create(context.Background(), CreatePostInput{ProductID: 5, Content: "Check out this way to make your coffee"})

		assert.NoError(t, err)
		assert.Equal(t, uint(5), post.ProductID)
		mockPosts.AssertExpectations(t)
	})

	t.Run("dangling product_id is a field error", func(t *testing.T) {
		mockPosts := new(MockPostRepository)
		mockProducts := new(MockProductRepository)
		mockStore := new(MockStore)
		mockProducts.On("FindByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewPostService(mockPosts, mockProducts, mockStore)
		_, err := svc.Create(context.Background(), CreatePostInput{ProductID: 404, Content: "hello"})

		var ve *apperrors.ValidationError
		assert.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Errors, "product_id")
		mockPosts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("removes stored image when the insert fails", func(t *testing.T) {
		mockPosts := new(MockPostRepository)
		mockProducts := new(MockProductRepository)
		mockStore := new(MockStore)
		up := &storage.Upload{Data: []byte{0xff, 0xd8}, Ext: ".jpg"}
		mockProducts.On("FindByID", mock.Anything, uint(5)).Return(&model.Product{ID: 5, UserID: 42}, nil)
		mockStore.On("Save", "posts", up).Return("posts/abc.jpg", nil)
		mockPosts.On("Create", mock.Anything, mock.AnythingOfType("*model.Post")).
			Return(errors.New("insert failed"))
		mockStore.On("Remove", "posts/abc.jpg").Return(nil)

		svc := NewPostService(mockPosts, mockProducts, mockStore)
		_, err := svc.Create(context.Background(), CreatePostInput{ProductID: 5, Content: "hello", Image: up})

		assert.Error(t, err)
		mockStore.AssertExpectations(t)
	})
}

func TestPostService_Update_OwnershipThroughProduct(t *testing.T) {
	post := func() *model.Post {
		return &model.Post{
			ID:        3,
			ProductID: 5,
			Content:   "original",
			Product:   model.Product{ID: 5, UserID: 42},
		}
	}

	t.Run("product owner updates", func(t *testing.T) {
		mockPosts := new(MockPostRepository)
		mockProducts := new(MockProductRepository)
		mockStore := new(MockStore)
		mockPosts.On("FindByID", mock.Anything, uint(3)).Return(post(), nil)
		mockPosts.On("Update", mock.Anything, mock.AnythingOfType("*model.Post")).Return(nil)

		content := "edited"
		svc := NewPostService(mockPosts, mockProducts, mockStore)
		updated, err := svc.Update(context.Background(), 42, 3, UpdatePostInput{Content: &content})

		assert.NoError(t, err)
		assert.Equal(t, "edited", updated.Content)
		mockPosts.AssertExpectations(t)
	})

	t.Run("other users are forbidden", func(t *testing.T) {
		mockPosts := new(MockPostRepository)
		mockProducts := new(MockProductRepository)
		mockStore := new(MockStore)
		mockPosts.On("FindByID", mock.Anything, uint(3)).Return(post(), nil)

		content := "edited"
		svc := NewPostService(mockPosts, mockProducts, mockStore)
		_, err := svc.Update(context.Background(), 99, 3, UpdatePostInput{Content: &content})

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		mockPosts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("missing post is not found", func(t *testing.T) {
		mockPosts := new(MockPostRepository)
		mockProducts := new(MockProductRepository)
		mockStore := new(MockStore)
		mockPosts.On("FindByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewPostService(mockPosts, mockProducts, mockStore)
		_, err := svc.Update(context.Background(), 42, 404, UpdatePostInput{})

		assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
	})
}

func TestPostService_Delete_OwnershipThroughProduct(t *testing.T) {
	post := &model.Post{
		ID:        3,
		ProductID: 5,
		Product:   model.Product{ID: 5, UserID: 42},
	}

	t.Run("product owner deletes", func(t *testing.T) {
		mockPosts := new(MockPostRepository)
		mockProducts := new(MockProductRepository)
		mockStore := new(MockStore)
		mockPosts.On("FindByID", mock.Anything, uint(3)).Return(post, nil)
		mockPosts.On("Delete", mock.Anything, post).Return(nil)

		svc := NewPostService(mockPosts, mockProducts, mockStore)
		assert.NoError(t, svc.Delete(context.Background(), 42, 3))
		mockPosts.AssertExpectations(t)
	})

	t.Run("other users are forbidden", func(t *testing.T) {
		mockPosts := new(MockPostRepository)
		mockProducts := new(MockProductRepository)
		mockStore := new(MockStore)
		mockPosts.On("FindByID", mock.Anything, uint(3)).Return(post, nil)

		svc := NewPostService(mockPosts, mockProducts, mockStore)
		assert.ErrorIs(t, svc.Delete(context.Background(), 99, 3), apperrors.ErrForbidden)
	})
}
