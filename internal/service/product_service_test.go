package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "shopapi/internal/errors"
	"shopapi/internal/model"
	"shopapi/internal/storage"
)

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, offset, limit int) ([]model.Product, int64, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Product), args.Get(1).(int64), args.Error(2)
}

// MockStore is a mock implementation of storage.Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Save(dir string, up *storage.Upload) (string, error) {
	args := m.Called(dir, up)
	return args.String(0), args.Error(1)
}

func (m *MockStore) Remove(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

func TestProductService_Create_SetsOwner(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockStore := new(MockStore)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Product")).Return(nil)

	svc := NewProductService(mockRepo, mockStore)
	product, err := svc.Create(context.Background(), 42, CreateProductInput{
		Name:  "Organic Coffee Beans",
		Price: decimal.NewFromFloat(19.99),
	})

	assert.NoError(t, err)
	assert.Equal(t, uint(42), product.UserID)
	assert.Nil(t, product.ImagePath)
	mockRepo.AssertExpectations(t)
}

func TestProductService_Create_StoresImage(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockStore := new(MockStore)
	up := &storage.Upload{Data: []byte{0xff, 0xd8}, Ext: ".jpg"}
	mockStore.On("Save", "products", up).Return("products/abc.jpg", nil)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Product")).Return(nil)

	svc := NewProductService(mockRepo, mockStore)
	product, err := svc.Create(context.Background(), 42, CreateProductInput{
		Name:  "Organic Coffee Beans",
		Price: decimal.NewFromFloat(19.99),
		Image: up,
	})

	assert.NoError(t, err)
	if assert.NotNil(t, product.ImagePath) {
		assert.Equal(t, "products/abc.jpg", *product.ImagePath)
	}
	mockStore.AssertExpectations(t)
}

func TestProductService_Create_RemovesImageOnInsertFailure(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockStore := new(MockStore)
	up := &storage.Upload{Data: []byte{0xff, 0xd8}, Ext: ".jpg"}
	mockStore.On("Save", "products", up).Return("products/abc.jpg", nil)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Product")).
		Return(errors.New("insert failed"))
	mockStore.On("Remove", "products/abc.jpg").Return(nil)

	svc := NewProductService(mockRepo, mockStore)
	_, err := svc.Create(context.Background(), 42, CreateProductInput{
		Name:  "Organic Coffee Beans",
		Price: decimal.NewFromFloat(19.99),
		Image: up,
	})

	assert.Error(t, err)
	// The stored file must not outlive the failed row.
	mockStore.AssertExpectations(t)
}

func TestProductService_Update_RemovesImageOnUpdateFailure(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockStore := new(MockStore)
	up := &storage.Upload{Data: []byte{0xff, 0xd8}, Ext: ".jpg"}
	mockRepo.On("FindByID", mock.Anything, uint(5)).
		Return(&model.Product{ID: 5, UserID: 42}, nil)
	mockStore.On("Save", "products", up).Return("products/new.jpg", nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Product")).
		Return(errors.New("update failed"))
	mockStore.On("Remove", "products/new.jpg").Return(nil)

	svc := NewProductService(mockRepo, mockStore)
	_, err := svc.Update(context.Background(), 42, 5, UpdateProductInput{Image: up})

	assert.Error(t, err)
	mockStore.AssertExpectations(t)
}

func TestProductService_List_Pagination(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockStore := new(MockStore)
	mockRepo.On("List", mock.Anything, PageSize, PageSize).
		Return([]model.Product{{ID: 16}}, int64(16), nil)

	svc := NewProductService(mockRepo, mockStore)
	products, total, err := svc.List(context.Background(), 2)

	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, int64(16), total)
	mockRepo.AssertExpectations(t)
}

func TestProductService_Update(t *testing.T) {
	owned := func() *model.Product {
		desc := "old description"
		return &model.Product{
			ID:          5,
			UserID:      42,
			Name:        "Organic Coffee Beans",
			Description: &desc,
			Price:       decimal.NewFromFloat(19.99),
		}
	}

	t.Run("owner applies partial update", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockStore := new(MockStore)
		mockRepo.On("FindByID", mock.Anything, uint(5)).Return(owned(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Product")).Return(nil)

		newPrice := decimal.NewFromFloat(21.50)
		svc := NewProductService(mockRepo, mockStore)
		product, err := svc.Update(context.Background(), 42, 5, UpdateProductInput{Price: &newPrice})

		assert.NoError(t, err)
		assert.True(t, product.Price.Equal(newPrice))
		// Fields not supplied stay untouched.
		assert.Equal(t, "Organic Coffee Beans", product.Name)
		assert.Equal(t, "old description", *product.Description)
		mockRepo.AssertExpectations(t)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockStore := new(MockStore)
		mockRepo.On("FindByID", mock.Anything, uint(5)).Return(owned(), nil)

		name := "Premium Coffee Beans"
		svc := NewProductService(mockRepo, mockStore)
		_, err := svc.Update(context.Background(), 99, 5, UpdateProductInput{Name: &name})

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("missing product is not found, not forbidden", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockStore := new(MockStore)
		mockRepo.On("FindByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewProductService(mockRepo, mockStore)
		_, err := svc.Update(context.Background(), 99, 404, UpdateProductInput{})

		assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
	})
}

func TestProductService_Delete(t *testing.T) {
	t.Run("owner deletes", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockStore := new(MockStore)
		product := &model.Product{ID: 5, UserID: 42}
		mockRepo.On("FindByID", mock.Anything, uint(5)).Return(product, nil)
		mockRepo.On("Delete", mock.Anything, product).Return(nil)

		svc := NewProductService(mockRepo, mockStore)
		assert.NoError(t, svc.Delete(context.Background(), 42, 5))
		mockRepo.AssertExpectations(t)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockStore := new(MockStore)
		mockRepo.On("FindByID", mock.Anything, uint(5)).Return(&model.Product{ID: 5, UserID: 42}, nil)

		svc := NewProductService(mockRepo, mockStore)
		assert.ErrorIs(t, svc.Delete(context.Background(), 99, 5), apperrors.ErrForbidden)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("missing product is not found", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockStore := new(MockStore)
		mockRepo.On("FindByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewProductService(mockRepo, mockStore)
		assert.ErrorIs(t, svc.Delete(context.Background(), 42, 404), apperrors.ErrProductNotFound)
	})
}
