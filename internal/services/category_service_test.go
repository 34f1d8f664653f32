package services_test

import (
	"errors"
	"fmt"
	"testing"

	"gudang/internal/models"
	"gudang/internal/repositories"
	"gudang/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCategoryRepository is a mock implementation of repositories.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) GetAll() ([]models.Category, error) {
	args := m.Called()
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByID(id string) (*models.Category, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(category *models.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Update(category *models.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestCategoryService_CRUD(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	service := services.NewCategoryService(mockRepo)

	categories := []models.Category{{ID: "1", Name: "Tools"}, {ID: "2", Name: "Garden"}}
	mockRepo.On("GetAll").Return(categories, nil).Once()

	all, err := service.GetAllCategories()
	assert.NoError(t, err)
	assert.Equal(t, categories, all)

	newCategory := &models.Category{Name: "Hardware"}
	mockRepo.On("Create", newCategory).Return(nil).Once()
	assert.NoError(t, service.CreateCategory(newCategory))

	updated := &models.Category{ID: "1", Name: "Power Tools"}
	mockRepo.On("Update", updated).Return(nil).Once()
	assert.NoError(t, service.UpdateCategory(updated))

	mockRepo.On("Delete", "2").Return(nil).Once()
	assert.NoError(t, service.DeleteCategory("2"))

	mockRepo.AssertExpectations(t)
}

func TestCategoryService_NotFoundPassesThrough(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	service := services.NewCategoryService(mockRepo)

	mockRepo.On("GetByID", "99").Return(nil, fmt.Errorf("category with ID 99: %w", repositories.ErrNotFound)).Once()

	category, err := service.GetCategoryByID("99")
	assert.Error(t, err)
	assert.Nil(t, category)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
	mockRepo.AssertExpectations(t)
}
