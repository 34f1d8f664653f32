package repositories

import (
	"errors"

	"gudang/internal/models"
)

// ErrNotFound is returned when an operation targets an id that does not
// exist. Callers match it with errors.Is.
var ErrNotFound = errors.New("record not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
