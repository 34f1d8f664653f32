package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"gudang/internal/models"
	"gudang/internal/repositories"
	"gudang/internal/storage"
	"gudang/internal/validation"
	"gudang/pkg/rabbitmq"
)

// ErrInternal is returned for unexpected repository failures. The cause is
// logged; callers only see this opaque error.
var ErrInternal = errors.New("internal error")

// assetNamespace is where product images live inside the asset store.
const assetNamespace = "products"

// ProductService handles business logic related to products, including
// keeping the database record and its stored image consistent.
type ProductService struct {
	repo     repositories.ProductRepository
	assets   storage.Store
	mqClient *rabbitmq.Client
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, assets storage.Store, mqClient *rabbitmq.Client) *ProductService {
	return &ProductService{
		repo:     repo,
		assets:   assets,
		mqClient: mqClient,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct validates the raw input, stores the uploaded image (if any)
// and persists the new product. The image is written to the asset store
// before the record is created, so a storage failure aborts the whole
// operation and no record with a dangling image reference can appear.
func (s *ProductService) CreateProduct(input validation.RawProductInput) (*models.Product, error) {
	payload, verr := validation.ValidateProduct(input)
	if verr != nil {
		return nil, verr
	}

	product := productFromPayload(payload)

	if payload.Image != nil {
		path, err := s.assets.Save(payload.Image.Data, assetNamespace)
		if err != nil {
			return nil, fmt.Errorf("failed to store product image: %w", err)
		}
		product.Image = &path
	}

	if err := s.repo.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product in repository: %w", err)
	}

	s.publishProductEvent("product.created", product)
	return product, nil
}

// UpdateProduct re-validates the full payload and replaces the record. When
// a new image is uploaded, it is stored first; the previously referenced
// object is then deleted best-effort (a cleanup failure is logged and
// reported as an asset.orphaned event, never failing the update). When no
// image is uploaded, the existing reference is preserved untouched.
func (s *ProductService) UpdateProduct(id string, input validation.RawProductInput) (*models.Product, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	payload, verr := validation.ValidateProduct(input)
	if verr != nil {
		return nil, verr
	}

	updated := productFromPayload(payload)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.Image = existing.Image

	if payload.Image != nil {
		newPath, err := s.assets.Save(payload.Image.Data, assetNamespace)
		if err != nil {
			return nil, fmt.Errorf("failed to store product image: %w", err)
		}
		if existing.Image != nil {
			if delErr := s.assets.Delete(*existing.Image); delErr != nil {
				log.Printf("Warning: failed to delete replaced image %s of product %s: %v", *existing.Image, id, delErr)
				s.publishAssetOrphaned(*existing.Image, id, delErr)
			}
		}
		updated.Image = &newPath
	}

	if err := s.repo.Update(updated); err != nil {
		return nil, fmt.Errorf("failed to update product in repository: %w", err)
	}

	s.publishProductEvent("product.updated", updated)
	return updated, nil
}

// DeleteProduct removes the product row. The associated asset, if any, is
// intentionally left in the store. A repository failure after a successful
// lookup is logged with its cause and surfaced as ErrInternal.
func (s *ProductService) DeleteProduct(id string) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		log.Printf("Error deleting product %s: %v", id, err)
		return ErrInternal
	}

	s.publishProductEvent("product.deleted", product)
	return nil
}

func productFromPayload(p *validation.ProductPayload) *models.Product {
	return &models.Product{
		Name:        p.Name,
		Price:       p.Price,
		Category:    p.Category,
		Stock:       p.Stock,
		Sold:        p.Sold,
		Status:      p.Status,
		ExpiryDate:  p.ExpiryDate,
		Description: p.Description,
	}
}

func (s *ProductService) publishProductEvent(key string, product *models.Product) {
	if s.mqClient == nil {
		return
	}

	message := map[string]interface{}{
		"productID": product.ID,
		"name":      product.Name,
		"status":    product.Status,
		"stock":     product.Stock,
	}
	body, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", key, err)
		return
	}
	if err := s.mqClient.Publish(key, body); err != nil {
		log.Printf("Warning: Failed to publish %s event for product %s: %v", key, product.ID, err)
	}
}

// publishAssetOrphaned reports an object left behind by a failed cleanup so
// operators can detect storage drift.
func (s *ProductService) publishAssetOrphaned(path, productID string, cause error) {
	if s.mqClient == nil {
		return
	}

	message := map[string]interface{}{
		"path":      path,
		"productID": productID,
		"cause":     cause.Error(),
	}
	body, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal asset.orphaned event: %v", err)
		return
	}
	if err := s.mqClient.Publish("asset.orphaned", body); err != nil {
		log.Printf("Warning: Failed to publish asset.orphaned event for %s: %v", path, err)
	}
}
