package handlers

import (
	"errors"
	"io"
	"log"

	"gudang/internal/repositories"
	"gudang/internal/services"
	"gudang/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
		})
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.service.GetProductByID(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		log.Printf("Error getting product by ID %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
		})
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product from a multipart form, with an
// optional image file.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	input, err := parseProductForm(c)
	if err != nil {
		log.Printf("Error reading product form: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	product, err := h.service.CreateProduct(input)
	if err != nil {
		return h.respondError(c, err, "Could not create product")
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct updates an existing product. All required fields must
// be submitted again; the image is only replaced when a new file is uploaded.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	productID := c.Params("id")

	input, err := parseProductForm(c)
	if err != nil {
		log.Printf("Error reading product form: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	product, err := h.service.UpdateProduct(productID, input)
	if err != nil {
		return h.respondError(c, err, "Could not update product")
	}

	return c.JSON(product)
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("id")

	if err := h.service.DeleteProduct(productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to delete product",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
	})
}

// respondError maps service errors to HTTP responses: validation failures
// report every failing field, missing records map to 404, and anything else
// is surfaced opaquely.
func (h *ProductHandler) respondError(c *fiber.Ctx, err error, fallback string) error {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  verr.Fields,
		})
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product not found",
		})
	}
	log.Printf("Product handler error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": fallback,
	})
}

// parseProductForm pulls the raw field values and the optional image file out
// of the request. A missing image is not an error; the validation layer
// treats it as absent.
func parseProductForm(c *fiber.Ctx) (validation.RawProductInput, error) {
	input := validation.RawProductInput{
		Name:        c.FormValue("name"),
		Price:       c.FormValue("price"),
		Category:    c.FormValue("category"),
		Stock:       c.FormValue("stock"),
		Sold:        c.FormValue("sold"),
		Status:      c.FormValue("status"),
		ExpDate:     c.FormValue("expDate"),
		Description: c.FormValue("description"),
	}

	fileHeader, err := c.FormFile("image")
	if err != nil || fileHeader == nil {
		return input, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return input, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return input, err
	}

	input.Image = &validation.ImageFile{
		Filename: fileHeader.Filename,
		Data:     data,
	}
	return input, nil
}
