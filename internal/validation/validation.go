package validation

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
)

// MaxImageBytes is the upload ceiling for product images (2048 KB).
const MaxImageBytes = 2048 * 1024

var validate = validator.New()

// ImageFile is an uploaded image prior to being written to the asset store.
type ImageFile struct {
	Filename string
	Data     []byte
}

// RawProductInput carries the untyped form values of a create or update
// request. Numeric and date fields arrive as strings; Image is nil when no
// file was uploaded.
type RawProductInput struct {
	Name        string
	Price       string
	Category    string
	Stock       string
	Sold        string
	Status      string
	ExpDate     string
	Description string
	Image       *ImageFile
}

// ProductPayload is a fully validated product input, ready for the service
// layer.
type ProductPayload struct {
	Name        string  `validate:"required,max=255"`
	Price       float64 `validate:"gte=0"`
	Category    string  `validate:"required,max=255"`
	Stock       int     `validate:"gte=0"`
	Sold        int     `validate:"gte=0"`
	Status      string  `validate:"required,max=255"`
	ExpiryDate  time.Time
	Description string
	Image       *ImageFile
}

// Error aggregates every failing field of one request.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "validation failed on: " + strings.Join(names, ", ")
}

// formField maps payload struct fields to the form field names reported back
// to the caller.
var formField = map[string]string{
	"Name":       "name",
	"Price":      "price",
	"Category":   "category",
	"Stock":      "stock",
	"Sold":       "sold",
	"Status":     "status",
	"ExpiryDate": "expDate",
}

// ValidateProduct checks every field of the raw input independently and
// returns either a typed payload or an Error listing all failures at once.
// The image is optional; when present it must be an image format no larger
// than MaxImageBytes.
func ValidateProduct(in RawProductInput) (*ProductPayload, *Error) {
	fields := make(map[string]string)
	payload := &ProductPayload{
		Name:        in.Name,
		Category:    in.Category,
		Status:      in.Status,
		Description: in.Description,
		Image:       in.Image,
	}

	// Numeric and date fields are parsed first so that requiredness and
	// format failures are reported alongside rule failures on other fields.
	payload.Price = parseFloatField(in.Price, "price", fields)
	payload.Stock = parseIntField(in.Stock, "stock", fields)
	payload.Sold = parseIntField(in.Sold, "sold", fields)
	payload.ExpiryDate = parseDateField(in.ExpDate, "expDate", fields)

	if err := validate.Struct(payload); err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			name := formField[fe.StructField()]
			if _, taken := fields[name]; taken {
				continue
			}
			fields[name] = fmt.Sprintf("Field '%s' failed on the '%s' tag", name, fe.Tag())
		}
	}

	if in.Image != nil {
		if msg, ok := checkImage(in.Image); !ok {
			fields["image"] = msg
		}
	}

	if len(fields) > 0 {
		return nil, &Error{Fields: fields}
	}
	return payload, nil
}

func parseFloatField(raw, name string, fields map[string]string) float64 {
	if raw == "" {
		fields[name] = fmt.Sprintf("Field '%s' failed on the 'required' tag", name)
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		fields[name] = fmt.Sprintf("Field '%s' failed on the 'numeric' tag", name)
		return 0
	}
	return v
}

func parseIntField(raw, name string, fields map[string]string) int {
	if raw == "" {
		fields[name] = fmt.Sprintf("Field '%s' failed on the 'required' tag", name)
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		fields[name] = fmt.Sprintf("Field '%s' failed on the 'integer' tag", name)
		return 0
	}
	return v
}

func parseDateField(raw, name string, fields map[string]string) time.Time {
	if raw == "" {
		fields[name] = fmt.Sprintf("Field '%s' failed on the 'required' tag", name)
		return time.Time{}
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	fields[name] = fmt.Sprintf("Field '%s' failed on the 'date' tag", name)
	return time.Time{}
}

func checkImage(img *ImageFile) (string, bool) {
	if len(img.Data) > MaxImageBytes {
		return fmt.Sprintf("Field 'image' failed on the 'max' tag (limit %d KB)", MaxImageBytes/1024), false
	}
	mtype := mimetype.Detect(img.Data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "Field 'image' failed on the 'image' tag", false
	}
	return "", true
}
