package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is the canonical stored representation of a catalog item. ID and
// the timestamps are server-assigned; Name and Description are stored
// trimmed, Price rounded to 2 decimals.
type Product struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Price       float64            `json:"price" bson:"price"`
	Description string             `json:"description" bson:"description"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ProductInput is the wire shape accepted by create and update. Price stays
// raw so a JSON string such as "19.99" is accepted the same way a number is,
// and so an absent price can be told apart from an explicit 0.
type ProductInput struct {
	Name        string          `json:"name"`
	Price       json.RawMessage `json:"price,omitempty"`
	Description string          `json:"description"`
}

// candidate holds the normalized fields checked against the catalog bounds.
// Field order matters: validation errors are reported in declaration order.
type candidate struct {
	Name        string  `validate:"required,min=3,max=100"`
	Price       float64 `validate:"required,gt=0"`
	Description string  `validate:"required,min=10,max=500"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewProduct validates and normalizes a candidate product. On success the
// returned Product carries the trimmed name/description and the price rounded
// to 2 decimals; ID and timestamps are left for the caller to assign. On
// failure the error is a *ValidationError naming the offending field.
func NewProduct(in ProductInput) (*Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, &ValidationError{Field: "name", Message: "name is required"}
	}
	if priceMissing(in.Price) {
		return nil, &ValidationError{Field: "price", Message: "price is required"}
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, &ValidationError{Field: "description", Message: "description is required"}
	}

	price, ok := parsePrice(in.Price)
	if !ok {
		return nil, &ValidationError{Field: "price", Message: "price must be a valid number"}
	}
	if price <= 0 {
		return nil, &ValidationError{Field: "price", Message: "price must be positive"}
	}

	c := candidate{
		Name:        strings.TrimSpace(in.Name),
		Price:       RoundPrice(price),
		Description: strings.TrimSpace(in.Description),
	}
	if err := validate.Struct(c); err != nil {
		return nil, translateValidator(err)
	}

	return &Product{
		Name:        c.Name,
		Price:       c.Price,
		Description: c.Description,
	}, nil
}

// RoundPrice rounds to 2 decimal places, currency style.
func RoundPrice(p float64) float64 {
	return math.Round(p*100) / 100
}

func priceMissing(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}

// parsePrice accepts a JSON number or a JSON string holding a number. Any
// other shape, and non-finite values, are rejected.
func parsePrice(raw json.RawMessage) (float64, bool) {
	s := strings.TrimSpace(string(raw))
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return 0, false
		}
		s = strings.TrimSpace(str)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func translateValidator(err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return &ValidationError{Field: "input", Message: "invalid product data"}
	}

	// First error wins; candidate field order gives the reporting precedence.
	fe := errs[0]
	switch fe.StructField() {
	case "Name":
		switch fe.Tag() {
		case "min":
			return &ValidationError{Field: "name", Message: "name must be at least 3 characters"}
		case "max":
			return &ValidationError{Field: "name", Message: "name must not exceed 100 characters"}
		default:
			return &ValidationError{Field: "name", Message: "name is required"}
		}
	case "Price":
		return &ValidationError{Field: "price", Message: "price must be positive"}
	case "Description":
		switch fe.Tag() {
		case "min":
			return &ValidationError{Field: "description", Message: "description must be at least 10 characters"}
		case "max":
			return &ValidationError{Field: "description", Message: "description must not exceed 500 characters"}
		default:
			return &ValidationError{Field: "description", Message: "description is required"}
		}
	}
	return &ValidationError{Field: "input", Message: "invalid product data"}
}
