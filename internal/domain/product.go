package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Client-facing messages for product validation failures.
const (
	MsgProductFieldsRequired = "Name, price, and description are required"
	MsgPriceNotNumber        = "Price must be a number"
)

// Product is a single product record.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// Price is a client-supplied price. Clients may send a JSON number or a
// numeric string; both are coerced to float64.
type Price struct {
	Value float64
	// Set reports whether the request carried a non-null, non-empty price.
	Set bool
	// Malformed reports a string price that does not parse as a number.
	Malformed bool
}

// NewPrice returns a present, well-formed price.
func NewPrice(v float64) Price {
	return Price{Value: v, Set: true}
}

// Truthy reports whether the price is present, numeric and non-zero.
func (p Price) Truthy() bool {
	return p.Set && !p.Malformed && p.Value != 0
}

// UnmarshalJSON accepts numbers, numeric strings and null.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = Price{}
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*p = NewPrice(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: price must be a number or a string", ErrInvalidFormat)
	}

	s = strings.TrimSpace(s)
	if s == "" {
		*p = Price{}
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*p = Price{Set: true, Malformed: true}
		return nil
	}
	*p = NewPrice(v)
	return nil
}

// MarshalJSON writes the price as a number, or null when unset.
func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Set || p.Malformed {
		return []byte("null"), nil
	}
	return json.Marshal(p.Value)
}

// ProductInput carries the client-supplied fields of a product.
type ProductInput struct {
	Name        string `json:"name"        validate:"required"`
	Price       Price  `json:"price"       validate:"required"`
	Description string `json:"description" validate:"required"`
}

// checkPriceFormat rejects prices sent as non-numeric strings.
func (in ProductInput) checkPriceFormat() error {
	if in.Price.Malformed {
		return NewValidationError("price", MsgPriceNotNumber, ErrInvalidFormat)
	}
	return nil
}

// Validate checks that every mandatory field is present and truthy.
// It is used for create and full replace.
func (in ProductInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		if in.Price.Malformed && in.Name != "" && in.Description != "" {
			return in.checkPriceFormat()
		}
		return NewValidationError("", MsgProductFieldsRequired, ErrValidation)
	}
	return nil
}

// ValidatePatch checks the fields a partial update may carry.
func (in ProductInput) ValidatePatch() error {
	return in.checkPriceFormat()
}

// NewProduct builds a product with the given id from validated input.
func NewProduct(id int, in ProductInput) Product {
	return Product{
		ID:          id,
		Name:        in.Name,
		Price:       in.Price.Value,
		Description: in.Description,
	}
}

// Patch returns a copy of p with every truthy input field applied.
func (p Product) Patch(in ProductInput) Product {
	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Price.Truthy() {
		p.Price = in.Price.Value
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	return p
}

// Replace returns a copy of p with all mandatory fields overwritten.
// The input must have passed Validate.
func (p Product) Replace(in ProductInput) Product {
	p.Name = in.Name
	p.Price = in.Price.Value
	p.Description = in.Description
	return p
}
