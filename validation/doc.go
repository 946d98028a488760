// Package validation checks products, requests and configuration.
//
// Struct tags go through go-playground/validator, with field names taken
// from json or mapstructure tags and decimal.Decimal values compared as
// numbers:
//
//	type Product struct {
//	    ID    string          `json:"_id" validate:"required"`
//	    Price decimal.Decimal `json:"price" validate:"gte=0"`
//	}
//	err := validation.Validate(p)
//
// Programmatic checks collect field errors:
//
//	v := validation.New()
//	v.Required("itemId", id)
//	err := v.Validate()
package validation
