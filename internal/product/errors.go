package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrDraftNotFound   = errors.New("product draft not found or expired")
	ErrNotAtReview     = errors.New("the product can only be saved from the review step")
	ErrUnknownTagKind  = errors.New("tag kind must be size or color")
	ErrVariantNotFound = errors.New("variant not found")
)
