package apperr

import "github.com/tuanvumaihuynh/price-tracker/pkg/zerror"

const (
	ValidationErrorCode   = "VALIDATION_FAILED"
	ProductNotFoundCode   = "PRODUCT_NOT_FOUND"
	ExtractionFailureCode = "EXTRACTION_FAILED"
	StoreUnavailableCode  = "STORE_UNAVAILABLE"
)

var (
	ValidationErr = zerror.NewValidationFailed(ValidationErrorCode, "validation error")

	// ProductNotFoundErr is returned when a referenced product id does not exist.
	ProductNotFoundErr = zerror.NewNotFound(ProductNotFoundCode, "product not found")

	// ExtractionFailureErr is returned when ingestion could not resolve the title or price of a link,
	// whether the agent call failed (agent.ErrAgent) or its answer lacked a field.
	ExtractionFailureErr = zerror.NewBadGateway(ExtractionFailureCode, "could not extract product details from link")

	// StoreUnavailableErr is returned when the product store cannot be reached.
	StoreUnavailableErr = zerror.NewServiceUnavailable(StoreUnavailableCode, "product store unavailable")
)
