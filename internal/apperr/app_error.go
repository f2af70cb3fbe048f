package apperr

import "github.com/openbarpro/openbar/pkg/zerror"

const (
	ValidationErrorCode = "VALIDATION_FAILED"
	ProductNotFoundCode = "PRODUCT_NOT_FOUND"
	PackageNotFoundCode = "PACKAGE_NOT_FOUND"
	ImportFailedCode    = "IMPORT_FAILED"
)

var (
	ValidationErr      = zerror.NewValidationFailed(ValidationErrorCode, "validation error")
	ProductNotFoundErr = zerror.NewNotFound(ProductNotFoundCode, "product not found")
	PackageNotFoundErr = zerror.NewNotFound(PackageNotFoundCode, "package not found")
	ImportFailedErr    = zerror.NewBadRequest(ImportFailedCode, "csv import failed")
)
