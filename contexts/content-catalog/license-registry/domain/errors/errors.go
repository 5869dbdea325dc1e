package errors

import "errors"

var (
	ErrLicenseNotFound     = errors.New("license not found")
	ErrContentNotFound     = errors.New("content not found")
	ErrInvalidLicenseTerms = errors.New("invalid license terms")
)
