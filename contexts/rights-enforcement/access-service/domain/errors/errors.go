package errors

import "errors"

var (
	ErrLicenseNotFound    = errors.New("license not found")
	ErrContentNotFound    = errors.New("content not found")
	ErrGrantNotFound      = errors.New("no license grant for this user and content")
	ErrAccessKeyNotFound  = errors.New("no access key generated for this content")
	ErrLicenseInactive    = errors.New("license is not active for purchase")
	ErrAccessDenied       = errors.New("no currently valid access grant")
	ErrInvalidPurchase    = errors.New("invalid purchase request")
	ErrInvalidRevocation  = errors.New("invalid revocation request")
	ErrInvalidKeyMaterial = errors.New("invalid access key material")
	ErrPaymentFailed      = errors.New("payment collection failed")
)
