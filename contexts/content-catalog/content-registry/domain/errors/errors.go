package errors

import "errors"

var (
	ErrContentNotFound = errors.New("content not found")
	ErrInvalidContent  = errors.New("invalid content registration")
	ErrInvalidMetadata = errors.New("invalid content metadata")
	ErrInvalidOwner    = errors.New("invalid new owner")
)
