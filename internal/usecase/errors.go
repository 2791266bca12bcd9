package usecase

import "errors"

// Workflow errors surfaced to the client. Each maps to a distinct failure
// step; anything unclassified is reported as an internal error by the
// handler layer.
var (
	ErrInvalidRequest     = errors.New("error occurred while checking information")
	ErrAlreadyExists      = errors.New("this account already exists")
	ErrUserNotFound       = errors.New("this user does not exist")
	ErrInvalidImage       = errors.New("error occurred while decoding the image")
	ErrAnalysisFailed     = errors.New("error occurred during facial scan")
	ErrLowConfidence      = errors.New("the confidence rate is less than 79")
	ErrStorageError       = errors.New("error occurred while saving info on s3")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
)
