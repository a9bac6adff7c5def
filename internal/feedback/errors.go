package feedback

import "errors"

var (
	ErrEmptyText             = errors.New("please provide some text to analyze")
	ErrMissingAssignmentType = errors.New("please select an assignment type")
	ErrInvalidAssignmentType = errors.New("assignment type is invalid")
	ErrInvalidFormLevel      = errors.New("form level must be between 1 and 6")
	ErrNotFound              = errors.New("not found")
)

const (
	ErrorCodeValidation = "validation_error"
	ErrorCodeNotFound   = "not_found"
	ErrorCodeInternal   = "internal_error"
)
