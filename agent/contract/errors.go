package contract

import "errors"

var (
	ErrModelInvoke     = errors.New("model invoke failed")
	ErrSchemaViolation = errors.New("model response violates schema")
	ErrToolRoundLimit  = errors.New("tool call round limit exceeded")
	ErrValidation      = errors.New("validation failed")
)
