package app

import "errors"

type PlanErrorCode string

const (
	PlanErrNoCatalog        PlanErrorCode = "NO_CATALOG"
	PlanErrDataIntegrity    PlanErrorCode = "DATA_INTEGRITY"
	PlanErrInvalidOperation PlanErrorCode = "INVALID_OPERATION"
	PlanErrInvalidConfig    PlanErrorCode = "INVALID_CONFIG"
)

// PlanError is the error surface shared by planning use cases. Err keeps
// the underlying cause for errors.As.
type PlanError struct {
	Code    PlanErrorCode
	Message string
	Err     error
}

func (e *PlanError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *PlanError) Unwrap() error {
	return e.Err
}

// IsCode reports whether err is a PlanError with the given code.
func IsCode(err error, code PlanErrorCode) bool {
	var pe *PlanError
	return errors.As(err, &pe) && pe.Code == code
}
