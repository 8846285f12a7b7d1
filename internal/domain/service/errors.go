package service

import (
	"errors"
	"fmt"
)

// ContractViolationError reports a ResourceFeatures record missing a
// required field. Scoring never substitutes defaults for identity
// fields: a silent default would corrupt both the probability and the
// explanation, so the violation is surfaced to the caller instead.
type ContractViolationError struct {
	Field string
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("resource features: required field %s is missing", e.Field)
}

// IsContractViolation reports whether err is a ContractViolationError.
func IsContractViolation(err error) bool {
	var cv *ContractViolationError
	return errors.As(err, &cv)
}
