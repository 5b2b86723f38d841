package recommend

import (
	"net/http"

	"github.com/Abraxas-365/sift/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("RECOMMEND")

var (
	CodeUnknownRole         = ErrRegistry.Register("UNKNOWN_ROLE", errx.TypeNotFound, http.StatusNotFound, "Role not found in position table")
	CodeRequirementNotFound = ErrRegistry.Register("REQUIREMENT_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Requirement not found")
	CodeInvalidRequirement  = ErrRegistry.Register("INVALID_REQUIREMENT", errx.TypeValidation, http.StatusBadRequest, "Invalid requirement data")
)

func ErrUnknownRole() *errx.Error {
	return ErrRegistry.New(CodeUnknownRole)
}

func ErrRequirementNotFound() *errx.Error {
	return ErrRegistry.New(CodeRequirementNotFound)
}

func ErrInvalidRequirement() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequirement)
}
