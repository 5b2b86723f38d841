package profile

import (
	"net/http"

	"github.com/Abraxas-365/sift/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("PROFILE")

// Error codes - Profile operations
var (
	CodeProfileNotFound    = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Profile not found")
	CodeUnreadableDocument = ErrRegistry.Register("UNREADABLE_DOCUMENT", errx.TypeValidation, http.StatusUnprocessableEntity, "Document yielded no usable text")
	CodeInvalidFileFormat  = ErrRegistry.Register("INVALID_FILE_FORMAT", errx.TypeValidation, http.StatusBadRequest, "Unsupported document format")
	CodeFileReadFailed     = ErrRegistry.Register("FILE_READ_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to read file")
	CodeOwnerMismatch      = ErrRegistry.Register("OWNER_MISMATCH", errx.TypeAuthorization, http.StatusForbidden, "Profile does not belong to this user")
	CodeInvalidProfileData = ErrRegistry.Register("INVALID_DATA", errx.TypeValidation, http.StatusBadRequest, "Invalid profile data")
)

// Error codes - Screening/queue operations
var (
	CodeScreeningNotFound  = ErrRegistry.Register("SCREENING_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Screening not found")
	CodeScreeningFinished  = ErrRegistry.Register("SCREENING_FINISHED", errx.TypeBusiness, http.StatusUnprocessableEntity, "Screening has already finished")
	CodeQueueEnqueueFailed = ErrRegistry.Register("QUEUE_ENQUEUE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to enqueue screening task")
	CodeQueueDequeueFailed = ErrRegistry.Register("QUEUE_DEQUEUE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to dequeue screening task")
	CodeTaskUpdateFailed   = ErrRegistry.Register("TASK_UPDATE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to update task status")
)

func ErrProfileNotFound() *errx.Error {
	return ErrRegistry.New(CodeProfileNotFound)
}

func ErrUnreadableDocument() *errx.Error {
	return ErrRegistry.New(CodeUnreadableDocument)
}

func ErrInvalidFileFormat() *errx.Error {
	return ErrRegistry.New(CodeInvalidFileFormat)
}

func ErrFileReadFailed() *errx.Error {
	return ErrRegistry.New(CodeFileReadFailed)
}

func ErrOwnerMismatch() *errx.Error {
	return ErrRegistry.New(CodeOwnerMismatch)
}

func ErrInvalidProfileData() *errx.Error {
	return ErrRegistry.New(CodeInvalidProfileData)
}

func ErrScreeningNotFound() *errx.Error {
	return ErrRegistry.New(CodeScreeningNotFound)
}

func ErrScreeningFinished() *errx.Error {
	return ErrRegistry.New(CodeScreeningFinished)
}

func ErrQueueEnqueueFailed() *errx.Error {
	return ErrRegistry.New(CodeQueueEnqueueFailed)
}

func ErrQueueDequeueFailed() *errx.Error {
	return ErrRegistry.New(CodeQueueDequeueFailed)
}

func ErrTaskUpdateFailed() *errx.Error {
	return ErrRegistry.New(CodeTaskUpdateFailed)
}
