package appErrors

// Kind groups error codes into the categories callers branch on.
type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindConflict         Kind = "conflict"
	KindForbidden        Kind = "forbidden"
	KindCapacityExceeded Kind = "capacity_exceeded"
	KindUnauthenticated  Kind = "unauthenticated"
	KindValidation       Kind = "validation"
	KindInternal         Kind = "internal"
)

const (
	// Authentication and authorization
	CodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	CodeInvalidToken     ErrorCode = "INVALID_TOKEN"
	CodeForbidden        ErrorCode = "FORBIDDEN"
	CodeIdentityMismatch ErrorCode = "IDENTITY_MISMATCH"

	// Validation
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Resources
	CodeUserNotFound        ErrorCode = "USER_NOT_FOUND"
	CodeTrainerNotFound     ErrorCode = "TRAINER_NOT_FOUND"
	CodeApplicationNotFound ErrorCode = "APPLICATION_NOT_FOUND"
	CodeSlotNotFound        ErrorCode = "SLOT_NOT_FOUND"
	CodeClassNotFound       ErrorCode = "CLASS_NOT_FOUND"

	// Business rules
	CodeEmailAlreadyExists         ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeSubscriberAlreadyExists    ErrorCode = "SUBSCRIBER_ALREADY_EXISTS"
	CodeClassAlreadyExists         ErrorCode = "CLASS_ALREADY_EXISTS"
	CodeApplicationInProgress      ErrorCode = "APPLICATION_IN_PROGRESS"
	CodeAlreadyTrainer             ErrorCode = "ALREADY_TRAINER"
	CodeApplicationAlreadyResolved ErrorCode = "APPLICATION_ALREADY_RESOLVED"
	CodeAlreadyBooked              ErrorCode = "ALREADY_BOOKED"
	CodeBudgetExceeded             ErrorCode = "BUDGET_EXCEEDED"
	CodeClassFull                  ErrorCode = "CLASS_FULL"

	// System
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
)
