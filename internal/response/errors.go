package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound      ErrCode = "NOT_FOUND"
	ErrEmailTaken    ErrCode = "EMAIL_TAKEN"
	ErrClassNotFound ErrCode = "CLASS_NOT_FOUND"

	// ─── Grading ───────────────────────────────────────────────────────
	ErrFileRequired        ErrCode = "FILE_REQUIRED"
	ErrUnsupportedFile     ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge        ErrCode = "FILE_TOO_LARGE"
	ErrEvaluationInFlight  ErrCode = "EVALUATION_IN_FLIGHT"
	ErrGradingUnreachable  ErrCode = "GRADING_SERVICE_UNREACHABLE"
	ErrGradingServerError  ErrCode = "GRADING_SERVICE_ERROR"
	ErrGradingBadResponse  ErrCode = "GRADING_BAD_RESPONSE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Invalid email or password."
	case ErrSessionInvalidated:
		return "Your session has ended. Please log in again."
	case ErrTokenRequired:
		return "Authentication token required."
	case ErrTokenInvalid:
		return "Invalid authentication token."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrEmailTaken:
		return "Email already in use."
	case ErrClassNotFound:
		return "Class or assignment not found."

	// ─── Grading ───────────────────────────────────────────────────────
	case ErrFileRequired:
		return "Please upload both student paper and answer key files."
	case ErrUnsupportedFile:
		return "Unsupported file type."
	case ErrFileTooLarge:
		return "File size exceeds the limit."
	case ErrEvaluationInFlight:
		return "An evaluation is already in progress. Please wait for it to finish."
	case ErrGradingUnreachable:
		return "No response from the grading service."
	case ErrGradingServerError:
		return "The grading service returned an error."
	case ErrGradingBadResponse:
		return "The grading service returned an unexpected response."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
