package constants

// Fare provider error codes

// Credential-related errors
const (
	ErrCodeInvalidAPIKey         = "INVALID_API_KEY"
	ErrCodeRateLimited           = "RATE_LIMITED"
	ErrCodeNetworkError          = "NETWORK_ERROR"
	ErrCodeAuthenticationFailed  = "AUTHENTICATION_FAILED"
	ErrCodeProviderNotConfigured = "PROVIDER_NOT_CONFIGURED"
)

// Data errors
const (
	ErrCodeInvalidDataFormat = "INVALID_DATA_FORMAT"
	ErrCodeResourceNotFound  = "RESOURCE_NOT_FOUND"
	ErrCodeStorageError      = "STORAGE_ERROR"
)

var DataProviderErrorMessages = map[string]string{
	ErrCodeInvalidAPIKey:         "The fare provider rejected the API credentials",
	ErrCodeRateLimited:           "Rate limit exceeded. Please try again later",
	ErrCodeNetworkError:          "Unable to reach the fare provider",
	ErrCodeAuthenticationFailed:  "Authentication with the fare provider failed",
	ErrCodeProviderNotConfigured: "The fare provider is not configured",

	ErrCodeInvalidDataFormat: "The data format is invalid",
	ErrCodeResourceNotFound:  "The requested resource was not found",
	ErrCodeStorageError:      "The fare history store is unavailable",
}

// GetErrorMessage returns the human-readable message for an error code
func GetErrorMessage(code string) string {
	if msg, exists := DataProviderErrorMessages[code]; exists {
		return msg
	}
	return "An unknown error occurred"
}
