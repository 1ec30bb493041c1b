package errcodes

// ErrorCode is a stable, machine-readable identifier carried by domain errors.
type ErrorCode string

const (
	InternalServerError ErrorCode = "InternalServerError"
	ValidationError     ErrorCode = "ValidationError"

	// Downloading.
	InvalidURL             ErrorCode = "InvalidURL"
	DownloadTimeout        ErrorCode = "DownloadTimeout"
	Redirected             ErrorCode = "Redirected"
	ClientCreationFailed   ErrorCode = "ClientCreationFailed"
	SourceExtractionFailed ErrorCode = "SourceExtractionFailed"
	DownloadFailed         ErrorCode = "DownloadFailed"

	// Extraction.
	PageNotSupported ErrorCode = "PageNotSupported"
	InvalidSelector  ErrorCode = "InvalidSelector"
	PriceNotFound    ErrorCode = "PriceNotFound"
	UnparsablePrice  ErrorCode = "UnparsablePrice"
)

// IsTransient reports whether a download failure with this code is worth
// retrying. Redirects and configuration mismatches are permanent.
func IsTransient(code ErrorCode) bool {
	switch code {
	case DownloadTimeout, ClientCreationFailed, SourceExtractionFailed, DownloadFailed:
		return true
	default:
		return false
	}
}
