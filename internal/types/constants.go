package types

const ContextUserKey = "user"

const ContextRequestIDKey = "request_id"

// Default allowed origins for development
var DefaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

// Stable error codes returned in the "code" field of error bodies.
const (
	CodeValidation  = "validation_error"
	CodeAuth        = "auth_error"
	CodeNotFound    = "not_found"
	CodeConflict    = "conflict"
	CodeRateLimited = "rate_limited"
	CodeStorage     = "storage_error"
)
