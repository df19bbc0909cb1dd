package dto

// Error codes carried on the error envelope.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeInvalidCriteria  = "INVALID_CRITERIA"
	CodeValidationError  = "VALIDATION_ERROR"
	CodeInvalidJSON      = "INVALID_JSON"
	CodeInvalidParameter = "INVALID_PARAMETER"
	CodeInternalError    = "INTERNAL_ERROR"
)

// Error is the JSON error envelope. Timestamp is a UTC offset instant at
// second precision.
type Error struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Timestamp string         `json:"timestamp"`
	Details   map[string]any `json:"details,omitempty"`
}
