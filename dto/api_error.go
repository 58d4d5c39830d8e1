package dto

type APIErrorResponse struct {
	Message   string    `json:"message"`
	ErrorCode ErrorCode `json:"error_code,omitempty"`
	FieldKeys []string  `json:"field_keys,omitempty"`
}

type ErrorCode string

const (
	// mapping related
	InvalidMapping ErrorCode = "invalid_mapping"
)
