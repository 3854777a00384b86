package types

// Envelope is the standard single-payload response body. The workflow
// endpoints also use it for soft outcomes (data may be null with an
// explanatory message).
type Envelope struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// PageEnvelope wraps paginated list responses.
type PageEnvelope struct {
	Data       any    `json:"data"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalItems int64  `json:"total_items"`
	TotalPages int    `json:"total_pages"`
	Message    string `json:"message"`
}

// KeyValue serializes a referenced entity as an id/display pair.
type KeyValue struct {
	Key   string  `json:"key"`
	Value *string `json:"value"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
