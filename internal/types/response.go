package types

// Response is the JSON error envelope written by the HTTP layer.
type Response struct {
	Success   bool         `json:"success" example:"false"`
	Error     string       `json:"error" example:"validation failed"`
	Fields    []FieldError `json:"fields,omitempty"`
	RequestID string       `json:"request_id" example:"host/abc-000001"`
}
