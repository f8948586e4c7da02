package models

// SubmissionResponse is returned with 201 when a row was appended
type SubmissionResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    map[string]string `json:"data,omitempty"`
}

// ErrorResponse is returned for every failed submission. Detail carries the
// underlying error text for server-side failures only. Settings reports which
// store settings are present, never their values.
type ErrorResponse struct {
	Error    string          `json:"error"`
	Detail   string          `json:"detail,omitempty"`
	Missing  []string        `json:"missing,omitempty"`
	Settings map[string]bool `json:"settings,omitempty"`
}

// FormStatus is returned by the per-form GET health endpoints
type FormStatus struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	Configured bool   `json:"configured"`
}
