package dto

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
	Code      string `json:"code,omitempty"`
	LineIndex *int   `json:"lineIndex,omitempty"`
	Amount    string `json:"amount,omitempty"`
}
