package common

// ErrorResponse is the uniform error envelope. ExpectedKind is only set
// for punch sequence violations so devices can self-correct.
type ErrorResponse struct {
	Message      string `json:"message"`
	ExpectedKind string `json:"expectedKind,omitempty"`
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		Message: message,
	}
}

func NewSequenceErrorResponse(message, expectedKind string) *ErrorResponse {
	return &ErrorResponse{
		Message:      message,
		ExpectedKind: expectedKind,
	}
}
