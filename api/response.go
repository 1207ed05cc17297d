// Package api defines the response envelope shared by the public and admin
// JSON endpoints.
package api

// Response is the envelope wrapped around every JSON response body.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SuccessResponse wraps data in a successful envelope.
func SuccessResponse(data any) Response {
	return Response{Success: true, Data: data}
}

// ErrorResponse wraps an error message in a failed envelope.
func ErrorResponse(msg string) Response {
	return Response{Success: false, Error: msg}
}
