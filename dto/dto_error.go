package dto

type ErrorResponse struct {
	Msg string `json:"msg" example:"Post not found"`
}

// FieldError describes one rejected field of a request body.
type FieldError struct {
	Msg   string `json:"msg"   example:"Text is required"`
	Param string `json:"param" example:"text"`
}

type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}
