package formrules

import (
	"encoding/json"
	"net/http"
)

// DefaultErrorMessage is the summary of ErrorResponse when no translation exists.
const DefaultErrorMessage = "Errores de validación encontrados"

// ErrorResponse is the JSON body returned for a form that failed validation.
type ErrorResponse struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Errors     map[string]string `json:"errors"`
	StatusCode int               `json:"status_code"`
}

// NewErrorResponse builds the response for errs. A zero status means 400.
func NewErrorResponse(errs map[string]string, message string, status int) ErrorResponse {
	if status == 0 {
		status = http.StatusBadRequest
	}
	if message == "" {
		message = DefaultErrorMessage
	}
	if errs == nil {
		errs = map[string]string{}
	}
	return ErrorResponse{
		Message:    message,
		Errors:     errs,
		StatusCode: status,
	}
}

// Render writes the response as JSON with its status code.
func (e ErrorResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.StatusCode)
	return json.NewEncoder(w).Encode(e)
}

// ErrorResponse builds the error response for res in lang.
func (v *Validator) ErrorResponse(res *Result, lang string) ErrorResponse {
	return NewErrorResponse(res.Errors, v.translate(lang, "validation.failed", DefaultErrorMessage), http.StatusBadRequest)
}
