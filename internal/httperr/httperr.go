package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Kind    Kind   `json:"kind,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// StatusFor maps an error kind to the HTTP status the API answers with.
func StatusFor(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindNoAvailableEmployee:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes any use-case error. Internal failures are reported with a
// generic code and the cause is attached to the gin context for logging.
func Respond(c *gin.Context, err error) {
	kind := KindOf(err)
	status := StatusFor(kind)

	if kind == KindInternal {
		_ = c.Error(err)
		c.JSON(status, HTTPError{
			Code:    "internal_error",
			Message: messageFor(kind, ""),
			Kind:    kind,
		})
		return
	}

	code := codeOf(err, kind)
	c.JSON(status, HTTPError{
		Code:    code,
		Message: messageFor(kind, code),
		Kind:    kind,
	})
}

func codeOf(err error, kind Kind) string {
	if be, ok := asBusiness(err); ok {
		return be.Code
	}
	switch kind {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "slot_taken"
	}
	return "internal_error"
}

var messages = map[string]string{
	"invalid_request":        "Invalid request data.",
	"invalid_date":           "Invalid date.",
	"invalid_date_or_time":   "Invalid date or time.",
	"missing_client_fields":  "Client name and a phone or e-mail are required.",
	"invalid_client_email":   "Client e-mail is not valid.",
	"too_soon":               "The requested time is too soon.",
	"invalid_state":          "The appointment cannot change to that state.",
	"invalid_duration":       "The service has no valid duration.",
	"service_not_found":      "Service not found.",
	"employee_not_found":     "Employee not found.",
	"provider_not_found":     "Business not found.",
	"appointment_not_found":  "Appointment not found.",
	"slot_taken":             "The requested time is no longer available.",
	"outside_schedule":       "The employee does not work at the requested time.",
	"no_available_employee":  "No employee is available at the requested time.",
	"round_robin_moved":      "Another booking was assigned at the same time. Please retry.",
	"employee_not_assigned":  "The employee does not perform this service.",
	"invalid_business_hours": "Business hours must be HH:MM ranges with the lunch break inside the day.",
}

func messageFor(kind Kind, code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	switch kind {
	case KindValidation:
		return "Invalid request."
	case KindNotFound:
		return "Resource not found."
	case KindConflict:
		return "Conflict with the current state."
	case KindNoAvailableEmployee:
		return messages["no_available_employee"]
	}
	return "Internal error."
}
