package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	quotedomain "github.com/jacobe603/quote-builder/internal/quote/domain"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if field, ok := validationField(err); ok {
		code := quotedomain.Code(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   field,
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case errors.Is(err, quotedomain.ErrConflict):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case quotedomain.IsNotFound(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: notFoundMessage(err),
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

// validationField names the request field an invalid-input error refers to.
// A move whose typed address points at nothing is bad input, not a missing
// resource.
func validationField(err error) (string, bool) {
	switch {
	case errors.Is(err, quotedomain.ErrInvalidAddress),
		errors.Is(err, quotedomain.ErrTargetNotFound),
		errors.Is(err, quotedomain.ErrNestingDepth):
		return "address", true
	case errors.Is(err, quotedomain.ErrNoGroupInPackage):
		return "container", true
	case errors.Is(err, quotedomain.ErrInvalidName):
		return "name", true
	case errors.Is(err, quotedomain.ErrInvalidOrdinal):
		return "ordinal", true
	case errors.Is(err, quotedomain.ErrVariantUnsupported):
		return "variant", true
	default:
		return "", false
	}
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_address":
		return "address must look like 1.2 or 1.2.3"
	case "target_not_found":
		return "address does not point at an existing package or line"
	case "nesting_depth_exceeded":
		return "sub-lines cannot have sub-lines"
	case "no_group_in_package":
		return "package has no group to hold the line"
	case "invalid_name":
		return "name is required"
	case "invalid_ordinal":
		return "ordinal is required"
	case "variant_unsupported":
		return "operation is not available for this quote layout"
	default:
		return "invalid value"
	}
}

func notFoundMessage(err error) string {
	switch code := quotedomain.Code(err); code {
	case "unknown":
		return "not found"
	default:
		return code
	}
}

func classifyErrorForLog(err error) string {
	status, payload := mapError(err)
	if status >= http.StatusInternalServerError {
		return "internal_error"
	}
	if len(payload.Errors) > 0 {
		return payload.Errors[0].Code
	}
	return payload.Type
}
