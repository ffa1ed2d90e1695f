package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	campaigndomain "github.com/smallbiznis/classifieds/internal/campaign/domain"
	consumptiondomain "github.com/smallbiznis/classifieds/internal/consumption/domain"
	freequotadomain "github.com/smallbiznis/classifieds/internal/freequota/domain"
	invoicedomain "github.com/smallbiznis/classifieds/internal/invoice/domain"
	monetizationdomain "github.com/smallbiznis/classifieds/internal/monetization/domain"
	pricedomain "github.com/smallbiznis/classifieds/internal/price/domain"
	"github.com/smallbiznis/classifieds/internal/quote"
	subscriptiondomain "github.com/smallbiznis/classifieds/internal/subscription/domain"
	vatdomain "github.com/smallbiznis/classifieds/internal/vat/domain"
	"gorm.io/gorm"
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

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("not_found")
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrRateLimited        = errors.New("rate_limited")
	ErrServiceUnavailable = errors.New("service_unavailable")
)

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

	// Checked before validation: wrapped domain errors may also carry a
	// validation sentinel from the layer below.
	switch {
	case errors.Is(err, monetizationdomain.ErrConfigurationMissing):
		return http.StatusInternalServerError, errorPayload{
			Type:    "configuration_missing",
			Message: "pricing configuration missing",
		}
	case errors.Is(err, monetizationdomain.ErrAlreadyConsumed):
		return http.StatusConflict, errorPayload{
			Type:    "already_consumed",
			Message: "listing already consumed",
		}
	case errors.Is(err, monetizationdomain.ErrConcurrencyConflict):
		return http.StatusConflict, errorPayload{
			Type:    "concurrency_conflict",
			Message: "quota changed, evaluate again",
		}
	case errors.Is(err, monetizationdomain.ErrInvalidDecision):
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "invalid_decision",
			Message: "decision does not match the listing",
		}
	case errors.Is(err, quote.ErrNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "quote_expired",
			Message: "quote expired or already used",
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, subscriptiondomain.ErrInvalidTransition):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "rate_limited",
			Message: "too many requests",
		}
	case errors.Is(err, ErrServiceUnavailable):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "service unavailable",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

// classifyErrorForLog feeds error_type and error_code on request logs.
func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	code := payload.Type
	if len(payload.Errors) > 0 {
		code = payload.Errors[0].Code
	}
	switch {
	case status >= http.StatusInternalServerError:
		return "server", code
	case status == http.StatusConflict:
		return "conflict", code
	default:
		return "client", code
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

var validationErrors = []error{
	ErrInvalidRequest,
	quote.ErrInvalidID,
	monetizationdomain.ErrInvalidSeller,
	monetizationdomain.ErrInvalidListing,
	monetizationdomain.ErrInvalidUser,
	monetizationdomain.ErrInvalidCountry,
	monetizationdomain.ErrInvalidPricingType,
	vatdomain.ErrInvalidCountry,
	vatdomain.ErrInvalidRate,
	vatdomain.ErrInvalidValidity,
	pricedomain.ErrInvalidCountry,
	pricedomain.ErrInvalidSegment,
	pricedomain.ErrInvalidPricingType,
	pricedomain.ErrInvalidUnitPrice,
	pricedomain.ErrInvalidCurrency,
	pricedomain.ErrInvalidID,
	freequotadomain.ErrInvalidCountry,
	freequotadomain.ErrInvalidSegment,
	freequotadomain.ErrInvalidQuotaAmount,
	freequotadomain.ErrInvalidPeriodDays,
	subscriptiondomain.ErrInvalidSeller,
	subscriptiondomain.ErrInvalidPackage,
	subscriptiondomain.ErrInvalidPeriod,
	subscriptiondomain.ErrInvalidQuota,
	subscriptiondomain.ErrInvalidID,
	campaigndomain.ErrInvalidName,
	campaigndomain.ErrInvalidType,
	campaigndomain.ErrInvalidTarget,
	campaigndomain.ErrInvalidStatus,
	campaigndomain.ErrInvalidCountry,
	campaigndomain.ErrInvalidPeriod,
	campaigndomain.ErrInvalidDiscount,
	campaigndomain.ErrInvalidCurrency,
	campaigndomain.ErrInvalidID,
	consumptiondomain.ErrInvalidListing,
	consumptiondomain.ErrInvalidSeller,
	consumptiondomain.ErrInvalidSource,
	consumptiondomain.ErrInvalidPageToken,
	invoicedomain.ErrInvalidInvoice,
}

func isValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, pricedomain.ErrNotFound),
		errors.Is(err, subscriptiondomain.ErrNotFound),
		errors.Is(err, campaigndomain.ErrNotFound),
		errors.Is(err, consumptiondomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return "invalid_request"
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	default:
		return "invalid value"
	}
}
