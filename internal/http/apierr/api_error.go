package apierr

import (
	"errors"
	"net/http"

	govalidator "github.com/go-playground/validator/v10"

	"github.com/tuanvumaihuynh/price-tracker/internal/apperr"
	"github.com/tuanvumaihuynh/price-tracker/internal/http/gen"
	"github.com/tuanvumaihuynh/price-tracker/pkg/validator"
	"github.com/tuanvumaihuynh/price-tracker/pkg/zerror"
)

// ErrorResponse is the error response for the API.
type ErrorResponse struct {
	gen.ErrorResponse

	// StatusCode is the status code for the error response.
	StatusCode int `json:"-"`
}

// New classifies err into the JSON body and status written to the client.
// Anything unrecognized becomes InternalServerErr so internals never leak.
func New(err error) ErrorResponse {
	if res, ok := fromValidation(err); ok {
		return res
	}
	if res, ok := fromZError(err); ok {
		return res
	}
	if isOpenAPICodegenErr(err) {
		return newErrorResponse(http.StatusBadRequest, apperr.ValidationErrorCode, err.Error(), nil)
	}
	return InternalServerErr
}

var InternalServerErr = newErrorResponse(
	http.StatusInternalServerError,
	"INTERNAL_SERVER_ERROR",
	"an unknown error occurred",
	nil,
)

func newErrorResponse(status int, code, msg string, details *[]gen.FieldError) ErrorResponse {
	return ErrorResponse{
		ErrorResponse: gen.ErrorResponse{
			Code:    code,
			Message: msg,
			Details: details,
		},
		StatusCode: status,
	}
}

// fromValidation runs before fromZError so field details survive apperr.ValidationErr wrapping.
func fromValidation(err error) (ErrorResponse, bool) {
	var validationErrs govalidator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return ErrorResponse{}, false
	}

	details := make([]gen.FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		details = append(details, gen.FieldError{
			Field:   fe.Field(),
			Message: validator.ValidationErrorMessage(fe),
		})
	}

	return newErrorResponse(http.StatusBadRequest, apperr.ValidationErrorCode, "validation error", &details), true
}

func fromZError(err error) (ErrorResponse, bool) {
	var zErr zerror.ZError
	if !errors.As(err, &zErr) {
		return ErrorResponse{}, false
	}
	return newErrorResponse(HTTPStatus(zErr.Status()), zErr.Code(), zErr.Msg(), nil), true
}

var httpStatuses = map[zerror.Status]int{
	zerror.StatusUnauthorized:        http.StatusUnauthorized,
	zerror.StatusForbidden:           http.StatusForbidden,
	zerror.StatusNotFound:            http.StatusNotFound,
	zerror.StatusUnprocessableEntity: http.StatusUnprocessableEntity,
	zerror.StatusConflict:            http.StatusConflict,
	zerror.StatusTooManyRequests:     http.StatusTooManyRequests,
	zerror.StatusBadRequest:          http.StatusBadRequest,
	zerror.StatusValidationFailed:    http.StatusBadRequest,
	zerror.StatusTimeout:             http.StatusGatewayTimeout,
	zerror.StatusNotImplemented:      http.StatusNotImplemented,
	zerror.StatusBadGateway:          http.StatusBadGateway,
	zerror.StatusServiceUnavailable:  http.StatusServiceUnavailable,
}

// HTTPStatus maps a zerror status to its HTTP status code, defaulting to 500.
func HTTPStatus(status zerror.Status) int {
	if code, ok := httpStatuses[status]; ok {
		return code
	}
	return http.StatusInternalServerError
}

func isOpenAPICodegenErr(err error) bool {
	var (
		cookieErr    *gen.UnescapedCookieParamError
		unmarshalErr *gen.UnmarshalingParamError
		requiredErr  *gen.RequiredParamError
		headerErr    *gen.RequiredHeaderError
		formatErr    *gen.InvalidParamFormatError
		tooManyErr   *gen.TooManyValuesForParamError
	)

	return errors.As(err, &cookieErr) ||
		errors.As(err, &unmarshalErr) ||
		errors.As(err, &requiredErr) ||
		errors.As(err, &headerErr) ||
		errors.As(err, &formatErr) ||
		errors.As(err, &tooManyErr)
}
