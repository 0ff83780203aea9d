package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"loanbook-backend/internal/domain/apperr"
)

type ErrorResponse struct {
	Success bool                `json:"success"`
	Error   string              `json:"error"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

func statusOf(k apperr.Kind) int {
	switch k {
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindInvalidInput:
		return http.StatusUnprocessableEntity
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders a usecase failure. Internal causes are logged, never sent.
func writeError(c echo.Context, log logrus.FieldLogger, err error) error {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		ae = apperr.Internal(err)
	}
	status := statusOf(ae.Kind)
	if status == http.StatusInternalServerError {
		entry := log.WithFields(logrus.Fields{
			"method": c.Request().Method,
			"route":  c.Path(),
			"rid":    c.Response().Header().Get(echo.HeaderXRequestID),
		})
		if cause := errors.Unwrap(ae); cause != nil {
			entry = entry.WithError(cause)
		}
		entry.Error("request failed")
	}
	return c.JSON(status, ErrorResponse{Error: ae.Message, Details: ae.Fields})
}

// HTTPErrorHandler renders router and middleware errors (unknown route, wrong
// method, recovered panics) in the same envelope as usecase failures.
func HTTPErrorHandler(log logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := http.StatusText(he.Code)
			if m, ok := he.Message.(string); ok {
				msg = m
			}
			if he.Code >= http.StatusInternalServerError {
				log.WithError(err).WithField("route", c.Path()).Error("request failed")
			}
			_ = c.JSON(he.Code, ErrorResponse{Error: msg})
			return
		}
		_ = writeError(c, log, err)
	}
}

func badBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Invalid("invalid input", apperr.FieldError{Field: name, Message: "must be a positive integer"})
	}
	return id, nil
}
