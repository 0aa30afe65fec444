package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	er "github.com/mcorbin/corbierror"
)

func writeError(logger *slog.Logger, c echo.Context, status int, payload er.Error) {
	if err := c.JSON(status, payload); err != nil {
		logger.Error(err.Error())
		c.Response().Status = http.StatusInternalServerError
	}
}

func errorHandler(logger *slog.Logger) func(err error, c echo.Context) {
	return func(err error, c echo.Context) {
		// can happen if ctx.Error() is called in a middleware
		// with nil passed, like for the rate limiter
		if err == nil {
			return
		}
		errLoggedMsg := err.Error() + " on " + c.Request().Method + " " + c.Request().URL.Path
		corbiError, ok := err.(*er.Error)
		if ok {
			if corbiError.Type == er.Forbidden {
				logger.Warn(errLoggedMsg)
			} else {
				logger.Error(errLoggedMsg)
			}
			finalErr, status := er.HTTPError(*corbiError)
			writeError(logger, c, status, finalErr)
			return
		}
		logger.Error(errLoggedMsg)
		echoError, ok := err.(*echo.HTTPError)
		if ok {
			if echoError.Internal != nil {
				jsonError, ok := echoError.Internal.(*json.UnmarshalTypeError)
				if ok {
					msg := fmt.Sprintf("invalid JSON payload, field %s is incorrect", jsonError.Field)
					writeError(logger, c, http.StatusBadRequest, er.Error{
						Messages: []string{msg},
					})
					return
				}
			}
			if echoError.Code == http.StatusBadRequest && strings.Contains(echoError.Error(), "Field validation") {
				msg := strings.Split(fmt.Sprintf("%+v", echoError.Message), "\n")
				writeError(logger, c, http.StatusBadRequest, er.Error{
					Messages: msg,
				})
				return
			}
			if echoError.Code == http.StatusMethodNotAllowed {
				writeError(logger, c, http.StatusMethodNotAllowed, er.Error{
					Messages: []string{"method not allowed"},
				})
				return
			}
			if echoError.Code == http.StatusNotFound {
				writeError(logger, c, http.StatusNotFound, er.Error{
					Messages: []string{"not found"},
				})
				return
			}
		}
		writeError(logger, c, http.StatusInternalServerError, er.Error{
			Messages: []string{"internal server error"},
		})
	}
}
