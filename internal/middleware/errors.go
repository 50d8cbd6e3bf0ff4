package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"planboard/internal/bucket"
	"planboard/internal/model"
	"planboard/internal/render"
	"planboard/internal/repository"
	"planboard/internal/service"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type errorMapping struct {
	target error
	status int
	code   string
}

var mappings = []errorMapping{
	{repository.ErrProjectNotFound, http.StatusNotFound, "project.not_found"},
	{repository.ErrTaskNotFound, http.StatusNotFound, "task.not_found"},
	{repository.ErrStatusNotFound, http.StatusNotFound, "status.not_found"},
	{repository.ErrLabelNotFound, http.StatusNotFound, "label.not_found"},
	{repository.ErrPriorityNotFound, http.StatusNotFound, "priority.not_found"},
	{repository.ErrUserNotFound, http.StatusNotFound, "user.not_found"},
	{repository.ErrFileNotFound, http.StatusNotFound, "file.not_found"},
	{render.ErrNoRoute, http.StatusNotFound, "render.no_route"},
	{render.ErrStaleGeneration, http.StatusConflict, "render.stale_generation"},
	{render.ErrUnknownListener, http.StatusNotFound, "render.unknown_listener"},
	{service.ErrInvalidInput, http.StatusBadRequest, "bad_request.invalid_input"},
	{service.ErrConfirmationMismatch, http.StatusBadRequest, "project.confirmation_mismatch"},
	{service.ErrStatusOrder, http.StatusBadRequest, "status.invalid_order"},
	{service.ErrForeignEntity, http.StatusBadRequest, "bad_request.foreign_entity"},
	{service.ErrLastStatus, http.StatusConflict, "status.last_status"},
	{service.ErrStatusInUse, http.StatusConflict, "status.in_use"},
	{bucket.ErrInvalidKey, http.StatusBadRequest, "bad_request.invalid_bucket"},
	{model.ErrInvalidDate, http.StatusBadRequest, "bad_request.invalid_date"},
}

// ErrorHandling turns errors attached with c.Error, and panics, into JSON
// error responses.
func ErrorHandling() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handle(c)
		c.Next()
	}
}

func handle(c *gin.Context) {
	if ret := recover(); ret != nil {
		err, ok := ret.(error)
		if !ok {
			err = fmt.Errorf("%v", ret)
		}
		HandleError(c, err)
		return
	}
	if err := c.Errors.Last(); err != nil {
		HandleError(c, err)
	}
}

func HandleError(c *gin.Context, err error) {
	var ginErr *gin.Error
	if errors.As(err, &ginErr) {
		err = ginErr.Err
	}

	status, body := classify(err)
	if status >= http.StatusInternalServerError {
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
	} else {
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Debug("request rejected")
	}
	c.AbortWithStatusJSON(status, body)
}

func classify(err error) (int, *ErrorBody) {
	// no body
	if errors.Is(err, io.EOF) {
		return http.StatusBadRequest, &ErrorBody{Code: "bad_request.body_not_found", Message: "body not found"}
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return http.StatusBadRequest, &ErrorBody{Code: "bad_request.invalid_body_format", Message: "invalid body format", Data: err.Error()}
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return http.StatusBadRequest, &ErrorBody{Code: "bad_request.invalid_body_format", Message: "invalid body format", Data: syntaxErr.Error()}
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return http.StatusBadRequest, &ErrorBody{Code: "bad_request.invalid_body_format", Message: "invalid body format", Data: typeErr.Error()}
	}
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, &ErrorBody{Code: "bad_request.validation_failed", Message: "validation failed", Data: validationErr.Error()}
	}
	for _, m := range mappings {
		if errors.Is(err, m.target) {
			return m.status, &ErrorBody{Code: m.code, Message: render.Message(err)}
		}
	}
	return http.StatusInternalServerError, &ErrorBody{Code: "common.internal_server_error", Message: err.Error()}
}
