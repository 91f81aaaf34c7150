// Package envelope is the single place HTTP responses are shaped. Every
// outcome is written as {"status": <code>, "data": ...} or
// {"status": <code>, "error": {...}}, never both.
package envelope

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/media-discovery/pkg/util/errorutil"
)

// Kind tags an envelope and fixes its HTTP status.
type Kind string

const (
	KindSuccess      Kind = "success"
	KindCreated      Kind = "created"
	KindError        Kind = "error"
	KindNotFound     Kind = "notfound"
	KindUnauthorized Kind = "unauthorized"
	KindServerError  Kind = "servererror"
)

// HTTPStatus maps the kind to its transport status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindSuccess:
		return http.StatusOK
	case KindCreated:
		return http.StatusCreated
	case KindError:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Failed reports whether the kind carries an error body.
func (k Kind) Failed() bool {
	return k != KindSuccess && k != KindCreated
}

// ErrorBody is the client-visible failure payload.
type ErrorBody struct {
	Message string         `json:"message"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// Envelope is the tagged union written for every response.
type Envelope struct {
	Kind  Kind
	Data  any
	Error *ErrorBody
}

// MarshalJSON emits exactly one of data or error, chosen by Kind.
func (e Envelope) MarshalJSON() ([]byte, error) {
	status := e.Kind.HTTPStatus()
	if e.Kind.Failed() {
		body := e.Error
		if body == nil {
			body = &ErrorBody{Message: defaultMessage(e.Kind)}
		}
		return json.Marshal(struct {
			Status int        `json:"status"`
			Error  *ErrorBody `json:"error"`
		}{Status: status, Error: body})
	}
	return json.Marshal(struct {
		Status int `json:"status"`
		Data   any `json:"data"`
	}{Status: status, Data: e.Data})
}

func defaultMessage(kind Kind) string {
	switch kind {
	case KindNotFound:
		return "Resource not found"
	case KindUnauthorized:
		return "Unauthorized"
	default:
		return "Oops! Something went wrong!"
	}
}

// Write sends env with the status its kind maps to.
func Write(c *fiber.Ctx, env Envelope) error {
	return c.Status(env.Kind.HTTPStatus()).JSON(env)
}

// OK responds 200 with data.
func OK(c *fiber.Ctx, data any) error {
	return Write(c, Envelope{Kind: KindSuccess, Data: data})
}

// Created responds 201 with data.
func Created(c *fiber.Ctx, data any) error {
	return Write(c, Envelope{Kind: KindCreated, Data: data})
}

// NotFound responds 404. A nil info yields the default message.
func NotFound(c *fiber.Ctx, info *ErrorBody) error {
	return Write(c, Envelope{Kind: KindNotFound, Error: info})
}

// Unauthorized responds 401 with a fixed body that never varies by cause.
func Unauthorized(c *fiber.Ctx) error {
	return Write(c, Envelope{Kind: KindUnauthorized})
}

// ServerError responds 500. Callers must not pass internal detail.
func ServerError(c *fiber.Ctx, info *ErrorBody) error {
	return Write(c, Envelope{Kind: KindServerError, Error: info})
}

// Error responds 400.
func Error(c *fiber.Ctx, info *ErrorBody) error {
	return Write(c, Envelope{Kind: KindError, Error: info})
}

// FromError classifies err into an envelope. Internal errors lose their
// cause; only the generic message reaches the client.
func FromError(err error) Envelope {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		switch {
		case fiberErr.Code == http.StatusNotFound:
			return Envelope{Kind: KindNotFound, Error: &ErrorBody{Message: fiberErr.Message}}
		case fiberErr.Code == http.StatusUnauthorized:
			return Envelope{Kind: KindUnauthorized}
		case fiberErr.Code >= 400 && fiberErr.Code < 500:
			return Envelope{Kind: KindError, Error: &ErrorBody{Message: fiberErr.Message}}
		default:
			return Envelope{Kind: KindServerError}
		}
	}

	domainErr := apperrors.ToDomainError(err)
	switch domainErr.Kind {
	case apperrors.KindValidation, apperrors.KindBadRequest:
		return Envelope{Kind: KindError, Error: &ErrorBody{
			Message: domainErr.Message,
			Code:    domainErr.Code,
			Details: domainErr.Details,
		}}
	case apperrors.KindNotFound:
		return Envelope{Kind: KindNotFound, Error: &ErrorBody{Message: domainErr.Message, Code: domainErr.Code}}
	case apperrors.KindUnauthorized:
		return Envelope{Kind: KindUnauthorized}
	default:
		return Envelope{Kind: KindServerError}
	}
}
