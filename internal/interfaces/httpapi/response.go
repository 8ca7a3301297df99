package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/bowling-league/internal/domain/frame"
	"github.com/riskibarqy/bowling-league/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"go.uber.org/multierr"
)

const (
	apiVersion  = "2.0"
	errorDomain = "bowling-league"
)

// envelope follows the Google JSON style guide: exactly one of data or
// error is set.
type envelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Status  string      `json:"status"`
	Errors  []errorItem `json:"errors,omitempty"`
}

type errorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type errorClass struct {
	target     error
	HTTPStatus int
	Reason     string
	Status     string
}

// errorClasses is ordered: a combined decoration error reports the first
// class any of its parts belongs to.
var errorClasses = []errorClass{
	{target: usecase.ErrInvalidInput, HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"},
	{target: frame.ErrMalformedNotation, HTTPStatus: http.StatusUnprocessableEntity, Reason: "malformedNotation", Status: "INVALID_ARGUMENT"},
	{target: usecase.ErrNotFound, HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"},
	{target: usecase.ErrNotImplemented, HTTPStatus: http.StatusNotImplemented, Reason: "notImplemented", Status: "UNIMPLEMENTED"},
	{target: usecase.ErrUnavailable, HTTPStatus: http.StatusServiceUnavailable, Reason: "dependencyUnavailable", Status: "UNAVAILABLE"},
}

var internalErrorClass = errorClass{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}

func classify(err error) errorClass {
	for _, c := range errorClasses {
		if errors.Is(err, c.target) {
			return c
		}
	}
	return internalErrorClass
}

// writeJSON encodes into a pooled buffer first so an encoding failure can
// still be reported as a 500 instead of a truncated body.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	w.Header().Set("Content-Type", "application/json")
	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"apiVersion":"` + apiVersion + `","error":{"code":500,"message":"internal server error","status":"INTERNAL"}}`))
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write(buf.B)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	_, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(w, status, envelope{APIVersion: apiVersion, Data: data})
}

// writeError lists every part of a combined error as its own item, each
// with its own reason.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	_, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	class := classify(err)
	parts := multierr.Errors(err)
	items := make([]errorItem, 0, len(parts))
	for _, part := range parts {
		items = append(items, errorItem{
			Domain:  errorDomain,
			Reason:  classify(part).Reason,
			Message: part.Error(),
		})
	}

	writeJSON(w, class.HTTPStatus, envelope{
		APIVersion: apiVersion,
		Error: &errorBody{
			Code:    class.HTTPStatus,
			Message: err.Error(),
			Status:  class.Status,
			Errors:  items,
		},
	})
}

func writeInternalError(w http.ResponseWriter) {
	const msg = "internal server error"
	writeJSON(w, http.StatusInternalServerError, envelope{
		APIVersion: apiVersion,
		Error: &errorBody{
			Code:    http.StatusInternalServerError,
			Message: msg,
			Status:  internalErrorClass.Status,
			Errors:  []errorItem{{Domain: errorDomain, Reason: internalErrorClass.Reason, Message: msg}},
		},
	})
}
