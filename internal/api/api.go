// Package api contains helpers for writing JSON responses and common http middlewares.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("layer", "api").WithField("package", "api")

// Error is the envelope of every error response.
type Error struct {
	Error string `json:"error"`
}

// WriteOK writes v as json with the status code.
func WriteOK(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.WithError(err).Error("failed to marshal response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// WriteError writes error envelope with the status code.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteOK(w, status, Error{Error: message})
}

// WriteInternalError logs the error and writes message with 500 status code.
func WriteInternalError(ctx context.Context, w http.ResponseWriter, err error, message string) {
	GetLogger(ctx).WithError(err).Error(message)
	WriteError(w, http.StatusInternalServerError, message)
}

// WriteInternalErrorf logs formatted error and writes generic internal error.
func WriteInternalErrorf(ctx context.Context, w http.ResponseWriter, format string, args ...interface{}) {
	GetLogger(ctx).Error(fmt.Sprintf(format, args...))
	WriteError(w, http.StatusInternalServerError, "internal error")
}
