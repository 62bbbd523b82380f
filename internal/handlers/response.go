package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/vidtube/backend/internal/content"
	"github.com/vidtube/backend/internal/logging"
)

type successEnvelope struct {
	Status  int    `json:"status"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Status  int      `json:"status"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

var kindStatus = map[content.Kind]int{
	content.KindInvalidArgument:  http.StatusBadRequest,
	content.KindUnauthenticated:  http.StatusUnauthorized,
	content.KindPermissionDenied: http.StatusForbidden,
	content.KindNotFound:         http.StatusNotFound,
	content.KindConflict:         http.StatusConflict,
	content.KindInternal:         http.StatusInternalServerError,
}

func respond(ctx context.Context, w http.ResponseWriter, status int, data any, message string) {
	respondJSON(ctx, w, status, successEnvelope{Status: status, Data: data, Message: message})
}

// respondError converts any error into the error envelope. Errors without a kind
// are reported as internal failures with a generic message.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	var svcErr *content.Error
	if !errors.As(err, &svcErr) {
		svcErr = content.Internal("Something went wrong", err)
	}

	status := kindStatus[svcErr.Kind]
	details := svcErr.Details
	if details == nil {
		details = []string{}
	}
	if svcErr.Err != nil {
		logging.FromContext(ctx).Error("request error", "kind", svcErr.Kind.String(), "error", svcErr.Err)
	}
	respondJSON(ctx, w, status, errorEnvelope{Status: status, Message: svcErr.Message, Errors: details})
}

func respondTooManyRequests(w http.ResponseWriter, r *http.Request) {
	respondJSON(r.Context(), w, http.StatusTooManyRequests, errorEnvelope{
		Status:  http.StatusTooManyRequests,
		Message: "Too many requests, please try again later",
		Errors:  []string{},
	})
}

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.FromContext(ctx).Error("encode response body", "status", status, "error", err)
		return
	}

	logger := logging.FromContext(ctx)
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("request failed", "status", status, "response", payload)
	case status >= http.StatusBadRequest:
		logger.Warn("request returned client error", "status", status, "response", payload)
	}
}

// decodeJSON reads a JSON body into dst. An empty body leaves dst untouched.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		logging.FromContext(r.Context()).Warn("invalid request payload", "error", err)
		return content.InvalidArgument("Invalid request body")
	}
	return nil
}
