// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package respond writes the HTTP answers of every handler.

# Wire Format

Catalog views go out unwrapped, because harvest consumers read the payload
shape directly (e.g. {"name": "Algeria", "languages": ["aaa"]}). A miss is a
bare 404 with no body. Every other failure uses the [ErrorEnvelope].
*/
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/taibuivan/langdata/internal/platform/apperr"
	"github.com/taibuivan/langdata/internal/platform/ctxutil"
)

const contentTypeJSON = "application/json; charset=utf-8"

// ErrorEnvelope is the body of every non-404 error.
type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// JSON encodes payload with the given status.
func JSON(writer http.ResponseWriter, status int, payload any) {
	writer.Header().Set("Content-Type", contentTypeJSON)
	writer.WriteHeader(status)
	if err := json.NewEncoder(writer).Encode(payload); err != nil {
		slog.Debug("response_encode_failed", slog.Any("error", err))
	}
}

// OK is JSON with 200.
func OK(writer http.ResponseWriter, payload any) {
	JSON(writer, http.StatusOK, payload)
}

// NoContent answers 204, used by the deletes.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

/*
Error classifies err and writes the matching answer.

Anything that is not an [apperr.AppError] counts as internal. 5xx causes are
logged with the request ID and never reach the client.
*/
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	appError := apperr.As(err)
	if appError == nil {
		appError = apperr.Internal(err)
	}

	switch status := appError.HTTPStatus; {
	case status == http.StatusNotFound:
		writer.WriteHeader(status)
	case status >= http.StatusInternalServerError:
		ctx := request.Context()
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
			slog.Any("cause", appError.Cause),
		)
		fallthrough
	default:
		JSON(writer, status, envelope(appError))
	}
}

func envelope(appError *apperr.AppError) ErrorEnvelope {
	return ErrorEnvelope{Error: appError.Message, Code: appError.Code, Details: appError.Details}
}
