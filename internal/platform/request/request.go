// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It hides chi's parameter extraction and the JSON body decoding behind a
small surface, so handlers report malformed input the same way.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/langdata/internal/platform/validate"
)

// maxBodyBytes bounds mutation payloads. Harvest resource documents can be
// several megabytes for well documented languages.
const maxBodyBytes = 32 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxBodyBytes)
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param returns a named URL parameter, decoded.
//
// chi routes on URL.RawPath when the client escaped the path differently
// from Go (e.g. a bare apostrophe, or %2F), and then hands back the escaped
// segment. Path is already decoded otherwise, so it is not unescaped twice.
func Param(request *http.Request, name string) string {
	value := chi.URLParam(request, name)
	if request.URL.RawPath == "" {
		return value
	}
	if decoded, err := url.PathUnescape(value); err == nil {
		return decoded
	}
	return value
}

// Date returns the optional ?date= query value ("" when absent).
func Date(request *http.Request) string {
	return request.URL.Query().Get("date")
}

// Format returns the optional ?format= query value.
func Format(request *http.Request) string {
	return request.URL.Query().Get("format")
}
