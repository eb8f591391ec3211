// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	requestutil "github.com/taibuivan/langdata/internal/platform/request"
)

func TestParam(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"/countries/Algeria", "Algeria"},
		{"/countries/C%C3%B4te%20d%27Ivoire", "Côte d'Ivoire"},
		{"/countries/C%C3%B4te%20d'Ivoire", "Côte d'Ivoire"},
		{"/countries/A%2FB", "A/B"},
		{"/countries/100%25", "100%"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			var got string
			router := chi.NewRouter()
			router.Get("/countries/{name}", func(_ http.ResponseWriter, request *http.Request) {
				got = requestutil.Param(request, "name")
			})

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.want, got)
		})
	}
}
