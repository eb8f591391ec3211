// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"net/http"

	"github.com/taibuivan/langdata/internal/platform/constants"
	"github.com/taibuivan/langdata/internal/platform/respond"
)

// Route documents one public endpoint.
type Route struct {
	URI     string `json:"URI"`
	Returns string `json:"returns"`
}

// HelpDocument is returned by GET /.
type HelpDocument struct {
	Service string             `json:"service"`
	Version string             `json:"version"`
	Routes  map[string][]Route `json:"API routes"`
}

var helpDocument = HelpDocument{
	Service: constants.ServiceTitle,
	Version: constants.AppVersion,
	Routes: map[string][]Route{
		"dates": {
			{URI: "/dates", Returns: "An array of available harvest dates."},
		},
		"regions": {
			{URI: "/regions", Returns: "The list of regions."},
			{URI: "/regions/{region name}", Returns: "The region and its associated countries."},
		},
		"countries": {
			{URI: "/countries", Returns: "The list of countries."},
			{URI: "/countries/{country name}", Returns: "The country and its associated languages."},
			{URI: "/countries/{country name}/stats?date={YYYYMMDD}&format={json|csv}", Returns: "Resource counts of every language of the country at a harvest date."},
		},
		"languages": {
			{URI: "/languages?date={YYYYMMDD}", Returns: "The languages harvested at a date."},
			{URI: "/languages/{language code}?date={YYYYMMDD}", Returns: "The language and its harvest at a date."},
			{URI: "/languages/{language code}/resources?date={YYYYMMDD}", Returns: "The resource document of the language at a date."},
		},
	},
}

// help handles GET /.
func help(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, helpDocument)
}
