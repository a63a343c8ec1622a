package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/kodpocztowy/internal/normalize"
	"github.com/kodpocztowy/internal/store"
)

// SearchHandler serves the postal-code search and lookup endpoints.
type SearchHandler struct {
	Store        *store.Store
	DefaultLimit int
	MaxLimit     int
}

// SearchResponse is the JSON shape of a search result.
type SearchResponse struct {
	Results                 []store.Record `json:"results"`
	Count                   int            `json:"count"`
	SearchType              string         `json:"search_type,omitempty"`
	Message                 string         `json:"message,omitempty"`
	FallbackUsed            bool           `json:"fallback_used,omitempty"`
	PolishNormalizationUsed bool           `json:"polish_normalization_used,omitempty"`
}

// SearchPostalCodes handles GET /postal-codes.
func (h *SearchHandler) SearchPostalCodes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	city := strings.TrimSpace(query.Get("city"))
	if city == "" {
		writeError(w, http.StatusBadRequest, "City parameter is required")
		return
	}

	limit := parseIntParam(query.Get("limit"), h.DefaultLimit)
	if limit < 1 {
		limit = h.DefaultLimit
	}
	if limit > h.MaxLimit {
		limit = h.MaxLimit
	}

	params := normalize.SearchParams{
		City:         optionalParam(city),
		Street:       optionalParam(strings.TrimSpace(query.Get("street"))),
		HouseNumber:  optionalParam(strings.TrimSpace(query.Get("house_number"))),
		Province:     optionalParam(strings.TrimSpace(query.Get("province"))),
		County:       optionalParam(strings.TrimSpace(query.Get("county"))),
		Municipality: optionalParam(strings.TrimSpace(query.Get("municipality"))),
		Limit:        limit,
	}

	result, err := h.Store.Search(params)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Results:                 emptyIfNil(result.Records),
		Count:                   len(result.Records),
		SearchType:              result.SearchType,
		Message:                 result.Message,
		FallbackUsed:            result.FallbackUsed,
		PolishNormalizationUsed: result.NormalizationUsed,
	})
}

// GetPostalCode handles GET /postal-codes/{code}.
func (h *SearchHandler) GetPostalCode(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	records, err := h.Store.ByCode(code)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(records) == 0 {
		writeError(w, http.StatusNotFound, "Postal code not found")
		return
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Results: records,
		Count:   len(records),
	})
}

// parseIntParam parses an integer query parameter with a default.
func parseIntParam(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// optionalParam returns nil for empty strings so the store treats the
// filter as absent.
func optionalParam(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// emptyIfNil keeps the JSON results field an array rather than null.
func emptyIfNil(records []store.Record) []store.Record {
	if records == nil {
		return []store.Record{}
	}
	return records
}
