package handlers

import (
	"net/http"
	"strings"

	"github.com/kodpocztowy/internal/store"
)

// LocationsHandler serves the administrative hierarchy endpoints.
type LocationsHandler struct {
	Store *store.Store
}

// ProvincesResponse is the JSON shape of the provinces listing.
type ProvincesResponse struct {
	Provinces        []string `json:"provinces"`
	Count            int      `json:"count"`
	FilteredByPrefix *string  `json:"filtered_by_prefix,omitempty"`
}

// CountiesResponse is the JSON shape of the counties listing.
type CountiesResponse struct {
	Counties           []string `json:"counties"`
	Count              int      `json:"count"`
	FilteredByProvince *string  `json:"filtered_by_province,omitempty"`
	FilteredByPrefix   *string  `json:"filtered_by_prefix,omitempty"`
}

// MunicipalitiesResponse is the JSON shape of the municipalities listing.
type MunicipalitiesResponse struct {
	Municipalities     []string `json:"municipalities"`
	Count              int      `json:"count"`
	FilteredByProvince *string  `json:"filtered_by_province,omitempty"`
	FilteredByCounty   *string  `json:"filtered_by_county,omitempty"`
	FilteredByPrefix   *string  `json:"filtered_by_prefix,omitempty"`
}

// CitiesResponse is the JSON shape of the cities listing.
type CitiesResponse struct {
	Cities                 []string `json:"cities"`
	Count                  int      `json:"count"`
	FilteredByProvince     *string  `json:"filtered_by_province,omitempty"`
	FilteredByCounty       *string  `json:"filtered_by_county,omitempty"`
	FilteredByMunicipality *string  `json:"filtered_by_municipality,omitempty"`
	FilteredByPrefix       *string  `json:"filtered_by_prefix,omitempty"`
}

// StreetsResponse is the JSON shape of the streets listing.
type StreetsResponse struct {
	Streets                []string `json:"streets"`
	Count                  int      `json:"count"`
	FilteredByCity         *string  `json:"filtered_by_city,omitempty"`
	FilteredByProvince     *string  `json:"filtered_by_province,omitempty"`
	FilteredByCounty       *string  `json:"filtered_by_county,omitempty"`
	FilteredByMunicipality *string  `json:"filtered_by_municipality,omitempty"`
	FilteredByPrefix       *string  `json:"filtered_by_prefix,omitempty"`
}

// Directory handles GET /locations.
func (h *LocationsHandler) Directory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"available_endpoints": map[string]string{
			"provinces":      "/locations/provinces",
			"counties":       "/locations/counties",
			"municipalities": "/locations/municipalities",
			"cities":         "/locations/cities",
			"streets":        "/locations/streets",
		},
	})
}

// Provinces handles GET /locations/provinces.
func (h *LocationsHandler) Provinces(w http.ResponseWriter, r *http.Request) {
	prefix := queryParam(r, "prefix")

	provinces, err := h.Store.Provinces(prefix)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, ProvincesResponse{
		Provinces:        emptyStrings(provinces),
		Count:            len(provinces),
		FilteredByPrefix: prefix,
	})
}

// Counties handles GET /locations/counties.
func (h *LocationsHandler) Counties(w http.ResponseWriter, r *http.Request) {
	province := queryParam(r, "province")
	prefix := queryParam(r, "prefix")

	counties, err := h.Store.Counties(province, prefix)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, CountiesResponse{
		Counties:           emptyStrings(counties),
		Count:              len(counties),
		FilteredByProvince: province,
		FilteredByPrefix:   prefix,
	})
}

// Municipalities handles GET /locations/municipalities.
func (h *LocationsHandler) Municipalities(w http.ResponseWriter, r *http.Request) {
	province := queryParam(r, "province")
	county := queryParam(r, "county")
	prefix := queryParam(r, "prefix")

	municipalities, err := h.Store.Municipalities(province, county, prefix)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, MunicipalitiesResponse{
		Municipalities:     emptyStrings(municipalities),
		Count:              len(municipalities),
		FilteredByProvince: province,
		FilteredByCounty:   county,
		FilteredByPrefix:   prefix,
	})
}

// Cities handles GET /locations/cities.
func (h *LocationsHandler) Cities(w http.ResponseWriter, r *http.Request) {
	province := queryParam(r, "province")
	county := queryParam(r, "county")
	municipality := queryParam(r, "municipality")
	prefix := queryParam(r, "prefix")

	cities, err := h.Store.Cities(province, county, municipality, prefix)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, CitiesResponse{
		Cities:                 emptyStrings(cities),
		Count:                  len(cities),
		FilteredByProvince:     province,
		FilteredByCounty:       county,
		FilteredByMunicipality: municipality,
		FilteredByPrefix:       prefix,
	})
}

// Streets handles GET /locations/streets.
func (h *LocationsHandler) Streets(w http.ResponseWriter, r *http.Request) {
	city := queryParam(r, "city")
	province := queryParam(r, "province")
	county := queryParam(r, "county")
	municipality := queryParam(r, "municipality")
	prefix := queryParam(r, "prefix")

	streets, err := h.Store.Streets(city, province, county, municipality, prefix)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, StreetsResponse{
		Streets:                emptyStrings(streets),
		Count:                  len(streets),
		FilteredByCity:         city,
		FilteredByProvince:     province,
		FilteredByCounty:       county,
		FilteredByMunicipality: municipality,
		FilteredByPrefix:       prefix,
	})
}

// queryParam returns a trimmed query parameter, nil when absent or blank.
func queryParam(r *http.Request, name string) *string {
	return optionalParam(strings.TrimSpace(r.URL.Query().Get(name)))
}

// emptyStrings keeps JSON list fields arrays rather than null.
func emptyStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
