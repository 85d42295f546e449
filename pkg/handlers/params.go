package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/fareops/catalog-engine/pkg/apperrors"
	"github.com/fareops/catalog-engine/pkg/config"
	"github.com/fareops/catalog-engine/pkg/query"
)

// pathID parses the {id} path segment.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, apperrors.Validationf("invalid id %q", r.PathValue("id"))
	}
	return id, nil
}

// parsePage reads the page/page_size query parameters, applying the
// configured default size when omitted and rejecting sizes above the cap.
// Non-positive values pass through so the service layer rejects them.
func parsePage(values url.Values, listing config.ListingConfig) (query.PageRequest, error) {
	page := query.PageRequest{Number: 1, Size: listing.DefaultPageSize}

	if raw := values.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return query.PageRequest{}, apperrors.Validationf("invalid page %q", raw)
		}
		page.Number = n
	}
	if raw := values.Get("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return query.PageRequest{}, apperrors.Validationf("invalid page_size %q", raw)
		}
		if n > listing.MaxPageSize {
			return query.PageRequest{}, apperrors.Validationf("page_size %d exceeds maximum %d", n, listing.MaxPageSize)
		}
		page.Size = n
	}
	return page, nil
}

// queryUUID parses an optional UUID query parameter, nil when absent.
func queryUUID(values url.Values, name string) (*uuid.UUID, error) {
	raw := values.Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperrors.Validationf("invalid %s %q", name, raw)
	}
	return &id, nil
}

// queryTime parses an optional timestamp query parameter. Accepts RFC 3339 or
// a bare date, nil when absent.
func queryTime(values url.Values, name string) (*time.Time, error) {
	raw := values.Get(name)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, apperrors.Validationf("invalid %s %q: want RFC 3339 or YYYY-MM-DD", name, raw)
	}
	return &t, nil
}

// queryBool parses an optional boolean query parameter, false when absent.
func queryBool(values url.Values, name string) bool {
	return values.Get(name) == "true"
}

// decodeJSON decodes a request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.Validationf("invalid request body: %v", err)
	}
	return nil
}
