package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/casamaria/storefront-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type stubGeocoder struct {
	address string
	err     error
}

func (s *stubGeocoder) Reverse(_ context.Context, _, _ float64) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.address, nil
}

func TestPublicReverseGeocodeReturnsAddress(t *testing.T) {
	handler := PublicReverseGeocode(&stubGeocoder{address: "Calle 10 25-31, El Poblado, Medellín"}, nil)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/geocode/reverse?lat=6.2442&lng=-75.5812", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "El Poblado")
}

func TestPublicReverseGeocodeValidatesCoordinates(t *testing.T) {
	handler := PublicReverseGeocode(&stubGeocoder{}, nil)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/geocode/reverse?lat=abc&lng=1", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPublicReverseGeocodeMapsUpstreamFailure(t *testing.T) {
	handler := PublicReverseGeocode(&stubGeocoder{err: pkgerrors.New(pkgerrors.CodeDependency, "nominatim status 502")}, nil)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/geocode/reverse?lat=6.2&lng=-75.5", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
