// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocodeearth

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	stdhttp "net/http"
	"os"
	"strings"
	"testing"

	"github.com/wneessen/geokit/geo"
	"github.com/wneessen/geokit/geocode"
	"github.com/wneessen/geokit/internal/http"
	"github.com/wneessen/geokit/internal/logger"
	"github.com/wneessen/geokit/internal/testhelper"
)

const (
	cityAddress     = "Friedrichstrasse 67, 10117 Berlin"
	cityExpected    = "Friedrichstraße 67, Berlin, Germany"
	cityForwardFile = "../../../testdata/geocodeearth_berlin_forward.json"
)

var cityForwardCoords = geo.Point{Lat: 52.512274, Lng: 13.390617}

func TestNew(t *testing.T) {
	t.Run("creating a new provider succeeds", func(t *testing.T) {
		coder := New(http.New(logger.Discard()), "test-key")
		if coder == nil {
			t.Fatal("expected a non-nil geocoder")
		}
	})
	t.Run("provider name is correct", func(t *testing.T) {
		coder := New(http.New(logger.Discard()), "test-key")
		if coder.Name() != name {
			t.Errorf("expected provider name to be %q, got %q", name, coder.Name())
		}
	})
}

func TestGeocodeEarth_Geocode(t *testing.T) {
	t.Run("forward geocoding succeeds", func(t *testing.T) {
		recorder := new(testhelper.RequestRecorder)
		coder := testCoderWithRoundtripFunc(recorder.Record(testhelper.FileResponse(t, cityForwardFile)))
		location := coder.Geocode(t.Context(), cityAddress)
		if !location.Success {
			t.Fatalf("expected location to be found, got: %s", location.Err)
		}
		if location.Lat != cityForwardCoords.Lat {
			t.Errorf("expected latitude to be %f, got %f", cityForwardCoords.Lat, location.Lat)
		}
		if location.Lng != cityForwardCoords.Lng {
			t.Errorf("expected longitude to be %f, got %f", cityForwardCoords.Lng, location.Lng)
		}
		if !strings.EqualFold(location.FullAddress(), cityExpected) {
			t.Errorf("expected address to be %q, got %q", cityExpected, location.FullAddress())
		}
		if location.CountryCode != "DE" || location.State != "BE" || location.Zip != "10117" {
			t.Errorf("unexpected address components %s/%s/%s", location.CountryCode, location.State, location.Zip)
		}
		if location.Precision != geo.PrecisionAddress {
			t.Errorf("expected precision address, got %s", location.Precision)
		}

		request := recorder.Requests()[0]
		if request.URL.Path != "/v1/search" {
			t.Errorf("expected request to /v1/search, got %s", request.URL.Path)
		}
		query := request.URL.Query()
		if query.Get("text") != cityAddress || query.Get("api_key") != "test-key" || query.Get("size") != "1" {
			t.Errorf("unexpected query parameters %s", query.Encode())
		}
	})
	t.Run("forward geocoding fails", func(t *testing.T) {
		coder := testCoderWithRoundtripFunc(testhelper.MockRoundTripper{
			Fn: func(*stdhttp.Request) (*stdhttp.Response, error) {
				return nil, errors.New("intentionally failing")
			},
		})
		if location := coder.Geocode(t.Context(), cityAddress); location.Success {
			t.Fatal("expected API request to fail")
		}
	})
	t.Run("API responding without features should fail", func(t *testing.T) {
		coder := testCoderWithRoundtripFunc(jsonResponse(t, 200, SearchResponse{Features: []SearchFeature{}}))
		location := coder.Geocode(t.Context(), cityAddress)
		if !errors.Is(location.Err, geocode.ErrNoResult) {
			t.Errorf("expected error to be %s, got %v", geocode.ErrNoResult, location.Err)
		}
	})
	t.Run("a feature without coordinates should fail", func(t *testing.T) {
		response := SearchResponse{Features: []SearchFeature{{Properties: Properties{City: "Berlin"}}}}
		coder := testCoderWithRoundtripFunc(jsonResponse(t, 200, response))
		location := coder.Geocode(t.Context(), cityAddress)
		if location.Success {
			t.Fatal("expected lookup to fail")
		}
		if location.City() != "Berlin" {
			t.Errorf("expected partially populated location, got city %q", location.City())
		}
	})
	t.Run("API responding with a non-200 reponse", func(t *testing.T) {
		response := SearchResponse{Features: []SearchFeature{{Geometry: Geometry{
			Coordinates: []float64{cityForwardCoords.Lng, cityForwardCoords.Lat},
		}}}}
		coder := testCoderWithRoundtripFunc(jsonResponse(t, 401, response))
		location := coder.Geocode(t.Context(), cityAddress)
		wantErr := "unexpected response status from geocode-earth API: 401"
		if location.Err == nil || !strings.EqualFold(location.Err.Error(), wantErr) {
			t.Errorf("expected error to be %q, got %v", wantErr, location.Err)
		}
	})
}

func TestGeocodeEarth_GeocodeOnline(t *testing.T) {
	testhelper.PerformIntegrationTests(t)
	apikey := os.Getenv("GEOCODEEARTH_APIKEY")
	if apikey == "" {
		t.Skip("no geocode.earth API key set, skipping tests")
	}
	coder := New(http.New(logger.Discard()), apikey)
	location := coder.Geocode(t.Context(), cityAddress)
	if !location.Success {
		t.Fatalf("expected location to be found, got: %s", location.Err)
	}
}

func jsonResponse(t *testing.T, status int, response SearchResponse) testhelper.MockRoundTripper {
	t.Helper()
	return testhelper.MockRoundTripper{Fn: func(*stdhttp.Request) (*stdhttp.Response, error) {
		buf := bytes.NewBuffer(nil)
		if err := json.NewEncoder(buf).Encode(response); err != nil {
			return nil, err
		}
		return &stdhttp.Response{
			StatusCode: status,
			Body:       io.NopCloser(buf),
			Header:     make(stdhttp.Header),
		}, nil
	}}
}

func testCoderWithRoundtripFunc(rt stdhttp.RoundTripper) geocode.Geocoder {
	testHttpClient := http.New(logger.Discard())
	testHttpClient.Transport = rt
	return New(testHttpClient, "test-key")
}
