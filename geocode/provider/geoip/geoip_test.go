// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geoip

import (
	"errors"
	stdhttp "net/http"
	"testing"

	"github.com/wneessen/geokit/geo"
	"github.com/wneessen/geokit/geocode"
	"github.com/wneessen/geokit/internal/http"
	"github.com/wneessen/geokit/internal/logger"
	"github.com/wneessen/geokit/internal/testhelper"
)

const (
	sugarGroveFile = "../../../testdata/geoip_sugargrove.json"
	testIP         = "12.215.42.19"
)

func TestNew(t *testing.T) {
	t.Run("provider name is correct", func(t *testing.T) {
		coder := New(http.New(logger.Discard()))
		if coder.Name() != name {
			t.Errorf("expected provider name to be %q, got %q", name, coder.Name())
		}
	})
}

func TestGeoIP_Geocode(t *testing.T) {
	t.Run("geocoding an IP succeeds", func(t *testing.T) {
		recorder := new(testhelper.RequestRecorder)
		coder := testCoderWithRoundtripFunc(recorder.Record(testhelper.FileResponse(t, sugarGroveFile)))
		location := coder.Geocode(t.Context(), testIP)
		if !location.Success {
			t.Fatalf("expected lookup to succeed, got: %s", location.Err)
		}
		if location.City() != "Sugar Grove" || location.State != "IL" || location.Zip != "60554" {
			t.Errorf("unexpected components %q/%q/%q", location.City(), location.State, location.Zip)
		}
		if !location.Equal(geo.Point{Lat: 41.7696, Lng: -88.4588}) {
			t.Errorf("unexpected coordinates %s", location.Point)
		}
		if location.Precision != geo.PrecisionZip {
			t.Errorf("expected precision zip, got %s", location.Precision)
		}
		if path := recorder.Requests()[0].URL.Path; path != "/json/"+testIP {
			t.Errorf("expected request path /json/%s, got %s", testIP, path)
		}
	})
	t.Run("an empty query locates the caller", func(t *testing.T) {
		recorder := new(testhelper.RequestRecorder)
		coder := testCoderWithRoundtripFunc(recorder.Record(testhelper.FileResponse(t, sugarGroveFile)))
		if location := coder.Geocode(t.Context(), ""); !location.Success {
			t.Fatalf("expected lookup to succeed, got: %s", location.Err)
		}
		if path := recorder.Requests()[0].URL.Path; path != "/json/" {
			t.Errorf("expected request path /json/, got %s", path)
		}
	})
	t.Run("precision follows the most specific field", func(t *testing.T) {
		tests := []struct {
			body string
			want geo.Precision
		}{
			{`{"country_code":"US"}`, geo.PrecisionCountry},
			{`{"country_code":"US","region_code":"IL"}`, geo.PrecisionState},
			{`{"country_code":"US","region_code":"IL","city":"Sugar Grove"}`, geo.PrecisionCity},
		}
		for _, tc := range tests {
			coder := testCoderWithRoundtripFunc(testhelper.MockRoundTripper{
				Fn: func(*stdhttp.Request) (*stdhttp.Response, error) {
					return testhelper.Response(200, tc.body), nil
				},
			})
			if got := coder.Geocode(t.Context(), testIP).Precision; got != tc.want {
				t.Errorf("expected precision %s for %s, got %s", tc.want, tc.body, got)
			}
		}
	})
	t.Run("an empty country code is a failure", func(t *testing.T) {
		coder := testCoderWithRoundtripFunc(testhelper.MockRoundTripper{
			Fn: func(*stdhttp.Request) (*stdhttp.Response, error) {
				return testhelper.Response(200, `{"ip":"12.215.42.19","country_code":""}`), nil
			},
		})
		location := coder.Geocode(t.Context(), testIP)
		if !errors.Is(location.Err, ErrUnknownLocation) {
			t.Errorf("expected error to be %s, got %v", ErrUnknownLocation, location.Err)
		}
	})
	t.Run("non-public addresses fail without a request", func(t *testing.T) {
		recorder := new(testhelper.RequestRecorder)
		coder := testCoderWithRoundtripFunc(recorder.Record(testhelper.FileResponse(t, sugarGroveFile)))
		for _, ip := range []string{"10.0.0.1", "127.0.0.1", "::1", "fe80::1"} {
			if location := coder.Geocode(t.Context(), ip); !errors.Is(location.Err, ErrNonPublicIP) {
				t.Errorf("expected error to be %s for %s, got %v", ErrNonPublicIP, ip, location.Err)
			}
		}
		if location := coder.Geocode(t.Context(), "not-an-ip"); !errors.Is(location.Err, ErrInvalidIP) {
			t.Errorf("expected error to be %s, got %v", ErrInvalidIP, location.Err)
		}
		if len(recorder.Requests()) != 0 {
			t.Error("did not expect a request")
		}
	})
	t.Run("geocoding fails", func(t *testing.T) {
		coder := testCoderWithRoundtripFunc(testhelper.MockRoundTripper{
			Fn: func(*stdhttp.Request) (*stdhttp.Response, error) {
				return nil, errors.New("intentionally failing")
			},
		})
		if location := coder.Geocode(t.Context(), testIP); location.Success {
			t.Fatal("expected API request to fail")
		}
	})
	t.Run("API responding with a non-200 response", func(t *testing.T) {
		coder := testCoderWithRoundtripFunc(testhelper.MockRoundTripper{
			Fn: func(*stdhttp.Request) (*stdhttp.Response, error) {
				return testhelper.Response(429, `{}`), nil
			},
		})
		if location := coder.Geocode(t.Context(), testIP); !errors.Is(location.Err, geocode.ErrUnexpectedStatus) {
			t.Errorf("expected error to be %s, got %v", geocode.ErrUnexpectedStatus, location.Err)
		}
	})
}

func TestGeoIP_GeocodeOnline(t *testing.T) {
	testhelper.PerformIntegrationTests(t)
	coder := New(http.New(logger.Discard()))
	if location := coder.Geocode(t.Context(), "8.8.8.8"); !location.Success {
		t.Fatalf("expected lookup to succeed, got: %s", location.Err)
	}
}

func testCoderWithRoundtripFunc(rt stdhttp.RoundTripper) geocode.Geocoder {
	testHttpClient := http.New(logger.Discard())
	testHttpClient.Transport = rt
	return New(testHttpClient)
}
