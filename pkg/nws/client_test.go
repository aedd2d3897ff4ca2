package nws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const alertFixture = `{
  "@context": [
    "https://geojson.org/geojson-ld/geojson-context.jsonld",
    {
      "@version": "1.1",
      "wx": "https://api.weather.gov/ontology#",
      "@vocab": "https://api.weather.gov/ontology#"
    }
  ],
  "id": "https://api.weather.gov/alerts/NWS-IDP-PROD-1",
  "type": "Feature",
  "geometry": null,
  "properties": {
    "@id": "https://api.weather.gov/alerts/NWS-IDP-PROD-1",
    "@type": "wx:Alert",
    "id": "NWS-IDP-PROD-1",
    "areaDesc": "Strafford, NH; Rockingham, NH",
    "geocode": {
      "SAME": ["033017"],
      "UGC": ["NHZ012"]
    },
    "affectedZones": ["https://api.weather.gov/zones/forecast/NHZ012"],
    "references": [
      {
        "@id": "https://api.weather.gov/alerts/NWS-IDP-PROD-0",
        "identifier": "NWS-IDP-PROD-0",
        "sender": "w-nws.webmaster@noaa.gov",
        "sent": "2022-03-22T09:41:00-04:00"
      }
    ],
    "sent": "2022-03-22T15:41:00-04:00",
    "effective": "2022-03-22T15:41:00-04:00",
    "onset": "2022-03-22T15:41:00-04:00",
    "expires": "2022-03-23T00:00:00-04:00",
    "ends": "2022-03-23T00:00:00-04:00",
    "status": "Actual",
    "messageType": "Update",
    "category": "Met",
    "severity": "Moderate",
    "certainty": "Likely",
    "urgency": "Expected",
    "event": "Wind Advisory",
    "sender": "w-nws.webmaster@noaa.gov",
    "senderName": "NWS Gray ME",
    "headline": "Wind Advisory issued March 22",
    "description": "Gusts up to 50 mph expected.",
    "instruction": "Secure outdoor objects.",
    "response": "Execute",
    "parameters": {
      "AWIPSidentifier": ["NPWGYX"],
      "WMOidentifier": ["WWUS71 KGYX 221941"],
      "NWSheadline": ["WIND ADVISORY IN EFFECT UNTIL MIDNIGHT"],
      "BLOCKCHANNEL": ["EAS", "NWEM", "CMAS"],
      "VTEC": ["/O.CON.KGYX.WI.Y.0009.000000T0000Z-220323T0400Z/"],
      "eventEndingTime": ["2022-03-23T04:00:00+00:00"]
    }
  }
}`

func TestAlert(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/alerts/NWS-IDP-PROD-1", r.URL.Path)
		assert.Equal(t, "(test.example, ops@test.example)", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/geo+json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/geo+json")
		w.Write([]byte(alertFixture))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "(test.example, ops@test.example)")
	alert, err := c.Alert(context.Background(), "NWS-IDP-PROD-1")
	require.NoError(t, err)

	assert.Equal(t, "NWS-IDP-PROD-1", alert.Properties.ID)
	assert.Equal(t, "Wind Advisory issued March 22", alert.Properties.Headline)
	assert.Equal(t, "Gusts up to 50 mph expected.", alert.Properties.Description)
	assert.Equal(t, "Secure outdoor objects.", alert.Properties.Instruction)
	assert.Equal(t, "Strafford, NH; Rockingham, NH", alert.Properties.AreaDesc)
	assert.Equal(t, []string{"033017"}, alert.Properties.Geocode.SAME)
	assert.Equal(t, []string{"NHZ012"}, alert.Properties.Geocode.UGC)
	require.Len(t, alert.Properties.References, 1)
	assert.Equal(t, "NWS-IDP-PROD-0", alert.Properties.References[0].Identifier)
	assert.Equal(t, []string{"NPWGYX"}, alert.Properties.Parameters.AWIPSIdentifier)
	assert.Nil(t, alert.Properties.Parameters.ExpiredReferences)

	require.Len(t, alert.Context, 2)
	assert.Equal(t, "https://geojson.org/geojson-ld/geojson-context.jsonld", alert.Context[0].URI)
	require.NotNil(t, alert.Context[1].Class)
	assert.Equal(t, "1.1", alert.Context[1].Class.Version)
}

func TestAlert_EscapesIdentifier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotContains(t, r.URL.RawPath, "/..")
		w.Write([]byte(alertFixture))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "ua")
	_, err := c.Alert(context.Background(), "urn:oid:2.49.0.1.840.0.1")
	require.NoError(t, err)
}

func TestAlert_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "ua")
	_, err := c.Alert(context.Background(), "NWS-IDP-PROD-MISSING")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestAlert_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "ua")
	_, err := c.Alert(context.Background(), "NWS-IDP-PROD-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse alert")
}

func TestAlert_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(nil, srv.URL, "ua")
	_, err := c.Alert(context.Background(), "NWS-IDP-PROD-1")
	require.Error(t, err)
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(nil, "", "ua")
	assert.Equal(t, "https://api.weather.gov", c.baseURL)
	assert.NotNil(t, c.httpClient)
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	c := NewClient(nil, "https://api.weather.gov/", "ua")
	assert.Equal(t, "https://api.weather.gov", c.baseURL)
}
