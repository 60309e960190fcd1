package nasapower

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/datakit/wefarm/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLocation = schema.Location{
	Country: "kenya", Place: "Nairobi", Latitude: -1.2921, Longitude: 36.8219,
}

// TestDaily fetches a canned POWER payload and checks parsing plus the
// request parameters.
func TestDaily(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"properties": {
				"parameter": {
					"T2M": {"20150101": 24.5, "20150102": -999, "20150103": 25.1},
					"PRECTOTCORR": {"20150101": 0.0, "20150102": 12.3, "20150103": 1.1}
				}
			}
		}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(5*time.Second, srv.URL)
	start := time.Date(2015, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2015, time.January, 3, 0, 0, 0, 0, time.UTC)

	series, err := client.Daily(context.Background(), testLocation, start, end,
		[]schema.WeatherParameter{schema.TempMean, schema.Precipitation})
	require.NoError(t, err)

	assert.Equal(t, "T2M,PRECTOTCORR", gotQuery["parameters"])
	assert.Equal(t, "AG", gotQuery["community"])
	assert.Equal(t, "20150101", gotQuery["start"])
	assert.Equal(t, "20150103", gotQuery["end"])
	assert.Equal(t, "JSON", gotQuery["format"])
	assert.Equal(t, "-1.2921", gotQuery["latitude"])
	assert.Equal(t, "36.8219", gotQuery["longitude"])

	require.Contains(t, series, schema.TempMean)
	temp := series[schema.TempMean]
	assert.Equal(t, 3, temp.Len())

	v, ok := temp.At(start)
	require.True(t, ok)
	assert.InDelta(t, 24.5, v, 0.001)

	// The sentinel day is present but NaN.
	v, ok = temp.At(start.AddDate(0, 0, 1))
	require.True(t, ok)
	assert.True(t, math.IsNaN(v))

	precip := series[schema.Precipitation]
	v, ok = precip.At(start.AddDate(0, 0, 1))
	require.True(t, ok)
	assert.InDelta(t, 12.3, v, 0.001)
}

// TestDailyServerError surfaces the status code and body.
func TestDailyServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(5*time.Second, srv.URL)
	_, err := client.Daily(context.Background(), testLocation,
		time.Now().AddDate(0, 0, -1), time.Now(), []schema.WeatherParameter{schema.TempMean})
	require.Error(t, err)
	assert.ErrorContains(t, err, "status 429")
	assert.ErrorContains(t, err, "rate limited")
}

// TestDailyEmptyResponse rejects payloads without parameter data.
func TestDailyEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"properties":{"parameter":{}}}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(5*time.Second, srv.URL)
	_, err := client.Daily(context.Background(), testLocation,
		time.Now().AddDate(0, 0, -1), time.Now(), []schema.WeatherParameter{schema.TempMean})
	assert.ErrorContains(t, err, "no parameter data")
}

// TestDailyContextCancel aborts an in-flight request.
func TestDailyContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClientWithBaseURL(5*time.Second, srv.URL)
	_, err := client.Daily(ctx, testLocation,
		time.Now().AddDate(0, 0, -1), time.Now(), []schema.WeatherParameter{schema.TempMean})
	assert.Error(t, err)
}
