package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_FetchRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/exec", r.URL.Path)
		_, _ = w.Write([]byte(`[{"ID":"1","Name":"Apollo Hospital","Location":"Chennai","Lat":"13.06","Long":"80.25","Treatment":"Cardiology, Oncology","Price":"5000","Rating":"4.5","Type":"Private"}]`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL+"/exec/", time.Second)
	rows, err := client.FetchRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Apollo Hospital", rows[0].Name)
	assert.Equal(t, "13.06", rows[0].Lat)
}

func TestHTTPClient_FetchRows_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewHTTPClient(server.URL, time.Second).FetchRows(context.Background())
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
}

func TestHTTPClient_SubmitBooking(t *testing.T) {
	var got BookingRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/booking", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	err := NewHTTPClient(server.URL, time.Second).SubmitBooking(context.Background(), BookingRequest{
		Name: "Asha", Phone: "+91 98765 43210", Email: "asha@example.com",
		Date: "2030-01-02", Time: "10:00", Hospital: "Apollo Hospital",
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha", got.Name)
	assert.Equal(t, "10:00", got.Time)
}
