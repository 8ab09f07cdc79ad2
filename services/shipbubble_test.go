package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShipbubble(url string) *ShipbubbleService {
	return &ShipbubbleService{
		baseURL:    url,
		apiKey:     "test-key",
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestValidateAddressSuccess(t *testing.T) {
	var gotAuth string
	var gotBody AddressValidationRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/shipping/address/validate", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "success",
			"message": "Address validated",
			"data": {
				"address_code": 98765,
				"address": "12 Allen Avenue, Ikeja, Lagos",
				"city": "Ikeja",
				"state": "Lagos",
				"country_code": "NG",
				"latitude": 6.6018,
				"longitude": 3.3515
			}
		}`))
	}))
	defer srv.Close()

	result, err := newTestShipbubble(srv.URL).ValidateAddress(context.Background(), AddressValidationRequest{
		Phone:   "2348098765432",
		Email:   "bisi@x.com",
		Name:    "Bisi",
		Address: "12 Allen Avenue, Ikeja, Lagos",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "2348098765432", gotBody.Phone)
	assert.Equal(t, "success", result.Status)
	require.NotNil(t, result.Data)
	assert.Equal(t, 98765, result.Data.AddressCode)
	assert.Equal(t, "Ikeja", result.Data.City)
}

func TestValidateAddressRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"status": "error", "message": "Address could not be resolved"}`))
	}))
	defer srv.Close()

	result, err := newTestShipbubble(srv.URL).ValidateAddress(context.Background(), AddressValidationRequest{
		Address: "nowhere",
	})

	// A rejected address is a result, not an error
	require.NoError(t, err)
	assert.NotEqual(t, "success", result.Status)
	assert.Nil(t, result.Data)
}

func TestValidateAddressServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestShipbubble(srv.URL).ValidateAddress(context.Background(), AddressValidationRequest{})
	assert.Error(t, err)
}
