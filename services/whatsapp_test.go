package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(url string) *WhatsAppGatewayClient {
	return &WhatsAppGatewayClient{
		baseURL:    url,
		secret:     []byte("gateway-secret"),
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestSendTextSignsGatewayToken(t *testing.T) {
	var gotAuth string
	var gotMsg gatewayMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotMsg))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := newTestGateway(srv.URL).SendText(context.Background(), "2348012345678@c.us", "hello")
	require.NoError(t, err)

	assert.Equal(t, "2348012345678@c.us", gotMsg.To)
	assert.Equal(t, "hello", gotMsg.Body)

	require.True(t, strings.HasPrefix(gotAuth, "Bearer "))
	token, err := jwt.ParseWithClaims(
		strings.TrimPrefix(gotAuth, "Bearer "),
		&jwt.StandardClaims{},
		func(token *jwt.Token) (interface{}, error) { return []byte("gateway-secret"), nil },
	)
	require.NoError(t, err)
	require.True(t, token.Valid)
	claims := token.Claims.(*jwt.StandardClaims)
	assert.Equal(t, "taja-backend", claims.Issuer)
}

func TestSendMediaInlinesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banner.png")
	require.NoError(t, os.WriteFile(path, []byte("png bytes"), 0o644))

	var gotMsg gatewayMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotMsg))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := newTestGateway(srv.URL).SendMedia(context.Background(), "2348012345678@c.us", path, "Welcome!")
	require.NoError(t, err)

	assert.Equal(t, "Welcome!", gotMsg.Caption)
	assert.Equal(t, "banner.png", gotMsg.Filename)
	assert.Equal(t, "image/png", gotMsg.MimeType)

	decoded, err := base64.StdEncoding.DecodeString(gotMsg.Media)
	require.NoError(t, err)
	assert.Equal(t, []byte("png bytes"), decoded)
}

func TestSendTextGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("whatsapp session disconnected"))
	}))
	defer srv.Close()

	err := newTestGateway(srv.URL).SendText(context.Background(), "234@c.us", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestSendMediaMissingFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("gateway should not be called when the file is missing")
	}))
	defer srv.Close()

	err := newTestGateway(srv.URL).SendMedia(context.Background(), "234@c.us", "/no/such/file.png", "Welcome!")
	assert.Error(t, err)
}
