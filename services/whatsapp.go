package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// WhatsAppGatewayClient delivers messages through the chatbot gateway
// service, which holds the live WhatsApp connection. Every request is
// authorized with a short-lived token signed with the shared gateway secret.
type WhatsAppGatewayClient struct {
	baseURL    string
	secret     []byte
	httpClient *http.Client
}

// NewWhatsAppGatewayClient configures the client from the environment
func NewWhatsAppGatewayClient() *WhatsAppGatewayClient {
	baseURL := os.Getenv("WA_GATEWAY_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3001"
	}
	secret := os.Getenv("WA_GATEWAY_SECRET")
	if secret == "" {
		panic("WA_GATEWAY_SECRET is not set in environment variables")
	}

	return &WhatsAppGatewayClient{
		baseURL: baseURL,
		secret:  []byte(secret),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// gatewayToken signs a short-lived service token for one gateway request.
func (c *WhatsAppGatewayClient) gatewayToken() (string, error) {
	claims := jwt.StandardClaims{
		Issuer:    "taja-backend",
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: time.Now().Add(time.Minute).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

type gatewayMessage struct {
	To       string `json:"to"`
	Body     string `json:"body,omitempty"`
	Caption  string `json:"caption,omitempty"`
	Media    string `json:"media,omitempty"` // base64-encoded file content
	MimeType string `json:"mimeType,omitempty"`
	Filename string `json:"filename,omitempty"`
}

func (c *WhatsAppGatewayClient) post(ctx context.Context, msg gatewayMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	token, err := c.gatewayToken()
	if err != nil {
		return fmt.Errorf("failed to sign gateway token: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach whatsapp gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("whatsapp gateway returned %d: %s", resp.StatusCode, respBody)
	}
	return nil
}

// SendText delivers a plain text message to a suffixed WhatsApp address.
func (c *WhatsAppGatewayClient) SendText(ctx context.Context, to, body string) error {
	return c.post(ctx, gatewayMessage{To: to, Body: body})
}

// SendMedia delivers a local media file with a caption. The file is inlined
// base64 in the gateway request; banners are small enough for that.
func (c *WhatsAppGatewayClient) SendMedia(ctx context.Context, to, filePath, caption string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read media file: %w", err)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(filePath))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	return c.post(ctx, gatewayMessage{
		To:       to,
		Caption:  caption,
		Media:    base64.StdEncoding.EncodeToString(data),
		MimeType: mimeType,
		Filename: filepath.Base(filePath),
	})
}
