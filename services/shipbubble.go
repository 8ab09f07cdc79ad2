package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"taja-backend/models"
)

// ShipbubbleService validates store addresses against the Shipbubble
// logistics API.
type ShipbubbleService struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewShipbubbleService creates a new instance configured from the environment
func NewShipbubbleService() *ShipbubbleService {
	baseURL := os.Getenv("SHIPBUBBLE_API_URL")
	if baseURL == "" {
		baseURL = "https://api.shipbubble.com/v1"
	}
	apiKey := os.Getenv("SHIPBUBBLE_API_KEY")
	if apiKey == "" {
		panic("SHIPBUBBLE_API_KEY is not set in environment variables")
	}

	return &ShipbubbleService{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// AddressValidationRequest is the payload sent to the address validator.
type AddressValidationRequest struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// AddressValidationResult carries the validator's verdict. Status is
// "success" when the address resolved; any other status means the address
// could not be validated and Data is empty.
type AddressValidationResult struct {
	Status  string                    `json:"status"`
	Message string                    `json:"message"`
	Data    *models.AddressValidation `json:"data"`
}

// ValidateAddress calls the Shipbubble address validation endpoint. A
// transport or decoding failure returns an error; a resolved call with a
// non-success status returns a result the caller must inspect.
func (s *ShipbubbleService) ValidateAddress(ctx context.Context, req AddressValidationRequest) (*AddressValidationResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/shipping/address/validate", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to reach address validator: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("address validator returned %d", resp.StatusCode)
	}

	var result AddressValidationResult
	if err := json.Unmarshal(responseBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &result, nil
}
