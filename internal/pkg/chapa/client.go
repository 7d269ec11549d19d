package chapa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	DefaultBaseURL = "https://api.chapa.co"

	// Outbound calls never wait longer than this; a slow gateway is
	// treated the same as a failed verification.
	requestTimeout = 5 * time.Second
)

// ErrVerificationFailed covers every way the gateway can decline: a
// non-success response body, a transport error or a timeout.
var ErrVerificationFailed = errors.New("payment verification failed")

// VerifyData is the transaction detail Chapa returns on verification.
type VerifyData struct {
	Reference string  `json:"reference"`
	TxRef     string  `json:"tx_ref"`
	Status    string  `json:"status"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
}

type verifyResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    *VerifyData `json:"data"`
}

// Client calls the Chapa transaction API.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

// NewClient builds a client for the given secret key. An empty baseURL
// falls back to the production API.
func NewClient(secretKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:   baseURL,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Verify asks Chapa whether the transaction identified by txRef succeeded.
// Any outcome other than an explicit "success" is ErrVerificationFailed.
func (c *Client) Verify(ctx context.Context, txRef string) (*VerifyData, error) {
	url := fmt.Sprintf("%s/v1/transaction/verify/%s", c.baseURL, txRef)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}
	defer resp.Body.Close()

	var body verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}

	if resp.StatusCode != http.StatusOK || body.Status != "success" || body.Data == nil {
		return nil, fmt.Errorf("%w: gateway status %q", ErrVerificationFailed, body.Status)
	}

	return body.Data, nil
}
