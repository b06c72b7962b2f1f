package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"checkout-relay/internal/form"

	"github.com/google/uuid"
)

const defaultAPIURL = "https://api.stripe.com/v1"

// fallbackErrorMessage is returned to callers when the processor rejects a
// request without a readable error body.
const fallbackErrorMessage = "payment processor rejected the session request"

type Client struct {
	SecretKey  string
	APIURL     string
	HTTPClient *http.Client
}

func NewClient(secretKey string) *Client {
	return &Client{
		SecretKey: secretKey,
		APIURL:    defaultAPIURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// CreateCheckoutSession opens a hosted payment session. The spec is sent
// form-encoded because the processor's API does not accept JSON bodies.
func (c *Client) CreateCheckoutSession(ctx context.Context, spec form.Dict) (*CheckoutSession, error) {
	body, err := form.Encode(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session spec: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL+"/checkout/sessions", strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Idempotence Key
	req.Header.Set("Idempotency-Key", uuid.New().String())
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(respBody)}
	}

	var session CheckoutSession
	if err := json.Unmarshal(respBody, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if session.URL == "" {
		return nil, fmt.Errorf("session response missing redirect url")
	}

	return &session, nil
}

func errorMessage(body []byte) string {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error.Message == "" {
		return fallbackErrorMessage
	}
	return envelope.Error.Message
}
