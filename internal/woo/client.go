// Package woo pushes order-status updates into the WooCommerce backend.
package woo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

type Client struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	HTTPClient     *http.Client
	log            *zap.Logger
}

func NewClient(baseURL, consumerKey, consumerSecret string, log *zap.Logger) *Client {
	return &Client{
		BaseURL:        baseURL,
		ConsumerKey:    consumerKey,
		ConsumerSecret: consumerSecret,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// UpdateOrderStatus PUTs the new status onto the backend's order resource.
// It reports success as a boolean and never returns an error: webhook
// processing must acknowledge the sender even when the backend is down, so
// failures here are logged and swallowed.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID, status, transactionID string) bool {
	if c.ConsumerKey == "" || c.ConsumerSecret == "" {
		c.log.Warn("order update skipped: backend credentials not configured",
			zap.String("order_id", orderID))
		return false
	}

	update := OrderUpdate{
		Status:   status,
		MetaData: []MetaData{{Key: metaPaymentStatus, Value: status}},
	}
	if transactionID != "" {
		update.TransactionID = transactionID
		update.MetaData = append(update.MetaData, MetaData{Key: metaPaymentIntent, Value: transactionID})
	}

	jsonBody, err := json.Marshal(update)
	if err != nil {
		c.log.Error("failed to marshal order update", zap.Error(err), zap.String("order_id", orderID))
		return false
	}

	endpoint := fmt.Sprintf("%s/wp-json/wc/v3/orders/%s", c.BaseURL, url.PathEscape(orderID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		c.log.Error("failed to create order update request", zap.Error(err), zap.String("order_id", orderID))
		return false
	}

	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.ConsumerKey, c.ConsumerSecret)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.log.Error("order update request failed", zap.Error(err), zap.String("order_id", orderID))
		return false
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error("failed to read order update response", zap.Error(err), zap.String("order_id", orderID))
		return false
	}

	if resp.StatusCode >= 400 {
		c.log.Error("backend rejected order update",
			zap.String("order_id", orderID),
			zap.String("status", status),
			zap.Int("http_status", resp.StatusCode),
			zap.ByteString("body", respBody))
		return false
	}

	c.log.Info("order status updated",
		zap.String("order_id", orderID),
		zap.String("status", status))
	return true
}
