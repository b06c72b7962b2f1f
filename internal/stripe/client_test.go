package stripe

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"checkout-relay/internal/form"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(url string) *Client {
	c := NewClient("sk_test_123")
	c.APIURL = url
	return c
}

func TestCreateCheckoutSession(t *testing.T) {
	var gotPath, gotAuth, gotContentType, gotIdempotencyKey, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotIdempotencyKey = r.Header.Get("Idempotency-Key")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_1","url":"https://pay.example.com/cs_test_1","status":"open"}`))
	}))
	defer srv.Close()

	session, err := testClient(srv.URL).CreateCheckoutSession(context.Background(), form.Dict{
		{Key: "mode", Value: "payment"},
		{Key: "metadata", Value: form.Dict{{Key: "order_id", Value: "42"}}},
	})
	require.NoError(t, err)

	assert.Equal(t, "cs_test_1", session.ID)
	assert.Equal(t, "https://pay.example.com/cs_test_1", session.URL)
	assert.Equal(t, "/checkout/sessions", gotPath)
	assert.Equal(t, "Bearer sk_test_123", gotAuth)
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.NotEmpty(t, gotIdempotencyKey)
	assert.Equal(t, "mode=payment&metadata%5Border_id%5D=42", gotBody)
}

func TestCreateCheckoutSessionAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"type":"card_error","message":"Your card was declined."}}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CreateCheckoutSession(context.Background(), form.Dict{{Key: "mode", Value: "payment"}})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusPaymentRequired, apiErr.StatusCode)
	assert.Equal(t, "Your card was declined.", apiErr.Message)
}

func TestCreateCheckoutSessionErrorFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CreateCheckoutSession(context.Background(), form.Dict{{Key: "mode", Value: "payment"}})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, fallbackErrorMessage, apiErr.Message)
}

func TestCreateCheckoutSessionMissingURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"cs_test_1"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CreateCheckoutSession(context.Background(), form.Dict{{Key: "mode", Value: "payment"}})
	assert.Error(t, err)
}
