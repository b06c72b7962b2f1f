package stripe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	payload := []byte(`{"type":"checkout.session.completed"}`)
	secret := "whsec_test"
	header := Sign(payload, "1700000000", secret)

	assert.NoError(t, VerifySignature(payload, header, secret))
}

func TestVerifySignatureWrongSecret(t *testing.T) {
	payload := []byte(`{"type":"checkout.session.completed"}`)
	header := Sign(payload, "1700000000", "whsec_test")

	assert.ErrorIs(t, VerifySignature(payload, header, "whsec_other"), ErrSignatureMismatch)
}

func TestVerifySignatureTamperedPayload(t *testing.T) {
	header := Sign([]byte(`{"amount":100}`), "1700000000", "whsec_test")

	assert.ErrorIs(t, VerifySignature([]byte(`{"amount":999}`), header, "whsec_test"), ErrSignatureMismatch)
}

func TestVerifySignatureMalformedHeader(t *testing.T) {
	payload := []byte("{}")

	assert.ErrorIs(t, VerifySignature(payload, "", "whsec_test"), ErrMissingSignature)
	assert.ErrorIs(t, VerifySignature(payload, "t=1700000000", "whsec_test"), ErrMissingSignature)
	assert.ErrorIs(t, VerifySignature(payload, "v1=deadbeef", "whsec_test"), ErrMissingSignature)
}

func TestVerifySignatureSecretRotation(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	stale := Sign(payload, "1700000000", "whsec_old")
	fresh := Sign(payload, "1700000000", "whsec_new")
	// Sender includes signatures for both secrets during rotation.
	header := stale + ",v1=" + fresh[len("t=1700000000,v1="):]

	assert.NoError(t, VerifySignature(payload, header, "whsec_new"))
}
