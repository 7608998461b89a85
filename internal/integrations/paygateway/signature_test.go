package paygateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyCheckoutSignature(t *testing.T) {
	secret := "test-key-secret"
	signature := CheckoutSignature("order_1", "pay_1", secret)

	assert.True(t, VerifyCheckoutSignature("order_1", "pay_1", signature, secret))

	assert.False(t, VerifyCheckoutSignature("order_2", "pay_1", signature, secret))
	assert.False(t, VerifyCheckoutSignature("order_1", "pay_2", signature, secret))
	assert.False(t, VerifyCheckoutSignature("order_1", "pay_1", signature, "other-secret"))
	assert.False(t, VerifyCheckoutSignature("order_1", "pay_1", "", secret))
}

func TestVerifyWebhookSignature(t *testing.T) {
	secret := "webhook-secret"
	body := []byte(`{"event":"payment.captured","payload":{"order_id":"order_1"}}`)

	signature := WebhookSignature(body, secret)

	assert.True(t, VerifyWebhookSignature(body, signature, secret))

	// Любое изменение тела инвалидирует подпись
	tampered := []byte(`{"event":"payment.captured","payload":{"order_id":"order_2"}}`)
	assert.False(t, VerifyWebhookSignature(tampered, signature, secret))

	assert.False(t, VerifyWebhookSignature(body, signature, "other-secret"))
	assert.False(t, VerifyWebhookSignature(body, "", secret))
}
