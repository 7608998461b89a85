package paygateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// CheckoutSignature вычисляет подпись подтверждения оплаты:
// HMAC-SHA256 над строкой "{orderID}|{paymentID}" с секретным ключом
func CheckoutSignature(orderID, gatewayPaymentID, keySecret string) string {
	mac := hmac.New(sha256.New, []byte(keySecret))
	fmt.Fprintf(mac, "%s|%s", orderID, gatewayPaymentID)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyCheckoutSignature сверяет клиентскую подпись подтверждения оплаты
// Сравнение за постоянное время
func VerifyCheckoutSignature(orderID, gatewayPaymentID, signature, keySecret string) bool {
	expected := CheckoutSignature(orderID, gatewayPaymentID, keySecret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// WebhookSignature вычисляет подпись вебхука:
// HMAC-SHA256 над сырыми байтами тела запроса с webhook-секретом
func WebhookSignature(body []byte, webhookSecret string) string {
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyWebhookSignature сверяет подпись вебхука по сырому телу запроса
func VerifyWebhookSignature(body []byte, signature, webhookSecret string) bool {
	expected := WebhookSignature(body, webhookSecret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
