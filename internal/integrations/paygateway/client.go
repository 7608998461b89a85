package paygateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент платежного шлюза (orders + refunds REST API)
// Аутентификация - Basic Auth по паре ключей
type Client struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента платежного шлюза
func NewClient(baseURL, keyID, keySecret string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		keyID:     keyID,
		keySecret: keySecret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CreateOrder создает заказ в шлюзе
// Сумма в пайсах, receipt - внутренний идентификатор для сверки
func (c *Client) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*Order, error) {
	var order Order
	if err := c.post(ctx, "/orders", req, &order, ErrOrderCreateFailed); err != nil {
		return nil, err
	}

	c.log.Info("Gateway order created: order_id=%s, amount=%d %s", order.ID, order.AmountPaise, order.Currency)
	return &order, nil
}

// CreateRefund выдает возврат по платежу шлюза
func (c *Client) CreateRefund(ctx context.Context, gatewayPaymentID string, req *CreateRefundRequest) (*RefundResult, error) {
	path := fmt.Sprintf("/payments/%s/refund", gatewayPaymentID)

	var result RefundResult
	if err := c.post(ctx, path, req, &result, ErrRefundFailed); err != nil {
		return nil, err
	}

	c.log.Info("Gateway refund issued: refund_id=%s, payment_id=%s, amount=%d",
		result.GatewayRefundID, gatewayPaymentID, result.AmountPaise)
	return &result, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}, failErr error) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)

		var gatewayErr ErrorResponse
		if err := json.Unmarshal(respBody, &gatewayErr); err == nil && gatewayErr.Error.Code != "" {
			return fmt.Errorf("%w: %s - %s", failErr, gatewayErr.Error.Code, gatewayErr.Error.Description)
		}
		return fmt.Errorf("%w: unexpected status code %d: %s", failErr, resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
