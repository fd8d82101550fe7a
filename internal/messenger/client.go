// Package messenger предоставляет клиент внешнего сервиса генерации
// сообщений для клиентов.
package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmeshcher/orderdesk-system/internal/model"
)

// Client инкапсулирует HTTP-взаимодействие с сервисом генерации сообщений.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type approvalRequest struct {
	OrderID      string `json:"order_id"`
	CustomerName string `json:"customer_name"`
	ProductName  string `json:"product_name"`
}

type approvalResponse struct {
	Message string `json:"message"`
}

// NewClient создаёт HTTP-клиент сервиса генерации сообщений по указанному адресу.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// GenerateApprovalMessage запрашивает текст сообщения для клиента по
// согласованному заказу. Вызывающая сторона при любой ошибке обязана
// использовать FallbackMessage.
func (c *Client) GenerateApprovalMessage(ctx context.Context, order model.Order) (string, error) {
	if c == nil || c.baseURL == "" {
		return "", fmt.Errorf("messenger client not configured")
	}

	base := c.baseURL
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}

	url := base + "/api/messages/approval"

	body, err := json.Marshal(approvalRequest{
		OrderID:      order.ID,
		CustomerName: order.CustomerName,
		ProductName:  order.ProductName,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result approvalResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if result.Message == "" {
		return "", fmt.Errorf("empty message in response")
	}

	return result.Message, nil
}

// FallbackMessage строит детерминированный текст сообщения о согласовании
// заказа. Используется, когда внешний сервис недоступен или вернул ошибку.
func FallbackMessage(order model.Order) string {
	return fmt.Sprintf(
		"Dear %s,\n\nYour order #%s for %q has been approved and is now being processed. "+
			"We will notify you once it is ready for shipment.\n\nThank you for your business!",
		order.CustomerName, order.ID, order.ProductName,
	)
}
