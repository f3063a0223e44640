package notifharbor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с сервисом уведомлений NotifHarbor
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotifHarbor
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет уведомление
func (c *Client) Send(ctx context.Context, notification Notification) error {
	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)

	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal notification: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusCreated:
		return nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}
}

// Notify отправляет уведомление с graceful degradation
// Недоступность сервиса уведомлений не должна ронять бизнес-операцию:
// ошибка логируется и возвращается как ErrServiceDegraded
func (c *Client) Notify(ctx context.Context, notification Notification) error {
	// nil-клиент означает выключенные уведомления
	if c == nil {
		return nil
	}

	if notification.OccurredAt.IsZero() {
		notification.OccurredAt = time.Now().UTC()
	}

	if err := c.Send(ctx, notification); err != nil {
		c.log.Error("NotifHarbor unavailable, applying graceful degradation for event=%s booking_id=%d: %v",
			notification.Event, notification.BookingID, err)
		return fmt.Errorf("%w: event=%s, error=%v", ErrServiceDegraded, notification.Event, err)
	}

	c.log.Info("Notification sent: event=%s customer_id=%d booking_id=%d",
		notification.Event, notification.CustomerID, notification.BookingID)
	return nil
}
