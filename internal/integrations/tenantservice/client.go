package tenantservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client клиент сервиса дилеров
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ResolveWorkshop определяет мастерскую для записи.
// Если workshopID nil, сервис дилеров возвращает мастерскую по умолчанию.
func (c *Client) ResolveWorkshop(ctx context.Context, dealershipID int64, workshopID *int64) (*Workshop, error) {
	endpoint := fmt.Sprintf("%s/internal/dealerships/%d/workshop", c.baseURL, dealershipID)
	if workshopID != nil {
		endpoint += "?" + url.Values{"workshopId": {strconv.FormatInt(*workshopID, 10)}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrWorkshopNotFound
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid dealership ID format", ErrInvalidResponse)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var workshop Workshop
	if err := json.NewDecoder(resp.Body).Decode(&workshop); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if workshop.DealershipID != dealershipID {
		c.log.Warn("TenantService returned workshop id=%d of dealership=%d, expected dealership=%d",
			workshop.ID, workshop.DealershipID, dealershipID)
		return nil, ErrWorkshopNotFound
	}
	if !workshop.IsActive {
		c.log.Info("Workshop id=%d of dealership=%d is inactive", workshop.ID, dealershipID)
		return nil, ErrWorkshopNotFound
	}

	return &workshop, nil
}
