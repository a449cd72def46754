package fxapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// indicatorDateLayout формат даты в пути запроса
const indicatorDateLayout = "02-01-2006"

// Client клиент API индикаторов с курсом доллара в CLP.
// Повторы не выполняются: политика повторов остается за вызывающим.
type Client struct {
	httpClient *resty.Client
	indicator  string
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: client,
		indicator:  "dolar",
		log:        log,
	}
}

// GetRate получает курс "CLP за 1 USD", опубликованный на дату
func (c *Client) GetRate(ctx context.Context, day types.Date) (float64, error) {
	path := fmt.Sprintf("/%s/%s", c.indicator, day.Time().Format(indicatorDateLayout))

	var body indicatorResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&body).
		Get(path)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return 0, fmt.Errorf("%w: %s", ErrRateNotFound, day)
	default:
		return 0, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode(), resp.String())
	}

	if len(body.Serie) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrRateNotFound, day)
	}

	rate := body.Serie[0].Value
	if rate <= 0 {
		return 0, fmt.Errorf("%w: non-positive rate %v for %s", ErrInvalidResponse, rate, day)
	}

	c.log.Info("fxapi: rate for %s = %v", day, rate)
	return rate, nil
}
