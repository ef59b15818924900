package studioapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/m04kA/SMC-SpotWatcher/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент публичного API расписания студии
type Client struct {
	baseURL          string
	unitList         string
	activityList     string
	timezoneFromUnit string
	httpClient       *http.Client
	log              Logger
}

// NewClient создает новый экземпляр клиента API студии.
// Параметры unit/activity/timezone — скоуп-константы endpoint'а агенды.
func NewClient(baseURL, unitList, activityList, timezoneFromUnit string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:          baseURL,
		unitList:         unitList,
		activityList:     activityList,
		timezoneFromUnit: timezoneFromUnit,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// FetchSchedule загружает записи агенды за окно дат, склеивая results всех
// страниц в порядке их следования. Ошибка любой страницы прерывает загрузку.
func (c *Client) FetchSchedule(ctx context.Context, window Window, pages []int) ([]ScheduleEntry, error) {
	aggregated := make([]ScheduleEntry, 0)

	for _, page := range pages {
		entries, err := c.fetchSchedulePage(ctx, window, page)
		if err != nil {
			return nil, err
		}
		aggregated = append(aggregated, entries...)
	}

	return aggregated, nil
}

func (c *Client) fetchSchedulePage(ctx context.Context, window Window, page int) ([]ScheduleEntry, error) {
	params := url.Values{}
	params.Set("sort", "start_time")
	params.Set("is_canceled", "false")
	params.Set("unit_list", c.unitList)
	params.Set("activity_list", c.activityList)
	params.Set("timezone_from_unit", c.timezoneFromUnit)
	params.Set("page", fmt.Sprintf("%d", page))
	params.Set("date_from", window.From.Format(domain.DateFormat))
	params.Set("date_to", window.To.Format(domain.DateFormat))

	requestURL := fmt.Sprintf("%s/events/schedule/?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrTransport, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: schedule page %d: unexpected status code %d: %s",
			ErrTransport, page, resp.StatusCode, string(body))
	}

	var payload schedulePage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode schedule page %d: %v", ErrInvalidResponse, page, err)
	}

	// 'results' обязан быть списком; отсутствие поля или другая форма — нарушение контракта
	if !isJSONArray(payload.Results) {
		return nil, fmt.Errorf("%w: schedule page %d: 'results' is not a list", ErrInvalidResponse, page)
	}

	var entries []ScheduleEntry
	if err := json.Unmarshal(payload.Results, &entries); err != nil {
		return nil, fmt.Errorf("%w: failed to decode schedule entries on page %d: %v", ErrInvalidResponse, page, err)
	}

	return entries, nil
}

// FetchEventDetail загружает полный payload события по его токену
func (c *Client) FetchEventDetail(ctx context.Context, token string) (*EventDetail, error) {
	requestURL := fmt.Sprintf("%s/events/events/%s/", c.baseURL, url.PathEscape(token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrTransport, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: event %s: unexpected status code %d: %s",
			ErrTransport, token, resp.StatusCode, string(body))
	}

	var detail EventDetail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return nil, fmt.Errorf("%w: failed to decode event %s: %v", ErrInvalidResponse, token, err)
	}

	return &detail, nil
}

// Close освобождает простаивающие соединения клиента.
// Вызывается владельцем клиента; пайплайн чужие клиенты не закрывает.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

func isJSONArray(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return b == '['
		}
	}
	return false
}
