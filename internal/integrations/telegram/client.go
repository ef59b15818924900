package telegram

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

// Config учётные данные и параметры доставки.
// Передаётся явно при конструировании клиента; обязательные поля проверяются
// до любой сетевой попытки.
type Config struct {
	Token     string
	ChatID    string
	ParseMode string
}

// Validate проверяет наличие обязательных учётных данных
func (c Config) Validate() error {
	if c.Token == "" {
		return ErrMissingToken
	}
	if c.ChatID == "" {
		return ErrMissingChatID
	}
	return nil
}

// Client клиент Bot API для доставки уведомлений
type Client struct {
	baseURL    string
	cfg        Config
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента Telegram
func NewClient(baseURL string, cfg Config, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		cfg:     cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendMessage отправляет сообщение в сконфигурированный чат, разбивая его на
// куски при превышении лимита Bot API. Куски доставляются последовательно;
// возвращается ответ на последний из них. Ошибка любого куска прерывает отправку.
func (c *Client) SendMessage(ctx context.Context, text string) (*SendMessageResponse, error) {
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}

	chunks := SplitMessage(text, MessageLimit)
	if len(chunks) > 1 {
		c.log.Info("Telegram: message exceeds limit, sending %d chunks", len(chunks))
	}

	var last *SendMessageResponse
	for _, chunk := range chunks {
		resp, err := c.sendChunk(ctx, chunk)
		if err != nil {
			return nil, err
		}
		last = resp
	}

	return last, nil
}

func (c *Client) sendChunk(ctx context.Context, text string) (*SendMessageResponse, error) {
	payload := sendMessageRequest{
		ChatID:                c.cfg.ChatID,
		Text:                  text,
		DisableWebPagePreview: true,
		ParseMode:             c.cfg.ParseMode,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrTransport, err)
	}

	requestURL := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.cfg.Token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: unexpected status code %d: %s",
			ErrTransport, resp.StatusCode, errorDetail(resp.Body))
	}

	var parsed SendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrTransport, err)
	}
	if !parsed.OK {
		return nil, fmt.Errorf("%w: delivery rejected: %s", ErrTransport, parsed.Description)
	}

	return &parsed, nil
}

// errorDetail вытаскивает поле description из тела ошибки Bot API,
// при нечитаемом JSON возвращает сырое тело
func errorDetail(body io.Reader) string {
	raw, _ := io.ReadAll(body)

	var parsed SendMessageResponse
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Description != "" {
		return parsed.Description
	}
	return string(raw)
}

// Close освобождает простаивающие соединения клиента
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
