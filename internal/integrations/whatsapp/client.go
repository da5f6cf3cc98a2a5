package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент отправки сообщений через Meta Business API
// Форматирование номеров телефонов - ответственность транспорта,
// вызывающие стороны передают номер как есть
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр WhatsApp клиента
func NewClient(cfg Config, timeout time.Duration, log Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// VerifyToken возвращает verify token для проверки webhook подписки
func (c *Client) VerifyToken() string {
	return c.cfg.WebhookVerifyToken
}

// SendMessage отправляет текстовое сообщение на номер to
// Текст сформирован вызывающей стороной; клиент отвечает только за доставку
func (c *Client) SendMessage(ctx context.Context, to string, text string) error {
	url := fmt.Sprintf("%s/%s/messages", c.cfg.GraphAPIBaseURL, c.cfg.PhoneNumberID)

	payload := sendMessageRequest{
		MessagingProduct: "whatsapp",
		To:               formatPhoneNumber(to),
		Type:             "text",
		Text:             messageText{Body: text},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)

		var errResp ErrorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error.Message != "" {
			return fmt.Errorf("%w: status %d: %s", ErrSendFailed, resp.StatusCode, errResp.Error.Message)
		}
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	c.log.Info("WhatsApp message sent to %s", to)
	return nil
}

// formatPhoneNumber приводит номер к формату Graph API (только цифры, с кодом страны)
// Бразильские номера: 55 + 10-11 цифр
func formatPhoneNumber(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	// Если код страны не указан, добавляем код Бразилии
	if !strings.HasPrefix(cleaned, "55") {
		cleaned = "55" + cleaned
	}

	return cleaned
}
