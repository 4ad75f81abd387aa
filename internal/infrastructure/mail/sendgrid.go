package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"filetag-api/config"
)

type (
	// SendGrid delivers mail through the SendGrid v3 send endpoint.
	SendGrid struct {
		logger *zap.Logger
		apiURL string
		apiKey string
		sender string
		client *http.Client
	}

	address struct {
		Email string `json:"email"`
	}
	personalization struct {
		To []address `json:"to"`
	}
	content struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}
	sendRequest struct {
		Personalizations []personalization `json:"personalizations"`
		From             address           `json:"from"`
		Subject          string            `json:"subject"`
		Content          []content         `json:"content"`
	}
)

func NewSendGrid(logger *zap.Logger, cfg config.Mail, apiKey string) *SendGrid {
	return &SendGrid{
		logger: logger,
		apiURL: cfg.APIURL,
		apiKey: apiKey,
		sender: cfg.Sender,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *SendGrid) Send(ctx context.Context, to, subject, html string) error {
	body, err := json.Marshal(sendRequest{
		Personalizations: []personalization{{To: []address{{Email: to}}}},
		From:             address{Email: s.sender},
		Subject:          subject,
		Content:          []content{{Type: "text/html", Value: html}},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("mail delivery: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		return fmt.Errorf("mail delivery: %s: %s", resp.Status, detail)
	}

	s.logger.Info("mail delivered", zap.String("to", to), zap.String("subject", subject))

	return nil
}
