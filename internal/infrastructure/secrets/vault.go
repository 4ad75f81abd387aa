package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"filetag-api/config"
)

// ErrNoVault means no vault is configured; callers fall back to the
// environment-supplied value.
var ErrNoVault = errors.New("vault not configured")

// Provider reads managed secrets from a Vault KV v2 mount.
type Provider struct {
	logger *zap.Logger
	addr   string
	token  string
	client *http.Client
}

func New(logger *zap.Logger, cfg config.Vault) *Provider {
	return &Provider{
		logger: logger,
		addr:   cfg.Addr,
		token:  cfg.Token,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *Provider) Fetch(ctx context.Context, name string) (string, error) {
	if p.addr == "" {
		return "", ErrNoVault
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		p.addr+"/v1/secret/data/"+name,
		nil,
	)
	if err != nil {
		return "", err
	}
	req.Header.Set("X-Vault-Token", p.token)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch secret %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch secret %s: %s", name, resp.Status)
	}

	var payload struct {
		Data struct {
			Data map[string]string `json:"data"`
		} `json:"data"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode secret %s: %w", name, err)
	}

	v, ok := payload.Data.Data["value"]
	if !ok || v == "" {
		return "", fmt.Errorf("secret %s has no value", name)
	}

	p.logger.Info("secret fetched from vault", zap.String("name", name))

	return v, nil
}
