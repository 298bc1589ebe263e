package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/RiseHunter/RiseHuntBot/internal"
)

// RemoteProvider asks a central auth service to verify the transport secret.
type RemoteProvider struct {
	AuthServiceURL string
	HTTPClient     *http.Client
	logger         internal.Logger
}

func NewRemoteProvider(url string, logger internal.Logger) *RemoteProvider {
	return &RemoteProvider{
		AuthServiceURL: url,
		HTTPClient:     &http.Client{Timeout: 5 * time.Second},
		logger:         logger,
	}
}

func (a *RemoteProvider) ValidateSecretLocal(secret string) error {
	return errors.New("not implemented in RemoteProvider")
}

func (a *RemoteProvider) ValidateSecretRemote(ctx context.Context, secret string) error {
	body := `{"secret":"` + secret + `"}`
	req, err := http.NewRequestWithContext(ctx, "POST", a.AuthServiceURL, strings.NewReader(body))
	if err != nil {
		a.logger.Errorf("failed to create request: %v", err)
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		a.logger.Errorf("failed to call auth service: %v", err)
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		a.logger.Errorf("auth service returned %d", resp.StatusCode)
		return errors.New("auth service rejected secret")
	}
	return nil
}
