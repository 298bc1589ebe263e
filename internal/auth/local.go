package auth

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/RiseHunter/RiseHuntBot/internal"
)

// LocalProvider checks the shared secret configured for this deployment.
// An empty configured secret means the transport is trusted (development).
type LocalProvider struct {
	Secret string
	logger internal.Logger
}

func NewLocalProvider(secret string, logger internal.Logger) *LocalProvider {
	return &LocalProvider{Secret: secret, logger: logger}
}

func (a *LocalProvider) ValidateSecretLocal(secret string) error {
	if a.Secret == "" {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(secret), []byte(a.Secret)) == 1 {
		return nil
	}
	a.logger.Warnf("auth: invalid webhook secret")
	return errors.New("invalid webhook secret")
}

func (a *LocalProvider) ValidateSecretRemote(ctx context.Context, secret string) error {
	a.logger.Warnf("ValidateSecretRemote not implemented in LocalProvider")
	return errors.New("not implemented in LocalProvider")
}
